package dump

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	dmx "github.com/dmx-format/go-dmx"
)

// Option adjusts how Text renders a document.
type Option func(*printer)

// WithColors colorizes the listing.
func WithColors(c *Colors) Option {
	return func(p *printer) { p.colors = c }
}

// WithLimit elides array items and binary bytes beyond n per attribute.
// Zero keeps everything.
func WithLimit(n int) Option {
	return func(p *printer) { p.limit = n }
}

// WithElements restricts the listing to the given pool indexes and drops
// the header and prefix blocks.
func WithElements(indexes ...int) Option {
	return func(p *printer) { p.subset = indexes }
}

type printer struct {
	w      io.Writer
	err    error
	colors *Colors
	limit  int
	subset []int
}

// Text writes an indented listing of the document: one header line, the
// prefix attributes, and one block per element with its attributes.
func Text(w io.Writer, doc *dmx.Document, opts ...Option) error {
	p := &printer{w: w}
	for _, opt := range opts {
		opt(p)
	}
	if p.subset != nil {
		for _, i := range p.subset {
			el := doc.Element(i)
			if el == nil {
				p.fail(fmt.Errorf("element %d outside pool of %d", i, doc.Len()))
				break
			}
			p.element(i, el)
		}
		return p.err
	}

	p.printf("dmx %s %d format %s %d\n",
		doc.Encoding, doc.EncodingVersion, doc.Format, doc.FormatVersion)
	if len(doc.Prefix) > 0 {
		p.printf("prefix (%d)\n", len(doc.Prefix))
		for i := range doc.Prefix {
			p.attr(&doc.Prefix[i])
		}
	}
	p.printf("elements (%d)\n", doc.Len())
	for i, el := range doc.All() {
		p.element(i, el)
	}
	return p.err
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, err := fmt.Fprintf(p.w, format, args...)
	p.err = err
}

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *printer) c(t dmx.Type, a ColorAttr, s string) string {
	if p.colors == nil {
		return s
	}
	return p.colors.Color(t, a, s)
}

func (p *printer) element(i int, el *dmx.Element) {
	p.printf("%s %s %s %s\n",
		p.c(dmx.InvalidType, IndexColor, "["+strconv.Itoa(i)+"]"),
		p.c(dmx.InvalidType, TypeColor, el.Type),
		p.c(dmx.StringType, ValueColor, strconv.Quote(el.Name)),
		p.c(dmx.ObjectIdType, ValueColor, el.ID.String()),
	)
	for j := range el.Attrs {
		p.attr(&el.Attrs[j])
	}
}

func (p *printer) attr(a *dmx.Attribute) {
	k := a.Value.Kind()
	p.printf("  %s %s %s\n",
		p.c(dmx.InvalidType, NameColor, a.Name),
		p.c(k, TypeColor, k.String()),
		p.c(k, ValueColor, p.value(a.Value)),
	)
}

func (p *printer) value(v dmx.Value) string {
	switch v := v.(type) {
	case dmx.Int:
		return strconv.FormatInt(int64(v), 10)
	case dmx.Float:
		return formatFloat(float32(v))
	case dmx.Bool:
		return strconv.FormatBool(bool(v))
	case dmx.String:
		return strconv.Quote(string(v))
	case dmx.Binary:
		return p.binary(v)
	case dmx.Time:
		return v.Duration().String()
	case dmx.Color:
		return fmt.Sprintf("rgba(%d, %d, %d, %d)", v.R, v.G, v.B, v.A)
	case dmx.Vector2:
		return tuple(v.X, v.Y)
	case dmx.Vector3:
		return tuple(v.X, v.Y, v.Z)
	case dmx.Vector4:
		return tuple(v.X, v.Y, v.Z, v.W)
	case dmx.QAngle:
		return tuple(v.Pitch, v.Yaw, v.Roll)
	case dmx.Quaternion:
		return tuple(v.X, v.Y, v.Z, v.W)
	case dmx.Matrix:
		rows := make([]string, 4)
		for r := range 4 {
			rows[r] = tuple(v[r*4], v[r*4+1], v[r*4+2], v[r*4+3])
		}
		return strings.Join(rows, " ")
	case dmx.UInt64:
		return strconv.FormatUint(uint64(v), 10)
	case dmx.UInt8:
		return strconv.FormatUint(uint64(v), 10)
	case dmx.ObjectId:
		return v.String()
	case dmx.ElementRef:
		return refString(v)
	}
	return p.array(v)
}

func (p *printer) array(v dmx.Value) string {
	n := dmx.Len(v)
	if n < 0 {
		return fmt.Sprintf("%v", v)
	}
	shown := n
	if p.limit > 0 && shown > p.limit {
		shown = p.limit
	}
	items := make([]string, 0, shown+1)
	for i := range shown {
		items = append(items, p.value(dmx.Item(v, i)))
	}
	if shown < n {
		items = append(items, fmt.Sprintf("+%d more", n-shown))
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func (p *printer) binary(b dmx.Binary) string {
	n := len(b)
	shown := n
	if p.limit > 0 && shown > p.limit {
		shown = p.limit
	}
	s := "0x" + hex.EncodeToString(b[:shown])
	if shown < n {
		s += fmt.Sprintf(" +%d bytes", n-shown)
	}
	return s
}

func refString(r dmx.ElementRef) string {
	if r.IsNull() {
		return "-> null"
	}
	i, _ := r.Index()
	return "-> [" + strconv.Itoa(i) + "]"
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func tuple(fs ...float32) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = formatFloat(f)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
