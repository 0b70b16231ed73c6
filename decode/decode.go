// Package decode reads binary DMX documents, encoding version 9.
//
// # Usage
//
//	// Decode from memory. Binary attribute values alias data, which must
//	// outlive the document.
//	doc, err := decode.FromBytes(data)
//
//	// Decode from a stream. The document owns all of its memory.
//	doc, err := decode.FromReader(file)
//
// Failures are rooted in ErrMalformed or ErrUnsupportedVersion; malformed
// input additionally carries the failing byte offset:
//
//	var oe *decode.OffsetError
//	if errors.As(err, &oe) {
//	    log.Printf("bad input at byte %d", oe.Offset)
//	}
//
// # Related Packages
//
//   - github.com/dmx-format/go-dmx - Document model
//   - github.com/dmx-format/go-dmx/schema - Deserialize documents into Go values
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	dmx "github.com/dmx-format/go-dmx"
	"github.com/dmx-format/go-dmx/debug"
)

// FromBytes decodes a binary version 9 document from data. The document
// borrows from data: Binary values alias it, so data must outlive the
// document. This is the cheap path for memory-mapped or fully-read files.
func FromBytes(data []byte) (*dmx.Document, error) {
	d := &decoder{src: &byteSource{data: data}}
	doc, err := d.decode()
	if err != nil {
		return nil, err
	}
	doc.Borrowed = true
	return doc, nil
}

// FromReader decodes a binary version 9 document from r. Reads are
// buffered and everything in the document is independently allocated.
func FromReader(r io.Reader) (*dmx.Document, error) {
	d := &decoder{src: newReaderSource(r)}
	return d.decode()
}

const (
	headerOpen   = "<!-- dmx encoding "
	headerFormat = "format"
	headerClose  = " -->\n"

	// headerMax bounds the header scan so arbitrary binary junk fails
	// fast instead of being searched for a newline.
	headerMax = 512
)

// poolUnknown marks the element pool size before the shell block has been
// read. Element references seen earlier (prefix attributes) are range
// checked once the size is known.
const poolUnknown = -1

type decoder struct {
	src     source
	strings []string
	pool    int
}

func (d *decoder) decode() (*dmx.Document, error) {
	d.pool = poolUnknown
	doc := &dmx.Document{}
	if err := d.header(doc); err != nil {
		return nil, err
	}

	// One int precedes the prefix block in version 9; its value is
	// not meaningful.
	if _, err := d.int32(); err != nil {
		return nil, err
	}

	if err := d.prefix(doc); err != nil {
		return nil, err
	}
	if err := d.stringTable(); err != nil {
		return nil, err
	}
	if err := d.shells(doc); err != nil {
		return nil, err
	}
	if debug.Decode() {
		debug.Logf("dmx decode: %s %d format %s %d: %d prefix, %d strings, %d elements\n",
			doc.Encoding, doc.EncodingVersion, doc.Format, doc.FormatVersion,
			len(doc.Prefix), len(d.strings), len(doc.Elements))
	}
	for i := range doc.Prefix {
		if err := d.checkPoolRefs(doc.Prefix[i].Value); err != nil {
			return nil, fmt.Errorf("prefix attribute %q: %w", doc.Prefix[i].Name, err)
		}
	}
	if err := d.bodies(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *decoder) header(doc *dmx.Document) error {
	line, err := d.src.line(headerMax)
	if err != nil {
		return d.ioErr(err)
	}
	rest, ok := strings.CutPrefix(line, headerOpen)
	if !ok {
		return d.at(fmt.Errorf("%w: bad header %q", ErrMalformed, line))
	}
	rest, ok = strings.CutSuffix(rest, headerClose)
	if !ok {
		return d.at(fmt.Errorf("%w: bad header %q", ErrMalformed, line))
	}
	parts := strings.Split(rest, " ")
	if len(parts) != 5 || parts[2] != headerFormat {
		return d.at(fmt.Errorf("%w: bad header %q", ErrMalformed, line))
	}
	encVersion, err := strconv.Atoi(parts[1])
	if err != nil {
		return d.at(fmt.Errorf("%w: bad encoding version %q", ErrMalformed, parts[1]))
	}
	fmtVersion, err := strconv.Atoi(parts[4])
	if err != nil {
		return d.at(fmt.Errorf("%w: bad format version %q", ErrMalformed, parts[4]))
	}

	doc.Encoding = parts[0]
	doc.EncodingVersion = encVersion
	doc.Format = parts[3]
	doc.FormatVersion = fmtVersion

	if doc.Encoding != "binary" || doc.EncodingVersion != 9 {
		return fmt.Errorf("%w: %s %d", ErrUnsupportedVersion, doc.Encoding, doc.EncodingVersion)
	}

	// The header string is itself NUL terminated.
	b, err := d.src.next(1)
	if err != nil {
		return d.ioErr(err)
	}
	if b[0] != 0 {
		return d.at(fmt.Errorf("%w: header not NUL terminated", ErrMalformed))
	}
	return nil
}

// prefix reads the prefix attribute block. String values here are inline,
// not string table references: the table comes later in the file.
func (d *decoder) prefix(doc *dmx.Document) error {
	n, err := d.count()
	if err != nil {
		return err
	}
	c, err := d.capFor(n, 5)
	if err != nil {
		return err
	}
	doc.Prefix = make([]dmx.Attribute, 0, c)
	for i := 0; i < n; i++ {
		name, err := d.cstring()
		if err != nil {
			return err
		}
		v, err := d.value(strInline)
		if err != nil {
			return fmt.Errorf("prefix attribute %q: %w", name, err)
		}
		doc.Prefix = append(doc.Prefix, dmx.Attribute{Name: name, Value: v})
	}
	return nil
}

func (d *decoder) stringTable() error {
	n, err := d.count()
	if err != nil {
		return err
	}
	c, err := d.capFor(n, 1)
	if err != nil {
		return err
	}
	d.strings = make([]string, 0, c)
	for i := 0; i < n; i++ {
		s, err := d.cstring()
		if err != nil {
			return err
		}
		d.strings = append(d.strings, s)
	}
	return nil
}

func (d *decoder) shells(doc *dmx.Document) error {
	n, err := d.count()
	if err != nil {
		return err
	}
	c, err := d.capFor(n, 24)
	if err != nil {
		return err
	}
	doc.Elements = make([]dmx.Element, 0, c)
	for i := 0; i < n; i++ {
		typ, err := d.stringRef()
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		name, err := d.stringRef()
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		guid, err := d.src.next(16)
		if err != nil {
			return d.ioErr(err)
		}
		id, err := dmx.ObjectIdFromBytes(guid)
		if err != nil {
			return d.at(fmt.Errorf("%w: element %d: %v", ErrMalformed, i, err))
		}
		doc.Elements = append(doc.Elements, dmx.Element{Type: typ, Name: name, ID: id})
	}
	d.pool = n
	return nil
}

func (d *decoder) bodies(doc *dmx.Document) error {
	for i := range doc.Elements {
		n, err := d.count()
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		c, err := d.capFor(n, 5)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		attrs := make([]dmx.Attribute, 0, c)
		for j := 0; j < n; j++ {
			name, err := d.stringRef()
			if err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			v, err := d.value(strTable)
			if err != nil {
				return fmt.Errorf("element %d attribute %q: %w", i, name, err)
			}
			attrs = append(attrs, dmx.Attribute{Name: name, Value: v})
		}
		doc.Elements[i].Attrs = attrs
	}
	return nil
}

// at attaches the current byte offset to a grammar violation.
func (d *decoder) at(err error) error {
	return &OffsetError{Offset: d.src.offset(), Err: err}
}

// ioErr classifies source failures: running out of bytes inside the grammar
// is truncation, anything else is passed through from the reader.
func (d *decoder) ioErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return d.at(fmt.Errorf("%w: truncated input", ErrMalformed))
	}
	return d.at(fmt.Errorf("read: %w", err))
}

func (d *decoder) uint8() (uint8, error) {
	b, err := d.src.next(1)
	if err != nil {
		return 0, d.ioErr(err)
	}
	return b[0], nil
}

func (d *decoder) int32() (int32, error) {
	b, err := d.src.next(4)
	if err != nil {
		return 0, d.ioErr(err)
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (d *decoder) uint64() (uint64, error) {
	b, err := d.src.next(8)
	if err != nil {
		return 0, d.ioErr(err)
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *decoder) float32() (float32, error) {
	b, err := d.src.next(4)
	if err != nil {
		return 0, d.ioErr(err)
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

func (d *decoder) cstring() (string, error) {
	s, err := d.src.cstring()
	if err != nil {
		return "", d.ioErr(err)
	}
	return s, nil
}

// count reads a non-negative int32 length or count field.
func (d *decoder) count() (int, error) {
	v, err := d.int32()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, d.at(fmt.Errorf("%w: negative count %d", ErrMalformed, v))
	}
	return int(v), nil
}

// capFor bounds the initial capacity for count items of at least itemSize
// bytes each. When the source knows its remaining size, counts that cannot
// possibly be satisfied fail immediately.
func (d *decoder) capFor(count, itemSize int) (int, error) {
	if rem := d.src.remaining(); rem >= 0 && int64(count)*int64(itemSize) > rem {
		return 0, d.at(fmt.Errorf("%w: count %d exceeds remaining input", ErrMalformed, count))
	}
	return min(count, readChunk/itemSize), nil
}

// stringRef reads an int32 index into the string table.
func (d *decoder) stringRef() (string, error) {
	v, err := d.int32()
	if err != nil {
		return "", err
	}
	if v < 0 || int(v) >= len(d.strings) {
		return "", d.at(fmt.Errorf("%w: string index %d outside table of %d", ErrMalformed, v, len(d.strings)))
	}
	return d.strings[v], nil
}

// elementRef reads an int32 element pool index. Negative values are the
// null reference and pass through unchanged.
func (d *decoder) elementRef() (dmx.ElementRef, error) {
	v, err := d.int32()
	if err != nil {
		return 0, err
	}
	ref := dmx.ElementRef(v)
	if err := d.checkRef(ref); err != nil {
		return 0, err
	}
	return ref, nil
}

func (d *decoder) checkRef(ref dmx.ElementRef) error {
	i, ok := ref.Index()
	if !ok {
		return nil
	}
	if d.pool != poolUnknown && i >= d.pool {
		return d.at(fmt.Errorf("%w: element index %d outside pool of %d", ErrMalformed, i, d.pool))
	}
	return nil
}

// checkPoolRefs re-checks element references read before the pool size was
// known.
func (d *decoder) checkPoolRefs(v dmx.Value) error {
	switch v := v.(type) {
	case dmx.ElementRef:
		return d.checkRef(v)
	case dmx.ElementArray:
		for _, ref := range v {
			if err := d.checkRef(ref); err != nil {
				return err
			}
		}
	}
	return nil
}
