// Package dmxtest assembles binary version 9 byte streams for tests.
//
// Doc builds well-formed documents with an automatically deduplicated
// string table. Writer exposes the raw wire primitives so tests can build
// deliberately broken streams.
package dmxtest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/uuid"

	dmx "github.com/dmx-format/go-dmx"
)

// Writer appends wire primitives to a buffer. All integers are little
// endian; strings are NUL terminated.
type Writer struct {
	buf bytes.Buffer
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) I32(v int32) *Writer {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	w.buf.Write(b[:])
	return w
}

func (w *Writer) U8(v uint8) *Writer {
	w.buf.WriteByte(v)
	return w
}

func (w *Writer) U64(v uint64) *Writer {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
	return w
}

func (w *Writer) F32(v float32) *Writer {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	w.buf.Write(b[:])
	return w
}

func (w *Writer) CStr(s string) *Writer {
	w.buf.WriteString(s)
	w.buf.WriteByte(0)
	return w
}

func (w *Writer) Raw(b []byte) *Writer {
	w.buf.Write(b)
	return w
}

// Tag writes an attribute type tag byte.
func (w *Writer) Tag(t dmx.Type) *Writer {
	return w.U8(uint8(t))
}

// Header writes the NUL-terminated header line.
func (w *Writer) Header(encoding string, encVersion int, format string, fmtVersion int) *Writer {
	fmt.Fprintf(&w.buf, "<!-- dmx encoding %s %d format %s %d -->\n", encoding, encVersion, format, fmtVersion)
	w.buf.WriteByte(0)
	return w
}

func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// ID returns a deterministic element GUID from n.
func ID(n byte) dmx.ObjectId {
	var b [16]byte
	b[15] = n
	id, err := dmx.ObjectIdFromBytes(b[:])
	if err != nil {
		panic(err)
	}
	return id
}

// El is an element under construction.
type El struct {
	Type  string
	Name  string
	ID    dmx.ObjectId
	Attrs []dmx.Attribute
}

// Doc is a document under construction. Bytes assembles the binary
// version 9 stream.
type Doc struct {
	Format        string
	FormatVersion int
	Prefix        []dmx.Attribute
	Elements      []El
}

func (d *Doc) format() (string, int) {
	if d.Format == "" {
		return "dmx", 18
	}
	return d.Format, d.FormatVersion
}

func (d *Doc) Bytes() []byte {
	w := NewWriter()
	name, version := d.format()
	w.Header("binary", 9, name, version)
	w.I32(0)

	w.I32(int32(len(d.Prefix)))
	for _, a := range d.Prefix {
		w.CStr(a.Name)
		writeValue(w, a.Value, nil)
	}

	table := newStrTable()
	for _, el := range d.Elements {
		table.add(el.Type)
		table.add(el.Name)
	}
	for _, el := range d.Elements {
		for _, a := range el.Attrs {
			table.add(a.Name)
			if s, ok := a.Value.(dmx.String); ok {
				table.add(string(s))
			}
		}
	}

	w.I32(int32(len(table.list)))
	for _, s := range table.list {
		w.CStr(s)
	}

	w.I32(int32(len(d.Elements)))
	for _, el := range d.Elements {
		w.I32(table.ref(el.Type))
		w.I32(table.ref(el.Name))
		id := uuid.UUID(el.ID)
		w.Raw(id[:])
	}

	for _, el := range d.Elements {
		w.I32(int32(len(el.Attrs)))
		for _, a := range el.Attrs {
			w.I32(table.ref(a.Name))
			writeValue(w, a.Value, table)
		}
	}
	return w.Bytes()
}

type strTable struct {
	index map[string]int32
	list  []string
}

func newStrTable() *strTable {
	return &strTable{index: map[string]int32{}}
}

func (t *strTable) add(s string) {
	if _, ok := t.index[s]; ok {
		return
	}
	t.index[s] = int32(len(t.list))
	t.list = append(t.list, s)
}

func (t *strTable) ref(s string) int32 {
	return t.index[s]
}

// writeValue writes the tag byte and payload for v. A nil table selects
// inline strings, as in the prefix block.
func writeValue(w *Writer, v dmx.Value, table *strTable) {
	w.Tag(v.Kind())
	switch v := v.(type) {
	case dmx.ElementRef:
		w.I32(int32(v))
	case dmx.Int:
		w.I32(int32(v))
	case dmx.Float:
		w.F32(float32(v))
	case dmx.Bool:
		b := uint8(0)
		if v {
			b = 1
		}
		w.U8(b)
	case dmx.String:
		if table != nil {
			w.I32(table.ref(string(v)))
		} else {
			w.CStr(string(v))
		}
	case dmx.Binary:
		w.I32(int32(len(v)))
		w.Raw(v)
	case dmx.Time:
		w.I32(int32(v))
	case dmx.Color:
		w.U8(v.R).U8(v.G).U8(v.B).U8(v.A)
	case dmx.Vector2:
		w.F32(v.X).F32(v.Y)
	case dmx.Vector3:
		w.F32(v.X).F32(v.Y).F32(v.Z)
	case dmx.Vector4:
		w.F32(v.X).F32(v.Y).F32(v.Z).F32(v.W)
	case dmx.QAngle:
		w.F32(v.Pitch).F32(v.Yaw).F32(v.Roll)
	case dmx.Quaternion:
		w.F32(v.X).F32(v.Y).F32(v.Z).F32(v.W)
	case dmx.Matrix:
		for _, f := range v {
			w.F32(f)
		}
	case dmx.UInt64:
		w.U64(uint64(v))
	case dmx.UInt8:
		w.U8(uint8(v))

	case dmx.ElementArray:
		w.I32(int32(len(v)))
		for _, ref := range v {
			w.I32(int32(ref))
		}
	case dmx.IntArray:
		w.I32(int32(len(v)))
		for _, x := range v {
			w.I32(x)
		}
	case dmx.FloatArray:
		w.I32(int32(len(v)))
		for _, x := range v {
			w.F32(x)
		}
	case dmx.BoolArray:
		w.I32(int32(len(v)))
		for _, x := range v {
			b := uint8(0)
			if x {
				b = 1
			}
			w.U8(b)
		}
	case dmx.StringArray:
		// Inline in every position, matching the decoder.
		w.I32(int32(len(v)))
		for _, s := range v {
			w.CStr(s)
		}
	case dmx.BinaryArray:
		w.I32(int32(len(v)))
		for _, b := range v {
			w.I32(int32(len(b)))
			w.Raw(b)
		}
	case dmx.TimeArray:
		w.I32(int32(len(v)))
		for _, x := range v {
			w.I32(int32(x))
		}
	case dmx.ColorArray:
		w.I32(int32(len(v)))
		for _, c := range v {
			w.U8(c.R).U8(c.G).U8(c.B).U8(c.A)
		}
	case dmx.Vector2Array:
		w.I32(int32(len(v)))
		for _, x := range v {
			w.F32(x.X).F32(x.Y)
		}
	case dmx.Vector3Array:
		w.I32(int32(len(v)))
		for _, x := range v {
			w.F32(x.X).F32(x.Y).F32(x.Z)
		}
	case dmx.Vector4Array:
		w.I32(int32(len(v)))
		for _, x := range v {
			w.F32(x.X).F32(x.Y).F32(x.Z).F32(x.W)
		}
	case dmx.QAngleArray:
		w.I32(int32(len(v)))
		for _, x := range v {
			w.F32(x.Pitch).F32(x.Yaw).F32(x.Roll)
		}
	case dmx.QuaternionArray:
		w.I32(int32(len(v)))
		for _, x := range v {
			w.F32(x.X).F32(x.Y).F32(x.Z).F32(x.W)
		}
	case dmx.MatrixArray:
		w.I32(int32(len(v)))
		for _, m := range v {
			for _, f := range m {
				w.F32(f)
			}
		}
	case dmx.UInt64Array:
		w.I32(int32(len(v)))
		for _, x := range v {
			w.U64(x)
		}
	default:
		panic(fmt.Sprintf("dmxtest: %v has no wire form", v.Kind()))
	}
}
