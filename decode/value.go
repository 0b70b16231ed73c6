package decode

import (
	"encoding/binary"
	"fmt"
	"math"

	dmx "github.com/dmx-format/go-dmx"
)

// strMode selects how scalar string values are stored at the current
// position in the file.
type strMode int

const (
	strInline strMode = iota // NUL string in place (prefix block, string arrays)
	strTable                 // int32 string table index (element bodies)
)

func f32(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

// value reads one attribute value: a type tag byte followed by the tag's
// payload.
func (d *decoder) value(mode strMode) (dmx.Value, error) {
	tag, err := d.uint8()
	if err != nil {
		return nil, err
	}
	switch dmx.Type(tag) {
	case dmx.ElementType:
		ref, err := d.elementRef()
		if err != nil {
			return nil, err
		}
		return ref, nil
	case dmx.IntType:
		v, err := d.int32()
		if err != nil {
			return nil, err
		}
		return dmx.Int(v), nil
	case dmx.FloatType:
		v, err := d.float32()
		if err != nil {
			return nil, err
		}
		return dmx.Float(v), nil
	case dmx.BoolType:
		v, err := d.uint8()
		if err != nil {
			return nil, err
		}
		return dmx.Bool(v != 0), nil
	case dmx.StringType:
		var s string
		if mode == strTable {
			s, err = d.stringRef()
		} else {
			s, err = d.cstring()
		}
		if err != nil {
			return nil, err
		}
		return dmx.String(s), nil
	case dmx.BinaryType:
		n, err := d.count()
		if err != nil {
			return nil, err
		}
		b, err := d.src.bytes(n)
		if err != nil {
			return nil, d.ioErr(err)
		}
		return dmx.Binary(b), nil
	case dmx.TimeType:
		v, err := d.int32()
		if err != nil {
			return nil, err
		}
		return dmx.Time(v), nil
	case dmx.ColorType:
		v, err := d.color()
		if err != nil {
			return nil, err
		}
		return v, nil
	case dmx.Vector2Type:
		v, err := d.vector2()
		if err != nil {
			return nil, err
		}
		return v, nil
	case dmx.Vector3Type:
		v, err := d.vector3()
		if err != nil {
			return nil, err
		}
		return v, nil
	case dmx.Vector4Type:
		v, err := d.vector4()
		if err != nil {
			return nil, err
		}
		return v, nil
	case dmx.QAngleType:
		v, err := d.qangle()
		if err != nil {
			return nil, err
		}
		return v, nil
	case dmx.QuaternionType:
		v, err := d.quaternion()
		if err != nil {
			return nil, err
		}
		return v, nil
	case dmx.MatrixType:
		v, err := d.matrix()
		if err != nil {
			return nil, err
		}
		return v, nil
	case dmx.UInt64Type:
		v, err := d.uint64()
		if err != nil {
			return nil, err
		}
		return dmx.UInt64(v), nil
	case dmx.UInt8Type:
		v, err := d.uint8()
		if err != nil {
			return nil, err
		}
		return dmx.UInt8(v), nil

	case dmx.ElementArrayType:
		n, err := d.arrayLen(4)
		if err != nil {
			return nil, err
		}
		out := make(dmx.ElementArray, 0, n.c)
		for i := 0; i < n.n; i++ {
			ref, err := d.elementRef()
			if err != nil {
				return nil, err
			}
			out = append(out, ref)
		}
		return out, nil
	case dmx.IntArrayType:
		n, err := d.arrayLen(4)
		if err != nil {
			return nil, err
		}
		out := make(dmx.IntArray, 0, n.c)
		for i := 0; i < n.n; i++ {
			v, err := d.int32()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case dmx.FloatArrayType:
		n, err := d.arrayLen(4)
		if err != nil {
			return nil, err
		}
		out := make(dmx.FloatArray, 0, n.c)
		for i := 0; i < n.n; i++ {
			v, err := d.float32()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case dmx.BoolArrayType:
		n, err := d.arrayLen(1)
		if err != nil {
			return nil, err
		}
		out := make(dmx.BoolArray, 0, n.c)
		for i := 0; i < n.n; i++ {
			v, err := d.uint8()
			if err != nil {
				return nil, err
			}
			out = append(out, v != 0)
		}
		return out, nil
	case dmx.StringArrayType:
		// String array items are inline strings in every position,
		// unlike scalar strings in element bodies.
		n, err := d.arrayLen(1)
		if err != nil {
			return nil, err
		}
		out := make(dmx.StringArray, 0, n.c)
		for i := 0; i < n.n; i++ {
			s, err := d.cstring()
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case dmx.BinaryArrayType:
		n, err := d.arrayLen(4)
		if err != nil {
			return nil, err
		}
		out := make(dmx.BinaryArray, 0, n.c)
		for i := 0; i < n.n; i++ {
			sz, err := d.count()
			if err != nil {
				return nil, err
			}
			b, err := d.src.bytes(sz)
			if err != nil {
				return nil, d.ioErr(err)
			}
			out = append(out, b)
		}
		return out, nil
	case dmx.TimeArrayType:
		n, err := d.arrayLen(4)
		if err != nil {
			return nil, err
		}
		out := make(dmx.TimeArray, 0, n.c)
		for i := 0; i < n.n; i++ {
			v, err := d.int32()
			if err != nil {
				return nil, err
			}
			out = append(out, dmx.Time(v))
		}
		return out, nil
	case dmx.ColorArrayType:
		n, err := d.arrayLen(4)
		if err != nil {
			return nil, err
		}
		out := make(dmx.ColorArray, 0, n.c)
		for i := 0; i < n.n; i++ {
			v, err := d.color()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case dmx.Vector2ArrayType:
		n, err := d.arrayLen(8)
		if err != nil {
			return nil, err
		}
		out := make(dmx.Vector2Array, 0, n.c)
		for i := 0; i < n.n; i++ {
			v, err := d.vector2()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case dmx.Vector3ArrayType:
		n, err := d.arrayLen(12)
		if err != nil {
			return nil, err
		}
		out := make(dmx.Vector3Array, 0, n.c)
		for i := 0; i < n.n; i++ {
			v, err := d.vector3()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case dmx.Vector4ArrayType:
		n, err := d.arrayLen(16)
		if err != nil {
			return nil, err
		}
		out := make(dmx.Vector4Array, 0, n.c)
		for i := 0; i < n.n; i++ {
			v, err := d.vector4()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case dmx.QAngleArrayType:
		n, err := d.arrayLen(12)
		if err != nil {
			return nil, err
		}
		out := make(dmx.QAngleArray, 0, n.c)
		for i := 0; i < n.n; i++ {
			v, err := d.qangle()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case dmx.QuaternionArrayType:
		n, err := d.arrayLen(16)
		if err != nil {
			return nil, err
		}
		out := make(dmx.QuaternionArray, 0, n.c)
		for i := 0; i < n.n; i++ {
			v, err := d.quaternion()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case dmx.MatrixArrayType:
		n, err := d.arrayLen(64)
		if err != nil {
			return nil, err
		}
		out := make(dmx.MatrixArray, 0, n.c)
		for i := 0; i < n.n; i++ {
			v, err := d.matrix()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case dmx.UInt64ArrayType:
		n, err := d.arrayLen(8)
		if err != nil {
			return nil, err
		}
		out := make(dmx.UInt64Array, 0, n.c)
		for i := 0; i < n.n; i++ {
			v, err := d.uint64()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return nil, d.at(fmt.Errorf("%w: unknown attribute type tag %d", ErrMalformed, tag))
}

// alen is an array length with its bounded initial capacity.
type alen struct {
	n, c int
}

func (d *decoder) arrayLen(itemSize int) (alen, error) {
	n, err := d.count()
	if err != nil {
		return alen{}, err
	}
	c, err := d.capFor(n, itemSize)
	if err != nil {
		return alen{}, err
	}
	return alen{n: n, c: c}, nil
}

func (d *decoder) color() (dmx.Color, error) {
	b, err := d.src.next(4)
	if err != nil {
		return dmx.Color{}, d.ioErr(err)
	}
	return dmx.Color{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}

func (d *decoder) vector2() (dmx.Vector2, error) {
	b, err := d.src.next(8)
	if err != nil {
		return dmx.Vector2{}, d.ioErr(err)
	}
	return dmx.Vector2{X: f32(b, 0), Y: f32(b, 4)}, nil
}

func (d *decoder) vector3() (dmx.Vector3, error) {
	b, err := d.src.next(12)
	if err != nil {
		return dmx.Vector3{}, d.ioErr(err)
	}
	return dmx.Vector3{X: f32(b, 0), Y: f32(b, 4), Z: f32(b, 8)}, nil
}

func (d *decoder) vector4() (dmx.Vector4, error) {
	b, err := d.src.next(16)
	if err != nil {
		return dmx.Vector4{}, d.ioErr(err)
	}
	return dmx.Vector4{X: f32(b, 0), Y: f32(b, 4), Z: f32(b, 8), W: f32(b, 12)}, nil
}

func (d *decoder) qangle() (dmx.QAngle, error) {
	b, err := d.src.next(12)
	if err != nil {
		return dmx.QAngle{}, d.ioErr(err)
	}
	return dmx.QAngle{Pitch: f32(b, 0), Yaw: f32(b, 4), Roll: f32(b, 8)}, nil
}

func (d *decoder) quaternion() (dmx.Quaternion, error) {
	b, err := d.src.next(16)
	if err != nil {
		return dmx.Quaternion{}, d.ioErr(err)
	}
	return dmx.Quaternion{X: f32(b, 0), Y: f32(b, 4), Z: f32(b, 8), W: f32(b, 12)}, nil
}

func (d *decoder) matrix() (dmx.Matrix, error) {
	b, err := d.src.next(64)
	if err != nil {
		return dmx.Matrix{}, d.ioErr(err)
	}
	var m dmx.Matrix
	for i := range m {
		m[i] = f32(b, i*4)
	}
	return m, nil
}
