package dmx

// Array kinds are typed slices, so homogeneity holds by construction.
// UInt8 and ObjectId have no array form in the binary version 9 encoding.

type ElementArray []ElementRef

type IntArray []int32

type FloatArray []float32

type BoolArray []bool

type StringArray []string

type BinaryArray [][]byte

type TimeArray []Time

type ColorArray []Color

type Vector2Array []Vector2

type Vector3Array []Vector3

type Vector4Array []Vector4

type QAngleArray []QAngle

type QuaternionArray []Quaternion

type MatrixArray []Matrix

type UInt64Array []uint64

func (ElementArray) Kind() Type    { return ElementArrayType }
func (IntArray) Kind() Type        { return IntArrayType }
func (FloatArray) Kind() Type      { return FloatArrayType }
func (BoolArray) Kind() Type       { return BoolArrayType }
func (StringArray) Kind() Type     { return StringArrayType }
func (BinaryArray) Kind() Type     { return BinaryArrayType }
func (TimeArray) Kind() Type       { return TimeArrayType }
func (ColorArray) Kind() Type      { return ColorArrayType }
func (Vector2Array) Kind() Type    { return Vector2ArrayType }
func (Vector3Array) Kind() Type    { return Vector3ArrayType }
func (Vector4Array) Kind() Type    { return Vector4ArrayType }
func (QAngleArray) Kind() Type     { return QAngleArrayType }
func (QuaternionArray) Kind() Type { return QuaternionArrayType }
func (MatrixArray) Kind() Type     { return MatrixArrayType }
func (UInt64Array) Kind() Type     { return UInt64ArrayType }

func (ElementArray) value()    {}
func (IntArray) value()        {}
func (FloatArray) value()      {}
func (BoolArray) value()       {}
func (StringArray) value()     {}
func (BinaryArray) value()     {}
func (TimeArray) value()       {}
func (ColorArray) value()      {}
func (Vector2Array) value()    {}
func (Vector3Array) value()    {}
func (Vector4Array) value()    {}
func (QAngleArray) value()     {}
func (QuaternionArray) value() {}
func (MatrixArray) value()     {}
func (UInt64Array) value()     {}

// Len returns the item count of an array value, or -1 when v is not an
// array kind.
func Len(v Value) int {
	switch a := v.(type) {
	case ElementArray:
		return len(a)
	case IntArray:
		return len(a)
	case FloatArray:
		return len(a)
	case BoolArray:
		return len(a)
	case StringArray:
		return len(a)
	case BinaryArray:
		return len(a)
	case TimeArray:
		return len(a)
	case ColorArray:
		return len(a)
	case Vector2Array:
		return len(a)
	case Vector3Array:
		return len(a)
	case Vector4Array:
		return len(a)
	case QAngleArray:
		return len(a)
	case QuaternionArray:
		return len(a)
	case MatrixArray:
		return len(a)
	case UInt64Array:
		return len(a)
	}
	return -1
}

// Item returns the i'th item of an array value as a scalar Value. It
// returns nil when v is not an array kind or i is out of range.
func Item(v Value, i int) Value {
	if i < 0 || i >= Len(v) {
		return nil
	}
	switch a := v.(type) {
	case ElementArray:
		return a[i]
	case IntArray:
		return Int(a[i])
	case FloatArray:
		return Float(a[i])
	case BoolArray:
		return Bool(a[i])
	case StringArray:
		return String(a[i])
	case BinaryArray:
		return Binary(a[i])
	case TimeArray:
		return a[i]
	case ColorArray:
		return a[i]
	case Vector2Array:
		return a[i]
	case Vector3Array:
		return a[i]
	case Vector4Array:
		return a[i]
	case QAngleArray:
		return a[i]
	case QuaternionArray:
		return a[i]
	case MatrixArray:
		return a[i]
	case UInt64Array:
		return UInt64(a[i])
	}
	return nil
}
