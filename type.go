package dmx

import "fmt"

// Type identifies the kind of a Value. Scalar and array kinds carry the
// attribute type tags of the binary version 9 encoding as their numeric
// values; an array kind is its scalar kind plus 32. ObjectIdType has no wire
// tag: element identity travels in the element header block, not as an
// attribute payload.
type Type int

const (
	InvalidType Type = 0

	ElementType    Type = 1
	IntType        Type = 2
	FloatType      Type = 3
	BoolType       Type = 4
	StringType     Type = 5
	BinaryType     Type = 6
	TimeType       Type = 7
	ColorType      Type = 8
	Vector2Type    Type = 9
	Vector3Type    Type = 10
	Vector4Type    Type = 11
	QAngleType     Type = 12
	QuaternionType Type = 13
	MatrixType     Type = 14
	UInt64Type     Type = 15
	UInt8Type      Type = 16

	ObjectIdType Type = 17

	ElementArrayType    Type = 33
	IntArrayType        Type = 34
	FloatArrayType      Type = 35
	BoolArrayType       Type = 36
	StringArrayType     Type = 37
	BinaryArrayType     Type = 38
	TimeArrayType       Type = 39
	ColorArrayType      Type = 40
	Vector2ArrayType    Type = 41
	Vector3ArrayType    Type = 42
	Vector4ArrayType    Type = 43
	QAngleArrayType     Type = 44
	QuaternionArrayType Type = 45
	MatrixArrayType     Type = 46
	UInt64ArrayType     Type = 47
)

const arrayKindOffset Type = 32

var typeNames = map[Type]string{
	ElementType:    "element",
	IntType:        "int",
	FloatType:      "float",
	BoolType:       "bool",
	StringType:     "string",
	BinaryType:     "binary",
	TimeType:       "time",
	ColorType:      "color",
	Vector2Type:    "vector2",
	Vector3Type:    "vector3",
	Vector4Type:    "vector4",
	QAngleType:     "qangle",
	QuaternionType: "quaternion",
	MatrixType:     "matrix",
	UInt64Type:     "uint64",
	UInt8Type:      "uint8",
	ObjectIdType:   "elementid",

	ElementArrayType:    "element_array",
	IntArrayType:        "int_array",
	FloatArrayType:      "float_array",
	BoolArrayType:       "bool_array",
	StringArrayType:     "string_array",
	BinaryArrayType:     "binary_array",
	TimeArrayType:       "time_array",
	ColorArrayType:      "color_array",
	Vector2ArrayType:    "vector2_array",
	Vector3ArrayType:    "vector3_array",
	Vector4ArrayType:    "vector4_array",
	QAngleArrayType:     "qangle_array",
	QuaternionArrayType: "quaternion_array",
	MatrixArrayType:     "matrix_array",
	UInt64ArrayType:     "uint64_array",
}

var typesByName = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := typesByName[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

// Types returns all value kinds in wire tag order.
func Types() []Type {
	return []Type{
		ElementType,
		IntType,
		FloatType,
		BoolType,
		StringType,
		BinaryType,
		TimeType,
		ColorType,
		Vector2Type,
		Vector3Type,
		Vector4Type,
		QAngleType,
		QuaternionType,
		MatrixType,
		UInt64Type,
		UInt8Type,
		ObjectIdType,

		ElementArrayType,
		IntArrayType,
		FloatArrayType,
		BoolArrayType,
		StringArrayType,
		BinaryArrayType,
		TimeArrayType,
		ColorArrayType,
		Vector2ArrayType,
		Vector3ArrayType,
		Vector4ArrayType,
		QAngleArrayType,
		QuaternionArrayType,
		MatrixArrayType,
		UInt64ArrayType,
	}
}

func (t Type) IsArray() bool {
	return t >= ElementArrayType && t <= UInt64ArrayType
}

// Elem returns the scalar kind of an array kind, or InvalidType for
// non-array kinds.
func (t Type) Elem() Type {
	if !t.IsArray() {
		return InvalidType
	}
	return t - arrayKindOffset
}

// Array returns the array kind whose elements have kind t, or InvalidType
// for kinds without an array form (uint8, elementid, arrays themselves).
func (t Type) Array() Type {
	if t < ElementType || t > UInt64Type {
		return InvalidType
	}
	return t + arrayKindOffset
}
