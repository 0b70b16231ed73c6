package dmx

import (
	"time"

	"github.com/google/uuid"
)

// Value is an attribute value. The set of implementations is closed: every
// kind in Types() has exactly one concrete type in this package, and nothing
// outside this package can add one.
type Value interface {
	Kind() Type

	// value restricts implementations to this package.
	value()
}

type Int int32

type Float float32

type Bool bool

type String string

// Binary is a raw byte payload. In documents decoded from a byte slice it
// aliases the input buffer; see Document.Borrowed.
type Binary []byte

// Time counts ticks of 1/10000 of a second.
type Time int32

func (t Time) Seconds() float64 {
	return float64(t) / 10000
}

func (t Time) Duration() time.Duration {
	return time.Duration(t) * (time.Second / 10000)
}

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

type Vector2 struct {
	X, Y float32
}

type Vector3 struct {
	X, Y, Z float32
}

type Vector4 struct {
	X, Y, Z, W float32
}

// QAngle is an Euler rotation in degrees.
type QAngle struct {
	Pitch, Yaw, Roll float32
}

type Quaternion struct {
	X, Y, Z, W float32
}

// Matrix is a 4x4 float matrix in row-major order.
type Matrix [16]float32

// At returns the entry at row r, column c.
func (m Matrix) At(r, c int) float32 {
	return m[r*4+c]
}

type UInt64 uint64

type UInt8 uint8

// ObjectId is the 16-byte GUID identifying an element.
type ObjectId uuid.UUID

func (id ObjectId) String() string {
	return uuid.UUID(id).String()
}

func (id ObjectId) IsZero() bool {
	return id == ObjectId{}
}

// ObjectIdFromBytes builds an ObjectId from a 16-byte slice.
func ObjectIdFromBytes(b []byte) (ObjectId, error) {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return ObjectId{}, err
	}
	return ObjectId(u), nil
}

// ElementRef refers to an element of the owning document by pool index.
// Negative indexes encode the null reference. Resolve refs through
// Document.Resolve; a ref carries no pointer to its target.
type ElementRef int32

// NullElement is the canonical null reference.
const NullElement ElementRef = -1

func (r ElementRef) IsNull() bool {
	return r < 0
}

// Index returns the pool index and true, or 0 and false for the null
// reference.
func (r ElementRef) Index() (int, bool) {
	if r < 0 {
		return 0, false
	}
	return int(r), true
}

func (Int) Kind() Type        { return IntType }
func (Float) Kind() Type      { return FloatType }
func (Bool) Kind() Type       { return BoolType }
func (String) Kind() Type     { return StringType }
func (Binary) Kind() Type     { return BinaryType }
func (Time) Kind() Type       { return TimeType }
func (Color) Kind() Type      { return ColorType }
func (Vector2) Kind() Type    { return Vector2Type }
func (Vector3) Kind() Type    { return Vector3Type }
func (Vector4) Kind() Type    { return Vector4Type }
func (QAngle) Kind() Type     { return QAngleType }
func (Quaternion) Kind() Type { return QuaternionType }
func (Matrix) Kind() Type     { return MatrixType }
func (UInt64) Kind() Type     { return UInt64Type }
func (UInt8) Kind() Type      { return UInt8Type }
func (ObjectId) Kind() Type   { return ObjectIdType }
func (ElementRef) Kind() Type { return ElementType }

func (Int) value()        {}
func (Float) value()      {}
func (Bool) value()       {}
func (String) value()     {}
func (Binary) value()     {}
func (Time) value()       {}
func (Color) value()      {}
func (Vector2) value()    {}
func (Vector3) value()    {}
func (Vector4) value()    {}
func (QAngle) value()     {}
func (Quaternion) value() {}
func (Matrix) value()     {}
func (UInt64) value()     {}
func (UInt8) value()      {}
func (ObjectId) value()   {}
func (ElementRef) value() {}
