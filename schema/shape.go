package schema

import (
	"fmt"
	"math"
	"time"

	dmx "github.com/dmx-format/go-dmx"
)

// Shape describes how one decoded value maps onto a Go destination.
// Shapes are built with the constructors in this package and run with
// Deserialize or DeserializeAt; they cannot be implemented outside it.
type Shape interface {
	apply(w *walker, v dmx.Value) error
}

// exactShape accepts exactly one value kind and stores it unchanged.
type exactShape[V dmx.Value] struct {
	dst *V
}

func (s exactShape[V]) apply(w *walker, v dmx.Value) error {
	x, ok := v.(V)
	if !ok {
		var zero V
		return w.mismatch(zero.Kind().String(), v)
	}
	*s.dst = x
	return nil
}

// Time captures a time attribute in raw ticks.
func Time(dst *dmx.Time) Shape { return exactShape[dmx.Time]{dst} }

// Color captures an RGBA color attribute.
func Color(dst *dmx.Color) Shape { return exactShape[dmx.Color]{dst} }

// Vector2 captures a two component vector attribute.
func Vector2(dst *dmx.Vector2) Shape { return exactShape[dmx.Vector2]{dst} }

// Vector3 captures a three component vector attribute.
func Vector3(dst *dmx.Vector3) Shape { return exactShape[dmx.Vector3]{dst} }

// Vector4 captures a four component vector attribute.
func Vector4(dst *dmx.Vector4) Shape { return exactShape[dmx.Vector4]{dst} }

// QAngle captures an Euler angle attribute.
func QAngle(dst *dmx.QAngle) Shape { return exactShape[dmx.QAngle]{dst} }

// Quaternion captures a quaternion attribute.
func Quaternion(dst *dmx.Quaternion) Shape { return exactShape[dmx.Quaternion]{dst} }

// Matrix captures a 4x4 matrix attribute.
func Matrix(dst *dmx.Matrix) Shape { return exactShape[dmx.Matrix]{dst} }

type intShape struct{ dst *int32 }

// Int captures an int attribute. A uint8 value widens without loss.
func Int(dst *int32) Shape { return intShape{dst} }

func (s intShape) apply(w *walker, v dmx.Value) error {
	switch v := v.(type) {
	case dmx.Int:
		*s.dst = int32(v)
	case dmx.UInt8:
		*s.dst = int32(v)
	default:
		return w.mismatch("int", v)
	}
	return nil
}

type int64Shape struct{ dst *int64 }

// Int64 captures an int, uint8, or uint64 attribute as an int64.
// A uint64 value beyond the int64 range fails rather than wrapping.
func Int64(dst *int64) Shape { return int64Shape{dst} }

func (s int64Shape) apply(w *walker, v dmx.Value) error {
	switch v := v.(type) {
	case dmx.Int:
		*s.dst = int64(v)
	case dmx.UInt8:
		*s.dst = int64(v)
	case dmx.UInt64:
		if uint64(v) > math.MaxInt64 {
			return w.fail(fmt.Errorf("%w: uint64 %d overflows int64", ErrTypeMismatch, uint64(v)))
		}
		*s.dst = int64(v)
	default:
		return w.mismatch("int64", v)
	}
	return nil
}

type floatShape struct{ dst *float32 }

// Float captures a float attribute. Int and uint8 values widen.
func Float(dst *float32) Shape { return floatShape{dst} }

func (s floatShape) apply(w *walker, v dmx.Value) error {
	switch v := v.(type) {
	case dmx.Float:
		*s.dst = float32(v)
	case dmx.Int:
		*s.dst = float32(v)
	case dmx.UInt8:
		*s.dst = float32(v)
	default:
		return w.mismatch("float", v)
	}
	return nil
}

type float64Shape struct{ dst *float64 }

// Float64 captures a float, int, uint8, or uint64 attribute as a
// float64.
func Float64(dst *float64) Shape { return float64Shape{dst} }

func (s float64Shape) apply(w *walker, v dmx.Value) error {
	switch v := v.(type) {
	case dmx.Float:
		*s.dst = float64(v)
	case dmx.Int:
		*s.dst = float64(v)
	case dmx.UInt8:
		*s.dst = float64(v)
	case dmx.UInt64:
		*s.dst = float64(v)
	default:
		return w.mismatch("float64", v)
	}
	return nil
}

type uint64Shape struct{ dst *uint64 }

// UInt64 captures a uint64 attribute. A uint8 value widens.
func UInt64(dst *uint64) Shape { return uint64Shape{dst} }

func (s uint64Shape) apply(w *walker, v dmx.Value) error {
	switch v := v.(type) {
	case dmx.UInt64:
		*s.dst = uint64(v)
	case dmx.UInt8:
		*s.dst = uint64(v)
	default:
		return w.mismatch("uint64", v)
	}
	return nil
}

type uint8Shape struct{ dst *uint8 }

// UInt8 captures a uint8 attribute.
func UInt8(dst *uint8) Shape { return uint8Shape{dst} }

func (s uint8Shape) apply(w *walker, v dmx.Value) error {
	x, ok := v.(dmx.UInt8)
	if !ok {
		return w.mismatch("uint8", v)
	}
	*s.dst = uint8(x)
	return nil
}

type boolShape struct{ dst *bool }

// Bool captures a bool attribute.
func Bool(dst *bool) Shape { return boolShape{dst} }

func (s boolShape) apply(w *walker, v dmx.Value) error {
	x, ok := v.(dmx.Bool)
	if !ok {
		return w.mismatch("bool", v)
	}
	*s.dst = bool(x)
	return nil
}

type stringShape struct{ dst *string }

// String captures a string attribute.
func String(dst *string) Shape { return stringShape{dst} }

func (s stringShape) apply(w *walker, v dmx.Value) error {
	x, ok := v.(dmx.String)
	if !ok {
		return w.mismatch("string", v)
	}
	*s.dst = string(x)
	return nil
}

type bytesShape struct{ dst *[]byte }

// Bytes captures a binary attribute. The slice aliases the document's
// backing buffer when the document was decoded from a byte slice.
func Bytes(dst *[]byte) Shape { return bytesShape{dst} }

func (s bytesShape) apply(w *walker, v dmx.Value) error {
	x, ok := v.(dmx.Binary)
	if !ok {
		return w.mismatch("binary", v)
	}
	*s.dst = []byte(x)
	return nil
}

type durationShape struct{ dst *time.Duration }

// Duration captures a time attribute converted from ticks.
func Duration(dst *time.Duration) Shape { return durationShape{dst} }

func (s durationShape) apply(w *walker, v dmx.Value) error {
	x, ok := v.(dmx.Time)
	if !ok {
		return w.mismatch("time", v)
	}
	*s.dst = x.Duration()
	return nil
}

type idShape struct{ dst *dmx.ObjectId }

// ID captures the identifier of a referenced element without expanding
// it. A null reference stores the zero identifier.
func ID(dst *dmx.ObjectId) Shape { return idShape{dst} }

func (s idShape) apply(w *walker, v dmx.Value) error {
	el, err := w.peek(v)
	if err != nil || el == nil {
		*s.dst = dmx.ObjectId{}
		return err
	}
	*s.dst = el.ID
	return nil
}

type refShape struct{ dst *dmx.ElementRef }

// Ref captures an element reference as is, null included, without
// expanding the target.
func Ref(dst *dmx.ElementRef) Shape { return refShape{dst} }

func (s refShape) apply(w *walker, v dmx.Value) error {
	ref, ok := v.(dmx.ElementRef)
	if !ok {
		return w.mismatch("element", v)
	}
	*s.dst = ref
	return nil
}

type typeNameShape struct{ dst *string }

// TypeName captures the type name of a referenced element without
// expanding it. A null reference stores the empty string.
func TypeName(dst *string) Shape { return typeNameShape{dst} }

func (s typeNameShape) apply(w *walker, v dmx.Value) error {
	el, err := w.peek(v)
	if err != nil || el == nil {
		*s.dst = ""
		return err
	}
	*s.dst = el.Type
	return nil
}

type instanceNameShape struct{ dst *string }

// InstanceName captures the instance name of a referenced element
// without expanding it. A null reference stores the empty string.
func InstanceName(dst *string) Shape { return instanceNameShape{dst} }

func (s instanceNameShape) apply(w *walker, v dmx.Value) error {
	el, err := w.peek(v)
	if err != nil || el == nil {
		*s.dst = ""
		return err
	}
	*s.dst = el.Name
	return nil
}

type valueShape struct{ dst *dmx.Value }

// Value captures an attribute of any kind unchanged.
func Value(dst *dmx.Value) Shape { return valueShape{dst} }

func (s valueShape) apply(w *walker, v dmx.Value) error {
	*s.dst = v
	return nil
}
