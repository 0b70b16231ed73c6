package schema

import (
	"fmt"

	dmx "github.com/dmx-format/go-dmx"
)

type listShape[T any] struct {
	dst  *[]T
	item func(*T) Shape
}

// List collects an array attribute into a slice. The item function
// builds the shape for each slot, so element order and count carry
// over from the attribute.
func List[T any](dst *[]T, item func(*T) Shape) Shape {
	return listShape[T]{dst: dst, item: item}
}

func (s listShape[T]) apply(w *walker, v dmx.Value) error {
	n := dmx.Len(v)
	if n < 0 {
		return w.mismatch("array", v)
	}
	out := make([]T, n)
	for i := range n {
		prev := w.pushIndex(i)
		if err := s.item(&out[i]).apply(w, dmx.Item(v, i)); err != nil {
			return err
		}
		w.path = prev
	}
	*s.dst = out
	return nil
}

type ptrShape[T any] struct {
	dst   **T
	shape func(*T) Shape
}

// PtrTo allocates a T and applies the inner shape to it, so presence of
// an optional field is observable as a non nil pointer.
func PtrTo[T any](dst **T, shape func(*T) Shape) Shape {
	return ptrShape[T]{dst: dst, shape: shape}
}

func (s ptrShape[T]) apply(w *walker, v dmx.Value) error {
	p := new(T)
	if err := s.shape(p).apply(w, v); err != nil {
		return err
	}
	*s.dst = p
	return nil
}

type derefShape[T any] struct {
	dst   **T
	shape func(*T) Shape
}

// Deref follows an element reference into a freshly allocated T. A null
// reference stores nil. The inner shape, usually Object, performs the
// expansion, so a reference cycle reached through Deref fails the same
// way it does through a direct Object field.
func Deref[T any](dst **T, shape func(*T) Shape) Shape {
	return derefShape[T]{dst: dst, shape: shape}
}

func (s derefShape[T]) apply(w *walker, v dmx.Value) error {
	ref, ok := v.(dmx.ElementRef)
	if !ok {
		return w.mismatch("element", v)
	}
	if ref.IsNull() {
		*s.dst = nil
		return nil
	}
	p := new(T)
	if err := s.shape(p).apply(w, ref); err != nil {
		return err
	}
	*s.dst = p
	return nil
}

type allShape []Shape

// All applies every shape to the same value in order, stopping at the
// first failure. It combines identity shapes such as TypeName or ID
// with an expanding shape over one attribute.
func All(shapes ...Shape) Shape { return allShape(shapes) }

func (s allShape) apply(w *walker, v dmx.Value) error {
	for _, inner := range s {
		if err := inner.apply(w, v); err != nil {
			return err
		}
	}
	return nil
}

type attrMapShape struct{ dst *map[string]dmx.Value }

// Map expands a referenced element into a name to value map, for
// property bags whose attribute names are not known ahead of time.
// The first attribute wins when an element repeats a name. A null
// reference stores a nil map.
func Map(dst *map[string]dmx.Value) Shape { return attrMapShape{dst} }

func (s attrMapShape) apply(w *walker, v dmx.Value) error {
	ref, ok := v.(dmx.ElementRef)
	if !ok {
		return w.mismatch("element", v)
	}
	if ref.IsNull() {
		*s.dst = nil
		return nil
	}
	return w.expand(ref, func(el *dmx.Element) error {
		m := make(map[string]dmx.Value, len(el.Attrs))
		for _, a := range el.Attrs {
			if _, seen := m[a.Name]; !seen {
				m[a.Name] = a.Value
			}
		}
		*s.dst = m
		return nil
	})
}

// VariantFunc builds a fresh destination for one sum variant together
// with the shape that fills it.
type VariantFunc func() (any, Shape)

// SumOption adjusts how a sum shape dispatches.
type SumOption func(*sumShape)

// WithDefaultVariant makes a sum fall back to the given variant when an
// element type has no explicit entry, instead of failing with
// ErrNotImplemented.
func WithDefaultVariant(f VariantFunc) SumOption {
	return func(s *sumShape) { s.fallback = f }
}

// variantSource resolves an element type name to its variant. Both the
// literal map form of Sum and Registry satisfy it.
type variantSource interface {
	variant(typeName string) (VariantFunc, bool)
}

type mapSource map[string]VariantFunc

func (m mapSource) variant(typeName string) (VariantFunc, bool) {
	f, ok := m[typeName]
	return f, ok
}

type sumShape struct {
	dst      *any
	source   variantSource
	fallback VariantFunc
}

// Sum dispatches an element reference on the target's type name. The
// chosen variant builds the destination stored into dst; a null
// reference stores nil. An element type with no variant and no default
// fails with ErrNotImplemented.
func Sum(dst *any, variants map[string]VariantFunc, opts ...SumOption) Shape {
	s := &sumShape{dst: dst, source: mapSource(variants)}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *sumShape) apply(w *walker, v dmx.Value) error {
	ref, ok := v.(dmx.ElementRef)
	if !ok {
		return w.mismatch("element", v)
	}
	i, isRef := ref.Index()
	if !isRef {
		*s.dst = nil
		return nil
	}
	el := w.doc.Element(i)
	if el == nil {
		return w.fail(fmt.Errorf("element %d outside pool of %d", i, w.doc.Len()))
	}
	f, ok := s.source.variant(el.Type)
	if !ok {
		f = s.fallback
	}
	if f == nil {
		return w.fail(fmt.Errorf("%w: no variant for element type %q", ErrNotImplemented, el.Type))
	}
	out, shape := f()
	if err := shape.apply(w, ref); err != nil {
		return err
	}
	*s.dst = out
	return nil
}
