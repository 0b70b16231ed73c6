package schema

import (
	"fmt"

	dmx "github.com/dmx-format/go-dmx"
)

// Field binds one attribute of an element to a shape.
type Field struct {
	Name     string
	Shape    Shape
	Optional bool
}

// F builds a required field. Deserialization fails when the element
// carries no attribute with the given name.
func F(name string, s Shape) Field {
	return Field{Name: name, Shape: s}
}

// Opt builds an optional field. An absent attribute leaves the
// destination untouched.
func Opt(name string, s Shape) Field {
	return Field{Name: name, Shape: s, Optional: true}
}

type objectShape struct {
	fields []Field
}

// Object expands an element reference and applies each field shape to
// the matching attribute. Fields run in declaration order. Attributes
// the shape does not name are ignored.
func Object(fields ...Field) Shape {
	return objectShape{fields: fields}
}

func (s objectShape) apply(w *walker, v dmx.Value) error {
	ref, ok := v.(dmx.ElementRef)
	if !ok {
		return w.mismatch("element", v)
	}
	return w.expand(ref, func(el *dmx.Element) error {
		for _, f := range s.fields {
			v, ok := el.Get(f.Name)
			if !ok {
				if f.Optional {
					continue
				}
				w.push(f.Name)
				return w.fail(fmt.Errorf("%w: %q on %s", ErrMissingField, f.Name, el.Type))
			}
			prev := w.push(f.Name)
			if err := f.Shape.apply(w, v); err != nil {
				return err
			}
			w.path = prev
		}
		return nil
	})
}
