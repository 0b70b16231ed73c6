package schema

import "errors"

var (
	// ErrTypeMismatch reports an attribute value whose kind cannot feed
	// the target shape.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrMissingField reports a required object field with no attribute
	// of that name on the element.
	ErrMissingField = errors.New("missing field")

	// ErrCyclicReference reports an element expanded again while its own
	// expansion is still in progress. Reference cycles can only be
	// deserialized through identity shapes (Ref, ID).
	ErrCyclicReference = errors.New("cyclic element reference")

	// ErrNotImplemented reports a shape and value combination the engine
	// has no mapping for, such as a sum dispatch on an element type with
	// no registered variant. The engine fails rather than guessing.
	ErrNotImplemented = errors.New("not implemented")
)

// PathError locates a deserialization failure by the attribute path from
// the root element, e.g. "world.children[3].origin".
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error { return e.Err }
