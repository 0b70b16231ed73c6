// Package schema deserializes decoded documents into Go values.
//
// # Overview
//
// A decoded document is a pool of dynamically typed elements. This
// package maps that pool onto ordinary Go structs through shapes:
// small descriptions of what one attribute, element, or subtree should
// look like and where its data goes. Shapes compose, so one Deserialize
// call can fill an entire object graph.
//
//	var world struct {
//		Name   string
//		Origin dmx.Vector3
//	}
//	shape := schema.Object(
//		schema.F("name", schema.String(&world.Name)),
//		schema.F("origin", schema.Vector3(&world.Origin)),
//	)
//	err := schema.Deserialize(doc, shape)
//
// Scalar shapes such as String, Int, and Vector3 capture one attribute
// value. Int, Int64, Float, Float64, and UInt64 additionally accept
// narrower numeric kinds and widen them; every other combination is a
// type mismatch. Object expands an element reference and applies field
// shapes to its attributes, List maps an array attribute onto a slice,
// Deref follows a reference into a freshly allocated struct, and Sum
// dispatches on the referenced element's type name.
//
// # Paths and Errors
//
// Failures wrap one of the package sentinels (ErrTypeMismatch,
// ErrMissingField, ErrCyclicReference, ErrNotImplemented) in a
// PathError whose Path names the attribute that failed, in the form
//
//	world.children[3].origin
//
// so errors.Is works against the sentinel and the message locates the
// fault in the document.
//
// # Cycles
//
// Element references may form cycles. Shapes that expand a reference
// (Object and Map, and Deref or Sum wrapping one) refuse to re-enter
// an element whose expansion is still in progress and fail with
// ErrCyclicReference. Back edges are still representable: Ref, ID,
// TypeName, and InstanceName capture a reference without expanding it,
// so a parent pointer deserializes as an index or identifier rather
// than a nested struct.
//
// # Sums and Registries
//
// Sum takes a literal map from element type name to VariantFunc. A
// Registry holds the same mapping behind a mutex, so independent
// packages can register variants for their own element types and share
// one dispatch table; Registry.Sum builds a shape backed by it.
//
// # Related Packages
//
//   - github.com/dmx-format/go-dmx - document and value model
//   - github.com/dmx-format/go-dmx/decode - binary decoding
//   - github.com/dmx-format/go-dmx/formats/vmap - map file shapes built on this package
package schema
