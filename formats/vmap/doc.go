// Package vmap deserializes Source 2 map documents into typed structs.
//
// A map document is a decoded pool whose root is a CMapRootElement.
// ReadMap walks the whole graph in one call:
//
//	doc, err := decode.FromBytes(data)
//	if err != nil {
//		return err
//	}
//	m, err := vmap.ReadMap(doc)
//
// The structs here cover the element types every Hammer build writes.
// Children lists are heterogeneous, so they deserialize as []any
// through the package Registry: a registered type comes back as its
// struct, anything else as a generic *Node carrying the element's
// type, name, identifier, and raw attributes. Game or editor specific
// types can be added with Registry.Register.
//
// This package only reads. Field sets follow the map format as Hammer
// writes it, so a document missing a required attribute fails with
// schema.ErrMissingField naming the attribute and element type.
package vmap
