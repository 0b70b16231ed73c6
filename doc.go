// Package dmx provides the in-memory representation of DMX documents.
//
// # Overview
//
// DMX (Data Model eXchange) is Valve's element-graph serialization format.
// A document is a flat pool of elements; each element has a type name, an
// instance name, a 16-byte GUID, and an ordered list of attributes. Element
// attributes reference other elements by pool index, so a document forms an
// arbitrary directed graph (including cycles) over a flat array.
//
// The dmx package defines that model: Document, Element, Attribute, and the
// closed set of attribute Value kinds. Documents are produced by the decode
// package from the binary version 9 encoding and are read-only afterwards.
//
// # Value Kinds
//
// Attribute values form a closed sum. The Type enumeration lists every kind;
// each kind has exactly one concrete Go type implementing Value:
//
//   - numeric: Int, Float, UInt64, UInt8
//   - text and bytes: String, Binary
//   - logic and time: Bool, Time (1/10000 second ticks)
//   - spatial: Vector2, Vector3, Vector4, QAngle, Quaternion, Matrix, Color
//   - references: ElementRef (element pool index, negative means null)
//   - identity: ObjectId (the 16-byte element GUID)
//
// Every scalar kind except UInt8 and ObjectId also has an array form
// (IntArray, Vector3Array, ...). Arrays are homogeneous by construction:
// each array kind is a typed slice.
//
// Inspect a value by type switch:
//
//	switch v := val.(type) {
//	case dmx.Int:
//		use(int32(v))
//	case dmx.Vector3:
//		use(v.X, v.Y, v.Z)
//	case dmx.ElementArray:
//		for _, ref := range v {
//			child := doc.Resolve(ref)
//		}
//	}
//
// or dispatch on val.Kind().
//
// # Documents
//
// A Document holds the decoded header fields, the prefix attributes, and the
// element pool in declaration order. Element 0 is the document root.
//
//	doc, err := decode.FromBytes(data)
//	if err != nil { ... }
//	root := doc.Root()
//	if v, ok := root.Get("map_asset_references"); ok { ... }
//
// ElementRef values are resolved through the owning document:
//
//	child := doc.Resolve(ref) // nil when ref is null or out of range
//
// Resolve never walks attribute edges; it is an index lookup only. Graph
// traversal (and cycle handling) belongs to callers or to the schema
// package's deserialization engine.
//
// # Ownership
//
// Documents decoded from a byte slice may alias that slice: Binary values
// point into the original buffer. Such documents report Borrowed == true and
// are only valid while the buffer is. Documents decoded from an io.Reader
// own all of their memory.
//
// # Thread Safety
//
// A Document is immutable after decoding and safe for concurrent reads.
// Mutating a Document or anything reachable from it is not supported.
//
// # Related Packages
//
//   - github.com/dmx-format/go-dmx/decode - Decodes binary version 9 documents
//   - github.com/dmx-format/go-dmx/schema - Deserializes documents into Go values
//   - github.com/dmx-format/go-dmx/dump - Renders documents for inspection
//   - github.com/dmx-format/go-dmx/formats/vmap - Schemas for map documents
package dmx
