package dmx

import (
	"iter"
	"sync"
)

// Document is a decoded DMX document: the header fields, the prefix
// attributes, and the element pool. The decode package fills all exported
// fields; afterwards the document is read-only.
type Document struct {
	// Encoding and EncodingVersion repeat the file header. After a
	// successful decode they are "binary" and 9.
	Encoding        string
	EncodingVersion int

	// Format and FormatVersion name the data model the document carries,
	// e.g. "vmap" 35. They are carried, not interpreted.
	Format        string
	FormatVersion int

	// Prefix holds the prefix attributes stored ahead of the string table.
	Prefix []Attribute

	// Elements is the element pool in declaration order. Element 0 is the
	// document root.
	Elements []Element

	// Borrowed reports that Binary values alias the decoder's input
	// buffer; the buffer must then outlive the document.
	Borrowed bool

	idOnce sync.Once
	byID   map[ObjectId]int
}

func (d *Document) Len() int { return len(d.Elements) }

// Element returns the element at pool index i, or nil when i is out of
// range.
func (d *Document) Element(i int) *Element {
	if i < 0 || i >= len(d.Elements) {
		return nil
	}
	return &d.Elements[i]
}

// Root returns element 0, or nil for an empty document.
func (d *Document) Root() *Element {
	return d.Element(0)
}

// Resolve returns the element a reference points at, or nil for the null
// reference and for out-of-range indexes. It is a single pool lookup and
// never follows attribute edges.
func (d *Document) Resolve(ref ElementRef) *Element {
	i, ok := ref.Index()
	if !ok {
		return nil
	}
	return d.Element(i)
}

// Index returns the pool index of the element with the given GUID.
func (d *Document) Index(id ObjectId) (int, bool) {
	d.idOnce.Do(d.buildIndex)
	i, ok := d.byID[id]
	return i, ok
}

// Lookup returns the element with the given GUID.
func (d *Document) Lookup(id ObjectId) (*Element, bool) {
	i, ok := d.Index(id)
	if !ok {
		return nil, false
	}
	return &d.Elements[i], true
}

// PrefixAttr returns the value of the named prefix attribute.
func (d *Document) PrefixAttr(name string) (Value, bool) {
	for i := range d.Prefix {
		if d.Prefix[i].Name == name {
			return d.Prefix[i].Value, true
		}
	}
	return nil, false
}

// All iterates the element pool in declaration order.
func (d *Document) All() iter.Seq2[int, *Element] {
	return func(yield func(int, *Element) bool) {
		for i := range d.Elements {
			if !yield(i, &d.Elements[i]) {
				return
			}
		}
	}
}

func (d *Document) buildIndex() {
	d.byID = make(map[ObjectId]int, len(d.Elements))
	for i := range d.Elements {
		d.byID[d.Elements[i].ID] = i
	}
}
