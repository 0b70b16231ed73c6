package dmx

// Attribute is a named value on an element. Attributes keep their wire
// declaration order.
type Attribute struct {
	Name  string
	Value Value
}

// Element is one node of the document graph.
type Element struct {
	// Type is the element class name, e.g. "CMapWorld" or "DmElement".
	Type string

	// Name is the instance name.
	Name string

	// ID is the element GUID.
	ID ObjectId

	Attrs []Attribute
}

// Get returns the value of the named attribute.
func (e *Element) Get(name string) (Value, bool) {
	n := len(e.Attrs)
	for i := range n {
		if e.Attrs[i].Name == name {
			return e.Attrs[i].Value, true
		}
	}
	return nil, false
}
