package schema

import (
	"fmt"
	"strconv"

	dmx "github.com/dmx-format/go-dmx"
	"github.com/dmx-format/go-dmx/debug"
)

// Deserialize applies a shape to the document root (element 0).
func Deserialize(doc *dmx.Document, s Shape) error {
	return DeserializeAt(doc, 0, s)
}

// DeserializeAt applies a shape to the element at the given pool index.
func DeserializeAt(doc *dmx.Document, index int, s Shape) error {
	if doc.Element(index) == nil {
		return fmt.Errorf("element %d outside pool of %d", index, doc.Len())
	}
	if debug.Schema() {
		debug.Logf("schema: deserialize element %d of %d\n", index, doc.Len())
	}
	w := &walker{doc: doc, onPath: map[int]struct{}{}}
	return s.apply(w, dmx.ElementRef(index))
}

// walker carries the engine state for one Deserialize call: the document,
// the attribute path for error reporting, and the set of element indices
// whose expansion is in progress.
type walker struct {
	doc    *dmx.Document
	path   string
	onPath map[int]struct{}
	trail  []int
}

// push extends the path with an attribute name, returning the previous
// path for restoring.
func (w *walker) push(name string) (prev string) {
	prev = w.path
	if w.path == "" {
		w.path = name
	} else {
		w.path = w.path + "." + name
	}
	return prev
}

// pushIndex extends the path with a sequence index, returning the previous
// path for restoring.
func (w *walker) pushIndex(i int) (prev string) {
	prev = w.path
	w.path += "[" + strconv.Itoa(i) + "]"
	return prev
}

// fail wraps an engine failure with the current path.
func (w *walker) fail(err error) error {
	return &PathError{Path: w.path, Err: err}
}

func (w *walker) mismatch(want string, got dmx.Value) error {
	return w.fail(fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, want, got.Kind()))
}

// peek resolves a reference to its element without entering it, for the
// identity shapes that read element metadata. Null resolves to nil.
func (w *walker) peek(v dmx.Value) (*dmx.Element, error) {
	ref, ok := v.(dmx.ElementRef)
	if !ok {
		return nil, w.mismatch("element", v)
	}
	i, ok := ref.Index()
	if !ok {
		return nil, nil
	}
	el := w.doc.Element(i)
	if el == nil {
		return nil, w.fail(fmt.Errorf("element %d outside pool of %d", i, w.doc.Len()))
	}
	return el, nil
}

// expand resolves a non-null reference and runs f with the target element,
// guarding against re-entering an element whose expansion is in progress.
// Identity shapes (Ref, ID, TypeName, InstanceName) go through peek
// instead, so back-edges expressed through them never trip the guard.
func (w *walker) expand(ref dmx.ElementRef, f func(el *dmx.Element) error) error {
	i, ok := ref.Index()
	if !ok {
		return w.fail(fmt.Errorf("%w: null element reference", ErrTypeMismatch))
	}
	el := w.doc.Element(i)
	if el == nil {
		return w.fail(fmt.Errorf("element %d outside pool of %d", i, w.doc.Len()))
	}
	if _, open := w.onPath[i]; open {
		return w.fail(fmt.Errorf("%w: element %d re-entered via %v", ErrCyclicReference, i, append(w.trail, i)))
	}
	w.onPath[i] = struct{}{}
	w.trail = append(w.trail, i)
	err := f(el)
	delete(w.onPath, i)
	w.trail = w.trail[:len(w.trail)-1]
	return err
}
