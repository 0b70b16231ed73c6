package dmx

import (
	"testing"
	"time"
)

func id16(n byte) ObjectId {
	var b [16]byte
	b[0] = 0xfe
	b[15] = n
	id, err := ObjectIdFromBytes(b[:])
	if err != nil {
		panic(err)
	}
	return id
}

func poolDoc() *Document {
	return &Document{
		Encoding:        "binary",
		EncodingVersion: 9,
		Format:          "vmap",
		FormatVersion:   35,
		Prefix: []Attribute{
			{Name: "map_asset_references", Value: StringArray{"a.vmat"}},
			{Name: "asset_preview_thumbnail_format", Value: String("png")},
		},
		Elements: []Element{
			{Type: "CMapRootElement", Name: "root", ID: id16(1)},
			{Type: "CMapWorld", Name: "world", ID: id16(2)},
			{Type: "CMapEntity", Name: "spawn", ID: id16(3)},
		},
	}
}

func TestDocumentElement(t *testing.T) {
	doc := poolDoc()
	if doc.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", doc.Len())
	}
	if el := doc.Element(1); el == nil || el.Name != "world" {
		t.Errorf("Element(1) = %+v, want world", el)
	}
	for _, i := range []int{-1, 3, 99} {
		if el := doc.Element(i); el != nil {
			t.Errorf("Element(%d) = %+v, want nil", i, el)
		}
	}
	if doc.Root() != doc.Element(0) {
		t.Error("Root() is not element 0")
	}
	empty := &Document{}
	if empty.Root() != nil {
		t.Error("empty document Root() != nil")
	}
}

func TestResolve(t *testing.T) {
	doc := poolDoc()
	if el := doc.Resolve(NullElement); el != nil {
		t.Errorf("Resolve(null) = %+v, want nil", el)
	}
	if el := doc.Resolve(ElementRef(2)); el == nil || el.Name != "spawn" {
		t.Errorf("Resolve(2) = %+v, want spawn", el)
	}
	if el := doc.Resolve(ElementRef(99)); el != nil {
		t.Errorf("Resolve(99) = %+v, want nil", el)
	}
}

func TestLookupByID(t *testing.T) {
	doc := poolDoc()
	i, ok := doc.Index(id16(3))
	if !ok || i != 2 {
		t.Errorf("Index = %d, %v, want 2, true", i, ok)
	}
	el, ok := doc.Lookup(id16(2))
	if !ok || el.Name != "world" {
		t.Errorf("Lookup = %+v, %v, want world", el, ok)
	}
	if _, ok := doc.Lookup(id16(9)); ok {
		t.Error("Lookup of unknown GUID succeeded")
	}
	if _, ok := doc.Index(ObjectId{}); ok {
		t.Error("Index of zero GUID succeeded")
	}
}

func TestPrefixAttr(t *testing.T) {
	doc := poolDoc()
	v, ok := doc.PrefixAttr("asset_preview_thumbnail_format")
	if !ok || v != String("png") {
		t.Errorf("PrefixAttr = %#v, %v", v, ok)
	}
	if _, ok := doc.PrefixAttr("missing"); ok {
		t.Error("PrefixAttr of unknown name succeeded")
	}
}

func TestAll(t *testing.T) {
	doc := poolDoc()
	var names []string
	for i, el := range doc.All() {
		if el != doc.Element(i) {
			t.Errorf("All() index %d does not match Element(%d)", i, i)
		}
		names = append(names, el.Name)
	}
	want := []string{"root", "world", "spawn"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("All() order %v, want %v", names, want)
		}
	}

	var first string
	for _, el := range doc.All() {
		first = el.Name
		break
	}
	if first != "root" {
		t.Errorf("early break saw %q, want root", first)
	}
}

func TestElementGet(t *testing.T) {
	el := &Element{
		Type: "DmElement",
		Name: "e",
		Attrs: []Attribute{
			{Name: "x", Value: Int(1)},
			{Name: "y", Value: Int(2)},
			{Name: "x", Value: Int(3)},
		},
	}
	v, ok := el.Get("x")
	if !ok || v != Int(1) {
		t.Errorf("Get(x) = %#v, want first declaration Int(1)", v)
	}
	if _, ok := el.Get("z"); ok {
		t.Error("Get of absent attribute succeeded")
	}
}

func TestTimeConversions(t *testing.T) {
	if got := Time(15000).Seconds(); got != 1.5 {
		t.Errorf("Seconds() = %v, want 1.5", got)
	}
	if got := Time(15000).Duration(); got != 1500*time.Millisecond {
		t.Errorf("Duration() = %v, want 1.5s", got)
	}
	if got := Time(-10000).Seconds(); got != -1 {
		t.Errorf("Seconds() = %v, want -1", got)
	}
}

func TestElementRef(t *testing.T) {
	if !NullElement.IsNull() {
		t.Error("NullElement.IsNull() = false")
	}
	if ElementRef(0).IsNull() {
		t.Error("ElementRef(0).IsNull() = true")
	}
	if i, ok := ElementRef(7).Index(); !ok || i != 7 {
		t.Errorf("Index() = %d, %v, want 7, true", i, ok)
	}
	if _, ok := NullElement.Index(); ok {
		t.Error("null Index() reported a pool index")
	}
}

func TestObjectId(t *testing.T) {
	id := id16(1)
	if id.IsZero() {
		t.Error("nonzero GUID reported zero")
	}
	if !(ObjectId{}).IsZero() {
		t.Error("zero GUID not reported zero")
	}
	if got, want := id.String(), "fe000000-0000-0000-0000-000000000001"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if _, err := ObjectIdFromBytes(make([]byte, 15)); err == nil {
		t.Error("want error for short GUID slice")
	}
}

func TestLenItem(t *testing.T) {
	if got := Len(Int(1)); got != -1 {
		t.Errorf("Len(scalar) = %d, want -1", got)
	}
	if got := Len(IntArray{4, 5, 6}); got != 3 {
		t.Errorf("Len = %d, want 3", got)
	}
	if got := Item(IntArray{4, 5, 6}, 1); got != Int(5) {
		t.Errorf("Item = %#v, want Int(5)", got)
	}
	if got := Item(StringArray{"a"}, 0); got != String("a") {
		t.Errorf("Item = %#v, want String(a)", got)
	}
	if got := Item(ElementArray{2, NullElement}, 1); got != NullElement {
		t.Errorf("Item = %#v, want null ref", got)
	}
	if got := Item(IntArray{4}, 1); got != nil {
		t.Errorf("Item out of range = %#v, want nil", got)
	}
	if got := Item(Int(1), 0); got != nil {
		t.Errorf("Item on scalar = %#v, want nil", got)
	}
}

func TestMatrixAt(t *testing.T) {
	var m Matrix
	for i := range m {
		m[i] = float32(i)
	}
	if got := m.At(1, 2); got != 6 {
		t.Errorf("At(1,2) = %v, want 6", got)
	}
	if got := m.At(3, 3); got != 15 {
		t.Errorf("At(3,3) = %v, want 15", got)
	}
}
