package schema

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	dmx "github.com/dmx-format/go-dmx"
)

func testID(n byte) dmx.ObjectId {
	var b [16]byte
	b[0] = 0x4d
	b[15] = n
	id, err := dmx.ObjectIdFromBytes(b[:])
	if err != nil {
		panic(err)
	}
	return id
}

// mapDoc builds a small map-like document by hand:
//
//	0 CMapRootElement root
//	1 CMapWorld world    <- root.world
//	2 CMapEntity spawn   <- world.children[0], parent back to 1
//	3 CMapGroup group    <- world.children[1]
//	4 CMapEntity light   <- group.children[0]
func mapDoc() *dmx.Document {
	return &dmx.Document{
		Encoding:        "binary",
		EncodingVersion: 9,
		Format:          "vmap",
		FormatVersion:   35,
		Elements: []dmx.Element{
			{
				Type: "CMapRootElement", Name: "root", ID: testID(1),
				Attrs: []dmx.Attribute{
					{Name: "world", Value: dmx.ElementRef(1)},
					{Name: "isprefab", Value: dmx.Bool(false)},
					{Name: "activecamera", Value: dmx.NullElement},
				},
			},
			{
				Type: "CMapWorld", Name: "world", ID: testID(2),
				Attrs: []dmx.Attribute{
					{Name: "name", Value: dmx.String("world")},
					{Name: "origin", Value: dmx.Vector3{X: 16, Y: -32}},
					{Name: "angles", Value: dmx.QAngle{Yaw: 90}},
					{Name: "nodeid", Value: dmx.Int(1)},
					{Name: "children", Value: dmx.ElementArray{2, 3}},
					{Name: "tags", Value: dmx.StringArray{"dev", "test", "indoor"}},
					{Name: "scales", Value: dmx.FloatArray{}},
					{Name: "weights", Value: dmx.FloatArray{0.25}},
				},
			},
			{
				Type: "CMapEntity", Name: "spawn", ID: testID(3),
				Attrs: []dmx.Attribute{
					{Name: "targetname", Value: dmx.String("spawn")},
					{Name: "origin", Value: dmx.Vector3{Z: 64}},
					{Name: "parent", Value: dmx.ElementRef(1)},
				},
			},
			{
				Type: "CMapGroup", Name: "group", ID: testID(4),
				Attrs: []dmx.Attribute{
					{Name: "name", Value: dmx.String("group")},
					{Name: "children", Value: dmx.ElementArray{4}},
				},
			},
			{
				Type: "CMapEntity", Name: "light", ID: testID(5),
				Attrs: []dmx.Attribute{
					{Name: "targetname", Value: dmx.String("light")},
					{Name: "origin", Value: dmx.Vector3{X: 8, Y: 8, Z: 128}},
					{Name: "brightness", Value: dmx.Float(0.5)},
				},
			},
		},
	}
}

func numsDoc() *dmx.Document {
	return &dmx.Document{
		Encoding:        "binary",
		EncodingVersion: 9,
		Format:          "dmx",
		FormatVersion:   18,
		Elements: []dmx.Element{{
			Type: "DmElement", Name: "nums", ID: testID(9),
			Attrs: []dmx.Attribute{
				{Name: "i", Value: dmx.Int(-5)},
				{Name: "u8", Value: dmx.UInt8(200)},
				{Name: "u64", Value: dmx.UInt64(1 << 40)},
				{Name: "u64max", Value: dmx.UInt64(math.MaxUint64)},
				{Name: "f", Value: dmx.Float(1.5)},
				{Name: "t", Value: dmx.Time(15000)},
			},
		}},
	}
}

func TestObjectFields(t *testing.T) {
	type world struct {
		Name   string
		Origin dmx.Vector3
		Angles dmx.QAngle
		NodeID int32
	}
	var got world
	shape := Object(
		F("name", String(&got.Name)),
		F("origin", Vector3(&got.Origin)),
		F("angles", QAngle(&got.Angles)),
		F("nodeid", Int(&got.NodeID)),
	)
	if err := DeserializeAt(mapDoc(), 1, shape); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	want := world{
		Name:   "world",
		Origin: dmx.Vector3{X: 16, Y: -32},
		Angles: dmx.QAngle{Yaw: 90},
		NodeID: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("world mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingField(t *testing.T) {
	var s string
	err := DeserializeAt(mapDoc(), 1, Object(F("skyname", String(&s))))
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
	var pe *PathError
	if !errors.As(err, &pe) {
		t.Fatalf("got %T, want *PathError", err)
	}
	if pe.Path != "skyname" {
		t.Errorf("path %q, want %q", pe.Path, "skyname")
	}
	for _, sub := range []string{`"skyname"`, "CMapWorld"} {
		if !strings.Contains(err.Error(), sub) {
			t.Errorf("error %q does not mention %s", err, sub)
		}
	}
}

func TestOptionalAbsent(t *testing.T) {
	name, sky := "", "default"
	shape := Object(
		F("name", String(&name)),
		Opt("skyname", String(&sky)),
	)
	if err := DeserializeAt(mapDoc(), 1, shape); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if name != "world" {
		t.Errorf("name %q, want %q", name, "world")
	}
	if sky != "default" {
		t.Errorf("absent optional overwrote destination: %q", sky)
	}
}

func TestNumericWidening(t *testing.T) {
	doc := numsDoc()

	t.Run("int from uint8", func(t *testing.T) {
		var got int32
		if err := Deserialize(doc, Object(F("u8", Int(&got)))); err != nil {
			t.Fatal(err)
		}
		if got != 200 {
			t.Errorf("got %d, want 200", got)
		}
	})
	t.Run("int64 from int", func(t *testing.T) {
		var got int64
		if err := Deserialize(doc, Object(F("i", Int64(&got)))); err != nil {
			t.Fatal(err)
		}
		if got != -5 {
			t.Errorf("got %d, want -5", got)
		}
	})
	t.Run("int64 from uint64", func(t *testing.T) {
		var got int64
		if err := Deserialize(doc, Object(F("u64", Int64(&got)))); err != nil {
			t.Fatal(err)
		}
		if got != 1<<40 {
			t.Errorf("got %d, want %d", got, int64(1)<<40)
		}
	})
	t.Run("int64 overflow", func(t *testing.T) {
		var got int64
		err := Deserialize(doc, Object(F("u64max", Int64(&got))))
		if !errors.Is(err, ErrTypeMismatch) {
			t.Fatalf("got %v, want ErrTypeMismatch", err)
		}
	})
	t.Run("float from int", func(t *testing.T) {
		var got float32
		if err := Deserialize(doc, Object(F("i", Float(&got)))); err != nil {
			t.Fatal(err)
		}
		if got != -5 {
			t.Errorf("got %v, want -5", got)
		}
	})
	t.Run("float64 from uint64", func(t *testing.T) {
		var got float64
		if err := Deserialize(doc, Object(F("u64", Float64(&got)))); err != nil {
			t.Fatal(err)
		}
		if got != float64(uint64(1)<<40) {
			t.Errorf("got %v", got)
		}
	})
	t.Run("uint64 from uint8", func(t *testing.T) {
		var got uint64
		if err := Deserialize(doc, Object(F("u8", UInt64(&got)))); err != nil {
			t.Fatal(err)
		}
		if got != 200 {
			t.Errorf("got %d, want 200", got)
		}
	})
	t.Run("no int from float", func(t *testing.T) {
		var got int32
		err := Deserialize(doc, Object(F("f", Int(&got))))
		if !errors.Is(err, ErrTypeMismatch) {
			t.Fatalf("got %v, want ErrTypeMismatch", err)
		}
	})
}

func TestTypeMismatchPath(t *testing.T) {
	var n int32
	err := DeserializeAt(mapDoc(), 1, Object(F("name", Int(&n))))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("got %v, want ErrTypeMismatch", err)
	}
	var pe *PathError
	if !errors.As(err, &pe) {
		t.Fatalf("got %T, want *PathError", err)
	}
	if pe.Path != "name" {
		t.Errorf("path %q, want %q", pe.Path, "name")
	}
	if !strings.Contains(err.Error(), "want int, got string") {
		t.Errorf("error %q does not name both kinds", err)
	}
}

func TestListCounts(t *testing.T) {
	doc := mapDoc()

	t.Run("empty", func(t *testing.T) {
		got := []float32{-1}
		shape := Object(F("scales", List(&got, func(f *float32) Shape { return Float(f) })))
		if err := DeserializeAt(doc, 1, shape); err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("got %v, want empty", got)
		}
	})
	t.Run("one", func(t *testing.T) {
		var got []float32
		shape := Object(F("weights", List(&got, func(f *float32) Shape { return Float(f) })))
		if err := DeserializeAt(doc, 1, shape); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]float32{0.25}, got); diff != "" {
			t.Errorf("weights mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("many", func(t *testing.T) {
		var got []string
		shape := Object(F("tags", List(&got, func(s *string) Shape { return String(s) })))
		if err := DeserializeAt(doc, 1, shape); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"dev", "test", "indoor"}, got); diff != "" {
			t.Errorf("tags mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("element refs", func(t *testing.T) {
		var got []dmx.ElementRef
		shape := Object(F("children", List(&got, func(r *dmx.ElementRef) Shape { return Ref(r) })))
		if err := DeserializeAt(doc, 1, shape); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]dmx.ElementRef{2, 3}, got); diff != "" {
			t.Errorf("children mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("scalar is not a list", func(t *testing.T) {
		var got []string
		shape := Object(F("name", List(&got, func(s *string) Shape { return String(s) })))
		err := DeserializeAt(doc, 1, shape)
		if !errors.Is(err, ErrTypeMismatch) {
			t.Fatalf("got %v, want ErrTypeMismatch", err)
		}
	})
}

type worldNode struct {
	Name     string
	Children []dmx.ElementRef
}

func worldNodeShape(w *worldNode) Shape {
	return Object(
		F("name", String(&w.Name)),
		F("children", List(&w.Children, func(r *dmx.ElementRef) Shape { return Ref(r) })),
	)
}

func TestDeref(t *testing.T) {
	var got struct{ World *worldNode }
	shape := Object(F("world", Deref(&got.World, worldNodeShape)))
	if err := Deserialize(mapDoc(), shape); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	want := &worldNode{Name: "world", Children: []dmx.ElementRef{2, 3}}
	if diff := cmp.Diff(want, got.World); diff != "" {
		t.Errorf("world mismatch (-want +got):\n%s", diff)
	}
}

func TestDerefNull(t *testing.T) {
	got := struct{ Camera *worldNode }{Camera: new(worldNode)}
	shape := Object(F("activecamera", Deref(&got.Camera, worldNodeShape)))
	if err := Deserialize(mapDoc(), shape); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if got.Camera != nil {
		t.Errorf("null reference left %+v, want nil", got.Camera)
	}
}

type parentLink struct {
	Name string
}

type childEntity struct {
	Targetname string
	Parent     *parentLink
}

func TestCyclicReference(t *testing.T) {
	doc := mapDoc()
	shape := func() Shape {
		var kids []childEntity
		return Object(F("children", List(&kids, func(e *childEntity) Shape {
			return Object(
				Opt("targetname", String(&e.Targetname)),
				Opt("parent", Deref(&e.Parent, func(p *parentLink) Shape {
					return Object(F("name", String(&p.Name)))
				})),
			)
		})))
	}

	err := DeserializeAt(doc, 1, shape())
	if !errors.Is(err, ErrCyclicReference) {
		t.Fatalf("got %v, want ErrCyclicReference", err)
	}
	var pe *PathError
	if !errors.As(err, &pe) {
		t.Fatalf("got %T, want *PathError", err)
	}
	if pe.Path != "children[0].parent" {
		t.Errorf("path %q, want %q", pe.Path, "children[0].parent")
	}

	again := DeserializeAt(doc, 1, shape())
	if again == nil || again.Error() != err.Error() {
		t.Errorf("cycle error not deterministic: %v vs %v", err, again)
	}
}

func TestCycleBackEdgeAsIdentity(t *testing.T) {
	type entity struct {
		Targetname string
		Parent     dmx.ElementRef
		ParentID   dmx.ObjectId
	}
	var kids []entity
	shape := Object(F("children", List(&kids, func(e *entity) Shape {
		return Object(
			Opt("targetname", String(&e.Targetname)),
			Opt("parent", Ref(&e.Parent)),
			Opt("parent", ID(&e.ParentID)),
		)
	})))
	if err := DeserializeAt(mapDoc(), 1, shape); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if kids[0].Parent != 1 {
		t.Errorf("parent ref %d, want 1", kids[0].Parent)
	}
	if kids[0].ParentID != testID(2) {
		t.Errorf("parent id %s, want %s", kids[0].ParentID, testID(2))
	}
}

func TestPathReporting(t *testing.T) {
	type pos struct{ Origin dmx.Vector3 }
	var world struct{ Kids []pos }
	shape := Object(F("world", Object(F("children", List(&world.Kids, func(p *pos) Shape {
		return Object(F("origin", Vector3(&p.Origin)))
	})))))
	err := Deserialize(mapDoc(), shape)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
	var pe *PathError
	if !errors.As(err, &pe) {
		t.Fatalf("got %T, want *PathError", err)
	}
	if pe.Path != "world.children[1].origin" {
		t.Errorf("path %q, want %q", pe.Path, "world.children[1].origin")
	}
}

type sumEntity struct {
	Targetname string
}

type sumGroup struct {
	Children []dmx.ElementRef
}

func sumVariants() map[string]VariantFunc {
	return map[string]VariantFunc{
		"CMapEntity": func() (any, Shape) {
			e := new(sumEntity)
			return e, Object(F("targetname", String(&e.Targetname)))
		},
		"CMapGroup": func() (any, Shape) {
			g := new(sumGroup)
			return g, Object(F("children", List(&g.Children, func(r *dmx.ElementRef) Shape { return Ref(r) })))
		},
	}
}

func TestSumDispatch(t *testing.T) {
	var kids []any
	shape := Object(F("children", List(&kids, func(slot *any) Shape { return Sum(slot, sumVariants()) })))
	if err := DeserializeAt(mapDoc(), 1, shape); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if len(kids) != 2 {
		t.Fatalf("got %d children, want 2", len(kids))
	}
	e, ok := kids[0].(*sumEntity)
	if !ok || e.Targetname != "spawn" {
		t.Errorf("kids[0] = %#v, want entity %q", kids[0], "spawn")
	}
	g, ok := kids[1].(*sumGroup)
	if !ok {
		t.Fatalf("kids[1] = %#v, want *sumGroup", kids[1])
	}
	if diff := cmp.Diff([]dmx.ElementRef{4}, g.Children); diff != "" {
		t.Errorf("group children mismatch (-want +got):\n%s", diff)
	}
}

func TestSumUnknownVariant(t *testing.T) {
	variants := map[string]VariantFunc{
		"CMapEntity": sumVariants()["CMapEntity"],
	}
	var kids []any
	shape := Object(F("children", List(&kids, func(slot *any) Shape { return Sum(slot, variants) })))
	err := DeserializeAt(mapDoc(), 1, shape)
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("got %v, want ErrNotImplemented", err)
	}
	var pe *PathError
	if !errors.As(err, &pe) {
		t.Fatalf("got %T, want *PathError", err)
	}
	if pe.Path != "children[1]" {
		t.Errorf("path %q, want %q", pe.Path, "children[1]")
	}
	if !strings.Contains(err.Error(), `"CMapGroup"`) {
		t.Errorf("error %q does not name the element type", err)
	}
}

func TestSumDefaultVariant(t *testing.T) {
	variants := map[string]VariantFunc{
		"CMapEntity": sumVariants()["CMapEntity"],
	}
	fallback := func() (any, Shape) {
		n := new(worldNode)
		return n, Object(F("name", String(&n.Name)))
	}
	var kids []any
	shape := Object(F("children", List(&kids, func(slot *any) Shape {
		return Sum(slot, variants, WithDefaultVariant(fallback))
	})))
	if err := DeserializeAt(mapDoc(), 1, shape); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	n, ok := kids[1].(*worldNode)
	if !ok || n.Name != "group" {
		t.Errorf("kids[1] = %#v, want fallback node %q", kids[1], "group")
	}
}

func TestSumNullReference(t *testing.T) {
	var out any = "sentinel"
	shape := Object(F("activecamera", Sum(&out, sumVariants())))
	if err := Deserialize(mapDoc(), shape); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if out != nil {
		t.Errorf("null reference left %#v, want nil", out)
	}
}

func TestValueCapture(t *testing.T) {
	var v dmx.Value
	if err := Deserialize(numsDoc(), Object(F("t", Value(&v)))); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if v != dmx.Time(15000) {
		t.Errorf("got %#v, want Time(15000)", v)
	}
}

func TestDuration(t *testing.T) {
	var d time.Duration
	if err := Deserialize(numsDoc(), Object(F("t", Duration(&d)))); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if d != 1500*time.Millisecond {
		t.Errorf("got %v, want 1.5s", d)
	}
}

func TestPtrTo(t *testing.T) {
	var name, sky *string
	shape := Object(
		Opt("name", PtrTo(&name, func(s *string) Shape { return String(s) })),
		Opt("skyname", PtrTo(&sky, func(s *string) Shape { return String(s) })),
	)
	if err := DeserializeAt(mapDoc(), 1, shape); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if name == nil || *name != "world" {
		t.Errorf("name = %v, want %q", name, "world")
	}
	if sky != nil {
		t.Errorf("absent optional allocated %q", *sky)
	}
}

func TestIDNullIsZero(t *testing.T) {
	id := testID(7)
	shape := Object(F("activecamera", ID(&id)))
	if err := Deserialize(mapDoc(), shape); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !id.IsZero() {
		t.Errorf("null reference left id %s, want zero", id)
	}
}

func TestDeserializeAtBadIndex(t *testing.T) {
	doc := mapDoc()
	var s string
	for _, i := range []int{-1, len(doc.Elements), 99} {
		if err := DeserializeAt(doc, i, Object(F("name", String(&s)))); err == nil {
			t.Errorf("index %d: want error", i)
		}
	}
}

func TestDeserializeEmptyPool(t *testing.T) {
	doc := &dmx.Document{Encoding: "binary", EncodingVersion: 9}
	var s string
	if err := Deserialize(doc, Object(F("name", String(&s)))); err == nil {
		t.Error("want error on empty pool")
	}
}

func TestTypeAndInstanceName(t *testing.T) {
	var typeName, instName string
	shape := Object(F("world", All(TypeName(&typeName), InstanceName(&instName))))
	if err := Deserialize(mapDoc(), shape); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if typeName != "CMapWorld" {
		t.Errorf("type = %q, want %q", typeName, "CMapWorld")
	}
	if instName != "world" {
		t.Errorf("name = %q, want %q", instName, "world")
	}
}

func TestTypeNameNull(t *testing.T) {
	typeName := "stale"
	if err := Deserialize(mapDoc(), Object(F("activecamera", TypeName(&typeName)))); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if typeName != "" {
		t.Errorf("null reference left type %q, want empty", typeName)
	}
}

func TestMapCapture(t *testing.T) {
	var props map[string]dmx.Value
	if err := Deserialize(mapDoc(), Object(F("world", Map(&props)))); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if len(props) != 8 {
		t.Fatalf("got %d attributes, want 8", len(props))
	}
	if got := props["origin"]; got != (dmx.Vector3{X: 16, Y: -32}) {
		t.Errorf("origin = %#v", got)
	}
	if got := props["nodeid"]; got != dmx.Int(1) {
		t.Errorf("nodeid = %#v", got)
	}
}

func TestMapNull(t *testing.T) {
	props := map[string]dmx.Value{"stale": dmx.Int(1)}
	if err := Deserialize(mapDoc(), Object(F("activecamera", Map(&props)))); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if props != nil {
		t.Errorf("null reference left %d entries, want nil map", len(props))
	}
}

func TestMapDuplicateFirstWins(t *testing.T) {
	doc := &dmx.Document{
		Encoding: "binary", EncodingVersion: 9,
		Elements: []dmx.Element{
			{Type: "DmElement", Name: "root", ID: testID(1), Attrs: []dmx.Attribute{
				{Name: "bag", Value: dmx.ElementRef(1)},
			}},
			{Type: "DmElement", Name: "bag", ID: testID(2), Attrs: []dmx.Attribute{
				{Name: "key", Value: dmx.String("first")},
				{Name: "key", Value: dmx.String("second")},
			}},
		},
	}
	var props map[string]dmx.Value
	if err := Deserialize(doc, Object(F("bag", Map(&props)))); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if got := props["key"]; got != dmx.String("first") {
		t.Errorf("key = %#v, want first declaration", got)
	}
}

func TestAllStopsAtFailure(t *testing.T) {
	var typeName string
	var n int32
	err := Deserialize(mapDoc(), Object(F("world", All(TypeName(&typeName), Int(&n)))))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("got %v, want ErrTypeMismatch", err)
	}
	if typeName != "CMapWorld" {
		t.Errorf("earlier shape did not run, type = %q", typeName)
	}
}
