package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	v := func() (any, Shape) {
		s := new(string)
		return s, String(s)
	}
	if err := r.Register("CMapEntity", v); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register("CMapEntity", v); err == nil {
		t.Error("duplicate register: want error")
	}
	if err := r.Register("", v); err == nil {
		t.Error("empty name: want error")
	}
	if err := r.Register("CMapMesh", nil); err == nil {
		t.Error("nil variant: want error")
	}

	if _, ok := r.Lookup("CMapEntity"); !ok {
		t.Error("lookup of registered name failed")
	}
	if _, ok := r.Lookup("CMapWorld"); ok {
		t.Error("lookup of unregistered name succeeded")
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"CMapWorld", "CMapEntity", "CMapGroup"} {
		if err := r.Register(name, sumVariants()["CMapEntity"]); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	want := []string{"CMapEntity", "CMapGroup", "CMapWorld"}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistrySum(t *testing.T) {
	r := NewRegistry()
	var kids []any
	shape := Object(F("children", List(&kids, func(slot *any) Shape { return r.Sum(slot) })))

	// Variants registered after the shape is built still dispatch.
	for name, v := range sumVariants() {
		if err := r.Register(name, v); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	if err := DeserializeAt(mapDoc(), 1, shape); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if len(kids) != 2 {
		t.Fatalf("got %d children, want 2", len(kids))
	}
	if e, ok := kids[0].(*sumEntity); !ok || e.Targetname != "spawn" {
		t.Errorf("kids[0] = %#v, want entity %q", kids[0], "spawn")
	}
	if _, ok := kids[1].(*sumGroup); !ok {
		t.Errorf("kids[1] = %#v, want *sumGroup", kids[1])
	}
}
