package vmap

import (
	dmx "github.com/dmx-format/go-dmx"
	"github.com/dmx-format/go-dmx/schema"
)

// MapNode carries the transform and bookkeeping attributes shared by
// every node type in the map graph. Concrete node types embed it.
type MapNode struct {
	Origin             dmx.Vector3
	Angles             dmx.QAngle
	Scales             dmx.Vector3
	NodeID             int32
	ReferenceID        uint64
	EditorOnly         bool
	ForceHidden        bool
	TransformLocked    bool
	VariableNames      []string
	VariableTargetKeys []string
	Children           []any
}

func (n *MapNode) fields() []schema.Field {
	return []schema.Field{
		schema.F("origin", schema.Vector3(&n.Origin)),
		schema.F("angles", schema.QAngle(&n.Angles)),
		schema.F("scales", schema.Vector3(&n.Scales)),
		schema.F("nodeID", schema.Int(&n.NodeID)),
		schema.F("referenceID", schema.UInt64(&n.ReferenceID)),
		schema.F("editorOnly", schema.Bool(&n.EditorOnly)),
		schema.F("force_hidden", schema.Bool(&n.ForceHidden)),
		schema.Opt("transformLocked", schema.Bool(&n.TransformLocked)),
		schema.F("variableNames", schema.List(&n.VariableNames, stringItem)),
		schema.F("variableTargetKeys", schema.List(&n.VariableTargetKeys, stringItem)),
		childrenField(&n.Children),
	}
}

// Node is the catch all for element types without a registered shape.
// It keeps the element's identity and its attributes untyped, so a
// walk over Children never loses data to an unknown type.
type Node struct {
	Type  string
	Name  string
	ID    dmx.ObjectId
	Attrs map[string]dmx.Value
}

func nodeShape(n *Node) schema.Shape {
	return schema.All(
		schema.TypeName(&n.Type),
		schema.InstanceName(&n.Name),
		schema.ID(&n.ID),
		schema.Map(&n.Attrs),
	)
}

// NodeVariant builds a generic *Node. It is the default variant behind
// every Children list and suits schema.WithDefaultVariant in custom
// sums over map elements.
func NodeVariant() (any, schema.Shape) {
	n := new(Node)
	return n, nodeShape(n)
}

func childrenField(dst *[]any) schema.Field {
	return schema.F("children", schema.List(dst, childShape))
}

func childShape(slot *any) schema.Shape {
	return Registry.Sum(slot, schema.WithDefaultVariant(NodeVariant))
}

func stringItem(s *string) schema.Shape { return schema.String(s) }

func intItem(n *int32) schema.Shape { return schema.Int(n) }

func boolItem(b *bool) schema.Shape { return schema.Bool(b) }

func vector3Item(v *dmx.Vector3) schema.Shape { return schema.Vector3(v) }

func quaternionItem(q *dmx.Quaternion) schema.Shape { return schema.Quaternion(q) }

func refItem(r *dmx.ElementRef) schema.Shape { return schema.Ref(r) }

// derefItem adapts a struct shape into a list item that follows an
// element reference, for lists typed as []*T.
func derefItem[T any](shape func(*T) schema.Shape) func(**T) schema.Shape {
	return func(p **T) schema.Shape { return schema.Deref(p, shape) }
}
