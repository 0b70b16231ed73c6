package vmap

import (
	dmx "github.com/dmx-format/go-dmx"
	"github.com/dmx-format/go-dmx/schema"
)

// ReadMap deserializes a map document starting at its root element.
func ReadMap(doc *dmx.Document) (*CMapRootElement, error) {
	root := new(CMapRootElement)
	if err := schema.Deserialize(doc, rootShape(root)); err != nil {
		return nil, err
	}
	return root, nil
}

// CMapRootElement is the document root: editor state, the camera set,
// and the world tree. Types this package does not model, such as the
// visibility manager, stay behind as plain references.
type CMapRootElement struct {
	World             CMapWorld
	RootSelectionSet  CMapSelectionSet
	DefaultCamera     CStoredCamera
	Cameras           *CStoredCameras // "3dcameras", absent in older builds
	MapVariables      dmx.ElementRef
	Visibility        dmx.ElementRef
	NodeInstanceData  []dmx.ElementRef
	MeshSnapshots     []dmx.ElementRef
	ItemFile          string
	EditorBuild       int32
	EditorVersion     int32
	MapVersion        *int32
	GridSpacing       float32
	SnapRotationAngle int32
	SnapToGrid        *bool
	ShowGrid          bool
	Show3DGrid        bool
	IsPrefab          bool
	IsCordoning       bool
	CordonsVisible    bool
}

func rootShape(r *CMapRootElement) schema.Shape {
	return schema.Object(
		schema.F("world", worldShape(&r.World)),
		schema.F("rootSelectionSet", selectionSetShape(&r.RootSelectionSet)),
		schema.F("defaultcamera", cameraShape(&r.DefaultCamera)),
		schema.Opt("3dcameras", schema.Deref(&r.Cameras, camerasShape)),
		schema.F("mapVariables", schema.Ref(&r.MapVariables)),
		schema.F("visbility", schema.Ref(&r.Visibility)), // sic, as Hammer writes it
		schema.F("nodeInstanceData", schema.List(&r.NodeInstanceData, refItem)),
		schema.F("m_ReferencedMeshSnapshots", schema.List(&r.MeshSnapshots, refItem)),
		schema.F("itemFile", schema.String(&r.ItemFile)),
		schema.F("editorbuild", schema.Int(&r.EditorBuild)),
		schema.F("editorversion", schema.Int(&r.EditorVersion)),
		schema.Opt("mapversion", schema.PtrTo(&r.MapVersion, intItem)),
		schema.F("gridspacing", schema.Float(&r.GridSpacing)),
		schema.F("snaprotationangle", schema.Int(&r.SnapRotationAngle)),
		schema.Opt("snaptogrid", schema.PtrTo(&r.SnapToGrid, boolItem)),
		schema.F("showgrid", schema.Bool(&r.ShowGrid)),
		schema.F("show3dgrid", schema.Bool(&r.Show3DGrid)),
		schema.F("isprefab", schema.Bool(&r.IsPrefab)),
		schema.F("m_bIsCordoning", schema.Bool(&r.IsCordoning)),
		schema.F("m_bCordonsVisible", schema.Bool(&r.CordonsVisible)),
	)
}

// CMapWorld is the root node of the map graph.
type CMapWorld struct {
	MapNode
	EntityProperties map[string]dmx.Value
	ConnectionsData  []*DmeConnectionData
	RelayPlugData    DmePlugList
	MapUsageType     string
	NextDecalID      int32
	FixupEntityNames bool
}

func worldShape(w *CMapWorld) schema.Shape {
	fields := append(w.MapNode.fields(),
		schema.F("entity_properties", schema.Map(&w.EntityProperties)),
		schema.F("connectionsData", schema.List(&w.ConnectionsData, derefItem(connectionShape))),
		schema.F("relayPlugData", plugListShape(&w.RelayPlugData)),
		schema.F("mapUsageType", schema.String(&w.MapUsageType)),
		schema.F("nextDecalID", schema.Int(&w.NextDecalID)),
		schema.F("fixupEntityNames", schema.Bool(&w.FixupEntityNames)),
	)
	return schema.Object(fields...)
}

// CMapEntity is a point entity. Its game keyvalues live untyped in
// EntityProperties, keyed exactly as the entity definition spells them.
type CMapEntity struct {
	MapNode
	EntityProperties   map[string]dmx.Value
	ConnectionsData    []*DmeConnectionData
	RelayPlugData      DmePlugList
	HitNormal          dmx.Vector3
	IsProceduralEntity bool
	BoneNames          []string
	BonePositions      []dmx.Vector3
	BoneRotations      []dmx.Quaternion
}

func entityShape(e *CMapEntity) schema.Shape {
	fields := append(e.MapNode.fields(),
		schema.F("entity_properties", schema.Map(&e.EntityProperties)),
		schema.F("connectionsData", schema.List(&e.ConnectionsData, derefItem(connectionShape))),
		schema.F("relayPlugData", plugListShape(&e.RelayPlugData)),
		schema.F("hitNormal", schema.Vector3(&e.HitNormal)),
		schema.F("isProceduralEntity", schema.Bool(&e.IsProceduralEntity)),
		schema.Opt("boneNames", schema.List(&e.BoneNames, stringItem)),
		schema.Opt("bonePositions", schema.List(&e.BonePositions, vector3Item)),
		schema.Opt("boneRotations", schema.List(&e.BoneRotations, quaternionItem)),
	)
	return schema.Object(fields...)
}

// CMapGroup groups child nodes under one transform.
type CMapGroup struct {
	MapNode
}

func groupShape(g *CMapGroup) schema.Shape {
	return schema.Object(g.MapNode.fields()...)
}

// CMapSelectionSet is a named selection, possibly nested through
// Children. The set data element varies by set type and stays a
// reference; nil means the attribute was absent.
type CMapSelectionSet struct {
	Name     string
	SetType  *int32
	Children []any
	Data     *dmx.ElementRef
}

func selectionSetShape(s *CMapSelectionSet) schema.Shape {
	return schema.Object(
		schema.F("selectionSetName", schema.String(&s.Name)),
		schema.Opt("setType", schema.PtrTo(&s.SetType, intItem)),
		childrenField(&s.Children),
		schema.Opt("selectionSetData", schema.PtrTo(&s.Data, refItem)),
	)
}

// CStoredCamera is one saved editor viewpoint.
type CStoredCamera struct {
	Position dmx.Vector3
	LookAt   dmx.Vector3
}

func cameraShape(c *CStoredCamera) schema.Shape {
	return schema.Object(
		schema.F("position", schema.Vector3(&c.Position)),
		schema.F("lookat", schema.Vector3(&c.LookAt)),
	)
}

// CStoredCameras holds the saved viewpoints and which one is active.
type CStoredCameras struct {
	ActiveCamera int32
	Cameras      []*CStoredCamera
}

func camerasShape(c *CStoredCameras) schema.Shape {
	return schema.Object(
		schema.F("activecamera", schema.Int(&c.ActiveCamera)),
		schema.F("cameras", schema.List(&c.Cameras, derefItem(cameraShape))),
	)
}

// DmeConnectionData is one entity IO connection: fire an input on the
// target when the output triggers.
type DmeConnectionData struct {
	OutputName    string
	TargetName    string
	InputName     string
	OverrideParam string
	Delay         float32
	TimesToFire   int32
	TargetType    int32
}

func connectionShape(c *DmeConnectionData) schema.Shape {
	return schema.Object(
		schema.F("outputName", schema.String(&c.OutputName)),
		schema.F("targetName", schema.String(&c.TargetName)),
		schema.F("inputName", schema.String(&c.InputName)),
		schema.F("overrideParam", schema.String(&c.OverrideParam)),
		schema.F("delay", schema.Float(&c.Delay)),
		schema.F("timesToFire", schema.Int(&c.TimesToFire)),
		schema.F("targetType", schema.Int(&c.TargetType)),
	)
}

// DmePlugList describes the relay plugs on a node, four parallel
// arrays indexed together.
type DmePlugList struct {
	Names        []string
	Descriptions []string
	DataTypes    []int32
	PlugTypes    []int32
}

func plugListShape(p *DmePlugList) schema.Shape {
	return schema.Object(
		schema.F("names", schema.List(&p.Names, stringItem)),
		schema.F("descriptions", schema.List(&p.Descriptions, stringItem)),
		schema.F("dataTypes", schema.List(&p.DataTypes, intItem)),
		schema.F("plugTypes", schema.List(&p.PlugTypes, intItem)),
	)
}
