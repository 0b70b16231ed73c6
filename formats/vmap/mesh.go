package vmap

import (
	dmx "github.com/dmx-format/go-dmx"
	"github.com/dmx-format/go-dmx/schema"
)

// CMapMesh is a brush node: an editable polygon mesh plus its render
// and physics settings.
type CMapMesh struct {
	MapNode
	MeshData                   CDmePolygonMesh
	CubeMapName                string
	LightGroup                 string
	PhysicsGroup               string
	PhysicsInteractsAs         string
	PhysicsInteractsWith       string
	PhysicsType                string
	PhysicsSimplificationError float32
	FadeMinDist                float32
	FadeMaxDist                float32
	SmoothingAngle             float32
	TintColor                  dmx.Color
	RenderAmt                  int32
	RenderToCubemaps           bool
	UseAsOccluder              bool
	PrecomputeLightProbes      bool
	VisExclude                 bool
	BakeLighting               *bool
	DisableShadows             *bool
}

func meshShape(m *CMapMesh) schema.Shape {
	fields := append(m.MapNode.fields(),
		schema.F("meshData", polygonMeshShape(&m.MeshData)),
		schema.F("cubeMapName", schema.String(&m.CubeMapName)),
		schema.F("lightGroup", schema.String(&m.LightGroup)),
		schema.F("physicsGroup", schema.String(&m.PhysicsGroup)),
		schema.F("physicsInteractsAs", schema.String(&m.PhysicsInteractsAs)),
		schema.F("physicsInteractsWith", schema.String(&m.PhysicsInteractsWith)),
		schema.F("physicsType", schema.String(&m.PhysicsType)),
		schema.F("physicsSimplificationError", schema.Float(&m.PhysicsSimplificationError)),
		schema.F("fademindist", schema.Float(&m.FadeMinDist)),
		schema.F("fademaxdist", schema.Float(&m.FadeMaxDist)),
		schema.F("smoothingAngle", schema.Float(&m.SmoothingAngle)),
		schema.F("tintColor", schema.Color(&m.TintColor)),
		schema.F("renderAmt", schema.Int(&m.RenderAmt)),
		schema.F("renderToCubemaps", schema.Bool(&m.RenderToCubemaps)),
		schema.F("useAsOccluder", schema.Bool(&m.UseAsOccluder)),
		schema.F("precomputelightprobes", schema.Bool(&m.PrecomputeLightProbes)),
		schema.F("visexclude", schema.Bool(&m.VisExclude)),
		schema.Opt("bakelighting", schema.PtrTo(&m.BakeLighting, boolItem)),
		schema.Opt("disableShadows", schema.PtrTo(&m.DisableShadows, boolItem)),
	)
	return schema.Object(fields...)
}

// CDmePolygonMesh is the half edge mesh itself. The four data arrays
// hold per vertex, face vertex, edge, and face attribute streams; the
// index slices wire the half edge topology together.
type CDmePolygonMesh struct {
	VertexData     CDmePolygonMeshDataArray
	FaceVertexData CDmePolygonMeshDataArray
	EdgeData       CDmePolygonMeshDataArray
	FaceData       CDmePolygonMeshDataArray

	VertexDataIndices     []int32
	VertexEdgeIndices     []int32
	EdgeDataIndices       []int32
	EdgeFaceIndices       []int32
	EdgeNextIndices       []int32
	EdgeOppositeIndices   []int32
	EdgeVertexDataIndices []int32
	EdgeVertexIndices     []int32
	FaceDataIndices       []int32
	FaceEdgeIndices       []int32

	Materials       []string
	SubdivisionData CDmePolygonMeshSubdivisionData
}

func polygonMeshShape(p *CDmePolygonMesh) schema.Shape {
	return schema.Object(
		schema.F("vertexData", dataArrayShape(&p.VertexData)),
		schema.F("faceVertexData", dataArrayShape(&p.FaceVertexData)),
		schema.F("edgeData", dataArrayShape(&p.EdgeData)),
		schema.F("faceData", dataArrayShape(&p.FaceData)),
		schema.F("vertexDataIndices", schema.List(&p.VertexDataIndices, intItem)),
		schema.F("vertexEdgeIndices", schema.List(&p.VertexEdgeIndices, intItem)),
		schema.F("edgeDataIndices", schema.List(&p.EdgeDataIndices, intItem)),
		schema.F("edgeFaceIndices", schema.List(&p.EdgeFaceIndices, intItem)),
		schema.F("edgeNextIndices", schema.List(&p.EdgeNextIndices, intItem)),
		schema.F("edgeOppositeIndices", schema.List(&p.EdgeOppositeIndices, intItem)),
		schema.F("edgeVertexDataIndices", schema.List(&p.EdgeVertexDataIndices, intItem)),
		schema.F("edgeVertexIndices", schema.List(&p.EdgeVertexIndices, intItem)),
		schema.F("faceDataIndices", schema.List(&p.FaceDataIndices, intItem)),
		schema.F("faceEdgeIndices", schema.List(&p.FaceEdgeIndices, intItem)),
		schema.F("materials", schema.List(&p.Materials, stringItem)),
		schema.F("subdivisionData", subdivisionShape(&p.SubdivisionData)),
	)
}

// CDmePolygonMeshDataArray groups the attribute streams for one mesh
// component kind. Size is the element count every stream must match.
type CDmePolygonMeshDataArray struct {
	Size    int32
	Streams []*CDmePolygonMeshDataStream
}

func dataArrayShape(a *CDmePolygonMeshDataArray) schema.Shape {
	return schema.Object(
		schema.F("size", schema.Int(&a.Size)),
		schema.F("streams", schema.List(&a.Streams, derefItem(streamShape))),
	)
}

// CDmePolygonMeshDataStream is one attribute stream, such as positions
// or texture coordinates. Data carries the raw array value; its kind
// is one of the int, float, or vector array kinds depending on the
// semantic.
type CDmePolygonMeshDataStream struct {
	SemanticName          string
	SemanticIndex         int32
	StandardAttributeName string
	VertexBufferLocation  int32
	DataStateFlags        int32
	SubdivisionBinding    *CDmePolygonMeshSubdivisiondataBinding
	Data                  dmx.Value
}

func streamShape(s *CDmePolygonMeshDataStream) schema.Shape {
	return schema.Object(
		schema.F("semanticName", schema.String(&s.SemanticName)),
		schema.F("semanticIndex", schema.Int(&s.SemanticIndex)),
		schema.F("standardAttributeName", schema.String(&s.StandardAttributeName)),
		schema.F("vertexBufferLocation", schema.Int(&s.VertexBufferLocation)),
		schema.F("dataStateFlags", schema.Int(&s.DataStateFlags)),
		schema.Opt("subdivisionBinding", schema.Deref(&s.SubdivisionBinding, bindingShape)),
		schema.F("data", schema.Value(&s.Data)),
	)
}

// CDmePolygonMeshSubdivisionData holds the subdivision levels and the
// streams that feed them.
type CDmePolygonMeshSubdivisionData struct {
	SubdivisionLevels []int32
	Streams           []*CDmePolygonMeshDataStream
}

func subdivisionShape(s *CDmePolygonMeshSubdivisionData) schema.Shape {
	return schema.Object(
		schema.F("subdivisionLevels", schema.List(&s.SubdivisionLevels, intItem)),
		schema.F("streams", schema.List(&s.Streams, derefItem(streamShape))),
	)
}

// CDmePolygonMeshSubdivisiondataBinding ties a stream to its
// subdivision source. The lowercase d follows the element type name
// as written in map files.
type CDmePolygonMeshSubdivisiondataBinding struct {
	StreamSourceType  int32
	TargetDataType    int32
	TargetStreamIndex int32
}

func bindingShape(b *CDmePolygonMeshSubdivisiondataBinding) schema.Shape {
	return schema.Object(
		schema.F("streamSourceType", schema.Int(&b.StreamSourceType)),
		schema.F("targetDataType", schema.Int(&b.TargetDataType)),
		schema.F("targetStreamIndex", schema.Int(&b.TargetStreamIndex)),
	)
}
