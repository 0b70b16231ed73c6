package vmap

import "github.com/dmx-format/go-dmx/schema"

// Registry maps the element types this package models to their shapes.
// Children lists dispatch through it, so registering a game specific
// type here makes every subsequent ReadMap return it typed.
//
// Assigned in init rather than in the declaration: childShape refers to
// Registry, so a declaration initializer would be rejected by the
// compiler as an initialization cycle.
var Registry *schema.Registry

func init() { Registry = newRegistry() }

func newRegistry() *schema.Registry {
	r := schema.NewRegistry()
	for name, f := range map[string]schema.VariantFunc{
		"CMapRootElement":                       variant(rootShape),
		"CMapWorld":                             variant(worldShape),
		"CMapEntity":                            variant(entityShape),
		"CMapGroup":                             variant(groupShape),
		"CMapMesh":                              variant(meshShape),
		"CMapSelectionSet":                      variant(selectionSetShape),
		"CStoredCamera":                         variant(cameraShape),
		"CStoredCameras":                        variant(camerasShape),
		"DmeConnectionData":                     variant(connectionShape),
		"DmePlugList":                           variant(plugListShape),
		"CDmePolygonMesh":                       variant(polygonMeshShape),
		"CDmePolygonMeshDataArray":              variant(dataArrayShape),
		"CDmePolygonMeshDataStream":             variant(streamShape),
		"CDmePolygonMeshSubdivisiondataBinding": variant(bindingShape),
	} {
		if err := r.Register(name, f); err != nil {
			panic(err)
		}
	}
	return r
}

// variant adapts a struct shape into a VariantFunc allocating that
// struct.
func variant[T any](shape func(*T) schema.Shape) schema.VariantFunc {
	return func() (any, schema.Shape) {
		x := new(T)
		return x, shape(x)
	}
}
