package dump

import (
	"encoding/base64"
	"encoding/json"

	dmx "github.com/dmx-format/go-dmx"
)

type jsonDoc struct {
	Encoding        string         `json:"encoding"`
	EncodingVersion int            `json:"encodingVersion"`
	Format          string         `json:"format"`
	FormatVersion   int            `json:"formatVersion"`
	Prefix          map[string]any `json:"prefix,omitempty"`
	Elements        []jsonElement  `json:"elements"`
}

type jsonElement struct {
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	ID         string         `json:"id"`
	Attributes map[string]any `json:"attributes"`
}

// JSON renders the document as indented generic JSON. Element references
// become {"$element": index} stubs (null references become JSON null),
// GUIDs become strings, binary payloads become base64, and times become
// seconds. Attribute maps keep the first value for a duplicated name,
// matching Element.Get.
func JSON(doc *dmx.Document) ([]byte, error) {
	out := jsonDoc{
		Encoding:        doc.Encoding,
		EncodingVersion: doc.EncodingVersion,
		Format:          doc.Format,
		FormatVersion:   doc.FormatVersion,
		Prefix:          attrMap(doc.Prefix),
		Elements:        make([]jsonElement, 0, doc.Len()),
	}
	for _, el := range doc.All() {
		out.Elements = append(out.Elements, jsonElement{
			Type:       el.Type,
			Name:       el.Name,
			ID:         el.ID.String(),
			Attributes: attrMap(el.Attrs),
		})
	}
	return json.MarshalIndent(&out, "", "  ")
}

func attrMap(attrs []dmx.Attribute) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]any, len(attrs))
	for i := range attrs {
		if _, ok := m[attrs[i].Name]; ok {
			continue
		}
		m[attrs[i].Name] = jsonValue(attrs[i].Value)
	}
	return m
}

func jsonValue(v dmx.Value) any {
	switch v := v.(type) {
	case dmx.Int:
		return int32(v)
	case dmx.Float:
		return float32(v)
	case dmx.Bool:
		return bool(v)
	case dmx.String:
		return string(v)
	case dmx.Binary:
		return base64.StdEncoding.EncodeToString(v)
	case dmx.Time:
		return v.Seconds()
	case dmx.Color:
		// Not []uint8: encoding/json would base64 it as []byte.
		return []int{int(v.R), int(v.G), int(v.B), int(v.A)}
	case dmx.Vector2:
		return []float32{v.X, v.Y}
	case dmx.Vector3:
		return []float32{v.X, v.Y, v.Z}
	case dmx.Vector4:
		return []float32{v.X, v.Y, v.Z, v.W}
	case dmx.QAngle:
		return []float32{v.Pitch, v.Yaw, v.Roll}
	case dmx.Quaternion:
		return []float32{v.X, v.Y, v.Z, v.W}
	case dmx.Matrix:
		return v[:]
	case dmx.UInt64:
		return uint64(v)
	case dmx.UInt8:
		return uint8(v)
	case dmx.ObjectId:
		return v.String()
	case dmx.ElementRef:
		return refValue(v)
	}

	n := dmx.Len(v)
	if n < 0 {
		return nil
	}
	items := make([]any, n)
	for i := range n {
		items[i] = jsonValue(dmx.Item(v, i))
	}
	return items
}

func refValue(r dmx.ElementRef) any {
	i, ok := r.Index()
	if !ok {
		return nil
	}
	return map[string]any{"$element": i}
}
