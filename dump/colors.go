package dump

import (
	"strings"

	"github.com/fatih/color"

	dmx "github.com/dmx-format/go-dmx"
)

type Colorable struct {
	Type dmx.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	IndexColor ColorAttr = iota
	TypeColor
	NameColor
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range dmx.Types() {
		able := Colorable{
			Type: t,
			Attr: TypeColor,
		}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	colors.Map[Colorable{Attr: IndexColor}] = color.RGB(255, 0, 196).SprintfFunc()
	colors.Map[Colorable{Attr: NameColor}] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[Colorable{Attr: TypeColor}] = color.RGB(128, 168, 196).SprintfFunc()

	able := Colorable{Attr: ValueColor}

	for _, t := range []dmx.Type{
		dmx.IntType, dmx.FloatType, dmx.TimeType, dmx.UInt64Type, dmx.UInt8Type,
		dmx.Vector2Type, dmx.Vector3Type, dmx.Vector4Type,
		dmx.QAngleType, dmx.QuaternionType, dmx.MatrixType, dmx.ColorType,
	} {
		able.Type = t
		colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	}

	able.Type = dmx.BoolType
	colors.Map[able] = color.CyanString

	able.Type = dmx.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Type = dmx.BinaryType
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()

	able.Type = dmx.ElementType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Type = dmx.ObjectIdType
	colors.Map[able] = color.RGB(88, 158, 86).SprintfFunc()

	for _, t := range dmx.Types() {
		if !t.IsArray() {
			continue
		}
		able.Type = t
		colors.Map[able] = colors.Map[Colorable{Type: t.Elem(), Attr: ValueColor}]
	}

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t dmx.Type, a ColorAttr, s string) string {
	res := c.Get(t, a)(s)
	return res
}

func (c *Colors) Get(t dmx.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
