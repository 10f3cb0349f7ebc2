package encode

import "github.com/fatih/color"

type ColorAttr int

const (
	KeyColor ColorAttr = iota
	ValueColor
	SepColor
	ErrorColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			KeyColor:   color.RGB(128, 168, 196).SprintfFunc(),
			ValueColor: color.RGB(8, 196, 16).SprintfFunc(),
			SepColor:   color.RGB(196, 128, 128).SprintfFunc(),
			ErrorColor: color.RedString,
		},
	}
}

func (c *Colors) Color(attr ColorAttr, s string) string {
	f, ok := c.Map[attr]
	if !ok {
		f = c.Default
	}
	return f("%s", s)
}

func colorDefault(f string, args ...any) string {
	if f == "%s" && len(args) == 1 {
		if s, ok := args[0].(string); ok {
			return s
		}
	}
	return f
}
