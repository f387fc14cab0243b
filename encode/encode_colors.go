package encode

import (
	"github.com/signadot/objson/ir"

	"github.com/fatih/color"
)

// ColorAttr is the role of a piece of encoded text.
type ColorAttr int

const (
	// KeyColor colors object keys.
	KeyColor ColorAttr = iota
	// ValueColor colors scalar values.
	ValueColor
	// PunctColor colors brackets, braces, commas and colons.
	PunctColor
)

type colorKey struct {
	t ir.Type
	a ColorAttr
}

// Colors maps a node type and attribute to an ANSI painter. Pairs without
// an entry are written as is.
type Colors struct {
	painters map[colorKey]func(...any) string
}

func NewColors() *Colors {
	c := &Colors{painters: map[colorKey]func(...any) string{}}
	for _, t := range ir.Types() {
		c.Set(t, PunctColor, color.FgHiBlack)
	}
	c.Set(ir.NullType, ValueColor, color.FgMagenta)
	c.Set(ir.BoolType, ValueColor, color.FgCyan)
	c.Set(ir.NumberType, ValueColor, color.FgHiCyan)
	c.Set(ir.StringType, ValueColor, color.FgGreen)
	c.Set(ir.ObjectType, KeyColor, color.FgBlue, color.Bold)
	return c
}

// Set paints text of type t and role a with attrs.
func (c *Colors) Set(t ir.Type, a ColorAttr, attrs ...color.Attribute) {
	c.painters[colorKey{t, a}] = color.New(attrs...).SprintFunc()
}

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	p := c.painters[colorKey{t, a}]
	if p == nil {
		return s
	}
	return p(s)
}
