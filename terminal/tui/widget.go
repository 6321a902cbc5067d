package tui

import "github.com/lixenwraith/cellterm/terminal"

// Drawable renders itself into a region of the grid
type Drawable interface {
	Draw(r Region)
}

// DrawFunc adapts a function to Drawable
type DrawFunc func(r Region)

func (f DrawFunc) Draw(r Region) { f(r) }

// Glyph is a single styled cell drawn at the region origin
type Glyph struct {
	Glyph string
	Fg    terminal.Color
	Bg    terminal.Color
	Attrs terminal.Attr
}

func (g Glyph) Draw(r Region) {
	r.Cell(0, 0, g.Glyph, g.Fg, g.Bg, g.Attrs)
}
