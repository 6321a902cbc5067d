package tui

import "github.com/lixenwraith/cellterm/terminal"

// Rect is an absolute rectangle in grid coordinates
type Rect struct {
	X, Y, W, H int
}

// Inset returns the rectangle shrunk by n cells on all sides, never negative
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(r.W-2*n, 0), H: max(r.H-2*n, 0)}
}

// Contains reports whether the absolute point lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Region represents a rectangular area within a cell grid
// All coordinates are relative to the region's origin
type Region struct {
	Grid *terminal.CellGrid
	X, Y int // Absolute position in grid
	W, H int // Region dimensions
}

// NewRegion covers the whole grid
func NewRegion(g *terminal.CellGrid) Region {
	w, h := g.Size()
	return Region{Grid: g, W: w, H: h}
}

// RegionOf binds a rectangle to a grid
func RegionOf(g *terminal.CellGrid, r Rect) Region {
	return Region{Grid: g, X: r.X, Y: r.Y, W: max(r.W, 0), H: max(r.H, 0)}
}

// Sub returns a nested region with coordinates relative to parent, result is clipped to parent bounds
func (r Region) Sub(x, y, w, h int) Region {
	// Clip to parent bounds
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > r.W {
		w = r.W - x
	}
	if y+h > r.H {
		h = r.H - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	return Region{
		Grid: r.Grid,
		X:    r.X + x,
		Y:    r.Y + y,
		W:    w,
		H:    h,
	}
}

// Inset returns a region shrunk by n cells on all sides
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// Rect returns the absolute bounds
func (r Region) Rect() Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// Contains reports whether the absolute grid point lies inside the region
func (r Region) Contains(x, y int) bool {
	return r.Rect().Contains(x, y)
}

// Cell sets a single cell with bounds checking
func (r Region) Cell(x, y int, glyph string, fg, bg terminal.Color, attr terminal.Attr) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	r.Grid.PutStyled(r.X+x, r.Y+y, glyph, fg, bg, attr)
}

// Stroke sets glyph and foreground, keeping the existing background
func (r Region) Stroke(x, y int, glyph string, fg terminal.Color) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	if c := r.Grid.Cell(r.X+x, r.Y+y); c != nil {
		c.SetGlyph(glyph)
		c.SetFg(fg)
	}
}

// Fill fills entire region with background color
func (r Region) Fill(bg terminal.Color) {
	r.Grid.FillStyled(r.X, r.Y, r.W, r.H, " ", terminal.ColorNone, bg, terminal.AttrNone)
}

// Clear fills region with default cells
func (r Region) Clear() {
	r.Fill(terminal.ColorNone)
}
