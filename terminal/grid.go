// @lixen: #focus{sys[term,grid]}
package terminal

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxGridCells bounds a single buffer allocation
const MaxGridCells = 1 << 24

// ErrGridSize is returned for dimensions that cannot be allocated
var ErrGridSize = errors.New("terminal: invalid grid size")

// CellGrid holds the desired (back) and last emitted (front) cell buffers
// Both are row-major: cells[y*width + x]
type CellGrid struct {
	back   []Cell
	front  []Cell
	width  int
	height int
}

// NewCellGrid allocates a grid with both buffers set to default cells
func NewCellGrid(width, height int) (*CellGrid, error) {
	g := &CellGrid{}
	if err := g.Resize(width, height); err != nil {
		return nil, err
	}
	return g, nil
}

// Resize reallocates both buffers, discarding content
// On failure the previous buffers are kept unchanged
func (g *CellGrid) Resize(width, height int) error {
	if width == g.width && height == g.height && g.back != nil {
		return nil
	}
	if width <= 0 || height <= 0 || width > MaxGridCells/height {
		return fmt.Errorf("%w: %dx%d", ErrGridSize, width, height)
	}

	back, front, err := allocBuffers(width * height)
	if err != nil {
		return fmt.Errorf("%w: %dx%d: %v", ErrGridSize, width, height, err)
	}
	for i := range back {
		back[i] = DefaultCell
		front[i] = DefaultCell
	}

	g.back, g.front = back, front
	g.width, g.height = width, height
	return nil
}

// allocBuffers converts an allocation panic into an error
func allocBuffers(n int) (back, front []Cell, err error) {
	defer func() {
		if r := recover(); r != nil {
			back, front = nil, nil
			err = fmt.Errorf("allocation failed: %v", r)
		}
	}()
	back = make([]Cell, n)
	front = make([]Cell, n)
	return back, front, nil
}

func (g *CellGrid) Width() int { return g.width }
func (g *CellGrid) Height() int { return g.height }

// Size returns width and height
func (g *CellGrid) Size() (int, int) { return g.width, g.height }

// Clear resets the back buffer to default cells
func (g *CellGrid) Clear() {
	for i := range g.back {
		g.back[i] = DefaultCell
	}
}

func (g *CellGrid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Cell returns a pointer into the back buffer, nil if out of bounds
func (g *CellGrid) Cell(x, y int) *Cell {
	if !g.inBounds(x, y) {
		return nil
	}
	return &g.back[y*g.width+x]
}

// At returns the back buffer cell by value
func (g *CellGrid) At(x, y int) (Cell, bool) {
	if !g.inBounds(x, y) {
		return Cell{}, false
	}
	return g.back[y*g.width+x], true
}

// FrontAt returns the last emitted cell
func (g *CellGrid) FrontAt(x, y int) (Cell, bool) {
	if !g.inBounds(x, y) {
		return Cell{}, false
	}
	return g.front[y*g.width+x], true
}

// Put sets the glyph of one cell, keeping its style
func (g *CellGrid) Put(x, y int, glyph string) {
	if c := g.Cell(x, y); c != nil {
		c.SetGlyph(glyph)
	}
}

// PutRune sets the glyph of one cell from a rune
func (g *CellGrid) PutRune(x, y int, r rune) {
	if c := g.Cell(x, y); c != nil {
		c.SetRune(r)
	}
}

// PutStyled replaces glyph and style of one cell
func (g *CellGrid) PutStyled(x, y int, glyph string, fg, bg Color, attrs Attr) {
	if c := g.Cell(x, y); c != nil {
		c.Set(glyph, fg, bg, attrs)
	}
}

// PutString writes s starting at (x, y), one scalar per cell
// Newline continues on the next row at x; other control characters are skipped
// Returns the number of cells written
func (g *CellGrid) PutString(x, y int, s string) int {
	cx, written := x, 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		glyph := s[i : i+size]
		i += size

		if r == '\n' {
			y++
			cx = x
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		if c := g.Cell(cx, y); c != nil {
			c.SetGlyph(glyph)
			written++
		}
		cx++
	}
	return written
}

func (g *CellGrid) SetFg(x, y int, fg Color) {
	if c := g.Cell(x, y); c != nil {
		c.Fg = fg
	}
}

func (g *CellGrid) SetBg(x, y int, bg Color) {
	if c := g.Cell(x, y); c != nil {
		c.Bg = bg
	}
}

func (g *CellGrid) SetAttrs(x, y int, attrs Attr) {
	if c := g.Cell(x, y); c != nil {
		c.Attrs = attrs
	}
}

// clip intersects a rectangle with the grid, returning empty bounds when disjoint
func (g *CellGrid) clip(x, y, w, h int) (x0, y0, x1, y1 int) {
	x0, y0, x1, y1 = max(x, 0), max(y, 0), min(x+w, g.width), min(y+h, g.height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return
}

// Fill sets the glyph of every cell in the rectangle, clipped to the grid
func (g *CellGrid) Fill(x, y, w, h int, glyph string) {
	enc := encodeGlyph(glyph)
	x0, y0, x1, y1 := g.clip(x, y, w, h)
	for cy := y0; cy < y1; cy++ {
		row := g.back[cy*g.width : (cy+1)*g.width]
		for cx := x0; cx < x1; cx++ {
			row[cx].glyph = enc
		}
	}
}

// FillStyled replaces glyph and style of every cell in the rectangle
func (g *CellGrid) FillStyled(x, y, w, h int, glyph string, fg, bg Color, attrs Attr) {
	cell := Cell{glyph: encodeGlyph(glyph), Fg: fg, Bg: bg, Attrs: attrs}
	x0, y0, x1, y1 := g.clip(x, y, w, h)
	for cy := y0; cy < y1; cy++ {
		row := g.back[cy*g.width : (cy+1)*g.width]
		for cx := x0; cx < x1; cx++ {
			row[cx] = cell
		}
	}
}

// FillColor applies only the set colors to every cell in the rectangle
func (g *CellGrid) FillColor(x, y, w, h int, fg, bg Color) {
	x0, y0, x1, y1 := g.clip(x, y, w, h)
	for cy := y0; cy < y1; cy++ {
		row := g.back[cy*g.width : (cy+1)*g.width]
		for cx := x0; cx < x1; cx++ {
			if fg.IsSet() {
				row[cx].Fg = fg
			}
			if bg.IsSet() {
				row[cx].Bg = bg
			}
		}
	}
}

// InSync reports whether every front cell equals its back cell
func (g *CellGrid) InSync() bool {
	for i := range g.back {
		if g.back[i] != g.front[i] {
			return false
		}
	}
	return true
}

// invalidate marks every front cell with a sentinel no drawn cell can equal
func (g *CellGrid) invalidate() {
	for i := range g.front {
		g.front[i] = Cell{}
	}
}
