package tui

// Board lays out cols x rows single-cell drawables evenly across a region
type Board struct {
	cols, rows int
	cells      []Drawable
}

// NewBoard creates an empty board; dimensions below 1 are raised to 1
func NewBoard(cols, rows int) *Board {
	cols, rows = max(cols, 1), max(rows, 1)
	return &Board{cols: cols, rows: rows, cells: make([]Drawable, cols*rows)}
}

// Size returns columns and rows
func (b *Board) Size() (cols, rows int) { return b.cols, b.rows }

func (b *Board) inBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < b.cols && row < b.rows
}

// At returns the drawable at (col, row), nil if empty or out of range
func (b *Board) At(col, row int) Drawable {
	if !b.inBounds(col, row) {
		return nil
	}
	return b.cells[row*b.cols+col]
}

// Set places d at (col, row); nil clears the cell
func (b *Board) Set(col, row int, d Drawable) {
	if b.inBounds(col, row) {
		b.cells[row*b.cols+col] = d
	}
}

// Clear empties every cell
func (b *Board) Clear() {
	clear(b.cells)
}

// anchor returns the region-relative position of a cell, centered in its slot
func (b *Board) anchor(r Region, col, row int) (int, int) {
	xPad := (r.W / b.cols) / 2
	yPad := (r.H / b.rows) / 2
	return col*r.W/b.cols + xPad, row*r.H/b.rows + yPad
}

// Draw renders each occupied cell as a 1x1 region at its anchor
func (b *Board) Draw(r Region) {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			d := b.cells[row*b.cols+col]
			if d == nil {
				continue
			}
			x, y := b.anchor(r, col, row)
			d.Draw(r.Sub(x, y, 1, 1))
		}
	}
}

// CellAt maps an absolute grid position inside r to the slot containing it
func (b *Board) CellAt(r Region, x, y int) (col, row int, ok bool) {
	if !r.Contains(x, y) || r.W <= 0 || r.H <= 0 {
		return 0, 0, false
	}
	// Largest slot whose start (i*W/n) is <= offset
	col = ((x-r.X+1)*b.cols - 1) / r.W
	row = ((y-r.Y+1)*b.rows - 1) / r.H
	return col, row, b.inBounds(col, row)
}
