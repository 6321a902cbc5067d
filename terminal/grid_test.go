package terminal

import (
	"errors"
	"testing"
)

// TestNewCellGridRejectsInvalidSize verifies zero, negative and oversized grids fail
func TestNewCellGridRejectsInvalidSize(t *testing.T) {
	sizes := [][2]int{{0, 10}, {10, 0}, {-1, 5}, {MaxGridCells, 2}}
	for _, sz := range sizes {
		if _, err := NewCellGrid(sz[0], sz[1]); !errors.Is(err, ErrGridSize) {
			t.Errorf("NewCellGrid(%d, %d): expected ErrGridSize, got %v", sz[0], sz[1], err)
		}
	}
}

// TestCellGridDefaults verifies a new grid is blank and in sync
func TestCellGridDefaults(t *testing.T) {
	g, err := NewCellGrid(5, 3)
	if err != nil {
		t.Fatalf("NewCellGrid failed: %v", err)
	}
	if w, h := g.Size(); w != 5 || h != 3 {
		t.Fatalf("Expected 5x3, got %dx%d", w, h)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if c, _ := g.At(x, y); c != DefaultCell {
				t.Fatalf("Expected default cell at (%d,%d), got %+v", x, y, c)
			}
		}
	}
	if !g.InSync() {
		t.Error("Expected new grid in sync")
	}
}

// TestCellGridBounds verifies out-of-range access is ignored
func TestCellGridBounds(t *testing.T) {
	g, _ := NewCellGrid(4, 4)

	if g.Cell(-1, 0) != nil || g.Cell(4, 0) != nil || g.Cell(0, 4) != nil {
		t.Error("Expected nil for out-of-bounds Cell")
	}
	if _, ok := g.At(10, 10); ok {
		t.Error("Expected At to report out of bounds")
	}

	g.Put(-1, -1, "x")
	g.PutStyled(4, 0, "x", ColorRed, ColorNone, AttrBold)
	g.SetFg(0, 9, ColorRed)
	if !g.InSync() {
		t.Error("Out-of-bounds writes should not modify the grid")
	}
}

// TestCellGridFillClipping verifies fills are clipped to the grid
func TestCellGridFillClipping(t *testing.T) {
	g, _ := NewCellGrid(6, 4)

	g.Fill(-2, -2, 4, 4, "#")
	count := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			c, _ := g.At(x, y)
			if c.Glyph() == "#" {
				count++
				if x >= 2 || y >= 2 {
					t.Errorf("Unexpected fill at (%d,%d)", x, y)
				}
			}
		}
	}
	if count != 4 {
		t.Errorf("Expected 4 filled cells, got %d", count)
	}

	// Disjoint rectangle is a no-op
	g.Clear()
	g.FillStyled(10, 10, 3, 3, "x", ColorRed, ColorRed, AttrBold)
	g.FillStyled(2, 1, -5, 2, "x", ColorRed, ColorRed, AttrBold)
	if !g.InSync() {
		t.Error("Expected disjoint and negative fills to do nothing")
	}

	g.FillStyled(4, 2, 10, 10, "x", ColorRed, ColorBlue, AttrBold)
	c, _ := g.At(5, 3)
	if c.Glyph() != "x" || c.Fg != ColorRed || c.Bg != ColorBlue || c.Attrs != AttrBold {
		t.Errorf("Expected styled fill at corner, got %+v", c)
	}
}

// TestCellGridFillColor verifies only set colors are applied and glyphs are kept
func TestCellGridFillColor(t *testing.T) {
	g, _ := NewCellGrid(3, 1)
	g.PutStyled(0, 0, "a", ColorGreen, ColorBlack, AttrBold)

	g.FillColor(0, 0, 3, 1, ColorNone, ColorBlue)

	c, _ := g.At(0, 0)
	if c.Glyph() != "a" || c.Fg != ColorGreen || c.Bg != ColorBlue || c.Attrs != AttrBold {
		t.Errorf("Expected glyph, fg and attrs preserved with new bg, got %+v", c)
	}
	c, _ = g.At(2, 0)
	if c.Fg != ColorNone || c.Bg != ColorBlue {
		t.Errorf("Expected bg-only change, got %+v", c)
	}
}

// TestCellGridPutString verifies newline handling, control skipping and clipping
func TestCellGridPutString(t *testing.T) {
	g, _ := NewCellGrid(5, 3)

	n := g.PutString(3, 0, "ab\ncd\x07e\nfghij")
	// Row 0: a b (x=3,4); row 1: c d e (x=3,4 written, e clipped); row 2: f g written, rest clipped
	if n != 6 {
		t.Errorf("Expected 6 cells written, got %d", n)
	}

	checks := map[[2]int]string{
		{3, 0}: "a", {4, 0}: "b",
		{3, 1}: "c", {4, 1}: "d",
		{3, 2}: "f", {4, 2}: "g",
	}
	for pos, want := range checks {
		c, _ := g.At(pos[0], pos[1])
		if c.Glyph() != want {
			t.Errorf("At(%d,%d): expected %q, got %q", pos[0], pos[1], want, c.Glyph())
		}
	}

	g.Clear()
	if n := g.PutString(0, 0, "héllo"); n != 5 {
		t.Errorf("Expected 5 cells for multi-byte string, got %d", n)
	}
	if c, _ := g.At(1, 0); c.Glyph() != "é" {
		t.Errorf("Expected é, got %q", c.Glyph())
	}
}

// TestCellGridResize verifies resizing reallocates and clears both buffers
func TestCellGridResize(t *testing.T) {
	g, _ := NewCellGrid(4, 4)
	g.Put(1, 1, "x")

	// Same size keeps content
	if err := g.Resize(4, 4); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if c, _ := g.At(1, 1); c.Glyph() != "x" {
		t.Error("Expected content preserved on same-size resize")
	}

	if err := g.Resize(10, 2); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if w, h := g.Size(); w != 10 || h != 2 {
		t.Fatalf("Expected 10x2, got %dx%d", w, h)
	}
	if c, _ := g.At(1, 1); c != DefaultCell {
		t.Error("Expected cleared content after resize")
	}
	if !g.InSync() {
		t.Error("Expected buffers in sync after resize")
	}
}

// TestCellGridResizeFailureKeepsBuffers verifies a rejected resize leaves the grid usable
func TestCellGridResizeFailureKeepsBuffers(t *testing.T) {
	g, _ := NewCellGrid(3, 3)
	g.Put(2, 2, "k")

	if err := g.Resize(0, 3); !errors.Is(err, ErrGridSize) {
		t.Fatalf("Expected ErrGridSize, got %v", err)
	}
	if err := g.Resize(MaxGridCells, MaxGridCells); !errors.Is(err, ErrGridSize) {
		t.Fatalf("Expected ErrGridSize for oversized grid, got %v", err)
	}

	if w, h := g.Size(); w != 3 || h != 3 {
		t.Errorf("Expected 3x3 retained, got %dx%d", w, h)
	}
	if c, _ := g.At(2, 2); c.Glyph() != "k" {
		t.Error("Expected content retained after failed resize")
	}
}

// TestCellGridInvalidate verifies the front sentinel differs from any drawable cell
func TestCellGridInvalidate(t *testing.T) {
	g, _ := NewCellGrid(2, 2)
	g.invalidate()
	if g.InSync() {
		t.Error("Expected invalidated grid out of sync")
	}
	if c, _ := g.FrontAt(0, 0); c.GlyphLen() != 0 {
		t.Errorf("Expected sentinel front cell, got %+v", c)
	}
}
