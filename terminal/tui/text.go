package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/cellterm/terminal"
)

// wideFallback replaces double-width runes; the grid models one column per cell
const wideFallback = "?"

// cellGlyph maps a rune to the glyph it occupies in one cell, empty for zero-width runes
func cellGlyph(r rune) string {
	switch runewidth.RuneWidth(r) {
	case 0:
		return ""
	case 1:
		return string(r)
	default:
		return wideFallback
	}
}

// Width returns the number of cells s occupies when drawn
func Width(s string) int {
	n := 0
	for _, r := range s {
		if runewidth.RuneWidth(r) > 0 {
			n++
		}
	}
	return n
}

// Truncate truncates string with … suffix if it exceeds maxLen cells
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if Width(s) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}

	var sb strings.Builder
	n := 0
	for _, r := range s {
		if runewidth.RuneWidth(r) == 0 {
			sb.WriteRune(r)
			continue
		}
		if n == maxLen-1 {
			break
		}
		sb.WriteRune(r)
		n++
	}
	sb.WriteString("…")
	return sb.String()
}

// PadRight pads string with spaces to width
func PadRight(s string, width int) string {
	if n := Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// Center centers string within width, truncating if too long
func Center(s string, width int) string {
	s = Truncate(s, width)
	n := Width(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

// Text draws s at absolute (x, y), one cell per visible rune
// Zero-width runes are skipped; returns the number of cells written
func Text(g *terminal.CellGrid, x, y int, s string, fg, bg terminal.Color, attrs terminal.Attr) int {
	w, h := g.Size()
	if y < 0 || y >= h {
		return 0
	}
	written := 0
	col := x
	for _, r := range s {
		glyph := cellGlyph(r)
		if glyph == "" {
			continue
		}
		if col >= w {
			break
		}
		if col >= 0 {
			g.PutStyled(col, y, glyph, fg, bg, attrs)
			written++
		}
		col++
	}
	return written
}

// Text renders text at region-relative position, truncating at the region edge
func (r Region) Text(x, y int, s string, fg, bg terminal.Color, attr terminal.Attr) {
	if y < 0 || y >= r.H {
		return
	}
	col := 0
	for _, ch := range s {
		glyph := cellGlyph(ch)
		if glyph == "" {
			continue
		}
		if x+col >= r.W {
			break
		}
		if x+col >= 0 {
			r.Cell(x+col, y, glyph, fg, bg, attr)
		}
		col++
	}
}

// TextCenter renders text centered on row
func (r Region) TextCenter(y int, s string, fg, bg terminal.Color, attr terminal.Attr) {
	x := (r.W - Width(s)) / 2
	r.Text(x, y, s, fg, bg, attr)
}
