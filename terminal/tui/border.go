package tui

import "github.com/lixenwraith/cellterm/terminal"

// LineType specifies box drawing character style
type LineType uint8

const (
	LineRounded LineType = iota // ╭─╮│╰╯
	LineSingle                  // ┌─┐│└┘
	LineDouble                  // ╔═╗║╚╝
	LineHeavy                   // ┏━┓┃┗┛
)

// boxChars contains box drawing character sets indexed by LineType
var boxChars = [...][6]string{
	LineRounded: {"╭", "─", "╮", "│", "╰", "╯"},
	LineSingle:  {"┌", "─", "┐", "│", "└", "┘"},
	LineDouble:  {"╔", "═", "╗", "║", "╚", "╝"},
	LineHeavy:   {"┏", "━", "┓", "┃", "┗", "┛"},
}

const (
	boxTL = 0 // top-left
	boxH  = 1 // horizontal
	boxTR = 2 // top-right
	boxV  = 3 // vertical
	boxBL = 4 // bottom-left
	boxBR = 5 // bottom-right
)

// Split joints where a child border meets its parent's
const (
	jointDown  = "┬"
	jointUp    = "┴"
	jointRight = "├"
	jointLeft  = "┤"
)

// Box draws border around region edge, keeping the existing background
func (r Region) Box(line LineType, fg terminal.Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	if line >= LineType(len(boxChars)) {
		line = LineRounded
	}

	chars := boxChars[line]

	// Corners
	r.Stroke(0, 0, chars[boxTL], fg)
	r.Stroke(r.W-1, 0, chars[boxTR], fg)
	r.Stroke(0, r.H-1, chars[boxBL], fg)
	r.Stroke(r.W-1, r.H-1, chars[boxBR], fg)

	// Horizontal edges
	for x := 1; x < r.W-1; x++ {
		r.Stroke(x, 0, chars[boxH], fg)
		r.Stroke(x, r.H-1, chars[boxH], fg)
	}

	// Vertical edges
	for y := 1; y < r.H-1; y++ {
		r.Stroke(0, y, chars[boxV], fg)
		r.Stroke(r.W-1, y, chars[boxV], fg)
	}
}

// Card draws titled border and returns inner content region
func (r Region) Card(title string, line LineType, fg terminal.Color) Region {
	r.Box(line, fg)

	if title != "" && r.W > 4 {
		displayTitle := Truncate(title, r.W-4)
		titleX := (r.W - Width(displayTitle) - 2) / 2
		r.Text(titleX, 0, " "+displayTitle+" ", fg, terminal.ColorNone, terminal.AttrBold)
	}

	return r.Inset(1)
}
