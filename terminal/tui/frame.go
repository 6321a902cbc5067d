package tui

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/cellterm/terminal"
)

// SplitDir selects the split axis
type SplitDir uint8

const (
	// Vertical splits at a column: left and right children
	Vertical SplitDir = iota
	// Horizontal splits at a row: top and bottom children
	Horizontal
)

// splitPad is the minimum distance between a split line and either frame edge
const splitPad = 2

var (
	ErrAlreadySplit = errors.New("tui: frame already split")
	ErrSplitRange   = errors.New("tui: split coordinate out of range")
)

// Frame is a bordered rectangle that is either split into two children or holds widgets
// Adjacent children overlap by one cell so they share a border line
type Frame struct {
	rect    Rect
	split   [2]*Frame
	widgets []Drawable

	Line        LineType
	BorderColor terminal.Color
}

// NewFrame creates an unsplit frame covering r
func NewFrame(r Rect) *Frame {
	return &Frame{rect: r, BorderColor: terminal.ColorGray}
}

// Rect returns the frame bounds including the border
func (f *Frame) Rect() Rect { return f.rect }

// Inner returns the content rectangle inside the border
func (f *Frame) Inner() Rect { return f.rect.Inset(1) }

// Children returns the split halves, nil if the frame is not split
func (f *Frame) Children() (*Frame, *Frame) { return f.split[0], f.split[1] }

// Split divides the frame at coord, measured from the frame origin
// Children inherit line style and border color
func (f *Frame) Split(coord int, dir SplitDir) (*Frame, *Frame, error) {
	if f.split[0] != nil {
		return nil, nil, ErrAlreadySplit
	}

	r := f.rect
	var a, b Rect
	switch dir {
	case Vertical:
		if coord < splitPad || coord >= r.W-splitPad {
			return nil, nil, fmt.Errorf("%w: column %d of %d", ErrSplitRange, coord, r.W)
		}
		a = Rect{X: r.X, Y: r.Y, W: coord, H: r.H}
		b = Rect{X: r.X + coord - 1, Y: r.Y, W: r.W - coord + 1, H: r.H}
	case Horizontal:
		if coord < splitPad || coord >= r.H-splitPad {
			return nil, nil, fmt.Errorf("%w: row %d of %d", ErrSplitRange, coord, r.H)
		}
		a = Rect{X: r.X, Y: r.Y, W: r.W, H: coord}
		b = Rect{X: r.X, Y: r.Y + coord - 1, W: r.W, H: r.H - coord + 1}
	default:
		return nil, nil, fmt.Errorf("tui: unknown split direction %d", dir)
	}

	f.split[0] = &Frame{rect: a, Line: f.Line, BorderColor: f.BorderColor}
	f.split[1] = &Frame{rect: b, Line: f.Line, BorderColor: f.BorderColor}
	return f.split[0], f.split[1], nil
}

// Add attaches a widget drawn inside the border
func (f *Frame) Add(d Drawable) {
	f.widgets = append(f.widgets, d)
}

// Draw renders the whole tree in three passes: borders, joints, widgets
func (f *Frame) Draw(g *terminal.CellGrid) {
	f.drawBorders(g)
	f.drawJoints(g)
	f.drawWidgets(g)
}

func (f *Frame) drawBorders(g *terminal.CellGrid) {
	for _, c := range f.split {
		if c != nil {
			c.drawBorders(g)
		}
	}
	RegionOf(g, f.rect).Box(f.Line, f.BorderColor)
}

func (f *Frame) drawJoints(g *terminal.CellGrid) {
	for _, c := range f.split {
		if c != nil {
			c.drawJoints(g)
		}
	}
	second := f.split[1]
	if second == nil {
		return
	}

	r := RegionOf(g, f.rect)
	if second.rect.Y == f.rect.Y {
		// Vertical split
		x := second.rect.X - f.rect.X
		r.Stroke(x, 0, jointDown, f.BorderColor)
		r.Stroke(x, f.rect.H-1, jointUp, f.BorderColor)
	} else {
		y := second.rect.Y - f.rect.Y
		r.Stroke(0, y, jointRight, f.BorderColor)
		r.Stroke(f.rect.W-1, y, jointLeft, f.BorderColor)
	}
}

func (f *Frame) drawWidgets(g *terminal.CellGrid) {
	for _, c := range f.split {
		if c != nil {
			c.drawWidgets(g)
		}
	}
	inner := RegionOf(g, f.Inner())
	for _, w := range f.widgets {
		w.Draw(inner)
	}
}
