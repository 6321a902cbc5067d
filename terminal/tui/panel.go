package tui

import (
	"fmt"
	"strconv"

	"github.com/lixenwraith/cellterm/terminal"
)

// Item is one panel row
type Item interface {
	Line(width int) string
}

// Label is a fixed text row
type Label string

func (l Label) Line(width int) string { return Truncate(string(l), width) }

// Value renders "Label: formatted" with the formatter evaluated at draw time
type Value struct {
	Label  string
	Format func() string
}

func (v Value) Line(width int) string {
	var s string
	if v.Format != nil {
		s = v.Format()
	}
	return Truncate(v.Label+": "+s, width)
}

// IntValue formats an integer source
func IntValue(get func() int) func() string {
	return func() string { return strconv.Itoa(get()) }
}

// PercentValue formats an integer source as N%
func PercentValue(get func() int) func() string {
	return func() string { return strconv.Itoa(get()) + "%" }
}

// TimeValue formats a seconds source as m:ss, or Ns below one minute
func TimeValue(get func() int) func() string {
	return func() string {
		secs := get()
		mins := secs / 60
		secs %= 60
		if mins > 0 {
			return fmt.Sprintf("%d:%02d", mins, secs)
		}
		return fmt.Sprintf("%ds", secs)
	}
}

// Panel stacks items one per row; nil items are blank rows
type Panel struct {
	items []Item

	Fg    terminal.Color
	Bg    terminal.Color
	Attrs terminal.Attr
}

// NewPanel creates an empty panel drawn in default colors
func NewPanel() *Panel {
	return &Panel{}
}

// Add appends a row
func (p *Panel) Add(it Item) *Panel {
	p.items = append(p.items, it)
	return p
}

// Blank appends an empty row
func (p *Panel) Blank() *Panel {
	p.items = append(p.items, nil)
	return p
}

// Len returns the number of rows
func (p *Panel) Len() int { return len(p.items) }

// Draw renders rows from the region top, clipped to its height and width
func (p *Panel) Draw(r Region) {
	for i, it := range p.items {
		if i >= r.H {
			break
		}
		if it == nil {
			continue
		}
		r.Text(0, i, it.Line(r.W), p.Fg, p.Bg, p.Attrs)
	}
}
