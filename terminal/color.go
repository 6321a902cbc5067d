package terminal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Color is a packed ARGB value
// Alpha 0 means no color set: the terminal default is used
type Color uint32

// ErrInvalidColor is returned by ParseColor for unknown names
var ErrInvalidColor = errors.New("terminal: invalid color")

const (
	ColorNone    Color = 0
	ColorBlack   Color = 0xFF000000
	ColorWhite   Color = 0xFFFFFFFF
	ColorRed     Color = 0xFFFF0000
	ColorGreen   Color = 0xFF00FF00
	ColorBlue    Color = 0xFF0000FF
	ColorYellow  Color = 0xFFFFFF00
	ColorCyan    Color = 0xFF00FFFF
	ColorMagenta Color = 0xFFFF00FF
	ColorGray    Color = 0xFF808080
)

// NewRGB returns an opaque color
func NewRGB(r, g, b uint8) Color {
	return NewRGBA(r, g, b, 0xFF)
}

// NewRGBA packs the four channels
func NewRGBA(r, g, b, a uint8) Color {
	return Color(a)<<24 | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// IsSet reports whether the color overrides the terminal default
func (c Color) IsSet() bool { return c>>24 != 0 }

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// String returns #rrggbb, or "default" for unset colors
func (c Color) String() string {
	if !c.IsSet() {
		return "default"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R(), c.G(), c.B())
}

// ParseColor resolves "#rrggbb" or a W3C/X11 color name
// Empty, "default" and "none" resolve to ColorNone
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "", "default", "none":
		return ColorNone, nil
	}

	tc := tcell.GetColor(name)
	if tc == tcell.ColorDefault {
		return ColorNone, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := tc.RGB()
	if r < 0 || g < 0 || b < 0 {
		return ColorNone, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return NewRGB(uint8(r), uint8(g), uint8(b)), nil
}
