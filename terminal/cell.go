package terminal

import "unicode/utf8"

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
	AttrCrossed   Attr = 1 << 6
)

// attrSGR lists SGR parameter bytes in emission order, indexed by attribute bit
var attrSGR = [...]byte{'1', '2', '3', '4', '5', '7', '9'}

// Cell represents a single terminal cell
// Cells are comparable with ==; equality drives the renderer diff
type Cell struct {
	glyph [4]byte // one UTF-8 scalar, zero padded
	Fg    Color
	Bg    Color
	Attrs Attr
}

// DefaultCell is a blank space with terminal default colors
var DefaultCell = Cell{glyph: [4]byte{' '}}

// Glyph returns the cell's UTF-8 text
func (c Cell) Glyph() string {
	return string(c.glyph[:c.GlyphLen()])
}

// GlyphLen returns the byte length of the stored glyph
// Returns 0 only for the invalidated sentinel
func (c Cell) GlyphLen() int {
	for i, b := range c.glyph {
		if b == 0 {
			return i
		}
	}
	return len(c.glyph)
}

// SetGlyph stores the first UTF-8 scalar of s
// Control bytes store a space; malformed or truncated input stores U+FFFD
func (c *Cell) SetGlyph(s string) {
	c.glyph = encodeGlyph(s)
}

// SetRune stores r, replacing invalid runes with U+FFFD
func (c *Cell) SetRune(r rune) {
	if r < 0x20 || r == 0x7f {
		c.glyph = DefaultCell.glyph
		return
	}
	if isC1(r) {
		c.glyph = replacementGlyph
		return
	}
	var g [4]byte
	utf8.EncodeRune(g[:], r)
	c.glyph = g
}

func (c *Cell) SetFg(fg Color) { c.Fg = fg }
func (c *Cell) SetBg(bg Color) { c.Bg = bg }
func (c *Cell) SetAttrs(a Attr) { c.Attrs = a }
func (c *Cell) Equal(o Cell) bool { return *c == o }

// Set replaces glyph and style in one step
func (c *Cell) Set(glyph string, fg, bg Color, attrs Attr) {
	*c = Cell{glyph: encodeGlyph(glyph), Fg: fg, Bg: bg, Attrs: attrs}
}

// Reset restores the default cell
func (c *Cell) Reset() { *c = DefaultCell }

// replacementGlyph is U+FFFD, stored for malformed UTF-8 and C1 controls
var replacementGlyph = [4]byte{0xef, 0xbf, 0xbd}

// isC1 reports the C1 control range, which terminals may execute
func isC1(r rune) bool { return r >= 0x80 && r < 0xa0 }

// encodeGlyph copies one scalar into a padded array
// Every stored glyph is printable: C0 controls become a space, malformed units U+FFFD
func encodeGlyph(s string) [4]byte {
	if len(s) == 0 {
		return DefaultCell.glyph
	}
	b := s[0]
	if b < 0x20 || b == 0x7f {
		return DefaultCell.glyph
	}
	r, n := utf8.DecodeRuneInString(s)
	if (r == utf8.RuneError && n <= 1) || isC1(r) {
		return replacementGlyph
	}
	var g [4]byte
	copy(g[:], s[:n])
	return g
}

// utf8SeqLen returns expected UTF-8 sequence length from start byte, 0 if invalid
func utf8SeqLen(b byte) int {
	if b < 0x80 {
		return 1
	}
	if b&0xe0 == 0xc0 {
		return 2
	}
	if b&0xf0 == 0xe0 {
		return 3
	}
	if b&0xf8 == 0xf0 {
		return 4
	}
	return 0 // Invalid
}
