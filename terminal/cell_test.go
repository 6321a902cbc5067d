package terminal

import (
	"errors"
	"testing"
)

// TestCellSetGlyph verifies one scalar is stored and malformed input never reaches the glyph
func TestCellSetGlyph(t *testing.T) {
	tests := []struct {
		name  string
		input string
		glyph string
		n     int
	}{
		{"ascii", "a", "a", 1},
		{"first scalar only", "abc", "a", 1},
		{"two byte", "é", "é", 2},
		{"three byte", "█", "█", 3},
		{"four byte", "😀x", "😀", 4},
		{"empty", "", " ", 1},
		{"control", "\x1b[", " ", 1},
		{"delete", "\x7f", " ", 1},
		{"invalid lead", "\xff", "\uFFFD", 3},
		{"truncated", "\xe2\x82", "\uFFFD", 3},
		{"escape continuation", "\xc3\x1b", "\uFFFD", 3},
		{"ascii continuation", "\xe2\x82A", "\uFFFD", 3},
		{"overlong", "\xc0\xaf", "\uFFFD", 3},
		{"surrogate", "\xed\xa0\x80", "\uFFFD", 3},
		{"c1 control", "\xc2\x9b", "\uFFFD", 3},
		{"replacement literal", "\uFFFD", "\uFFFD", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cell
			c.SetGlyph(tt.input)
			if c.Glyph() != tt.glyph {
				t.Errorf("Expected glyph %q, got %q", tt.glyph, c.Glyph())
			}
			if c.GlyphLen() != tt.n {
				t.Errorf("Expected length %d, got %d", tt.n, c.GlyphLen())
			}
		})
	}
}

// TestCellSetRune verifies control runes become spaces
func TestCellSetRune(t *testing.T) {
	var c Cell
	c.SetRune('\a')
	if c.Glyph() != " " {
		t.Errorf("Expected space for control rune, got %q", c.Glyph())
	}
	c.SetRune('€')
	if c.Glyph() != "€" || c.GlyphLen() != 3 {
		t.Errorf("Expected €, got %q", c.Glyph())
	}
	c.SetRune(0x110000)
	if c.Glyph() != "�" {
		t.Errorf("Expected replacement character, got %q", c.Glyph())
	}
}

// TestCellEquality verifies comparison covers glyph and style
func TestCellEquality(t *testing.T) {
	a := DefaultCell
	b := DefaultCell
	if a != b || !a.Equal(b) {
		t.Fatal("Expected default cells equal")
	}

	b.SetFg(ColorRed)
	if a == b {
		t.Error("Expected fg difference to break equality")
	}
	b = DefaultCell
	b.SetAttrs(AttrReverse)
	if a.Equal(b) {
		t.Error("Expected attr difference to break equality")
	}
	b.Reset()
	b.SetGlyph("x")
	if a == b {
		t.Error("Expected glyph difference to break equality")
	}

	var zero Cell
	if zero == DefaultCell || zero.GlyphLen() != 0 {
		t.Error("Expected zero cell to differ from every drawable cell")
	}
}

// TestColorChannels verifies packing and the unset sentinel
func TestColorChannels(t *testing.T) {
	c := NewRGB(0x12, 0x34, 0x56)
	if c.R() != 0x12 || c.G() != 0x34 || c.B() != 0x56 || c.A() != 0xFF {
		t.Errorf("Unexpected channels for %08x", uint32(c))
	}
	if !c.IsSet() || c.String() != "#123456" {
		t.Errorf("Expected set color #123456, got %s", c)
	}
	if ColorNone.IsSet() || ColorNone.String() != "default" {
		t.Error("Expected ColorNone to be unset")
	}
	if NewRGBA(0, 0, 0, 0).IsSet() {
		t.Error("Expected zero alpha to be unset")
	}
	if !ColorBlack.IsSet() {
		t.Error("Expected black to be a set color")
	}
}

// TestParseColor verifies hex, named and default color resolution
func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"#ff8000", NewRGB(0xff, 0x80, 0x00)},
		{"#FF8000", NewRGB(0xff, 0x80, 0x00)},
		{"red", ColorRed},
		{" Gray ", ColorGray},
		{"black", ColorBlack},
		{"", ColorNone},
		{"default", ColorNone},
		{"none", ColorNone},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.input)
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q): expected %s, got %s", tt.input, tt.want, got)
		}
	}

	if _, err := ParseColor("notacolor"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("Expected ErrInvalidColor, got %v", err)
	}
}
