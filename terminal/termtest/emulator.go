package termtest

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

// Cell is one emulated screen position
// Colors use the terminal package encoding: 0 is default, 0xFFrrggbb is truecolor
// Attrs bits: 0 bold, 1 dim, 2 italic, 3 underline, 4 blink, 5 reverse, 6 crossed
type Cell struct {
	Glyph string
	Fg    uint32
	Bg    uint32
	Attrs uint8
}

var blank = Cell{Glyph: " "}

// sgrAttrBit maps SGR parameters to attribute bits
var sgrAttrBit = map[int]uint8{1: 1 << 0, 2: 1 << 1, 3: 1 << 2, 4: 1 << 3, 5: 1 << 4, 7: 1 << 5, 9: 1 << 6}

// Emulator interprets the subset of ANSI output the renderer and session produce:
// CUP, SGR (attributes, truecolor, defaults), ED 2 and DEC private modes
// Anything else is recorded in Unknown
type Emulator struct {
	mu sync.Mutex

	width  int
	height int
	cells  []Cell

	x, y  int
	fg    uint32
	bg    uint32
	attrs uint8

	modes   map[int]bool
	pending []byte

	Unknown []string
}

// NewEmulator creates a blank screen
func NewEmulator(width, height int) *Emulator {
	e := &Emulator{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		modes:  make(map[int]bool),
	}
	e.clear()
	return e
}

func (e *Emulator) clear() {
	for i := range e.cells {
		e.cells[i] = blank
	}
}

// Write feeds terminal output; sequences split across writes are reassembled
func (e *Emulator) Write(p []byte) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	buf := append(e.pending, p...)
	e.pending = nil

	i := 0
	for i < len(buf) {
		c := buf[i]
		switch {
		case c == 0x1b:
			n, ok := e.escape(buf[i:])
			if !ok {
				e.pending = append([]byte(nil), buf[i:]...)
				return len(p), nil
			}
			i += n
		case c < 0x20 || c == 0x7f:
			e.Unknown = append(e.Unknown, fmt.Sprintf("control %#x", c))
			i++
		default:
			if !utf8.FullRune(buf[i:]) {
				e.pending = append([]byte(nil), buf[i:]...)
				return len(p), nil
			}
			_, size := utf8.DecodeRune(buf[i:])
			e.print(string(buf[i : i+size]))
			i += size
		}
	}
	return len(p), nil
}

// print places a glyph at the cursor and advances without wrapping
func (e *Emulator) print(glyph string) {
	if e.x >= 0 && e.x < e.width && e.y >= 0 && e.y < e.height {
		e.cells[e.y*e.width+e.x] = Cell{Glyph: glyph, Fg: e.fg, Bg: e.bg, Attrs: e.attrs}
	}
	e.x++
}

// escape handles one sequence, returning its length or false if incomplete
func (e *Emulator) escape(b []byte) (int, bool) {
	if len(b) < 2 {
		return 0, false
	}
	if b[1] != '[' {
		e.Unknown = append(e.Unknown, fmt.Sprintf("esc %q", b[:2]))
		return 2, true
	}

	end := -1
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			end = i
			break
		}
	}
	if end < 0 {
		return 0, false
	}

	body := string(b[2:end])
	final := b[end]
	private := strings.HasPrefix(body, "?")
	params := parseParams(strings.TrimPrefix(body, "?"))

	switch {
	case private && (final == 'h' || final == 'l'):
		for _, p := range params {
			e.modes[p] = final == 'h'
		}
	case final == 'H':
		row, col := 1, 1
		if len(params) > 0 && params[0] > 0 {
			row = params[0]
		}
		if len(params) > 1 && params[1] > 0 {
			col = params[1]
		}
		e.y, e.x = row-1, col-1
	case final == 'J' && len(params) > 0 && params[0] == 2:
		e.clear()
	case final == 'm':
		e.sgr(params)
	default:
		e.Unknown = append(e.Unknown, fmt.Sprintf("csi %q", b[:end+1]))
	}
	return end + 1, true
}

func (e *Emulator) sgr(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			e.fg, e.bg, e.attrs = 0, 0, 0
		case sgrAttrBit[p] != 0:
			e.attrs |= sgrAttrBit[p]
		case (p == 38 || p == 48) && i+4 < len(params) && params[i+1] == 2:
			c := 0xFF000000 | uint32(params[i+2]&0xff)<<16 | uint32(params[i+3]&0xff)<<8 | uint32(params[i+4]&0xff)
			if p == 38 {
				e.fg = c
			} else {
				e.bg = c
			}
			i += 4
		case p == 39:
			e.fg = 0
		case p == 49:
			e.bg = 0
		default:
			e.Unknown = append(e.Unknown, fmt.Sprintf("sgr %d", p))
		}
	}
}

func parseParams(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]int, len(parts))
	for i, part := range parts {
		n := 0
		for _, c := range part {
			if c >= '0' && c <= '9' {
				n = n*10 + int(c-'0')
			}
		}
		out[i] = n
	}
	return out
}

// Cell returns the emulated cell at (x, y)
func (e *Emulator) Cell(x, y int) Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	if x < 0 || y < 0 || x >= e.width || y >= e.height {
		return Cell{}
	}
	return e.cells[y*e.width+x]
}

// Row returns the glyphs of row y concatenated
func (e *Emulator) Row(y int) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var sb strings.Builder
	for x := 0; x < e.width; x++ {
		sb.WriteString(e.cells[y*e.width+x].Glyph)
	}
	return sb.String()
}

// Cursor returns the 0-indexed cursor position
func (e *Emulator) Cursor() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.x, e.y
}

// Mode reports whether DEC private mode n is set
func (e *Emulator) Mode(n int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modes[n]
}
