// @lixen: #focus{sys[term,ansi]}
package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	// CSI sequences
	csi      = []byte("\x1b[")
	csiSGR0  = []byte("\x1b[0m")
	csiClear = []byte("\x1b[2J")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")

	// Mouse: any-event tracking with SGR extended coordinates
	csiMouseOn  = []byte("\x1b[?1003h\x1b[?1006h")
	csiMouseOff = []byte("\x1b[?1003l\x1b[?1006l")

	// Color prefixes
	csiFgRGB     = []byte("\x1b[38;2;") // followed by R;G;Bm
	csiBgRGB     = []byte("\x1b[48;2;") // followed by R;G;Bm
	csiDefaultFg = []byte("\x1b[39m")
	csiDefaultBg = []byte("\x1b[49m")
)

// writeSetup emits the session entry sequence
func writeSetup(w *bufio.Writer, mouse bool) {
	w.Write(csiAltScreenEnter)
	w.Write(csiCursorHide)
	if mouse {
		w.Write(csiMouseOn)
	}
	w.Write(csiClear)
}

// writeTeardown emits the inverse of writeSetup in reverse order, preceded by an attribute reset
func writeTeardown(w *bufio.Writer, mouse bool) {
	w.Write(csiSGR0)
	if mouse {
		w.Write(csiMouseOff)
	}
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
}

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	// Fallback for >999 (rare)
	var buf [20]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorPos writes cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csi)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeAttrs writes a reset followed by every set attribute: ESC[0;1;...m
func writeAttrs(w *bufio.Writer, attrs Attr) {
	w.Write(csi)
	w.WriteByte('0')
	for bit, code := range attrSGR {
		if attrs&(1<<bit) != 0 {
			w.WriteByte(';')
			w.WriteByte(code)
		}
	}
	w.WriteByte('m')
}

// writeRGB writes a truecolor sequence with the given 38;2; or 48;2; prefix
func writeRGB(w *bufio.Writer, prefix []byte, c Color) {
	w.Write(prefix)
	writeInt(w, int(c.R()))
	w.WriteByte(';')
	writeInt(w, int(c.G()))
	w.WriteByte(';')
	writeInt(w, int(c.B()))
	w.WriteByte('m')
}
