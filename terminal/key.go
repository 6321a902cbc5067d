package terminal

// Key is an input key code
// 1-31 are raw control codes, 32-126 literal ASCII, KeyEscape and above are named keys
// KeyNone with a non-empty Event.Glyph is multi-byte text
type Key uint16

const KeyNone Key = 0

// Named keys
const (
	KeyEscape Key = 256 + iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// IsNamed reports whether k is a symbolic key rather than a character code
func (k Key) IsNamed() bool { return k >= KeyEscape }

// IsPrintable reports whether k is a literal ASCII character code
func (k Key) IsPrintable() bool { return k >= 32 && k <= 126 }

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// String returns "ctrl+alt+shift+" style prefix for the set modifiers
func (m Modifier) String() string {
	var s string
	if m&ModCtrl != 0 {
		s += "ctrl+"
	}
	if m&ModAlt != 0 {
		s += "alt+"
	}
	if m&ModShift != 0 {
		s += "shift+"
	}
	return s
}

// CSI "~" codes: ESC [ <n> ~
var csiTildeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// letterKey maps CSI and SS3 letter finals
// P-S only appear as SS3 or modified CSI (ESC [ 1 ; m P)
func letterKey(b byte) (Key, bool) {
	switch b {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	case 'H':
		return KeyHome, true
	case 'F':
		return KeyEnd, true
	case 'P':
		return KeyF1, true
	case 'Q':
		return KeyF2, true
	case 'R':
		return KeyF3, true
	case 'S':
		return KeyF4, true
	}
	return KeyNone, false
}
