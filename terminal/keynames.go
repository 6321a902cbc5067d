package terminal

import "strings"

// keyToName maps named Key constants to canonical config string names
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",
}

// nameToKey is the reverse lookup, built from keyToName
var nameToKey map[string]Key

func init() {
	nameToKey = make(map[string]Key, len(keyToName)+4)
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	// Aliases
	nameToKey["esc"] = KeyEscape
	nameToKey["return"] = KeyEnter
	nameToKey["space"] = Key(' ')
	nameToKey["pgup"] = KeyPageUp
	nameToKey["pgdn"] = KeyPageDown
}

// KeyName returns the canonical name for a key code
// Printable codes return the character, control codes "ctrl+<letter>"
func KeyName(k Key) string {
	if name, ok := keyToName[k]; ok {
		return name
	}
	switch {
	case k == ' ':
		return "space"
	case k.IsPrintable():
		return string(rune(k))
	case k > 0 && k <= 26:
		return "ctrl+" + string(rune('a'+k-1))
	case k > 26 && k < 32:
		return "ctrl+" + string(rune('@'+k))
	}
	return ""
}

// KeyByName resolves a canonical name or a single printable character
// Returns KeyNone and false if name is unknown
func KeyByName(name string) (Key, bool) {
	if len(name) == 1 && Key(name[0]).IsPrintable() {
		return Key(name[0]), true
	}
	k, ok := nameToKey[strings.ToLower(name)]
	return k, ok
}
