package terminal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EventType identifies the kind of input event
type EventType uint8

const (
	EventNone   EventType = iota // Nothing decoded this poll
	EventKey                     // Keyboard input
	EventMouse                   // Mouse report
	EventResize                  // Terminal resized
	EventError                   // Input source failed
	EventClosed                  // Input source reached EOF
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Modifiers Modifier
	Glyph     string // UTF-8 bytes of the typed character, empty for named keys

	// Mouse fields (valid when Type == EventMouse), 0-indexed
	MouseX      int
	MouseY      int
	MouseBtn    MouseButton
	MouseAction MouseAction

	// Resize fields (valid when Type == EventResize)
	Width  int
	Height int

	Err error
}

// IsKey matches a key code regardless of modifiers
func (e Event) IsKey(k Key) bool {
	return e.Type == EventKey && e.Key == k
}

// IsKeyMod matches a key code with exactly the given modifiers
func (e Event) IsKeyMod(k Key, mods Modifier) bool {
	return e.Type == EventKey && e.Key == k && e.Modifiers == mods
}

// IsChar matches an unmodified printable character, ignoring ASCII case
func (e Event) IsChar(c rune) bool {
	if e.Type != EventKey || e.Modifiers != ModNone || !e.Key.IsPrintable() {
		return false
	}
	return lowerASCII(rune(e.Key)) == lowerASCII(c)
}

// IsCtrl matches Ctrl+letter, ignoring ASCII case; other modifiers may also be held
func (e Event) IsCtrl(c rune) bool {
	return e.Type == EventKey && e.Modifiers&ModCtrl != 0 && lowerASCII(rune(e.Key)) == lowerASCII(c)
}

// IsMouse matches a mouse button and action
func (e Event) IsMouse(btn MouseButton, action MouseAction) bool {
	return e.Type == EventMouse && e.MouseBtn == btn && e.MouseAction == action
}

// Rune decodes the event glyph, utf8.RuneError when empty
func (e Event) Rune() rune {
	r, _ := utf8.DecodeRuneInString(e.Glyph)
	return r
}

func lowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// String renders the event for logs and event viewers
func (e Event) String() string {
	switch e.Type {
	case EventKey:
		name := KeyName(e.Key)
		if e.Key == KeyNone {
			name = fmt.Sprintf("%q", e.Glyph)
		}
		return e.Modifiers.String() + name
	case EventMouse:
		return fmt.Sprintf("mouse %s%s %s @%d,%d", e.Modifiers.String(),
			strings.ToLower(e.MouseBtn.String()), strings.ToLower(e.MouseAction.String()), e.MouseX, e.MouseY)
	case EventResize:
		return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
	case EventError:
		return fmt.Sprintf("error: %v", e.Err)
	case EventClosed:
		return "closed"
	}
	return "none"
}
