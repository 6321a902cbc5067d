package tui

import "github.com/lixenwraith/cellterm/terminal"

// Entry is one menu row; an entry with no name is an unselectable spacer
type Entry struct {
	Name       string
	Selectable bool
	OnSelect   func()
}

// Menu is a vertical list of entries with a cursor
// At is -1 until the first navigation
type Menu struct {
	entries []Entry
	At      int

	// Position relative to the drawing region; 0 centers on that axis
	X, Y int

	Fg     terminal.Color // selectable entries
	Dim    terminal.Color // unselectable entries
	Marker terminal.Color // cursor marker

	// Layout from the last Draw, for mouse hit-testing
	drawX, drawY, drawW int
	drawn               bool
}

// NewMenu creates a menu with the given entries
func NewMenu(entries ...Entry) *Menu {
	m := &Menu{
		At:     -1,
		Fg:     terminal.ColorWhite,
		Dim:    terminal.ColorGray,
		Marker: terminal.ColorYellow,
	}
	for _, e := range entries {
		m.Add(e)
	}
	return m
}

// Add appends an entry; nameless entries are forced unselectable
func (m *Menu) Add(e Entry) {
	if e.Name == "" {
		e.Selectable = false
	}
	m.entries = append(m.entries, e)
}

// Len returns the number of entries
func (m *Menu) Len() int { return len(m.entries) }

// Entry returns the entry at i
func (m *Menu) Entry(i int) Entry { return m.entries[i] }

// Up moves to the previous selectable entry; with no cursor it jumps to the first one
func (m *Menu) Up() {
	if m.At < 0 {
		for i, e := range m.entries {
			if e.Selectable {
				m.At = i
				return
			}
		}
		return
	}
	for i := m.At - 1; i >= 0; i-- {
		if m.entries[i].Selectable {
			m.At = i
			return
		}
	}
}

// Down moves to the next selectable entry; at the end it settles on the last one
func (m *Menu) Down() {
	if m.At < len(m.entries)-1 {
		for i := m.At + 1; i < len(m.entries); i++ {
			if m.entries[i].Selectable {
				m.At = i
				return
			}
		}
		return
	}
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].Selectable {
			m.At = i
			return
		}
	}
}

// Select clamps the cursor into range and fires the current entry's callback
func (m *Menu) Select() {
	if len(m.entries) == 0 {
		return
	}
	m.At = min(max(m.At, 0), len(m.entries)-1)
	if e := m.entries[m.At]; e.Selectable && e.OnSelect != nil {
		e.OnSelect()
	}
}

// Draw renders entries, centered in the region on any axis whose position is 0
func (m *Menu) Draw(r Region) {
	maxLen := 0
	for _, e := range m.entries {
		if e.Name != "" {
			maxLen = max(maxLen, Width(e.Name)+2)
		}
	}

	x, y := m.X, m.Y
	if x == 0 {
		x = (r.W - maxLen) / 2
	}
	if y == 0 {
		y = (r.H - len(m.entries)) / 2
	}
	m.drawX, m.drawY, m.drawW, m.drawn = r.X+x, r.Y+y, maxLen, true

	for i, e := range m.entries {
		if e.Name == "" {
			continue
		}
		fg := m.Dim
		if e.Selectable {
			fg = m.Fg
		}
		r.Text(x, y+i, e.Name, fg, terminal.ColorNone, terminal.AttrNone)
		if i == m.At {
			r.Cell(x+Width(e.Name)+1, y+i, "<", m.Marker, terminal.ColorNone, terminal.AttrNone)
		}
	}
}

// EntryAt maps an absolute grid position to an entry index from the last Draw
func (m *Menu) EntryAt(x, y int) (int, bool) {
	if !m.drawn {
		return 0, false
	}
	i := y - m.drawY
	if i < 0 || i >= len(m.entries) || x < m.drawX || x >= m.drawX+m.drawW {
		return 0, false
	}
	return i, m.entries[i].Selectable
}

// HandleEvent applies navigation keys and mouse clicks, reporting whether the event was consumed
func (m *Menu) HandleEvent(ev terminal.Event) bool {
	switch ev.Type {
	case terminal.EventKey:
		switch {
		case ev.IsKey(terminal.KeyUp), ev.IsChar('k'):
			m.Up()
		case ev.IsKey(terminal.KeyDown), ev.IsChar('j'):
			m.Down()
		case ev.IsKey(terminal.KeyEnter), ev.IsChar(' '):
			m.Select()
		default:
			return false
		}
		return true
	case terminal.EventMouse:
		i, ok := m.EntryAt(ev.MouseX, ev.MouseY)
		if !ok {
			return false
		}
		switch ev.MouseAction {
		case terminal.MouseActionMove:
			m.At = i
		case terminal.MouseActionPress:
			if ev.MouseBtn == terminal.MouseBtnLeft {
				m.At = i
				m.Select()
			}
		}
		return true
	}
	return false
}
