package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/cellterm/terminal"
	"github.com/lixenwraith/cellterm/terminal/tui"
)

const maxLog = 200

var (
	colorBg      = terminal.NewRGB(20, 20, 30)
	colorTitleBg = terminal.NewRGB(40, 40, 60)
	colorTitle   = terminal.NewRGB(200, 200, 200)
	colorRule    = terminal.NewRGB(60, 60, 80)
	colorEntry   = terminal.NewRGB(180, 180, 180)
	colorStatus  = terminal.NewRGB(140, 140, 160)
	colorObject  = terminal.NewRGB(100, 255, 100)
	colorDrag    = terminal.NewRGB(255, 255, 100)
)

// viewer shows decoded events and a draggable marker
type viewer struct {
	log      []string
	objX     int
	objY     int
	dragging bool
}

func (v *viewer) add(s string) {
	v.log = append(v.log, s)
	if len(v.log) > maxLog {
		v.log = v.log[len(v.log)-maxLog:]
	}
}

func (v *viewer) handle(ev terminal.Event, w, h int) {
	switch ev.Type {
	case terminal.EventKey:
		v.add(fmt.Sprintf("KEY: %-16s glyph=%q", ev.String(), ev.Glyph))

	case terminal.EventMouse:
		v.add("MOUSE: " + ev.String())
		switch ev.MouseAction {
		case terminal.MouseActionPress:
			if ev.MouseBtn == terminal.MouseBtnLeft && ev.MouseX >= v.objX && ev.MouseX < v.objX+3 && ev.MouseY == v.objY {
				v.dragging = true
			}
		case terminal.MouseActionRelease:
			v.dragging = false
		case terminal.MouseActionDrag:
			if v.dragging {
				v.objX = min(max(ev.MouseX, 0), w-3)
				v.objY = min(max(ev.MouseY, 0), h-1)
			}
		}

	case terminal.EventResize:
		v.add(fmt.Sprintf("RESIZE: %dx%d", ev.Width, ev.Height))
		v.objX = min(v.objX, max(ev.Width-3, 0))
		v.objY = min(v.objY, max(ev.Height-1, 0))

	case terminal.EventError:
		v.add(fmt.Sprintf("ERROR: %v", ev.Err))
	}
}

func (v *viewer) draw(g *terminal.CellGrid, pending int) {
	r := tui.NewRegion(g)
	w, h := r.W, r.H
	r.Fill(colorBg)

	r.Sub(0, 0, w, 1).Fill(colorTitleBg)
	r.TextCenter(0, "Input Test - press keys, move mouse, drag the [X] - Ctrl+C to quit",
		colorTitle, colorTitleBg, terminal.AttrBold)
	rule(r, 1)

	rows := max(h-5, 0)
	start := max(len(v.log)-rows, 0)
	for i, entry := range v.log[start:] {
		r.Text(1, 2+i, entry, colorEntry, terminal.ColorNone, terminal.AttrNone)
	}

	if v.objX >= 0 && v.objX < w-2 && v.objY >= 0 && v.objY < h {
		fg := colorObject
		if v.dragging {
			fg = colorDrag
		}
		r.Text(v.objX, v.objY, "[X]", fg, colorTitleBg, terminal.AttrBold)
	}

	rule(r, h-2)
	status := fmt.Sprintf("Size: %dx%d | Object: (%d,%d) | Dragging: %v | Pending: %d",
		w, h, v.objX, v.objY, v.dragging, pending)
	r.Text(1, h-1, status, colorStatus, terminal.ColorNone, terminal.AttrNone)
}

func rule(r tui.Region, y int) {
	for x := range r.W {
		r.Stroke(x, y, "─", colorRule)
	}
}

func main() {
	scr, err := terminal.Open(terminal.DefaultBackend(), terminal.SessionConfig{Mouse: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer scr.Close()

	w, h := scr.Size()
	v := &viewer{objX: w / 2, objY: h / 2}

	render := func() error {
		g := scr.Grid()
		v.draw(g, scr.Decoder().Pending())
		return scr.Show()
	}
	if err := render(); err != nil {
		return
	}

	for {
		ev := scr.Poll()
		switch {
		case ev.Type == terminal.EventNone:
			// Poll is non-blocking; idle briefly so a bare ESC can time out
			time.Sleep(time.Millisecond)
			continue
		case ev.Type == terminal.EventClosed, ev.IsCtrl('c'):
			return
		}

		w, h = scr.Size()
		v.handle(ev, w, h)
		if err := render(); err != nil {
			return
		}
	}
}
