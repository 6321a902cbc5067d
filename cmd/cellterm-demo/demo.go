package main

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/lixenwraith/cellterm/audio"
	"github.com/lixenwraith/cellterm/config"
	"github.com/lixenwraith/cellterm/terminal"
	"github.com/lixenwraith/cellterm/terminal/tui"
)

type view int

const (
	viewMenu view = iota
	viewPlay
	viewLog
)

const (
	boardCols  = 8
	boardRows  = 4
	statsWidth = 24
	maxLogRows = 200
	// Bouncer speed in cells per second
	bounceSpeedX = 18.0
	bounceSpeedY = 7.0
)

// cuePlayer is satisfied by *audio.CuePlayer
type cuePlayer interface {
	Play(kind audio.CueKind) bool
}

// demo is the application driven by the runner; all methods run under the runner lock
type demo struct {
	quitKey terminal.Key
	accent  terminal.Color
	border  terminal.Color
	cues    cuePlayer

	// renderStats reports the last flush, zero if nil
	renderStats func() terminal.RenderStats

	view view
	quit bool
	menu *tui.Menu

	board  *tui.Board
	frame  *tui.Frame
	panel  *tui.Panel
	field  tui.Region // playfield area from the last draw
	width  int
	height int

	// Bouncer position in field coordinates
	bx, by float64
	vx, vy float64

	elapsed  time.Duration
	ticks    int
	events   int
	frames   int
	fps      int
	fpsStart time.Duration
	fpsCount int

	lines []string
}

func newDemo(cfg config.Config) (*demo, error) {
	quitKey, err := cfg.QuitKeyCode()
	if err != nil {
		return nil, err
	}
	accent, err := cfg.AccentColor()
	if err != nil {
		return nil, err
	}
	border, err := cfg.BorderColor()
	if err != nil {
		return nil, err
	}

	d := &demo{
		quitKey: quitKey,
		accent:  accent,
		border:  border,
		board:   tui.NewBoard(boardCols, boardRows),
		bx:      1,
		by:      1,
		vx:      bounceSpeedX,
		vy:      bounceSpeedY,
	}

	d.menu = tui.NewMenu(
		tui.Entry{Name: "Play", Selectable: true, OnSelect: func() { d.setView(viewPlay) }},
		tui.Entry{Name: "Input log", Selectable: true, OnSelect: func() { d.setView(viewLog) }},
		tui.Entry{},
		tui.Entry{Name: "Quit", Selectable: true, OnSelect: func() { d.quit = true }},
	)
	d.menu.Marker = accent

	d.panel = tui.NewPanel().
		Add(tui.Label("Stats")).
		Blank().
		Add(tui.Value{Label: "Time", Format: tui.TimeValue(func() int { return int(d.elapsed / time.Second) })}).
		Add(tui.Value{Label: "Ticks", Format: tui.IntValue(func() int { return d.ticks })}).
		Add(tui.Value{Label: "FPS", Format: tui.IntValue(func() int { return d.fps })}).
		Add(tui.Value{Label: "Events", Format: tui.IntValue(func() int { return d.events })}).
		Add(tui.Value{Label: "Bytes", Format: tui.IntValue(func() int { return d.lastRender().Bytes })}).
		Add(tui.Value{Label: "Cells", Format: tui.IntValue(func() int { return d.lastRender().Cells })}).
		Add(tui.Value{Label: "Board", Format: tui.PercentValue(d.boardFill)})

	return d, nil
}

func (d *demo) setView(v view) {
	d.view = v
	log.Printf("demo: view %d", v)
}

func (d *demo) cue(kind audio.CueKind) {
	if d.cues != nil {
		d.cues.Play(kind)
	}
}

func (d *demo) lastRender() terminal.RenderStats {
	if d.renderStats == nil {
		return terminal.RenderStats{}
	}
	return d.renderStats()
}

// boardFill returns the percentage of occupied board cells
func (d *demo) boardFill() int {
	cols, rows := d.board.Size()
	n := 0
	for row := range rows {
		for col := range cols {
			if d.board.At(col, row) != nil {
				n++
			}
		}
	}
	return n * 100 / (cols * rows)
}

func (d *demo) record(ev terminal.Event) {
	d.lines = append(d.lines, ev.String())
	if len(d.lines) > maxLogRows {
		d.lines = d.lines[len(d.lines)-maxLogRows:]
	}
}

func (d *demo) HandleEvent(ev terminal.Event) bool {
	d.events++
	d.record(ev)

	if ev.Type == terminal.EventKey {
		switch {
		case ev.IsKeyMod(d.quitKey, terminal.ModNone), ev.IsCtrl('c'):
			return false
		case ev.IsChar('m') && d.view != viewMenu:
			d.setView(viewMenu)
			d.cue(audio.CueKey)
			return true
		}
	}

	switch d.view {
	case viewMenu:
		if d.menu.HandleEvent(ev) {
			if ev.Type == terminal.EventKey || ev.MouseAction == terminal.MouseActionPress {
				d.cue(audio.CueSelect)
			}
		} else if ev.Type == terminal.EventKey {
			d.cue(audio.CueError)
		}
	case viewPlay:
		d.handlePlay(ev)
	case viewLog:
		if ev.Type == terminal.EventKey {
			d.cue(audio.CueKey)
		}
	}
	return !d.quit
}

func (d *demo) handlePlay(ev terminal.Event) {
	switch {
	case ev.IsMouse(terminal.MouseBtnLeft, terminal.MouseActionPress):
		col, row, ok := d.board.CellAt(d.field, ev.MouseX, ev.MouseY)
		if !ok {
			return
		}
		if d.board.At(col, row) != nil {
			d.board.Set(col, row, nil)
		} else {
			d.board.Set(col, row, tui.Glyph{Glyph: "*", Fg: d.accent, Attrs: terminal.AttrBold})
		}
		d.cue(audio.CueClick)
	case ev.IsChar('c'):
		d.board.Clear()
		d.cue(audio.CueBell)
	}
}

func (d *demo) Tick(dt time.Duration) {
	d.ticks++
	d.elapsed += dt

	if d.elapsed-d.fpsStart >= time.Second {
		d.fps = d.fpsCount
		d.fpsCount = 0
		d.fpsStart = d.elapsed
	}

	if d.field.W <= 0 || d.field.H <= 0 {
		return
	}
	step := dt.Seconds()
	d.bx, d.vx = bounce(d.bx+d.vx*step, d.vx, float64(d.field.W-1))
	d.by, d.vy = bounce(d.by+d.vy*step, d.vy, float64(d.field.H-1))
}

// bounce reflects pos into [0, limit], flipping velocity on contact
func bounce(pos, vel, limit float64) (float64, float64) {
	if limit <= 0 {
		return 0, vel
	}
	switch {
	case pos < 0:
		return min(-pos, limit), -vel
	case pos > limit:
		return max(2*limit-pos, 0), -vel
	}
	return pos, vel
}

func (d *demo) Draw(g *terminal.CellGrid) {
	d.frames++
	d.fpsCount++

	w, h := g.Size()
	if w != d.width || h != d.height || d.frame == nil {
		d.layout(w, h)
	}

	switch d.view {
	case viewMenu:
		d.drawMenu(g)
	case viewPlay:
		d.frame.Draw(g)
	case viewLog:
		d.drawLog(g)
	}
}

// layout rebuilds the playfield frame for a new grid size
// Narrow grids skip the stats column
func (d *demo) layout(w, h int) {
	d.width, d.height = w, h
	d.frame = tui.NewFrame(tui.Rect{W: w, H: h})
	d.frame.BorderColor = d.border

	field := d.frame
	if left, right, err := d.frame.Split(w-statsWidth, tui.Vertical); err == nil {
		field = left
		right.Add(d.panel)
	}
	field.Add(tui.DrawFunc(d.drawField))
}

func (d *demo) drawField(r tui.Region) {
	d.field = r
	d.board.Draw(r)
	x := min(max(int(d.bx), 0), r.W-1)
	y := min(max(int(d.by), 0), r.H-1)
	r.Cell(x, y, "@", d.accent, terminal.ColorNone, terminal.AttrBold)
	r.Text(0, r.H-1, "click: toggle  c: clear  m: menu", terminal.ColorGray, terminal.ColorNone, terminal.AttrDim)
}

func (d *demo) drawMenu(g *terminal.CellGrid) {
	r := tui.NewRegion(g)
	r.TextCenter(1, "cellterm", d.accent, terminal.ColorNone, terminal.AttrBold)
	d.menu.Draw(r)
	hint := fmt.Sprintf("j/k or arrows, enter to select, %s to quit", terminal.KeyName(d.quitKey))
	r.TextCenter(r.H-2, hint, terminal.ColorGray, terminal.ColorNone, terminal.AttrNone)
}

func (d *demo) drawLog(g *terminal.CellGrid) {
	inner := tui.NewRegion(g).Card("Input log", tui.LineRounded, d.border)
	start := max(len(d.lines)-inner.H, 0)
	for i, line := range d.lines[start:] {
		n := strconv.Itoa(start + i + 1)
		inner.Text(0, i, tui.PadRight(n, 5), terminal.ColorGray, terminal.ColorNone, terminal.AttrNone)
		inner.Text(5, i, line, terminal.ColorWhite, terminal.ColorNone, terminal.AttrNone)
	}
}
