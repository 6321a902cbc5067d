package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/cellterm/terminal"
)

// fakeDisplay replays scripted events and counts frames
type fakeDisplay struct {
	mu      sync.Mutex
	events  []terminal.Event
	grid    *terminal.CellGrid
	shows   int
	showErr error
	polls   int
}

func newFakeDisplay(t *testing.T, events ...terminal.Event) *fakeDisplay {
	t.Helper()
	g, err := terminal.NewCellGrid(8, 2)
	if err != nil {
		t.Fatalf("NewCellGrid failed: %v", err)
	}
	return &fakeDisplay{events: events, grid: g}
}

func (d *fakeDisplay) Poll() terminal.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.polls++
	if len(d.events) == 0 {
		return terminal.Event{}
	}
	ev := d.events[0]
	d.events = d.events[1:]
	return ev
}

func (d *fakeDisplay) Grid() *terminal.CellGrid { return d.grid }

func (d *fakeDisplay) Show() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shows++
	return d.showErr
}

func (d *fakeDisplay) push(ev terminal.Event) {
	d.mu.Lock()
	d.events = append(d.events, ev)
	d.mu.Unlock()
}

func (d *fakeDisplay) pollCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.polls
}

func (d *fakeDisplay) showCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shows
}

// fakeHandler quits on 'q' and draws a marker in the first cell
type fakeHandler struct {
	ticks     int
	events    []terminal.Event
	draws     int
	panicTick bool
}

func (h *fakeHandler) HandleEvent(ev terminal.Event) bool {
	h.events = append(h.events, ev)
	return !ev.IsChar('q')
}

func (h *fakeHandler) Tick(dt time.Duration) {
	if h.panicTick {
		panic("tick exploded")
	}
	h.ticks++
}

func (h *fakeHandler) Draw(g *terminal.CellGrid) {
	h.draws++
	g.Put(0, 0, "#")
}

func keyEvent(c rune) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: terminal.Key(c), Glyph: string(c)}
}

func runAsync(r *Runner) <-chan error {
	done := make(chan error, 1)
	go func() { done <- r.Run() }()
	return done
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

// TestRunnerQuitKey verifies a handler returning false stops both loops cleanly
func TestRunnerQuitKey(t *testing.T) {
	d := newFakeDisplay(t, keyEvent('a'), keyEvent('q'), keyEvent('z'))
	h := &fakeHandler{}
	r := NewRunner(d, h, RunnerConfig{TickInterval: time.Millisecond, PollInterval: time.Millisecond})

	if err := waitRun(t, runAsync(r)); err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if r.Running() {
		t.Error("Expected runner stopped after Run")
	}
	if len(h.events) != 2 {
		t.Fatalf("Expected 2 handled events, got %d", len(h.events))
	}
	if !h.events[1].IsChar('q') {
		t.Errorf("Expected last event 'q', got %v", h.events[1])
	}
	// First frame plus one render for 'a'
	if r.Stats().Frames < 2 {
		t.Errorf("Expected at least 2 frames, got %d", r.Stats().Frames)
	}
	if c, _ := d.grid.At(0, 0); c.Glyph() != "#" {
		t.Errorf("Expected handler drawing in grid, got %q", c.Glyph())
	}
}

// TestRunnerJoinsInputLoop verifies no Poll happens after Run returns
func TestRunnerJoinsInputLoop(t *testing.T) {
	d := newFakeDisplay(t)
	r := NewRunner(d, &fakeHandler{}, RunnerConfig{TickInterval: time.Millisecond, PollInterval: 100 * time.Microsecond})
	done := runAsync(r)

	time.Sleep(10 * time.Millisecond)
	r.Stop()
	if err := waitRun(t, done); err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}

	polls := d.pollCount()
	time.Sleep(5 * time.Millisecond)
	if got := d.pollCount(); got != polls {
		t.Errorf("Expected no polls after Run returned, got %d more", got-polls)
	}
}

// TestRunnerTicks verifies the tick loop advances the handler and renders
func TestRunnerTicks(t *testing.T) {
	d := newFakeDisplay(t)
	h := &fakeHandler{}
	r := NewRunner(d, h, RunnerConfig{TickInterval: time.Millisecond})
	done := runAsync(r)

	deadline := time.Now().Add(2 * time.Second)
	for r.Stats().Ticks < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	r.Stop()
	waitRun(t, done)

	st := r.Stats()
	if st.Ticks < 3 {
		t.Fatalf("Expected at least 3 ticks, got %d", st.Ticks)
	}
	if st.Frames < st.Ticks+1 {
		t.Errorf("Expected a frame per tick plus the first, got %d frames for %d ticks", st.Frames, st.Ticks)
	}
}

// TestRunnerInputClosed verifies EOF stops the runner with ErrInputClosed
func TestRunnerInputClosed(t *testing.T) {
	d := newFakeDisplay(t, keyEvent('a'), terminal.Event{Type: terminal.EventClosed})
	h := &fakeHandler{}
	r := NewRunner(d, h, RunnerConfig{TickInterval: time.Millisecond})

	err := waitRun(t, runAsync(r))
	if !errors.Is(err, ErrInputClosed) {
		t.Fatalf("Expected ErrInputClosed, got %v", err)
	}
	if len(h.events) != 1 {
		t.Errorf("Expected closed event not forwarded to handler, got %d events", len(h.events))
	}
}

// TestRunnerInputError verifies a source error is wrapped and returned
func TestRunnerInputError(t *testing.T) {
	srcErr := errors.New("read failed")
	d := newFakeDisplay(t, terminal.Event{Type: terminal.EventError, Err: srcErr})
	r := NewRunner(d, &fakeHandler{}, RunnerConfig{TickInterval: time.Millisecond})

	err := waitRun(t, runAsync(r))
	if !errors.Is(err, srcErr) {
		t.Fatalf("Expected wrapped source error, got %v", err)
	}
}

// TestRunnerRenderError verifies the first render failure is recorded
func TestRunnerRenderError(t *testing.T) {
	showErr := errors.New("sink gone")
	d := newFakeDisplay(t)
	d.showErr = showErr
	r := NewRunner(d, &fakeHandler{}, RunnerConfig{TickInterval: time.Millisecond})

	err := waitRun(t, runAsync(r))
	if !errors.Is(err, showErr) {
		t.Fatalf("Expected render error, got %v", err)
	}
	if d.pollCount() != 0 {
		t.Errorf("Expected input loop not started, got %d polls", d.pollCount())
	}
}

// TestRunnerCrashHandler verifies a tick panic is routed to the crash handler
func TestRunnerCrashHandler(t *testing.T) {
	d := newFakeDisplay(t)
	var crashed any
	r := NewRunner(d, &fakeHandler{panicTick: true}, RunnerConfig{
		TickInterval: time.Millisecond,
		CrashHandler: func(p any) { crashed = p },
	})

	err := waitRun(t, runAsync(r))
	if err == nil {
		t.Fatal("Expected panic error, got nil")
	}
	if crashed != "tick exploded" {
		t.Errorf("Expected crash handler to receive panic value, got %v", crashed)
	}
}

// TestRunnerAlreadyRunning verifies a second Run is rejected
func TestRunnerAlreadyRunning(t *testing.T) {
	d := newFakeDisplay(t)
	r := NewRunner(d, &fakeHandler{}, RunnerConfig{TickInterval: time.Millisecond})
	done := runAsync(r)

	deadline := time.Now().Add(2 * time.Second)
	for !r.Running() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := r.Run(); !errors.Is(err, ErrRunning) {
		t.Errorf("Expected ErrRunning, got %v", err)
	}
	d.push(keyEvent('q'))
	if err := waitRun(t, done); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

// TestRunnerSingleUse verifies Run after a completed run or an early Stop is rejected
func TestRunnerSingleUse(t *testing.T) {
	d := newFakeDisplay(t)
	r := NewRunner(d, &fakeHandler{}, RunnerConfig{TickInterval: time.Millisecond})
	d.push(keyEvent('q'))
	if err := waitRun(t, runAsync(r)); err != nil {
		t.Fatalf("Expected nil error from first run, got %v", err)
	}
	shows := d.showCount()
	if err := r.Run(); !errors.Is(err, ErrStopped) {
		t.Errorf("Expected ErrStopped on second run, got %v", err)
	}
	if r.Running() {
		t.Error("Expected runner not running after rejected run")
	}
	if got := d.showCount(); got != shows {
		t.Errorf("Expected no render after rejected run, got %d extra", got-shows)
	}

	early := NewRunner(newFakeDisplay(t), &fakeHandler{}, RunnerConfig{})
	early.Stop()
	if err := early.Run(); !errors.Is(err, ErrStopped) {
		t.Errorf("Expected ErrStopped after Stop, got %v", err)
	}
}

// TestRunnerDefaults verifies zero config selects default intervals
func TestRunnerDefaults(t *testing.T) {
	r := NewRunner(newFakeDisplay(t), &fakeHandler{}, RunnerConfig{})
	if r.cfg.TickInterval != DefaultTickInterval {
		t.Errorf("Expected tick %v, got %v", DefaultTickInterval, r.cfg.TickInterval)
	}
	if r.cfg.PollInterval != DefaultPollInterval {
		t.Errorf("Expected poll %v, got %v", DefaultPollInterval, r.cfg.PollInterval)
	}
	if r.logger == nil {
		t.Error("Expected discard logger")
	}
}
