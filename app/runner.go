// @lixen: #focus{sys[loop,lifecycle]}
package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/cellterm/terminal"
)

const (
	DefaultTickInterval = time.Second / 30
	DefaultPollInterval = 500 * time.Microsecond
)

var (
	// ErrRunning is returned by Run when the runner is already active
	ErrRunning = errors.New("app: runner already running")
	// ErrStopped is returned by Run once the runner has been stopped; runners are single-use
	ErrStopped = errors.New("app: runner stopped")
	// ErrInputClosed is returned by Run when the input source reached EOF
	ErrInputClosed = errors.New("app: input closed")
)

// Display is the screen surface driven by the runner
// terminal.Screen satisfies it
type Display interface {
	Poll() terminal.Event
	Grid() *terminal.CellGrid
	Show() error
}

// Handler is the application driven by the runner
// All methods are called with the runner lock held
type Handler interface {
	// HandleEvent processes one input event, returning false to stop
	HandleEvent(ev terminal.Event) bool
	// Tick advances simulation by the real time elapsed since the previous tick
	Tick(dt time.Duration)
	// Draw renders the current state into a cleared grid
	Draw(g *terminal.CellGrid)
}

// RunnerConfig tunes loop timing and failure handling
type RunnerConfig struct {
	TickInterval time.Duration
	PollInterval time.Duration
	// Logger receives lifecycle and error messages, discarded if nil
	Logger *log.Logger
	// CrashHandler receives recovered panics from either loop; nil re-panics
	CrashHandler func(any)
}

// RunnerStats counts loop activity since Run started
type RunnerStats struct {
	Ticks  uint64
	Events uint64
	Frames uint64
}

// Runner drives a Display and Handler with two loops sharing one lock:
// input polling on a goroutine and fixed-rate ticking on the caller's goroutine
type Runner struct {
	display Display
	handler Handler
	cfg     RunnerConfig
	logger  *log.Logger

	mu      sync.Mutex
	running atomic.Bool
	wg      sync.WaitGroup

	stopCh   chan struct{}
	stopOnce sync.Once

	errOnce sync.Once
	err     error

	ticks  atomic.Uint64
	events atomic.Uint64
	frames atomic.Uint64
}

// NewRunner creates a runner; zero intervals select the defaults
func NewRunner(d Display, h Handler, cfg RunnerConfig) *Runner {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Runner{
		display: d,
		handler: h,
		cfg:     cfg,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

// Run blocks until the handler quits, input closes, rendering fails or Stop is called
// The input goroutine has exited when Run returns, so the caller may restore the terminal
// A Runner runs once; Run after Stop returns ErrStopped
func (r *Runner) Run() error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	select {
	case <-r.stopCh:
		r.running.Store(false)
		return ErrStopped
	default:
	}
	r.logger.Printf("runner: start tick=%v poll=%v", r.cfg.TickInterval, r.cfg.PollInterval)

	r.mu.Lock()
	err := r.render()
	r.mu.Unlock()
	if err != nil {
		r.fail(fmt.Errorf("app: initial render: %w", err))
		r.running.Store(false)
		return r.err
	}

	r.wg.Add(1)
	go r.inputLoop()

	r.tickLoop()

	r.Stop()
	r.wg.Wait()
	r.logger.Printf("runner: stop ticks=%d events=%d frames=%d err=%v",
		r.ticks.Load(), r.events.Load(), r.frames.Load(), r.err)
	return r.err
}

// Stop requests both loops to exit; safe from any goroutine, including handler callbacks
func (r *Runner) Stop() {
	r.running.Store(false)
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Running reports whether the loops are active
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Stats returns loop counters
func (r *Runner) Stats() RunnerStats {
	return RunnerStats{
		Ticks:  r.ticks.Load(),
		Events: r.events.Load(),
		Frames: r.frames.Load(),
	}
}

// fail records the first error and stops the runner
func (r *Runner) fail(err error) {
	r.errOnce.Do(func() {
		r.err = err
		r.logger.Printf("runner: %v", err)
	})
	r.Stop()
}

// recoverLoop routes a panic to the crash handler and stops the runner
func (r *Runner) recoverLoop(loop string) {
	p := recover()
	if p == nil {
		return
	}
	r.fail(fmt.Errorf("app: %s loop panic: %v", loop, p))
	if r.cfg.CrashHandler == nil {
		panic(p)
	}
	r.cfg.CrashHandler(p)
}

// render clears the grid, lets the handler draw and converges the terminal
// Caller holds r.mu
func (r *Runner) render() error {
	g := r.display.Grid()
	g.Clear()
	r.handler.Draw(g)
	if err := r.display.Show(); err != nil {
		return err
	}
	r.frames.Add(1)
	return nil
}

func (r *Runner) inputLoop() {
	defer r.wg.Done()
	defer r.recoverLoop("input")

	for r.running.Load() {
		if !r.pollOnce() {
			select {
			case <-time.After(r.cfg.PollInterval):
			case <-r.stopCh:
				return
			}
		}
	}
}

// pollOnce handles at most one event under the lock, reporting whether one arrived
func (r *Runner) pollOnce() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev := r.display.Poll()
	switch ev.Type {
	case terminal.EventNone:
		return false
	case terminal.EventClosed:
		r.fail(ErrInputClosed)
		return true
	case terminal.EventError:
		r.fail(fmt.Errorf("app: input: %w", ev.Err))
		return true
	}

	r.events.Add(1)
	if !r.handler.HandleEvent(ev) {
		r.Stop()
		return true
	}
	if err := r.render(); err != nil {
		r.fail(fmt.Errorf("app: render: %w", err))
	}
	return true
}

func (r *Runner) tickLoop() {
	defer r.recoverLoop("tick")

	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()
	last := time.Now()

	for r.running.Load() {
		select {
		case <-ticker.C:
		case <-r.stopCh:
			return
		}

		now := time.Now()
		r.tickOnce(now.Sub(last))
		last = now
	}
}

func (r *Runner) tickOnce(dt time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running.Load() {
		return
	}
	r.ticks.Add(1)
	r.handler.Tick(dt)
	if err := r.render(); err != nil {
		r.fail(fmt.Errorf("app: render: %w", err))
	}
}
