// @lixen: #focus{sys[term,lifecycle]}
package terminal

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync"
)

// ErrSessionClosed is returned when using a finalized session
var ErrSessionClosed = errors.New("terminal: session closed")

// Size is a terminal dimension pair
type Size struct {
	Width  int
	Height int
}

// SessionConfig controls the setup sequence
type SessionConfig struct {
	// Mouse enables SGR any-event mouse reporting
	Mouse bool
}

// Session brackets raw mode and the alternate screen around the program's lifetime
type Session struct {
	backend Backend
	mouse   bool

	resizeCh chan Size

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewSession wraps a backend; DefaultBackend() is used when b is nil
func NewSession(b Backend, cfg ...SessionConfig) *Session {
	if b == nil {
		b = DefaultBackend()
	}
	c := SessionConfig{Mouse: true}
	if len(cfg) > 0 {
		c = cfg[0]
	}
	return &Session{
		backend:  b,
		mouse:    c.Mouse,
		resizeCh: make(chan Size, 1),
	}
}

// Init enters raw mode and writes the setup sequence
func (s *Session) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return ErrSessionClosed
	}
	if s.initialized {
		return nil
	}

	// Initialize backend (raw mode)
	if err := s.backend.Init(); err != nil {
		return err
	}

	s.backend.SetResizeHandler(func(w, h int) {
		// Non-blocking send, keep only the latest size pending
		select {
		case s.resizeCh <- Size{Width: w, Height: h}:
		default:
			select {
			case <-s.resizeCh:
			default:
			}
			select {
			case s.resizeCh <- Size{Width: w, Height: h}:
			default:
			}
		}
	})

	w := bufio.NewWriter(s.backend)
	writeSetup(w, s.mouse)
	if err := w.Flush(); err != nil {
		s.backend.Fini()
		return err
	}

	s.initialized = true
	return nil
}

// Fini writes the teardown sequence and restores the terminal mode
// Safe to call multiple times and after a failed Init
func (s *Session) Fini() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return nil
	}
	s.finalized = true

	w := bufio.NewWriter(s.backend)
	writeTeardown(w, s.mouse)
	werr := w.Flush()

	// Backend cleanup
	if err := s.backend.Fini(); err != nil {
		return err
	}
	return werr
}

// Size returns current terminal dimensions
func (s *Session) Size() (int, int) {
	return s.backend.Size()
}

// Resized delivers the latest terminal size after SIGWINCH
func (s *Session) Resized() <-chan Size {
	return s.resizeCh
}

// Writer returns the raw output stream
func (s *Session) Writer() io.Writer { return s.backend }

// Source returns the non-blocking input stream
func (s *Session) Source() ByteSource { return s.backend }

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	bw := bufio.NewWriter(w)
	writeTeardown(bw, true)
	bw.Flush()

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Attempt raw mode reset - escape sequences alone don't restore termios
	// This is best-effort; ignore errors in crash context
	resetTerminalMode()
}
