package terminal

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lixenwraith/cellterm/terminal/termtest"
)

const (
	setupMouse    = "\x1b[?1049h\x1b[?25l\x1b[?1003h\x1b[?1006h\x1b[2J"
	setupNoMouse  = "\x1b[?1049h\x1b[?25l\x1b[2J"
	teardownMouse = "\x1b[0m\x1b[?1003l\x1b[?1006l\x1b[?25h\x1b[?1049l"
	teardownPlain = "\x1b[0m\x1b[?25h\x1b[?1049l"
)

// TestSessionSetupTeardown verifies the exact lifecycle byte sequences
func TestSessionSetupTeardown(t *testing.T) {
	tests := []struct {
		name     string
		mouse    bool
		setup    string
		teardown string
	}{
		{"mouse", true, setupMouse, teardownMouse},
		{"no mouse", false, setupNoMouse, teardownPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := termtest.NewBackend(80, 24)
			s := NewSession(b, SessionConfig{Mouse: tt.mouse})

			if err := s.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			if !b.Raw() {
				t.Error("Expected raw mode after Init")
			}
			if b.Output() != tt.setup {
				t.Errorf("Expected setup %q, got %q", tt.setup, b.Output())
			}

			b.ResetOutput()
			if err := s.Fini(); err != nil {
				t.Fatalf("Fini failed: %v", err)
			}
			if b.Raw() {
				t.Error("Expected raw mode restored after Fini")
			}
			if b.Output() != tt.teardown {
				t.Errorf("Expected teardown %q, got %q", tt.teardown, b.Output())
			}
		})
	}
}

// TestSessionIdempotent verifies repeated Init and Fini calls are no-ops
func TestSessionIdempotent(t *testing.T) {
	b := termtest.NewBackend(80, 24)
	s := NewSession(b)

	s.Init()
	s.Init()
	s.Fini()
	b.ResetOutput()
	if err := s.Fini(); err != nil {
		t.Errorf("Second Fini failed: %v", err)
	}

	if b.Output() != "" {
		t.Errorf("Expected no output from second Fini, got %q", b.Output())
	}
	if inits, finis := b.Calls(); inits != 1 || finis != 1 {
		t.Errorf("Expected 1 init and 1 fini, got %d and %d", inits, finis)
	}
	if err := s.Init(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Expected ErrSessionClosed after Fini, got %v", err)
	}
}

// TestSessionInitFailure verifies a failed Init leaves nothing to restore
func TestSessionInitFailure(t *testing.T) {
	b := termtest.NewBackend(80, 24)
	b.FailInit = true
	s := NewSession(b)

	if err := s.Init(); !errors.Is(err, termtest.ErrInitFailed) {
		t.Fatalf("Expected init error, got %v", err)
	}
	if err := s.Fini(); err != nil {
		t.Errorf("Fini after failed Init should succeed, got %v", err)
	}
	if b.Output() != "" {
		t.Errorf("Expected no output, got %q", b.Output())
	}
	if _, finis := b.Calls(); finis != 0 {
		t.Errorf("Expected no backend Fini, got %d", finis)
	}
}

// TestSessionResizeKeepsLatest verifies only the most recent size is pending
func TestSessionResizeKeepsLatest(t *testing.T) {
	b := termtest.NewBackend(80, 24)
	s := NewSession(b)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Fini()

	b.Resize(90, 20)
	b.Resize(100, 30)

	select {
	case sz := <-s.Resized():
		if sz.Width != 100 || sz.Height != 30 {
			t.Errorf("Expected 100x30, got %dx%d", sz.Width, sz.Height)
		}
	default:
		t.Fatal("Expected pending resize")
	}

	select {
	case sz := <-s.Resized():
		t.Errorf("Expected single pending resize, got extra %v", sz)
	default:
	}

	if w, h := s.Size(); w != 100 || h != 30 {
		t.Errorf("Expected session size 100x30, got %dx%d", w, h)
	}
}

// TestEmergencyReset verifies the crash path writes the full teardown
func TestEmergencyReset(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)
	if buf.String() != teardownMouse {
		t.Errorf("Expected %q, got %q", teardownMouse, buf.String())
	}
}
