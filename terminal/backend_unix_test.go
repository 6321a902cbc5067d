//go:build unix

package terminal

import (
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"
)

func openPty(t *testing.T) (master, tty *os.File) {
	t.Helper()
	master, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		master.Close()
		tty.Close()
	})
	return master, tty
}

// TestUnixBackendRawMode verifies Init enters raw mode and Fini restores it
func TestUnixBackendRawMode(t *testing.T) {
	_, tty := openPty(t)
	b := NewUnixBackend(tty, tty)

	before, err := term.GetState(int(tty.Fd()))
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}

	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	during, _ := term.GetState(int(tty.Fd()))
	if *during == *before {
		t.Error("Expected terminal state to change in raw mode")
	}

	if err := b.Fini(); err != nil {
		t.Fatalf("Fini failed: %v", err)
	}
	after, _ := term.GetState(int(tty.Fd()))
	if *after != *before {
		t.Error("Expected terminal state restored after Fini")
	}
}

// TestUnixBackendNotTerminal verifies Init rejects a non-tty input
func TestUnixBackendNotTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	defer r.Close()
	defer w.Close()

	if err := NewUnixBackend(r, w).Init(); err != ErrNotTerminal {
		t.Errorf("Expected ErrNotTerminal, got %v", err)
	}
}

// TestUnixBackendSize verifies the window size is read from the tty
func TestUnixBackendSize(t *testing.T) {
	_, tty := openPty(t)
	if err := pty.Setsize(tty, &pty.Winsize{Cols: 132, Rows: 43}); err != nil {
		t.Fatalf("Setsize failed: %v", err)
	}
	b := NewUnixBackend(tty, tty)
	if w, h := b.Size(); w != 132 || h != 43 {
		t.Errorf("Expected 132x43, got %dx%d", w, h)
	}
}

// TestUnixBackendNonBlockingRead verifies Read returns immediately with or without input
func TestUnixBackendNonBlockingRead(t *testing.T) {
	master, tty := openPty(t)
	b := NewUnixBackend(tty, tty)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer b.Fini()

	buf := make([]byte, 64)
	start := time.Now()
	n, err := b.Read(buf)
	if err != nil || n != 0 {
		t.Fatalf("Expected empty non-blocking read, got n=%d err=%v", n, err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Error("Read blocked without input")
	}

	if _, err := master.Write([]byte("\x1b[A")); err != nil {
		t.Fatalf("Master write failed: %v", err)
	}

	var got []byte
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < 3 && time.Now().Before(deadline) {
		n, err := b.Read(buf)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		got = append(got, buf[:n]...)
		if n == 0 {
			time.Sleep(time.Millisecond)
		}
	}
	if string(got) != "\x1b[A" {
		t.Errorf("Expected %q, got %q", "\x1b[A", got)
	}
}

// TestUnixBackendDecoder verifies the decoder reads keys through a real tty
func TestUnixBackendDecoder(t *testing.T) {
	master, tty := openPty(t)
	b := NewUnixBackend(tty, tty)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer b.Fini()

	d := NewDecoder(b, DecoderConfig{EscapeDelay: DefaultEscapeDelay})
	master.Write([]byte("\x1b[1;5Cz"))

	var events []Event
	deadline := time.Now().Add(2 * time.Second)
	for len(events) < 2 && time.Now().Before(deadline) {
		if ev := d.Poll(); ev.Type != EventNone {
			events = append(events, ev)
			continue
		}
		time.Sleep(time.Millisecond)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %v", events)
	}
	if !events[0].IsKeyMod(KeyRight, ModCtrl) || !events[1].IsChar('z') {
		t.Errorf("Unexpected events: %v", events)
	}
}
