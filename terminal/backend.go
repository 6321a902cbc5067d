package terminal

import "errors"

var (
	// ErrNotTerminal is returned when the input is not a tty
	ErrNotTerminal = errors.New("terminal: input is not a terminal")
	// ErrUnsupported is returned by the default backend on platforms without a raw tty implementation
	ErrUnsupported = errors.New("terminal: platform not supported")
)

// Backend abstracts platform-specific terminal operations.
// A scripted implementation (termtest.Backend) drives tests without a tty.
type Backend interface {
	// Lifecycle
	// Init enters raw mode
	Init() error
	// Fini restores the saved terminal mode
	Fini() error

	// Capabilities
	Size() (width, height int)

	// I/O
	// Write writes raw bytes to the terminal output.
	Write(p []byte) (int, error)

	// Read copies available input into p without blocking, returning 0, nil when none is pending.
	Read(p []byte) (int, error)

	// Callbacks
	// SetResizeHandler registers a callback for terminal resize events.
	SetResizeHandler(handler func(width, height int))
}
