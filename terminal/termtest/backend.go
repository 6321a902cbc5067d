// Package termtest provides in-memory terminal doubles for tests:
// a scripted non-blocking Backend and a minimal VT Emulator that replays renderer output.
package termtest

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// ErrInitFailed is returned by Init when FailInit is set
var ErrInitFailed = errors.New("termtest: init failed")

// Backend is a deterministic in-memory terminal
// Each Read returns at most one pushed chunk, modeling one OS read per poll
type Backend struct {
	mu sync.Mutex

	width  int
	height int

	input  [][]byte
	closed bool
	err    error

	out    bytes.Buffer
	writes int

	raw      bool
	inits    int
	finis    int
	FailInit bool

	resize func(w, h int)
}

// NewBackend creates a backend reporting the given size
func NewBackend(width, height int) *Backend {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return &Backend{width: width, height: height}
}

func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailInit {
		return ErrInitFailed
	}
	b.raw = true
	b.inits++
	return nil
}

func (b *Backend) Fini() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.raw = false
	b.finis++
	return nil
}

func (b *Backend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *Backend) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes++
	return b.out.Write(p)
}

// Read never blocks; it returns 0, nil when no chunk is queued
func (b *Backend) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.input) == 0 {
		if b.err != nil {
			err := b.err
			b.err = nil
			return 0, err
		}
		if b.closed {
			return 0, io.EOF
		}
		return 0, nil
	}

	chunk := b.input[0]
	n := copy(p, chunk)
	if n < len(chunk) {
		b.input[0] = chunk[n:]
	} else {
		b.input = b.input[1:]
	}
	return n, nil
}

func (b *Backend) SetResizeHandler(handler func(w, h int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resize = handler
}

// Push queues one read's worth of input
func (b *Backend) Push(data []byte) {
	if len(data) == 0 {
		return
	}
	payload := make([]byte, len(data))
	copy(payload, data)
	b.mu.Lock()
	b.input = append(b.input, payload)
	b.mu.Unlock()
}

// PushString queues one read's worth of input
func (b *Backend) PushString(data string) {
	b.Push([]byte(data))
}

// PushBytes queues each byte as a separate read
func (b *Backend) PushBytes(data string) {
	for i := 0; i < len(data); i++ {
		b.Push([]byte{data[i]})
	}
}

// Fail makes the next empty read return err
func (b *Backend) Fail(err error) {
	b.mu.Lock()
	b.err = err
	b.mu.Unlock()
}

// Close makes reads return io.EOF once queued input is drained
func (b *Backend) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

// Resize changes the reported size and fires the resize handler
func (b *Backend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	handler := b.resize
	b.mu.Unlock()
	if handler != nil {
		handler(width, height)
	}
}

// Pending returns the number of queued input chunks
func (b *Backend) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.input)
}

// Output returns everything written so far
func (b *Backend) Output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.String()
}

// ResetOutput discards captured output
func (b *Backend) ResetOutput() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Reset()
	b.writes = 0
}

// Writes returns the number of Write calls since the last reset
func (b *Backend) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// Raw reports whether the backend is in raw mode
func (b *Backend) Raw() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.raw
}

// Calls returns the number of Init and Fini calls
func (b *Backend) Calls() (inits, finis int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inits, b.finis
}
