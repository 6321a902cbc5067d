//go:build !unix

package terminal

import "os"

// DefaultBackend returns a backend whose Init fails with ErrUnsupported
func DefaultBackend() Backend {
	return unsupportedBackend{}
}

type unsupportedBackend struct{}

func (unsupportedBackend) Init() error { return ErrUnsupported }
func (unsupportedBackend) Fini() error { return nil }
func (unsupportedBackend) Size() (int, int) { return 80, 24 }
func (unsupportedBackend) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (unsupportedBackend) Read(p []byte) (int, error) { return 0, ErrUnsupported }
func (unsupportedBackend) SetResizeHandler(func(w, h int)) {}

func resetTerminalMode() {}
