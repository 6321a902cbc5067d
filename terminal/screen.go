package terminal

import "fmt"

// ScreenConfig sizes the input and output buffers
type ScreenConfig struct {
	Decoder          DecoderConfig
	RenderBufferSize int
}

// DefaultScreenConfig returns the standard screen settings
func DefaultScreenConfig() ScreenConfig {
	return ScreenConfig{
		Decoder:          DefaultDecoderConfig(),
		RenderBufferSize: DefaultRenderBufferSize,
	}
}

// Screen owns the render pipeline for one session: grid, renderer and decoder
// Not safe for concurrent use
type Screen struct {
	session  *Session
	grid     *CellGrid
	renderer *Renderer
	decoder  *Decoder

	needFull bool
}

// NewScreen sizes a grid from the session; the session must be initialized
func NewScreen(s *Session, cfg ...ScreenConfig) (*Screen, error) {
	c := DefaultScreenConfig()
	if len(cfg) > 0 {
		c = cfg[0]
	}

	w, h := s.Size()
	grid, err := NewCellGrid(w, h)
	if err != nil {
		return nil, fmt.Errorf("screen: %w", err)
	}

	return &Screen{
		session:  s,
		grid:     grid,
		renderer: NewRenderer(s.Writer(), c.RenderBufferSize),
		decoder:  NewDecoder(s.Source(), c.Decoder),
		needFull: true,
	}, nil
}

// Open initializes a session over b and creates its screen
// On failure the session is restored before returning
func Open(b Backend, sessionCfg SessionConfig, cfg ...ScreenConfig) (*Screen, error) {
	s := NewSession(b, sessionCfg)
	if err := s.Init(); err != nil {
		return nil, err
	}
	scr, err := NewScreen(s, cfg...)
	if err != nil {
		s.Fini()
		return nil, err
	}
	return scr, nil
}

func (s *Screen) Grid() *CellGrid { return s.grid }
func (s *Screen) Renderer() *Renderer { return s.renderer }
func (s *Screen) Session() *Session { return s.session }
func (s *Screen) Decoder() *Decoder { return s.decoder }
func (s *Screen) Size() (width, height int) { return s.grid.Size() }

// Poll applies a pending resize or decodes one input event
func (s *Screen) Poll() Event {
	select {
	case sz := <-s.session.Resized():
		if err := s.Resize(sz.Width, sz.Height); err != nil {
			return Event{Type: EventError, Err: err}
		}
		return Event{Type: EventResize, Width: sz.Width, Height: sz.Height}
	default:
	}
	return s.decoder.Poll()
}

// Resize reallocates the grid and schedules a full repaint
func (s *Screen) Resize(width, height int) error {
	if err := s.grid.Resize(width, height); err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	s.needFull = true
	return nil
}

// Show converges the terminal to the grid's back buffer
func (s *Screen) Show() error {
	if s.needFull {
		s.needFull = false
		if err := s.renderer.FlushFull(s.grid); err != nil {
			s.needFull = true
			return err
		}
		return nil
	}
	return s.renderer.Flush(s.grid)
}

// Close restores the terminal
func (s *Screen) Close() error {
	return s.session.Fini()
}
