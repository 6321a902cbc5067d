// Package config resolves runtime settings from defaults, an optional .env
// file and CELLTERM_* environment variables; command-line flags are applied
// on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/cellterm/terminal"
)

// Environment variable prefix for every setting
const EnvPrefix = "CELLTERM_"

const (
	DefaultTickRate     = 30
	DefaultPollInterval = 500 * time.Microsecond
	DefaultEscapeDelay  = 50 * time.Millisecond
	DefaultInputBuffer  = 256
	DefaultOutputBuffer = 64 * 1024
	DefaultSampleRate   = 44100
	DefaultVolume       = 0.5
	DefaultQuitKey      = "q"
	DefaultAccent       = "#ffaf00"
	DefaultBorder       = "gray"
	DefaultLogDir       = "logs"
)

// Validation bounds
const (
	MinTickRate     = 1
	MaxTickRate     = 1000
	MinInputBuffer  = 16
	MaxInputBuffer  = 64 * 1024
	MinOutputBuffer = 1024
	MaxOutputBuffer = 4 * 1024 * 1024
)

var ErrInvalid = errors.New("config: invalid value")

// Config holds every tunable of the demo programs
type Config struct {
	TickRate     int           // ticks per second
	PollInterval time.Duration // input poll sleep when idle
	EscapeDelay  time.Duration // bare ESC disambiguation window
	InputBuffer  int           // decoder window bytes
	OutputBuffer int           // renderer buffer bytes

	Mouse bool
	Sound bool
	Debug bool

	SampleRate int
	Volume     float64 // 0.0-1.0

	QuitKey string // key name resolved with terminal.KeyByName
	Accent  string // color name or #rrggbb
	Border  string

	LogDir string
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		TickRate:     DefaultTickRate,
		PollInterval: DefaultPollInterval,
		EscapeDelay:  DefaultEscapeDelay,
		InputBuffer:  DefaultInputBuffer,
		OutputBuffer: DefaultOutputBuffer,
		Mouse:        true,
		SampleRate:   DefaultSampleRate,
		Volume:       DefaultVolume,
		QuitKey:      DefaultQuitKey,
		Accent:       DefaultAccent,
		Border:       DefaultBorder,
		LogDir:       DefaultLogDir,
	}
}

// Load reads envFile into the process environment when it exists, then
// overlays CELLTERM_* variables onto the defaults and validates the result
// Variables already set in the environment win over the file
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// lookupFunc matches os.LookupEnv
type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	p := envParser{lookup: lookup}

	p.int("TICK_RATE", &c.TickRate)
	p.duration("POLL_INTERVAL", &c.PollInterval)
	p.duration("ESCAPE_DELAY", &c.EscapeDelay)
	p.int("INPUT_BUFFER", &c.InputBuffer)
	p.int("OUTPUT_BUFFER", &c.OutputBuffer)
	p.bool("MOUSE", &c.Mouse)
	p.bool("SOUND", &c.Sound)
	p.bool("DEBUG", &c.Debug)
	p.int("SAMPLE_RATE", &c.SampleRate)
	p.float("VOLUME", &c.Volume)
	p.string("QUIT_KEY", &c.QuitKey)
	p.string("ACCENT", &c.Accent)
	p.string("BORDER", &c.Border)
	p.string("LOG_DIR", &c.LogDir)

	return p.err
}

// envParser records the first parse failure and skips the rest
type envParser struct {
	lookup lookupFunc
	err    error
}

func (p *envParser) get(name string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.lookup(EnvPrefix + name)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (p *envParser) fail(name string, err error) {
	p.err = fmt.Errorf("config: invalid %s%s: %w", EnvPrefix, name, err)
}

func (p *envParser) int(name string, dst *int) {
	if v, ok := p.get(name); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.fail(name, err)
			return
		}
		*dst = n
	}
}

func (p *envParser) float(name string, dst *float64) {
	if v, ok := p.get(name); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.fail(name, err)
			return
		}
		*dst = f
	}
}

func (p *envParser) bool(name string, dst *bool) {
	if v, ok := p.get(name); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.fail(name, err)
			return
		}
		*dst = b
	}
}

func (p *envParser) duration(name string, dst *time.Duration) {
	if v, ok := p.get(name); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			p.fail(name, err)
			return
		}
		*dst = d
	}
}

func (p *envParser) string(name string, dst *string) {
	if v, ok := p.get(name); ok && v != "" {
		*dst = v
	}
}

// Validate checks ranges and that key and color names resolve
func (c Config) Validate() error {
	switch {
	case c.TickRate < MinTickRate || c.TickRate > MaxTickRate:
		return fmt.Errorf("%w: tick rate %d outside %d..%d", ErrInvalid, c.TickRate, MinTickRate, MaxTickRate)
	case c.PollInterval <= 0:
		return fmt.Errorf("%w: poll interval %v", ErrInvalid, c.PollInterval)
	case c.EscapeDelay < 0:
		return fmt.Errorf("%w: escape delay %v", ErrInvalid, c.EscapeDelay)
	case c.InputBuffer < MinInputBuffer || c.InputBuffer > MaxInputBuffer:
		return fmt.Errorf("%w: input buffer %d outside %d..%d", ErrInvalid, c.InputBuffer, MinInputBuffer, MaxInputBuffer)
	case c.OutputBuffer < MinOutputBuffer || c.OutputBuffer > MaxOutputBuffer:
		return fmt.Errorf("%w: output buffer %d outside %d..%d", ErrInvalid, c.OutputBuffer, MinOutputBuffer, MaxOutputBuffer)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalid, c.SampleRate)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("%w: volume %g outside 0..1", ErrInvalid, c.Volume)
	}
	if _, err := c.QuitKeyCode(); err != nil {
		return err
	}
	if _, err := c.AccentColor(); err != nil {
		return err
	}
	if _, err := c.BorderColor(); err != nil {
		return err
	}
	return nil
}

// TickInterval converts TickRate to a period
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(max(c.TickRate, 1))
}

// QuitKeyCode resolves QuitKey, a key name or a single printable character
func (c Config) QuitKeyCode() (terminal.Key, error) {
	k, ok := terminal.KeyByName(c.QuitKey)
	if !ok {
		return terminal.KeyNone, fmt.Errorf("%w: quit key %q", ErrInvalid, c.QuitKey)
	}
	return k, nil
}

// AccentColor parses Accent
func (c Config) AccentColor() (terminal.Color, error) {
	return terminal.ParseColor(c.Accent)
}

// BorderColor parses Border
func (c Config) BorderColor() (terminal.Color, error) {
	return terminal.ParseColor(c.Border)
}

// SessionConfig maps terminal mode settings onto the session
func (c Config) SessionConfig() terminal.SessionConfig {
	return terminal.SessionConfig{Mouse: c.Mouse}
}

// ScreenConfig maps buffer and timing settings onto the screen
func (c Config) ScreenConfig() terminal.ScreenConfig {
	return terminal.ScreenConfig{
		Decoder: terminal.DecoderConfig{
			BufferSize:  c.InputBuffer,
			EscapeDelay: c.EscapeDelay,
		},
		RenderBufferSize: c.OutputBuffer,
	}
}
