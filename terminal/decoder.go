// @lixen: #focus{sys[term,io,input]}
package terminal

import (
	"errors"
	"io"
	"time"
	"unicode/utf8"
)

const (
	DefaultInputBufferSize = 256
	DefaultEscapeDelay     = 50 * time.Millisecond

	minInputBufferSize = 16

	// Sanity limits on numeric parameters; larger values are malformed
	maxCSIParam   = 65535
	maxMouseParam = 9999
	maxCSIParams  = 4

	esc = 0x1b
)

// ByteSource is a non-blocking byte reader
// Read returns 0, nil when no input is available
type ByteSource interface {
	Read(p []byte) (int, error)
}

// DecoderConfig tunes input decoding
type DecoderConfig struct {
	// BufferSize bounds the longest sequence the decoder can assemble
	BufferSize int
	// EscapeDelay is how long a lone ESC waits for a following byte before it is reported as the Escape key
	EscapeDelay time.Duration
	// Now is the clock, time.Now if nil
	Now func() time.Time
}

// DefaultDecoderConfig returns the standard decoder settings
func DefaultDecoderConfig() DecoderConfig {
	return DecoderConfig{
		BufferSize:  DefaultInputBufferSize,
		EscapeDelay: DefaultEscapeDelay,
		Now:         time.Now,
	}
}

// parseResult is the outcome of one sub-parser attempt
type parseResult uint8

const (
	parseNoMatch    parseResult = iota // try the next parser
	parseIncomplete                    // prefix matched, wait for more bytes
	parseDiscard                       // well-formed but unknown, consume silently
	parseMatched                       // event decoded
)

type parseFunc func(d *Decoder, b []byte) (Event, parseResult, int)

// decodeChain lists sub-parsers in precedence order
var decodeChain = [...]parseFunc{
	(*Decoder).parseSGRMouse,
	(*Decoder).parseCSI,
	(*Decoder).parseSS3,
	(*Decoder).parseAlt,
	(*Decoder).parseBareEscape,
	(*Decoder).parseChar,
}

// Decoder turns a raw terminal byte stream into events
// Partial sequences are retained across polls; malformed input is dropped one byte at a time
type Decoder struct {
	src      ByteSource
	q        *byteQueue
	escDelay time.Duration
	now      func() time.Time

	fresh       bool      // bytes arrived during the current poll
	lastArrival time.Time // time of the most recent non-empty read
	err         error     // source error, reported once the window drains
}

// NewDecoder creates a decoder reading from src
func NewDecoder(src ByteSource, cfg ...DecoderConfig) *Decoder {
	c := DefaultDecoderConfig()
	if len(cfg) > 0 {
		c = cfg[0]
	}
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultInputBufferSize
	}
	if c.BufferSize < minInputBufferSize {
		c.BufferSize = minInputBufferSize
	}
	if c.EscapeDelay < 0 {
		c.EscapeDelay = 0
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return &Decoder{
		src:      src,
		q:        newByteQueue(c.BufferSize),
		escDelay: c.EscapeDelay,
		now:      c.Now,
	}
}

// Pending returns the number of buffered, unconsumed bytes
func (d *Decoder) Pending() int {
	return d.q.len()
}

// Poll reads available input and returns at most one event
// Returns an EventNone event when nothing complete is buffered
func (d *Decoder) Poll() Event {
	d.q.compact()
	d.fresh = false

	if d.err == nil {
		n, err := d.q.fill(d.src)
		if n > 0 {
			d.fresh = true
			d.lastArrival = d.now()
		}
		if err != nil {
			d.err = err
		}
	}

	if d.q.len() == 0 {
		if d.err != nil {
			return d.errorEvent()
		}
		return Event{}
	}

	window := d.q.bytes()
	for _, parse := range decodeChain {
		ev, res, n := parse(d, window)
		switch res {
		case parseMatched:
			d.q.consume(n)
			return ev
		case parseDiscard:
			d.q.consume(n)
			return Event{}
		case parseIncomplete:
			// A full window can never complete the sequence
			if d.q.full() {
				d.q.consume(1)
			}
			return Event{}
		}
	}

	// Noise: resync by dropping one byte
	d.q.consume(1)
	return Event{}
}

// errorEvent reports the deferred source error
// EOF is sticky; other errors are reported once and reading resumes
func (d *Decoder) errorEvent() Event {
	if errors.Is(d.err, io.EOF) {
		return Event{Type: EventClosed}
	}
	ev := Event{Type: EventError, Err: d.err}
	d.err = nil
	return ev
}

// parseSGRMouse decodes ESC [ < Btn ; X ; Y M/m
func (d *Decoder) parseSGRMouse(b []byte) (Event, parseResult, int) {
	if len(b) < 3 || b[0] != esc || b[1] != '[' || b[2] != '<' {
		return Event{}, parseNoMatch, 0
	}

	var params [3]int
	count, val, digits := 0, 0, 0

	for i := 3; i < len(b); i++ {
		c := b[i]
		switch {
		case c >= '0' && c <= '9':
			val = val*10 + int(c-'0')
			digits++
			if val > maxMouseParam {
				return Event{}, parseNoMatch, 0
			}
		case c == ';':
			if count >= 2 || digits == 0 {
				return Event{}, parseNoMatch, 0
			}
			params[count] = val
			count++
			val, digits = 0, 0
		case c == 'M' || c == 'm':
			if count != 2 || digits == 0 {
				return Event{}, parseNoMatch, 0
			}
			params[2] = val
			return decodeMouse(params[0], params[1], params[2], c == 'm'), parseMatched, i + 1
		default:
			return Event{}, parseNoMatch, 0
		}
	}
	return Event{}, parseIncomplete, 0
}

// decodeMouse interprets an SGR button byte
// Bits 0-1: base button, bit 2: Shift, bit 3: Alt, bit 4: Ctrl, bit 5: motion, bit 6: scroll
func decodeMouse(btn, x, y int, release bool) Event {
	ev := Event{Type: EventMouse, MouseX: max(x-1, 0), MouseY: max(y-1, 0)}

	base := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	switch {
	case isScroll:
		if base == 0 {
			ev.MouseBtn = MouseBtnWheelUp
		} else {
			ev.MouseBtn = MouseBtnWheelDown
		}
		ev.MouseAction = MouseActionPress
	case isMotion:
		if base == 3 {
			ev.MouseAction = MouseActionMove
		} else {
			ev.MouseBtn = MouseButton(base + 1)
			ev.MouseAction = MouseActionDrag
		}
	default:
		if base != 3 {
			ev.MouseBtn = MouseButton(base + 1)
		}
		if release {
			ev.MouseAction = MouseActionRelease
		} else {
			ev.MouseAction = MouseActionPress
		}
	}

	if btn&4 != 0 {
		ev.Modifiers |= ModShift
	}
	if btn&8 != 0 {
		ev.Modifiers |= ModAlt
	}
	if btn&16 != 0 {
		ev.Modifiers |= ModCtrl
	}
	return ev
}

// parseCSI decodes ESC [ params final
func (d *Decoder) parseCSI(b []byte) (Event, parseResult, int) {
	if len(b) < 2 || b[0] != esc || b[1] != '[' {
		return Event{}, parseNoMatch, 0
	}

	var params [maxCSIParams]int
	count, val := 0, 0

	for i := 2; i < len(b); i++ {
		c := b[i]
		switch {
		case c >= '0' && c <= '9':
			val = val*10 + int(c-'0')
			if val > maxCSIParam {
				return Event{}, parseNoMatch, 0
			}
		case c == ';':
			if count < maxCSIParams {
				params[count] = val
			}
			count++
			val = 0
		case c >= 0x40 && c <= 0x7e:
			if count < maxCSIParams {
				params[count] = val
			}
			count++
			if ev, ok := decodeCSI(params, count, c); ok {
				return ev, parseMatched, i + 1
			}
			return Event{}, parseDiscard, i + 1
		default:
			return Event{}, parseNoMatch, 0
		}
	}
	return Event{}, parseIncomplete, 0
}

func csiKey(final byte, first int) (Key, bool) {
	if final == '~' {
		k, ok := csiTildeKeys[first]
		return k, ok
	}
	return letterKey(final)
}

// decodeCSI builds the key event; the modifier parameter is (value-1) with bit 0 Shift, bit 1 Alt, bit 2 Ctrl
func decodeCSI(params [maxCSIParams]int, count int, final byte) (Event, bool) {
	key, ok := csiKey(final, params[0])
	if !ok {
		return Event{}, false
	}
	ev := Event{Type: EventKey, Key: key}
	if count >= 2 && params[1] > 1 {
		ev.Modifiers = Modifier(params[1]-1) & (ModShift | ModAlt | ModCtrl)
	}
	return ev, true
}

// parseSS3 decodes ESC O letter
func (d *Decoder) parseSS3(b []byte) (Event, parseResult, int) {
	if len(b) < 2 || b[0] != esc || b[1] != 'O' {
		return Event{}, parseNoMatch, 0
	}
	if len(b) < 3 {
		return Event{}, parseIncomplete, 0
	}
	if key, ok := letterKey(b[2]); ok {
		return Event{Type: EventKey, Key: key}, parseMatched, 3
	}
	return Event{}, parseNoMatch, 0
}

// parseAlt decodes ESC followed by a control or printable byte
func (d *Decoder) parseAlt(b []byte) (Event, parseResult, int) {
	if len(b) < 2 || b[0] != esc {
		return Event{}, parseNoMatch, 0
	}
	c := b[1]
	switch {
	case c == '[' || c == 'O':
		return Event{}, parseNoMatch, 0
	case c >= 1 && c <= 26:
		return Event{Type: EventKey, Key: Key('a' + c - 1), Modifiers: ModAlt | ModCtrl}, parseMatched, 2
	case c >= 32 && c <= 126:
		return Event{Type: EventKey, Key: Key(c), Modifiers: ModAlt, Glyph: string(b[1:2])}, parseMatched, 2
	}
	return Event{}, parseNoMatch, 0
}

// parseBareEscape reports a lone ESC once no further bytes arrived within the escape delay
func (d *Decoder) parseBareEscape(b []byte) (Event, parseResult, int) {
	if len(b) != 1 || b[0] != esc {
		return Event{}, parseNoMatch, 0
	}
	if d.fresh || d.now().Sub(d.lastArrival) < d.escDelay {
		return Event{}, parseIncomplete, 0
	}
	return Event{Type: EventKey, Key: KeyEscape}, parseMatched, 1
}

// parseChar decodes one control byte, ASCII character or UTF-8 scalar
func (d *Decoder) parseChar(b []byte) (Event, parseResult, int) {
	c := b[0]
	switch {
	case c == '\t':
		return Event{Type: EventKey, Key: KeyTab}, parseMatched, 1
	case c == '\n' || c == '\r':
		return Event{Type: EventKey, Key: KeyEnter}, parseMatched, 1
	case c == 0x7f:
		return Event{Type: EventKey, Key: KeyBackspace}, parseMatched, 1
	case c >= 1 && c <= 26:
		return Event{Type: EventKey, Key: Key('a' + c - 1), Modifiers: ModCtrl}, parseMatched, 1
	case c >= 28 && c <= 31:
		return Event{Type: EventKey, Key: Key(c)}, parseMatched, 1
	case c >= 32 && c <= 126:
		return Event{Type: EventKey, Key: Key(c), Glyph: string(b[:1])}, parseMatched, 1
	case c >= 0x80:
		n := utf8SeqLen(c)
		if n == 0 {
			return Event{}, parseNoMatch, 0
		}
		for i := 1; i < n && i < len(b); i++ {
			if b[i]&0xc0 != 0x80 {
				return Event{}, parseNoMatch, 0
			}
		}
		if len(b) < n {
			return Event{}, parseIncomplete, 0
		}
		if !utf8.Valid(b[:n]) {
			return Event{}, parseNoMatch, 0
		}
		return Event{Type: EventKey, Key: KeyNone, Glyph: string(b[:n])}, parseMatched, n
	}
	return Event{}, parseNoMatch, 0
}
