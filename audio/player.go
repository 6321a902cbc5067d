package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	DefaultSampleRate = 44100
	// Identical cues closer than this are dropped
	DefaultMinGap = 30 * time.Millisecond

	speakerBuffer = 100 * time.Millisecond
)

// CuePlayer mixes feedback cues onto the speaker
type CuePlayer struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer
	minGap time.Duration
	last   map[CueKind]time.Time
	closed bool

	now func() time.Time
	// enqueue adds a streamer to the mixer, under the speaker lock when a device is open
	enqueue func(beep.Streamer)
	// release tears down the device
	release func()

	played  int
	dropped int
}

// NewCuePlayer initializes the speaker and starts the mixer
// volume is linear 0.0-1.0
func NewCuePlayer(sampleRate int, volume float64) (*CuePlayer, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	rate := beep.SampleRate(sampleRate)
	if err := speaker.Init(rate, rate.N(speakerBuffer)); err != nil {
		return nil, fmt.Errorf("audio: speaker init: %w", err)
	}

	p := newCuePlayer(rate, volume)
	p.enqueue = func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
	p.release = func() {
		speaker.Clear()
		speaker.Close()
	}
	speaker.Play(p.mixer)
	return p, nil
}

// newCuePlayer builds a player without a device; cues accumulate in the mixer
func newCuePlayer(rate beep.SampleRate, volume float64) *CuePlayer {
	p := &CuePlayer{
		rate:    rate,
		volume:  min(max(volume, 0), 1),
		mixer:   &beep.Mixer{},
		minGap:  DefaultMinGap,
		last:    make(map[CueKind]time.Time),
		now:     time.Now,
		release: func() {},
	}
	p.enqueue = func(s beep.Streamer) { p.mixer.Add(s) }
	return p
}

// Play starts a cue, returning false when it was rate-limited, unknown or the player is closed
func (p *CuePlayer) Play(kind CueKind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false
	}
	now := p.now()
	if last, ok := p.last[kind]; ok && now.Sub(last) < p.minGap {
		p.dropped++
		return false
	}

	s := Cue(kind, p.rate, p.volume)
	if s == nil {
		return false
	}
	p.last[kind] = now
	p.played++
	p.enqueue(s)
	return true
}

// SetVolume changes the level for subsequent cues
func (p *CuePlayer) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = min(max(v, 0), 1)
	p.mu.Unlock()
}

// Stats returns played and rate-limited cue counts
func (p *CuePlayer) Stats() (played, dropped int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played, p.dropped
}

// Close stops all cues and releases the device; safe to call more than once
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.release()
}
