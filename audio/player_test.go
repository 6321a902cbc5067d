package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// newTestPlayer returns a device-less player with a controllable clock
func newTestPlayer(now *time.Time) (*CuePlayer, *[]beep.Streamer) {
	p := newCuePlayer(testRate, 1.0)
	var queued []beep.Streamer
	p.enqueue = func(s beep.Streamer) { queued = append(queued, s) }
	p.now = func() time.Time { return *now }
	return p, &queued
}

// TestCuePlayerRateLimit verifies identical cues inside the gap are dropped
func TestCuePlayerRateLimit(t *testing.T) {
	now := time.Unix(0, 0)
	p, queued := newTestPlayer(&now)

	if !p.Play(CueKey) {
		t.Fatal("Expected first cue to play")
	}
	now = now.Add(DefaultMinGap / 2)
	if p.Play(CueKey) {
		t.Error("Expected repeated cue inside gap to be dropped")
	}
	if !p.Play(CueClick) {
		t.Error("Expected different cue to play inside gap")
	}
	now = now.Add(DefaultMinGap)
	if !p.Play(CueKey) {
		t.Error("Expected cue to play after gap")
	}

	if len(*queued) != 3 {
		t.Errorf("Expected 3 queued cues, got %d", len(*queued))
	}
	if played, dropped := p.Stats(); played != 3 || dropped != 1 {
		t.Errorf("Expected 3 played 1 dropped, got %d/%d", played, dropped)
	}
}

// TestCuePlayerClose verifies Close is idempotent and silences later cues
func TestCuePlayerClose(t *testing.T) {
	now := time.Unix(0, 0)
	p, queued := newTestPlayer(&now)
	releases := 0
	p.release = func() { releases++ }

	p.Close()
	p.Close()
	if releases != 1 {
		t.Errorf("Expected one release, got %d", releases)
	}
	if p.Play(CueBell) {
		t.Error("Expected Play after Close to fail")
	}
	if len(*queued) != 0 {
		t.Errorf("Expected nothing queued, got %d", len(*queued))
	}
}

// TestCuePlayerMixer verifies the default enqueue feeds the mixer
func TestCuePlayerMixer(t *testing.T) {
	p := newCuePlayer(testRate, 2.0)
	if p.volume != 1.0 {
		t.Errorf("Expected volume clamped to 1.0, got %f", p.volume)
	}
	p.Play(CueClick)
	if p.mixer.Len() != 1 {
		t.Fatalf("Expected 1 streamer in mixer, got %d", p.mixer.Len())
	}

	buf := make([][2]float64, testRate.N(CueLength(CueClick))+64)
	p.mixer.Stream(buf)
	if p.mixer.Len() != 0 {
		t.Errorf("Expected drained cue removed from mixer, got %d", p.mixer.Len())
	}
}
