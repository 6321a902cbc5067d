package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// CueKind identifies a feedback sound
type CueKind int

const (
	CueKey    CueKind = iota // short tick on key press
	CueClick                 // mouse click
	CueError                 // rejected input buzz
	CueSelect                // two-note chime for menu selection
	CueBell                  // ding with overtone
)

var cueNames = [...]string{
	CueKey:    "key",
	CueClick:  "click",
	CueError:  "error",
	CueSelect: "select",
	CueBell:   "bell",
}

func (k CueKind) String() string {
	if k >= 0 && int(k) < len(cueNames) {
		return cueNames[k]
	}
	return "unknown"
}

// Cue timing
const (
	keyDuration = 12 * time.Millisecond
	keyAttack   = 1 * time.Millisecond
	keyRelease  = 8 * time.Millisecond

	clickDuration = 30 * time.Millisecond
	clickAttack   = 2 * time.Millisecond
	clickRelease  = 20 * time.Millisecond

	errorDuration = 120 * time.Millisecond
	errorAttack   = 5 * time.Millisecond
	errorRelease  = 60 * time.Millisecond

	selectNote1Duration = 70 * time.Millisecond
	selectNote2Duration = 140 * time.Millisecond
	selectAttack        = 3 * time.Millisecond
	selectNote1Release  = 30 * time.Millisecond
	selectNote2Release  = 110 * time.Millisecond

	bellDuration           = 400 * time.Millisecond
	bellAttack             = 5 * time.Millisecond
	bellFundamentalRelease = 390 * time.Millisecond
	bellOvertoneRelease    = 200 * time.Millisecond
)

// Cue builds the streamer for kind at the given linear volume, nil for unknown kinds
func Cue(kind CueKind, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch kind {
	case CueKey:
		s = tone(1200, keyDuration, keyAttack, keyRelease, WaveSquare, rate)
		s = newVolume(s, 0.3)
	case CueClick:
		s = tone(660, clickDuration, clickAttack, clickRelease, WaveSine, rate)
	case CueError:
		s = tone(100, errorDuration, errorAttack, errorRelease, WaveSaw, rate)
		s = newVolume(s, 0.8)
	case CueSelect:
		// B5 then E6
		s = beep.Seq(
			tone(987.77, selectNote1Duration, selectAttack, selectNote1Release, WaveSquare, rate),
			tone(1318.51, selectNote2Duration, selectAttack, selectNote2Release, WaveSquare, rate),
		)
		s = newVolume(s, 0.5)
	case CueBell:
		// A5 with octave overtone; Take bounds the mix to the cue length
		s = beep.Take(rate.N(bellDuration), beep.Mix(
			newVolume(tone(880, bellDuration, bellAttack, bellFundamentalRelease, WaveSine, rate), 0.7),
			newVolume(tone(1760, bellDuration, bellAttack, bellOvertoneRelease, WaveSine, rate), 0.3),
		))
	default:
		return nil
	}
	return newVolume(s, volume)
}

// CueLength returns the nominal duration of a cue
func CueLength(kind CueKind) time.Duration {
	switch kind {
	case CueKey:
		return keyDuration
	case CueClick:
		return clickDuration
	case CueError:
		return errorDuration
	case CueSelect:
		return selectNote1Duration + selectNote2Duration
	case CueBell:
		return bellDuration
	}
	return 0
}
