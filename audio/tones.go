package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/rdk/constant"
)

// Wave is the timbre of a note
type Wave uint8

const (
	// Sine is a pure tone, used for the chime
	Sine Wave = iota
	// Saw is harsh, used for the buzz
	Saw
)

// Note is a single tone with a linear fade in over Attack and a linear fade out over Release
type Note struct {
	Freq    float64
	Wave    Wave
	Length  time.Duration
	Attack  time.Duration
	Release time.Duration
}

var (
	chime = []Note{
		{Freq: constant.CorrectSoundNote1Freq, Wave: Sine, Length: constant.CorrectSoundNoteDuration,
			Attack: constant.CorrectSoundAttack, Release: constant.CorrectSoundRelease},
		{Freq: constant.CorrectSoundNote2Freq, Wave: Sine, Length: constant.CorrectSoundNoteDuration,
			Attack: constant.CorrectSoundAttack, Release: constant.CorrectSoundRelease},
	}
	buzz = Note{Freq: constant.IncorrectSoundFreq, Wave: Saw, Length: constant.IncorrectSoundDuration,
		Attack: constant.IncorrectSoundAttack, Release: constant.IncorrectSoundRelease}
)

// Streamer renders the note at rate. Ramps longer than the note are shortened to fit.
func (n Note) Streamer(rate beep.SampleRate) beep.Streamer {
	total := rate.N(n.Length)
	attack := min(rate.N(n.Attack), total)
	release := min(rate.N(n.Release), total-attack)
	return &noteStreamer{
		wave:    n.Wave,
		step:    n.Freq / float64(rate),
		total:   total,
		attack:  attack,
		release: release,
	}
}

type noteStreamer struct {
	wave  Wave
	step  float64
	phase float64

	pos     int
	total   int
	attack  int
	release int
}

func (s *noteStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.total {
		return 0, false
	}
	n := min(len(samples), s.total-s.pos)
	for i := 0; i < n; i++ {
		v := s.sample() * s.level()
		samples[i] = [2]float64{v, v}
		s.phase += s.step
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return n, true
}

func (s *noteStreamer) Err() error { return nil }

func (s *noteStreamer) sample() float64 {
	if s.wave == Saw {
		return 2*s.phase - 1
	}
	return math.Sin(2 * math.Pi * s.phase)
}

// level is the envelope gain at the current position
func (s *noteStreamer) level() float64 {
	switch {
	case s.pos < s.attack:
		return float64(s.pos) / float64(s.attack)
	case s.release > 0 && s.pos >= s.total-s.release:
		return float64(s.total-s.pos) / float64(s.release)
	}
	return 1
}

// scaled multiplies s by level; zero is silent
func scaled(s beep.Streamer, level float64) beep.Streamer {
	return &effects.Gain{Streamer: s, Gain: max(level, 0) - 1}
}

// CreateCorrectSound is the rising two-note chime
func CreateCorrectSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	notes := make([]beep.Streamer, len(chime))
	for i, n := range chime {
		notes[i] = n.Streamer(rate)
	}
	return scaled(beep.Seq(notes...), constant.CorrectSoundEffectVolume*cfg.MasterVolume)
}

// CreateIncorrectSound is the short low buzz
func CreateIncorrectSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	return scaled(buzz.Streamer(rate), constant.IncorrectSoundEffectVolume*cfg.MasterVolume)
}
