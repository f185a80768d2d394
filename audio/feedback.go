// Package audio plays short feedback tones after each scored response.
package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/rdk/constant"
)

// Feedback manages the speaker and the correct/incorrect tones
// Every method is a no-op until Initialize succeeds, so a run without sound hardware still works
type Feedback struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool
}

// NewFeedback creates an uninitialized feedback player
func NewFeedback(cfg *Config) *Feedback {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Feedback{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker; disabled configs skip it and return nil
func (f *Feedback) Initialize() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized || !f.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(f.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(constant.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(f.mixer)
	f.initialized = true
	return nil
}

// Cleanup silences pending tones and closes the speaker
func (f *Feedback) Cleanup() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}

	speaker.Lock()
	f.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	f.initialized = false
}

// Correct plays the rising chime
func (f *Feedback) Correct() {
	f.play(CreateCorrectSound)
}

// Incorrect plays the low buzz
func (f *Feedback) Incorrect() {
	f.play(CreateIncorrectSound)
}

func (f *Feedback) play(create func(*Config) beep.Streamer) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}

	// Mixer is read by the speaker goroutine
	speaker.Lock()
	f.mixer.Add(create(f.cfg))
	speaker.Unlock()
}
