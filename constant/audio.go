package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	AudioMasterVolume = 0.5
)

// Correct Sound: rising two-note chime
const (
	CorrectSoundNote1Freq    = 880.0  // A5
	CorrectSoundNote2Freq    = 1318.5 // E6
	CorrectSoundNoteDuration = 70 * time.Millisecond
	CorrectSoundAttack       = 5 * time.Millisecond
	CorrectSoundRelease      = 40 * time.Millisecond
	CorrectSoundEffectVolume = 0.8
)

// Incorrect Sound: short low buzz
const (
	IncorrectSoundFreq         = 120.0
	IncorrectSoundDuration     = 150 * time.Millisecond
	IncorrectSoundAttack       = 5 * time.Millisecond
	IncorrectSoundRelease      = 40 * time.Millisecond
	IncorrectSoundEffectVolume = 0.6
)
