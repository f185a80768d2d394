package audio

import (
	"os"
	"strconv"

	"github.com/lixenwraith/rdk/constant"
)

// Config controls feedback tones
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
}

// DefaultConfig returns audio settings with feedback enabled
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: constant.AudioMasterVolume,
		SampleRate:   constant.AudioSampleRate,
	}
}

// LoadConfig applies RDK_AUDIO_ENABLED, RDK_MASTER_VOLUME (0-100) and RDK_SAMPLE_RATE over the defaults
// Malformed values are ignored
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("RDK_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	if volume := os.Getenv("RDK_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = float64(val) / 100.0
			if cfg.MasterVolume < 0 {
				cfg.MasterVolume = 0
			}
			if cfg.MasterVolume > 1 {
				cfg.MasterVolume = 1
			}
		}
	}

	if sampleRate := os.Getenv("RDK_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
