package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/rdk/field"
	"github.com/lixenwraith/rdk/motion"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rdk.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefault_MatchesClassicSetup(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}

	if cfg.Dots != 300 {
		t.Errorf("Expected 300 dots, got %d", cfg.Dots)
	}
	if len(cfg.Coherences) != 11 || cfg.Coherences[0] != 1 || cfg.Coherences[10] != 100 {
		t.Errorf("Expected levels 1..100, got %v", cfg.Coherences)
	}
	if cfg.Trials() != 110 {
		t.Errorf("Expected 110 trials, got %d", cfg.Trials())
	}
	if cfg.Frames() != 30 {
		t.Errorf("Expected 30 frames per stimulus, got %d", cfg.Frames())
	}
	if cfg.FrameInterval() != time.Second/60 {
		t.Errorf("Expected 60 Hz interval, got %s", cfg.FrameInterval())
	}

	opts, err := cfg.MotionOptions()
	if err != nil {
		t.Fatalf("MotionOptions failed: %v", err)
	}
	if opts.Policy != motion.PolicyRadial || opts.Boundary != field.BoundaryWrap {
		t.Errorf("Expected radial/wrap defaults, got %s/%s", opts.Policy, opts.Boundary)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Dots != Default().Dots {
		t.Errorf("Expected default dot count, got %d", cfg.Dots)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	path := writeConfig(t, `
dots = 120
coherences = [5, 50]
repetitions = 3
stimulus_duration = "1s"
end_hold = "0s"

[field]
shape = "circle"
extent = 80
boundary = "resample"

[motion]
speed = 45
frame_rate = 30
policy = "jitter"
jitter_sigma = 0.25

[display]
dot_glyph = "*"

[keys]
left = ["a"]
right = ["d"]
abort = ["q"]
start = ["enter"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Dots != 120 || cfg.Repetitions != 3 || len(cfg.Coherences) != 2 {
		t.Errorf("Unexpected top-level values: %+v", cfg)
	}
	if cfg.Duration.Duration != time.Second || cfg.EndHold.Duration != 0 {
		t.Errorf("Expected durations 1s/0s, got %s/%s", cfg.Duration, cfg.EndHold)
	}
	if cfg.Frames() != 30 {
		t.Errorf("Expected 30 frames, got %d", cfg.Frames())
	}

	f, b, err := cfg.FieldSpec()
	if err != nil {
		t.Fatalf("FieldSpec failed: %v", err)
	}
	if f.Shape != field.ShapeCircle || f.Extent != 80 || b != field.BoundaryResample {
		t.Errorf("Unexpected field %+v / %s", f, b)
	}

	opts, err := cfg.MotionOptions()
	if err != nil {
		t.Fatalf("MotionOptions failed: %v", err)
	}
	if opts.Policy != motion.PolicyJitter || opts.JitterSigma != 0.25 || opts.Speed != 45 {
		t.Errorf("Unexpected motion options %+v", opts)
	}

	// Untouched sections keep defaults
	if cfg.Display.DotColor != Default().Display.DotColor {
		t.Errorf("Expected default dot color, got %q", cfg.Display.DotColor)
	}
	if cfg.Keys.Left[0] != "a" {
		t.Errorf("Expected custom left key, got %v", cfg.Keys.Left)
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "dots = 10\ndot_count = 5\n")
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_RejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, "dots = \n")
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	path = writeConfig(t, `stimulus_duration = "half a second"`)
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for bad duration, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dots", func(c *Config) { c.Dots = 0 }},
		{"negative dots", func(c *Config) { c.Dots = -10 }},
		{"empty coherences", func(c *Config) { c.Coherences = nil }},
		{"coherence above 100", func(c *Config) { c.Coherences = []float64{50, 120} }},
		{"zero repetitions", func(c *Config) { c.Repetitions = 0 }},
		{"zero duration", func(c *Config) { c.Duration.Duration = 0 }},
		{"negative end hold", func(c *Config) { c.EndHold.Duration = -time.Second }},
		{"zero extent", func(c *Config) { c.Field.Extent = 0 }},
		{"negative extent", func(c *Config) { c.Field.Extent = -1 }},
		{"unknown shape", func(c *Config) { c.Field.Shape = "triangle" }},
		{"unknown boundary", func(c *Config) { c.Field.Boundary = "bounce" }},
		{"unknown policy", func(c *Config) { c.Motion.Policy = "swirl" }},
		{"zero frame rate", func(c *Config) { c.Motion.FrameRate = 0 }},
		{"negative speed", func(c *Config) { c.Motion.Speed = -3 }},
		{"long glyph", func(c *Config) { c.Display.DotGlyph = "ab" }},
		{"zero aspect", func(c *Config) { c.Display.CellAspect = 0 }},
		{"no abort key", func(c *Config) { c.Keys.Abort = nil }},
		{"conflicting keys", func(c *Config) { c.Keys.Right = []string{"left"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestFrames_AtLeastOne(t *testing.T) {
	cfg := Default()
	cfg.Duration.Duration = time.Millisecond
	if cfg.Frames() != 1 {
		t.Errorf("Expected at least one frame, got %d", cfg.Frames())
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{1500 * time.Millisecond}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	var back Duration
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if back != d {
		t.Errorf("Expected %s, got %s", d, back)
	}
}

func TestTOML_LoadsBack(t *testing.T) {
	cfg := Default()
	cfg.Dots = 120
	cfg.Field.Shape = "circle"
	cfg.Duration = Duration{750 * time.Millisecond}

	text, err := cfg.TOML()
	if err != nil {
		t.Fatalf("TOML failed: %v", err)
	}
	got, err := Load(writeConfig(t, text))
	if err != nil {
		t.Fatalf("Expected rendered config to load, got %v", err)
	}
	if got.Dots != 120 || got.Field.Shape != "circle" || got.Duration.Duration != 750*time.Millisecond {
		t.Errorf("Unexpected reloaded config: %+v", got)
	}
}
