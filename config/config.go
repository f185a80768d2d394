// Package config holds the experiment's run-time constants.
// Values start from the classic laboratory defaults and may be overridden by a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/rdk/constant"
	"github.com/lixenwraith/rdk/field"
	"github.com/lixenwraith/rdk/input"
	"github.com/lixenwraith/rdk/motion"
)

// ErrInvalidConfig wraps every validation failure; the run must not start
var ErrInvalidConfig = errors.New("invalid configuration")

// Duration decodes TOML strings such as "500ms" or "1.5s"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// FieldConfig describes the aperture dots are confined to
type FieldConfig struct {
	Shape    string  `toml:"shape"`    // square | circle
	Extent   float64 `toml:"extent"`   // half-width or radius, field units
	Boundary string  `toml:"boundary"` // wrap | resample
}

// MotionConfig describes dot movement
type MotionConfig struct {
	Speed     float64 `toml:"speed"`      // field units per second
	FrameRate float64 `toml:"frame_rate"` // frames per second
	Policy    string  `toml:"policy"`     // jitter | radial

	// JitterSigma is the per-axis standard deviation of jitter steps; 0 uses the coherent step
	JitterSigma float64 `toml:"jitter_sigma"`
}

// DisplayConfig describes terminal appearance
type DisplayConfig struct {
	DotGlyph      string  `toml:"dot_glyph"`
	DotColor      string  `toml:"dot_color"`
	FixationColor string  `toml:"fixation_color"`
	TextColor     string  `toml:"text_color"`
	Background    string  `toml:"background"`
	CellAspect    float64 `toml:"cell_aspect"`
}

// Config is the full run configuration
type Config struct {
	Dots        int       `toml:"dots"`
	Coherences  []float64 `toml:"coherences"`
	Repetitions int       `toml:"repetitions"`
	Duration    Duration  `toml:"stimulus_duration"`
	EndHold     Duration  `toml:"end_hold"`

	Field   FieldConfig    `toml:"field"`
	Motion  MotionConfig   `toml:"motion"`
	Display DisplayConfig  `toml:"display"`
	Keys    input.Bindings `toml:"keys"`
}

// Default returns the classic setup: 300 dots, 11 levels × 10 trials, 0.5 s stimuli at 60 Hz
func Default() Config {
	return Config{
		Dots:        constant.DefaultDots,
		Coherences:  constant.DefaultCoherences(),
		Repetitions: constant.DefaultRepetitions,
		Duration:    Duration{constant.DefaultStimulusDuration},
		EndHold:     Duration{constant.EndScreenHold},
		Field: FieldConfig{
			Shape:    constant.DefaultFieldShape,
			Extent:   constant.DefaultFieldExtent,
			Boundary: constant.DefaultBoundary,
		},
		Motion: MotionConfig{
			Speed:     constant.DefaultDotSpeed,
			FrameRate: constant.DefaultFrameRate,
			Policy:    constant.DefaultIncoherentPolicy,
		},
		Display: DisplayConfig{
			DotGlyph:      string(constant.DotGlyph),
			DotColor:      constant.DotColor,
			FixationColor: constant.FixationColor,
			TextColor:     constant.TextColor,
			Background:    constant.BackgroundColor,
			CellAspect:    constant.CellAspect,
		},
		Keys: input.DefaultBindings(),
	}
}

// Load reads path over the defaults; an empty path returns the validated defaults.
// Unknown keys in the file are rejected so typos do not silently fall back.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that would fail or be meaningless mid-run
func (c Config) Validate() error {
	if c.Dots <= 0 {
		return fmt.Errorf("%w: dots must be positive, got %d", ErrInvalidConfig, c.Dots)
	}
	if len(c.Coherences) == 0 {
		return fmt.Errorf("%w: coherence set is empty", ErrInvalidConfig)
	}
	for _, v := range c.Coherences {
		if math.IsNaN(v) || v < 0 || v > 100 {
			return fmt.Errorf("%w: coherence %v outside [0, 100]", ErrInvalidConfig, v)
		}
	}
	if c.Repetitions <= 0 {
		return fmt.Errorf("%w: repetitions must be positive, got %d", ErrInvalidConfig, c.Repetitions)
	}
	if c.Duration.Duration <= 0 {
		return fmt.Errorf("%w: stimulus duration must be positive, got %s", ErrInvalidConfig, c.Duration.Duration)
	}
	if c.EndHold.Duration < 0 {
		return fmt.Errorf("%w: end hold must not be negative, got %s", ErrInvalidConfig, c.EndHold.Duration)
	}
	if len([]rune(c.Display.DotGlyph)) != 1 {
		return fmt.Errorf("%w: dot glyph must be one character, got %q", ErrInvalidConfig, c.Display.DotGlyph)
	}
	if !(c.Display.CellAspect > 0) {
		return fmt.Errorf("%w: cell aspect must be positive, got %v", ErrInvalidConfig, c.Display.CellAspect)
	}
	if _, _, err := c.FieldSpec(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.MotionOptions(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := input.NewKeyMap(c.Keys); err != nil {
		return fmt.Errorf("%w: keys: %v", ErrInvalidConfig, err)
	}
	return nil
}

// FieldSpec resolves the field and its boundary policy
func (c Config) FieldSpec() (field.Field, field.Boundary, error) {
	shape, err := field.ParseShape(c.Field.Shape)
	if err != nil {
		return field.Field{}, 0, err
	}
	f, err := field.New(shape, c.Field.Extent)
	if err != nil {
		return field.Field{}, 0, err
	}
	b, err := field.ParseBoundary(c.Field.Boundary)
	if err != nil {
		return field.Field{}, 0, err
	}
	return f, b, nil
}

// MotionOptions resolves generator options
func (c Config) MotionOptions() (motion.Options, error) {
	policy, err := motion.ParsePolicy(c.Motion.Policy)
	if err != nil {
		return motion.Options{}, err
	}
	b, err := field.ParseBoundary(c.Field.Boundary)
	if err != nil {
		return motion.Options{}, err
	}
	opts := motion.Options{
		Dots:        c.Dots,
		Speed:       c.Motion.Speed,
		FrameRate:   c.Motion.FrameRate,
		Policy:      policy,
		Boundary:    b,
		JitterSigma: c.Motion.JitterSigma,
	}
	if err := opts.Validate(); err != nil {
		return motion.Options{}, err
	}
	return opts, nil
}

// Frames returns the number of frames in one stimulus presentation, at least one
func (c Config) Frames() int {
	n := int(math.Round(c.Duration.Seconds() * c.Motion.FrameRate))
	if n < 1 {
		n = 1
	}
	return n
}

// FrameInterval is the nominal time between frames
func (c Config) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.Motion.FrameRate)
}

// Trials is the total number of scheduled trials
func (c Config) Trials() int {
	return len(c.Coherences) * c.Repetitions
}

// TOML renders the configuration in the same format Load reads
func (c Config) TOML() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return buf.String(), nil
}
