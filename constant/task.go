package constant

import "time"

// Task defaults, matching the classic laboratory setup
const (
	DefaultDots        = 300
	DefaultRepetitions = 10

	// DefaultDotSpeed is in field units (pixels) per second
	DefaultDotSpeed = 30.0

	DefaultFrameRate        = 60.0
	DefaultStimulusDuration = 500 * time.Millisecond

	DefaultFieldShape  = "square"
	DefaultFieldExtent = 150.0
	DefaultBoundary    = "wrap"

	DefaultIncoherentPolicy = "radial"
)

// DefaultCoherences returns the coherence levels in presentation order
func DefaultCoherences() []float64 {
	return []float64{1, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
}
