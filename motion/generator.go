// Package motion advances a random-dot field one presentation frame at a time.
// A coherence percentage decides how many dots drift in the commanded direction;
// the remainder follow an incoherent policy. Which dots are coherent is re-drawn on
// every frame, so coherence is a property of the stream rather than of particular dots.
package motion

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lixenwraith/rdk/field"
	"github.com/lixenwraith/rdk/vmath"
)

// ErrInvalidOptions is returned by NewGenerator for unusable parameters
var ErrInvalidOptions = errors.New("invalid motion options")

// Policy selects how incoherent dots move
type Policy uint8

const (
	// PolicyJitter adds independent zero-mean Gaussian noise to x and y
	PolicyJitter Policy = iota
	// PolicyRadial moves dot i at a fixed angle 90°-i*360°/n with the coherent step length
	PolicyRadial
)

var policyNames = map[string]Policy{
	"jitter": PolicyJitter,
	"radial": PolicyRadial,
}

func (p Policy) String() string {
	switch p {
	case PolicyJitter:
		return "jitter"
	case PolicyRadial:
		return "radial"
	}
	return fmt.Sprintf("policy(%d)", p)
}

// ParsePolicy resolves a case-insensitive policy name
func ParsePolicy(name string) (Policy, error) {
	p, ok := policyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown incoherent policy %q", ErrInvalidOptions, name)
	}
	return p, nil
}

// Options configures a Generator; fixed for the generator's life
type Options struct {
	Dots      int
	Speed     float64 // field units per second
	FrameRate float64 // frames per second
	Policy    Policy
	Boundary  field.Boundary

	// JitterSigma is the per-axis standard deviation for PolicyJitter
	// Zero selects the coherent step length
	JitterSigma float64
}

// Validate checks Options independently of any field
func (o Options) Validate() error {
	switch {
	case o.Dots <= 0:
		return fmt.Errorf("%w: dot count must be positive, got %d", ErrInvalidOptions, o.Dots)
	case !(o.FrameRate > 0) || math.IsInf(o.FrameRate, 0):
		return fmt.Errorf("%w: frame rate must be positive, got %v", ErrInvalidOptions, o.FrameRate)
	case !(o.Speed >= 0) || math.IsInf(o.Speed, 0):
		return fmt.Errorf("%w: speed must be non-negative, got %v", ErrInvalidOptions, o.Speed)
	case !(o.JitterSigma >= 0) || math.IsInf(o.JitterSigma, 0):
		return fmt.Errorf("%w: jitter sigma must be non-negative, got %v", ErrInvalidOptions, o.JitterSigma)
	case o.Policy != PolicyJitter && o.Policy != PolicyRadial:
		return fmt.Errorf("%w: %s", ErrInvalidOptions, o.Policy)
	case o.Boundary != field.BoundaryWrap && o.Boundary != field.BoundaryResample:
		return fmt.Errorf("%w: %s", ErrInvalidOptions, o.Boundary)
	}
	return nil
}

// Generator owns the dot positions of one field
type Generator struct {
	field field.Field
	opts  Options
	rng   *rand.Rand
	step  float64

	dots     []vmath.Vec2F
	coherent []bool
	radial   []vmath.Vec2F
	jitter   distuv.Normal

	// Index pool reused by every partition draw
	perm []int
}

// NewGenerator populates opts.Dots positions uniformly inside f
func NewGenerator(f field.Field, opts Options, rng *rand.Rand) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if _, err := field.New(f.Shape, f.Extent); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidOptions)
	}

	step := opts.Speed / opts.FrameRate
	sigma := opts.JitterSigma
	if sigma == 0 {
		sigma = step
	}

	g := &Generator{
		field:    f,
		opts:     opts,
		rng:      rng,
		step:     step,
		dots:     f.Populate(opts.Dots, rng),
		coherent: make([]bool, opts.Dots),
		perm:     make([]int, opts.Dots),
		jitter:   distuv.Normal{Mu: 0, Sigma: sigma, Src: rng},
	}

	if opts.Policy == PolicyRadial {
		g.radial = make([]vmath.Vec2F, opts.Dots)
		for i := range g.radial {
			g.radial[i] = vmath.V2FFromDegrees(90 - float64(i)*360/float64(opts.Dots))
		}
	}

	return g, nil
}

// Dots returns the current positions; the slice is owned by the generator
func (g *Generator) Dots() []vmath.Vec2F { return g.dots }

// Coherent returns the partition drawn by the last Advance; owned by the generator
func (g *Generator) Coherent() []bool { return g.coherent }

// Field returns the field the dots are confined to
func (g *Generator) Field() field.Field { return g.field }

// Options returns the generator configuration
func (g *Generator) Options() Options { return g.opts }

// Step returns the per-frame displacement of a coherent dot
func (g *Generator) Step() float64 { return g.step }

// Advance moves every dot by one frame and returns the updated positions.
// direction is normalized; a zero vector leaves coherent dots in place.
// coherence is a percentage, values outside [0, 100] saturate.
func (g *Generator) Advance(direction vmath.Vec2F, coherence float64) []vmath.Vec2F {
	n := len(g.dots)
	k := CoherentCount(n, coherence)

	clear(g.coherent)
	for _, idx := range sampleInto(g.perm, k, g.rng) {
		g.coherent[idx] = true
	}

	drift := vmath.V2FScale(vmath.V2FNormalize(direction), g.step)

	for i := range g.dots {
		var d vmath.Vec2F
		switch {
		case g.coherent[i]:
			d = drift
		case g.opts.Policy == PolicyRadial:
			d = vmath.V2FScale(g.radial[i], g.step)
		default:
			d = vmath.Vec2F{X: g.jitter.Rand(), Y: g.jitter.Rand()}
		}
		g.dots[i] = g.field.Confine(vmath.V2FAdd(g.dots[i], d), g.opts.Boundary, g.rng)
	}

	return g.dots
}
