// Package field defines the 2-D region dots live in and the rules that keep them there.
// Coordinates are field-local: origin at the centre, y grows upward.
package field

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/lixenwraith/rdk/vmath"
)

// ErrInvalidField is returned for non-positive extents and unknown shapes
var ErrInvalidField = errors.New("invalid field")

// Shape selects the containment test
type Shape uint8

const (
	ShapeSquare Shape = iota
	ShapeCircle
)

var shapeNames = map[string]Shape{
	"square": ShapeSquare,
	"circle": ShapeCircle,
}

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeCircle:
		return "circle"
	}
	return fmt.Sprintf("shape(%d)", s)
}

// ParseShape resolves a case-insensitive shape name
func ParseShape(name string) (Shape, error) {
	s, ok := shapeNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown shape %q", ErrInvalidField, name)
	}
	return s, nil
}

// Boundary selects what happens to a dot that leaves the field
type Boundary uint8

const (
	// BoundaryWrap moves an escaped dot to the opposite edge
	BoundaryWrap Boundary = iota
	// BoundaryResample re-seeds an escaped dot at a uniform random position
	BoundaryResample
)

var boundaryNames = map[string]Boundary{
	"wrap":     BoundaryWrap,
	"resample": BoundaryResample,
}

func (b Boundary) String() string {
	switch b {
	case BoundaryWrap:
		return "wrap"
	case BoundaryResample:
		return "resample"
	}
	return fmt.Sprintf("boundary(%d)", b)
}

// ParseBoundary resolves a case-insensitive boundary policy name
func ParseBoundary(name string) (Boundary, error) {
	b, ok := boundaryNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown boundary policy %q", ErrInvalidField, name)
	}
	return b, nil
}

// Field is a square (Extent = half-width) or circle (Extent = radius) centred on the origin
type Field struct {
	Shape  Shape
	Extent float64
}

// New validates shape and extent
func New(shape Shape, extent float64) (Field, error) {
	if shape != ShapeSquare && shape != ShapeCircle {
		return Field{}, fmt.Errorf("%w: %s", ErrInvalidField, shape)
	}
	if !(extent > 0) || math.IsInf(extent, 0) {
		return Field{}, fmt.Errorf("%w: extent must be positive, got %v", ErrInvalidField, extent)
	}
	return Field{Shape: shape, Extent: extent}, nil
}

// Contains reports whether p lies inside the field, edges included
func (f Field) Contains(p vmath.Vec2F) bool {
	if f.Shape == ShapeCircle {
		return vmath.V2FMagSq(p) <= f.Extent*f.Extent
	}
	return math.Abs(p.X) <= f.Extent && math.Abs(p.Y) <= f.Extent
}

// Sample draws a position uniformly from the field's area
func (f Field) Sample(rng *rand.Rand) vmath.Vec2F {
	if f.Shape == ShapeCircle {
		// sqrt keeps density uniform over area rather than radius
		r := f.Extent * math.Sqrt(rng.Float64())
		theta := 2 * math.Pi * rng.Float64()
		return vmath.Vec2F{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}
	return vmath.Vec2F{
		X: (rng.Float64()*2 - 1) * f.Extent,
		Y: (rng.Float64()*2 - 1) * f.Extent,
	}
}

// Populate fills n uniform samples
func (f Field) Populate(n int, rng *rand.Rand) []vmath.Vec2F {
	dots := make([]vmath.Vec2F, n)
	for i := range dots {
		dots[i] = f.Sample(rng)
	}
	return dots
}

// Confine returns p unchanged when inside, otherwise brings it back per policy
func (f Field) Confine(p vmath.Vec2F, b Boundary, rng *rand.Rand) vmath.Vec2F {
	if f.Contains(p) {
		return p
	}
	if b == BoundaryResample {
		return f.Sample(rng)
	}

	var q vmath.Vec2F
	if f.Shape == ShapeCircle {
		// Reflect through the centre: a dot leaving at angle θ re-enters at θ+π
		// Distance inside equals distance overshot
		mag := vmath.V2FMag(p)
		if mag > 3*f.Extent {
			return f.Sample(rng)
		}
		q = vmath.V2FSub(p, vmath.V2FScale(p, 2*f.Extent/mag))
	} else {
		q = vmath.Vec2F{
			X: vmath.WrapRange(p.X, -f.Extent, f.Extent),
			Y: vmath.WrapRange(p.Y, -f.Extent, f.Extent),
		}
	}

	if !f.Contains(q) {
		return f.Sample(rng)
	}
	return q
}
