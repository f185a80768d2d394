package field

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/rdk/vmath"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		shape   Shape
		extent  float64
		wantErr bool
	}{
		{"square", ShapeSquare, 150, false},
		{"circle", ShapeCircle, 1, false},
		{"zero extent", ShapeSquare, 0, true},
		{"negative extent", ShapeCircle, -5, true},
		{"nan extent", ShapeSquare, math.NaN(), true},
		{"unknown shape", Shape(9), 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.shape, tt.extent)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidField) {
					t.Errorf("Expected ErrInvalidField, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestParseShapeAndBoundary(t *testing.T) {
	if s, err := ParseShape(" Circle "); err != nil || s != ShapeCircle {
		t.Errorf("Expected circle, got %v (%v)", s, err)
	}
	if _, err := ParseShape("hexagon"); !errors.Is(err, ErrInvalidField) {
		t.Errorf("Expected ErrInvalidField for unknown shape, got %v", err)
	}
	if b, err := ParseBoundary("RESAMPLE"); err != nil || b != BoundaryResample {
		t.Errorf("Expected resample, got %v (%v)", b, err)
	}
	if _, err := ParseBoundary("bounce"); !errors.Is(err, ErrInvalidField) {
		t.Errorf("Expected ErrInvalidField for unknown boundary, got %v", err)
	}
}

func TestContains(t *testing.T) {
	square := Field{Shape: ShapeSquare, Extent: 10}
	circle := Field{Shape: ShapeCircle, Extent: 10}

	tests := []struct {
		p        vmath.Vec2F
		inSquare bool
		inCircle bool
	}{
		{vmath.Vec2F{X: 0, Y: 0}, true, true},
		{vmath.Vec2F{X: 10, Y: -10}, true, false},
		{vmath.Vec2F{X: 10, Y: 0}, true, true},
		{vmath.Vec2F{X: 6, Y: 8}, true, true},
		{vmath.Vec2F{X: 10.01, Y: 0}, false, false},
		{vmath.Vec2F{X: 8, Y: 8}, true, false},
	}

	for _, tt := range tests {
		if got := square.Contains(tt.p); got != tt.inSquare {
			t.Errorf("square.Contains(%+v): expected %v, got %v", tt.p, tt.inSquare, got)
		}
		if got := circle.Contains(tt.p); got != tt.inCircle {
			t.Errorf("circle.Contains(%+v): expected %v, got %v", tt.p, tt.inCircle, got)
		}
	}
}

func TestPopulate_InBounds(t *testing.T) {
	rng := newTestRand()
	for _, f := range []Field{{ShapeSquare, 150}, {ShapeCircle, 150}} {
		dots := f.Populate(1000, rng)
		if len(dots) != 1000 {
			t.Fatalf("Expected 1000 dots, got %d", len(dots))
		}
		for i, p := range dots {
			if !f.Contains(p) {
				t.Errorf("%s: dot %d at %+v outside field", f.Shape, i, p)
			}
		}
	}
}

func TestPopulate_CircleUsesArea(t *testing.T) {
	// Uniform over area puts ~75% of samples outside half the radius
	f := Field{Shape: ShapeCircle, Extent: 1}
	dots := f.Populate(4000, newTestRand())

	outer := 0
	for _, p := range dots {
		if vmath.V2FMag(p) > 0.5 {
			outer++
		}
	}
	frac := float64(outer) / float64(len(dots))
	if frac < 0.70 || frac > 0.80 {
		t.Errorf("Expected ~0.75 of samples beyond r/2, got %f", frac)
	}
}

func TestConfine_SquareWrap(t *testing.T) {
	f := Field{Shape: ShapeSquare, Extent: 10}
	rng := newTestRand()

	got := f.Confine(vmath.Vec2F{X: -10.5, Y: 3}, BoundaryWrap, rng)
	if math.Abs(got.X-9.5) > 1e-9 || got.Y != 3 {
		t.Errorf("Expected (9.5, 3), got %+v", got)
	}

	got = f.Confine(vmath.Vec2F{X: 2, Y: 12}, BoundaryWrap, rng)
	if got.X != 2 || math.Abs(got.Y-(-8)) > 1e-9 {
		t.Errorf("Expected (2, -8), got %+v", got)
	}

	inside := vmath.Vec2F{X: 1, Y: 1}
	if got := f.Confine(inside, BoundaryWrap, rng); got != inside {
		t.Errorf("Expected in-bounds point unchanged, got %+v", got)
	}
}

func TestConfine_CircleWrap(t *testing.T) {
	f := Field{Shape: ShapeCircle, Extent: 10}
	rng := newTestRand()

	got := f.Confine(vmath.Vec2F{X: 11, Y: 0}, BoundaryWrap, rng)
	if math.Abs(got.X-(-9)) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Errorf("Expected (-9, 0), got %+v", got)
	}

	// Far outside falls back to resampling but stays inside
	got = f.Confine(vmath.Vec2F{X: 100, Y: 100}, BoundaryWrap, rng)
	if !f.Contains(got) {
		t.Errorf("Expected far point confined, got %+v", got)
	}
}

func TestConfine_Resample(t *testing.T) {
	rng := newTestRand()
	for _, f := range []Field{{ShapeSquare, 5}, {ShapeCircle, 5}} {
		for i := 0; i < 200; i++ {
			p := vmath.Vec2F{X: 5 + float64(i), Y: -5 - float64(i)}
			if got := f.Confine(p, BoundaryResample, rng); !f.Contains(got) {
				t.Errorf("%s: resampled point %+v outside field", f.Shape, got)
			}
		}
	}
}
