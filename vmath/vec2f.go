package vmath

import "math"

// Vec2F is a float64 2D vector for continuous field coordinates
type Vec2F struct {
	X, Y float64
}

func V2FAdd(a, b Vec2F) Vec2F {
	return Vec2F{a.X + b.X, a.Y + b.Y}
}

func V2FSub(a, b Vec2F) Vec2F {
	return Vec2F{a.X - b.X, a.Y - b.Y}
}

func V2FScale(v Vec2F, s float64) Vec2F {
	return Vec2F{v.X * s, v.Y * s}
}

func V2FMagSq(v Vec2F) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2FMag(v Vec2F) float64 {
	return math.Sqrt(V2FMagSq(v))
}

func V2FNormalize(v Vec2F) Vec2F {
	mag := V2FMag(v)
	if mag == 0 {
		return Vec2F{}
	}
	inv := 1.0 / mag
	return Vec2F{v.X * inv, v.Y * inv}
}

// V2FFromDegrees returns the unit vector at angle deg, counter-clockwise from +X
func V2FFromDegrees(deg float64) Vec2F {
	rad := deg * math.Pi / 180
	return Vec2F{math.Cos(rad), math.Sin(rad)}
}

// WrapRange folds v into [min, max) by modular arithmetic
// Returns min when the range is empty
func WrapRange(v, min, max float64) float64 {
	span := max - min
	if span <= 0 {
		return min
	}
	r := math.Mod(v-min, span)
	if r < 0 {
		r += span
	}
	// Mod of a tiny negative can round up to span
	if r >= span {
		r = 0
	}
	return min + r
}
