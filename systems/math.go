// Package systems contains the per-tick rules of the simulation.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Bounds is the play-field, centred on the origin.
type Bounds struct {
	Width, Height float64
}

// Min returns the lower-left corner.
func (b Bounds) Min() r2.Vec {
	return r2.Vec{X: -b.Width / 2, Y: -b.Height / 2}
}

// Max returns the upper-right corner.
func (b Bounds) Max() r2.Vec {
	return r2.Vec{X: b.Width / 2, Y: b.Height / 2}
}

// Center returns the field centre.
func (b Bounds) Center() r2.Vec {
	return r2.Vec{}
}

// Contains reports whether p lies inside the field shrunk by margin on every side.
// A negative margin grows the field.
func (b Bounds) Contains(p r2.Vec, margin float64) bool {
	hw, hh := b.Width/2-margin, b.Height/2-margin
	return p.X >= -hw && p.X <= hw && p.Y >= -hh && p.Y <= hh
}

// SafeNormalize returns v scaled to unit length, or the zero vector if v has no length.
func SafeNormalize(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec interpolates between a and b by t.
func LerpVec(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Clamp clamps x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// FromPolar returns a vector of the given length at angle (radians).
func FromPolar(angle, length float64) r2.Vec {
	return r2.Vec{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Angle returns the heading of v in radians.
func Angle(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// ClampLength limits v to at most max length.
func ClampLength(v r2.Vec, max float64) r2.Vec {
	n := r2.Norm(v)
	if n > max && n > 0 {
		return r2.Scale(max/n, v)
	}
	return v
}
