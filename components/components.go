// Package components defines the plain data records the simulation operates on.
package components

import "math"

// Kind identifies a class of game object.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindBullet
	KindSeeker
	KindWanderer
	KindBlackHole
)

// NumKinds is the number of object kinds.
const NumKinds = 5

var kindNames = [NumKinds]string{"player", "bullet", "seeker", "wanderer", "black_hole"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// BlendMode selects how a draw command is composited.
type BlendMode uint8

const (
	BlendAlpha BlendMode = iota
	BlendAdditive
)

// Color is a straight (non-premultiplied) RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float64
}

// White is the default tint.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// WithAlpha returns c with A replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA8 converts to 8-bit channels, clamping out-of-range values.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
