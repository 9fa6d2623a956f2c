package systems

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/gravwell/components"
)

// HSV converts hue (degrees), saturation and value to an opaque color.
func HSV(hue, sat, val float64) components.Color {
	c := colorful.Hsv(hue, sat, val)
	return components.Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// HuePair picks two random hues and returns a function that interpolates
// between their colors. Explosion bursts draw each particle's tint from it.
func HuePair(rng Rand, sat, val float64) func(t float64) components.Color {
	h1 := rng.Float64() * 360
	h2 := h1 + RandRange(rng, 0, 120)
	c1 := colorful.Hsv(h1, sat, val)
	c2 := colorful.Hsv(math.Mod(h2, 360), sat, val)
	return func(t float64) components.Color {
		c := c1.BlendRgb(c2, t).Clamped()
		return components.Color{R: c.R, G: c.G, B: c.B, A: 1}
	}
}
