package components

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/assets"
)

// Entity is a game object record. It has no identity beyond its pool slot.
// Velocity is a direction (unit length for homing kinds) scaled by MoveSpeed
// when advancing; the player's velocity is its smoothed input axis.
type Entity struct {
	Position  r2.Vec
	Velocity  r2.Vec
	Rotation  float64 // radians
	Scale     r2.Vec
	Color     Color // Color.A < 1 means still fading in
	MoveSpeed float64
	Radius    float64
	Texture   assets.Texture
}

// FadingIn reports whether the entity is still ramping in after spawn.
// Fading entities take no part in collisions or homing.
func (e *Entity) FadingIn() bool {
	return e.Color.A < 1
}

// FadeIn advances the spawn fade by dt (one second from 0 to 1).
func (e *Entity) FadeIn(dt float64) {
	if e.Color.A >= 1 {
		return
	}
	e.Color.A += dt
	// Snap accumulated rounding error so N ticks with N*dt >= 1 always finish.
	if e.Color.A > 1-fadeEpsilon {
		e.Color.A = 1
	}
}

const fadeEpsilon = 1e-9

// Draw returns the draw command for the entity.
func (e *Entity) Draw(blend BlendMode) DrawCommand {
	return DrawCommand{
		Texture:  e.Texture,
		Position: e.Position,
		Rotation: e.Rotation,
		Scale:    e.Scale,
		Color:    e.Color,
		Blend:    blend,
	}
}

// RadiusFromTexture derives a collision radius from sprite pixel size.
func RadiusFromTexture(tex assets.Texture) float64 {
	r := float64(tex.Width) / 2
	if r <= 0 {
		r = 1
	}
	return r
}

// Particle is a short-lived visual effect.
// Scale.X and Color.A track 1 - Timer/Duration.
type Particle struct {
	Position r2.Vec
	Velocity r2.Vec
	Rotation float64
	Scale    r2.Vec
	Color    Color
	Timer    float64
	Duration float64
	Texture  assets.Texture
	Blend    BlendMode
}

// LifeLeft returns 1 - Timer/Duration clamped to [0,1].
func (p *Particle) LifeLeft() float64 {
	if p.Duration <= 0 {
		return 0
	}
	v := 1 - p.Timer/p.Duration
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// DrawCommand is a renderer-agnostic sprite draw.
type DrawCommand struct {
	Texture  assets.Texture
	Position r2.Vec
	Rotation float64
	Scale    r2.Vec
	Color    Color
	Blend    BlendMode
}
