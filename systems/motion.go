package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/components"
)

// Env is the per-tick context shared by every motion rule.
type Env struct {
	DT     float64
	Bounds Bounds
	Player r2.Vec // player position, the homing target
	Move   r2.Vec // input axis, unit disk
	Rng    Rand
}

// Motion is the update rule of one entity kind.
// Step advances e by one tick and reports whether e should be destroyed.
type Motion interface {
	Step(e *components.Entity, env *Env) (remove bool)
}

// PlayerMotion eases velocity toward the input axis and keeps the player
// inside the field by reflecting its position off the edges.
type PlayerMotion struct {
	LerpRate float64
}

func (m PlayerMotion) Step(e *components.Entity, env *Env) bool {
	t := math.Min(1, m.LerpRate*env.DT)
	e.Velocity = LerpVec(e.Velocity, ClampLength(env.Move, 1), t)
	e.Position = r2.Add(e.Position, r2.Scale(e.MoveSpeed*env.DT, e.Velocity))
	if e.Velocity.X != 0 || e.Velocity.Y != 0 {
		e.Rotation = Angle(e.Velocity)
	}
	e.Position = ReflectInside(e.Position, e.Radius, env.Bounds)
	return false
}

// ReflectInside mirrors p back across any edge that a circle of radius r
// has crossed, then clamps so it never ends up outside.
func ReflectInside(p r2.Vec, r float64, b Bounds) r2.Vec {
	lo, hi := b.Min(), b.Max()
	lo.X, lo.Y = lo.X+r, lo.Y+r
	hi.X, hi.Y = hi.X-r, hi.Y-r
	if lo.X > hi.X {
		lo.X, hi.X = 0, 0
	}
	if lo.Y > hi.Y {
		lo.Y, hi.Y = 0, 0
	}

	if p.X < lo.X {
		p.X = 2*lo.X - p.X
	} else if p.X > hi.X {
		p.X = 2*hi.X - p.X
	}
	if p.Y < lo.Y {
		p.Y = 2*lo.Y - p.Y
	} else if p.Y > hi.Y {
		p.Y = 2*hi.Y - p.Y
	}
	p.X = Clamp(p.X, lo.X, hi.X)
	p.Y = Clamp(p.Y, lo.Y, hi.Y)
	return p
}

// BulletMotion moves in a straight line. Bullets leaving the field by more
// than their radius are removed.
type BulletMotion struct{}

func (BulletMotion) Step(e *components.Entity, env *Env) bool {
	e.Position = r2.Add(e.Position, r2.Scale(e.MoveSpeed*env.DT, e.Velocity))
	return !env.Bounds.Contains(e.Position, -e.Radius)
}

// SeekerMotion turns toward the player a little every tick.
type SeekerMotion struct {
	TurnRate float64
}

func (m SeekerMotion) Step(e *components.Entity, env *Env) bool {
	if e.FadingIn() {
		e.FadeIn(env.DT)
		return false
	}
	toward := SafeNormalize(r2.Sub(env.Player, e.Position))
	e.Velocity = SafeNormalize(LerpVec(e.Velocity, toward, m.TurnRate*env.DT))
	e.Position = r2.Add(e.Position, r2.Scale(e.MoveSpeed*env.DT, e.Velocity))
	if e.Velocity.X != 0 || e.Velocity.Y != 0 {
		e.Rotation = Angle(e.Velocity)
	}
	return false
}

// WandererMotion drifts with a random heading jitter applied over several
// sub-steps per tick. Out of bounds it heads straight back to the centre.
type WandererMotion struct {
	SubSteps int
	Jitter   float64 // max heading change per sub-step, in units of pi
}

func (m WandererMotion) Step(e *components.Entity, env *Env) bool {
	if e.FadingIn() {
		e.FadeIn(env.DT)
		return false
	}
	n := m.SubSteps
	if n < 1 {
		n = 1
	}
	step := e.MoveSpeed * env.DT / float64(n)
	heading := Angle(e.Velocity)
	for i := 0; i < n; i++ {
		if !env.Bounds.Contains(e.Position, 0) {
			back := SafeNormalize(r2.Sub(env.Bounds.Center(), e.Position))
			if back.X != 0 || back.Y != 0 {
				heading = Angle(back)
			}
		} else {
			heading += RandRange(env.Rng, -m.Jitter, m.Jitter) * math.Pi
		}
		e.Velocity = FromPolar(heading, 1)
		e.Position = r2.Add(e.Position, r2.Scale(step, e.Velocity))
	}
	e.Rotation = heading
	return false
}

// BlackHoleMotion keeps the hole in place and spins its sprite.
type BlackHoleMotion struct {
	Spin float64 // radians per second
}

func (m BlackHoleMotion) Step(e *components.Entity, env *Env) bool {
	e.Velocity = r2.Vec{}
	e.FadeIn(env.DT)
	e.Rotation = math.Mod(e.Rotation+m.Spin*env.DT, 2*math.Pi)
	return false
}
