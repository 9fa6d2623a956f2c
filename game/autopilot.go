package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/systems"
)

// Autopilot tuning.
const (
	dangerRadius    = 360.0 // threats closer than this push the player away
	holeDangerScale = 2.5   // black holes repel over a wider radius
	wallMargin      = 0.15  // fraction of the field near an edge that pushes inward
)

// Autopilot produces input for headless runs: it steers away from nearby
// threats and the field edges, aims at the nearest faded-in enemy and fires
// whenever it has a target.
type Autopilot struct{}

// NewAutopilot creates an autopilot.
func NewAutopilot() *Autopilot {
	return &Autopilot{}
}

// Input computes one tick of intent for the world's player.
func (a *Autopilot) Input(w *World) Input {
	p := w.Player().Position

	var away r2.Vec
	accumulate := func(e *components.Entity, radius float64) {
		d := r2.Sub(p, e.Position)
		dist := r2.Norm(d)
		if dist >= radius || dist == 0 {
			return
		}
		// Linear falloff from full weight at contact to zero at radius
		away = r2.Add(away, r2.Scale((radius-dist)/(radius*dist), d))
	}

	var aim r2.Vec
	nearestSq := math.Inf(1)
	target := func(e *components.Entity) {
		if e.FadingIn() {
			return
		}
		if dsq := r2.Norm2(r2.Sub(e.Position, p)); dsq < nearestSq {
			nearestSq = dsq
			aim = r2.Sub(e.Position, p)
		}
	}

	for _, kind := range [...]components.Kind{components.KindSeeker, components.KindWanderer} {
		w.Each(kind, func(_ int, e *components.Entity) {
			accumulate(e, dangerRadius)
			target(e)
		})
	}
	w.Each(components.KindBlackHole, func(_ int, e *components.Entity) {
		accumulate(e, dangerRadius*holeDangerScale)
		target(e)
	})

	away = r2.Add(away, wallPush(p, w.Bounds()))

	return Input{
		Move: systems.ClampLength(away, 1),
		Aim:  aim,
		Fire: !math.IsInf(nearestSq, 1),
	}
}

// wallPush returns an inward push that grows as p nears an edge.
func wallPush(p r2.Vec, b systems.Bounds) r2.Vec {
	lo, hi := b.Min(), b.Max()
	mx, my := b.Width*wallMargin, b.Height*wallMargin

	var push r2.Vec
	if d := p.X - lo.X; d < mx {
		push.X += 1 - d/mx
	}
	if d := hi.X - p.X; d < mx {
		push.X -= 1 - d/mx
	}
	if d := p.Y - lo.Y; d < my {
		push.Y += 1 - d/my
	}
	if d := hi.Y - p.Y; d < my {
		push.Y -= 1 - d/my
	}
	return push
}
