package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/assets"
	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/pool"
)

// Attractor is a black hole as seen by particles.
type Attractor struct {
	Position r2.Vec
	Radius   float64
}

// ParticleTuning holds particle motion constants.
type ParticleTuning struct {
	Damping         float64 // velocity *= 1 - Damping*dt
	PullGain        float64 // pull = PullGain * fieldWidth / distance
	SwirlGain       float64 // swirl = SwirlGain * r_h / (120 + 1.2 d)
	SwirlRangeScale float64 // swirl applies when d < SwirlRangeScale * r_h
}

// ParticleSystem manages short-lived visual particles in a bounded pool.
type ParticleSystem struct {
	pool   *pool.Pool[components.Particle]
	bounds Bounds
	tuning ParticleTuning

	dropped int // spawns skipped because the pool was full
}

// NewParticleSystem creates a particle system with at most capacity live particles.
func NewParticleSystem(capacity int, bounds Bounds, tuning ParticleTuning) *ParticleSystem {
	return &ParticleSystem{
		pool:   pool.New[components.Particle](capacity, capacity),
		bounds: bounds,
		tuning: tuning,
	}
}

// SpawnParticle adds a particle. When the pool is full the particle is dropped
// and pool.ErrExhausted is returned; nothing else changes.
func (s *ParticleSystem) SpawnParticle(tex assets.Texture, pos r2.Vec, tint components.Color, duration float64, scale r2.Vec, angle float64, vel r2.Vec) error {
	idx, err := s.pool.Acquire()
	if err != nil {
		s.dropped++
		return err
	}
	p := s.pool.Get(idx)
	*p = components.Particle{
		Position: pos,
		Velocity: vel,
		Rotation: angle,
		Scale:    scale,
		Color:    tint,
		Duration: duration,
		Texture:  tex,
		Blend:    components.BlendAdditive,
	}
	return nil
}

// lifeEpsilon absorbs rounding when dt sums to exactly a particle's duration.
const lifeEpsilon = 1e-9

// Update advances every particle by dt and applies the given black holes.
func (s *ParticleSystem) Update(dt float64, holes []Attractor) {
	lo, hi := s.bounds.Min(), s.bounds.Max()
	damping := 1 - s.tuning.Damping*dt
	if damping < 0 {
		damping = 0
	}

	s.pool.ForEachActive(func(idx int, p *components.Particle) {
		p.Timer += dt
		if p.Timer+lifeEpsilon >= p.Duration {
			s.pool.Release(idx)
			return
		}

		if p.Velocity.X != 0 || p.Velocity.Y != 0 {
			p.Rotation = Angle(p.Velocity)
		}
		p.Position = r2.Add(p.Position, r2.Scale(dt, p.Velocity))
		p.Velocity = r2.Scale(damping, p.Velocity)

		life := p.LifeLeft()
		p.Scale.X = life
		p.Color.A = life

		// Bounce off the field edges
		if p.Position.X < lo.X {
			p.Position.X = lo.X
			p.Velocity.X = math.Abs(p.Velocity.X)
		} else if p.Position.X > hi.X {
			p.Position.X = hi.X
			p.Velocity.X = -math.Abs(p.Velocity.X)
		}
		if p.Position.Y < lo.Y {
			p.Position.Y = lo.Y
			p.Velocity.Y = math.Abs(p.Velocity.Y)
		} else if p.Position.Y > hi.Y {
			p.Position.Y = hi.Y
			p.Velocity.Y = -math.Abs(p.Velocity.Y)
		}

		for _, h := range holes {
			s.attract(p, h)
		}
	})
}

// attract pulls p toward h and adds a tangential swirl close in.
func (s *ParticleSystem) attract(p *components.Particle, h Attractor) {
	delta := r2.Sub(h.Position, p.Position)
	d := r2.Norm(delta)
	if d == 0 {
		return
	}
	n := r2.Scale(1/d, delta)

	pull := math.Max(0, s.tuning.PullGain*s.bounds.Width/d)
	p.Velocity = r2.Add(p.Velocity, r2.Scale(pull, n))

	if d < s.tuning.SwirlRangeScale*h.Radius {
		tangent := r2.Vec{X: n.Y, Y: -n.X}
		swirl := s.tuning.SwirlGain * h.Radius / (120 + 1.2*d)
		p.Velocity = r2.Add(p.Velocity, r2.Scale(swirl, tangent))
	}
}

// Render appends one draw command per live particle.
func (s *ParticleSystem) Render(dst []components.DrawCommand) []components.DrawCommand {
	s.pool.ForEachActive(func(_ int, p *components.Particle) {
		dst = append(dst, components.DrawCommand{
			Texture:  p.Texture,
			Position: p.Position,
			Rotation: p.Rotation,
			Scale:    p.Scale,
			Color:    p.Color,
			Blend:    p.Blend,
		})
	})
	return dst
}

// Each calls fn for every live particle.
func (s *ParticleSystem) Each(fn func(p *components.Particle)) {
	s.pool.ForEachActive(func(_ int, p *components.Particle) {
		fn(p)
	})
}

// Count returns the number of live particles.
func (s *ParticleSystem) Count() int {
	return s.pool.Count()
}

// Dropped returns how many spawns were skipped for lack of space.
func (s *ParticleSystem) Dropped() int {
	return s.dropped
}

// Reset removes every particle.
func (s *ParticleSystem) Reset() {
	s.pool.Reset()
}
