package systems

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/assets"
	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/pool"
)

func newTestParticles(capacity int) *ParticleSystem {
	return NewParticleSystem(capacity, Bounds{Width: 1000, Height: 1000}, ParticleTuning{
		Damping:         3,
		PullGain:        1,
		SwirlGain:       400,
		SwirlRangeScale: 10,
	})
}

func onlyParticle(t *testing.T, s *ParticleSystem) *components.Particle {
	t.Helper()
	var got *components.Particle
	s.Each(func(p *components.Particle) { got = p })
	if got == nil {
		t.Fatal("expected a live particle")
	}
	return got
}

func TestParticleLifecycle(t *testing.T) {
	s := newTestParticles(16)
	s.SpawnParticle(assets.Texture{}, r2.Vec{}, components.White, 1.0, r2.Vec{X: 1, Y: 1}, 0, r2.Vec{})

	dt := 0.25
	for tick := 1; tick <= 3; tick++ {
		s.Update(dt, nil)
		p := onlyParticle(t, s)
		want := 1 - float64(tick)*dt
		if math.Abs(p.Scale.X-want) > 1e-12 || math.Abs(p.Color.A-want) > 1e-12 {
			t.Errorf("tick %d: scale.x=%v alpha=%v, want %v", tick, p.Scale.X, p.Color.A, want)
		}
	}

	s.Update(dt, nil)
	if s.Count() != 0 {
		t.Errorf("particle should expire on the tick timer reaches duration, count=%d", s.Count())
	}
}

func TestParticleExpiryTick(t *testing.T) {
	tests := []struct {
		name     string
		dt       float64
		duration float64
		want     int
	}{
		{"quarter steps", 0.25, 1, 4},
		{"60 Hz short", 1.0 / 60, 0.75, 45},
		{"60 Hz explosion", 1.0 / 60, 1.5, 90},
		{"60 Hz burst", 1.0 / 60, 3, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestParticles(4)
			s.SpawnParticle(assets.Texture{}, r2.Vec{}, components.White, tt.duration, r2.Vec{X: 1, Y: 1}, 0, r2.Vec{})

			tick := 0
			for s.Count() > 0 {
				s.Update(tt.dt, nil)
				tick++
				if tick > 2*tt.want {
					t.Fatalf("particle never expired")
				}
			}
			if tick != tt.want {
				t.Errorf("expired on tick %d, want %d", tick, tt.want)
			}
		})
	}
}

func TestParticleDamping(t *testing.T) {
	s := newTestParticles(16)
	s.SpawnParticle(assets.Texture{}, r2.Vec{}, components.White, 10, r2.Vec{X: 1, Y: 1}, 0, r2.Vec{X: 100})

	s.Update(0.1, nil)
	p := onlyParticle(t, s)

	if math.Abs(p.Position.X-10) > 1e-9 {
		t.Errorf("position should advance by v*dt before damping, got %v", p.Position.X)
	}
	if math.Abs(p.Velocity.X-70) > 1e-9 {
		t.Errorf("velocity should be damped by 1-3*dt, got %v", p.Velocity.X)
	}
	if p.Rotation != 0 {
		t.Errorf("rotation should follow +X velocity, got %v", p.Rotation)
	}
}

func TestParticleBounce(t *testing.T) {
	tests := []struct {
		name    string
		pos     r2.Vec
		vel     r2.Vec
		wantPos r2.Vec
		flipX   bool
		flipY   bool
	}{
		{"right wall", r2.Vec{X: 495}, r2.Vec{X: 100}, r2.Vec{X: 500}, true, false},
		{"left wall", r2.Vec{X: -495}, r2.Vec{X: -100}, r2.Vec{X: -500}, true, false},
		{"top wall", r2.Vec{Y: 495}, r2.Vec{Y: 100}, r2.Vec{Y: 500}, false, true},
		{"bottom wall", r2.Vec{Y: -495}, r2.Vec{Y: -100}, r2.Vec{Y: -500}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestParticles(4)
			s.SpawnParticle(assets.Texture{}, tt.pos, components.White, 10, r2.Vec{X: 1, Y: 1}, 0, tt.vel)
			s.Update(0.1, nil)
			p := onlyParticle(t, s)

			if p.Position != tt.wantPos {
				t.Errorf("position = %v, want clamped %v", p.Position, tt.wantPos)
			}
			if tt.flipX && math.Signbit(p.Velocity.X) == math.Signbit(tt.vel.X) {
				t.Errorf("x velocity should flip sign: %v -> %v", tt.vel.X, p.Velocity.X)
			}
			if tt.flipY && math.Signbit(p.Velocity.Y) == math.Signbit(tt.vel.Y) {
				t.Errorf("y velocity should flip sign: %v -> %v", tt.vel.Y, p.Velocity.Y)
			}
		})
	}
}

func TestParticleAttraction(t *testing.T) {
	hole := Attractor{Position: r2.Vec{X: 100}, Radius: 20}

	t.Run("pull only when far", func(t *testing.T) {
		s := newTestParticles(4)
		s.SpawnParticle(assets.Texture{}, r2.Vec{X: -400}, components.White, 10, r2.Vec{X: 1, Y: 1}, 0, r2.Vec{})
		s.Update(0.01, []Attractor{hole})
		p := onlyParticle(t, s)

		// d = 500, pull = 1000/500 = 2 toward +X, no swirl (500 >= 200)
		if math.Abs(p.Velocity.X-2) > 1e-9 || math.Abs(p.Velocity.Y) > 1e-9 {
			t.Errorf("expected pure +X pull of 2, got %v", p.Velocity)
		}
	})

	t.Run("swirl when close", func(t *testing.T) {
		s := newTestParticles(4)
		s.SpawnParticle(assets.Texture{}, r2.Vec{X: 0}, components.White, 10, r2.Vec{X: 1, Y: 1}, 0, r2.Vec{})
		s.Update(0.01, []Attractor{hole})
		p := onlyParticle(t, s)

		// d = 100, pull = 10, swirl = 400*20/(120+120) along (0,-1)
		wantSwirl := 400.0 * 20 / 240
		if math.Abs(p.Velocity.X-10) > 1e-9 {
			t.Errorf("expected pull 10, got %v", p.Velocity.X)
		}
		if math.Abs(p.Velocity.Y+wantSwirl) > 1e-9 {
			t.Errorf("expected swirl %v on -Y, got %v", wantSwirl, p.Velocity.Y)
		}
	})

	t.Run("coincident is ignored", func(t *testing.T) {
		s := newTestParticles(4)
		s.SpawnParticle(assets.Texture{}, r2.Vec{X: 100}, components.White, 10, r2.Vec{X: 1, Y: 1}, 0, r2.Vec{})
		s.Update(0.01, []Attractor{hole})
		p := onlyParticle(t, s)
		if math.IsNaN(p.Velocity.X) || math.IsNaN(p.Velocity.Y) {
			t.Error("velocity must not become NaN")
		}
	})
}

func TestParticleCapacity(t *testing.T) {
	s := newTestParticles(2)
	for i := 0; i < 2; i++ {
		if err := s.SpawnParticle(assets.Texture{}, r2.Vec{}, components.White, 1, r2.Vec{X: 1, Y: 1}, 0, r2.Vec{}); err != nil {
			t.Fatalf("spawn %d failed: %v", i, err)
		}
	}

	err := s.SpawnParticle(assets.Texture{}, r2.Vec{}, components.White, 1, r2.Vec{X: 1, Y: 1}, 0, r2.Vec{})
	if !errors.Is(err, pool.ErrExhausted) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
	if s.Count() != 2 || s.Dropped() != 1 {
		t.Errorf("expected 2 live and 1 dropped, got %d/%d", s.Count(), s.Dropped())
	}
}

func TestParticleRender(t *testing.T) {
	s := newTestParticles(4)
	s.SpawnParticle(assets.Texture{ID: 7}, r2.Vec{X: 3}, components.White, 1, r2.Vec{X: 1, Y: 1}, 0, r2.Vec{})

	cmds := s.Render(nil)
	if len(cmds) != 1 {
		t.Fatalf("expected 1 command, got %d", len(cmds))
	}
	if cmds[0].Blend != components.BlendAdditive || cmds[0].Texture.ID != 7 {
		t.Errorf("unexpected command %+v", cmds[0])
	}
}
