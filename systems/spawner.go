package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/components"
)

// SpawnRule gives the per-interval spawn probability of one kind.
type SpawnRule struct {
	Kind   components.Kind
	Chance float64
}

// Spawner decides which kinds spawn on each interval crossing.
// Every rule gets its own Bernoulli draw; kinds never share a draw.
type Spawner struct {
	Interval float64
	Rules    []SpawnRule

	timer float64
	out   []components.Kind
}

// NewSpawner creates a spawner with the given interval and rules.
func NewSpawner(interval float64, rules ...SpawnRule) *Spawner {
	return &Spawner{
		Interval: interval,
		Rules:    rules,
		out:      make([]components.Kind, 0, len(rules)),
	}
}

// Update accumulates dt. When the timer crosses Interval it resets to zero and
// returns the kinds whose draw succeeded. The returned slice is reused.
func (s *Spawner) Update(dt float64, rng Rand) []components.Kind {
	s.out = s.out[:0]
	s.timer += dt
	if s.timer < s.Interval {
		return s.out
	}
	s.timer = 0

	for _, rule := range s.Rules {
		if rng.Float64() < rule.Chance {
			s.out = append(s.out, rule.Kind)
		}
	}
	return s.out
}

// Timer returns the accumulated time since the last interval crossing.
func (s *Spawner) Timer() float64 {
	return s.timer
}

// Reset zeroes the interval timer.
func (s *Spawner) Reset() {
	s.timer = 0
}

// SamplePosition draws uniform points inside bounds scaled by margin until one
// lies farther than sqrt(minDistSq) from avoid. After maxAttempts draws it
// gives up and returns the last sample.
func SamplePosition(rng Rand, bounds Bounds, margin float64, avoid r2.Vec, minDistSq float64, maxAttempts int) (r2.Vec, bool) {
	hw := bounds.Width / 2 * margin
	hh := bounds.Height / 2 * margin

	var p r2.Vec
	for i := 0; i < maxAttempts; i++ {
		p = r2.Vec{
			X: RandRange(rng, -hw, hw),
			Y: RandRange(rng, -hh, hh),
		}
		if r2.Norm2(r2.Sub(p, avoid)) > minDistSq {
			return p, true
		}
	}
	return p, false
}
