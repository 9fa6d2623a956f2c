package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/components"
)

// seqRand replays a fixed sequence of Float64 values.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func (r *seqRand) Intn(n int) int {
	return int(r.Float64() * float64(n))
}

func TestSpawnerInterval(t *testing.T) {
	s := NewSpawner(1.0, SpawnRule{Kind: components.KindSeeker, Chance: 1})
	rng := &seqRand{vals: []float64{0.5}}

	if got := s.Update(0.5, rng); len(got) != 0 {
		t.Errorf("no spawn before interval, got %v", got)
	}
	if got := s.Update(0.5, rng); len(got) != 1 {
		t.Errorf("expected spawn on crossing, got %v", got)
	}
	if s.Timer() != 0 {
		t.Errorf("timer should reset to zero, got %v", s.Timer())
	}
	if got := s.Update(0.25, rng); len(got) != 0 {
		t.Errorf("no spawn right after reset, got %v", got)
	}
}

func TestSpawnerDrawsPerKind(t *testing.T) {
	s := NewSpawner(1.0,
		SpawnRule{Kind: components.KindSeeker, Chance: 0.8},
		SpawnRule{Kind: components.KindWanderer, Chance: 0.6},
		SpawnRule{Kind: components.KindBlackHole, Chance: 0.2},
	)
	// seeker passes, wanderer fails, black hole passes
	rng := &seqRand{vals: []float64{0.1, 0.7, 0.1}}

	got := s.Update(1.0, rng)
	if len(got) != 2 || got[0] != components.KindSeeker || got[1] != components.KindBlackHole {
		t.Errorf("expected [seeker black_hole], got %v", got)
	}
	if rng.i != 3 {
		t.Errorf("expected one draw per rule, got %d draws", rng.i)
	}
}

func TestSpawnerIndependence(t *testing.T) {
	rules := []SpawnRule{
		{Kind: components.KindSeeker, Chance: 0.8},
		{Kind: components.KindWanderer, Chance: 0.6},
		{Kind: components.KindBlackHole, Chance: 0.2},
	}
	s := NewSpawner(1.0, rules...)
	rng := rand.New(rand.NewSource(1))

	const trials = 20000
	var counts [components.NumKinds]int
	var both int // seeker and black hole in the same interval
	for i := 0; i < trials; i++ {
		var seeker, hole bool
		for _, k := range s.Update(1.0, rng) {
			counts[k]++
			seeker = seeker || k == components.KindSeeker
			hole = hole || k == components.KindBlackHole
		}
		if seeker && hole {
			both++
		}
	}

	for _, r := range rules {
		freq := float64(counts[r.Kind]) / trials
		if math.Abs(freq-r.Chance) > 0.02 {
			t.Errorf("%v frequency %.3f, want ~%.2f", r.Kind, freq, r.Chance)
		}
	}

	joint := float64(both) / trials
	if math.Abs(joint-0.8*0.2) > 0.02 {
		t.Errorf("joint seeker+black_hole frequency %.3f, want ~0.16", joint)
	}
}

func TestSamplePositionRejects(t *testing.T) {
	bounds := Bounds{Width: 200, Height: 100}
	// First draw lands at origin (0.5 -> centre), second at a corner.
	rng := &seqRand{vals: []float64{0.5, 0.5, 0.0, 0.0}}

	p, ok := SamplePosition(rng, bounds, 1, r2.Vec{}, 50*50, 8)
	if !ok {
		t.Fatal("expected an accepted sample")
	}
	if p.X != -100 || p.Y != -50 {
		t.Errorf("expected corner sample (-100,-50), got %v", p)
	}
}

func TestSamplePositionTerminates(t *testing.T) {
	bounds := Bounds{Width: 10, Height: 10}
	rng := rand.New(rand.NewSource(3))

	// Unsatisfiable: every point in the field is within 1000 of the origin.
	p, ok := SamplePosition(rng, bounds, 1, r2.Vec{}, 1000*1000, 16)
	if ok {
		t.Error("expected fallback for unsatisfiable constraint")
	}
	if !bounds.Contains(p, 0) {
		t.Errorf("fallback sample should still lie in the field, got %v", p)
	}
}
