package game

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/systems"
)

func TestAutopilotIdleInEmptyField(t *testing.T) {
	w := newTestWorld(testConfig())

	in := NewAutopilot().Input(w.World)
	if in.Fire {
		t.Error("fired with no targets")
	}
	if in.Move != (r2.Vec{}) {
		t.Errorf("Move = %v, want zero at field centre", in.Move)
	}
}

func TestAutopilotEngagesThreat(t *testing.T) {
	w := newTestWorld(testConfig())
	i := mustSpawn(t)(w.SpawnSeeker(r2.Vec{X: 100}))
	opaque(t, w.World, components.KindSeeker, i)

	in := NewAutopilot().Input(w.World)
	if !in.Fire {
		t.Error("expected fire at visible seeker")
	}
	if in.Aim.X <= 0 || in.Aim.Y != 0 {
		t.Errorf("Aim = %v, want toward +X", in.Aim)
	}
	if in.Move.X >= 0 {
		t.Errorf("Move = %v, want away from seeker", in.Move)
	}
	if n := r2.Norm(in.Move); n > 1+1e-9 {
		t.Errorf("|Move| = %v, want <= 1", n)
	}
}

func TestAutopilotIgnoresFadingTargets(t *testing.T) {
	w := newTestWorld(testConfig())
	mustSpawn(t)(w.SpawnSeeker(r2.Vec{X: 100}))

	in := NewAutopilot().Input(w.World)
	if in.Fire {
		t.Error("fired at a seeker still fading in")
	}
	if in.Move.X >= 0 {
		t.Errorf("Move = %v, want fading seeker still avoided", in.Move)
	}
}

func TestWallPush(t *testing.T) {
	b := systems.Bounds{Width: 1000, Height: 1000}

	tests := []struct {
		name  string
		p     r2.Vec
		signX int
		signY int
	}{
		{"centre", r2.Vec{}, 0, 0},
		{"left edge", r2.Vec{X: -490}, 1, 0},
		{"right edge", r2.Vec{X: 490}, -1, 0},
		{"top edge", r2.Vec{Y: -490}, 0, 1},
		{"bottom right corner", r2.Vec{X: 490, Y: 490}, -1, -1},
	}

	sign := func(v float64) int {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return 0
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			push := wallPush(tt.p, b)
			if sign(push.X) != tt.signX || sign(push.Y) != tt.signY {
				t.Errorf("wallPush(%v) = %v", tt.p, push)
			}
		})
	}
}
