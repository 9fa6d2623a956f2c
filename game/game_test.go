package game

import (
	"io"
	"log/slog"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/telemetry"
)

func newTestGame(t *testing.T, cfg *config.Config, opts Options) *Game {
	t.Helper()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	g, err := NewGameWithOptions(cfg, opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func quarterStepConfig() *config.Config {
	cfg := testConfig()
	cfg.Physics.DT = 0.25
	cfg.Physics.MaxStepsPerFrame = 5
	return cfg
}

func TestAdvanceFixedStep(t *testing.T) {
	tests := []struct {
		name    string
		speed   int
		elapsed float64
		want    int
	}{
		{"exact multiple", 1, 0.75, 3},
		{"less than a step", 1, 0.1, 0},
		{"speed multiplier", 2, 0.5, 4},
		{"capped per frame", 1, 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, quarterStepConfig(), Options{Seed: 1})
			g.SetSpeed(tt.speed)
			if got := g.Advance(tt.elapsed, Input{}); got != tt.want {
				t.Errorf("Advance(%v) = %d steps, want %d", tt.elapsed, got, tt.want)
			}
			if g.Tick() != int32(tt.want) {
				t.Errorf("tick = %d, want %d", g.Tick(), tt.want)
			}
		})
	}
}

func TestAdvanceCarriesRemainder(t *testing.T) {
	g := newTestGame(t, quarterStepConfig(), Options{Seed: 1})

	if got := g.Advance(0.125, Input{}); got != 0 {
		t.Fatalf("half a step should not tick, got %d", got)
	}
	if got := g.Advance(0.125, Input{}); got != 1 {
		t.Errorf("two halves should make one step, got %d", got)
	}
}

func TestAdvancePaused(t *testing.T) {
	g := newTestGame(t, quarterStepConfig(), Options{Seed: 1})
	g.TogglePause()

	if got := g.Advance(1, Input{}); got != 0 {
		t.Errorf("paused game should not step, got %d", got)
	}
	g.TogglePause()
	if got := g.Advance(0.25, Input{}); got != 1 {
		t.Errorf("resumed game should step, got %d", got)
	}
}

func TestSetSpeedClamps(t *testing.T) {
	g := newTestGame(t, quarterStepConfig(), Options{Seed: 1})

	g.SetSpeed(0)
	if g.Speed() != MinSpeed {
		t.Errorf("speed = %d, want %d", g.Speed(), MinSpeed)
	}
	g.SetSpeed(99)
	if g.Speed() != MaxSpeed {
		t.Errorf("speed = %d, want %d", g.Speed(), MaxSpeed)
	}
}

func TestStatsWindowFlush(t *testing.T) {
	cfg := quarterStepConfig()
	g := newTestGame(t, cfg, Options{Seed: 1, StatsWindowSec: 1})

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) { windows = append(windows, s) })

	for i := 0; i < 8; i++ {
		g.Step(Input{Aim: r2.Vec{X: 1}, Fire: true})
	}

	if len(windows) != 2 {
		t.Fatalf("expected 2 flushed windows, got %d", len(windows))
	}
	if windows[0].WindowEndTick != 4 || windows[1].WindowEndTick != 8 {
		t.Errorf("unexpected window ends %d, %d", windows[0].WindowEndTick, windows[1].WindowEndTick)
	}
	if windows[0].Shots == 0 {
		t.Error("held fire should be counted as shots")
	}
}

func TestStepUpdatesParticles(t *testing.T) {
	g := newTestGame(t, quarterStepConfig(), Options{Seed: 1})
	g.World().spray(r2.Vec{}, 10, 100, 0.5)

	if g.Particles().Count() != 10 {
		t.Fatalf("expected 10 particles, got %d", g.Particles().Count())
	}
	g.Step(Input{})
	g.Step(Input{})
	if g.Particles().Count() != 0 {
		t.Errorf("particles should expire with the game clock, %d left", g.Particles().Count())
	}
}

func TestHeadlessAutopilot(t *testing.T) {
	cfg := testConfig()
	cfg.Spawn.Interval = 0.5
	g := newTestGame(t, cfg, Options{Seed: 7, Headless: true, StepsPerUpdate: 60})

	if !g.AutopilotEnabled() {
		t.Fatal("headless games should drive the player with the autopilot")
	}
	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}
	if g.Tick() != 600 {
		t.Errorf("tick = %d, want 600", g.Tick())
	}

	p := g.World().Player()
	if !g.World().Bounds().Contains(p.Position, p.Radius-1e-9) {
		t.Errorf("player left the field at %v", p.Position)
	}
}

type countingRenderer struct {
	frames int
	last   []components.DrawCommand
}

func (r *countingRenderer) Present(cmds []components.DrawCommand) {
	r.frames++
	r.last = cmds
}

func TestDrawPresentsWorldThenParticles(t *testing.T) {
	g := newTestGame(t, quarterStepConfig(), Options{Seed: 1})
	g.World().spray(r2.Vec{}, 3, 100, 1)

	r := &countingRenderer{}
	g.Draw(r)

	if r.frames != 1 || len(r.last) != 4 {
		t.Fatalf("expected 1 frame of 4 commands, got %d frames, %d commands", r.frames, len(r.last))
	}
	if r.last[0].Blend != components.BlendAlpha {
		t.Error("player should be drawn first")
	}
	for _, c := range r.last[1:] {
		if c.Blend != components.BlendAdditive {
			t.Error("particles should follow the world, additively blended")
		}
	}
}
