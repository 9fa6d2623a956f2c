// Package game ties the simulation together: the World with its per-kind
// rules, the fixed-step driver, telemetry hooks and the headless autopilot.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/systems"
	"github.com/pthm-cable/gravwell/telemetry"
)

// Speed limits for the simulation multiplier.
const (
	MinSpeed = 1
	MaxSpeed = 10
)

// stepEpsilon lets an accumulator that sums to exactly dt run the step.
const stepEpsilon = 1e-9

// Options configures game behavior.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string
	Headless       bool
	StepsPerUpdate int  // ticks per UpdateHeadless call
	Autopilot      bool // drive the player with the built-in autopilot
	Sounds         Sounds
	Sprites        *Sprites
	Logger         *slog.Logger
}

// Game holds the complete game state and drives the fixed-step loop.
type Game struct {
	cfg       *config.Config
	world     *World
	particles *systems.ParticleSystem
	rng       *rand.Rand
	rngSeed   int64
	logger    *slog.Logger

	// State
	tick           int32
	paused         bool
	speed          int // simulation speed multiplier
	stepsPerUpdate int
	accumulator    float64
	headless       bool

	autopilot *Autopilot

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	highlights    *telemetry.HighlightDetector
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	cmds []components.DrawCommand
}

// NewGame creates a game with default options.
func NewGame(cfg *config.Config) *Game {
	g, err := NewGameWithOptions(cfg, Options{Seed: 42})
	if err != nil {
		// Only output setup can fail and it is disabled by default.
		panic(err)
	}
	return g
}

// NewGameWithOptions creates a game with the specified options.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		rngSeed:        opts.Seed,
		logger:         logger,
		speed:          MinSpeed,
		stepsPerUpdate: steps,
		headless:       opts.Headless,
		collector:      telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		highlights:     telemetry.NewHighlightDetector(10),
		logStats:       opts.LogStats,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	g.particles = systems.NewParticleSystem(cfg.Particles.Capacity,
		systems.Bounds{Width: cfg.Field.Width, Height: cfg.Field.Height}, ParticleTuning(cfg))
	g.world = NewWorld(cfg, Deps{
		Rand:      g.rng,
		Sounds:    opts.Sounds,
		Observer:  g.collector,
		Logger:    logger,
		Perf:      g.perfCollector,
		Particles: g.particles,
		Sprites:   opts.Sprites,
	})

	if opts.Autopilot || opts.Headless {
		g.autopilot = NewAutopilot()
	}

	return g, nil
}

// Step runs exactly one fixed tick with the given input.
func (g *Game) Step(in Input) {
	dt := g.cfg.Physics.DT

	g.perfCollector.StartTick()
	g.world.Update(dt, in)

	g.perfCollector.StartPhase(telemetry.PhaseParticles)
	g.particles.Update(dt, g.world.Attractors())

	g.tick++
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perfCollector.EndTick()
}

// Advance feeds elapsed real time into the fixed-step accumulator and runs
// as many ticks as fit, scaled by the speed multiplier and capped per frame.
// When the cap is hit the remaining backlog is dropped. Returns ticks run.
func (g *Game) Advance(elapsed float64, in Input) int {
	if g.paused || elapsed <= 0 {
		return 0
	}
	dt := g.cfg.Physics.DT
	g.accumulator += elapsed * float64(g.speed)

	maxSteps := g.cfg.Physics.MaxStepsPerFrame * g.speed
	steps := 0
	for g.accumulator+stepEpsilon >= dt {
		if steps >= maxSteps {
			g.accumulator = 0
			break
		}
		g.Step(g.input(in))
		g.accumulator -= dt
		steps++
	}
	if g.accumulator < 0 {
		g.accumulator = 0
	}
	return steps
}

// UpdateHeadless runs StepsPerUpdate ticks without rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(g.input(Input{}))
	}
}

// input substitutes the autopilot's intent when it is enabled.
func (g *Game) input(in Input) Input {
	if g.autopilot == nil {
		return in
	}
	return g.autopilot.Input(g.world)
}

// Frame appends the full draw list: world objects, then particles.
func (g *Game) Frame(dst []components.DrawCommand) []components.DrawCommand {
	dst = g.world.Render(dst)
	return g.particles.Render(dst)
}

// Draw renders one frame through r.
func (g *Game) Draw(r Renderer) {
	g.perfCollector.RecordFrame()
	g.cmds = g.Frame(g.cmds[:0])
	r.Present(g.cmds)
}

// TogglePause pauses or resumes the simulation.
func (g *Game) TogglePause() { g.paused = !g.paused }

// SetPaused sets the pause state.
func (g *Game) SetPaused(p bool) { g.paused = p }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// SetSpeed sets the speed multiplier, clamped to [MinSpeed, MaxSpeed].
func (g *Game) SetSpeed(s int) {
	if s < MinSpeed {
		s = MinSpeed
	}
	if s > MaxSpeed {
		s = MaxSpeed
	}
	g.speed = s
}

// Speed returns the speed multiplier.
func (g *Game) Speed() int { return g.speed }

// SetAutopilot enables or disables the autopilot.
func (g *Game) SetAutopilot(on bool) {
	if on && g.autopilot == nil {
		g.autopilot = NewAutopilot()
	} else if !on {
		g.autopilot = nil
	}
}

// AutopilotEnabled reports whether the autopilot drives the player.
func (g *Game) AutopilotEnabled() bool { return g.autopilot != nil }

// SetStatsCallback registers a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) { g.statsCallback = fn }

// Tick returns the number of ticks run.
func (g *Game) Tick() int32 { return g.tick }

// Headless reports whether the game runs without a window.
func (g *Game) Headless() bool { return g.headless }

// Seed returns the RNG seed the game was created with.
func (g *Game) Seed() int64 { return g.rngSeed }

// World returns the simulation world.
func (g *Game) World() *World { return g.world }

// Particles returns the particle system.
func (g *Game) Particles() *systems.ParticleSystem { return g.particles }

// Config returns the configuration the game runs with.
func (g *Game) Config() *config.Config { return g.cfg }

// Perf returns the step timing collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perfCollector }

// Unload flushes and closes telemetry output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
	}
}
