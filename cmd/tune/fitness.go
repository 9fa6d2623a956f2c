package main

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/game"
	"github.com/pthm-cable/gravwell/telemetry"
)

// Fitness weights.
const (
	engagementWeight = 0.25 // bonus share for kill rate near target
	minLifetimeSec   = 1.0  // floor for log-space survival error
)

// FitnessEvaluator runs autopilot games and scores how close their
// difficulty lands to the target survival time.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	targetSurvival float64 // seconds per run
	targetKillRate float64 // kills per minute

	mu   sync.Mutex
	last evalSummary
}

// evalSummary aggregates one Evaluate call across seeds.
type evalSummary struct {
	survivalSec float64
	killsPerMin float64
	runs        int
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, targetSurvival, targetKillRate float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:         params,
		maxTicks:       maxTicks,
		seeds:          seeds,
		baseConfig:     baseCfg,
		statsWindow:    10.0,
		targetSurvival: targetSurvival,
		targetKillRate: targetKillRate,
	}
}

// Last returns the summary of the most recent evaluation.
func (fe *FitnessEvaluator) Last() (survivalSec, killsPerMin float64, runs int) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last.survivalSec, fe.last.killsPerMin, fe.last.runs
}

// runResult holds the results from a single simulation.
type runResult struct {
	lifetimes   []float64 // seconds survived per run, the last one possibly cut off
	windowStats []telemetry.WindowStats
	simSec      float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Seeds run in parallel; each builds its own game from a private config copy.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var lifetimes []float64
	var kills int
	var simSec float64
	for _, r := range results {
		lifetimes = append(lifetimes, r.lifetimes...)
		for _, w := range r.windowStats {
			kills += w.Kills()
		}
		simSec += r.simSec
	}

	survival := stat.Mean(lifetimes, nil)
	killRate := 0.0
	if simSec > 0 {
		killRate = float64(kills) / simSec * 60
	}

	fe.mu.Lock()
	fe.last = evalSummary{survivalSec: survival, killsPerMin: killRate, runs: len(lifetimes)}
	fe.mu.Unlock()

	return computeFitness(survival, fe.targetSurvival, killRate, fe.targetKillRate)
}

// runSimulation plays one headless game for maxTicks and records how long
// each run lasted.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.Apply(cfg, x)

	result := &runResult{}
	g, err := game.NewGameWithOptions(cfg, game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		return result
	}
	defer g.Unload()
	g.SetStatsCallback(func(stats telemetry.WindowStats) {
		result.windowStats = append(result.windowStats, stats)
	})

	dt := cfg.Physics.DT
	var runStart int32
	wasOver := false
	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()

		over := g.World().GameOver()
		switch {
		case over && !wasOver:
			result.lifetimes = append(result.lifetimes, float64(g.Tick()-runStart)*dt)
		case !over && wasOver:
			runStart = g.Tick()
		}
		wasOver = over
	}
	if !wasOver {
		result.lifetimes = append(result.lifetimes, float64(g.Tick()-runStart)*dt)
	}
	result.simSec = float64(g.Tick()) * dt
	return result
}

// copyConfig returns a private copy of the base config. Sections are plain
// values; the asset path slices are shared read-only.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness scores survival in log space against the target, so
// twice-too-long and half-too-short cost the same. Kill rate near its target
// earns up to engagementWeight off.
func computeFitness(survival, targetSurvival, killRate, targetKillRate float64) float64 {
	if math.IsNaN(survival) || targetSurvival <= 0 {
		return math.Inf(1)
	}
	logErr := math.Log(math.Max(survival, minLifetimeSec) / targetSurvival)

	engagement := 0.0
	if targetKillRate > 0 {
		kErr := math.Log(math.Max(killRate, 1e-3) / targetKillRate)
		engagement = math.Exp(-kErr * kErr)
	}
	return logErr*logErr - engagementWeight*engagement
}
