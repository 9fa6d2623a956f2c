package telemetry

import "github.com/pthm-cable/gravwell/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	shots         int
	spawns        [components.NumKinds]int
	kills         [components.NumKinds]int
	absorbed      int
	deaths        int
	spawnsSkipped int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts one event in the current window.
func (c *Collector) Record(e Event) {
	if int(e.Kind) >= components.NumKinds {
		return
	}
	switch e.Type {
	case EventShot:
		c.shots++
	case EventSpawn:
		c.spawns[e.Kind]++
	case EventKill:
		c.kills[e.Kind]++
	case EventAbsorb:
		c.absorbed++
	case EventPlayerDeath:
		c.deaths++
	case EventSpawnSkipped:
		c.spawnsSkipped++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Census is the world state sampled when a window is flushed.
type Census struct {
	Seekers    int
	Wanderers  int
	BlackHoles int
	Bullets    int
	Particles  int

	Score     int
	BestScore int

	// Distance from the player to every live enemy
	ThreatDistances []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, census Census) WindowStats {
	kills := c.kills[components.KindSeeker] + c.kills[components.KindWanderer] + c.kills[components.KindBlackHole]
	var hitRate float64
	if c.shots > 0 {
		hitRate = float64(kills) / float64(c.shots)
	}

	mean, std, p10, p50, p90, nearest := ComputeDistanceStats(census.ThreatDistances)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Seekers:    census.Seekers,
		Wanderers:  census.Wanderers,
		BlackHoles: census.BlackHoles,
		Bullets:    census.Bullets,
		Particles:  census.Particles,

		Shots:           c.shots,
		SeekerSpawns:    c.spawns[components.KindSeeker],
		WandererSpawns:  c.spawns[components.KindWanderer],
		BlackHoleSpawns: c.spawns[components.KindBlackHole],
		SeekerKills:     c.kills[components.KindSeeker],
		WandererKills:   c.kills[components.KindWanderer],
		BlackHoleKills:  c.kills[components.KindBlackHole],
		Absorbed:        c.absorbed,
		Deaths:          c.deaths,
		SpawnsSkipped:   c.spawnsSkipped,
		HitRate:         hitRate,

		Score:     census.Score,
		BestScore: census.BestScore,

		ThreatDistMean: mean,
		ThreatDistStd:  std,
		ThreatDistP10:  p10,
		ThreatDistP50:  p50,
		ThreatDistP90:  p90,
		NearestThreat:  nearest,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.shots = 0
	c.spawns = [components.NumKinds]int{}
	c.kills = [components.NumKinds]int{}
	c.absorbed = 0
	c.deaths = 0
	c.spawnsSkipped = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
