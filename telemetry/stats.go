package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Live counts at window end
	Seekers    int `csv:"seekers"`
	Wanderers  int `csv:"wanderers"`
	BlackHoles int `csv:"black_holes"`
	Bullets    int `csv:"bullets"`
	Particles  int `csv:"particles"`

	// Events during window
	Shots           int `csv:"shots"`
	SeekerSpawns    int `csv:"seeker_spawns"`
	WandererSpawns  int `csv:"wanderer_spawns"`
	BlackHoleSpawns int `csv:"black_hole_spawns"`
	SeekerKills     int `csv:"seeker_kills"`
	WandererKills   int `csv:"wanderer_kills"`
	BlackHoleKills  int `csv:"black_hole_kills"`
	Absorbed        int `csv:"absorbed"`
	Deaths          int `csv:"deaths"`
	SpawnsSkipped   int `csv:"spawns_skipped"`

	// Kills per bullet fired
	HitRate float64 `csv:"hit_rate"`

	// Score at window end
	Score     int `csv:"score"`
	BestScore int `csv:"best_score"`

	// Enemy distance from the player (sampled at window end)
	ThreatDistMean float64 `csv:"threat_dist_mean"`
	ThreatDistStd  float64 `csv:"threat_dist_std"`
	ThreatDistP10  float64 `csv:"threat_dist_p10"`
	ThreatDistP50  float64 `csv:"threat_dist_p50"`
	ThreatDistP90  float64 `csv:"threat_dist_p90"`
	NearestThreat  float64 `csv:"nearest_threat"`
}

// Kills returns the total bullet kills in the window.
func (s WindowStats) Kills() int {
	return s.SeekerKills + s.WandererKills + s.BlackHoleKills
}

// Enemies returns the live enemy count at window end.
func (s WindowStats) Enemies() int {
	return s.Seekers + s.Wanderers + s.BlackHoles
}

// Quantile returns the p-th empirical quantile of sorted data.
// p is clamped into [0, 1]. Returns 0 if the slice is empty.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeDistanceStats calculates mean, sample standard deviation,
// quantiles and minimum of the given distances.
func ComputeDistanceStats(values []float64) (mean, std, p10, p50, p90, nearest float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n == 1 {
		mean = sorted[0]
	} else {
		mean, std = stat.MeanStdDev(sorted, nil)
	}

	p10 = Quantile(sorted, 0.10)
	p50 = Quantile(sorted, 0.50)
	p90 = Quantile(sorted, 0.90)

	return mean, std, p10, p50, p90, sorted[0]
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("seekers", s.Seekers),
		slog.Int("wanderers", s.Wanderers),
		slog.Int("black_holes", s.BlackHoles),
		slog.Int("bullets", s.Bullets),
		slog.Int("particles", s.Particles),
		slog.Int("shots", s.Shots),
		slog.Int("kills", s.Kills()),
		slog.Int("absorbed", s.Absorbed),
		slog.Int("deaths", s.Deaths),
		slog.Int("spawns_skipped", s.SpawnsSkipped),
		slog.Float64("hit_rate", s.HitRate),
		slog.Int("score", s.Score),
		slog.Int("best_score", s.BestScore),
		slog.Float64("threat_dist_p50", s.ThreatDistP50),
		slog.Float64("nearest_threat", s.NearestThreat),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"seekers", s.Seekers,
		"wanderers", s.Wanderers,
		"black_holes", s.BlackHoles,
		"bullets", s.Bullets,
		"particles", s.Particles,
		"shots", s.Shots,
		"seeker_spawns", s.SeekerSpawns,
		"wanderer_spawns", s.WandererSpawns,
		"black_hole_spawns", s.BlackHoleSpawns,
		"seeker_kills", s.SeekerKills,
		"wanderer_kills", s.WandererKills,
		"black_hole_kills", s.BlackHoleKills,
		"absorbed", s.Absorbed,
		"deaths", s.Deaths,
		"spawns_skipped", s.SpawnsSkipped,
		"hit_rate", s.HitRate,
		"score", s.Score,
		"best_score", s.BestScore,
		"threat_dist_mean", s.ThreatDistMean,
		"threat_dist_std", s.ThreatDistStd,
		"threat_dist_p10", s.ThreatDistP10,
		"threat_dist_p50", s.ThreatDistP50,
		"threat_dist_p90", s.ThreatDistP90,
		"nearest_threat", s.NearestThreat,
	)
}
