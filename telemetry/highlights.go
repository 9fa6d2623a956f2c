package telemetry

import (
	"fmt"
	"log/slog"
)

// HighlightType identifies the type of highlight.
type HighlightType string

const (
	HighlightNewBest      HighlightType = "new_best"
	HighlightKillSurge    HighlightType = "kill_surge"
	HighlightSwarm        HighlightType = "swarm"
	HighlightLongSurvival HighlightType = "long_survival"
)

// survivalWindows is how many death-free windows with enemies on the field
// make a long survival.
const survivalWindows = 5

// Highlight is an automatically detected moment worth revisiting.
type Highlight struct {
	Type        HighlightType `csv:"type"`
	Tick        int32         `csv:"tick"`
	Description string        `csv:"description"`
}

// LogHighlight logs the highlight using slog.
func (h Highlight) LogHighlight() {
	slog.Info("highlight",
		"type", string(h.Type),
		"tick", h.Tick,
		"description", h.Description,
	)
}

// HighlightDetector watches flushed windows for notable moments.
type HighlightDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	lastBest       int
	survivalStreak int
}

// NewHighlightDetector creates a detector with the given history size.
func NewHighlightDetector(historySize int) *HighlightDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &HighlightDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered highlights.
func (hd *HighlightDetector) Check(stats WindowStats) []Highlight {
	var out []Highlight

	if h := hd.checkNewBest(stats); h != nil {
		out = append(out, *h)
	}
	if h := hd.checkKillSurge(stats); h != nil {
		out = append(out, *h)
	}
	if h := hd.checkSwarm(stats); h != nil {
		out = append(out, *h)
	}
	if h := hd.checkLongSurvival(stats); h != nil {
		out = append(out, *h)
	}

	hd.addToHistory(stats)
	return out
}

func (hd *HighlightDetector) addToHistory(stats WindowStats) {
	hd.history[hd.historyIdx] = stats
	hd.historyIdx = (hd.historyIdx + 1) % hd.historySize
	if hd.historyIdx == 0 {
		hd.historyFull = true
	}
}

func (hd *HighlightDetector) getHistory() []WindowStats {
	if hd.historyFull {
		return hd.history
	}
	return hd.history[:hd.historyIdx]
}

func (hd *HighlightDetector) checkNewBest(stats WindowStats) *Highlight {
	prev := hd.lastBest
	if stats.BestScore <= prev {
		return nil
	}
	hd.lastBest = stats.BestScore
	if prev == 0 {
		return nil
	}
	return &Highlight{
		Type:        HighlightNewBest,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Best score raised from %d to %d", prev, stats.BestScore),
	}
}

func (hd *HighlightDetector) checkKillSurge(stats WindowStats) *Highlight {
	history := hd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Kills()
	}
	avg := float64(total) / float64(len(history))
	kills := stats.Kills()
	if avg == 0 || kills < 10 {
		return nil
	}

	if float64(kills) > avg*2 {
		return &Highlight{
			Type:        HighlightKillSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d kills is %.1fx the average (%.1f)", kills, float64(kills)/avg, avg),
		}
	}
	return nil
}

func (hd *HighlightDetector) checkSwarm(stats WindowStats) *Highlight {
	history := hd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Enemies()
	}
	avg := float64(total) / float64(len(history))
	enemies := stats.Enemies()
	if avg == 0 || enemies < 20 {
		return nil
	}

	if float64(enemies) >= avg*2 {
		return &Highlight{
			Type:        HighlightSwarm,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d enemies on the field, %.1fx the average (%.1f)", enemies, float64(enemies)/avg, avg),
		}
	}
	return nil
}

func (hd *HighlightDetector) checkLongSurvival(stats WindowStats) *Highlight {
	if stats.Deaths > 0 || stats.Enemies() == 0 {
		hd.survivalStreak = 0
		return nil
	}

	hd.survivalStreak++
	if hd.survivalStreak == survivalWindows { // trigger once per streak
		return &Highlight{
			Type:        HighlightLongSurvival,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Survived %d windows with score %d", survivalWindows, stats.Score),
		}
	}
	return nil
}
