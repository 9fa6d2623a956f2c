package game

import (
	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/config"
)

// Score tracks the current run's points and the session best.
type Score struct {
	points  [components.NumKinds]int
	current int
	best    int
}

// NewScore creates a score table from per-kind kill points.
func NewScore(cfg config.ScoringConfig) Score {
	var s Score
	s.points[components.KindSeeker] = cfg.Seeker
	s.points[components.KindWanderer] = cfg.Wanderer
	s.points[components.KindBlackHole] = cfg.BlackHole
	return s
}

// Kill awards the points for destroying kind and returns them.
func (s *Score) Kill(kind components.Kind) int {
	if int(kind) >= components.NumKinds {
		return 0
	}
	p := s.points[kind]
	s.current += p
	if s.current > s.best {
		s.best = s.current
	}
	return p
}

// Reset starts a new run. The best score is kept.
func (s *Score) Reset() {
	s.current = 0
}

// Current returns the points scored this run.
func (s *Score) Current() int { return s.current }

// Best returns the highest score this session.
func (s *Score) Best() int { return s.best }
