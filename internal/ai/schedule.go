// Package ai holds the ghost mode state machine and direction choice.
package ai

import "github.com/tferrerm/unity-pac/internal/entities"

// lastIteration is where chase becomes permanent.
const lastIteration = 4

type ScheduleConfig struct {
	FirstTwoScatter float64
	LastTwoScatter  float64
	Chase           float64
}

// Schedule is the global scatter/chase clock shared by all roaming
// ghosts. The owner stops calling Update while frightened mode is active.
type Schedule struct {
	cfg       ScheduleConfig
	mode      entities.GhostMode
	iteration int
	timer     float64
}

func NewSchedule(cfg ScheduleConfig) *Schedule {
	s := &Schedule{cfg: cfg}
	s.Reset()
	return s
}

// Reset returns the clock to scatter, iteration 1.
func (s *Schedule) Reset() {
	s.mode = entities.ModeScatter
	s.iteration = 1
	s.timer = 0
}

func (s *Schedule) Mode() entities.GhostMode { return s.mode }

func (s *Schedule) Iteration() int { return s.iteration }

// Elapsed is the time spent in the current mode.
func (s *Schedule) Elapsed() float64 { return s.timer }

// Update advances the clock by dt and reports how many scatter/chase
// flips happened. Time past a boundary carries into the next period.
func (s *Schedule) Update(dt float64) int {
	s.timer += dt
	flips := 0
	for {
		limit, ok := s.limit()
		if !ok || s.timer <= limit {
			return flips
		}
		s.timer -= limit
		if s.mode == entities.ModeScatter {
			s.mode = entities.ModeChase
		} else {
			s.mode = entities.ModeScatter
			s.iteration++
		}
		flips++
	}
}

// limit is the duration of the current period; false means forever.
func (s *Schedule) limit() (float64, bool) {
	if s.mode == entities.ModeChase {
		if s.iteration >= lastIteration {
			return 0, false
		}
		return s.cfg.Chase, true
	}
	if s.iteration <= 2 {
		return s.cfg.FirstTwoScatter, true
	}
	return s.cfg.LastTwoScatter, true
}
