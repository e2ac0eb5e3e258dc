package runner

import "github.com/vovakirdan/irr-runner/internal/core"

// thresholdEpsilon lets accumulated float time reach exact thresholds:
// 1000 steps of 0.05s sum to 49.99999999999x, not 50.
const thresholdEpsilon = 1e-9

// BestStore persists the best snapped score between sessions.
type BestStore interface {
	LoadBest() (float64, error)
	SaveBest(best float64) error
}

// ScoreTracker accrues score over simulated time and owns the best score.
type ScoreTracker struct {
	rate  float64
	win   float64
	value float64
	best  float64
	store BestStore
}

func newScoreTracker(rate, win, best float64, store BestStore) *ScoreTracker {
	return &ScoreTracker{rate: rate, win: win, best: best, store: store}
}

// Value returns the current score.
func (s *ScoreTracker) Value() float64 { return s.value }

// Best returns the best snapped score.
func (s *ScoreTracker) Best() float64 { return s.best }

// Snapped returns the score floored to two decimals.
func (s *ScoreTracker) Snapped() float64 {
	return core.SnapDown(s.value, 2)
}

func (s *ScoreTracker) reset() {
	s.value = 0
}

// add accrues dt seconds of score. It reports true once the win threshold
// is reached, in which case the score is clamped to exactly the threshold.
func (s *ScoreTracker) add(dt float64) bool {
	s.value += dt * s.rate
	if s.value >= s.win-thresholdEpsilon {
		s.value = s.win
		return true
	}
	return false
}

// reached reports whether the score has crossed threshold.
func (s *ScoreTracker) reached(threshold float64) bool {
	return s.value >= threshold-thresholdEpsilon
}

// finish compares the snapped score with the best and persists a new best.
// The in-memory best is updated even if persisting fails.
func (s *ScoreTracker) finish() (bool, error) {
	snapped := s.Snapped()
	if snapped <= s.best {
		return false, nil
	}
	s.best = snapped
	if s.store == nil {
		return true, nil
	}
	return true, s.store.SaveBest(snapped)
}
