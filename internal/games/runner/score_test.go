package runner

import (
	"errors"
	"testing"
)

func TestScoreTrackerReachesWinExactly(t *testing.T) {
	s := newScoreTracker(0.2, 10, 0, nil)

	steps := 0
	for !s.add(0.05) {
		steps++
		if steps > 2000 {
			t.Fatal("win never reached")
		}
	}
	if steps+1 != 1000 {
		t.Errorf("win after %d steps, expected 1000", steps+1)
	}
	if s.Value() != 10 {
		t.Errorf("value = %v, expected clamp to 10", s.Value())
	}
}

func TestScoreTrackerReached(t *testing.T) {
	s := newScoreTracker(0.2, 10, 0, nil)
	for i := 0; i < 499; i++ {
		s.add(0.05)
	}
	if s.reached(5) {
		t.Errorf("reached(5) at %v", s.Value())
	}
	s.add(0.05)
	if !s.reached(5) {
		t.Errorf("reached(5) = false at %v", s.Value())
	}
}

func TestScoreTrackerFinish(t *testing.T) {
	tests := []struct {
		name    string
		best    float64
		score   float64
		newBest bool
		want    float64
	}{
		{"improves", 1.5, 2.347, true, 2.34},
		{"equal snapped is not new", 2.34, 2.349, false, 2.34},
		{"worse", 7, 2, false, 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &memBest{best: tc.best}
			s := newScoreTracker(0.2, 10, tc.best, store)
			s.value = tc.score

			got, err := s.finish()
			if err != nil {
				t.Fatalf("finish: %v", err)
			}
			if got != tc.newBest {
				t.Errorf("new best = %v, expected %v", got, tc.newBest)
			}
			if s.Best() != tc.want {
				t.Errorf("best = %v, expected %v", s.Best(), tc.want)
			}
			if saved := len(store.saves) == 1; saved != tc.newBest {
				t.Errorf("saves = %v", store.saves)
			}
		})
	}
}

func TestScoreTrackerFinishSaveError(t *testing.T) {
	store := &memBest{saveErr: errors.New("read-only")}
	s := newScoreTracker(0.2, 10, 1, store)
	s.value = 3

	got, err := s.finish()
	if err == nil {
		t.Error("expected the save error to surface")
	}
	if !got || s.Best() != 3 {
		t.Errorf("new best = %v best = %v, expected the in-memory best to update", got, s.Best())
	}
}
