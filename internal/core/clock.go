package core

import "time"

// MaxStepDelta is the largest simulation step in seconds.
// Longer frame gaps (tab switches, GC pauses, slow SSH links) are clamped.
const MaxStepDelta = 0.05

// Stepper converts wall-clock ticks into clamped simulation deltas.
type Stepper struct {
	last    time.Time
	started bool
	max     float64
}

// NewStepper creates a stepper that clamps deltas to maxDelta seconds.
// A non-positive maxDelta selects MaxStepDelta.
func NewStepper(maxDelta float64) *Stepper {
	if maxDelta <= 0 {
		maxDelta = MaxStepDelta
	}
	return &Stepper{max: maxDelta}
}

// Next returns the elapsed seconds since the previous call, clamped to [0, max].
// The first call returns 0.
func (s *Stepper) Next(now time.Time) float64 {
	if !s.started {
		s.started = true
		s.last = now
		return 0
	}
	dt := now.Sub(s.last).Seconds()
	s.last = now
	return ClampDelta(dt, s.max)
}

// Reset forgets the previous timestamp so the next call returns 0.
func (s *Stepper) Reset() {
	s.started = false
}

// ClampDelta limits dt to [0, max].
func ClampDelta(dt, max float64) float64 {
	if dt != dt || dt < 0 {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}
