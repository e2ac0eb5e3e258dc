package config

import "math"

// Progression types.
const (
	ProgressScore = "score"
	ProgressTime  = "time"
	ProgressNone  = "none"
)

// DifficultyManager maps run progress onto world speed.
// The level starts at the configured initial level and climbs linearly to 1
// as score (or elapsed time) approaches max_at.
type DifficultyManager struct {
	enabled bool
	start   float64
	by      string
	maxAt   float64
	gain    float64 // Extra speed fraction at level 1
}

// NewDifficultyManager creates a manager from tuning.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	maxAt := cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1
	}
	return &DifficultyManager{
		enabled: cfg.Enabled && cfg.Progression.Type != ProgressNone,
		start:   unit(cfg.InitialLevel),
		by:      cfg.Progression.Type,
		maxAt:   maxAt,
		gain:    cfg.Scaling.SpeedMultiplier,
	}
}

// IsEnabled reports whether the level moves during a run.
func (d *DifficultyManager) IsEnabled() bool {
	return d.enabled
}

// Level returns the difficulty in [0, 1] after score points and elapsed seconds.
func (d *DifficultyManager) Level(score, elapsed float64) float64 {
	if !d.enabled {
		return d.start
	}

	var done float64
	switch d.by {
	case ProgressScore:
		done = score
	case ProgressTime:
		done = elapsed
	default:
		return d.start
	}
	return d.start + (1-d.start)*unit(done/d.maxAt)
}

// Speed returns the world speed for the given progress. A disabled ramp
// scrolls at base for the whole run.
func (d *DifficultyManager) Speed(base, score, elapsed float64) float64 {
	if !d.enabled {
		return base
	}
	return base * (1 + d.gain*d.Level(score, elapsed))
}

// unit clamps v to [0, 1].
func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
