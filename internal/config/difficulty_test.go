package config

import (
	"math"
	"testing"
)

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 0.5},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score, expected float64
	}{
		{0, 0.2},
		{5, 0.6},
		{10, 1.0},
		{20, 1.0},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Level(%v) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 60},
		Scaling:     ScalingConfig{SpeedMultiplier: 1},
	})
	if got := d.Speed(100, 0, 30); math.Abs(got-150) > 1e-9 {
		t.Errorf("Speed at half time = %v, expected 150", got)
	}
}

func TestDifficultyDisabledKeepsBaseSpeed(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.7,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 0.4},
	})
	if d.IsEnabled() {
		t.Error("manager should report disabled")
	}
	if got := d.Speed(360, 9, 45); got != 360 {
		t.Errorf("Speed = %v, expected base 360", got)
	}

	d = NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 2, // clamped to 1
		Progression:  ProgressionConfig{Type: ProgressScore, MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 0.4},
	})
	if got := d.Speed(360, 0, 0); math.Abs(got-360*1.4) > 1e-9 {
		t.Errorf("Speed at level 1 = %v, expected %v", got, 360*1.4)
	}
}

func TestDifficultyNoneProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: ProgressNone, MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1},
	})
	if d.IsEnabled() {
		t.Error("progression type none should disable the ramp")
	}
	if got := d.Level(10, 100); got != 0.5 {
		t.Errorf("Level = %v, expected the initial level", got)
	}
}
