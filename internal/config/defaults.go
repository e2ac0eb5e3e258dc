package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner tuning.
// It mirrors defaults/runner.yaml and is used when the embedded file cannot be decoded.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: PhysicsConfig{
			Gravity:          2400,
			JumpImpulse:      860,
			DoubleJumpFactor: 0.92,
			FastFallMul:      1.75,
			BaseSpeed:        360,
		},
		Player: PlayerConfig{
			HeightRatio: 0.1,
			MinHeight:   56,
			MaxHeight:   82,
			WidthRatio:  0.5,
			XRatio:      0.16,
			MinX:        64,
			HitPad:      6,
		},
		Viewport: ViewportConfig{
			CellWidth:  10,
			CellHeight: 20,
			LaneRatio:  0.24,
			MinLane:    110,
		},
		Obstacles: ObstacleConfig{
			Enabled: true,
			Presets: []Size{
				{W: 26, H: 42},
				{W: 36, H: 56},
				{W: 48, H: 76},
				{W: 62, H: 64},
			},
			JitterW:       3,
			JitterH:       4,
			SpawnMin:      1.1,
			SpawnMax:      1.9,
			MinGap:        190,
			GapSpeedRatio: 0.53,
			HitPad:        2,
			DespawnMargin: 20,
			SpawnAheadMin: 20,
			SpawnAheadMax: 120,
		},
		Birds: BirdConfig{
			Enabled:        true,
			SpawnMin:       7.5,
			SpawnMax:       13,
			SafeGap:        260,
			GapSpeedRatio:  0.78,
			HitPad:         3,
			SpawnLock:      1.35,
			ClearLock:      0.55,
			MinSpeedRatio:  1.04,
			ClimbGravity:   220,
			ClimbBaseSpeed: 190,
			DespawnMargin:  50,
		},
		Chase: ChaseConfig{
			Enabled:          true,
			TriggerScore:     5,
			Duration:         5,
			MashBoost:        360,
			MashDecay:        560,
			MaxMashSpeed:     1100,
			MaxLead:          150,
			LeadGain:         0.12,
			LeadDecay:        28,
			TripDuration:     0.85,
			ReturnDuration:   1.05,
			OverlayDuration:  1.1,
			ParticleInterval: 0.026,
			MaxParticles:     100,
			Chaser:           Size{W: 44, H: 62},
			ChaserPad:        5,
			PlayerPad:        6,
		},
		Score: ScoreConfig{
			Rate: 0.2,
			Win:  10,
		},
		Messages: MessageConfig{
			BirdWarning:  "content guy incoming, double jump activated",
			ChasePending: "CHASE incoming - clear the lane!",
			ChaseStart:   "CHASE!",
			Escaped:      "Escaped!",
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.4,
			},
		},
	}
}

// DefaultRunnerYAML returns the embedded default tuning file.
func DefaultRunnerYAML() []byte {
	return defaultRunnerYAML
}
