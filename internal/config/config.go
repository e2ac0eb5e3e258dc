// Package config provides YAML-based runner tuning, difficulty management
// and application settings for the runner.
package config

// RunnerConfig contains all tuning for the runner simulation.
// Distances are world pixels, times are seconds, speeds are pixels per second.
type RunnerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Viewport   ViewportConfig   `yaml:"viewport"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Birds      BirdConfig       `yaml:"birds"`
	Chase      ChaseConfig      `yaml:"chase"`
	Score      ScoreConfig      `yaml:"score"`
	Messages   MessageConfig    `yaml:"messages"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines player motion.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	JumpImpulse      float64 `yaml:"jump_impulse"`
	DoubleJumpFactor float64 `yaml:"double_jump_factor"` // Fraction of JumpImpulse for the second jump
	FastFallMul      float64 `yaml:"fast_fall_multiplier"`
	BaseSpeed        float64 `yaml:"base_speed"` // World scroll speed at level 0
}

// PlayerConfig defines player sizing and placement relative to the viewport.
type PlayerConfig struct {
	HeightRatio float64 `yaml:"height_ratio"` // Fraction of viewport height
	MinHeight   float64 `yaml:"min_height"`
	MaxHeight   float64 `yaml:"max_height"`
	WidthRatio  float64 `yaml:"width_ratio"` // Width = height * ratio when no sprite is loaded
	XRatio      float64 `yaml:"x_ratio"`     // Default lane x as a fraction of viewport width
	MinX        float64 `yaml:"min_x"`
	HitPad      float64 `yaml:"hit_pad"` // Inset applied to the player box for hazard tests
}

// ViewportConfig maps terminal cells onto the world and sizes the ground lane.
type ViewportConfig struct {
	CellWidth  float64 `yaml:"cell_width"`  // World pixels per terminal column
	CellHeight float64 `yaml:"cell_height"` // World pixels per terminal row
	LaneRatio  float64 `yaml:"lane_ratio"`  // Lane height as a fraction of viewport height
	MinLane    float64 `yaml:"min_lane"`
}

// Size is a width/height pair in world pixels.
type Size struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// ObstacleConfig defines ground obstacle spawning.
type ObstacleConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Presets       []Size  `yaml:"presets"`
	JitterW       float64 `yaml:"jitter_w"`
	JitterH       float64 `yaml:"jitter_h"`
	SpawnMin      float64 `yaml:"spawn_min"` // Base inter-arrival bounds
	SpawnMax      float64 `yaml:"spawn_max"`
	MinGap        float64 `yaml:"min_gap"`         // Floor of the obstacle spacing
	GapSpeedRatio float64 `yaml:"gap_speed_ratio"` // Spacing grows with world speed
	HitPad        float64 `yaml:"hit_pad"`         // Inset applied to the obstacle box
	DespawnMargin float64 `yaml:"despawn_margin"`  // Removed once fully this far off-screen left
	SpawnAheadMin float64 `yaml:"spawn_ahead_min"` // Spawn x offset beyond the right edge
	SpawnAheadMax float64 `yaml:"spawn_ahead_max"`
}

// BirdConfig defines aerial hazard spawning and flight.
type BirdConfig struct {
	Enabled        bool    `yaml:"enabled"`
	SpawnMin       float64 `yaml:"spawn_min"`
	SpawnMax       float64 `yaml:"spawn_max"`
	SafeGap        float64 `yaml:"safe_gap"`         // Floor of the bird/obstacle recovery lane
	GapSpeedRatio  float64 `yaml:"gap_speed_ratio"`  // Recovery lane grows with world speed
	HitPad         float64 `yaml:"hit_pad"`          // Inset applied to the bird box
	SpawnLock      float64 `yaml:"spawn_lock"`       // Ground spawn lockout after a bird spawn
	ClearLock      float64 `yaml:"clear_lock"`       // Ground spawn lockout after the last bird clears
	MinSpeedRatio  float64 `yaml:"min_speed_ratio"`  // vx never drops below worldSpeed * ratio
	ClimbGravity   float64 `yaml:"climb_gravity"`    // Added to vy per second while climbing
	ClimbBaseSpeed float64 `yaml:"climb_base_speed"` // Initial climb vy magnitude
	DespawnMargin  float64 `yaml:"despawn_margin"`
}

// ChaseConfig defines the mash-to-escape sequence.
type ChaseConfig struct {
	Enabled          bool    `yaml:"enabled"`
	TriggerScore     float64 `yaml:"trigger_score"`
	Duration         float64 `yaml:"duration"`
	MashBoost        float64 `yaml:"mash_boost"`
	MashDecay        float64 `yaml:"mash_decay"`
	MaxMashSpeed     float64 `yaml:"max_mash_speed"`
	MaxLead          float64 `yaml:"max_lead"`
	LeadGain         float64 `yaml:"lead_gain"`  // Lead gained per unit of mash speed per second
	LeadDecay        float64 `yaml:"lead_decay"` // Lead lost per second
	TripDuration     float64 `yaml:"trip_duration"`
	ReturnDuration   float64 `yaml:"return_duration"`
	OverlayDuration  float64 `yaml:"overlay_duration"`
	ParticleInterval float64 `yaml:"particle_interval"`
	MaxParticles     int     `yaml:"max_particles"`
	Chaser           Size    `yaml:"chaser"`
	ChaserPad        float64 `yaml:"chaser_pad"` // Inset applied to the chaser box
	PlayerPad        float64 `yaml:"player_pad"` // Inset applied to the player box against the chaser
}

// ScoreConfig defines score accrual and the win threshold.
type ScoreConfig struct {
	Rate float64 `yaml:"rate"` // Points per second of simulated time
	Win  float64 `yaml:"win"`
}

// MessageConfig holds banner texts shown by the engine.
type MessageConfig struct {
	BirdWarning  string `yaml:"bird_warning"`
	ChasePending string `yaml:"chase_pending"`
	ChaseStart   string `yaml:"chase_start"`
	Escaped      string `yaml:"escaped"`
}

// DifficultyConfig defines the world speed progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "score", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // Score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the speed factor at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a user supplied name into a preset.
// Unknown names report false.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
