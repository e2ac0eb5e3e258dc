package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RunnerConfigFile is the tuning file name looked up in the config directories.
const RunnerConfigFile = "runner.yaml"

// LoadRunner loads runner tuning.
// Search order: customPath -> ~/.irr-runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// Every file is decoded over the defaults, so a partial file only overrides what it names.
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decodeRunner(data)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(RunnerConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decodeRunner(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", RunnerConfigFile)); err == nil {
		if cfg, err := decodeRunner(data); err == nil {
			return cfg, nil
		}
	}

	return embeddedRunner(), nil
}

// decodeRunner unmarshals data on top of the embedded defaults.
func decodeRunner(data []byte) (RunnerConfig, error) {
	cfg := embeddedRunner()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

// embeddedRunner decodes the embedded default YAML.
func embeddedRunner() RunnerConfig {
	var cfg RunnerConfig
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".irr-runner", "configs", filename)
}

// Validate rejects tuning that would make the simulation degenerate.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("physics.gravity must be positive")
	case c.Physics.JumpImpulse <= 0:
		return fmt.Errorf("physics.jump_impulse must be positive")
	case c.Physics.BaseSpeed <= 0:
		return fmt.Errorf("physics.base_speed must be positive")
	case c.Viewport.CellWidth <= 0 || c.Viewport.CellHeight <= 0:
		return fmt.Errorf("viewport cell size must be positive")
	case len(c.Obstacles.Presets) == 0:
		return fmt.Errorf("obstacles.presets must not be empty")
	case c.Obstacles.SpawnMax < c.Obstacles.SpawnMin:
		return fmt.Errorf("obstacles.spawn_max must not be below spawn_min")
	case c.Birds.SpawnMax < c.Birds.SpawnMin:
		return fmt.Errorf("birds.spawn_max must not be below spawn_min")
	case c.Chase.MaxMashSpeed < 0 || c.Chase.MaxLead < 0:
		return fmt.Errorf("chase limits must not be negative")
	case c.Chase.MaxParticles < 1:
		return fmt.Errorf("chase.max_particles must be at least 1")
	case c.Chase.ParticleInterval <= 0:
		return fmt.Errorf("chase.particle_interval must be positive")
	case c.Score.Rate <= 0 || c.Score.Win <= 0:
		return fmt.Errorf("score rate and win must be positive")
	}
	return nil
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Chase gets harder to escape on hard, easier on easy
	switch preset {
	case DifficultyEasy:
		cfg.Chase.MashBoost = 420
	case DifficultyHard:
		cfg.Chase.MashDecay = 680
	}
}
