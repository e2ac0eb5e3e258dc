package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RUNNER_FPS.
const EnvPrefix = "RUNNER"

// Settings holds application-level options that are not game tuning.
type Settings struct {
	FPS        int    `mapstructure:"fps"`
	Seed       int64  `mapstructure:"seed"`
	DBPath     string `mapstructure:"db"`
	BestFile   string `mapstructure:"best_file"`
	AssetsDir  string `mapstructure:"assets_dir"`
	ConfigPath string `mapstructure:"config"`
	Difficulty string `mapstructure:"difficulty"`
	Sound      bool   `mapstructure:"sound"`

	Log   LogSettings   `mapstructure:"log"`
	SSH   SSHSettings   `mapstructure:"ssh"`
	Input InputSettings `mapstructure:"input"`
}

// LogSettings configures the charmbracelet logger.
type LogSettings struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // Empty discards logs during interactive play
}

// SSHSettings configures the remote play server.
type SSHSettings struct {
	Addr        string        `mapstructure:"addr"`
	HostKey     string        `mapstructure:"host_key"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

// InputSettings tunes the keyboard boundary.
type InputSettings struct {
	RepeatWindow time.Duration `mapstructure:"repeat_window"`  // Identical presses closer than this are auto-repeat
	FastFallHold time.Duration `mapstructure:"fast_fall_hold"` // How long a fast-fall press counts as held
}

// NewViper returns a viper instance with defaults and RUNNER_* env binding.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("fps", 60)
	v.SetDefault("seed", 0)
	v.SetDefault("db", "~/.irr-runner/runs.db")
	v.SetDefault("best_file", "~/.irr-runner/best")
	v.SetDefault("assets_dir", "")
	v.SetDefault("config", "")
	v.SetDefault("difficulty", "")
	v.SetDefault("sound", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("ssh.addr", ":2222")
	v.SetDefault("ssh.host_key", ".ssh/runner_ed25519")
	v.SetDefault("ssh.idle_timeout", "10m")

	v.SetDefault("input.repeat_window", "45ms")
	v.SetDefault("input.fast_fall_hold", "180ms")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds command-line flags so that set flags win over file and env values.
// Flag names use dashes; they are mapped to the dotted/underscored keys above.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		key := flagKey(f.Name)
		if err := v.BindPFlag(key, f); err != nil {
			errs = append(errs, fmt.Errorf("config: bind flag %s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// flagKey maps a flag name onto a settings key.
func flagKey(name string) string {
	switch name {
	case "log-level":
		return "log.level"
	case "log-file":
		return "log.file"
	case "ssh":
		return "ssh.addr"
	case "host-key":
		return "ssh.host_key"
	case "idle-timeout":
		return "ssh.idle_timeout"
	default:
		return strings.ReplaceAll(name, "-", "_")
	}
}

// LoadSettings reads the settings file (if any) and decodes all layers.
// With an empty path, settings.yaml in ~/.irr-runner is used when present.
func LoadSettings(v *viper.Viper, path string) (Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("config: read settings %s: %w", path, err)
		}
	} else if dir := settingsDir(); dir != "" {
		v.SetConfigName("settings")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("config: read settings: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: decode settings: %w", err)
	}
	if s.FPS <= 0 {
		s.FPS = 60
	}
	s.DBPath = ExpandHome(s.DBPath)
	s.BestFile = ExpandHome(s.BestFile)
	s.AssetsDir = ExpandHome(s.AssetsDir)
	s.Log.File = ExpandHome(s.Log.File)
	return s, nil
}

// settingsDir returns ~/.irr-runner, or empty if home is unavailable.
func settingsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".irr-runner")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
