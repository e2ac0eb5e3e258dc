// runner is an endless side-scrolling runner for the terminal.
//
// Usage:
//
//	runner                 - Play (same as "runner play")
//	runner play            - Play a run in this terminal
//	runner scores          - Show run history
//	runner serve           - Start SSH server for remote play
//	runner config          - Print the default tuning YAML
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible runs
//	--db <path>            - Set run history path (default: ~/.irr-runner/runs.db)
//	--difficulty <preset>  - easy, normal, hard or fixed
//
// Every flag can also be set in ~/.irr-runner/settings.yaml or via RUNNER_* env vars.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/irr-runner/internal/config"
)

var (
	v            = config.NewViper()
	settings     config.Settings
	settingsPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "IRR Runner - an endless runner in your terminal",
	Long: `IRR Runner is a terminal endless runner. Jump over obstacles, double jump
over diving birds, and mash your way out of the chase to reach 10%.

Available commands:
  play     - Play a run (default)
  scores   - View run history
  serve    - Start SSH server for remote play
  config   - Print the default tuning file

Examples:
  runner
  runner play --difficulty hard
  runner scores --recent
  runner serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE:              runPlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&settingsPath, "settings", "", "Path to settings file (default ~/.irr-runner/settings.yaml)")
	pf.Int("fps", 60, "Tick rate (frames per second)")
	pf.Int64("seed", 0, "RNG seed (0 = random based on time)")
	pf.String("db", "~/.irr-runner/runs.db", "Path to run history database")
	pf.String("best-file", "~/.irr-runner/best", "Path to best score file")
	pf.String("assets-dir", "", "Directory with sprite overrides")
	pf.String("config", "", "Path to custom runner tuning YAML")
	pf.String("difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.Bool("sound", false, "Play sound cues")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Write logs to this file (discarded during play when empty)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings resolves defaults, settings file, env and flags into settings.
func loadSettings(cmd *cobra.Command, _ []string) error {
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	s, err := config.LoadSettings(v, settingsPath)
	if err != nil {
		return err
	}
	settings = s
	return nil
}

// newLogger builds the application logger. Interactive commands never log to
// the terminal they draw on. The returned func closes the log file, if any.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(settings.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", settings.Log.Level, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case settings.Log.File != "":
		f, err := os.OpenFile(settings.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "runner",
		Level:           level,
	})
	return logger, closeFn, nil
}
