package main

import (
	"errors"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/irr-runner/internal/audio"
	"github.com/vovakirdan/irr-runner/internal/core"
	"github.com/vovakirdan/irr-runner/internal/platform/tui"
	"github.com/vovakirdan/irr-runner/internal/storage"
	"github.com/vovakirdan/irr-runner/internal/telemetry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run in this terminal.

Controls:
  Space      - Start, jump, double jump; mash during the chase
  Up/W       - Jump
  Down/S     - Fast fall
  P/Esc      - Pause
  R/Enter    - Restart (after game over or win)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Speed ramp starts at the bottom
  normal - Speed ramp starts at 30%
  hard   - Speed ramp starts at 70%, the chase decays faster
  fixed  - No speed ramp

Examples:
  runner play
  runner play --difficulty easy
  runner play --sound
  runner play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal")
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	kit, err := loadKit(cmd.Context(), logger)
	if err != nil {
		return err
	}

	metrics, err := telemetry.New()
	if err != nil {
		return err
	}
	sound := audio.NewPlayer(settings.Sound, logger)
	defer sound.Close()

	// Run history is optional; the game still works without it
	store, err := storage.Open(settings.DBPath)
	if err != nil {
		logger.Warn("could not open run history", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	game := kit.newGame(settings.BestFile, core.MultiFeedback{sound, metrics})
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: settings.FPS,
		Seed:     settings.Seed,
	}
	return tui.Run(game, cfg, tui.Options{
		Store:   store,
		Metrics: metrics,
		Player:  localPlayer(),
		Logger:  logger,
		Input:   settings.Input,
	})
}

// localPlayer names the player in run history.
func localPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
