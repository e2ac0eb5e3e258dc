package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/irr-runner/internal/assets"
	"github.com/vovakirdan/irr-runner/internal/config"
	"github.com/vovakirdan/irr-runner/internal/core"
	"github.com/vovakirdan/irr-runner/internal/games/runner"
	"github.com/vovakirdan/irr-runner/internal/storage"
)

// assetTimeout bounds sprite loading before boot.
const assetTimeout = 3 * time.Second

// gameKit holds everything shared by the games of one process.
type gameKit struct {
	cfg     config.RunnerConfig
	sprites assets.Set
	logger  *log.Logger
}

// loadKit loads tuning, applies the difficulty preset and joins sprite loading.
func loadKit(ctx context.Context, logger *log.Logger) (*gameKit, error) {
	cfg, err := config.LoadRunner(settings.ConfigPath)
	if err != nil {
		return nil, err
	}
	if settings.Difficulty != "" {
		preset, ok := config.ParsePreset(settings.Difficulty)
		if !ok {
			return nil, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", settings.Difficulty)
		}
		config.ApplyRunnerPreset(&cfg, preset)
	}

	ctx, cancel := context.WithTimeout(ctx, assetTimeout)
	defer cancel()
	sprites, err := assets.NewLoader(settings.AssetsDir, logger).LoadSet(ctx)
	if err != nil {
		logger.Warn("sprite loading interrupted, using placeholders", "err", err)
		sprites = assets.Placeholders()
	}

	return &gameKit{cfg: cfg, sprites: sprites, logger: logger}, nil
}

// newGame creates a runner game persisting its best score to bestPath.
func (k *gameKit) newGame(bestPath string, feedback core.Feedback) *runner.Game {
	return runner.New(k.cfg, k.sprites,
		runner.WithBestStore(storage.NewBestFile(bestPath)),
		runner.WithFeedback(feedback),
		runner.WithLogger(k.logger),
	)
}

// userBestPath returns the best score file of a remote player, next to the
// local best file.
func userBestPath(user string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, user)
	if clean == "" {
		clean = "anonymous"
	}
	return filepath.Join(filepath.Dir(settings.BestFile), "players", clean+".best")
}
