package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/irr-runner/internal/platform/tui"
	"github.com/vovakirdan/irr-runner/internal/storage"
	"github.com/vovakirdan/irr-runner/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the runner SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own run. Every player keeps a personal best;
run history is shared by all users of the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.irr-runner/host_key

Examples:
  runner serve                           # Listen on :2222
  runner serve --ssh :2323               # Listen on port 2323
  runner serve --host-key ./my_host_key  # Use specific host key
  runner serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("ssh", ":2222", "SSH server address (host:port)")
	serveCmd.Flags().String("host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().Duration("idle-timeout", 0, "Idle timeout before disconnecting (default 10m)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	kit, err := loadKit(cmd.Context(), logger)
	if err != nil {
		return err
	}

	metrics, err := telemetry.New()
	if err != nil {
		return err
	}

	store, err := storage.Open(settings.DBPath)
	if err != nil {
		logger.Warn("could not open run history", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = settings.SSH.Addr
	cfg.HostKeyPath = settings.SSH.HostKey
	if settings.SSH.IdleTimeout > 0 {
		cfg.IdleTimeout = settings.SSH.IdleTimeout
	}
	cfg.TickRate = settings.FPS
	cfg.Input = settings.Input

	newGame := func(user string) tui.Game {
		return kit.newGame(userBestPath(user), metrics)
	}
	server, err := tui.NewSSHServer(cfg, newGame, store, metrics, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Starting runner SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe(cmd.Context())
}
