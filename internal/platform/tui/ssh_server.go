package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/irr-runner/internal/config"
	"github.com/vovakirdan/irr-runner/internal/core"
	"github.com/vovakirdan/irr-runner/internal/storage"
	"github.com/vovakirdan/irr-runner/internal/telemetry"
)

const (
	defaultHostKey  = "~/.irr-runner/host_key"
	shutdownTimeout = 10 * time.Second
)

// SSHServerConfig configures serve mode.
type SSHServerConfig struct {
	Address     string        // host:port, ":2222" by default
	HostKeyPath string        // generated on first start when missing
	IdleTimeout time.Duration // idle connections are dropped after this
	TickRate    int
	Input       config.InputSettings
}

// DefaultSSHServerConfig mirrors the stock settings.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":2222",
		IdleTimeout: 10 * time.Minute,
		TickRate:    60,
		Input: config.InputSettings{
			RepeatWindow: 45 * time.Millisecond,
			FastFallHold: 180 * time.Millisecond,
		},
	}
}

// GameFactory builds the game for one SSH user.
type GameFactory func(user string) Game

// SSHServer hosts one independent run per SSH connection.
type SSHServer struct {
	cfg     SSHServerConfig
	server  *ssh.Server
	newGame GameFactory
	store   *storage.Store
	metrics *telemetry.Recorder
	logger  *log.Logger
}

// NewSSHServer prepares the host key and the wish server. store and metrics may be nil.
func NewSSHServer(cfg SSHServerConfig, newGame GameFactory, store *storage.Store, metrics *telemetry.Recorder, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "runner-ssh"})
	}
	if cfg.HostKeyPath == "" {
		cfg.HostKeyPath = config.ExpandHome(defaultHostKey)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.HostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: create host key directory: %w", err)
	}

	s := &SSHServer{cfg: cfg, newGame: newGame, store: store, metrics: metrics, logger: logger}

	// Middlewares run last to first: session tracking wraps the game.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.session),
			s.track,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: create SSH server: %w", err)
	}
	s.server = server
	return s, nil
}

// session builds the Bubble Tea model for one connection. Clients without
// a PTY get no program.
func (s *SSHServer) session(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	user := sess.User()
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", user)
		wish.Fatalln(sess, "irr-runner needs an interactive terminal (ssh -t)")
		return nil, nil
	}

	rc := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.cfg.TickRate,
	}
	m := NewModel(s.newGame(user), rc, Options{
		Store:   s.store,
		Metrics: s.metrics,
		Player:  user,
		Logger:  s.logger.With("user", user),
		Input:   s.cfg.Input,
	})
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) track(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if s.metrics != nil {
			s.metrics.SessionOpened()
			defer s.metrics.SessionClosed()
		}
		logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		started := time.Now()
		logger.Info("session started")
		next(sess)
		logger.Info("session ended", "after", time.Since(started).Round(time.Second))
	}
}

// ListenAndServe serves until ctx is done, SIGINT or SIGTERM arrives, or the
// listener fails. Shutdown is graceful in the first two cases.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("starting SSH server", "address", s.cfg.Address)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("tui: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")
		return s.Shutdown()
	})
	return g.Wait()
}

// Shutdown stops accepting connections and waits for open sessions.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
