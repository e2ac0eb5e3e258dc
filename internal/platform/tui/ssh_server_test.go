package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/irr-runner/internal/assets"
	"github.com/vovakirdan/irr-runner/internal/config"
	"github.com/vovakirdan/irr-runner/internal/games/runner"
)

func TestNewSSHServerCreatesHostKey(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")

	factory := func(string) Game { return runner.New(config.DefaultRunnerConfig(), assets.Placeholders()) }
	srv, err := NewSSHServer(cfg, factory, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
	if _, err := os.Stat(cfg.HostKeyPath); err != nil {
		t.Errorf("host key not written: %v", err)
	}
}
