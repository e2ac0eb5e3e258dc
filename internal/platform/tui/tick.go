// Package tui runs the runner in a terminal with Bubble Tea: the frame loop,
// key handling, run history screens and the SSH server for remote play.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/irr-runner/internal/core"
)

// Frame rate bounds.
const (
	minFPS = 1
	maxFPS = 240
)

// TickMsg carries the wall time of one frame.
type TickMsg time.Time

// frameInterval returns the delay between frames at fps, clamped to a sane range.
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = core.DefaultTickRate
	}
	fps = max(minFPS, min(maxFPS, fps))
	return time.Second / time.Duration(fps)
}

// tickCmd schedules the next frame.
func tickCmd(fps int) tea.Cmd {
	return tea.Tick(frameInterval(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
