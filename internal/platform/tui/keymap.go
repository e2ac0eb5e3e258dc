package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/irr-runner/internal/core"
)

// KeyMapper translates Bubble Tea key messages to runner actions.
// Terminals only report presses, so the mapper drops auto-repeat for edge
// actions and stretches each fast-fall press into a short held window.
type KeyMapper struct {
	repeatWindow time.Duration
	holdWindow   time.Duration

	lastKey       string
	lastAt        time.Time
	fastFallUntil time.Time
}

// NewKeyMapper creates a key mapper. Presses of the same key closer than
// repeatWindow are treated as auto-repeat; a fast-fall press counts as held
// for holdWindow.
func NewKeyMapper(repeatWindow, holdWindow time.Duration) *KeyMapper {
	return &KeyMapper{
		repeatWindow: repeatWindow,
		holdWindow:   holdWindow,
	}
}

// MapKey translates a key to actions.
// Returns the actions (may be empty) and whether it's a quit request.
func (km *KeyMapper) MapKey(key string, now time.Time) (actions []core.Action, isQuit bool) {
	switch key {
	case "ctrl+c", "q":
		return nil, true
	case "down", "s":
		// Repeats keep the hold alive
		km.fastFallUntil = now.Add(km.holdWindow)
		return []core.Action{core.ActionFastFall}, false
	case "p", "esc":
		return []core.Action{core.ActionPause}, false
	}

	if km.isRepeat(key, now) {
		return nil, false
	}

	switch key {
	case " ":
		return []core.Action{core.ActionJump, core.ActionMash}, false
	case "up", "w":
		return []core.Action{core.ActionJump}, false
	case "r", "enter":
		return []core.Action{core.ActionRestart}, false
	}
	return nil, false
}

// isRepeat reports whether key arrived within the repeat window of the same key.
// Every press moves the window, so a held key stays filtered.
func (km *KeyMapper) isRepeat(key string, now time.Time) bool {
	repeat := key == km.lastKey && km.repeatWindow > 0 && now.Sub(km.lastAt) < km.repeatWindow
	km.lastKey = key
	km.lastAt = now
	return repeat
}

// FastFallHeld reports whether a fast-fall press is still considered held at now.
func (km *KeyMapper) FastFallHeld(now time.Time) bool {
	return now.Before(km.fastFallUntil)
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, now time.Time, frame *core.InputFrame) bool {
	actions, isQuit := km.MapKey(msg.String(), now)
	for _, a := range actions {
		frame.Set(a)
	}
	return isQuit
}
