package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/irr-runner/internal/config"
	"github.com/vovakirdan/irr-runner/internal/core"
	"github.com/vovakirdan/irr-runner/internal/storage"
	"github.com/vovakirdan/irr-runner/internal/telemetry"
)

// Minimum terminal size the playfield is simulated at.
const (
	MinWidth  = 40
	MinHeight = 12
)

// Game is what the model drives. The simulation stays free of Bubble Tea;
// the model owns timing, input and persistence.
type Game interface {
	// ID identifies the game in screenshots and logs.
	ID() string

	// Reset starts a fresh session sized for the runtime screen.
	Reset(cfg core.RuntimeConfig)

	// Resize adapts the playfield to a new terminal size without restarting.
	Resize(cols, rows int)

	// Step advances the simulation by dt seconds with the tick's input.
	Step(dt float64, in core.InputFrame) core.StepResult

	// Render draws the current state into the screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Options wires the model to persistence and instrumentation.
// Zero values disable the corresponding feature.
type Options struct {
	Store         *storage.Store
	Metrics       *telemetry.Recorder
	Player        string // Name recorded with each run
	Logger        *log.Logger
	Input         config.InputSettings
	ScreenshotDir string
}

// Model is the Bubble Tea model for a runner session.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keys       *KeyMapper
	stepper    *core.Stepper
	inputFrame core.InputFrame
	gameState  core.GameState
	runTime    float64 // Simulated seconds of the current run
	quitting   bool
	tooSmall   bool
	clock      func() time.Time
}

// NewModel creates a Bubble Tea model for the given game and resets it.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	cfg = cfg.WithDefaults()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	game.Reset(cfg)
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		keys:       NewKeyMapper(opts.Input.RepeatWindow, opts.Input.FastFallHold),
		stepper:    core.NewStepper(core.MaxStepDelta),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		tooSmall:   cfg.ScreenW < MinWidth || cfg.ScreenH < MinHeight,
		clock:      time.Now,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	actions, isQuit := m.keys.MapKey(msg.String(), m.clock())
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	for _, a := range actions {
		// Restart is only meaningful once the run has ended
		if a == core.ActionRestart && !m.gameState.GameOver {
			continue
		}
		m.inputFrame.Set(a)
	}
	return m, nil
}

// handleResize adapts the playfield without restarting the run.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	wasSmall := m.tooSmall
	m.tooSmall = msg.Width < MinWidth || msg.Height < MinHeight
	if m.tooSmall {
		return m, nil
	}
	m.game.Resize(msg.Width, msg.Height)
	if wasSmall {
		// Time spent below the minimum size is not simulated.
		m.stepper.Reset()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.stepper.Next(now)
	if m.tooSmall {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if m.keys.FastFallHeld(now) && !m.inputFrame.Has(core.ActionFastFall) {
		m.inputFrame.Set(core.ActionFastFall)
	}

	prev := m.gameState
	result := m.game.Step(dt, m.inputFrame)
	m.gameState = result.State

	switch {
	case m.gameState.Paused:
	case !activePhase(prev.Phase) && activePhase(m.gameState.Phase):
		m.runTime = dt
	case activePhase(prev.Phase):
		m.runTime += dt
	}

	if m.gameState.GameOver && !prev.GameOver {
		m.recordRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func activePhase(phase string) bool {
	return phase == "running" || phase == "chase"
}

// recordRun stores a finished run in history and metrics.
func (m *Model) recordRun() {
	s := m.gameState
	m.opts.Logger.Debug("run finished",
		"outcome", s.Outcome,
		"score", s.Score,
		"chased", s.Chased,
		"seconds", m.runTime,
	)

	if m.opts.Metrics != nil {
		m.opts.Metrics.RunFinished(s.Outcome, s.Score, s.Chased)
	}
	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveRun(storage.RunRecord{
		Player:   m.opts.Player,
		Score:    s.Score,
		Outcome:  s.Outcome,
		Chased:   s.Chased,
		Duration: time.Duration(m.runTime * float64(time.Second)),
		Seed:     m.config.Seed,
	})
	if err != nil {
		m.opts.Logger.Warn("could not record run", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = config.ExpandHome("~/.irr-runner/screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot dir", "dir", dir, "err", err)
		return
	}

	timestamp := m.clock().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "path", path, "err", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

func (m *Model) render() {
	if m.tooSmall {
		renderTooSmall(m.screen, MinWidth, MinHeight)
		return
	}
	m.game.Render(m.screen)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen)
}

// State returns the latest game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
