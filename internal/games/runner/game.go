package runner

import (
	"github.com/vovakirdan/irr-runner/internal/assets"
	"github.com/vovakirdan/irr-runner/internal/config"
	"github.com/vovakirdan/irr-runner/internal/core"
)

// Game adapts the Engine to the platform: it maps input frames to intents,
// owns pause and draws the latest snapshot.
type Game struct {
	cfg      config.RunnerConfig
	sprites  assets.Set
	opts     []Option
	engine   *Engine
	renderer *Renderer
	input    InputBuffer
	snap     Snapshot
	paused   bool
}

// New creates a runner game. Reset must be called before Step.
func New(cfg config.RunnerConfig, sprites assets.Set, opts ...Option) *Game {
	g := &Game{
		cfg:      cfg,
		sprites:  sprites,
		opts:     opts,
		renderer: NewRenderer(sprites, cfg.Chase.MaxMashSpeed),
	}
	g.renderer.title = g.Title()
	return g
}

// ID returns the identifier used for score storage.
func (g *Game) ID() string {
	return "runner"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "IRR Runner"
}

// Reset builds a fresh engine sized for the runtime screen.
func (g *Game) Reset(rc core.RuntimeConfig) {
	opts := append([]Option(nil), g.opts...)
	if rc.Seed != 0 {
		opts = append(opts, WithSeed(rc.Seed))
	}
	g.engine = NewEngine(g.cfg, g.world(rc.ScreenW, rc.ScreenH), opts...)
	g.snap = g.engine.Snapshot()
	g.input.Drain()
	g.input.SetFastFall(false)
	g.paused = false
}

// Resize adapts the playfield to a new terminal size without restarting.
func (g *Game) Resize(cols, rows int) {
	g.engine.Resize(g.world(cols, rows))
	g.snap = g.engine.Snapshot()
}

func (g *Game) world(cols, rows int) World {
	vp := g.cfg.Viewport
	return NewWorld(cols, rows, g.cfg, g.sprites.Player.Aspect(vp.CellWidth, vp.CellHeight))
}

// Step advances the game by dt seconds. Input arriving while paused is
// dropped rather than replayed on resume.
func (g *Game) Step(dt float64, in core.InputFrame) core.StepResult {
	g.input.Feed(in)
	if in.Has(core.ActionPause) && g.snap.Phase.Active() {
		g.paused = !g.paused
	}
	if g.paused {
		g.input.Drain()
		return core.StepResult{State: g.State()}
	}

	g.snap = g.engine.Step(dt, g.input.Drain())
	return core.StepResult{State: g.State(), Cues: g.snap.Cues}
}

// Render draws the latest snapshot.
func (g *Game) Render(dst *core.Screen) {
	g.renderer.Draw(dst, g.snap)
	if g.paused {
		g.renderer.drawCenterText(dst, "PAUSED", "Press P to resume", g.snap.Night())
	}
}

// Snapshot returns the snapshot produced by the latest step.
func (g *Game) Snapshot() Snapshot {
	return g.snap
}

// State returns the platform view of the run.
func (g *Game) State() core.GameState {
	s := core.GameState{
		Score:    g.snap.Snapped(),
		Best:     g.snap.Best,
		Phase:    g.snap.Phase.String(),
		Chased:   g.snap.Chase.TriggeredThisRun,
		GameOver: g.snap.Phase.Terminal(),
		Paused:   g.paused,
	}
	switch g.snap.Phase {
	case PhaseGameOver:
		s.Outcome = core.OutcomeGameOver
	case PhaseWin:
		s.Outcome = core.OutcomeWin
	}
	return s
}
