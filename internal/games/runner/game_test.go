package runner

import (
	"strings"
	"testing"

	"github.com/vovakirdan/irr-runner/internal/assets"
	"github.com/vovakirdan/irr-runner/internal/core"
)

func newTestGame() *Game {
	g := New(quietConfig(), assets.Placeholders())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	return g
}

func screenContains(s *core.Screen, text string) bool {
	return strings.Contains(s.String(), text)
}

func TestGameIdentity(t *testing.T) {
	g := New(quietConfig(), assets.Placeholders())
	if g.ID() != "runner" {
		t.Errorf("ID() = %q, expected runner", g.ID())
	}
	if g.Title() == "" {
		t.Error("Title() should not be empty")
	}
}

func TestGameStartAndState(t *testing.T) {
	g := newTestGame()

	if st := g.State(); st.Phase != "start" || st.GameOver {
		t.Errorf("initial state = %+v", st)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	res := g.Step(testDT, in)

	if res.State.Phase != "running" {
		t.Errorf("phase = %q, expected running", res.State.Phase)
	}
	if len(res.Cues) == 0 || res.Cues[0].Kind != core.CueStart {
		t.Errorf("cues = %v, expected a start cue", res.Cues)
	}
	if res.State.Score != 0.01 {
		t.Errorf("score = %v, expected 0.01", res.State.Score)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame()
	start := core.NewInputFrame()
	start.Set(core.ActionJump)
	g.Step(testDT, start)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	res := g.Step(testDT, pause)
	if !res.State.Paused {
		t.Fatal("expected paused")
	}

	score := res.State.Score
	for i := 0; i < 10; i++ {
		res = g.Step(testDT, core.NewInputFrame())
	}
	if res.State.Score != score {
		t.Errorf("score moved while paused: %v -> %v", score, res.State.Score)
	}

	res = g.Step(testDT, pause)
	if res.State.Paused {
		t.Error("second pause should resume")
	}
}

func TestGameDropsInputWhilePaused(t *testing.T) {
	g := newTestGame()
	start := core.NewInputFrame()
	start.Set(core.ActionJump)
	g.Step(testDT, start)
	for !g.Snapshot().Player.Grounded {
		g.Step(testDT, core.NewInputFrame())
	}

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(testDT, pause)

	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	g.Step(testDT, jump)

	res := g.Step(testDT, pause)
	if res.State.Paused {
		t.Fatal("expected resumed")
	}
	if hasCue(g.Snapshot(), core.CueJump) || !g.Snapshot().Player.Grounded {
		t.Error("a jump pressed while paused should not fire on resume")
	}
}

func TestGameOutcome(t *testing.T) {
	g := newTestGame()
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	g.Step(testDT, in)

	var st core.GameState
	for i := 0; i < 1200 && !st.GameOver; i++ {
		st = g.Step(testDT, core.NewInputFrame()).State
	}

	if st.Outcome != core.OutcomeWin || !st.GameOver {
		t.Errorf("state = %+v, expected a won run", st)
	}
	if !st.Chased {
		t.Error("a won quiet run escapes the chase")
	}
	if st.Best != 10 {
		t.Errorf("best = %v, expected 10", st.Best)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame()
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !screenContains(screen, "Press Space to start") {
		t.Error("start screen should prompt for Space")
	}
	if !screenContains(screen, g.Title()) {
		t.Errorf("start screen should show the title %q", g.Title())
	}

	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	g.Step(testDT, in)
	g.Render(screen)

	if !screenContains(screen, "IRR 0.01%") {
		t.Errorf("HUD missing score, row 0 = %q", screen.Row(0))
	}
	if !screenContains(screen, "Best IRR 0.00%") {
		t.Errorf("HUD missing best, row 1 = %q", screen.Row(1))
	}

	_, gy := g.Snapshot().World.ToCell(0, g.Snapshot().World.GroundY)
	if !strings.ContainsRune(screen.Row(gy), GroundChar) {
		t.Errorf("ground row %d = %q", gy, screen.Row(gy))
	}

	// Player placeholder sits just above the ground line
	px, _ := g.Snapshot().World.ToCell(g.Snapshot().Player.X, 0)
	if screen.Get(px, gy-1) == ' ' {
		t.Error("player should be drawn above the ground")
	}
}

func TestGameRenderChase(t *testing.T) {
	g := newTestGame()
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	g.Step(testDT, in)
	for i := 0; i < 600 && g.Snapshot().Phase != PhaseChase; i++ {
		g.Step(testDT, core.NewInputFrame())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !screenContains(screen, "CHASE") {
		t.Error("chase HUD missing")
	}
	if !screenContains(screen, "tap rapidly to escape") {
		t.Error("chase instruction missing")
	}
}

func TestGameRenderNightPalette(t *testing.T) {
	var s Snapshot
	s.Score = 1.5
	if !s.Night() {
		t.Error("score 1.5 should be night")
	}
	s.Score = 2.1
	if s.Night() {
		t.Error("score 2.1 should be day")
	}
}

func TestRendererMashBar(t *testing.T) {
	r := NewRenderer(assets.Placeholders(), 1000)

	tests := []struct {
		speed  float64
		filled int
	}{
		{0, 0},
		{500, 10},
		{1000, 20},
		{5000, 20},
	}
	for _, tc := range tests {
		bar := r.mashBar(tc.speed)
		if got := strings.Count(bar, string(MashFull)); got != tc.filled {
			t.Errorf("mashBar(%v) filled %d, expected %d", tc.speed, got, tc.filled)
		}
	}
}

func TestGameResize(t *testing.T) {
	g := newTestGame()
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	g.Step(testDT, in)

	g.Resize(120, 40)
	if w := g.Snapshot().World; w.W != 1200 || w.H != 800 {
		t.Errorf("world after resize = %vx%v", w.W, w.H)
	}
	if g.State().Phase != "running" {
		t.Errorf("phase after resize = %q", g.State().Phase)
	}
}
