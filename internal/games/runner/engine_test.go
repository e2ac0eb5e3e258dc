package runner

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/irr-runner/internal/config"
	"github.com/vovakirdan/irr-runner/internal/core"
)

const testDT = 0.05

// memBest is an in-memory BestStore.
type memBest struct {
	best    float64
	saves   []float64
	saveErr error
}

func (m *memBest) LoadBest() (float64, error) { return m.best, nil }

func (m *memBest) SaveBest(best float64) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.best = best
	m.saves = append(m.saves, best)
	return nil
}

// quietConfig returns the default config with no hazards spawning.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.Enabled = false
	cfg.Birds.Enabled = false
	return cfg
}

func newTestEngine(cfg config.RunnerConfig, opts ...Option) *Engine {
	world := NewWorld(80, 24, cfg, 0)
	return NewEngine(cfg, world, append([]Option{WithSeed(42)}, opts...)...)
}

func hasCue(s Snapshot, kind core.CueKind) bool {
	for _, c := range s.Cues {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

func TestEngineStartsIdle(t *testing.T) {
	e := newTestEngine(quietConfig())

	if e.Phase() != PhaseStart {
		t.Fatalf("initial phase = %v, expected start", e.Phase())
	}

	// Idle steps never accrue score
	for i := 0; i < 20; i++ {
		e.Step(testDT, Intents{})
	}
	if e.Score() != 0 {
		t.Errorf("score in start phase = %v, expected 0", e.Score())
	}

	snap := e.Step(testDT, Intents{Jump: true})
	if snap.Phase != PhaseRunning {
		t.Errorf("phase after start = %v, expected running", snap.Phase)
	}
	if !hasCue(snap, core.CueStart) {
		t.Error("starting a run should emit a start cue")
	}
}

func TestEngineWinsAfterFiftySeconds(t *testing.T) {
	store := &memBest{}
	e := newTestEngine(quietConfig(), WithBestStore(store))

	sawChase := false
	steps := 0
	in := Intents{Jump: true}
	for steps < 2000 && !e.Phase().Terminal() {
		snap := e.Step(testDT, in)
		in = Intents{}
		steps++
		if snap.Phase == PhaseChase {
			sawChase = true
		}
	}

	if e.Phase() != PhaseWin {
		t.Fatalf("phase = %v after %d steps, expected win", e.Phase(), steps)
	}
	if steps != 1000 {
		t.Errorf("win after %d steps, expected exactly 1000 (50s at 0.05s)", steps)
	}
	if e.Score() != 10 {
		t.Errorf("final score = %v, expected 10", e.Score())
	}
	if !sawChase {
		t.Error("run should pass through the chase")
	}
	if !e.ChaseTriggered() {
		t.Error("chase latch should be set after escaping")
	}
	if e.Best() != 10 || len(store.saves) != 1 || store.saves[0] != 10 {
		t.Errorf("best = %v saves = %v, expected a single save of 10", e.Best(), store.saves)
	}
}

func TestEngineGameOverSameTick(t *testing.T) {
	tests := []struct {
		name      string
		best      float64
		wantSaved bool
	}{
		{"new best", 0.5, true},
		{"below best", 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &memBest{best: tc.best}
			e := newTestEngine(quietConfig(), WithBestStore(store))

			e.Step(testDT, Intents{Jump: true})
			for i := 0; i < 99; i++ {
				e.Step(testDT, Intents{})
			}

			p := e.player
			e.spawner.obstacles = append(e.spawner.obstacles, Obstacle{
				X: p.X, Y: e.world.GroundY - 40, W: 30, H: 40,
			})

			snap := e.Step(testDT, Intents{})
			if snap.Phase != PhaseGameOver {
				t.Fatalf("phase = %v, expected gameover on the colliding tick", snap.Phase)
			}
			if !hasCue(snap, core.CueGameOver) {
				t.Error("collision should emit a gameover cue")
			}
			if saved := len(store.saves) > 0; saved != tc.wantSaved {
				t.Errorf("saved = %v, expected %v", saved, tc.wantSaved)
			}
			if tc.wantSaved && e.Best() != snap.Snapped() {
				t.Errorf("best = %v, expected snapped score %v", e.Best(), snap.Snapped())
			}
			if !tc.wantSaved && e.Best() != tc.best {
				t.Errorf("best = %v, expected unchanged %v", e.Best(), tc.best)
			}

			// Terminal phases freeze the score
			score := e.Score()
			e.Step(testDT, Intents{})
			if e.Score() != score {
				t.Errorf("score moved after gameover: %v -> %v", score, e.Score())
			}
		})
	}
}

func TestEngineBirdHitStopsHazardPass(t *testing.T) {
	e := newTestEngine(quietConfig())
	e.Step(testDT, Intents{Jump: true})
	e.Step(testDT, Intents{Jump: true})
	e.Step(testDT, Intents{})
	if e.player.Grounded {
		t.Fatal("player should be airborne")
	}

	p := e.player
	hitter := Bird{X: p.X - 10, Y: p.Y - 60, W: p.W + 40, H: p.H + 120, Phase: BirdGlide}
	// Just behind the player and below its feet: would be cleared and
	// start climbing if the pass went on.
	passed := Bird{X: p.X - 35, Y: e.world.GroundY - 30, W: 30, H: 30, Phase: BirdGlide}
	e.spawner.birds = []Bird{hitter, passed}

	snap := e.Step(testDT, Intents{})
	if snap.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, expected gameover", snap.Phase)
	}
	if hasCue(snap, core.CueBirdClimb) {
		t.Error("no bird should climb on the tick the player is hit")
	}
	if len(e.spawner.birds) != 2 {
		t.Fatalf("birds = %d, expected both kept", len(e.spawner.birds))
	}
	if got := e.spawner.birds[1]; got != passed {
		t.Errorf("bird after the hit was updated: %+v", got)
	}
}

func TestEngineBestKeptWhenSaveFails(t *testing.T) {
	store := &memBest{saveErr: errors.New("disk full")}
	e := newTestEngine(quietConfig(), WithBestStore(store))

	e.Step(testDT, Intents{Jump: true})
	for i := 0; i < 48; i++ {
		e.Step(testDT, Intents{})
	}
	e.spawner.obstacles = append(e.spawner.obstacles, Obstacle{
		X: e.player.X, Y: e.world.GroundY - 40, W: 30, H: 40,
	})
	e.Step(testDT, Intents{})

	if e.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected gameover", e.Phase())
	}
	if e.Best() != 0.5 {
		t.Errorf("in-memory best = %v, expected 0.5 despite the failed save", e.Best())
	}
}

func TestEngineRestartResetsRun(t *testing.T) {
	e := newTestEngine(quietConfig())

	e.Step(testDT, Intents{Jump: true})
	for i := 0; i < 30; i++ {
		e.Step(testDT, Intents{})
	}
	e.spawner.obstacles = append(e.spawner.obstacles, Obstacle{
		X: e.player.X, Y: e.world.GroundY - 40, W: 30, H: 40,
	})
	e.Step(testDT, Intents{})
	if e.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected gameover", e.Phase())
	}

	snap := e.Step(testDT, Intents{Jump: true})
	if snap.Phase != PhaseRunning {
		t.Fatalf("phase after restart = %v, expected running", snap.Phase)
	}
	if snap.Score > 0.0100001 {
		t.Errorf("score after restart = %v, expected a fresh run", snap.Score)
	}
	if len(snap.Obstacles) != 0 || len(snap.Birds) != 0 {
		t.Error("restart should clear hazards")
	}
	if snap.Chase.Phase != ChaseDormant {
		t.Errorf("chase phase after restart = %v, expected dormant", snap.Chase.Phase)
	}
}

func TestEngineChaseLatchesOnce(t *testing.T) {
	e := newTestEngine(quietConfig())
	cfg := e.cfg.Chase

	e.Step(testDT, Intents{Jump: true})
	for i := 0; i < 600 && e.Phase() != PhaseChase; i++ {
		e.Step(testDT, Intents{})
	}
	if e.Phase() != PhaseChase {
		t.Fatal("chase should start once the score reaches the trigger on a clear lane")
	}
	if e.Score() < cfg.TriggerScore-thresholdEpsilon {
		t.Errorf("chase started at score %v, below trigger %v", e.Score(), cfg.TriggerScore)
	}

	chaseSteps := 0
	escaped := false
	for e.Phase() == PhaseChase {
		snap := e.Step(testDT, Intents{Mash: 2})
		chaseSteps++
		if hasCue(snap, core.CueEscape) {
			if escaped {
				t.Fatal("escape cue emitted twice")
			}
			escaped = true
		}
		if snap.Chase.MashSpeed < 0 || snap.Chase.MashSpeed > cfg.MaxMashSpeed {
			t.Fatalf("mash speed %v outside [0, %v]", snap.Chase.MashSpeed, cfg.MaxMashSpeed)
		}
		if snap.Chase.Lead < 0 || snap.Chase.Lead > cfg.MaxLead {
			t.Fatalf("lead %v outside [0, %v]", snap.Chase.Lead, cfg.MaxLead)
		}
		if chaseSteps > 400 {
			t.Fatal("chase did not end")
		}
	}

	if e.Phase() != PhaseRunning {
		t.Fatalf("phase after chase = %v, expected running", e.Phase())
	}
	if !escaped {
		t.Error("escaping should emit an escape cue")
	}
	// duration plus the trip animation, the trip starting the tick after the latch
	if want := int((cfg.Duration+cfg.TripDuration)/testDT) + 1; chaseSteps < want-1 || chaseSteps > want+1 {
		t.Errorf("chase lasted %d steps, expected about %d", chaseSteps, want)
	}
	if !e.ChaseTriggered() {
		t.Fatal("chase latch should be set")
	}

	for !e.Phase().Terminal() {
		snap := e.Step(testDT, Intents{Mash: 1})
		if snap.Phase == PhaseChase {
			t.Fatal("chase re-entered in the same run")
		}
		if !snap.Chase.TriggeredThisRun {
			t.Fatal("chase latch reverted")
		}
	}
	if e.Phase() != PhaseWin {
		t.Errorf("phase = %v, expected win", e.Phase())
	}
}

func TestEngineChaseWaitsForClearLane(t *testing.T) {
	e := newTestEngine(quietConfig())

	e.Step(testDT, Intents{Jump: true})
	for e.Score() < 4.9 {
		e.Step(testDT, Intents{})
	}

	// A far obstacle keeps the lane busy past the trigger.
	e.spawner.obstacles = append(e.spawner.obstacles, Obstacle{
		X: e.world.W + 200, Y: e.world.GroundY - 1, W: 30, H: 1,
	})
	for e.Score() < 5.2 {
		e.Step(testDT, Intents{})
		if e.Phase() == PhaseGameOver {
			t.Fatal("unexpected collision")
		}
	}
	if e.Phase() != PhaseRunning || e.chase.Phase != ChasePending {
		t.Fatalf("phase = %v chase = %v, expected running with a pending chase", e.Phase(), e.chase.Phase)
	}

	e.spawner.obstacles = e.spawner.obstacles[:0]
	e.Step(testDT, Intents{})
	if e.Phase() != PhaseChase {
		t.Errorf("phase = %v, expected chase once the lane is clear", e.Phase())
	}
}

func TestEngineChaserCatchesPlayer(t *testing.T) {
	store := &memBest{}
	e := newTestEngine(quietConfig(), WithBestStore(store))

	e.Step(testDT, Intents{Jump: true})
	for i := 0; i < 600 && e.Phase() != PhaseChase; i++ {
		e.Step(testDT, Intents{})
	}
	if e.Phase() != PhaseChase {
		t.Fatal("expected chase")
	}

	e.chase.Chaser.X = e.player.X
	snap := e.Step(testDT, Intents{})
	if snap.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, expected gameover when caught", snap.Phase)
	}
	if snap.Chase.TriggeredThisRun {
		t.Error("a caught run has not escaped the chase")
	}
	if len(store.saves) != 1 {
		t.Errorf("saves = %v, expected the score to be recorded as a new best", store.saves)
	}
}

func TestEngineChaserNeverCatchesIdlePlayer(t *testing.T) {
	e := newTestEngine(quietConfig())

	e.Step(testDT, Intents{Jump: true})
	for !e.Phase().Terminal() {
		e.Step(testDT, Intents{})
	}
	if e.Phase() != PhaseWin {
		t.Errorf("phase = %v, expected win without any mashing", e.Phase())
	}
}

func TestEngineDoubleJump(t *testing.T) {
	cfg := quietConfig()
	cfg.Birds.Enabled = true
	cfg.Birds.SpawnMin = 0.1
	cfg.Birds.SpawnMax = 0.2
	e := newTestEngine(cfg)

	e.Step(testDT, Intents{Jump: true})
	for i := 0; i < 200 && len(e.spawner.birds) == 0; i++ {
		e.Step(testDT, Intents{})
	}
	if len(e.spawner.birds) == 0 {
		t.Fatal("expected a bird to spawn")
	}
	if !e.doubleJump.Active || e.doubleJump.Used {
		t.Fatalf("double jump = %+v, expected a fresh charge", e.doubleJump)
	}

	// Wait until grounded, then jump, double jump, and try a third jump.
	for !e.player.Grounded {
		e.Step(testDT, Intents{})
	}
	snap := e.Step(testDT, Intents{Jump: true})
	if !hasCue(snap, core.CueJump) {
		t.Fatal("grounded jump should emit a jump cue")
	}
	snap = e.Step(testDT, Intents{Jump: true})
	if !hasCue(snap, core.CueDoubleJump) {
		t.Fatal("airborne jump with a bird on screen should double jump")
	}
	if !snap.DoubleJump.Used {
		t.Error("double jump should be spent")
	}
	vy := snap.Player.VY
	snap = e.Step(testDT, Intents{Jump: true})
	if hasCue(snap, core.CueDoubleJump) || hasCue(snap, core.CueJump) {
		t.Error("third jump should be ignored")
	}
	if snap.Player.VY <= vy {
		t.Errorf("ignored jump changed velocity: %v -> %v", vy, snap.Player.VY)
	}
}

func TestEngineNoDoubleJumpWithoutBirds(t *testing.T) {
	e := newTestEngine(quietConfig())

	e.Step(testDT, Intents{Jump: true})
	e.Step(testDT, Intents{Jump: true})
	snap := e.Step(testDT, Intents{Jump: true})

	if hasCue(snap, core.CueDoubleJump) {
		t.Error("double jump should require a bird on screen")
	}
	if snap.DoubleJump.Active {
		t.Error("no charge should exist without birds")
	}
}

func TestEngineFastFall(t *testing.T) {
	fall := func(fast bool) float64 {
		e := newTestEngine(quietConfig())
		e.Step(testDT, Intents{Jump: true})
		e.Step(testDT, Intents{Jump: true})
		for i := 0; i < 5; i++ {
			e.Step(testDT, Intents{FastFall: fast})
		}
		return e.player.VY
	}

	if normal, fast := fall(false), fall(true); fast <= normal {
		t.Errorf("fast-fall vy = %v, expected more than normal %v", fast, normal)
	}
}

// TestEngineSpacingSoak plays seeded runs with random jumps and checks the
// hazard spacing guarantees after every tick.
func TestEngineSpacingSoak(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1234, 99999} {
		cfg := config.DefaultRunnerConfig()
		e := NewEngine(cfg, NewWorld(80, 24, cfg, 0), WithSeed(seed))
		input := rand.New(rand.NewSource(seed))

		prevScore := 0.0
		for i := 0; i < 6000; i++ {
			in := Intents{Jump: input.Intn(12) == 0, Mash: input.Intn(3)}
			if e.Phase().Terminal() {
				in.Jump = true
				prevScore = 0
			}
			snap := e.Step(testDT, in)
			if snap.Phase.Terminal() {
				continue
			}

			if snap.Score < prevScore || snap.Score > cfg.Score.Win {
				t.Fatalf("seed %d tick %d: score %v after %v", seed, i, snap.Score, prevScore)
			}
			prevScore = snap.Score

			gap := e.spawner.ObstacleMinGap(snap.WorldSpeed)
			for j := 1; j < len(snap.Obstacles); j++ {
				prev, curr := snap.Obstacles[j-1], snap.Obstacles[j]
				if curr.X-(prev.X+prev.W) < gap-1e-6 {
					t.Fatalf("seed %d tick %d: obstacle gap %v < %v", seed, i, curr.X-(prev.X+prev.W), gap)
				}
			}

			safe := e.spawner.BirdSafeGap(snap.WorldSpeed)
			for _, b := range snap.Birds {
				for _, o := range snap.Obstacles {
					if o.X >= b.X && o.X < b.X+b.W+safe {
						t.Fatalf("seed %d tick %d: obstacle at %v inside bird lane [%v, %v)", seed, i, o.X, b.X, b.X+b.W+safe)
					}
				}
			}

			if snap.DoubleJump.Used && !snap.DoubleJump.Active {
				t.Fatalf("seed %d tick %d: spent charge without a grant", seed, i)
			}
			if snap.Phase == PhaseRunning && len(snap.Birds) == 0 && snap.DoubleJump.Active {
				t.Fatalf("seed %d tick %d: charge kept with no birds", seed, i)
			}
			if len(snap.Chase.Particles) > cfg.Chase.MaxParticles {
				t.Fatalf("seed %d tick %d: %d particles", seed, i, len(snap.Chase.Particles))
			}
		}
	}
}

func TestEngineDeterminism(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	run := func() []uint64 {
		e := NewEngine(cfg, NewWorld(80, 24, cfg, 0), WithSeed(12345))
		hashes := make([]uint64, 0, 1500)
		for i := 0; i < 1500; i++ {
			in := Intents{Jump: i%17 == 0 || e.Phase().Terminal(), Mash: i % 2}
			hashes = append(hashes, e.Step(testDT, in).Hash())
		}
		return hashes
	}

	h1, h2 := run(), run()
	for i := range h1 {
		if h1[i] != h2[i] {
			t.Fatalf("determinism failed at tick %d: %x != %x", i, h1[i], h2[i])
		}
	}
}

func TestEngineClampsLargeDelta(t *testing.T) {
	e := newTestEngine(quietConfig())
	e.Step(testDT, Intents{Jump: true})

	before := e.Score()
	e.Step(10, Intents{})
	if got := e.Score() - before; got > core.MaxStepDelta*0.2+1e-12 {
		t.Errorf("score advanced %v in one step, expected at most %v", got, core.MaxStepDelta*0.2)
	}

	before = e.Score()
	e.Step(-1, Intents{})
	if e.Score() != before {
		t.Error("negative delta should not advance the simulation")
	}
}

func TestEngineResizeKeepsRun(t *testing.T) {
	e := newTestEngine(quietConfig())
	e.Step(testDT, Intents{Jump: true})
	for i := 0; i < 40; i++ {
		e.Step(testDT, Intents{})
	}

	cfg := quietConfig()
	e.Resize(NewWorld(120, 40, cfg, 0))
	if e.Phase() != PhaseRunning {
		t.Errorf("phase after resize = %v, expected running", e.Phase())
	}
	if got, want := e.player.Y+e.player.H, e.world.GroundY; got != want {
		t.Errorf("grounded player bottom = %v, expected ground %v", got, want)
	}
	if e.player.X != e.world.DefaultPlayerX {
		t.Errorf("player x = %v, expected %v", e.player.X, e.world.DefaultPlayerX)
	}
}
