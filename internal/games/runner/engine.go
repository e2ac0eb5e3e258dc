// Package runner implements the endless runner simulation: run phases,
// player physics, hazard spawning with spacing guarantees, the mash-to-escape
// chase and score tracking. The engine is pure logic driven by Step and
// exposes a read-only Snapshot for rendering.
package runner

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/irr-runner/internal/config"
	"github.com/vovakirdan/irr-runner/internal/core"
)

// Durations of the engine's banners.
const (
	birdWarningDuration  = 2.3
	chasePendingDuration = 1.5
	chaseStartDuration   = 1.2
	escapedDuration      = 1.1
)

// Engine owns all mutable simulation state for one player.
type Engine struct {
	cfg        config.RunnerConfig
	world      World
	rng        *rand.Rand
	difficulty *config.DifficultyManager
	spawner    *Spawner
	chase      *ChaseSession
	score      *ScoreTracker

	phase        Phase
	tick         uint64
	elapsed      float64 // Seconds simulated in the current run
	worldSpeed   float64
	groundOffset float64
	player       Player
	fastFall     bool
	doubleJump   DoubleJump
	message      Message
	cues         []core.Cue

	feedback core.Feedback
	log      *log.Logger
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	seed     int64
	seeded   bool
	store    BestStore
	feedback core.Feedback
	logger   *log.Logger
}

// WithSeed fixes the RNG seed for reproducible runs.
func WithSeed(seed int64) Option {
	return func(o *engineOptions) {
		o.seed = seed
		o.seeded = true
	}
}

// WithBestStore loads the best score from store and persists new bests to it.
func WithBestStore(store BestStore) Option {
	return func(o *engineOptions) { o.store = store }
}

// WithFeedback routes cues to f.
func WithFeedback(f core.Feedback) Option {
	return func(o *engineOptions) { o.feedback = f }
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// NewEngine creates an engine in the Start phase.
func NewEngine(cfg config.RunnerConfig, world World, opts ...Option) *Engine {
	o := engineOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded {
		o.seed = time.Now().UnixNano()
	}
	if o.feedback == nil {
		o.feedback = core.NopFeedback{}
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	rng := rand.New(rand.NewSource(o.seed))
	e := &Engine{
		cfg:        cfg,
		world:      world,
		rng:        rng,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		spawner:    NewSpawner(cfg.Obstacles, cfg.Birds, cfg.Physics.BaseSpeed, rng),
		chase:      newChaseSession(cfg.Chase),
		feedback:   o.feedback,
		log:        o.logger,
	}

	var best float64
	if o.store != nil {
		b, err := o.store.LoadBest()
		if err != nil {
			e.log.Warn("load best score", "err", err)
		} else {
			best = b
		}
	}
	e.score = newScoreTracker(cfg.Score.Rate, cfg.Score.Win, best, o.store)

	e.resetRun()
	e.phase = PhaseStart
	return e
}

// Phase returns the current run phase.
func (e *Engine) Phase() Phase { return e.phase }

// Score returns the current score.
func (e *Engine) Score() float64 { return e.score.Value() }

// Best returns the best snapped score.
func (e *Engine) Best() float64 { return e.score.Best() }

// World returns the current playfield geometry.
func (e *Engine) World() World { return e.world }

// ChaseTriggered reports whether the chase has happened this run.
func (e *Engine) ChaseTriggered() bool { return e.chase.Phase.Triggered() }

// Step advances the simulation by dt seconds and returns the resulting snapshot.
// dt is clamped to [0, core.MaxStepDelta]. Intents are applied before the
// phase update, matching input that arrived between frames.
func (e *Engine) Step(dt float64, in Intents) Snapshot {
	dt = core.ClampDelta(dt, core.MaxStepDelta)
	e.tick++
	e.cues = e.cues[:0]

	e.applyIntents(in)

	switch e.phase {
	case PhaseRunning:
		e.updateRunning(dt)
	case PhaseChase:
		e.updateChase(dt)
	default:
		e.message.tick(dt)
	}
	return e.Snapshot()
}

// Resize adopts new playfield geometry, re-anchoring grounded entities.
func (e *Engine) Resize(w World) {
	e.world = w
	e.player.W = w.PlayerW
	e.player.H = w.PlayerH
	if e.phase != PhaseChase && e.chase.Phase != ChaseReturning {
		e.player.X = w.DefaultPlayerX
	}
	if !e.phase.Active() || e.player.Grounded {
		e.player.Y = w.GroundY - e.player.H
		e.player.VY = 0
		e.player.Grounded = true
	}
	for i := range e.spawner.obstacles {
		o := &e.spawner.obstacles[i]
		o.Y = w.GroundY - o.H
	}
	if !e.chase.Chaser.Tripped {
		e.chase.Chaser.Y = w.GroundY - e.chase.Chaser.H
	}
}

func (e *Engine) applyIntents(in Intents) {
	e.fastFall = in.FastFall

	switch e.phase {
	case PhaseStart, PhaseGameOver, PhaseWin:
		if in.Jump {
			e.startRun()
		}
	case PhaseRunning:
		if in.Jump {
			e.requestJump()
		}
	case PhaseChase:
		for i := 0; i < in.Mash; i++ {
			e.emit(core.CueMash, e.chase.pulse())
		}
	}
}

// resetRun clears all run-scoped state.
func (e *Engine) resetRun() {
	e.score.reset()
	e.elapsed = 0
	e.worldSpeed = e.speedAt(0, 0)
	e.spawner.reset(e.worldSpeed)
	e.groundOffset = 0
	e.message = Message{}
	e.doubleJump = DoubleJump{}
	e.chase.reset(e.world)
	e.player = Player{
		X:        e.world.DefaultPlayerX,
		Y:        e.world.GroundY - e.world.PlayerH,
		W:        e.world.PlayerW,
		H:        e.world.PlayerH,
		Grounded: true,
	}
}

func (e *Engine) startRun() {
	e.resetRun()
	e.setPhase(PhaseRunning)
	e.emit(core.CueStart, 0)
}

// finish ends the run in GameOver or Win and persists a new best.
func (e *Engine) finish(outcome Phase) {
	e.setPhase(outcome)
	e.chase.abort()

	newBest, err := e.score.finish()
	if err != nil {
		e.log.Warn("save best score", "best", e.score.Best(), "err", err)
	}
	if newBest {
		e.log.Debug("new best", "score", e.score.Best())
	}

	if outcome == PhaseWin {
		e.emit(core.CueWin, 0)
	} else {
		e.emit(core.CueGameOver, 0)
	}
}

func (e *Engine) setPhase(p Phase) {
	if p == e.phase {
		return
	}
	e.log.Debug("phase", "from", e.phase, "to", p, "score", e.score.Value())
	e.phase = p
}

func (e *Engine) emit(kind core.CueKind, intensity float64) {
	c := core.Cue{Kind: kind, Intensity: intensity}
	e.cues = append(e.cues, c)
	e.feedback.Play(c)
}

func (e *Engine) speedAt(score, elapsed float64) float64 {
	return e.difficulty.Speed(e.cfg.Physics.BaseSpeed, score, elapsed)
}

func (e *Engine) scrollGround(speed, dt float64) {
	e.groundOffset = math.Mod(e.groundOffset+speed*dt, groundPeriod)
}

func (e *Engine) updateRunning(dt float64) {
	if e.score.add(dt) {
		e.finish(PhaseWin)
		return
	}

	e.message.tick(dt)
	e.spawner.tickLock(dt)

	e.elapsed += dt
	e.worldSpeed = e.speedAt(e.score.Value(), e.elapsed)
	e.scrollGround(e.worldSpeed, dt)

	e.integratePlayer(dt)
	e.chase.settle(dt, &e.player, e.world)

	s := e.spawner
	allowSpawns := !e.chase.Phase.BlocksSpawns()

	if allowSpawns && e.cfg.Obstacles.Enabled && s.groundSpawnOpen() {
		s.spawnTimer -= dt
		if s.spawnTimer <= 0 {
			s.spawnObstacle(e.world, e.player, e.worldSpeed)
			s.spawnTimer = s.nextSpawnDelay(e.worldSpeed)
		}
	}

	if e.moveObstacles(dt) {
		e.finish(PhaseGameOver)
		return
	}

	if allowSpawns && e.cfg.Birds.Enabled {
		s.birdSpawnTimer -= dt
		if s.birdSpawnTimer <= 0 {
			if s.spawnBird(e.world, e.player, e.worldSpeed) {
				// A new bird sequence grants a fresh charge; later birds
				// in the same sequence keep a spent charge spent.
				e.doubleJump = DoubleJump{Active: true}
			}
			e.message.show(e.cfg.Messages.BirdWarning, birdWarningDuration)
			s.birdSpawnTimer = s.nextBirdSpawnDelay(e.worldSpeed)
		}
	}

	if e.moveBirds(dt) {
		e.finish(PhaseGameOver)
		return
	}

	if len(s.birds) == 0 {
		e.doubleJump = DoubleJump{}
		s.birdsCleared(e.worldSpeed)
	}

	s.restoreSpacing(e.worldSpeed)

	if e.chase.Phase == ChaseDormant && e.cfg.Chase.Enabled && e.score.reached(e.cfg.Chase.TriggerScore) {
		e.chase.Phase = ChasePending
		e.message.show(e.cfg.Messages.ChasePending, chasePendingDuration)
		e.log.Debug("chase pending", "score", e.score.Value())
	}

	if e.chase.Phase == ChasePending && s.clear() {
		e.startChase()
	}
}

func (e *Engine) startChase() {
	e.setPhase(PhaseChase)
	e.chase.begin(e.world)
	e.doubleJump = DoubleJump{}
	e.message.show(e.cfg.Messages.ChaseStart, chaseStartDuration)
}

func (e *Engine) endChase() {
	e.setPhase(PhaseRunning)
	e.chase.finish()
	e.spawner.reseed(e.worldSpeed)
}

func (e *Engine) updateChase(dt float64) {
	c := e.chase
	c.Timer += dt

	if e.score.add(dt) {
		e.finish(PhaseWin)
		return
	}

	e.message.tick(dt)
	if c.OverlayTimer > 0 {
		c.OverlayTimer = math.Max(0, c.OverlayTimer-dt)
	}

	c.decay(dt)
	c.follow(dt, &e.player, e.world)
	e.scrollGround(c.scroll(e.worldSpeed), dt)

	c.kickDust(dt, e.player, e.world, e.rng)
	c.ageParticles(dt)

	if !c.Chaser.Tripped {
		if c.pursue(dt, e.player) {
			e.finish(PhaseGameOver)
			return
		}
	} else if c.tumble(dt, e.world) {
		e.endChase()
		return
	}

	if c.expired() && c.trip() {
		e.message.show(e.cfg.Messages.Escaped, escapedDuration)
		e.emit(core.CueEscape, 0)
	}
}
