package runner

import (
	"math"
	"slices"

	"github.com/vovakirdan/irr-runner/internal/core"
)

// ChaseView is the renderer-facing part of the chase session.
type ChaseView struct {
	Phase            ChasePhase
	Timer            float64
	Duration         float64
	MashSpeed        float64
	Lead             float64
	OverlayTimer     float64
	ReturnTimer      float64
	Chaser           Chaser
	Particles        []Particle
	TriggeredThisRun bool
}

// Snapshot is a point-in-time copy of the simulation. It shares no memory
// with the engine, so it may be read while the engine keeps stepping.
type Snapshot struct {
	Tick         uint64
	Phase        Phase
	Score        float64
	Best         float64
	WorldSpeed   float64
	GroundOffset float64
	World        World
	Player       Player
	Obstacles    []Obstacle
	Birds        []Bird
	DoubleJump   DoubleJump
	Chase        ChaseView
	Message      Message
	Cues         []core.Cue // Cues emitted by the step that produced this snapshot
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	c := e.chase
	return Snapshot{
		Tick:         e.tick,
		Phase:        e.phase,
		Score:        e.score.Value(),
		Best:         e.score.Best(),
		WorldSpeed:   e.worldSpeed,
		GroundOffset: e.groundOffset,
		World:        e.world,
		Player:       e.player,
		Obstacles:    slices.Clone(e.spawner.obstacles),
		Birds:        slices.Clone(e.spawner.birds),
		DoubleJump:   e.doubleJump,
		Chase: ChaseView{
			Phase:            c.Phase,
			Timer:            c.Timer,
			Duration:         c.Duration(),
			MashSpeed:        c.MashSpeed,
			Lead:             c.Lead,
			OverlayTimer:     c.OverlayTimer,
			ReturnTimer:      c.ReturnTimer,
			Chaser:           c.Chaser,
			Particles:        slices.Clone(c.Particles),
			TriggeredThisRun: c.Phase.Triggered(),
		},
		Message: e.message,
		Cues:    slices.Clone(e.cues),
	}
}

// Snapped returns the score floored to two decimals.
func (s Snapshot) Snapped() float64 {
	return core.SnapDown(s.Score, 2)
}

// Night reports whether the renderer should use the night palette.
// Night falls on odd whole scores.
func (s Snapshot) Night() bool {
	return int(math.Floor(s.Score))%2 == 1
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s Snapshot) Hash() uint64 {
	h := s.Tick
	mix := func(v float64) { h = h*31 + math.Float64bits(v) }

	h = h*31 + uint64(s.Phase)       //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Chase.Phase) //#nosec G115 -- hash computation
	mix(s.Score)
	mix(s.WorldSpeed)
	mix(s.GroundOffset)
	mix(s.Player.X)
	mix(s.Player.Y)
	mix(s.Player.VY)

	for _, o := range s.Obstacles {
		mix(o.X)
		mix(o.W)
		mix(o.H)
	}
	for _, b := range s.Birds {
		mix(b.X)
		mix(b.Y)
		mix(b.VX)
		mix(b.VY)
		h = h*31 + uint64(b.Phase) //#nosec G115 -- hash computation
	}

	mix(s.Chase.Timer)
	mix(s.Chase.MashSpeed)
	mix(s.Chase.Lead)
	mix(s.Chase.Chaser.X)
	for _, p := range s.Chase.Particles {
		mix(p.X)
		mix(p.Life)
	}
	return h
}
