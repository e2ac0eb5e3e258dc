package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/irr-runner/internal/config"
	"github.com/vovakirdan/irr-runner/internal/core"
)

// Chase motion constants.
const (
	chaserResetGap   = 70   // Chaser distance behind the left edge at run start
	chaserEntryGap   = 60   // Chaser distance behind the left edge when the chase begins
	chaserFollowGap  = 28   // Chaser trails the player by this much with no lead
	chaserLeadShare  = 0.18 // Fraction of the lead the chaser gives up
	chaserPull       = 2.4  // Chaser easing rate per second
	cameraPull       = 9    // Player easing rate toward the camera target
	returnPull       = 8    // Player easing rate back to the default lane
	returnSnap       = 0.6  // Snap distance for the return easing
	chaseScrollMul   = 1.85 // Ground scroll multiplier during the chase
	chaseScrollMash  = 0.26 // Extra scroll per unit of mash speed
	tripAngleRate    = 2.4
	tripMaxAngle     = 1.1
	tripBaseSpeed    = 50
	tripAccel        = 110
	tripSinkRate     = 26
	tripMaxSink      = 20
	particleDragMash = 0.03 // Particles drift back faster with mash speed
)

// ChaseSession is the state of the once-per-run chase.
type ChaseSession struct {
	cfg config.ChaseConfig

	Phase         ChasePhase
	Timer         float64 // Elapsed chase time
	MashSpeed     float64
	Lead          float64
	OverlayTimer  float64
	ReturnTimer   float64
	particleTimer float64
	Chaser        Chaser
	Particles     []Particle
}

func newChaseSession(cfg config.ChaseConfig) *ChaseSession {
	return &ChaseSession{
		cfg:       cfg,
		Chaser:    Chaser{W: cfg.Chaser.W, H: cfg.Chaser.H},
		Particles: make([]Particle, 0, cfg.MaxParticles),
	}
}

// Duration is the fixed escape window.
func (c *ChaseSession) Duration() float64 { return c.cfg.Duration }

// reset returns the session to dormant for a new run.
func (c *ChaseSession) reset(w World) {
	c.Phase = ChaseDormant
	c.Timer = 0
	c.MashSpeed = 0
	c.Lead = 0
	c.OverlayTimer = 0
	c.ReturnTimer = 0
	c.particleTimer = 0
	c.Particles = c.Particles[:0]
	c.Chaser = Chaser{
		X: -c.cfg.Chaser.W - chaserResetGap,
		Y: w.GroundY - c.cfg.Chaser.H,
		W: c.cfg.Chaser.W,
		H: c.cfg.Chaser.H,
	}
}

// begin starts the session with the chaser far behind the player.
func (c *ChaseSession) begin(w World) {
	c.Phase = ChaseApproaching
	c.Timer = 0
	c.OverlayTimer = c.cfg.OverlayDuration
	c.MashSpeed = 0
	c.Lead = 0
	c.particleTimer = 0
	c.Particles = c.Particles[:0]
	c.Chaser = Chaser{
		X: -c.cfg.Chaser.W - chaserEntryGap,
		Y: w.GroundY - c.cfg.Chaser.H,
		W: c.cfg.Chaser.W,
		H: c.cfg.Chaser.H,
	}
}

// pulse adds one mash boost and returns the new mash speed.
func (c *ChaseSession) pulse() float64 {
	c.MashSpeed = math.Min(c.cfg.MaxMashSpeed, c.MashSpeed+c.cfg.MashBoost)
	return c.MashSpeed
}

// decay bleeds off mash speed and integrates the lead.
// Both stay within their configured bounds.
func (c *ChaseSession) decay(dt float64) {
	c.MashSpeed = core.ClampF(c.MashSpeed-c.cfg.MashDecay*dt, 0, c.cfg.MaxMashSpeed)
	c.Lead = math.Min(c.cfg.MaxLead, c.Lead+c.MashSpeed*dt*c.cfg.LeadGain)
	c.Lead = math.Max(0, c.Lead-c.cfg.LeadDecay*dt)
}

// follow eases the player toward the camera target and pins it to the ground.
func (c *ChaseSession) follow(dt float64, p *Player, w World) {
	target := w.W*0.5 - p.W*0.5 + c.Lead
	p.X = core.Approach(p.X, target, dt*cameraPull)
	p.Y = w.GroundY - p.H
	p.VY = 0
	p.Grounded = true
}

// scroll is the ground scroll speed during the chase.
func (c *ChaseSession) scroll(speed float64) float64 {
	return speed*chaseScrollMul + c.MashSpeed*chaseScrollMash
}

// kickDust spawns particles at a fixed cadence behind the player's feet.
func (c *ChaseSession) kickDust(dt float64, p Player, w World, rng *rand.Rand) {
	uniform := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }

	c.particleTimer -= dt
	for c.particleTimer <= 0 {
		c.Particles = append(c.Particles, Particle{
			X:    p.X + p.W*0.15 + uniform(-6, 6),
			Y:    w.GroundY - uniform(4, 16),
			VX:   -uniform(90, 170),
			VY:   -uniform(8, 30),
			Life: uniform(0.24, 0.48),
			Size: uniform(3, 6),
		})
		c.particleTimer += c.cfg.ParticleInterval
	}
}

// ageParticles moves and expires particles, then enforces the hard cap by
// dropping the oldest.
func (c *ChaseSession) ageParticles(dt float64) {
	alive := c.Particles[:0]
	for _, pt := range c.Particles {
		pt.X += (pt.VX - c.MashSpeed*particleDragMash) * dt
		pt.Y += pt.VY * dt
		pt.Life -= dt
		if pt.Life > 0 {
			alive = append(alive, pt)
		}
	}
	c.Particles = alive

	if limit := c.cfg.MaxParticles; len(c.Particles) > limit {
		c.Particles = append(c.Particles[:0], c.Particles[len(c.Particles)-limit:]...)
	}
}

// pursue eases the chaser toward its spot behind the player and reports
// whether it caught the player.
func (c *ChaseSession) pursue(dt float64, p Player) bool {
	target := p.X - c.Chaser.W - chaserFollowGap + c.Lead*chaserLeadShare
	c.Chaser.X = core.Approach(c.Chaser.X, target, dt*chaserPull)
	return p.Rect().IntersectsPadded(c.Chaser.Rect(), c.cfg.PlayerPad, c.cfg.ChaserPad)
}

// expired reports whether the escape window has elapsed.
func (c *ChaseSession) expired() bool {
	return c.Timer >= c.cfg.Duration-thresholdEpsilon
}

// trip latches the chaser into its fall. Calling it again has no effect.
func (c *ChaseSession) trip() bool {
	if c.Chaser.Tripped {
		return false
	}
	c.Phase = ChaseTripped
	c.Chaser.Tripped = true
	c.Chaser.TripTimer = 0
	return true
}

// tumble advances the trip animation and reports whether it has finished.
func (c *ChaseSession) tumble(dt float64, w World) bool {
	ch := &c.Chaser
	ch.TripTimer += dt
	ch.Angle = math.Min(tripMaxAngle, ch.TripTimer*tripAngleRate)
	ch.X -= (tripBaseSpeed + ch.TripTimer*tripAccel) * dt
	ch.Y = w.GroundY - ch.H + math.Min(tripMaxSink, ch.TripTimer*tripSinkRate)
	return ch.TripTimer >= c.cfg.TripDuration-thresholdEpsilon
}

// finish ends the session and starts the eased return to the default lane.
func (c *ChaseSession) finish() {
	c.Phase = ChaseReturning
	c.ReturnTimer = c.cfg.ReturnDuration
	c.MashSpeed = 0
	c.Lead = 0
	c.Particles = c.Particles[:0]
}

// settle eases the player back to the default lane. The return completes
// once the player is close enough or the return window runs out.
func (c *ChaseSession) settle(dt float64, p *Player, w World) {
	if c.Phase != ChaseReturning {
		return
	}
	c.ReturnTimer = math.Max(0, c.ReturnTimer-dt)
	p.X = core.Approach(p.X, w.DefaultPlayerX, dt*returnPull)
	if math.Abs(p.X-w.DefaultPlayerX) < returnSnap || c.ReturnTimer <= 0 {
		p.X = w.DefaultPlayerX
		c.Phase = ChaseDone
	}
}

// abort is applied when the run ends. A pending trigger is dropped and an
// in-flight return is completed.
func (c *ChaseSession) abort() {
	switch c.Phase {
	case ChasePending:
		c.Phase = ChaseDormant
	case ChaseReturning:
		c.Phase = ChaseDone
	}
}
