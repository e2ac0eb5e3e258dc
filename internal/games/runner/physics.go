package runner

import "github.com/vovakirdan/irr-runner/internal/core"

// groundPeriod is the repeat length of the ground texture in world pixels.
const groundPeriod = 44

// integratePlayer applies gravity and lands the player on the ground line.
func (e *Engine) integratePlayer(dt float64) {
	p := &e.player
	mul := 1.0
	if e.fastFall && !p.Grounded {
		mul = e.cfg.Physics.FastFallMul
	}
	p.VY += e.cfg.Physics.Gravity * mul * dt
	p.Y += p.VY * dt

	if floor := e.world.GroundY - p.H; p.Y >= floor {
		p.Y = floor
		p.VY = 0
		p.Grounded = true
	}
}

// requestJump jumps from the ground, or spends the double-jump charge while
// airborne with a bird on screen. Anything else is ignored.
func (e *Engine) requestJump() {
	p := &e.player
	switch {
	case p.Grounded:
		p.VY = -e.cfg.Physics.JumpImpulse
		p.Grounded = false
		e.emit(core.CueJump, 0)
	case e.doubleJump.Available(p.Grounded) && len(e.spawner.birds) > 0:
		p.VY = -e.cfg.Physics.JumpImpulse * e.cfg.Physics.DoubleJumpFactor
		e.doubleJump.Used = true
		e.emit(core.CueDoubleJump, 0)
	}
}

// moveObstacles scrolls ground obstacles, drops those off-screen and reports
// whether the player hit one.
func (e *Engine) moveObstacles(dt float64) bool {
	s := e.spawner
	margin := e.cfg.Obstacles.DespawnMargin

	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		o.X -= e.worldSpeed * dt
		if o.X+o.W < -margin {
			continue
		}
		if !o.Passed && o.X+o.W < e.player.X {
			o.Passed = true
		}
		kept = append(kept, o)
	}
	s.obstacles = kept

	hitbox := e.player.Rect()
	for _, o := range s.obstacles {
		if hitbox.IntersectsPadded(o.Rect(), e.cfg.Player.HitPad, e.cfg.Obstacles.HitPad) {
			return true
		}
	}
	return false
}

// moveBirds advances bird flight, turns cleared birds into climbers when the
// player jumped over them, drops birds that left the screen and reports
// whether the player hit one. A hit stops the pass: birds after the one that
// hit are left as they were.
func (e *Engine) moveBirds(dt float64) bool {
	s := e.spawner
	p := e.player
	speed := e.worldSpeed
	diveFloor := e.world.GroundY - p.H*birdDiveFloor
	hitbox := p.Rect()

	kept := s.birds[:0]
	for i, b := range s.birds {
		b.VX = max(b.VX, speed*e.cfg.Birds.MinSpeedRatio)
		b.X -= b.VX * dt

		switch b.Phase {
		case BirdDive:
			b.Y += b.VY * dt
			if b.Y >= diveFloor {
				b.Y = diveFloor
				b.Phase = BirdGlide
				b.VY = 0
			}
		case BirdClimb:
			b.Y += b.VY * dt
			b.VY += e.cfg.Birds.ClimbGravity * dt
		}

		if !b.Cleared && b.X+b.W < p.X {
			b.Cleared = true
			if p.Y+p.H < b.Y+b.H*birdJumpedRatio {
				b.Phase = BirdClimb
				b.VY = -(e.cfg.Birds.ClimbBaseSpeed + speed*birdClimbSpeed)
				b.VX = max(b.VX, speed*birdClimbVX)
				e.emit(core.CueBirdClimb, 0)
			}
		}

		if hitbox.IntersectsPadded(b.Rect(), e.cfg.Player.HitPad, e.cfg.Birds.HitPad) {
			kept = append(kept, b)
			s.birds = append(kept, s.birds[i+1:]...)
			return true
		}

		if b.X+b.W < -e.cfg.Birds.DespawnMargin || b.Y < -b.H*2 {
			continue
		}
		kept = append(kept, b)
	}
	s.birds = kept
	return false
}
