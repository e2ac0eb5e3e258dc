package runner

import (
	"math"
	"math/rand"
	"slices"

	"github.com/vovakirdan/irr-runner/internal/config"
)

// Bird shape and flight ranges.
const (
	birdMinH        = 30
	birdMaxH        = 42
	birdMinAspect   = 1.5
	birdMaxAspect   = 1.9
	birdMinY        = 36
	birdCeilFloor   = 70   // Lowest allowed upper bound of the spawn band
	birdCeilRatio   = 0.28 // Upper bound of the spawn band relative to the ground line
	birdAheadMin    = 80
	birdAheadMax    = 200
	birdMinVXRatio  = 1.04
	birdMaxVXRatio  = 1.18
	birdMinDive     = 120
	birdMaxDive     = 170
	birdDiveFloor   = 0.9  // Dive levels off this many player heights above the ground
	birdClimbSpeed  = 0.2  // Extra climb speed per unit of world speed
	birdClimbVX     = 1.12 // Climbing birds fly at least this fast relative to the world
	birdJumpedRatio = 0.42 // Player bottom must be above this fraction of the bird height

	// Ground spawn delays applied around bird sequences.
	birdSpawnGroundDelay = 1.25
	birdClearGroundDelay = 1.0

	// Extra distance an obstacle is pushed past a bird's recovery lane.
	pushOnSpawnMin = 18
	pushOnSpawnMax = 72
	pushOnTickMin  = 12
	pushOnTickMax  = 56

	// Upper bound on spacing passes per tick. Each pass only moves obstacles
	// right, so a handful always settles the handful of live hazards.
	maxSpacingPasses = 16
)

// Spawner creates ground and aerial hazards and keeps them spaced.
type Spawner struct {
	obstacleCfg config.ObstacleConfig
	birdCfg     config.BirdConfig
	baseSpeed   float64 // World speed the spawn delays are tuned for
	rng         *rand.Rand

	obstacles []Obstacle
	birds     []Bird

	spawnTimer     float64 // Countdown to the next ground obstacle
	birdSpawnTimer float64 // Countdown to the next bird
	lockTimer      float64 // Ground spawn lockout around bird sequences
	birdWasActive  bool    // A bird has been alive since the last clear
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(oc config.ObstacleConfig, bc config.BirdConfig, baseSpeed float64, rng *rand.Rand) *Spawner {
	return &Spawner{
		obstacleCfg: oc,
		birdCfg:     bc,
		baseSpeed:   baseSpeed,
		rng:         rng,
		obstacles:   make([]Obstacle, 0, 8),
		birds:       make([]Bird, 0, 4),
	}
}

// reset clears all hazards and reseeds both spawn timers.
func (s *Spawner) reset(speed float64) {
	s.obstacles = s.obstacles[:0]
	s.birds = s.birds[:0]
	s.spawnTimer = s.nextSpawnDelay(speed)
	s.birdSpawnTimer = s.nextBirdSpawnDelay(speed)
	s.lockTimer = 0
	s.birdWasActive = false
}

// reseed restarts both spawn countdowns.
func (s *Spawner) reseed(speed float64) {
	s.spawnTimer = s.nextSpawnDelay(speed)
	s.birdSpawnTimer = s.nextBirdSpawnDelay(speed)
}

func (s *Spawner) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// ObstacleMinGap is the required distance between an obstacle's trailing
// edge and the next obstacle's leading edge.
func (s *Spawner) ObstacleMinGap(speed float64) float64 {
	return math.Max(s.obstacleCfg.MinGap, speed*s.obstacleCfg.GapSpeedRatio)
}

// BirdSafeGap is the obstacle-free recovery lane behind every bird.
func (s *Spawner) BirdSafeGap(speed float64) float64 {
	return math.Max(s.birdCfg.SafeGap, speed*s.birdCfg.GapSpeedRatio)
}

// nextSpawnDelay draws the next ground inter-arrival time. Faster worlds spawn denser.
func (s *Spawner) nextSpawnDelay(speed float64) float64 {
	factor := math.Min(0.42, (speed-s.baseSpeed)/2400)
	lo := math.Max(0.45, s.obstacleCfg.SpawnMin-factor)
	hi := math.Max(lo+0.2, s.obstacleCfg.SpawnMax-factor*1.1)
	return s.uniform(lo, hi)
}

// nextBirdSpawnDelay draws the next bird inter-arrival time.
func (s *Spawner) nextBirdSpawnDelay(speed float64) float64 {
	factor := math.Min(2.8, (speed-s.baseSpeed)/300)
	lo := math.Max(3.6, s.birdCfg.SpawnMin-factor*0.45)
	hi := math.Max(lo+1.6, s.birdCfg.SpawnMax-factor*0.65)
	return s.uniform(lo, hi)
}

// tickLock decays the ground spawn lockout.
func (s *Spawner) tickLock(dt float64) {
	if s.lockTimer > 0 {
		s.lockTimer = math.Max(0, s.lockTimer-dt)
	}
}

// groundSpawnOpen reports whether ground obstacles may spawn: no birds alive
// and no lockout running.
func (s *Spawner) groundSpawnOpen() bool {
	return len(s.birds) == 0 && s.lockTimer <= 0
}

// clear reports whether the hazard lane is empty.
func (s *Spawner) clear() bool {
	return len(s.obstacles) == 0 && len(s.birds) == 0
}

// spawnObstacle adds a ground obstacle beyond the right edge, no closer to
// the player than the minimum gap and never inside a bird's recovery lane.
func (s *Spawner) spawnObstacle(w World, p Player, speed float64) {
	presets := s.obstacleCfg.Presets
	preset := presets[s.rng.Intn(len(presets))]
	ow := preset.W + s.uniform(-s.obstacleCfg.JitterW, s.obstacleCfg.JitterW)
	oh := preset.H + s.uniform(-s.obstacleCfg.JitterH, s.obstacleCfg.JitterH)

	x := w.W + s.uniform(s.obstacleCfg.SpawnAheadMin, s.obstacleCfg.SpawnAheadMax)
	x = math.Max(x, p.X+p.W+s.ObstacleMinGap(speed))

	safeGap := s.BirdSafeGap(speed)
	for _, b := range s.birds {
		x = math.Max(x, b.X+b.W+safeGap)
	}

	s.obstacles = append(s.obstacles, Obstacle{X: x, Y: w.GroundY - oh, W: ow, H: oh})
	s.enforceObstacleSpacing(speed)
}

// spawnBird adds a bird beyond the right edge, pushes any obstacle out of its
// recovery lane and locks ground spawning for a moment. It reports whether
// the bird opened a new bird sequence (no other bird was alive).
func (s *Spawner) spawnBird(w World, p Player, speed float64) bool {
	first := len(s.birds) == 0

	bh := s.uniform(birdMinH, birdMaxH)
	b := Bird{
		X:     w.W + s.uniform(birdAheadMin, birdAheadMax),
		Y:     s.uniform(birdMinY, math.Max(birdCeilFloor, w.GroundY*birdCeilRatio)),
		W:     bh * s.uniform(birdMinAspect, birdMaxAspect),
		H:     bh,
		VX:    speed * s.uniform(birdMinVXRatio, birdMaxVXRatio),
		VY:    s.uniform(birdMinDive, birdMaxDive),
		Phase: BirdDive,
	}
	s.birds = append(s.birds, b)
	s.birdWasActive = true

	minX := b.X + b.W + s.BirdSafeGap(speed)
	for i := range s.obstacles {
		o := &s.obstacles[i]
		if o.X >= b.X && o.X < minX {
			o.X = minX + s.uniform(pushOnSpawnMin, pushOnSpawnMax)
		}
	}
	s.enforceObstacleSpacing(speed)

	s.lockTimer = math.Max(s.lockTimer, s.birdCfg.SpawnLock)
	s.spawnTimer = math.Max(s.nextSpawnDelay(speed), birdSpawnGroundDelay)
	return first
}

// birdsCleared applies the one-shot recovery lockout after the last bird
// leaves. It reports true only on the tick the sequence ends.
func (s *Spawner) birdsCleared(speed float64) bool {
	if len(s.birds) > 0 || !s.birdWasActive {
		return false
	}
	s.lockTimer = math.Max(s.lockTimer, s.birdCfg.ClearLock)
	s.spawnTimer = math.Max(s.nextSpawnDelay(speed), birdClearGroundDelay)
	s.birdWasActive = false
	return true
}

// enforceObstacleSpacing sorts obstacles by x and pushes each one right until
// it sits at least the minimum gap behind its predecessor. It reports whether
// any obstacle moved.
func (s *Spawner) enforceObstacleSpacing(speed float64) bool {
	if len(s.obstacles) < 2 {
		return false
	}
	gap := s.ObstacleMinGap(speed)
	slices.SortStableFunc(s.obstacles, func(a, b Obstacle) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		default:
			return 0
		}
	})

	moved := false
	for i := 1; i < len(s.obstacles); i++ {
		prev := s.obstacles[i-1]
		curr := &s.obstacles[i]
		if minX := prev.X + prev.W + gap; curr.X < minX {
			curr.X = minX
			moved = true
		}
	}
	return moved
}

// restoreSpacing is the per-tick post-condition pass. After all hazards have
// moved it guarantees that no obstacle starts inside a live bird's recovery
// lane and that consecutive obstacles keep the minimum gap. Birds are visited
// left to right so an obstacle pushed past one bird is re-checked against the
// birds further right.
func (s *Spawner) restoreSpacing(speed float64) {
	if len(s.obstacles) == 0 {
		return
	}

	order := make([]int, len(s.birds))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case s.birds[a].X < s.birds[b].X:
			return -1
		case s.birds[a].X > s.birds[b].X:
			return 1
		default:
			return 0
		}
	})

	safeGap := s.BirdSafeGap(speed)
	for pass := 0; pass < maxSpacingPasses; pass++ {
		moved := false
		for _, bi := range order {
			b := s.birds[bi]
			minX := b.X + b.W + safeGap
			for i := range s.obstacles {
				o := &s.obstacles[i]
				if o.X >= b.X && o.X < minX {
					o.X = minX + s.uniform(pushOnTickMin, pushOnTickMax)
					moved = true
				}
			}
		}
		if s.enforceObstacleSpacing(speed) {
			moved = true
		}
		if !moved {
			return
		}
	}
}
