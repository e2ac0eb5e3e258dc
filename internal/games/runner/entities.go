package runner

import "github.com/vovakirdan/irr-runner/internal/core"

// Player is the controlled character.
type Player struct {
	X, Y     float64
	W, H     float64
	VY       float64
	Grounded bool
}

// Rect returns the player's bounding box.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Obstacle is a ground hazard.
type Obstacle struct {
	X, Y   float64
	W, H   float64
	Passed bool // Player has cleared it
}

// Rect returns the obstacle's bounding box.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.W, o.H)
}

// BirdPhase is the flight stage of a bird.
type BirdPhase int

const (
	BirdDive BirdPhase = iota
	BirdGlide
	BirdClimb
)

func (b BirdPhase) String() string {
	switch b {
	case BirdDive:
		return "dive"
	case BirdGlide:
		return "glide"
	case BirdClimb:
		return "climb"
	default:
		return "unknown"
	}
}

// Bird is an aerial hazard.
type Bird struct {
	X, Y    float64
	W, H    float64
	VX, VY  float64
	Phase   BirdPhase
	Cleared bool // Player has passed it
}

// Rect returns the bird's bounding box.
func (b Bird) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// DoubleJump tracks the extra jump granted while birds are on screen.
type DoubleJump struct {
	Active bool
	Used   bool
}

// Available reports whether an airborne jump is legal right now.
func (d DoubleJump) Available(grounded bool) bool {
	return !grounded && d.Active && !d.Used
}

// Chaser is the pursuer during the chase.
type Chaser struct {
	X, Y      float64
	W, H      float64
	Tripped   bool
	TripTimer float64
	Angle     float64 // Radians, grows while tripping
}

// Rect returns the chaser's bounding box.
func (c Chaser) Rect() core.Rect {
	return core.NewRect(c.X, c.Y, c.W, c.H)
}

// Particle is a dust puff kicked up during the chase.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Size   float64
}

// Message is a transient banner.
type Message struct {
	Text  string
	Timer float64
}

// Visible reports whether the banner should be drawn.
func (m Message) Visible() bool {
	return m.Text != "" && m.Timer > 0
}

// show replaces the banner.
func (m *Message) show(text string, duration float64) {
	m.Text = text
	m.Timer = duration
}

// tick decays the banner timer.
func (m *Message) tick(dt float64) {
	if m.Timer > 0 {
		m.Timer = max(0, m.Timer-dt)
	}
}
