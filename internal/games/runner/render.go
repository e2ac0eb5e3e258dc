package runner

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/irr-runner/internal/assets"
	"github.com/vovakirdan/irr-runner/internal/core"
)

// Visual characters for rendering
const (
	GroundChar   = '═'
	GroundMark   = '╤'
	GravelChar   = '·'
	ParticleChar = '•'
	MashFull     = '█'
	MashEmpty    = '░'
)

const (
	mashBarWidth    = 20
	tumbleFlipAngle = 0.8
)

// palette holds the colors for one time of day.
type palette struct {
	ground   core.Color
	gravel   core.Color
	player   core.Color
	obstacle core.Color
	bird     core.Color
	chaser   core.Color
	dust     core.Color
	hud      core.Color
	banner   core.Color
}

var (
	dayPalette = palette{
		ground:   core.ColorWhite,
		gravel:   core.ColorGray,
		player:   core.ColorBrightWhite,
		obstacle: core.ColorGreen,
		bird:     core.ColorYellow,
		chaser:   core.ColorRed,
		dust:     core.ColorOrange,
		hud:      core.ColorBrightWhite,
		banner:   core.ColorBrightYellow,
	}
	nightPalette = palette{
		ground:   core.ColorBlue,
		gravel:   core.ColorDarkGray,
		player:   core.ColorBrightCyan,
		obstacle: core.ColorCyan,
		bird:     core.ColorBrightMagenta,
		chaser:   core.ColorBrightRed,
		dust:     core.ColorGray,
		hud:      core.ColorBrightBlue,
		banner:   core.ColorBrightWhite,
	}
)

// Renderer draws snapshots into a screen buffer. It never mutates the snapshot.
type Renderer struct {
	sprites assets.Set
	maxMash float64
	title   string // start banner heading
}

// NewRenderer creates a renderer. maxMash scales the chase mash bar.
func NewRenderer(sprites assets.Set, maxMash float64) *Renderer {
	return &Renderer{sprites: sprites, maxMash: maxMash}
}

// Draw renders one frame.
func (r *Renderer) Draw(dst *core.Screen, s Snapshot) {
	dst.Clear()
	night := s.Night()
	pal := dayPalette
	if night {
		pal = nightPalette
	}

	r.drawGround(dst, s, pal)
	for _, o := range s.Obstacles {
		r.drawSprite(dst, s.World, r.sprites.Obstacle, o.Rect(), pal.obstacle, false)
	}
	for _, b := range s.Birds {
		r.drawSprite(dst, s.World, r.sprites.Bird, b.Rect(), pal.bird, false)
	}
	r.drawSprite(dst, s.World, r.sprites.Player, s.Player.Rect(), pal.player, false)

	if s.Phase == PhaseChase || s.Chase.Phase == ChaseReturning {
		r.drawChase(dst, s, pal)
	}

	r.drawHud(dst, s, pal)
	r.drawMessage(dst, s, pal)

	switch s.Phase {
	case PhaseStart:
		if r.title != "" {
			r.drawCenterText(dst, r.title, "Press Space to start", night)
		} else {
			r.drawCenterText(dst, "Press Space to start", "Jump with Space or Up", night)
		}
	case PhaseGameOver:
		r.drawCenterText(dst, "Game Over", "Press Space to restart", night)
	case PhaseWin:
		r.drawCenterText(dst, "congratulations, you cleared the carry hurdle", "Press Space to restart", night)
	}
}

func (r *Renderer) drawGround(dst *core.Screen, s Snapshot, pal palette) {
	w := s.World
	_, gy := w.ToCell(0, w.GroundY)
	for x := 0; x < dst.Width(); x++ {
		ch := GroundChar
		if math.Mod(float64(x)*w.CellW+s.GroundOffset, groundPeriod) < w.CellW {
			ch = GroundMark
		}
		dst.SetColored(x, gy, ch, pal.ground)
	}

	// Sparse gravel scrolling with the ground.
	shift := int(s.GroundOffset / w.CellW)
	for y := gy + 1; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			if (x+shift+y*3)%7 == 0 {
				dst.SetColored(x, y, GravelChar, pal.gravel)
			}
		}
	}
}

// drawSprite scales sp into the cell box covering rect. Spaces stay transparent.
func (r *Renderer) drawSprite(dst *core.Screen, w World, sp assets.Sprite, rect core.Rect, c core.Color, flip bool) {
	x0, y0 := w.ToCell(rect.X, rect.Y)
	cw := w.CellSpan(rect.W, w.CellW)
	ch := w.CellSpan(rect.H, w.CellH)
	for dy := 0; dy < ch; dy++ {
		sy := dy
		if flip {
			sy = ch - 1 - dy
		}
		for dx := 0; dx < cw; dx++ {
			if ru := sp.At(dx, sy, cw, ch); ru != ' ' {
				dst.SetColored(x0+dx, y0+dy, ru, c)
			}
		}
	}
}

func (r *Renderer) drawChase(dst *core.Screen, s Snapshot, pal palette) {
	for _, p := range s.Chase.Particles {
		x, y := s.World.ToCell(p.X, p.Y)
		dst.SetColored(x, y, ParticleChar, pal.dust)
	}

	ch := s.Chase.Chaser
	if s.Phase == PhaseChase {
		// A tripped chaser tips over once it has rotated far enough.
		r.drawSprite(dst, s.World, r.sprites.Chaser, ch.Rect(), pal.chaser, ch.Tripped && ch.Angle > tumbleFlipAngle)
	}

	if s.Phase != PhaseChase {
		return
	}

	if s.Chase.OverlayTimer > 0 {
		dst.DrawBox(0, 0, dst.Width(), dst.Height(), core.ColorRed)
		dst.DrawTextCentered(dst.Height()/3, "Mash SPACE to accelerate", pal.banner)
	}

	remaining := math.Max(0, s.Chase.Duration-s.Chase.Timer)
	if ch.Tripped {
		remaining = 0
	}
	dst.DrawTextCentered(5, "tap rapidly to escape", pal.hud)
	dst.DrawTextColored(2, 1, fmt.Sprintf("CHASE %.1fs", remaining), core.ColorBrightRed)
	dst.DrawTextColored(2, 2, r.mashBar(s.Chase.MashSpeed), core.ColorBrightYellow)
}

func (r *Renderer) mashBar(speed float64) string {
	filled := 0
	if r.maxMash > 0 {
		filled = int(math.Round(core.ClampF(speed/r.maxMash, 0, 1) * mashBarWidth))
	}
	return "[" + strings.Repeat(string(MashFull), filled) +
		strings.Repeat(string(MashEmpty), mashBarWidth-filled) + "]"
}

func (r *Renderer) drawHud(dst *core.Screen, s Snapshot, pal palette) {
	score := fmt.Sprintf("IRR %.2f%%", s.Snapped())
	best := fmt.Sprintf("Best IRR %.2f%%", core.SnapDown(s.Best, 2))
	right := dst.Width() - 2
	dst.DrawTextColored(right-len([]rune(score)), 0, score, pal.hud)
	dst.DrawTextColored(right-len([]rune(best)), 1, best, core.ColorGray)

	if s.Phase == PhaseRunning && s.DoubleJump.Active && !s.DoubleJump.Used && len(s.Birds) > 0 {
		dst.DrawTextCentered(4, "double tap to double jump", pal.banner)
	}
}

func (r *Renderer) drawMessage(dst *core.Screen, s Snapshot, pal palette) {
	if !s.Message.Visible() {
		return
	}
	text := " " + s.Message.Text + " "
	w := len([]rune(text)) + 2
	x := (dst.Width() - w) / 2
	dst.DrawRect(x, 1, w, 3, ' ', core.ColorDefault)
	dst.DrawBox(x, 1, w, 3, pal.banner)
	dst.DrawTextColored(x+1, 2, text, pal.banner)
}

// drawCenterText draws a title/subtitle box in the middle of the screen.
func (r *Renderer) drawCenterText(dst *core.Screen, title, subtitle string, night bool) {
	c := core.ColorBrightWhite
	if night {
		c = core.ColorBrightCyan
	}
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, c)
	dst.DrawTextCentered(boxY+1, title, c)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorGray)
}
