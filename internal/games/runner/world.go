package runner

import (
	"math"

	"github.com/vovakirdan/irr-runner/internal/config"
	"github.com/vovakirdan/irr-runner/internal/core"
)

// World is the playfield geometry in world pixels.
type World struct {
	W, H           float64
	LaneH          float64
	GroundY        float64 // Top of the lane; the player stands on it
	DefaultPlayerX float64
	PlayerW        float64
	PlayerH        float64
	CellW, CellH   float64 // World pixels per terminal cell
}

// NewWorld sizes the playfield for a terminal of cols x rows cells.
// spriteAspect is the loaded sprite's width/height ratio, or 0 without a sprite.
func NewWorld(cols, rows int, cfg config.RunnerConfig, spriteAspect float64) World {
	cols = max(cols, 1)
	rows = max(rows, 1)

	vp := cfg.Viewport
	w := float64(cols) * vp.CellWidth
	h := float64(rows) * vp.CellHeight

	laneH := math.Max(vp.MinLane, math.Floor(h*vp.LaneRatio))
	world := World{
		W:              w,
		H:              h,
		LaneH:          laneH,
		GroundY:        h - laneH,
		DefaultPlayerX: math.Max(cfg.Player.MinX, math.Floor(w*cfg.Player.XRatio)),
		CellW:          vp.CellWidth,
		CellH:          vp.CellHeight,
	}
	world.PlayerW, world.PlayerH = playerSize(world, cfg.Player, spriteAspect)
	return world
}

// playerSize derives the player box from the viewport height and sprite aspect.
func playerSize(w World, pc config.PlayerConfig, spriteAspect float64) (float64, float64) {
	baseH := core.ClampF(math.Floor(w.H*pc.HeightRatio), pc.MinHeight, pc.MaxHeight)

	if spriteAspect > 0 {
		headH := baseH * 0.42
		headW := headH * spriteAspect
		pw := math.Max(baseH*0.42, headW*1.15)
		maxW := math.Max(62, math.Floor(w.W*pc.XRatio))
		pw = math.Min(pw, maxW)
		return math.Round(pw), math.Round(baseH)
	}
	return math.Round(baseH * pc.WidthRatio), baseH
}

// ToCell converts a world coordinate pair into terminal cell coordinates.
func (w World) ToCell(x, y float64) (int, int) {
	return int(math.Floor(x / w.CellW)), int(math.Floor(y / w.CellH))
}

// CellSpan converts a world length into a cell count of at least one.
func (w World) CellSpan(length, cell float64) int {
	return max(1, int(math.Round(length/cell)))
}
