// Package core provides fundamental types and utilities shared by the runner engine
// and the platform layer. It has no external dependencies (especially no Bubble Tea)
// so simulation logic stays pure and testable.
package core

import "math"

// Rect represents an axis-aligned bounding box in world pixels.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Inset shrinks the rectangle by pad on every side.
// A negative pad grows it.
func (r Rect) Inset(pad float64) Rect {
	return Rect{X: r.X + pad, Y: r.Y + pad, W: r.W - 2*pad, H: r.H - 2*pad}
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// IntersectsPadded tests overlap after insetting r by padSelf and other by padOther.
// Hit detection uses asymmetric padding so hazards feel forgiving.
func (r Rect) IntersectsPadded(other Rect, padSelf, padOther float64) bool {
	return r.X+padSelf < other.Right()-padOther &&
		r.Right()-padSelf > other.X+padOther &&
		r.Y+padSelf < other.Bottom()-padOther &&
		r.Bottom()-padSelf > other.Y+padOther
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

// Approach moves current toward target by the fraction pull, clamped to [0, 1].
// Used for all frame-rate dependent easing.
func Approach(current, target, pull float64) float64 {
	return current + (target-current)*ClampF(pull, 0, 1)
}

// snapEpsilon absorbs representation error such as 0.29*100 = 28.999999999999996.
const snapEpsilon = 1e-9

// SnapDown truncates v to the given number of decimal places.
func SnapDown(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Floor(v*scale+snapEpsilon) / scale
}
