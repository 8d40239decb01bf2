// Package core provides fundamental types and utilities for the runtime.
// It contains no external dependencies (especially no Bubble Tea) to keep
// world logic pure and testable.
package core

// Rect represents an axis-aligned bounding box used for collision detection.
// Rect is a value type; two rects are compared structurally, never by identity.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height, never negative
}

// NewRect creates a new rectangle with the given position and dimensions.
// Negative sizes are clamped to zero.
func NewRect(x, y, w, h float64) Rect {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// UnitRect returns a 1x1 rectangle anchored at (x, y).
func UnitRect(x, y float64) Rect {
	return Rect{X: x, Y: y, W: 1, H: 1}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Projections must overlap strictly on both axes; touching edges do not count.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && r.Right() > other.X &&
		r.Y < other.Bottom() && r.Bottom() > other.Y
}

// Collides reports whether a and b overlap. Collides(a, b) == Collides(b, a).
func Collides(a, b Rect) bool {
	return a.Intersects(b)
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
