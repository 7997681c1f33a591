// Package core provides fundamental types and utilities shared by the
// collision core, the scenario runner and the terminal viewer.
// It contains no Bubble Tea dependency to keep simulation code pure and
// testable.
package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Bounds is an axis-aligned bounding box in world space.
type Bounds struct {
	Left, Top, Right, Bottom float64
}

// NewBounds creates bounds from its four edges.
func NewBounds(left, top, right, bottom float64) Bounds {
	return Bounds{Left: left, Top: top, Right: right, Bottom: bottom}
}

// BoundsFromPoints returns the smallest bounds enclosing all points.
// Returns zero bounds for an empty slice.
func BoundsFromPoints(points []mgl64.Vec2) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{
		Left:   math.Inf(1),
		Top:    math.Inf(1),
		Right:  math.Inf(-1),
		Bottom: math.Inf(-1),
	}
	for _, p := range points {
		b.Left = math.Min(b.Left, p[0])
		b.Top = math.Min(b.Top, p[1])
		b.Right = math.Max(b.Right, p[0])
		b.Bottom = math.Max(b.Bottom, p[1])
	}
	return b
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent.
func (b Bounds) Height() float64 {
	return b.Bottom - b.Top
}

// Center returns the center point of the box.
func (b Bounds) Center() mgl64.Vec2 {
	return mgl64.Vec2{(b.Left + b.Right) / 2, (b.Top + b.Bottom) / 2}
}

// Intersects returns true if this box overlaps another with positive area.
// Boxes that only share an edge do not intersect.
func (b Bounds) Intersects(other Bounds) bool {
	if b.Left >= other.Right || other.Left >= b.Right {
		return false
	}
	if b.Top >= other.Bottom || other.Top >= b.Bottom {
		return false
	}
	return true
}

// Combine returns the smallest box enclosing both boxes.
func (b Bounds) Combine(other Bounds) Bounds {
	return Bounds{
		Left:   math.Min(b.Left, other.Left),
		Top:    math.Min(b.Top, other.Top),
		Right:  math.Max(b.Right, other.Right),
		Bottom: math.Max(b.Bottom, other.Bottom),
	}
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
