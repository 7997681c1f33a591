package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// cellAspect is how many times taller a terminal cell is than it is wide.
const cellAspect = 2.0

// Viewport maps world coordinates to screen cells.
type Viewport struct {
	Origin mgl64.Vec2 // World point drawn at cell (0, 0)
	Scale  float64    // World units per cell horizontally
}

// NewViewport creates a viewport; non-positive scale falls back to 1.
func NewViewport(origin mgl64.Vec2, scale float64) Viewport {
	if scale <= 0 {
		scale = 1
	}
	return Viewport{Origin: origin, Scale: scale}
}

// FitViewport returns a viewport that shows all of b on a screen of w×h cells.
func FitViewport(b Bounds, w, h int) Viewport {
	if w <= 0 || h <= 0 {
		return NewViewport(mgl64.Vec2{b.Left, b.Top}, 1)
	}
	sx := b.Width() / float64(w)
	sy := b.Height() / (float64(h) * cellAspect)
	return NewViewport(mgl64.Vec2{b.Left, b.Top}, math.Max(sx, sy))
}

// ToCell converts a world point to cell coordinates.
func (v Viewport) ToCell(p mgl64.Vec2) (int, int) {
	local := p.Sub(v.Origin)
	x := int(math.Round(local[0] / v.Scale))
	y := int(math.Round(local[1] / (v.Scale * cellAspect)))
	return x, y
}

// CellSize returns a world length in horizontal cells.
func (v Viewport) CellSize(length float64) float64 {
	return length / v.Scale
}
