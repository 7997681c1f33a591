package collision

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// Edge is a line segment area. Its endpoints are in body-local space.
type Edge struct {
	body        *Body
	begin, end  mgl64.Vec2
	defaultMass float64
}

// NewEdge creates a segment area. Coincident endpoints are rejected.
func NewEdge(body *Body, begin, end mgl64.Vec2, opts ...Option) (*Edge, error) {
	if core.IsZero(end.Sub(begin)) {
		return nil, fmt.Errorf("%w: edge has zero length", ErrDegenerateShape)
	}
	o := newAreaOptions(opts)
	return &Edge{
		body:        body,
		begin:       begin,
		end:         end,
		defaultMass: o.defaultMass,
	}, nil
}

func (e *Edge) Kind() Kind  { return KindEdge }
func (e *Edge) Body() *Body { return e.body }

// Begin returns the world-space start point.
func (e *Edge) Begin() mgl64.Vec2 { return e.body.transform(e.begin) }

// End returns the world-space end point.
func (e *Edge) End() mgl64.Vec2 { return e.body.transform(e.end) }

// WorldPoints returns both endpoints in world space.
func (e *Edge) WorldPoints() []mgl64.Vec2 {
	return []mgl64.Vec2{e.Begin(), e.End()}
}

// Line returns the segment in world space.
func (e *Edge) Line() core.Line {
	return core.NewLine(e.Begin(), e.End())
}

// Slope returns the unit direction from begin to end.
func (e *Edge) Slope() mgl64.Vec2 { return e.Line().Slope() }

// Length returns the segment length.
func (e *Edge) Length() float64 { return core.Distance(e.begin, e.end) }

// Center returns the segment midpoint in world space.
func (e *Edge) Center() mgl64.Vec2 {
	return core.Average(e.Begin(), e.End())
}

func (e *Edge) Bounds() core.Bounds {
	return core.BoundsFromPoints(e.WorldPoints())
}

// FurthestPoint returns the endpoint further along direction.
func (e *Edge) FurthestPoint(direction mgl64.Vec2) mgl64.Vec2 {
	return furthestVertex(e.WorldPoints(), direction)
}

// Axes returns the normal and the direction of the segment, each in both
// orientations.
func (e *Edge) Axes() []mgl64.Vec2 {
	d := e.Slope()
	n := core.Perpendicular(d)
	return []mgl64.Vec2{n, core.Negate(n), d, core.Negate(d)}
}

// MomentOfInertia treats the edge as a point mass at half its length.
func (e *Edge) MomentOfInertia() float64 {
	half := e.Length() / 2
	return massOf(e.body, e.defaultMass) * half * half
}

func (e *Edge) Project(axis mgl64.Vec2) core.Projection {
	return core.ProjectPoints(e.WorldPoints(), axis)
}

// RayCast returns the crossing point if the ray hits the segment within max.
func (e *Edge) RayCast(ray core.Ray, max float64) (mgl64.Vec2, bool) {
	t := ray.Intersect(e.Line())
	if t < 0 || t > max {
		return mgl64.Vec2{}, false
	}
	return ray.Point(t), true
}

// Contains is always false: a segment encloses no area.
func (e *Edge) Contains(mgl64.Vec2) bool { return false }

// Collide dispatches to the jump table.
func (e *Edge) Collide(other Area) (*Contact, error) {
	return Collide(e, other)
}

// DebugDraw plots the segment.
func (e *Edge) DebugDraw(dst *core.Screen, vp core.Viewport, c core.Color) {
	drawOutline(dst, vp, e.WorldPoints(), false, '=', c)
}
