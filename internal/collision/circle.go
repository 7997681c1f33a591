package collision

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// Circle is a circular area centered at an offset from its body position.
// Body rotation does not move the center.
type Circle struct {
	body        *Body
	offset      mgl64.Vec2
	radius      float64
	defaultMass float64
}

// NewCircle creates a circle area. A negative radius is rejected.
func NewCircle(body *Body, offset mgl64.Vec2, radius float64, opts ...Option) (*Circle, error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, fmt.Errorf("%w: circle radius %v", ErrDegenerateShape, radius)
	}
	o := newAreaOptions(opts)
	return &Circle{
		body:        body,
		offset:      offset,
		radius:      radius,
		defaultMass: o.defaultMass,
	}, nil
}

func (c *Circle) Kind() Kind  { return KindCircle }
func (c *Circle) Body() *Body { return c.body }

// Radius returns the circle radius.
func (c *Circle) Radius() float64 { return c.radius }

// Offset returns the center offset relative to the body.
func (c *Circle) Offset() mgl64.Vec2 { return c.offset }

// Center returns the world-space center.
func (c *Circle) Center() mgl64.Vec2 {
	return c.body.position().Add(c.offset)
}

// Bounds returns the radius-expanded box around the center.
func (c *Circle) Bounds() core.Bounds {
	ctr := c.Center()
	return core.NewBounds(ctr[0]-c.radius, ctr[1]-c.radius, ctr[0]+c.radius, ctr[1]+c.radius)
}

// FurthestPoint returns center + radius in the given direction.
func (c *Circle) FurthestPoint(direction mgl64.Vec2) mgl64.Vec2 {
	return c.Center().Add(core.Normalize(direction).Mul(c.radius))
}

// Axes is nil: a circle has infinitely many candidate axes, so the circle
// tests add the one that matters against the other shape.
func (c *Circle) Axes() []mgl64.Vec2 { return nil }

// MomentOfInertia returns m·r²/2.
func (c *Circle) MomentOfInertia() float64 {
	return massOf(c.body, c.defaultMass) * c.radius * c.radius / 2
}

// Project returns center·axis ± radius.
func (c *Circle) Project(axis mgl64.Vec2) core.Projection {
	d := c.Center().Dot(axis)
	r := c.radius * axis.Len()
	return core.NewProjection(d-r, d+r)
}

// RayCast intersects the ray with the circle analytically and returns the
// nearest hit in front of the ray origin. A ray starting inside the circle
// hits the far side.
func (c *Circle) RayCast(ray core.Ray, max float64) (mgl64.Vec2, bool) {
	oc := ray.Pos.Sub(c.Center())
	b := ray.Dir.Dot(oc)
	disc := b*b - oc.Dot(oc) + c.radius*c.radius
	if disc < 0 {
		return mgl64.Vec2{}, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 || t > max {
		return mgl64.Vec2{}, false
	}
	return ray.Point(t), true
}

// Contains reports whether point lies inside or on the circle.
func (c *Circle) Contains(point mgl64.Vec2) bool {
	return core.Distance(c.Center(), point) <= c.radius
}

// Collide dispatches to the jump table.
func (c *Circle) Collide(other Area) (*Contact, error) {
	return Collide(c, other)
}

// SeparatingAxis runs SAT between the circle and a polygon or edge.
// Besides the other shape's axes it tests the axis from the other shape's
// closest vertex to the circle center. It returns the minimum overlap axis
// scaled by the overlap, or false if any axis separates the shapes.
func (c *Circle) SeparatingAxis(other Area) (mgl64.Vec2, bool) {
	axis, overlap, ok := c.separatingAxis(other)
	if !ok {
		return mgl64.Vec2{}, false
	}
	return axis.Mul(overlap), true
}

func (c *Circle) separatingAxis(other Area) (mgl64.Vec2, float64, bool) {
	axes := other.Axes()
	if p, ok := other.(polygonal); ok {
		ctr := c.Center()
		closest := closestVertex(p.WorldPoints(), ctr)
		if extra := ctr.Sub(closest); !core.IsZero(extra) {
			axes = append(axes, core.Normalize(extra))
		}
	}
	return separatingAxis(c, other, axes)
}

// DebugDraw plots the circumference and a spoke showing body rotation.
func (c *Circle) DebugDraw(dst *core.Screen, vp core.Viewport, color core.Color) {
	ctr := c.Center()
	steps := int(math.Ceil(vp.CellSize(c.radius) * 2 * math.Pi))
	if steps < 8 {
		steps = 8
	}
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := vp.ToCell(ctr.Add(mgl64.Vec2{math.Cos(a), math.Sin(a)}.Mul(c.radius)))
		dst.SetColored(x, y, 'o', color)
	}
	rot := 0.0
	if c.body != nil {
		rot = c.body.Rotation
	}
	x0, y0 := vp.ToCell(ctr)
	x1, y1 := vp.ToCell(ctr.Add(mgl64.Vec2{math.Cos(rot), math.Sin(rot)}.Mul(c.radius)))
	dst.DrawLine(x0, y0, x1, y1, '·', color)
}
