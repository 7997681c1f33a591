package collision

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// Polygon is a convex polygon area. Vertices are in body-local space and
// their order is the winding order.
type Polygon struct {
	body        *Body
	offset      mgl64.Vec2
	points      []mgl64.Vec2
	defaultMass float64
}

// NewPolygon creates a convex polygon area. Fewer than three vertices,
// zero area or a non-convex outline are rejected.
func NewPolygon(body *Body, offset mgl64.Vec2, points []mgl64.Vec2, opts ...Option) (*Polygon, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", ErrDegenerateShape, len(points))
	}
	if err := checkConvex(points); err != nil {
		return nil, err
	}
	o := newAreaOptions(opts)
	pts := make([]mgl64.Vec2, len(points))
	copy(pts, points)
	return &Polygon{
		body:        body,
		offset:      offset,
		points:      pts,
		defaultMass: o.defaultMass,
	}, nil
}

// NewBox creates a width×height rectangle centered on the body position.
func NewBox(body *Body, width, height float64, opts ...Option) (*Polygon, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: box size %vx%v", ErrDegenerateShape, width, height)
	}
	hw, hh := width/2, height/2
	return NewPolygon(body, mgl64.Vec2{}, []mgl64.Vec2{
		{-hw, -hh},
		{hw, -hh},
		{hw, hh},
		{-hw, hh},
	}, opts...)
}

// checkConvex verifies every turn has the same orientation and the
// outline encloses a non-zero area.
func checkConvex(points []mgl64.Vec2) error {
	n := len(points)
	sign := 0.0
	area := 0.0
	for i := 0; i < n; i++ {
		a, b, c := points[i], points[(i+1)%n], points[(i+2)%n]
		turn := core.Cross(b.Sub(a), c.Sub(b))
		area += core.Cross(a, b)
		if math.Abs(turn) < core.Epsilon {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, turn)
		} else if math.Copysign(1, turn) != sign {
			return fmt.Errorf("%w: polygon is not convex", ErrDegenerateShape)
		}
	}
	if math.Abs(area) < core.Epsilon {
		return fmt.Errorf("%w: polygon has zero area", ErrDegenerateShape)
	}
	return nil
}

func (p *Polygon) Kind() Kind  { return KindPolygon }
func (p *Polygon) Body() *Body { return p.body }

// Points returns a copy of the local vertices.
func (p *Polygon) Points() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(p.points))
	copy(out, p.points)
	return out
}

// WorldPoints returns the vertices rotated by the body rotation and
// translated by the body position plus offset.
func (p *Polygon) WorldPoints() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(p.points))
	for i, pt := range p.points {
		out[i] = p.body.transform(pt).Add(p.offset)
	}
	return out
}

// Sides returns the polygon edges in world space.
func (p *Polygon) Sides() []core.Line {
	pts := p.WorldPoints()
	lines := make([]core.Line, len(pts))
	for i := range pts {
		lines[i] = core.NewLine(pts[i], pts[(i+1)%len(pts)])
	}
	return lines
}

// Center returns the vertex centroid in world space.
func (p *Polygon) Center() mgl64.Vec2 {
	var sum mgl64.Vec2
	pts := p.WorldPoints()
	for _, pt := range pts {
		sum = sum.Add(pt)
	}
	return sum.Mul(1 / float64(len(pts)))
}

// Bounds returns the box around the world vertices.
func (p *Polygon) Bounds() core.Bounds {
	return core.BoundsFromPoints(p.WorldPoints())
}

// FurthestPoint returns the vertex maximizing dot(vertex, direction).
func (p *Polygon) FurthestPoint(direction mgl64.Vec2) mgl64.Vec2 {
	return furthestVertex(p.WorldPoints(), direction)
}

// Axes returns the unit edge normals with parallel duplicates removed.
func (p *Polygon) Axes() []mgl64.Vec2 {
	pts := p.WorldPoints()
	axes := make([]mgl64.Vec2, 0, len(pts))
next:
	for i := range pts {
		n := core.Normal(pts[(i+1)%len(pts)].Sub(pts[i]))
		if core.IsZero(n) {
			continue
		}
		for _, a := range axes {
			if math.Abs(core.Cross(a, n)) < core.Epsilon {
				continue next
			}
		}
		axes = append(axes, n)
	}
	return axes
}

// MomentOfInertia uses the polygon inertia formula over the local
// vertices: (m/6)·Σ|pj×pi|(pi·pi + pi·pj + pj·pj) / Σ|pj×pi|.
func (p *Polygon) MomentOfInertia() float64 {
	mass := massOf(p.body, p.defaultMass)
	numerator, denominator := 0.0, 0.0
	for i, pi := range p.points {
		pj := p.points[(i+1)%len(p.points)]
		cross := core.Cross(pj, pi)
		numerator += cross * (pi.Dot(pi) + pi.Dot(pj) + pj.Dot(pj))
		denominator += cross
	}
	if denominator == 0 {
		return 0
	}
	return mass / 6 * (numerator / denominator)
}

// Project returns the interval of all world vertices on axis.
func (p *Polygon) Project(axis mgl64.Vec2) core.Projection {
	return core.ProjectPoints(p.WorldPoints(), axis)
}

// RayCast returns the nearest side hit with 0 <= t <= max.
func (p *Polygon) RayCast(ray core.Ray, max float64) (mgl64.Vec2, bool) {
	best := math.Inf(1)
	for _, side := range p.Sides() {
		if t := ray.Intersect(side); t >= 0 && t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) || best > max {
		return mgl64.Vec2{}, false
	}
	return ray.Point(best), true
}

// Contains reports whether point lies inside or on the polygon.
func (p *Polygon) Contains(point mgl64.Vec2) bool {
	pts := p.WorldPoints()
	sign := 0.0
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		c := core.Cross(b.Sub(a), point.Sub(a))
		if math.Abs(c) < core.Epsilon {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, c)
		} else if math.Copysign(1, c) != sign {
			return false
		}
	}
	return true
}

// Collide dispatches to the jump table.
func (p *Polygon) Collide(other Area) (*Contact, error) {
	return Collide(p, other)
}

// SeparatingAxis runs SAT over the axes of both shapes and returns the
// minimum overlap axis scaled by the overlap, or false if separated.
func (p *Polygon) SeparatingAxis(other Area) (mgl64.Vec2, bool) {
	axis, overlap, ok := separatingAxis(p, other, append(p.Axes(), other.Axes()...))
	if !ok {
		return mgl64.Vec2{}, false
	}
	return axis.Mul(overlap), true
}

// DebugDraw plots the closed outline.
func (p *Polygon) DebugDraw(dst *core.Screen, vp core.Viewport, c core.Color) {
	drawOutline(dst, vp, p.WorldPoints(), true, '#', c)
}
