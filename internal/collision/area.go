package collision

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// Kind discriminates the shape variants known to the jump table.
type Kind int

const (
	KindCircle Kind = iota
	KindPolygon
	KindEdge

	kindCount
)

// String returns the shape name.
func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	case KindEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// Area is a convex collision shape described in the local space of an
// optional owning body. An area without a body uses the identity transform.
type Area interface {
	// Kind selects the jump table row for this area.
	Kind() Kind
	// Body returns the owning body, or nil.
	Body() *Body

	Center() mgl64.Vec2
	Bounds() core.Bounds
	// FurthestPoint returns the support point in the given direction.
	FurthestPoint(direction mgl64.Vec2) mgl64.Vec2
	// Axes returns unit candidate separating axes; nil for circles.
	Axes() []mgl64.Vec2
	MomentOfInertia() float64
	// Project returns the interval covered by the area on a unit axis.
	Project(axis mgl64.Vec2) core.Projection
	// RayCast returns the nearest point hit within max distance along the ray.
	RayCast(ray core.Ray, max float64) (mgl64.Vec2, bool)
	Contains(point mgl64.Vec2) bool
	// Collide runs the narrow phase test against other. A nil contact with
	// a nil error means the shapes are separated or only touching.
	Collide(other Area) (*Contact, error)
	// DebugDraw plots the outline of the area into dst.
	DebugDraw(dst *core.Screen, vp core.Viewport, c core.Color)
}

// Option configures area construction.
type Option func(*areaOptions)

type areaOptions struct {
	defaultMass float64
}

// WithDefaultMass sets the mass used for inertia while the area has no body.
func WithDefaultMass(mass float64) Option {
	return func(o *areaOptions) {
		if mass > 0 {
			o.defaultMass = mass
		}
	}
}

func newAreaOptions(opts []Option) areaOptions {
	o := areaOptions{defaultMass: DefaultMass}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func massOf(body *Body, defaultMass float64) float64 {
	if body != nil {
		return body.Mass
	}
	return defaultMass
}

// polygonal is implemented by areas backed by a vertex list.
type polygonal interface {
	Area
	WorldPoints() []mgl64.Vec2
}

// closestVertex returns the vertex nearest to p.
func closestVertex(points []mgl64.Vec2, p mgl64.Vec2) mgl64.Vec2 {
	best := points[0]
	bestDist := best.Sub(p).LenSqr()
	for _, v := range points[1:] {
		if d := v.Sub(p).LenSqr(); d < bestDist {
			best, bestDist = v, d
		}
	}
	return best
}

// furthestVertex returns the vertex maximizing dot(vertex, direction).
func furthestVertex(points []mgl64.Vec2, direction mgl64.Vec2) mgl64.Vec2 {
	best := points[0]
	bestDot := best.Dot(direction)
	for _, v := range points[1:] {
		if d := v.Dot(direction); d > bestDot {
			best, bestDot = v, d
		}
	}
	return best
}

// drawOutline connects consecutive points, closing the loop when closed is set.
func drawOutline(dst *core.Screen, vp core.Viewport, points []mgl64.Vec2, closed bool, r rune, c core.Color) {
	n := len(points)
	last := n - 1
	if closed {
		last = n
	}
	for i := 0; i < last; i++ {
		x0, y0 := vp.ToCell(points[i])
		x1, y1 := vp.ToCell(points[(i+1)%n])
		dst.DrawLine(x0, y0, x1, y1, r, c)
	}
}
