package collision

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

type collideFunc func(a, b Area) (*Contact, error)

// jumpTable is indexed by [a.Kind()][b.Kind()]. Entries below the diagonal
// run the mirrored test and reverse its contact.
var jumpTable = [kindCount][kindCount]collideFunc{
	KindCircle: {
		KindCircle:  entry(collideCircleCircle),
		KindPolygon: entry(collideCirclePolygon),
		KindEdge:    entry(collideCircleEdge),
	},
	KindPolygon: {
		KindCircle:  flipped(entry(collideCirclePolygon)),
		KindPolygon: entry(collidePolygonPolygon),
		KindEdge:    entry(collidePolygonEdge),
	},
	KindEdge: {
		KindCircle:  flipped(entry(collideCircleEdge)),
		KindPolygon: flipped(entry(collidePolygonEdge)),
		KindEdge:    entry(collideEdgeEdge),
	},
}

// Collide runs the narrow phase test for a and b. The returned contact is
// from a's perspective; nil means separated or only touching.
func Collide(a, b Area) (*Contact, error) {
	ka, kb := a.Kind(), b.Kind()
	if ka < 0 || ka >= kindCount || kb < 0 || kb >= kindCount {
		return nil, &UnsupportedShapeError{A: ka, B: kb}
	}
	fn := jumpTable[ka][kb]
	if fn == nil {
		return nil, &UnsupportedShapeError{A: ka, B: kb}
	}
	return fn(a, b)
}

// entry adapts a typed test to the table signature.
func entry[A, B Area](fn func(A, B) *Contact) collideFunc {
	return func(a, b Area) (*Contact, error) {
		ta, okA := a.(A)
		tb, okB := b.(B)
		if !okA || !okB {
			return nil, &UnsupportedShapeError{A: a.Kind(), B: b.Kind()}
		}
		return fn(ta, tb), nil
	}
}

func flipped(fn collideFunc) collideFunc {
	return func(a, b Area) (*Contact, error) {
		c, err := fn(b, a)
		if c == nil || err != nil {
			return nil, err
		}
		return c.Reverse(), nil
	}
}

func collideCircleCircle(a, b *Circle) *Contact {
	d := b.Center().Sub(a.Center())
	dist := d.Len()
	radii := a.radius + b.radius
	if dist >= radii {
		return nil
	}
	normal := core.Normalize(d)
	if core.IsZero(normal) {
		normal = core.VecRight
	}
	return newContact(a, b, normal, radii-dist, a.FurthestPoint(normal))
}

func collideCirclePolygon(c *Circle, p *Polygon) *Contact {
	return collideCircle(c, p)
}

func collideCircleEdge(c *Circle, e *Edge) *Contact {
	return collideCircle(c, e)
}

func collideCircle(c *Circle, other polygonal) *Contact {
	axis, depth, ok := c.separatingAxis(other)
	if !ok {
		return nil
	}
	normal := orient(axis, c, other)
	return newContact(c, other, normal, depth, c.FurthestPoint(normal))
}

func collidePolygonPolygon(a, b *Polygon) *Contact {
	return collideConvex(a, b)
}

func collidePolygonEdge(p *Polygon, e *Edge) *Contact {
	return collideConvex(p, e)
}

func collideEdgeEdge(a, b *Edge) *Contact {
	return collideConvex(a, b)
}

func collideConvex(a, b Area) *Contact {
	axes := append(append([]mgl64.Vec2(nil), a.Axes()...), b.Axes()...)
	axis, depth, ok := separatingAxis(a, b, axes)
	if !ok {
		return nil
	}
	normal := orient(axis, a, b)
	return newContact(a, b, normal, depth, contactPoint(a, b, normal))
}
