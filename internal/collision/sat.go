package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// separatingAxis projects both areas onto every axis. It returns the unit
// axis of minimum overlap and the overlap, or false as soon as one axis
// separates them. Touching (zero overlap) counts as separated.
//
// Axes are compared in a canonical orientation and exact ties are broken
// by the axis itself, so the result does not depend on the order in which
// the axes were gathered.
func separatingAxis(a, b Area, axes []mgl64.Vec2) (mgl64.Vec2, float64, bool) {
	minOverlap := math.Inf(1)
	var minAxis mgl64.Vec2
	for _, axis := range axes {
		axis = canonicalAxis(core.Normalize(axis))
		if core.IsZero(axis) {
			continue
		}
		overlap := a.Project(axis).Overlap(b.Project(axis))
		if overlap <= core.Epsilon {
			return mgl64.Vec2{}, 0, false
		}
		switch {
		case overlap < minOverlap-core.Epsilon:
			minOverlap, minAxis = overlap, axis
		case overlap <= minOverlap+core.Epsilon && axisLess(axis, minAxis):
			minOverlap, minAxis = overlap, axis
		}
	}
	if math.IsInf(minOverlap, 1) {
		return mgl64.Vec2{}, 0, false
	}
	return minAxis, minOverlap, true
}

// canonicalAxis flips axis so that its first non-zero component is positive.
func canonicalAxis(axis mgl64.Vec2) mgl64.Vec2 {
	if axis[0] < -core.Epsilon || (math.Abs(axis[0]) <= core.Epsilon && axis[1] < 0) {
		return core.Negate(axis)
	}
	return axis
}

func axisLess(a, b mgl64.Vec2) bool {
	if math.Abs(a[0]-b[0]) > core.Epsilon {
		return a[0] > b[0]
	}
	return a[1] > b[1]
}

// orient flips normal so that it points from a toward b.
func orient(normal mgl64.Vec2, a, b Area) mgl64.Vec2 {
	if normal.Dot(b.Center().Sub(a.Center())) < 0 {
		return core.Negate(normal)
	}
	return normal
}

// contactPoint approximates the point of contact: support points of each
// area that lie inside the other, averaged when both qualify.
func contactPoint(a, b Area, normal mgl64.Vec2) mgl64.Vec2 {
	pa := a.FurthestPoint(normal)
	pb := b.FurthestPoint(core.Negate(normal))
	inB, inA := b.Contains(pa), a.Contains(pb)
	switch {
	case inB && inA:
		return core.Average(pa, pb)
	case inB:
		return pa
	case inA:
		return pb
	}
	return core.Average(pa, pb)
}
