package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used when comparing world-space distances.
const Epsilon = 1e-9

// Unit direction vectors in screen space (Y grows downward).
var (
	VecLeft  = mgl64.Vec2{-1, 0}
	VecRight = mgl64.Vec2{1, 0}
	VecUp    = mgl64.Vec2{0, -1}
	VecDown  = mgl64.Vec2{0, 1}
)

// Cross returns the z component of the 3D cross product of a and b.
func Cross(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// Perpendicular returns v rotated 90 degrees: (-y, x).
func Perpendicular(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v[1], v[0]}
}

// Normal returns the unit perpendicular of v, or the zero vector if v is zero.
func Normal(v mgl64.Vec2) mgl64.Vec2 {
	return Normalize(Perpendicular(v))
}

// Normalize returns v scaled to unit length.
// Unlike mgl64.Vec2.Normalize it returns the zero vector for zero input
// instead of NaNs.
func Normalize(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / l)
}

// Negate returns -v.
func Negate(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v[0], -v[1]}
}

// Rotate rotates v by angle radians around the origin.
func Rotate(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	if angle == 0 {
		return v
	}
	return mgl64.Rotate2D(angle).Mul2x1(v)
}

// Average returns the midpoint of a and b.
func Average(a, b mgl64.Vec2) mgl64.Vec2 {
	return a.Add(b).Mul(0.5)
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b mgl64.Vec2) float64 {
	return a.Sub(b).Len()
}

// IsZero reports whether v has (near) zero length.
func IsZero(v mgl64.Vec2) bool {
	return math.Abs(v[0]) < Epsilon && math.Abs(v[1]) < Epsilon
}
