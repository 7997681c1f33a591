package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Side indicates which side of a body was hit.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Opposite returns the side facing s.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideNone
	}
}

// ParseSide is the inverse of Side.String.
func ParseSide(s string) Side {
	switch s {
	case "top":
		return SideTop
	case "bottom":
		return SideBottom
	case "left":
		return SideLeft
	case "right":
		return SideRight
	default:
		return SideNone
	}
}

// SideFromIntersect classifies the side of a body that was hit, given the
// displacement that pushes the body out of the collision.
// A push to the left means the body's right side was hit, a push upward
// means its bottom was hit.
func SideFromIntersect(intersect mgl64.Vec2) Side {
	if IsZero(intersect) {
		return SideNone
	}
	if math.Abs(intersect[0]) > math.Abs(intersect[1]) {
		if intersect[0] < 0 {
			return SideRight
		}
		return SideLeft
	}
	if intersect[1] < 0 {
		return SideBottom
	}
	return SideTop
}
