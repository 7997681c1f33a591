package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// resolve applies one side of a pair resolution to self.
//
// Fixed and Passive bodies never move. Nothing moves out of a Passive body.
// Movable bodies are displaced by share·intersect, then Elastic bodies
// bounce and Active bodies lose the velocity that drives them into other.
func resolve(self *Body, other CollisionType, otherVel, intersect mgl64.Vec2, side core.Side, share float64) {
	if !self.CollisionType.movable() {
		return
	}
	if other == Passive || other == PreventCollision {
		return
	}
	displace(self, intersect, share)
	switch self.CollisionType {
	case Elastic:
		bounce(self, side)
	case Active:
		cancelVelocity(self, otherVel, intersect)
	}
}

// displace moves the body by a share of the intersection vector.
func displace(b *Body, intersect mgl64.Vec2, share float64) {
	b.Pos = b.Pos.Add(intersect.Mul(share))
}

// bounce forces the velocity component facing the hit side away from it.
func bounce(b *Body, side core.Side) {
	switch side {
	case core.SideLeft:
		b.Vel[0] = math.Abs(b.Vel[0])
	case core.SideRight:
		b.Vel[0] = -math.Abs(b.Vel[0])
	case core.SideTop:
		b.Vel[1] = math.Abs(b.Vel[1])
	case core.SideBottom:
		b.Vel[1] = -math.Abs(b.Vel[1])
	}
}

// cancelVelocity clamps each velocity component along a non-zero axis of
// intersect to the other body's velocity.
func cancelVelocity(b *Body, otherVel, intersect mgl64.Vec2) {
	for axis := 0; axis < 2; axis++ {
		if intersect[axis] != 0 {
			b.Vel[axis] = cancelAxis(b.Vel[axis], otherVel[axis])
		}
	}
}

// cancelAxis keeps the slower of two same-direction speeds; opposing
// speeds cancel to zero.
func cancelAxis(self, other float64) float64 {
	switch {
	case self <= 0 && other <= 0:
		return math.Max(self, other)
	case self >= 0 && other >= 0:
		return math.Min(self, other)
	default:
		return 0
	}
}
