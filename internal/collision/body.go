// Package collision implements the narrow phase of 2D collision detection:
// convex shape areas (circle, polygon, edge), a jump table of
// separating-axis tests, contacts, and the resolution of collision pairs
// into position and velocity corrections.
//
// Everything here is synchronous and single-threaded. Callers must evaluate
// each unordered body pair at most once per simulation step.
package collision

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// DefaultMass is used by areas that have no owning body.
const DefaultMass = 10.0

// CollisionType governs whether and how a body is moved by resolution.
type CollisionType int

const (
	// PreventCollision bodies are never tested and raise no events.
	PreventCollision CollisionType = iota
	// Passive bodies raise events but neither move nor block others.
	Passive
	// Active bodies are pushed out of Fixed and Active bodies and have
	// their approaching velocity cancelled.
	Active
	// Elastic bodies are pushed out like Active ones and bounce.
	Elastic
	// Fixed bodies are never moved by resolution.
	Fixed
)

// String returns the lowercase name used in scenario files.
func (c CollisionType) String() string {
	switch c {
	case PreventCollision:
		return "prevent"
	case Passive:
		return "passive"
	case Active:
		return "active"
	case Elastic:
		return "elastic"
	case Fixed:
		return "fixed"
	default:
		return fmt.Sprintf("CollisionType(%d)", int(c))
	}
}

// ParseCollisionType is the inverse of CollisionType.String.
func ParseCollisionType(s string) (CollisionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prevent", "preventcollision", "none":
		return PreventCollision, nil
	case "passive":
		return Passive, nil
	case "active", "":
		return Active, nil
	case "elastic":
		return Elastic, nil
	case "fixed":
		return Fixed, nil
	}
	return PreventCollision, fmt.Errorf("collision: unknown collision type %q", s)
}

// movable reports whether resolution may displace a body of this type.
func (c CollisionType) movable() bool {
	return c == Active || c == Elastic
}

// Body is the minimal rigid body state the collision core reads and mutates.
// Bodies are owned by the caller; areas only point at them.
type Body struct {
	ID            string
	Pos           mgl64.Vec2
	Rotation      float64 // Radians, clockwise on screen
	Vel           mgl64.Vec2
	Mass          float64
	CollisionType CollisionType

	handlers []Handler
}

// NewBody returns a body at pos. Non-positive mass falls back to DefaultMass.
func NewBody(id string, pos mgl64.Vec2, mass float64, ct CollisionType) *Body {
	if mass <= 0 {
		mass = DefaultMass
	}
	return &Body{
		ID:            id,
		Pos:           pos,
		Mass:          mass,
		CollisionType: ct,
	}
}

// String identifies the body in logs.
func (b *Body) String() string {
	if b == nil {
		return "<nil>"
	}
	if b.ID != "" {
		return b.ID
	}
	return fmt.Sprintf("body@%p", b)
}

// transform maps a local point to world space: rotate, then translate.
func (b *Body) transform(local mgl64.Vec2) mgl64.Vec2 {
	if b == nil {
		return local
	}
	return core.Rotate(local, b.Rotation).Add(b.Pos)
}

func (b *Body) position() mgl64.Vec2 {
	if b == nil {
		return mgl64.Vec2{}
	}
	return b.Pos
}
