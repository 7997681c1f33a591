package collision

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// Contact describes an overlap between two areas from A's perspective.
type Contact struct {
	A, B Area

	// MTV is the minimum translation vector: moving A's body by MTV
	// separates the two areas.
	MTV mgl64.Vec2
	// Normal is the unit collision normal pointing from A toward B.
	Normal mgl64.Vec2
	// Point is an approximate world-space point of contact.
	Point mgl64.Vec2
	// Side is the side of A that was hit.
	Side core.Side
}

func newContact(a, b Area, normal mgl64.Vec2, depth float64, point mgl64.Vec2) *Contact {
	mtv := normal.Mul(-depth)
	return &Contact{
		A:      a,
		B:      b,
		MTV:    mtv,
		Normal: normal,
		Point:  point,
		Side:   core.SideFromIntersect(mtv),
	}
}

// Depth returns the penetration depth, the length of the MTV.
func (c *Contact) Depth() float64 {
	return c.MTV.Len()
}

// Reverse returns the same contact seen from B.
func (c *Contact) Reverse() *Contact {
	return &Contact{
		A:      c.B,
		B:      c.A,
		MTV:    core.Negate(c.MTV),
		Normal: core.Negate(c.Normal),
		Point:  c.Point,
		Side:   c.Side.Opposite(),
	}
}

func (c *Contact) String() string {
	return fmt.Sprintf("%s(%s)/%s(%s) mtv=(%.3f, %.3f) side=%s",
		c.A.Kind(), c.A.Body(), c.B.Kind(), c.B.Body(), c.MTV[0], c.MTV[1], c.Side)
}
