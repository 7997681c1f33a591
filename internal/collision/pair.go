package collision

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// Pair is a colliding pair of bodies ready to be resolved. Intersect and
// Side are from Left's perspective.
type Pair struct {
	Left, Right *Body
	Intersect   mgl64.Vec2
	Side        core.Side

	// Contact is the narrow phase result the pair was built from.
	Contact *Contact
}

// NewPair builds a pair from a contact between two body-backed areas.
func NewPair(c *Contact) (*Pair, error) {
	left, right := c.A.Body(), c.B.Body()
	if left == nil || right == nil {
		return nil, fmt.Errorf("%w: %s-%s contact", ErrNoBody, c.A.Kind(), c.B.Kind())
	}
	return &Pair{
		Left:      left,
		Right:     right,
		Intersect: c.MTV,
		Side:      c.Side,
		Contact:   c,
	}, nil
}

// Equals reports whether both pairs involve the same two bodies, in either order.
func (p *Pair) Equals(other *Pair) bool {
	if other == nil {
		return false
	}
	return (p.Left == other.Left && p.Right == other.Right) ||
		(p.Left == other.Right && p.Right == other.Left)
}

func (p *Pair) String() string {
	return fmt.Sprintf("%s<->%s", p.Left, p.Right)
}

// Evaluate delivers collision events to both bodies and then resolves the
// left body followed by the right one. Each side sees the other's velocity
// as it was before the pair was resolved.
func (p *Pair) Evaluate() {
	left, right := p.Left, p.Right
	rightIntersect := core.Negate(p.Intersect)
	rightSide := p.Side.Opposite()

	left.emit(CollisionEvent{Self: left, Other: right, Side: p.Side, Intersect: p.Intersect})
	right.emit(CollisionEvent{Self: right, Other: left, Side: rightSide, Intersect: rightIntersect})

	share := 1.0
	if left.CollisionType.movable() && right.CollisionType.movable() {
		share = 0.5
	}
	leftVel, rightVel := left.Vel, right.Vel
	resolve(left, right.CollisionType, rightVel, p.Intersect, p.Side, share)
	resolve(right, left.CollisionType, leftVel, rightIntersect, rightSide, share)
}

type pairKey struct {
	a, b *Body
}

// pairSet remembers which unordered body pairs were already produced.
type pairSet map[pairKey]struct{}

func (s pairSet) has(a, b *Body) bool {
	if _, ok := s[pairKey{a, b}]; ok {
		return true
	}
	_, ok := s[pairKey{b, a}]
	return ok
}

func (s pairSet) add(a, b *Body) {
	s[pairKey{a, b}] = struct{}{}
}
