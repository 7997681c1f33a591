package collision

import (
	"github.com/charmbracelet/log"
)

// Candidate is a pair of areas proposed by a broad phase.
type Candidate struct {
	A, B Area
}

// Narrowphase turns broad phase candidates into resolved pairs.
type Narrowphase struct {
	logger *log.Logger
}

// NewNarrowphase creates a narrow phase. A nil logger uses log.Default().
func NewNarrowphase(logger *log.Logger) *Narrowphase {
	if logger == nil {
		logger = log.Default()
	}
	return &Narrowphase{logger: logger}
}

// Detect runs the collision test for each candidate and returns at most
// one pair per unordered body pair, in candidate order. Candidates whose
// bodies prevent collision, or whose areas share a body, are skipped.
// Unsupported shape pairings and body-less areas are logged and skipped.
func (n *Narrowphase) Detect(candidates []Candidate) []*Pair {
	seen := make(pairSet)
	var pairs []*Pair
	for _, c := range candidates {
		if c.A == nil || c.B == nil {
			continue
		}
		ba, bb := c.A.Body(), c.B.Body()
		if ba != nil && bb != nil {
			if ba == bb || seen.has(ba, bb) {
				continue
			}
			if ba.CollisionType == PreventCollision || bb.CollisionType == PreventCollision {
				continue
			}
		}

		contact, err := c.A.Collide(c.B)
		if err != nil {
			n.logger.Warn("skipping candidate", "a", c.A.Kind(), "b", c.B.Kind(), "error", err)
			continue
		}
		if contact == nil {
			continue
		}
		pair, err := NewPair(contact)
		if err != nil {
			n.logger.Warn("skipping contact", "contact", contact, "error", err)
			continue
		}
		seen.add(pair.Left, pair.Right)
		n.logger.Debug("contact", "pair", pair, "side", pair.Side, "depth", contact.Depth())
		pairs = append(pairs, pair)
	}
	return pairs
}

// Step detects collisions among candidates and evaluates every pair in order.
func (n *Narrowphase) Step(candidates []Candidate) []*Pair {
	pairs := n.Detect(candidates)
	for _, p := range pairs {
		p.Evaluate()
	}
	return pairs
}
