package collision

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// CollisionEvent is delivered to both bodies of an evaluated pair, each
// from its own perspective.
type CollisionEvent struct {
	Self      *Body
	Other     *Body
	Side      core.Side  // Side of Self that was hit
	Intersect mgl64.Vec2 // Displacement that separates Self from Other
}

// Handler receives collision events.
type Handler func(CollisionEvent)

// OnCollision registers a handler for collision events on this body.
// Handlers run synchronously, in registration order, before resolution.
func (b *Body) OnCollision(h Handler) {
	if h == nil {
		return
	}
	b.handlers = append(b.handlers, h)
}

func (b *Body) emit(ev CollisionEvent) {
	for _, h := range b.handlers {
		h(ev)
	}
}
