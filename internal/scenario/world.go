package scenario

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/collision"
	"github.com/vovakirdan/arcade-physics/internal/core"
)

// viewPadding is the world-space margin kept around the scene when fitting.
const viewPadding = 2.0

// Entity is a body, its area and how to draw it.
type Entity struct {
	Body  *collision.Body
	Area  collision.Area
	Color core.Color

	Hits     int       // Collision events received since reset
	LastSide core.Side // Side hit by the most recent event
}

// BodyState is a point-in-time copy of an entity for reporting.
type BodyState struct {
	ID       string
	Type     collision.CollisionType
	Pos      mgl64.Vec2
	Vel      mgl64.Vec2
	Hits     int
	LastSide core.Side
}

// World steps a scenario: integrate velocities, gather candidates whose
// bounds overlap, then run the narrow phase.
type World struct {
	scenario *Scenario
	cfg      core.RuntimeConfig
	logger   *log.Logger
	narrow   *collision.Narrowphase

	entities []*Entity
	gravity  float64
	view     core.Bounds
	state    core.SimState
	last     []core.ContactInfo
}

// New validates sc and returns a world for it. Call Reset before stepping.
func New(sc *Scenario) (*World, error) {
	if sc == nil {
		return nil, fmt.Errorf("%w: nil scenario", ErrInvalid)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &World{scenario: sc}, nil
}

// ID returns the scenario ID.
func (w *World) ID() string { return w.scenario.ID }

// Title returns the scenario title.
func (w *World) Title() string { return w.scenario.TitleOrID() }

// Scenario returns the scenario the world was built from.
func (w *World) Scenario() *Scenario { return w.scenario }

// Reset rebuilds every body from the scenario.
func (w *World) Reset(cfg core.RuntimeConfig) {
	if cfg.DT <= 0 {
		cfg.DT = core.DefaultConfig().DT
	}
	if cfg.DefaultMass <= 0 {
		cfg.DefaultMass = collision.DefaultMass
	}
	w.cfg = cfg
	w.logger = cfg.Logger
	if w.logger == nil {
		w.logger = log.Default()
	}
	w.narrow = collision.NewNarrowphase(w.logger)

	w.gravity = cfg.Gravity
	if w.scenario.Gravity != nil {
		w.gravity = *w.scenario.Gravity
	}

	w.entities = w.entities[:0]
	for _, spec := range w.scenario.Bodies {
		body, area, err := spec.Build(cfg.DefaultMass)
		if err != nil {
			// Unreachable for validated scenarios.
			w.logger.Error("cannot build body", "scenario", w.scenario.ID, "error", err)
			continue
		}
		color, _ := core.ParseColor(spec.Color)
		e := &Entity{Body: body, Area: area, Color: color}
		body.OnCollision(func(ev collision.CollisionEvent) {
			e.Hits++
			e.LastSide = ev.Side
		})
		w.entities = append(w.entities, e)
	}

	w.view = w.Bounds()
	w.view = core.NewBounds(w.view.Left-viewPadding, w.view.Top-viewPadding,
		w.view.Right+viewPadding, w.view.Bottom+viewPadding)
	w.state = core.SimState{Bodies: len(w.entities)}
	w.last = nil
	w.logger.Debug("world reset", "scenario", w.scenario.ID, "bodies", len(w.entities), "gravity", w.gravity)
}

// Step handles viewer input and advances the world by one step unless
// paused or finished. ActionStep advances a paused world once.
func (w *World) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		w.state.Paused = !w.state.Paused
	}
	if w.state.Done || (w.state.Paused && !in.Has(core.ActionStep)) {
		return core.StepResult{State: w.state}
	}
	contacts := w.Advance()
	return core.StepResult{State: w.state, Contacts: contacts}
}

// Advance runs one physics step and returns the contacts it resolved.
func (w *World) Advance() []core.ContactInfo {
	w.integrate()
	pairs := w.narrow.Step(w.Candidates())

	w.state.Step++
	contacts := make([]core.ContactInfo, 0, len(pairs))
	for _, p := range pairs {
		contacts = append(contacts, core.ContactInfo{
			Step:  w.state.Step,
			Left:  p.Left.ID,
			Right: p.Right.ID,
			Side:  p.Side,
			Depth: p.Contact.Depth(),
			Point: p.Contact.Point,
		})
	}
	w.state.TotalContacts += len(contacts)
	if w.scenario.Steps > 0 && w.state.Step >= w.scenario.Steps {
		w.state.Done = true
	}
	w.last = contacts
	return contacts
}

// integrate applies gravity to movable bodies and moves every body by its
// velocity.
func (w *World) integrate() {
	dt := w.cfg.DT
	for _, e := range w.entities {
		b := e.Body
		switch b.CollisionType {
		case collision.Active, collision.Elastic:
			b.Vel[1] += w.gravity * dt
		}
		b.Pos = b.Pos.Add(b.Vel.Mul(dt))
	}
}

// Candidates returns every pair of entities whose bounds overlap, in
// scenario order. Bodies that prevent collision are left out.
func (w *World) Candidates() []collision.Candidate {
	bounds := make([]core.Bounds, len(w.entities))
	for i, e := range w.entities {
		bounds[i] = e.Area.Bounds()
	}
	var out []collision.Candidate
	for i := 0; i < len(w.entities); i++ {
		if w.entities[i].Body.CollisionType == collision.PreventCollision {
			continue
		}
		for j := i + 1; j < len(w.entities); j++ {
			if w.entities[j].Body.CollisionType == collision.PreventCollision {
				continue
			}
			if bounds[i].Intersects(bounds[j]) {
				out = append(out, collision.Candidate{A: w.entities[i].Area, B: w.entities[j].Area})
			}
		}
	}
	return out
}

// Run advances the world steps times, calling fn after each step.
// It stops early when ctx is cancelled or the scenario finishes.
func (w *World) Run(ctx context.Context, steps int, fn func(core.StepResult)) error {
	for i := 0; i < steps && !w.state.Done; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		contacts := w.Advance()
		if fn != nil {
			fn(core.StepResult{State: w.state, Contacts: contacts})
		}
	}
	return nil
}

// State returns the current simulation state.
func (w *World) State() core.SimState {
	return w.state
}

// Entities returns the world's entities in scenario order.
func (w *World) Entities() []*Entity {
	return w.entities
}

// Entity returns the entity whose body has the given ID.
func (w *World) Entity(id string) (*Entity, bool) {
	for _, e := range w.entities {
		if e.Body.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Snapshot copies the state of every body.
func (w *World) Snapshot() []BodyState {
	out := make([]BodyState, len(w.entities))
	for i, e := range w.entities {
		out[i] = BodyState{
			ID:       e.Body.ID,
			Type:     e.Body.CollisionType,
			Pos:      e.Body.Pos,
			Vel:      e.Body.Vel,
			Hits:     e.Hits,
			LastSide: e.LastSide,
		}
	}
	return out
}

// Bounds returns the box around every area.
func (w *World) Bounds() core.Bounds {
	if len(w.entities) == 0 {
		return core.Bounds{}
	}
	b := w.entities[0].Area.Bounds()
	for _, e := range w.entities[1:] {
		b = b.Combine(e.Area.Bounds())
	}
	return b
}

// Viewport maps the scene onto a w×h cell screen. A configured scale is
// centered on the initial scene; otherwise the initial scene is fitted.
func (w *World) Viewport(width, height int) core.Viewport {
	if w.cfg.Scale > 0 {
		half := mgl64.Vec2{float64(width) * w.cfg.Scale / 2, float64(height) * w.cfg.Scale}
		return core.NewViewport(w.view.Center().Sub(half), w.cfg.Scale)
	}
	return core.FitViewport(w.view, width, height)
}

// Render draws every area and the contact points of the last step.
func (w *World) Render(dst *core.Screen) {
	vp := w.Viewport(dst.Width(), dst.Height())
	for _, e := range w.entities {
		e.Area.DebugDraw(dst, vp, e.Color)
	}
	for _, c := range w.last {
		x, y := vp.ToCell(c.Point)
		dst.SetColored(x, y, '*', core.ColorRed)
	}
}
