// Package scenario loads YAML scenario files and steps them as a world of
// bodies, using a naive bounds broad phase in front of the collision
// narrow phase.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade-physics/internal/collision"
	"github.com/vovakirdan/arcade-physics/internal/core"
)

// ErrInvalid is wrapped by every scenario validation failure.
var ErrInvalid = errors.New("scenario: invalid scenario")

// Scenario describes a set of bodies and how to step them.
type Scenario struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description,omitempty"`
	Gravity     *float64   `yaml:"gravity,omitempty"` // Overrides the configured gravity
	Steps       int        `yaml:"steps,omitempty"`   // 0 runs until stopped
	Bodies      []BodySpec `yaml:"bodies"`
}

// BodySpec describes one body and its collision area.
type BodySpec struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"` // prevent, passive, active, elastic, fixed
	Pos      []float64 `yaml:"pos"`
	Vel      []float64 `yaml:"vel,omitempty"`
	Rotation float64   `yaml:"rotation,omitempty"` // Degrees
	Mass     float64   `yaml:"mass,omitempty"`
	Color    string    `yaml:"color,omitempty"`
	Shape    ShapeSpec `yaml:"shape"`
}

// ShapeSpec describes a collision area in body-local coordinates.
type ShapeSpec struct {
	Kind   string      `yaml:"kind"` // circle, box, polygon, edge
	Radius float64     `yaml:"radius,omitempty"`
	Width  float64     `yaml:"width,omitempty"`
	Height float64     `yaml:"height,omitempty"`
	Offset []float64   `yaml:"offset,omitempty"`
	Points [][]float64 `yaml:"points,omitempty"`
	Begin  []float64   `yaml:"begin,omitempty"`
	End    []float64   `yaml:"end,omitempty"`
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("scenario: cannot parse: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ParseBody decodes a single body spec, such as
// `{id: a, pos: [0, 0], shape: {kind: circle, radius: 2}}`.
func ParseBody(data []byte) (BodySpec, error) {
	var b BodySpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return b, fmt.Errorf("scenario: cannot parse body: %w", err)
	}
	if b.ID == "" {
		return b, fmt.Errorf("%w: body has no id", ErrInvalid)
	}
	return b, nil
}

// LoadFile reads and parses a scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: cannot read %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Marshal encodes the scenario as YAML.
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Validate checks the scenario can be built into a world.
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}
	if len(s.Bodies) == 0 {
		return fmt.Errorf("%w: %s has no bodies", ErrInvalid, s.ID)
	}
	if s.Steps < 0 {
		return fmt.Errorf("%w: %s has negative steps", ErrInvalid, s.ID)
	}
	seen := make(map[string]bool, len(s.Bodies))
	for i, b := range s.Bodies {
		if b.ID == "" {
			return fmt.Errorf("%w: body #%d has no id", ErrInvalid, i)
		}
		if seen[b.ID] {
			return fmt.Errorf("%w: duplicate body id %q", ErrInvalid, b.ID)
		}
		seen[b.ID] = true
		if _, _, err := b.Build(collision.DefaultMass); err != nil {
			return err
		}
	}
	return nil
}

// TitleOrID returns the title, falling back to the ID.
func (s *Scenario) TitleOrID() string {
	if s.Title != "" {
		return s.Title
	}
	return s.ID
}

// Build creates the body and its area.
func (b BodySpec) Build(defaultMass float64) (*collision.Body, collision.Area, error) {
	ct, err := collision.ParseCollisionType(b.Type)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: body %q: %v", ErrInvalid, b.ID, err)
	}
	pos, err := vec(b.Pos, "pos")
	if err != nil {
		return nil, nil, fmt.Errorf("body %q: %w", b.ID, err)
	}
	vel, err := vec(b.Vel, "vel")
	if err != nil {
		return nil, nil, fmt.Errorf("body %q: %w", b.ID, err)
	}
	if _, ok := core.ParseColor(b.Color); b.Color != "" && !ok {
		return nil, nil, fmt.Errorf("%w: body %q: unknown color %q", ErrInvalid, b.ID, b.Color)
	}

	mass := b.Mass
	if mass <= 0 {
		mass = defaultMass
	}
	body := collision.NewBody(b.ID, pos, mass, ct)
	body.Vel = vel
	body.Rotation = mgl64.DegToRad(b.Rotation)

	area, err := b.Shape.build(body, defaultMass)
	if err != nil {
		return nil, nil, fmt.Errorf("body %q: %w", b.ID, err)
	}
	return body, area, nil
}

func (s ShapeSpec) build(body *collision.Body, defaultMass float64) (collision.Area, error) {
	offset, err := vec(s.Offset, "offset")
	if err != nil {
		return nil, err
	}
	opt := collision.WithDefaultMass(defaultMass)

	switch strings.ToLower(s.Kind) {
	case "circle":
		return collision.NewCircle(body, offset, s.Radius, opt)
	case "box":
		if !core.IsZero(offset) {
			return nil, fmt.Errorf("%w: box shapes take no offset", ErrInvalid)
		}
		return collision.NewBox(body, s.Width, s.Height, opt)
	case "polygon":
		pts := make([]mgl64.Vec2, len(s.Points))
		for i, p := range s.Points {
			if pts[i], err = vec(p, fmt.Sprintf("points[%d]", i)); err != nil {
				return nil, err
			}
		}
		return collision.NewPolygon(body, offset, pts, opt)
	case "edge":
		begin, err := vec(s.Begin, "begin")
		if err != nil {
			return nil, err
		}
		end, err := vec(s.End, "end")
		if err != nil {
			return nil, err
		}
		return collision.NewEdge(body, begin, end, opt)
	}
	return nil, fmt.Errorf("%w: unknown shape kind %q", ErrInvalid, s.Kind)
}

// vec converts a YAML pair; a missing value is the zero vector.
func vec(v []float64, field string) (mgl64.Vec2, error) {
	switch len(v) {
	case 0:
		return mgl64.Vec2{}, nil
	case 2:
		return mgl64.Vec2{v[0], v[1]}, nil
	}
	return mgl64.Vec2{}, fmt.Errorf("%w: %s needs 2 values, got %d", ErrInvalid, field, len(v))
}
