// Package config provides YAML-based configuration loading for the
// collision playground: body defaults, world stepping, the viewer and logging.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// PhysicsConfig contains all configuration for simulations and the viewer.
type PhysicsConfig struct {
	Body    BodyConfig    `yaml:"body"`
	World   WorldConfig   `yaml:"world"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// BodyConfig defines defaults applied to scenario bodies.
type BodyConfig struct {
	DefaultMass float64 `yaml:"default_mass"` // Mass for bodies and areas without one
}

// WorldConfig defines how a scenario world is stepped.
type WorldConfig struct {
	Gravity float64 `yaml:"gravity"` // Downward acceleration, world units/s²
	DT      float64 `yaml:"dt"`      // Seconds per step
	Steps   int     `yaml:"steps"`   // Steps run by `simulate` when not overridden
}

// ViewerConfig defines the terminal viewer.
type ViewerConfig struct {
	Scale    float64 `yaml:"scale"`     // World units per cell; 0 fits the scene
	TickRate int     `yaml:"tick_rate"` // Steps per second
}

// StorageConfig defines where simulation runs are recorded.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Validate reports the first invalid value.
func (c PhysicsConfig) Validate() error {
	switch {
	case c.Body.DefaultMass <= 0:
		return fmt.Errorf("%w: body.default_mass must be positive, got %v", ErrInvalid, c.Body.DefaultMass)
	case c.World.DT <= 0:
		return fmt.Errorf("%w: world.dt must be positive, got %v", ErrInvalid, c.World.DT)
	case c.World.Steps < 0:
		return fmt.Errorf("%w: world.steps must not be negative, got %d", ErrInvalid, c.World.Steps)
	case c.Viewer.Scale < 0:
		return fmt.Errorf("%w: viewer.scale must not be negative, got %v", ErrInvalid, c.Viewer.Scale)
	case c.Viewer.TickRate <= 0:
		return fmt.Errorf("%w: viewer.tick_rate must be positive, got %d", ErrInvalid, c.Viewer.TickRate)
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ParseLevel converts the configured level; empty means info.
func (l LogConfig) ParseLevel() (log.Level, error) {
	if strings.TrimSpace(l.Level) == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(strings.ToLower(strings.TrimSpace(l.Level)))
}
