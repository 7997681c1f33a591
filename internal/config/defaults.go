package config

import (
	_ "embed"
)

//go:embed defaults/physics.yaml
var defaultPhysicsYAML []byte

// DefaultPhysicsConfig returns the hard-coded configuration used when the
// embedded defaults cannot be parsed.
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Body: BodyConfig{
			DefaultMass: 10,
		},
		World: WorldConfig{
			Gravity: 0,
			DT:      1.0 / 60,
			Steps:   240,
		},
		Viewer: ViewerConfig{
			Scale:    0,
			TickRate: 30,
		},
		Storage: StorageConfig{
			Path: "~/.collide/runs.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
