package core

import (
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// RuntimeConfig contains configuration passed to simulations on Reset.
type RuntimeConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	TickRate int     // Simulation ticks per second
	Scale    float64 // World units per cell; 0 fits the scenario to the screen

	DT          float64     // Seconds per simulation step
	Gravity     float64     // Used when the scenario does not set its own
	DefaultMass float64     // Mass for bodies that do not set one
	Logger      *log.Logger // nil uses log.Default()
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:     80,
		ScreenH:     24,
		TickRate:    30,
		Scale:       0,
		DT:          1.0 / 60,
		DefaultMass: 10,
	}
}

// SimState represents the current state of a simulation.
type SimState struct {
	Step          int  // Steps taken since the last reset
	Bodies        int  // Number of bodies in the world
	TotalContacts int  // Contacts resolved since the last reset
	Done          bool // Whether the scenario's step limit was reached
	Paused        bool
}

// ContactInfo summarizes one resolved contact for display and storage.
type ContactInfo struct {
	Step  int
	Left  string
	Right string
	Side  Side // Side of Left that was hit
	Depth float64
	Point mgl64.Vec2
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	State    SimState
	Contacts []ContactInfo
}
