// Package registry provides a global registry of simulation factories.
// Built-in scenarios register themselves in init() functions, allowing the
// CLI and the viewer to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// Simulation is the interface the viewer and the CLI drive.
// Simulations contain pure stepping logic with no Bubble Tea dependency;
// the platform handles input mapping, timing and rendering.
type Simulation interface {
	// ID returns a unique identifier (e.g., "slide", "bounce").
	// Used for CLI arguments and the run log.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds or rebuilds the initial state.
	Reset(cfg core.RuntimeConfig)

	// Step handles viewer actions and advances by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current simulation state.
	State() core.SimState
}

// Info contains metadata about a registered simulation.
type Info struct {
	ID    string
	Title string
}

// Factory creates a new instance of a simulation.
type Factory func() Simulation

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory to the registry.
// Panics if a simulation with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered simulations, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a registered simulation by ID.
func Create(id string) (Simulation, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}
	return f(), nil
}

// Exists checks whether a simulation with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
