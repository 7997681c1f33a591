package main

import (
	"fmt"
	"os"

	"github.com/vovakirdan/arcade-physics/internal/registry"
	"github.com/vovakirdan/arcade-physics/internal/scenario"
)

// openScenario returns a world for a registered scenario ID or a scenario
// file path. Registered IDs win over files with the same name.
func openScenario(arg string) (*scenario.World, error) {
	if registry.Exists(arg) {
		sim, err := registry.Create(arg)
		if err != nil {
			return nil, err
		}
		w, ok := sim.(*scenario.World)
		if !ok {
			return nil, fmt.Errorf("scenario %q is not a world", arg)
		}
		return w, nil
	}

	if _, err := os.Stat(arg); err != nil {
		return nil, fmt.Errorf("unknown scenario %q (run 'collide list' to see built-in scenarios)", arg)
	}
	sc, err := scenario.LoadFile(arg)
	if err != nil {
		return nil, err
	}
	return scenario.New(sc)
}
