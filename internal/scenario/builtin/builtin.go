// Package builtin registers the scenarios shipped with the binary.
package builtin

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/vovakirdan/arcade-physics/internal/registry"
	"github.com/vovakirdan/arcade-physics/internal/scenario"
)

//go:embed *.yaml
var files embed.FS

func init() {
	names, err := fs.Glob(files, "*.yaml")
	if err != nil {
		panic(err)
	}
	for _, name := range names {
		sc := mustLoad(name)
		registry.Register(sc.ID, func() registry.Simulation {
			w, err := scenario.New(mustLoad(name))
			if err != nil {
				panic(err)
			}
			return w
		})
	}
}

// mustLoad parses an embedded scenario; a broken file is a build defect.
func mustLoad(name string) *scenario.Scenario {
	data, err := files.ReadFile(name)
	if err != nil {
		panic(err)
	}
	sc, err := scenario.Parse(data)
	if err != nil {
		panic(fmt.Sprintf("builtin: %s: %v", path.Base(name), err))
	}
	return sc
}
