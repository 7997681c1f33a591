package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-physics/internal/platform/tui"
	"github.com/vovakirdan/arcade-physics/internal/registry"
	"github.com/vovakirdan/arcade-physics/internal/storage"
)

var viewCmd = &cobra.Command{
	Use:   "view <scenario|file>",
	Short: "Watch a scenario step in the terminal",
	Long: `Step a scenario at the viewer tick rate and draw every area.
Contact points of the last step are marked with '*'.

Controls:
  Space/P   - Pause
  N/Right   - Single step while paused
  R         - Restart
  +/-       - Faster/slower
  Ctrl+S    - Save a screenshot to ~/.collide/screenshots
  Q/Esc     - Quit

Examples:
  collide view billiards
  collide view ./my-scene.yaml --fps 10`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func runView(_ *cobra.Command, args []string) error {
	w, err := openScenario(args[0])
	if err != nil {
		return err
	}
	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}
	return view(w, store)
}

// view runs the viewer full screen.
func view(sim registry.Simulation, store *storage.Store) error {
	width, height := terminalSize()
	return tui.Run(sim, store, runtimeConfig(width, height))
}

// openStoreOrWarn opens the run log. The viewer still works without it.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		logger.Warn("could not open run log", "path", settings.Storage.Path, "error", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
