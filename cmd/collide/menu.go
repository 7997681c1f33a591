package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-physics/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick scenarios interactively",
	Long: `Start the viewer in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to view a scenario and Tab to
browse the run history. Quitting the viewer returns to the menu.

Examples:
  collide menu
  collide menu --fps 15`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	cfg := runtimeConfig(width, height)

	for {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsHistory:
			goBack, err := tui.RunHistory(store, "", cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			w, err := openScenario(result.ScenarioID)
			if err != nil {
				logger.Error("cannot open scenario", "scenario", result.ScenarioID, "error", err)
				continue
			}
			if err := tui.Run(w, store, cfg); err != nil {
				return err
			}
		}
	}
}
