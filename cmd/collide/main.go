// collide runs and inspects 2D collision scenarios in the terminal.
//
// Usage:
//
//	collide list                  - List built-in scenarios
//	collide simulate <scenario>   - Run a scenario headless and log the run
//	collide view <scenario>       - Watch a scenario step in the terminal
//	collide menu                  - Pick scenarios interactively
//	collide history [scenario]    - Show recorded runs
//	collide probe --a ... --b ... - Collide two shapes and print the contact
//
// Global flags:
//
//	--config <path>     - Physics config YAML (default: search paths)
//	--db <path>         - Run log database (default: ~/.collide/runs.db)
//	--fps <rate>        - Viewer tick rate
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-physics/internal/config"
	"github.com/vovakirdan/arcade-physics/internal/core"

	// Import built-in scenarios to register them
	_ "github.com/vovakirdan/arcade-physics/internal/scenario/builtin"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagFPS      int
	flagLogLevel string

	// Set by loadSettings before any subcommand runs
	settings config.PhysicsConfig
	logger   *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "collide",
	Short: "Collide - 2D collision scenarios in your terminal",
	Long: `Collide steps small 2D physics scenarios built from circles, convex
polygons and edges, resolves their contacts and records every run.

Available commands:
  list      - Show all built-in scenarios
  simulate  - Run a scenario headless
  view      - Watch a scenario in the terminal
  menu      - Interactive scenario picker
  history   - View recorded runs
  probe     - Collide two shapes given on the command line

Examples:
  collide list
  collide simulate bounce --steps 600
  collide view ./my-scene.yaml
  collide history slide
  collide probe --a '{id: a, pos: [0, 0], shape: {kind: circle, radius: 5}}' \
                --b '{id: b, pos: [8, 0], shape: {kind: circle, radius: 5}}'`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to physics config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run log database (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Viewer tick rate (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(probeCmd)
}

// loadSettings loads the physics config, applies flag overrides and builds
// the logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagFPS > 0 {
		cfg.Viewer.TickRate = flagFPS
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	level, err := cfg.Log.ParseLevel()
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	settings = cfg
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "collide",
		Level:           level,
	})
	logger.Debug("config loaded", "command", cmd.Name(), "db", cfg.Storage.Path, "dt", cfg.World.DT)
	return nil
}

// runtimeConfig builds the per-run config for a screen of the given size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:     width,
		ScreenH:     height,
		TickRate:    settings.Viewer.TickRate,
		Scale:       settings.Viewer.Scale,
		DT:          settings.World.DT,
		Gravity:     settings.World.Gravity,
		DefaultMass: settings.Body.DefaultMass,
		Logger:      logger,
	}
}
