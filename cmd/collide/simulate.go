package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-physics/internal/core"
	"github.com/vovakirdan/arcade-physics/internal/scenario"
	"github.com/vovakirdan/arcade-physics/internal/storage"
)

var (
	flagSteps        int
	flagNoSave       bool
	flagShowContacts bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario|file>",
	Short: "Run a scenario headless",
	Long: `Run a scenario without a terminal UI, print the final state of every
body and record the run in the run log.

The number of steps is taken from --steps, then the scenario's own step
limit, then world.steps in the physics config.

Examples:
  collide simulate slide
  collide simulate bounce --steps 600 --contacts
  collide simulate ./my-scene.yaml --no-save`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSteps, "steps", 0, "Number of steps to run (0 = scenario or config default)")
	simulateCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
	simulateCmd.Flags().BoolVar(&flagShowContacts, "contacts", false, "Print every resolved contact")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	w, err := openScenario(args[0])
	if err != nil {
		return err
	}
	w.Reset(runtimeConfig(core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH))

	steps := flagSteps
	if steps <= 0 {
		steps = w.Scenario().Steps
	}
	if steps <= 0 {
		steps = settings.World.Steps
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	start := time.Now()
	contacts, runErr := simulate(ctx, w, steps, func(c core.ContactInfo) {
		if flagShowContacts {
			fmt.Fprintf(out, "  step %4d  %s -> %s  side=%-6s depth=%.4f  at (%.2f, %.2f)\n",
				c.Step, c.Left, c.Right, c.Side, c.Depth, c.Point[0], c.Point[1])
		}
	})
	elapsed := time.Since(start)
	if runErr != nil {
		logger.Warn("simulation interrupted", "scenario", w.ID(), "step", w.State().Step, "error", runErr)
	}

	printSummary(out, w, elapsed)

	if flagNoSave || w.State().Step == 0 {
		return nil
	}
	runID, err := recordRun(w, contacts, elapsed)
	if err != nil {
		// The simulation itself succeeded
		logger.Warn("could not record run", "error", err)
		return nil
	}
	logger.Info("run recorded", "scenario", w.ID(), "run", runID, "contacts", len(contacts))
	return nil
}

// simulate runs w for up to steps steps, reporting each contact to fn, and
// returns every contact resolved.
func simulate(ctx context.Context, w *scenario.World, steps int, fn func(core.ContactInfo)) ([]core.ContactInfo, error) {
	var all []core.ContactInfo
	err := w.Run(ctx, steps, func(r core.StepResult) {
		for _, c := range r.Contacts {
			if fn != nil {
				fn(c)
			}
		}
		all = append(all, r.Contacts...)
	})
	return all, err
}

// recordRun saves a finished run and its contacts to the run log.
func recordRun(w *scenario.World, contacts []core.ContactInfo, elapsed time.Duration) (int64, error) {
	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	state := w.State()
	runID, err := store.SaveRun(storage.Run{
		ScenarioID: w.ID(),
		Steps:      state.Step,
		Bodies:     state.Bodies,
		Contacts:   state.TotalContacts,
		Duration:   elapsed,
	})
	if err != nil {
		return 0, err
	}
	return runID, store.SaveContacts(runID, contacts)
}

// printSummary prints the run totals and the final state of every body.
func printSummary(out io.Writer, w *scenario.World, elapsed time.Duration) {
	state := w.State()
	fmt.Fprintf(out, "%s: %d steps, %d contacts in %v\n", w.Title(), state.Step, state.TotalContacts, elapsed.Round(time.Microsecond))
	fmt.Fprintln(out)

	bodies := w.Snapshot()
	maxIDLen := 2 // "ID" header
	for _, b := range bodies {
		maxIDLen = max(maxIDLen, len(b.ID))
	}
	fmt.Fprintf(out, "  %-*s  %-8s  %-20s  %-20s  %5s  %s\n", maxIDLen, "ID", "Type", "Position", "Velocity", "Hits", "Last side")
	for _, b := range bodies {
		fmt.Fprintf(out, "  %-*s  %-8s  %-20s  %-20s  %5d  %s\n", maxIDLen, b.ID, b.Type,
			fmt.Sprintf("(%.3f, %.3f)", b.Pos[0], b.Pos[1]),
			fmt.Sprintf("(%.3f, %.3f)", b.Vel[0], b.Vel[1]),
			b.Hits, b.LastSide)
	}
}
