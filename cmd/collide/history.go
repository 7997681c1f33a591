package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-physics/internal/platform/tui"
	"github.com/vovakirdan/arcade-physics/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryRun   int64
	flagHistoryTUI   bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "Show recorded runs",
	Long: `Display recent runs from the run log, newest first, with aggregate
contact statistics when a scenario is given.

Examples:
  collide history
  collide history slide --limit 5
  collide history --run 12
  collide history slide --tui
  collide history slide --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().Int64Var(&flagHistoryRun, "run", 0, "Print the contacts of one run")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse the history interactively")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete every run of the scenario")
}

func runHistory(cmd *cobra.Command, args []string) error {
	var scenarioID string
	if len(args) > 0 {
		scenarioID = args[0]
	}

	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagHistoryTUI:
		width, height := terminalSize()
		_, err := tui.RunHistory(store, scenarioID, width, height)
		return err

	case flagHistoryClear:
		if scenarioID == "" {
			return fmt.Errorf("--clear needs a scenario")
		}
		if err := store.ClearRuns(scenarioID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared runs of %s.\n", scenarioID)
		return nil

	case flagHistoryRun > 0:
		return printRunContacts(out, store, flagHistoryRun)
	}

	return printHistory(out, store, scenarioID, flagHistoryLimit)
}

// printHistory prints recent runs and, for a single scenario, its stats.
func printHistory(out io.Writer, store *storage.Store, scenarioID string, limit int) error {
	runs, err := store.RecentRuns(scenarioID, limit)
	if err != nil {
		return err
	}

	title := "Recent runs"
	if scenarioID != "" {
		title += " - " + scenarioID
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'collide simulate <id>' to record one.")
		return nil
	}

	fmt.Fprintf(out, "  %-5s  %-10s  %6s  %6s  %8s  %9s  %s\n", "Run", "Scenario", "Steps", "Bodies", "Contacts", "Time", "Date")
	fmt.Fprintf(out, "  %-5s  %-10s  %6s  %6s  %8s  %9s  %s\n", "---", "--------", "-----", "------", "--------", "----", "----")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-5d  %-10s  %6d  %6d  %8d  %9v  %s\n",
			r.ID, r.ScenarioID, r.Steps, r.Bodies, r.Contacts, r.Duration, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if scenarioID != "" {
		stats, err := store.ScenarioStats(scenarioID)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Totals: %s\n", tui.FormatStats(stats))
	}
	return nil
}

// printRunContacts prints every contact recorded for a run.
func printRunContacts(out io.Writer, store *storage.Store, runID int64) error {
	contacts, err := store.RunContacts(runID)
	if err != nil {
		return err
	}
	if len(contacts) == 0 {
		fmt.Fprintf(out, "Run %d has no recorded contacts.\n", runID)
		return nil
	}

	fmt.Fprintf(out, "Contacts of run %d\n\n", runID)
	for _, c := range contacts {
		fmt.Fprintf(out, "  step %4d  %s -> %s  side=%-6s depth=%.4f  at (%.2f, %.2f)\n",
			c.Step, c.Left, c.Right, c.Side, c.Depth, c.Point[0], c.Point[1])
	}
	return nil
}
