package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-physics/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all built-in scenarios",
	Long:  `Shows a list of all scenarios registered in the binary.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	scenarios := registry.List()

	if len(scenarios) == 0 {
		fmt.Fprintln(out, "No scenarios available.")
		return
	}

	fmt.Fprintln(out, "Available scenarios:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, s := range scenarios {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range scenarios {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'collide view <id>' to watch a scenario.")
}
