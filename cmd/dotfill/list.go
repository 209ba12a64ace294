package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotfill/internal/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows every built-in level plus those found in the --levels directory.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	c := mustLoadCatalog(newLogger())

	if len(c.levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, lvl := range c.levels {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %-6s  %-6s  %-10s  %s\n", maxIDLen, "ID", "Size", "Cells", "Difficulty", "Name")
	fmt.Printf("  %-*s  %-6s  %-6s  %-10s  %s\n", maxIDLen, "--", "----", "-----", "----------", "----")

	for _, lvl := range c.levels {
		size := fmt.Sprintf("%dx%d", lvl.Rows, lvl.Cols)
		fmt.Printf("  %-*s  %-6s  %-6d  %-10s  %s\n",
			maxIDLen, lvl.ID, size, lvl.Target(), config.DifficultyOf(lvl.Metadata), lvl.Name)
	}

	fmt.Println()
	fmt.Println("Run 'dotfill play <id>' to play a level.")
}
