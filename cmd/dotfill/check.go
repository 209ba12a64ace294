package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotfill/internal/puzzle"
	"github.com/vovakirdan/dotfill/internal/puzzle/levels"
)

var flagSearchLimit int

var checkCmd = &cobra.Command{
	Use:   "check [level-id|file...]",
	Short: "Validate levels and compute the minimal number of drags",
	Long: `Validate level files and search each level for a shortest solution.
Arguments may be level IDs from the catalog or paths to YAML files.
Without arguments every level in the catalog is checked.

Exits with status 1 if any level is malformed or cannot be solved.

Examples:
  dotfill check
  dotfill check 02-ring
  dotfill check ./my-level.yaml --limit 1000000`,
	Run: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&flagSearchLimit, "limit", puzzle.DefaultSearchLimit, "Maximum states to explore per level")
}

func runCheck(_ *cobra.Command, args []string) {
	logger := newLogger()
	c := mustLoadCatalog(logger)

	var targets []levels.Level
	failed := false

	if len(args) == 0 {
		targets = c.levels
	}
	for _, arg := range args {
		lvl, err := resolveLevel(c, arg)
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", arg, err)
			failed = true
			continue
		}
		targets = append(targets, lvl)
	}

	for _, lvl := range targets {
		sol, err := puzzle.Solve(lvl.Level, flagSearchLimit)
		switch {
		case errors.Is(err, puzzle.ErrSearchLimit):
			fmt.Printf("SKIP  %s: gave up after %d states\n", lvl.ID, sol.Explored)
		case err != nil:
			fmt.Printf("FAIL  %s: %v\n", lvl.ID, err)
			failed = true
		default:
			fmt.Printf("OK    %s: %d drags (%s)\n", lvl.ID, len(sol.Moves), formatMoves(sol.Moves))
			logger.Debug("solved", "level", lvl.ID, "explored", sol.Explored)
		}
	}

	if failed {
		os.Exit(1)
	}
}

// resolveLevel treats arguments with a YAML extension as files and
// everything else as catalog IDs.
func resolveLevel(c *catalog, arg string) (levels.Level, error) {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml":
		return levels.ReadFile(arg)
	}
	for _, lvl := range c.levels {
		if lvl.ID == arg {
			return lvl, nil
		}
	}
	return levels.Level{}, fmt.Errorf("unknown level %q", arg)
}

func formatMoves(moves []puzzle.Dir) string {
	parts := make([]string, len(moves))
	for i, d := range moves {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}
