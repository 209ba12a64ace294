package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotfill/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Display the top 10 scores and the best solve for a level.
Without a level, shows a summary of every level played so far.

Examples:
  dotfill scores
  dotfill scores 02-ring
  dotfill scores 02-ring --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all records of the level")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummary(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}
		return
	}

	levelID := args[0]
	c := mustLoadCatalog(newLogger())
	if !c.registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'dotfill list' to see available levels.")
		os.Exit(1)
	}

	if flagClear {
		if err := store.ClearScores(levelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all records for %s.\n", levelID)
		return
	}

	game, err := c.registry.Create(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	scores, err := store.TopScores(levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'dotfill play %s' to set the first high score!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if best, ok, err := store.BestCompletion(levelID); err == nil && ok {
		fmt.Printf("Best solve: %d drags in %s (%d resets)\n", best.Drags, best.Duration.Round(100*time.Millisecond), best.Resets)
	}
}

// printSummary prints one line per level that has been played.
func printSummary(store *storage.Store) error {
	stats, err := store.AllLevelStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-20s  %-5s  %-10s  %-6s  %-9s  %s\n", "Level", "Plays", "High", "Solves", "BestDrags", "Last played")
	fmt.Printf("  %-20s  %-5s  %-10s  %-6s  %-9s  %s\n", "-----", "-----", "----", "------", "---------", "-----------")
	for _, id := range ids {
		st := stats[id]
		best := "-"
		if st.BestDrags > 0 {
			best = fmt.Sprintf("%d", st.BestDrags)
		}
		fmt.Printf("  %-20s  %-5d  %-10d  %-6d  %-9s  %s\n",
			st.LevelID, st.Plays, st.HighScore, st.Solves, best, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
