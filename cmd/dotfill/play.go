package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotfill/internal/platform/tui"
	"github.com/vovakirdan/dotfill/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing the specified level.

Controls:
  Arrows/HJKL/WASD - Sweep the trail
  Mouse drag       - Sweep in the drag direction
  R                - Reset the board (or play again when finished)
  P/Esc            - Pause
  Enter            - Skip the win animation
  Q/Ctrl+C         - Quit

Examples:
  dotfill play 01-first-steps
  dotfill play 02-ring --fps 30
  dotfill play 03-detour --config ./my-dotfill.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	levelID := args[0]
	logger := newLogger()
	c := mustLoadCatalog(logger)

	// Check if level exists
	if !c.registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'dotfill list' to see available levels.")
		os.Exit(1)
	}

	game, err := c.registry.Create(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, runtimeConfig(), tui.RunOptions{Store: store, Logger: logger})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
