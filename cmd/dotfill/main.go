// dotfill is a terminal sweep-to-fill puzzle: drag the trail head across the
// grid until every free cell is colored.
//
// Usage:
//
//	dotfill list              - List available levels
//	dotfill play <level>      - Play a level
//	dotfill menu              - Pick levels interactively
//	dotfill serve             - Start SSH server for remote play
//	dotfill scores [level]    - Show high scores
//	dotfill check [level...]  - Validate levels and find minimal solutions
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible skins and reveals
//	--db <path>         - Set database path (default: ~/.dotfill/scores.db)
//	--levels <dir>      - Extra level directory (default: ~/.dotfill/levels)
//	--config <path>     - Custom game config YAML
//	--log-level <level> - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dotfill/internal/config"
	"github.com/vovakirdan/dotfill/internal/core"
	"github.com/vovakirdan/dotfill/internal/games/dotfill"
	"github.com/vovakirdan/dotfill/internal/puzzle/levels"
	"github.com/vovakirdan/dotfill/internal/registry"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagLevelsDir string
	flagConfig    string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dotfill",
	Short: "dotfill - Sweep the trail until every cell is filled",
	Long: `dotfill is a terminal puzzle game. The trail head slides in a straight
line until it hits the edge or an obstacle, coloring every cell it crosses.
Color every free cell to solve the level.

Available commands:
  list     - Show all available levels
  play     - Play a specific level directly
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  check    - Validate levels and compute par

Examples:
  dotfill list
  dotfill play 01-first-steps
  dotfill menu
  dotfill serve --ssh :2222
  dotfill check --levels ./my-levels`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dotfill/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", defaultLevelsDir(), "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkCmd)
}

func defaultLevelsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dotfill", "levels")
}

// newLogger builds the process logger from --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "dotfill",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// catalog is everything the playing commands share: the level list, the
// game config and a registry with one game per level.
type catalog struct {
	levels   []levels.Level
	config   config.GameConfig
	registry *registry.Registry
}

// loadCatalog reads the levels and the game config and registers the games.
// A missing user level directory is not an error.
func loadCatalog(logger *log.Logger) (*catalog, error) {
	dir := flagLevelsDir
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			logger.Debug("no user level directory", "path", dir)
			dir = ""
		}
	}

	lvls, err := levels.Catalog(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("cannot load levels: %w", err)
	}

	cfg, err := config.LoadGame(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}

	reg := registry.New()
	dotfill.RegisterCatalog(reg, lvls, cfg)
	logger.Debug("catalog loaded", "levels", len(lvls))

	return &catalog{levels: lvls, config: cfg, registry: reg}, nil
}

// mustLoadCatalog is loadCatalog for commands that cannot continue without it.
func mustLoadCatalog(logger *log.Logger) *catalog {
	c, err := loadCatalog(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return c
}

// runtimeConfig sizes the screen to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
