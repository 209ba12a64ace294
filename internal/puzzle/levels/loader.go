// Package levels provides the level catalog: built-in levels embedded in the
// binary plus YAML files from a user directory.
// This package depends on puzzle but puzzle does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dotfill/internal/puzzle"
	"github.com/vovakirdan/dotfill/internal/puzzle/levels/formats"
)

//go:embed catalog/*.yaml
var builtinFS embed.FS

// Level represents a complete level definition.
type Level struct {
	puzzle.Level
	Metadata map[string]string
	FilePath string
}

// NewEngine builds a puzzle engine for this level.
func (l *Level) NewEngine(seed int64) (*puzzle.Engine, error) {
	return puzzle.New(l.Level, seed)
}

// Loader handles loading levels from a file system.
type Loader struct {
	FS     fs.FS
	Root   string // Shown in file paths and log messages
	Logger *log.Logger
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root}
}

// Builtin returns a loader over the levels compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "catalog")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded catalog: %v", err))
	}
	return &Loader{FS: sub, Root: "builtin"}
}

func (l *Loader) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

// LoadAll recursively scans and loads all level files.
// Files that fail to parse or validate are skipped.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			l.logger().Debug("skipping level file", "path", level.FilePath, "error", err)
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads and validates a single level file relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	display := filepath.Join(l.Root, filepath.FromSlash(p))

	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{FilePath: display}, fmt.Errorf("levels: reading %s: %w", display, err)
	}

	level, err := decode(data, p)
	level.FilePath = display
	if err != nil {
		return level, fmt.Errorf("levels: %s: %w", display, err)
	}
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// ReadFile loads a level file from anywhere on disk.
func ReadFile(p string) (Level, error) {
	return NewLoader(filepath.Dir(p)).LoadFile(filepath.Base(p))
}

// Catalog returns the built-in levels merged with those found in userDir.
// A user level replaces a built-in level with the same ID. An empty userDir
// yields only the built-in levels.
func Catalog(userDir string, logger *log.Logger) ([]Level, error) {
	builtin := Builtin()
	builtin.Logger = logger
	levels, err := builtin.LoadAll()
	if err != nil {
		return nil, err
	}
	if userDir == "" {
		return levels, nil
	}

	user := NewLoader(userDir)
	user.Logger = logger
	extra, err := user.LoadAll()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Level, len(levels)+len(extra))
	for _, lvl := range levels {
		byID[lvl.ID] = lvl
	}
	for _, lvl := range extra {
		if _, ok := byID[lvl.ID]; ok {
			user.logger().Info("user level overrides built-in", "id", lvl.ID, "path", lvl.FilePath)
		}
		byID[lvl.ID] = lvl
	}

	merged := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		merged = append(merged, lvl)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ID < merged[j].ID
	})
	return merged, nil
}

// decode parses a level by extension, fills defaults and validates it.
func decode(data []byte, p string) (Level, error) {
	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, err
	}

	level := Level{Level: parsed.Level, Metadata: parsed.Metadata}
	if level.ID == "" {
		level.ID = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}
	if level.Name == "" {
		level.Name = level.ID
	}

	if err := level.Validate(); err != nil {
		return level, err
	}
	return level, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
