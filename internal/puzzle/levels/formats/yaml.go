// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/dotfill/internal/puzzle"
)

// Layout characters.
const (
	LayoutFree     = '.'
	LayoutObstacle = '#'
	LayoutStart    = 'S'
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Size      YAMLSize          `yaml:"size"`
	Start     YAMLCoord         `yaml:"start"`
	Obstacles []YAMLCoord       `yaml:"obstacles,omitempty"`
	Layout    []string          `yaml:"layout,omitempty"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// YAMLCoord represents a single grid position.
type YAMLCoord struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// Level represents a parsed level ready for use.
type Level struct {
	puzzle.Level
	Metadata map[string]string
}

// ParseYAML parses a YAML level file. When a layout is present it
// takes precedence over size, start and obstacles.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := Level{
		Level: puzzle.Level{
			ID:    yl.ID,
			Name:  yl.Name,
			Rows:  yl.Size.Rows,
			Cols:  yl.Size.Cols,
			Start: puzzle.C(yl.Start.Row, yl.Start.Col),
		},
		Metadata: yl.Metadata,
	}

	if len(yl.Layout) > 0 {
		if err := parseLayout(yl.Layout, &level.Level); err != nil {
			return Level{}, err
		}
		return level, nil
	}

	for _, o := range yl.Obstacles {
		level.Obstacles = append(level.Obstacles, puzzle.C(o.Row, o.Col))
	}
	return level, nil
}

// parseLayout fills dimensions, start and obstacles from ASCII rows.
func parseLayout(rows []string, lvl *puzzle.Level) error {
	lvl.Rows = len(rows)
	lvl.Cols = len(rows[0])
	lvl.Obstacles = nil

	starts := 0
	for r, line := range rows {
		if len(line) != lvl.Cols {
			return fmt.Errorf("layout row %d has width %d, want %d", r, len(line), lvl.Cols)
		}
		for c, ch := range line {
			switch ch {
			case LayoutFree:
			case LayoutObstacle:
				lvl.Obstacles = append(lvl.Obstacles, puzzle.C(r, c))
			case LayoutStart:
				lvl.Start = puzzle.C(r, c)
				starts++
			default:
				return fmt.Errorf("layout row %d: unexpected character %q", r, ch)
			}
		}
	}

	if starts != 1 {
		return fmt.Errorf("layout needs exactly one start cell, found %d", starts)
	}
	return nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
