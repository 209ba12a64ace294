// Package puzzle provides the grid-filling puzzle engine: the level and cell
// data model, the directional sweep triggered by a drag gesture, win
// bookkeeping and reset. The package is UI-agnostic and deterministic.
package puzzle

import (
	"fmt"
	"strings"
)

// Dir is a cardinal sweep direction.
type Dir uint8

const (
	DirNone Dir = iota
	DirRight
	DirLeft
	DirUp
	DirDown
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// Delta returns the (dRow, dCol) offset for one step in this direction.
// Up decreases the row, down increases it.
func (d Dir) Delta() (dRow, dCol int) {
	switch d {
	case DirRight:
		return 0, 1
	case DirLeft:
		return 0, -1
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	default:
		return 0, 0
	}
}

// ParseDir converts a name ("right", "r", ...) to a Dir.
func ParseDir(s string) (Dir, bool) {
	switch strings.ToLower(s) {
	case "right", "r":
		return DirRight, true
	case "left", "l":
		return DirLeft, true
	case "up", "u":
		return DirUp, true
	case "down", "d":
		return DirDown, true
	default:
		return DirNone, false
	}
}

// Coord is a 0-indexed (row, col) grid position.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Step returns the neighbouring coordinate in the given direction.
func (c Coord) Step(d Dir) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Cell is one grid position. Row, Col and Obstacle never change after
// construction; Colored is flipped by sweeps and reset.
type Cell struct {
	Row      int
	Col      int
	Obstacle bool
	Colored  bool

	// Render-only palette indices, fixed for the lifetime of the engine.
	Skin         uint8
	ObstacleSkin uint8
}

// Coord returns the cell's position.
func (c Cell) Coord() Coord {
	return Coord{Row: c.Row, Col: c.Col}
}

// Palette sizes for the cosmetic skins.
const (
	TrailSkins    = 3
	ObstacleSkins = 2
)
