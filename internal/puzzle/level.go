package puzzle

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a coordinate lies outside the grid.
var ErrOutOfBounds = errors.New("puzzle: coordinate out of bounds")

// Validation error codes.
const (
	CodeInvalidSize         = "INVALID_SIZE"
	CodeStartOutOfBounds    = "START_OUT_OF_BOUNDS"
	CodeObstacleOutOfBounds = "OBSTACLE_OUT_OF_BOUNDS"
	CodeStartIsObstacle     = "START_IS_OBSTACLE"
)

// ValidationError describes a malformed level.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Level is an immutable puzzle description supplied by the level catalog.
type Level struct {
	ID        string
	Name      string
	Rows      int
	Cols      int
	Start     Coord
	Obstacles []Coord
}

// InBounds reports whether c lies within the level's grid.
func (l Level) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < l.Rows && c.Col >= 0 && c.Col < l.Cols
}

// ObstacleSet returns the obstacles as a set. Duplicate entries collapse.
func (l Level) ObstacleSet() map[Coord]bool {
	set := make(map[Coord]bool, len(l.Obstacles))
	for _, o := range l.Obstacles {
		set[o] = true
	}
	return set
}

// Target returns the number of cells a player must color to win:
// every non-obstacle cell except the start.
func (l Level) Target() int {
	return l.Rows*l.Cols - len(l.ObstacleSet()) - 1
}

// Validate checks the level contract. The engine refuses to build
// from a level that fails it.
func (l Level) Validate() error {
	if l.Rows <= 0 || l.Cols <= 0 {
		return ValidationError{
			Code:    CodeInvalidSize,
			Message: fmt.Sprintf("grid size %dx%d must be positive", l.Rows, l.Cols),
		}
	}
	if !l.InBounds(l.Start) {
		return ValidationError{
			Code:    CodeStartOutOfBounds,
			Message: fmt.Sprintf("start %s outside %dx%d grid", l.Start, l.Rows, l.Cols),
		}
	}
	for _, o := range l.Obstacles {
		if !l.InBounds(o) {
			return ValidationError{
				Code:    CodeObstacleOutOfBounds,
				Message: fmt.Sprintf("obstacle %s outside %dx%d grid", o, l.Rows, l.Cols),
			}
		}
		if o == l.Start {
			return ValidationError{
				Code:    CodeStartIsObstacle,
				Message: fmt.Sprintf("start %s is also an obstacle", o),
			}
		}
	}
	return nil
}
