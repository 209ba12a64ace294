package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func replay(t *testing.T, lvl Level, moves []Dir) *Engine {
	t.Helper()
	e, err := New(lvl, 0)
	require.NoError(t, err)
	for i, d := range moves {
		won := e.ApplyDrag(d)
		assert.Equal(t, i == len(moves)-1, won, "move %d (%s)", i, d)
	}
	return e
}

func TestSolveOpenGrid(t *testing.T) {
	lvl := Level{Rows: 3, Cols: 3, Start: C(1, 1)}

	sol, err := Solve(lvl, 0)
	require.NoError(t, err)
	require.NotEmpty(t, sol.Moves)
	assert.True(t, replay(t, lvl, sol.Moves).Solved())
}

func TestSolveIsMinimal(t *testing.T) {
	lvl := Level{Rows: 1, Cols: 5, Start: C(0, 2)}

	sol, err := Solve(lvl, 0)
	require.NoError(t, err)
	assert.Len(t, sol.Moves, 2)
}

func TestSolveWithObstacles(t *testing.T) {
	lvl := Level{Rows: 3, Cols: 3, Start: C(0, 0), Obstacles: []Coord{C(1, 1)}}

	sol, err := Solve(lvl, 0)
	require.NoError(t, err)
	assert.Len(t, sol.Moves, 4)
	assert.True(t, replay(t, lvl, sol.Moves).Solved())
}

func TestSolveUnsolvable(t *testing.T) {
	lvl := Level{Rows: 1, Cols: 3, Start: C(0, 0), Obstacles: []Coord{C(0, 1)}}

	_, err := Solve(lvl, 0)
	assert.ErrorIs(t, err, ErrUnsolvable)
}

func TestSolveAlreadyComplete(t *testing.T) {
	sol, err := Solve(Level{Rows: 1, Cols: 1}, 0)
	require.NoError(t, err)
	assert.Empty(t, sol.Moves)
}

func TestSolveSearchLimit(t *testing.T) {
	lvl := Level{Rows: 6, Cols: 6, Start: C(0, 0), Obstacles: []Coord{C(2, 3), C(4, 1)}}

	_, err := Solve(lvl, 1)
	assert.ErrorIs(t, err, ErrSearchLimit)
}

func TestSolveInvalidLevel(t *testing.T) {
	_, err := Solve(Level{Rows: 0, Cols: 2}, 0)
	var verr ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestParseDir(t *testing.T) {
	for _, d := range AllDirs() {
		got, ok := ParseDir(d.String())
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}
	_, ok := ParseDir("sideways")
	assert.False(t, ok)
}
