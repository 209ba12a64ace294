package puzzle

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openLevel(rows, cols int, start Coord, obstacles ...Coord) Level {
	return Level{ID: "test", Rows: rows, Cols: cols, Start: start, Obstacles: obstacles}
}

func mustEngine(t *testing.T, lvl Level) *Engine {
	t.Helper()
	e, err := New(lvl, 1)
	require.NoError(t, err)
	return e
}

func coloredNonObstacles(e *Engine) int {
	n := 0
	for _, c := range e.Cells() {
		if !c.Obstacle && c.Colored {
			n++
		}
	}
	return n
}

func TestNewInitialState(t *testing.T) {
	lvl := openLevel(4, 5, C(2, 1), C(0, 0), C(3, 4), C(1, 2))
	e := mustEngine(t, lvl)

	assert.Equal(t, 4*5-3-1, e.Remaining())
	assert.Equal(t, e.Remaining(), e.Target())
	assert.Equal(t, C(2, 1), e.Current())
	assert.Equal(t, 1, coloredNonObstacles(e), "only the start cell is colored")

	for _, cell := range e.Cells() {
		if cell.Obstacle {
			assert.True(t, cell.Colored, "obstacle %s starts filled", cell.Coord())
		}
		assert.Less(t, int(cell.Skin), TrailSkins)
		assert.Less(t, int(cell.ObstacleSkin), ObstacleSkins)
	}

	start, err := e.Cell(C(2, 1))
	require.NoError(t, err)
	assert.True(t, start.Colored)
	assert.False(t, start.Obstacle)
}

func TestNewDuplicateObstaclesCountOnce(t *testing.T) {
	e := mustEngine(t, openLevel(2, 2, C(0, 0), C(1, 1), C(1, 1)))
	assert.Equal(t, 2, e.Remaining())
	assert.Equal(t, []Coord{C(1, 1)}, e.Obstacles())
}

func TestNewRejectsMalformedLevels(t *testing.T) {
	tests := []struct {
		name string
		lvl  Level
		code string
	}{
		{"zero rows", openLevel(0, 3, C(0, 0)), CodeInvalidSize},
		{"negative cols", openLevel(3, -1, C(0, 0)), CodeInvalidSize},
		{"start outside", openLevel(3, 3, C(3, 0)), CodeStartOutOfBounds},
		{"obstacle outside", openLevel(3, 3, C(0, 0), C(1, 5)), CodeObstacleOutOfBounds},
		{"start is obstacle", openLevel(3, 3, C(1, 1), C(1, 1)), CodeStartIsObstacle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := New(tc.lvl, 1)
			require.Error(t, err)
			assert.Nil(t, e)

			var verr ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.code, verr.Code)
		})
	}
}

func TestSkinsAreStableForSeed(t *testing.T) {
	lvl := openLevel(3, 3, C(0, 0))
	a, err := New(lvl, 42)
	require.NoError(t, err)
	b, err := New(lvl, 42)
	require.NoError(t, err)
	assert.Equal(t, a.Cells(), b.Cells())

	a.ApplyDrag(DirRight)
	a.Reset()
	for i, cell := range a.Cells() {
		assert.Equal(t, b.Cells()[i].Skin, cell.Skin)
	}
}

func TestClassifyDrag(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   Dir
	}{
		{"right", 100, 0, DirRight},
		{"left", -100, 0, DirLeft},
		{"up", 0, -100, DirUp},
		{"down", 0, 100, DirDown},
		{"below threshold", 89, -89, DirNone},
		{"exactly threshold", 90, 90, DirNone},
		{"both axes prefer right", 100, 100, DirRight},
		{"both axes prefer left", -100, -100, DirLeft},
		{"up beats down order", 10, -91, DirUp},
		{"no movement", 0, 0, DirNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyDrag(tc.dx, tc.dy, 90))
		})
	}
}

func TestSweepStopsAtEdge(t *testing.T) {
	e := mustEngine(t, openLevel(1, 5, C(0, 0)))

	res := e.Sweep(DirRight)
	assert.Equal(t, []Coord{C(0, 1), C(0, 2), C(0, 3), C(0, 4)}, res.Path)
	assert.Equal(t, C(0, 0), res.From)
	assert.Equal(t, C(0, 4), res.To)
	assert.Equal(t, 4, res.Colored)
	assert.True(t, res.Won)
	assert.Equal(t, 0, e.Remaining())
}

func TestSweepStopsBeforeObstacle(t *testing.T) {
	e := mustEngine(t, openLevel(1, 5, C(0, 0), C(0, 3)))

	res := e.Sweep(DirRight)
	assert.Equal(t, C(0, 2), res.To)
	assert.Equal(t, 2, res.Colored)
	assert.False(t, res.Won)
	assert.Equal(t, 1, e.Remaining())

	cell, err := e.Cell(C(0, 4))
	require.NoError(t, err)
	assert.False(t, cell.Colored)
}

func TestBoundaryDragIsNoOp(t *testing.T) {
	e := mustEngine(t, openLevel(3, 3, C(0, 0)))
	before := e.Cells()

	for _, d := range []Dir{DirLeft, DirUp, DirNone} {
		res := e.Sweep(d)
		assert.False(t, res.Moved(), d.String())
		assert.False(t, res.Won)
		assert.Equal(t, C(0, 0), e.Current())
		assert.Equal(t, before, e.Cells())
	}
	assert.Equal(t, 8, e.Remaining())
}

func TestThreeByThreeScenario(t *testing.T) {
	e := mustEngine(t, openLevel(3, 3, C(1, 1)))
	require.Equal(t, 8, e.Remaining())

	assert.False(t, e.Drag(120, 0, 90))
	assert.Equal(t, C(1, 2), e.Current())
	assert.Equal(t, 7, e.Remaining())

	// Passes back over the colored center and continues to the edge.
	res := e.Sweep(DirLeft)
	assert.Equal(t, []Coord{C(1, 1), C(1, 0)}, res.Path)
	assert.Equal(t, 1, res.Colored)
	assert.Equal(t, C(1, 0), e.Current())
	assert.Equal(t, 6, e.Remaining())

	// Already at the left edge.
	assert.False(t, e.ApplyDrag(DirLeft))
	assert.Equal(t, 6, e.Remaining())

	assert.False(t, e.ApplyDrag(DirUp))    // (0,0)
	assert.False(t, e.ApplyDrag(DirRight)) // (0,1) (0,2)
	assert.Equal(t, 3, e.Remaining())
	assert.False(t, e.ApplyDrag(DirDown)) // (1,2) revisited, (2,2)
	assert.Equal(t, 2, e.Remaining())
	assert.True(t, e.ApplyDrag(DirLeft))  // (2,1) (2,0)
	assert.Equal(t, 0, e.Remaining())
	assert.True(t, e.Solved())

	// Completed grids ignore further drags.
	for _, d := range AllDirs() {
		assert.False(t, e.ApplyDrag(d))
	}
	assert.Equal(t, C(2, 0), e.Current())
}

func TestUnsolvableScenarioIsNotFlagged(t *testing.T) {
	e := mustEngine(t, openLevel(1, 3, C(0, 0), C(0, 1)))
	require.Equal(t, 1, e.Remaining())

	assert.False(t, e.Drag(200, 0, 90))
	assert.Equal(t, C(0, 0), e.Current())
	assert.Equal(t, 1, e.Remaining())
}

func TestRemainingMonotonicAndObstaclesImpermeable(t *testing.T) {
	lvl := openLevel(5, 5, C(2, 2), C(0, 2), C(2, 0), C(4, 4), C(3, 1))
	e := mustEngine(t, lvl)
	obstacles := lvl.ObstacleSet()

	moves := []Dir{DirUp, DirLeft, DirDown, DirRight, DirUp, DirRight, DirDown, DirLeft, DirLeft, DirUp, DirRight}
	prev := e.Remaining()
	for _, d := range moves {
		e.ApplyDrag(d)
		got := e.Remaining()
		assert.LessOrEqual(t, got, prev)
		assert.GreaterOrEqual(t, got, 0)
		assert.False(t, obstacles[e.Current()], "head on obstacle %s", e.Current())

		colored := 0
		for _, cell := range e.Cells() {
			if cell.Obstacle {
				assert.True(t, cell.Colored)
				continue
			}
			if cell.Colored {
				colored++
			}
		}
		assert.Equal(t, e.Target()+1-colored, got, "remaining matches colored cells")
		prev = got
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	lvl := openLevel(3, 4, C(0, 0), C(1, 1))
	e := mustEngine(t, lvl)
	fresh := e.Cells()

	e.ApplyDrag(DirRight)
	e.ApplyDrag(DirDown)
	require.NotEqual(t, fresh, e.Cells())

	e.Reset()
	assert.Equal(t, fresh, e.Cells())
	assert.Equal(t, e.Target(), e.Remaining())
	assert.Equal(t, C(0, 0), e.Current())

	e.Reset()
	assert.Equal(t, fresh, e.Cells(), "reset is idempotent")
}

func TestResetAfterWin(t *testing.T) {
	e := mustEngine(t, openLevel(1, 4, C(0, 0)))
	require.True(t, e.ApplyDrag(DirRight))

	e.Reset()
	assert.Equal(t, 3, e.Remaining())
	assert.Equal(t, C(0, 0), e.Current())
	assert.True(t, e.ApplyDrag(DirRight), "board is playable again")
}

func TestZeroTargetLevelNeverReportsWin(t *testing.T) {
	e := mustEngine(t, openLevel(1, 2, C(0, 0), C(0, 1)))
	assert.Equal(t, 0, e.Remaining())
	assert.True(t, e.Solved())
	assert.False(t, e.ApplyDrag(DirRight))
}

func TestCellOutOfBounds(t *testing.T) {
	e := mustEngine(t, openLevel(2, 2, C(0, 0)))

	for _, c := range []Coord{C(-1, 0), C(0, -1), C(2, 0), C(0, 2)} {
		_, err := e.Cell(c)
		assert.ErrorIs(t, err, ErrOutOfBounds, c.String())
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	e := mustEngine(t, openLevel(2, 3, C(0, 0)))
	snap := e.Snapshot()
	snap.Cells[1].Colored = true

	cell, err := e.Cell(C(0, 1))
	require.NoError(t, err)
	assert.False(t, cell.Colored)
	assert.Equal(t, snap.At(0, 1), snap.Cells[1])
	assert.Equal(t, 5, snap.Remaining)
	assert.False(t, snap.Solved)
}

func TestCloneIsIndependent(t *testing.T) {
	e := mustEngine(t, openLevel(2, 3, C(0, 0)))
	clone := e.Clone()
	clone.ApplyDrag(DirRight)

	assert.Equal(t, 5, e.Remaining())
	assert.Equal(t, 3, clone.Remaining())
	assert.Equal(t, C(0, 0), e.Current())
}

func TestConcurrentReadsDuringSweeps(t *testing.T) {
	e := mustEngine(t, openLevel(1, 50, C(0, 0), C(0, 49)))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 200 {
			e.Sweep(DirRight)
			e.Reset()
		}
	}()
	go func() {
		defer wg.Done()
		for range 200 {
			assert.Equal(t, []Coord{C(0, 49)}, e.Obstacles())
			assert.Len(t, e.Cells(), 50)
			snap := e.Snapshot()
			assert.GreaterOrEqual(t, snap.Remaining, 0)
			_, err := e.Cell(C(0, 1))
			assert.NoError(t, err)
			e.Current()
		}
	}()
	wg.Wait()

	e.Reset()
	assert.Equal(t, 48, e.Remaining())
}
