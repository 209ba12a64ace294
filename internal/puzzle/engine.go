package puzzle

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Engine owns the live grid of one play session. All mutation happens in
// Sweep/ApplyDrag/Drag and Reset; each call resolves fully before returning.
// An Engine is safe for use by multiple goroutines, but is meant to have a
// single logical owner.
type Engine struct {
	mu sync.Mutex

	level     Level
	rows      int
	cols      int
	cells     []Cell // Row-major: index = row*cols + col
	start     Coord
	current   Coord
	remaining int // Non-obstacle, non-start cells not yet colored
	target    int // remaining right after construction
}

// SweepResult describes what one sweep did.
type SweepResult struct {
	Dir     Dir
	From    Coord   // Head before the sweep
	To      Coord   // Head after the sweep
	Path    []Coord // Cells visited, in order; empty for a no-op
	Colored int     // Cells that changed from uncolored to colored
	Won     bool    // This sweep colored the last remaining cell
}

// Moved reports whether the head advanced.
func (r SweepResult) Moved() bool {
	return len(r.Path) > 0
}

// Snapshot is a read-only copy of the engine state for renderers.
type Snapshot struct {
	Rows      int
	Cols      int
	Cells     []Cell
	Start     Coord
	Current   Coord
	Remaining int
	Target    int
	Solved    bool
}

// At returns the cell at (row, col) of the snapshot.
func (s Snapshot) At(row, col int) Cell {
	return s.Cells[row*s.Cols+col]
}

// New builds an engine from a level. Cosmetic skins are drawn from an RNG
// seeded with seed so that a session renders identically on every frame.
// Returns a ValidationError if the level is malformed.
func New(level Level, seed int64) (*Engine, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}

	level.Obstacles = append([]Coord(nil), level.Obstacles...)
	obstacles := level.ObstacleSet()
	rng := rand.New(rand.NewSource(seed))

	e := &Engine{
		level:     level,
		rows:      level.Rows,
		cols:      level.Cols,
		cells:     make([]Cell, level.Rows*level.Cols),
		start:     level.Start,
		current:   level.Start,
		remaining: level.Rows*level.Cols - len(obstacles) - 1,
	}
	e.target = e.remaining

	for row := 0; row < e.rows; row++ {
		for col := 0; col < e.cols; col++ {
			obstacle := obstacles[C(row, col)]
			e.cells[e.index(C(row, col))] = Cell{
				Row:          row,
				Col:          col,
				Obstacle:     obstacle,
				Colored:      obstacle, // Obstacles render filled until revealed
				Skin:         uint8(rng.Intn(TrailSkins)),
				ObstacleSkin: uint8(rng.Intn(ObstacleSkins)),
			}
		}
	}
	e.cells[e.index(e.start)].Colored = true

	return e, nil
}

func (e *Engine) index(c Coord) int {
	return c.Row*e.cols + c.Col
}

func (e *Engine) inBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < e.rows && c.Col >= 0 && c.Col < e.cols
}

// ClassifyDrag turns a drag displacement into a direction. A direction fires
// only when its component strictly exceeds threshold; when both axes qualify
// the first match in the order right, left, up, down wins. Positive dy points
// down.
func ClassifyDrag(dx, dy, threshold float64) Dir {
	switch {
	case dx > threshold:
		return DirRight
	case dx < -threshold:
		return DirLeft
	case dy < -threshold:
		return DirUp
	case dy > threshold:
		return DirDown
	default:
		return DirNone
	}
}

// Sweep extends the trail from the head in a straight line. It stops at the
// grid edge, at an obstacle, or once the puzzle is complete.
func (e *Engine) Sweep(dir Dir) SweepResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sweep(dir)
}

func (e *Engine) sweep(dir Dir) SweepResult {
	res := SweepResult{Dir: dir, From: e.current, To: e.current}
	if dir == DirNone {
		return res
	}

	before := e.remaining
	for cursor := e.current.Step(dir); e.inBounds(cursor) && e.remaining > 0; cursor = cursor.Step(dir) {
		cell := &e.cells[e.index(cursor)]
		if cell.Obstacle {
			break
		}
		if !cell.Colored {
			e.remaining--
			res.Colored++
		}
		cell.Colored = true
		e.current = cursor
		res.Path = append(res.Path, cursor)
	}

	res.To = e.current
	res.Won = before > 0 && e.remaining == 0
	return res
}

// ApplyDrag sweeps in dir and reports whether this call completed the puzzle.
// Calls made after completion are no-ops and return false.
func (e *Engine) ApplyDrag(dir Dir) bool {
	return e.Sweep(dir).Won
}

// Drag classifies a raw displacement with ClassifyDrag and applies it.
func (e *Engine) Drag(dx, dy, threshold float64) bool {
	return e.ApplyDrag(ClassifyDrag(dx, dy, threshold))
}

// Reset returns the board to its initial trail-empty state using the
// level it was built from. Obstacles and the start cell are untouched.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.current = e.start
	e.remaining = 0
	for i := range e.cells {
		cell := &e.cells[i]
		if cell.Obstacle || cell.Coord() == e.start {
			continue
		}
		cell.Colored = false
		e.remaining++
	}
}

// Rows returns the grid height.
func (e *Engine) Rows() int {
	return e.rows
}

// Cols returns the grid width.
func (e *Engine) Cols() int {
	return e.cols
}

// Start returns the start cell.
func (e *Engine) Start() Coord {
	return e.start
}

// Level returns the level the engine was built from.
func (e *Engine) Level() Level {
	lvl := e.level
	lvl.Obstacles = append([]Coord(nil), e.level.Obstacles...)
	return lvl
}

// Current returns the head of the trail.
func (e *Engine) Current() Coord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Remaining returns how many cells are still uncolored.
func (e *Engine) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remaining
}

// Target returns the number of cells to color on a fresh board.
func (e *Engine) Target() int {
	return e.target
}

// Solved reports whether every non-obstacle cell is colored.
func (e *Engine) Solved() bool {
	return e.Remaining() == 0
}

// Cell returns a copy of the cell at c.
func (e *Engine) Cell(c Coord) (Cell, error) {
	if !e.inBounds(c) {
		return Cell{}, fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, c, e.rows, e.cols)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cells[e.index(c)], nil
}

// Cells returns a row-major copy of all cells.
func (e *Engine) Cells() []Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	cells := make([]Cell, len(e.cells))
	copy(cells, e.cells)
	return cells
}

// Obstacles returns the obstacle coordinates in row-major order.
func (e *Engine) Obstacles() []Coord {
	e.mu.Lock()
	defer e.mu.Unlock()
	var coords []Coord
	for _, cell := range e.cells {
		if cell.Obstacle {
			coords = append(coords, cell.Coord())
		}
	}
	return coords
}

// Snapshot returns a consistent copy of the whole engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	cells := make([]Cell, len(e.cells))
	copy(cells, e.cells)
	return Snapshot{
		Rows:      e.rows,
		Cols:      e.cols,
		Cells:     cells,
		Start:     e.start,
		Current:   e.current,
		Remaining: e.remaining,
		Target:    e.target,
		Solved:    e.remaining == 0,
	}
}

// Clone returns an independent deep copy of the engine.
func (e *Engine) Clone() *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	cells := make([]Cell, len(e.cells))
	copy(cells, e.cells)
	return &Engine{
		level:     e.level,
		rows:      e.rows,
		cols:      e.cols,
		cells:     cells,
		start:     e.start,
		current:   e.current,
		remaining: e.remaining,
		target:    e.target,
	}
}

// canStep reports whether a sweep in dir would move the head at all.
func (e *Engine) canStep(dir Dir) bool {
	next := e.current.Step(dir)
	return dir != DirNone && e.remaining > 0 && e.inBounds(next) && !e.cells[e.index(next)].Obstacle
}

// stateKey encodes the head and colored set for search deduplication.
func (e *Engine) stateKey() string {
	key := make([]byte, 8+len(e.cells))
	binary.LittleEndian.PutUint32(key[0:], uint32(e.current.Row))
	binary.LittleEndian.PutUint32(key[4:], uint32(e.current.Col))
	for i, cell := range e.cells {
		if cell.Colored {
			key[8+i] = 1
		}
	}
	return string(key)
}
