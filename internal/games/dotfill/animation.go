package dotfill

import (
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/dotfill/internal/puzzle"
)

// sweepAnimation replays a finished sweep one cell at a time. The engine
// state is already final; the animation only decides what the renderer shows.
type sweepAnimation struct {
	from    puzzle.Coord
	path    []puzzle.Coord
	index   map[puzzle.Coord]int
	fresh   map[puzzle.Coord]bool // Cells this sweep colored for the first time
	ends    []int                 // Tick at which each step completes
	elapsed int
}

// newSweepAnimation schedules the steps of path. The first step lasts
// stepTicks and every later step lasts growth times longer than the previous.
// path must not be empty.
func newSweepAnimation(from puzzle.Coord, path []puzzle.Coord, fresh map[puzzle.Coord]bool, stepTicks int, growth float64) *sweepAnimation {
	a := &sweepAnimation{
		from:  from,
		path:  path,
		index: make(map[puzzle.Coord]int, len(path)),
		fresh: fresh,
		ends:  make([]int, len(path)),
	}

	d := float64(stepTicks)
	total := 0.0
	for i, c := range path {
		total += d
		a.ends[i] = int(math.Round(total))
		a.index[c] = i
		d *= growth
	}
	return a
}

// advance moves the animation one tick forward and reports whether it is
// still running.
func (a *sweepAnimation) advance() bool {
	a.elapsed++
	return !a.done()
}

func (a *sweepAnimation) done() bool {
	return a.elapsed >= a.ends[len(a.ends)-1]
}

// shown returns how many steps have completed.
func (a *sweepAnimation) shown() int {
	return sort.Search(len(a.ends), func(i int) bool {
		return a.ends[i] > a.elapsed
	})
}

// head returns where the renderer should draw the trail head.
func (a *sweepAnimation) head() puzzle.Coord {
	n := a.shown()
	if n == 0 {
		return a.from
	}
	return a.path[n-1]
}

// pending reports whether c was colored by this sweep but has not been
// reached by the animated head yet.
func (a *sweepAnimation) pending(c puzzle.Coord) bool {
	if !a.fresh[c] {
		return false
	}
	return a.index[c] >= a.shown()
}

// revealSchedule holds, for every obstacle, the number of ticks after the
// win at which it starts rendering as a trail cell.
type revealSchedule struct {
	at map[puzzle.Coord]int
}

func newRevealSchedule(obstacles []puzzle.Coord, rng *rand.Rand, minTicks, maxTicks int) revealSchedule {
	r := revealSchedule{at: make(map[puzzle.Coord]int, len(obstacles))}
	for _, o := range obstacles {
		r.at[o] = minTicks + rng.Intn(maxTicks-minTicks+1)
	}
	return r
}

func (r revealSchedule) revealed(c puzzle.Coord, elapsed int) bool {
	at, ok := r.at[c]
	return ok && elapsed >= at
}

func (r revealSchedule) count(elapsed int) int {
	n := 0
	for _, at := range r.at {
		if elapsed >= at {
			n++
		}
	}
	return n
}
