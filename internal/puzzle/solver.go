package puzzle

import "errors"

var (
	// ErrUnsolvable is returned when no drag sequence completes the level.
	ErrUnsolvable = errors.New("puzzle: level cannot be completed")
	// ErrSearchLimit is returned when the search gives up before finishing.
	ErrSearchLimit = errors.New("puzzle: search limit reached")
)

// DefaultSearchLimit bounds the number of states Solve expands.
const DefaultSearchLimit = 200_000

// Solution is a shortest drag sequence for a level.
type Solution struct {
	Moves    []Dir
	Explored int // States expanded by the search
}

// AllDirs returns the sweep directions in gesture precedence order.
func AllDirs() []Dir {
	return []Dir{DirRight, DirLeft, DirUp, DirDown}
}

// Solve runs a breadth-first search over engine states and returns a
// minimal sequence of drags that completes the level. Sweeps that do not
// move the head are pruned. limit <= 0 uses DefaultSearchLimit.
func Solve(level Level, limit int) (Solution, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	root, err := New(level, 0)
	if err != nil {
		return Solution{}, err
	}
	if root.remaining == 0 {
		return Solution{}, nil
	}

	type node struct {
		engine *Engine
		moves  []Dir
	}

	seen := map[string]bool{root.stateKey(): true}
	queue := []node{{engine: root}}
	explored := 0

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if explored >= limit {
			return Solution{Explored: explored}, ErrSearchLimit
		}
		explored++

		for _, d := range AllDirs() {
			if !n.engine.canStep(d) {
				continue
			}
			next := n.engine.Clone()
			res := next.sweep(d)
			if !res.Moved() {
				continue
			}

			moves := make([]Dir, len(n.moves)+1)
			copy(moves, n.moves)
			moves[len(n.moves)] = d

			if res.Won {
				return Solution{Moves: moves, Explored: explored}, nil
			}

			key := next.stateKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			queue = append(queue, node{engine: next, moves: moves})
		}
	}

	return Solution{Explored: explored}, ErrUnsolvable
}
