package dotfill

import "github.com/vovakirdan/dotfill/internal/puzzle"

// StateType represents the current game state.
type StateType string

const (
	StatePlaying     StateType = "playing"
	StatePaused      StateType = "paused"
	StateRevealing   StateType = "revealing"
	StateOver        StateType = "over"
	StateInvalid     StateType = "invalid"
	StatePausedSmall StateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Level     string
	Head      puzzle.Coord
	Remaining int
	Target    int
	Score     int
	Drags     int
	Resets    int
	Revealed  int // Obstacles currently rendered as trail
	Animating bool
	State     StateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.err != nil:
		state = StateInvalid
	case g.tooSmall:
		state = StatePausedSmall
	case g.over:
		state = StateOver
	case g.won:
		state = StateRevealing
	case g.paused:
		state = StatePaused
	}

	s := Snapshot{
		Tick:      g.tick,
		Level:     g.level.ID,
		Score:     g.score,
		Drags:     g.drags,
		Resets:    g.resets,
		Revealed:  g.reveal.count(g.revealElapsed()),
		Animating: g.anim != nil,
		State:     state,
	}
	if g.engine != nil {
		s.Head = g.engine.Current()
		s.Remaining = g.engine.Remaining()
		s.Target = g.engine.Target()
	}
	return s
}
