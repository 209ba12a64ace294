// Package dotfill adapts the puzzle engine to the platform game loop. It turns
// key presses and mouse drags into sweeps, animates them, keeps score and
// plays the obstacle reveal once a level is solved.
package dotfill

import (
	"math/rand"

	"github.com/vovakirdan/dotfill/internal/config"
	"github.com/vovakirdan/dotfill/internal/core"
	"github.com/vovakirdan/dotfill/internal/puzzle"
	"github.com/vovakirdan/dotfill/internal/puzzle/levels"
)

// Scoring.
const (
	pointsPerCell = 10  // Per newly colored cell
	winBonus      = 100 // For completing the level
	parBonus      = 20  // Per drag under par; par is the level's target cell count
)

// Game implements registry.Game for one level.
type Game struct {
	level levels.Level
	cfg   config.GameConfig
	pal   palette

	engine *puzzle.Engine
	err    error
	rng    *rand.Rand
	tick   uint64

	// Screen dimensions
	screenW int
	screenH int

	score  int
	drags  int // Sweeps that moved the head since the last reset
	resets int

	// Game state flags
	paused   bool
	tooSmall bool
	won      bool
	over     bool
	wonTick  uint64

	anim   *sweepAnimation
	reveal revealSchedule
}

// New creates a game for level. The engine is built on Reset.
func New(level levels.Level, cfg config.GameConfig) *Game {
	cfg = config.Normalize(cfg)
	return &Game{
		level: level,
		cfg:   cfg,
		pal:   newPalette(cfg.Theme),
	}
}

// ID returns the level identifier.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level name.
func (g *Game) Title() string {
	if g.level.Name != "" {
		return g.level.Name
	}
	return g.level.ID
}

// Reset initializes/restarts the game. The seed drives cell skins and the
// reveal schedule.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.engine, g.err = g.level.NewEngine(cfg.Seed)
	g.tick = 0
	g.score = 0
	g.drags = 0
	g.resets = 0
	g.paused = false
	g.won = false
	g.over = g.err != nil
	g.wonTick = 0
	g.anim = nil
	g.reveal = revealSchedule{}

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to new screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h

	boardW := g.level.Cols*g.cfg.Theme.CellW + 2
	boardH := g.level.Rows + 2
	g.tooSmall = g.engine != nil && (w < boardW || h < boardH+hudHeight+footerHeight)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.engine == nil || g.tooSmall || g.over {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.won {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.anim != nil && !g.anim.advance() {
		g.anim = nil
	}

	if g.won {
		g.stepReveal(in)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	// Keys pressed in the same tick resolve in gesture precedence order.
	for _, d := range puzzle.AllDirs() {
		if in.Has(actionForDir(d)) {
			g.sweep(d)
		}
	}
	for _, d := range in.Drags {
		g.sweep(g.classify(d))
	}

	return core.StepResult{State: g.State()}
}

func actionForDir(d puzzle.Dir) core.Action {
	switch d {
	case puzzle.DirUp:
		return core.ActionUp
	case puzzle.DirDown:
		return core.ActionDown
	case puzzle.DirLeft:
		return core.ActionLeft
	case puzzle.DirRight:
		return core.ActionRight
	default:
		return core.ActionNone
	}
}

// classify turns a drag in screen cells into a direction. Terminal cells are
// taller than wide, so the horizontal component is scaled first.
func (g *Game) classify(d core.DragVector) puzzle.Dir {
	return puzzle.ClassifyDrag(d.DX*g.cfg.Drag.HorizontalScale, d.DY, g.cfg.Drag.Threshold)
}

// sweep applies one gesture. A running animation is replaced by the new one.
func (g *Game) sweep(dir puzzle.Dir) {
	if dir == puzzle.DirNone || g.won {
		return
	}

	before := g.engine.Snapshot()
	res := g.engine.Sweep(dir)
	if !res.Moved() {
		return
	}

	g.drags++
	g.score += res.Colored * pointsPerCell

	fresh := make(map[puzzle.Coord]bool, res.Colored)
	for _, c := range res.Path {
		if !before.At(c.Row, c.Col).Colored {
			fresh[c] = true
		}
	}
	g.anim = newSweepAnimation(res.From, res.Path, fresh, g.cfg.Animation.SweepStepTicks, g.cfg.Animation.SweepGrowth)

	if res.Won {
		g.win()
	}
}

// restart clears the trail. The attempt starts over, so score and drags do too.
func (g *Game) restart() {
	g.engine.Reset()
	g.anim = nil
	g.score = 0
	g.drags = 0
	g.resets++
}

func (g *Game) win() {
	g.won = true
	g.wonTick = g.tick
	g.score += winBonus + parBonus*max(0, g.engine.Target()-g.drags)

	a := g.cfg.Animation
	g.reveal = newRevealSchedule(g.engine.Obstacles(), g.rng, a.RevealMinTicks, a.RevealMaxTicks)
}

// stepReveal runs the post-win presentation until the exit delay expires.
// Confirm skips the rest of it.
func (g *Game) stepReveal(in core.InputFrame) {
	if g.revealElapsed() >= g.cfg.Animation.ExitDelayTicks || in.Has(core.ActionConfirm) {
		g.over = true
	}
}

func (g *Game) revealElapsed() int {
	if !g.won {
		return 0
	}
	return int(g.tick - g.wonTick)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Won:      g.won,
		GameOver: g.over,
		Paused:   g.paused || g.tooSmall,
	}
}

// Completion reports the solved attempt, if any.
func (g *Game) Completion() (core.Completion, bool) {
	if !g.won {
		return core.Completion{}, false
	}
	return core.Completion{
		Drags:  g.drags,
		Resets: g.resets,
		Ticks:  g.wonTick,
	}, true
}

// Engine exposes the underlying puzzle engine, nil before Reset.
func (g *Game) Engine() *puzzle.Engine {
	return g.engine
}
