package dotfill

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/dotfill/internal/config"
	"github.com/vovakirdan/dotfill/internal/core"
	"github.com/vovakirdan/dotfill/internal/puzzle"
)

const (
	hudHeight    = 2 // Title and stats above the board
	footerHeight = 2 // Status and controls below the board
)

// Cell glyphs.
const (
	glyphFilled   = '█'
	glyphObstacle = '▓'
	glyphEmpty    = '·'
)

// palette is the theme resolved to screen colors.
type palette struct {
	trail    []core.Color
	obstacle []core.Color
	empty    core.Color
	head     core.Color
	border   core.Color
}

func newPalette(th config.ThemeConfig) palette {
	p := palette{
		empty:  parseColor(th.Empty),
		head:   parseColor(th.Head),
		border: parseColor(th.Border),
	}
	for _, name := range th.Trail {
		p.trail = append(p.trail, parseColor(name))
	}
	for _, name := range th.Obstacle {
		p.obstacle = append(p.obstacle, parseColor(name))
	}
	if len(p.trail) == 0 {
		p.trail = []core.Color{core.ColorOrange}
	}
	if len(p.obstacle) == 0 {
		p.obstacle = []core.Color{core.ColorGray}
	}
	return p
}

// parseColor maps unknown names to the terminal default.
func parseColor(name string) core.Color {
	c, _ := core.ParseColor(name)
	return c
}

func (p palette) trailColor(skin uint8) core.Color {
	return p.trail[int(skin)%len(p.trail)]
}

func (p palette) obstacleColor(skin uint8) core.Color {
	return p.obstacle[int(skin)%len(p.obstacle)]
}

// boardRect returns the board including its border, centered between the
// HUD and the footer.
func (g *Game) boardRect() core.Rect {
	w := g.level.Cols*g.cfg.Theme.CellW + 2
	h := g.level.Rows + 2
	area := core.NewRect(0, hudHeight, g.screenW, g.screenH-hudHeight-footerHeight)
	return area.Centered(w, h)
}

// cellOrigin returns the screen position of the left column of a grid cell.
func (g *Game) cellOrigin(board core.Rect, c puzzle.Coord) (x, y int) {
	return board.X + 1 + c.Col*g.cfg.Theme.CellW, board.Y + 1 + c.Row
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderMessage(dst, "Level cannot be played", g.err.Error())
		return
	}
	if g.engine == nil {
		return
	}
	if g.tooSmall {
		g.renderMessage(dst, "Window too small", "Please resize terminal")
		return
	}

	board := g.boardRect()
	g.renderHUD(dst, board)
	g.renderBoard(dst, board)
	g.renderFooter(dst, board)

	if g.paused {
		g.drawOverlay(dst, board, "PAUSED", "Press P to resume", "Q to quit")
	}
}

func (g *Game) renderMessage(dst *core.Screen, lines ...string) {
	y := g.screenH/2 - len(lines)/2
	for i, line := range lines {
		dst.DrawTextCentered(y+i, line)
	}
}

// renderHUD draws the level title and the session stats.
func (g *Game) renderHUD(dst *core.Screen, board core.Rect) {
	dst.DrawTextCentered(board.Y-2, g.Title())

	stats := fmt.Sprintf("Score: %d   Drags: %d   Left: %d", g.score, g.drags, g.engine.Remaining())
	dst.DrawTextCentered(board.Y-1, stats)
}

// renderBoard draws the grid. Obstacles render as trail once revealed, the
// head renders in its own color and cells ahead of the animated head stay empty.
func (g *Game) renderBoard(dst *core.Screen, board core.Rect) {
	dst.DrawBox(board, g.pal.border)

	snap := g.engine.Snapshot()
	head := snap.Current
	if g.anim != nil {
		head = g.anim.head()
	}
	elapsed := g.revealElapsed()

	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			c := puzzle.C(row, col)
			cell := snap.At(row, col)
			x, y := g.cellOrigin(board, c)

			var color core.Color
			fill := glyphFilled
			switch {
			case cell.Obstacle && g.reveal.revealed(c, elapsed):
				color = g.pal.trailColor(cell.Skin)
			case cell.Obstacle:
				fill = glyphObstacle
				color = g.pal.obstacleColor(cell.ObstacleSkin)
			case c == head:
				color = g.pal.head
			case cell.Colored && (g.anim == nil || !g.anim.pending(c)):
				color = g.pal.trailColor(cell.Skin)
			default:
				dst.SetColored(x, y, glyphEmpty, g.pal.empty)
				continue
			}

			for i := 0; i < g.cfg.Theme.CellW; i++ {
				dst.SetColored(x+i, y, fill, color)
			}
		}
	}
}

// renderFooter draws the win banner and the control hints.
func (g *Game) renderFooter(dst *core.Screen, board core.Rect) {
	if g.won {
		msg := fmt.Sprintf("SOLVED in %d drags (par %d)  Score: %d", g.drags, g.engine.Target(), g.score)
		dst.DrawTextCenteredColored(board.Bottom(), msg, core.ColorBrightYellow)
	}
	dst.DrawTextCentered(g.screenH-1, g.Controls())
}

// drawOverlay draws a centered text overlay on top of the board.
func (g *Game) drawOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := core.NewRect(0, 0, g.screenW, g.screenH).Centered(maxLen+4, len(lines)+2)
	box.Y = board.Y + (board.H-box.H)/2

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, g.pal.border)
	for i, line := range lines {
		x := box.X + (box.W-utf8.RuneCountInString(line))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	if g.over {
		return "R: Play again | B: Levels | Q: Quit"
	}
	if g.won {
		return "Enter: Continue | Q: Quit"
	}
	return "Arrows/HJKL or drag: Sweep | R: Reset | P: Pause | Q: Quit"
}
