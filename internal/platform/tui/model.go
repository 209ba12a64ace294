package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/dotfill/internal/core"
	"github.com/vovakirdan/dotfill/internal/registry"
	"github.com/vovakirdan/dotfill/internal/storage"
)

// completionReporter is implemented by games that can describe a solved run.
type completionReporter interface {
	Completion() (core.Completion, bool)
}

// resizer is implemented by games that can adapt to a new screen size
// without starting over.
type resizer interface {
	Resize(w, h int)
}

// GameModel is the Bubble Tea model that runs one game: it feeds key presses
// and mouse drags to the game each tick and records the result once the
// session is over.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	sessionID  uuid.UUID
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	drag       dragTracker
	quitting   bool
	backToMenu bool
	embedded   bool // Running inside a SessionModel; never quits the program itself
	saved      bool // Whether the result has been saved for current game over
}

// NewGameModel creates a new game model. store and logger may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, sessionID uuid.UUID, logger *log.Logger) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		sessionID:  sessionID,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if d, ok := m.drag.Feed(msg); ok {
			m.inputFrame.AddDrag(d.DX, d.DY)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to level list when the game is over or paused
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	// Start over with a new seed once the session has ended
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.saved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.saved {
		m.saveResult()
		m.saved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveResult records the score and, for solved levels, the completion.
// Failures are logged; the game continues regardless.
func (m GameModel) saveResult() {
	if m.store == nil {
		return
	}

	id := m.game.ID()
	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(id, m.gameState.Score); err != nil {
			m.logger.Warn("could not save score", "level", id, "error", err)
		}
	}

	cr, ok := m.game.(completionReporter)
	if !ok {
		return
	}
	c, solved := cr.Completion()
	if !solved {
		return
	}

	_, err := m.store.SaveCompletion(storage.Completion{
		SessionID: m.sessionID,
		LevelID:   id,
		Drags:     c.Drags,
		Resets:    c.Resets,
		Duration:  ticksToDuration(c.Ticks, m.config.TickRate),
	})
	if err != nil {
		m.logger.Warn("could not save completion", "level", id, "error", err)
		return
	}
	m.logger.Debug("level solved", "level", id, "drags", c.Drags, "session", m.sessionID)
}

func ticksToDuration(ticks uint64, tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Duration(ticks) * time.Second / time.Duration(tickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".dotfill", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level list.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunOptions carries the collaborators of a local game session.
type RunOptions struct {
	Store     *storage.Store
	Logger    *log.Logger
	SessionID uuid.UUID // Zero means a fresh random ID
}

// Run starts the Bubble Tea program for one game and blocks until it exits.
// Returns true if the player asked to go back to the level list.
func Run(game registry.Game, cfg core.RuntimeConfig, opts RunOptions) (backToMenu bool, err error) {
	if opts.SessionID == uuid.Nil {
		opts.SessionID = uuid.New()
	}
	model := NewGameModel(game, opts.Store, cfg, opts.SessionID, opts.Logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Report press, drag and release
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
