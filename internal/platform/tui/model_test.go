package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/dotfill/internal/config"
	"github.com/vovakirdan/dotfill/internal/core"
	"github.com/vovakirdan/dotfill/internal/games/dotfill"
	"github.com/vovakirdan/dotfill/internal/puzzle/levels"
	"github.com/vovakirdan/dotfill/internal/registry"
	"github.com/vovakirdan/dotfill/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func ringLevel(t *testing.T) levels.Level {
	t.Helper()
	lvl, err := levels.Builtin().LoadByID("02-ring")
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	return lvl
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// press sends a key and then one tick so the game sees it.
func press(t *testing.T, m GameModel, msg tea.KeyMsg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	next, _ = next.(GameModel).Update(TickMsg(time.Now()))
	return next.(GameModel)
}

func TestTicksToDuration(t *testing.T) {
	tests := []struct {
		ticks uint64
		rate  int
		want  time.Duration
	}{
		{60, 60, time.Second},
		{30, 60, 500 * time.Millisecond},
		{90, 30, 3 * time.Second},
		{60, 0, time.Second},
	}
	for _, tt := range tests {
		if got := ticksToDuration(tt.ticks, tt.rate); got != tt.want {
			t.Errorf("ticksToDuration(%d, %d) = %v, expected %v", tt.ticks, tt.rate, got, tt.want)
		}
	}
}

func TestGameModelSavesSolvedRun(t *testing.T) {
	store := openTestStore(t)
	sessionID := uuid.New()
	game := dotfill.New(ringLevel(t), config.DefaultGameConfig())

	m := NewGameModel(game, store, testConfig(), sessionID, nil)
	m.Init()

	for _, k := range []tea.KeyType{tea.KeyRight, tea.KeyDown, tea.KeyLeft, tea.KeyUp} {
		m = press(t, m, tea.KeyMsg{Type: k})
	}
	if !m.gameState.Won {
		t.Fatalf("expected the ring to be solved: %+v", m.gameState)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.gameState.GameOver {
		t.Fatal("enter should end the session")
	}

	// Further ticks must not save twice
	m.Update(TickMsg(time.Now()))

	scores, err := store.TopScores("02-ring", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 230 {
		t.Errorf("scores = %+v, expected one entry of 230", scores)
	}

	best, ok, err := store.BestCompletion("02-ring")
	if err != nil || !ok {
		t.Fatalf("BestCompletion: %v, %v", ok, err)
	}
	if best.Drags != 4 || best.SessionID != sessionID {
		t.Errorf("best = %+v", best)
	}
	if best.Duration != ticksToDuration(4, 60) {
		t.Errorf("duration = %v, expected %v", best.Duration, ticksToDuration(4, 60))
	}
}

func TestGameModelBackNeedsPauseOrGameOver(t *testing.T) {
	game := dotfill.New(ringLevel(t), config.DefaultGameConfig())
	m := NewGameModel(game, nil, testConfig(), uuid.New(), nil)
	m.embedded = true
	m.Init()

	m = press(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	m = press(t, m, runeKey('p'))
	if !m.gameState.Paused {
		t.Fatal("expected paused")
	}

	next, cmd := m.Update(runeKey('b'))
	m = next.(GameModel)
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}
	if cmd != nil {
		t.Error("an embedded game should not quit the program")
	}
}

func TestGameModelQuit(t *testing.T) {
	game := dotfill.New(ringLevel(t), config.DefaultGameConfig())
	m := NewGameModel(game, nil, testConfig(), uuid.New(), nil)
	m.Init()

	next, cmd := m.Update(runeKey('q'))
	m = next.(GameModel)
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestGameModelResizeKeepsProgress(t *testing.T) {
	game := dotfill.New(ringLevel(t), config.DefaultGameConfig())
	m := NewGameModel(game, nil, testConfig(), uuid.New(), nil)
	m.Init()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(GameModel)

	if game.Snapshot().Drags != 1 {
		t.Error("resize should not restart the level")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColored(3, 1, "cd", core.ColorOrange)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[1], "cd") {
		t.Errorf("missing text in %q", out)
	}
}

func newTestRegistry(t *testing.T) (*registry.Registry, []levels.Level) {
	t.Helper()
	lvls, err := levels.Builtin().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	reg := registry.New()
	dotfill.RegisterCatalog(reg, lvls, config.DefaultGameConfig())
	return reg, lvls
}

func TestMenuModelNavigation(t *testing.T) {
	_, lvls := newTestRegistry(t)
	m := NewMenuModel(NewMenuItems(lvls, nil), testConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected to stay at 0", m.cursor)
	}

	for range len(lvls) + 2 {
		next, _ = m.Update(runeKey('j'))
		m = next.(MenuModel)
	}
	if m.cursor != len(lvls)-1 {
		t.Errorf("cursor = %d, expected to stop at %d", m.cursor, len(lvls)-1)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().LevelID != lvls[len(lvls)-1].ID {
		t.Errorf("Selected() = %+v", m.Selected())
	}
	if cmd == nil {
		t.Error("a standalone menu should quit after selection")
	}
}

func TestMenuModelEmpty(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	for _, msg := range []tea.KeyMsg{runeKey('j'), {Type: tea.KeyUp}, {Type: tea.KeyEnter}} {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	if m.cursor != 0 || m.Selected() != nil {
		t.Errorf("cursor = %d, selected = %+v on an empty menu", m.cursor, m.Selected())
	}
}

func TestMenuItems(t *testing.T) {
	store := openTestStore(t)
	_, lvls := newTestRegistry(t)

	if _, err := store.SaveCompletion(storage.Completion{LevelID: "02-ring", Drags: 5}); err != nil {
		t.Fatalf("SaveCompletion: %v", err)
	}

	items := NewMenuItems(lvls, store)
	for _, it := range items {
		if it.LevelID != "02-ring" {
			continue
		}
		if it.BestDrags != 5 || it.Difficulty != config.DifficultyEasy || it.Target != 7 {
			t.Errorf("ring item = %+v", it)
		}
		if !strings.Contains(it.String(), "best 5") {
			t.Errorf("String() = %q", it.String())
		}
		return
	}
	t.Fatal("02-ring missing from menu")
}

func TestScoreboardCyclesLevels(t *testing.T) {
	reg, _ := newTestRegistry(t)
	infos := reg.List()

	m := NewScoreboardModel(infos, nil, infos[1].ID, 100, 30)
	m.embedded = true
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, expected to start at 1", m.cursor)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.(ScoreboardModel).Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.cursor != len(infos)-1 {
		t.Errorf("cursor = %d, expected wrap to %d", m.cursor, len(infos)-1)
	}
	if !strings.Contains(m.View(), "Not solved yet") {
		t.Error("expected the unsolved hint without a store")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || cmd != nil {
		t.Error("esc should go back without quitting an embedded scoreboard")
	}
}

func TestSessionModelFlow(t *testing.T) {
	reg, lvls := newTestRegistry(t)
	s := NewSessionModel(SessionOptions{Registry: reg, Levels: lvls}, testConfig())

	step := func(msg tea.Msg) tea.Cmd {
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatalf("screen = %v, expected scoreboard", s.screen)
	}
	step(runeKey('b'))
	if s.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu", s.screen)
	}

	step(runeKey('j'))
	if cmd := step(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Error("starting a game should schedule a tick")
	}
	if s.screen != screenGame || s.lastLevel != lvls[1].ID {
		t.Fatalf("screen = %v, level = %q", s.screen, s.lastLevel)
	}

	step(runeKey('p'))
	step(TickMsg(time.Now()))
	step(runeKey('b'))
	if s.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu after back", s.screen)
	}
	if s.menu.cursor != 1 {
		t.Errorf("menu cursor = %d, expected the last played level", s.menu.cursor)
	}

	if cmd := step(runeKey('q')); cmd == nil || !s.quitting {
		t.Error("q should end the session")
	}
}
