package registry

import (
	"sync"
	"testing"

	"github.com/vovakirdan/dotfill/internal/core"
)

type stubGame struct {
	id    string
	title string
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func stub(id, title string) Factory {
	return func() Game { return &stubGame{id: id, title: title} }
}

func TestRegisterAndList(t *testing.T) {
	r := New()
	r.Register("02-ring", stub("02-ring", "Ring"))
	r.Register("01-first-steps", stub("01-first-steps", "First Steps"))

	got := r.List()
	if len(got) != 2 {
		t.Fatalf("List() returned %d games, expected 2", len(got))
	}
	if got[0].ID != "01-first-steps" || got[0].Title != "First Steps" {
		t.Errorf("List()[0] = %+v", got[0])
	}
	if got[1].ID != "02-ring" {
		t.Errorf("List should be sorted by ID, got %+v", got)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", r.Len())
	}
}

func TestCreate(t *testing.T) {
	r := New()
	r.Register("a", stub("a", "A"))

	g, err := r.Create("a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "a" {
		t.Errorf("ID() = %q", g.ID())
	}

	if _, err := r.Create("missing"); err == nil {
		t.Error("expected error for unknown game")
	}
	if !r.Exists("a") || r.Exists("missing") {
		t.Error("Exists reported the wrong result")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New()
	r.Register("a", stub("a", "A"))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	r.Register("a", stub("a", "A again"))
}

func TestConcurrentCreate(t *testing.T) {
	r := New()
	r.Register("a", stub("a", "A"))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Create("a"); err != nil {
				t.Errorf("Create: %v", err)
			}
		}()
	}
	wg.Wait()
}
