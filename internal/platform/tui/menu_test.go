package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gemquest/internal/config"
	"github.com/vovakirdan/gemquest/internal/core"
	"github.com/vovakirdan/gemquest/internal/maze/maps"
	"github.com/vovakirdan/gemquest/internal/storage"
)

func builtinMaps(t *testing.T) []maps.Map {
	t.Helper()
	levels, err := maps.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	return levels
}

func menuKey(t *testing.T, m MenuModel, msg tea.KeyMsg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuItems(t *testing.T) {
	levels := builtinMaps(t)
	m := NewMenuModel(levels, nil, core.DefaultConfig())

	if len(m.items) != len(levels)+2 {
		t.Fatalf("menu has %d items, expected %d", len(m.items), len(levels)+2)
	}
	for i, lvl := range levels {
		if m.items[i].Kind != MenuPlay || m.items[i].MapID != lvl.ID {
			t.Errorf("item %d = %+v, expected play %s", i, m.items[i], lvl.ID)
		}
	}
	if m.items[len(m.items)-1].Kind != MenuQuit {
		t.Error("last item should be Quit")
	}

	view := m.View()
	for _, lvl := range levels {
		if !strings.Contains(view, lvl.Name) {
			t.Errorf("View() does not list %s", lvl.Name)
		}
	}
}

func TestMenuSelect(t *testing.T) {
	levels := builtinMaps(t)
	m := NewMenuModel(levels, nil, core.DefaultConfig())

	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if sel := m.Selected(); sel == nil || sel.MapID != levels[1].ID {
		t.Fatalf("Selected() = %+v, expected %s", sel, levels[1].ID)
	}

	m = NewMenuModel(levels, nil, core.DefaultConfig())
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if sel := m.Selected(); sel == nil || sel.Kind != MenuScores {
		t.Errorf("tab should open the scoreboard, got %+v", sel)
	}

	m = NewMenuModel(levels, nil, core.DefaultConfig())
	for range m.items {
		m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.IsQuitting() || m.Selected() != nil {
		t.Error("selecting Quit should quit")
	}
}

func TestMenuShowsBestTime(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	levels := builtinMaps(t)
	if _, err := store.SaveRun(storage.Run{MapHash: levels[0].Fingerprint(), MapID: levels[0].ID, Duration: 42500 * time.Millisecond}); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(levels, store, core.DefaultConfig())
	if m.items[0].Best != "best 42.50s" {
		t.Errorf("Best = %q", m.items[0].Best)
	}
	if m.items[1].Best != "" {
		t.Errorf("map without runs shows %q", m.items[1].Best)
	}
}

func TestScoreboardBoards(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	levels := builtinMaps(t)
	store.SaveRun(storage.Run{MapHash: levels[0].Fingerprint(), MapID: levels[0].ID, Player: "ann", Duration: 20 * time.Second})
	store.SaveRun(storage.Run{MapHash: levels[0].Fingerprint(), MapID: levels[0].ID, Player: "bo", Duration: 10 * time.Second})
	store.SaveRun(storage.Run{MapHash: "0123456789abcdef", MapID: "custom", MapName: "Custom", Duration: time.Second})

	sb := NewScoreboardModel(levels, store, 100, 30)
	if len(sb.boards) != len(levels)+1 {
		t.Fatalf("boards = %d, expected %d", len(sb.boards), len(levels)+1)
	}
	if sb.boards[len(sb.boards)-1].Title != "Custom" {
		t.Errorf("played custom map missing: %+v", sb.boards)
	}
	if len(sb.runs) != 2 || sb.runs[0].Player != "bo" {
		t.Errorf("first board runs = %+v", sb.runs)
	}

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb = next.(ScoreboardModel)
	if sb.cursor != 1 || len(sb.runs) != 0 {
		t.Errorf("tab should move to the next map, cursor %d runs %d", sb.cursor, len(sb.runs))
	}

	next, _ = sb.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestSessionFlow(t *testing.T) {
	rt := core.DefaultConfig()
	s := NewSessionModel(SessionOptions{
		Levels:  builtinMaps(t),
		Config:  config.DefaultConfig(),
		Runtime: rt,
	})

	step := func(msg tea.Msg) tea.Cmd {
		t.Helper()
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	if cmd := step(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil || isQuit(cmd) {
		t.Fatal("selecting a map should start the tick loop, not quit")
	}
	if s.screen != screenGame {
		t.Fatalf("screen = %v, expected the game", s.screen)
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatalf("esc in game should return to the menu, screen = %v", s.screen)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatalf("tab should open the scoreboard, screen = %v", s.screen)
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatalf("esc on the scoreboard should return to the menu")
	}

	if cmd := step(tea.KeyMsg{Type: tea.KeyCtrlC}); !isQuit(cmd) {
		t.Error("ctrl+c in the menu should end the session")
	}
}
