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
	"github.com/vovakirdan/gemquest/internal/maze/sim"
	"github.com/vovakirdan/gemquest/internal/maze/world"
	"github.com/vovakirdan/gemquest/internal/storage"
)

func testOptions(t *testing.T, lvl maps.Map) Options {
	t.Helper()
	rt := core.DefaultConfig()
	rt.ScreenW, rt.ScreenH = 40, 13
	rt.Player = "tester"
	return Options{Map: lvl, Config: config.DefaultConfig(), Runtime: rt}
}

func classicMap(t *testing.T) maps.Map {
	t.Helper()
	m, err := maps.ByID("classic")
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// roomMap has the spawn next to both the gem and the goal.
func roomMap(t *testing.T) maps.Map {
	t.Helper()
	g, err := world.Parse([]string{
		"#####",
		"#I.G#",
		"#.S.#",
		"#####",
	})
	if err != nil {
		t.Fatal(err)
	}
	return maps.Map{ID: "room", Name: "Room", Grid: g}
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelTicks(t *testing.T) {
	m := newTestModel(t, testOptions(t, classicMap(t)))
	now := time.Now()

	m, cmd := update(t, m, TickMsg{ID: m.id + 1000, Time: now})
	if cmd != nil || m.ctrl.State().Ticks != 0 {
		t.Fatal("a tick for another model must be ignored")
	}

	m, cmd = update(t, m, TickMsg{ID: m.id, Time: now})
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if m.ctrl.State().Ticks != 1 {
		t.Errorf("Ticks = %d, expected 1", m.ctrl.State().Ticks)
	}
}

func TestModelHeldKeyMoves(t *testing.T) {
	m := newTestModel(t, testOptions(t, classicMap(t)))
	now := time.Now()

	m, _ = update(t, m, runeKey('w'))
	for i := 1; i <= 5; i++ {
		m, _ = update(t, m, TickMsg{ID: m.id, Time: now.Add(time.Duration(i) * 30 * time.Millisecond)})
	}
	if v := m.ctrl.State().Player.Vel.Z(); v <= 0 {
		t.Errorf("holding W should accelerate forward, vz = %v", v)
	}
}

func TestModelArrowKeysLook(t *testing.T) {
	m := newTestModel(t, testOptions(t, classicMap(t)))
	start := time.Now().Add(-3 * time.Second)

	// Let the fade-in finish so look input is not scaled away.
	for i := 1; i <= 80; i++ {
		m, _ = update(t, m, TickMsg{ID: m.id, Time: start.Add(time.Duration(i) * 30 * time.Millisecond)})
	}
	yaw := m.ctrl.State().Player.Yaw

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, TickMsg{ID: m.id, Time: time.Now().Add(10 * time.Millisecond)})

	if m.ctrl.State().Player.Yaw <= yaw {
		t.Errorf("left arrow should turn the view left: yaw %v -> %v", yaw, m.ctrl.State().Player.Yaw)
	}
}

func TestModelQuit(t *testing.T) {
	opts := testOptions(t, classicMap(t))

	m := newTestModel(t, opts)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !isQuit(cmd) || !m.Done() {
		t.Error("esc should quit a standalone session")
	}

	opts.Embedded = true
	m = newTestModel(t, opts)
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil || !m.Done() {
		t.Error("esc in an embedded session should only mark it done")
	}
}

func TestModelFinishSavesRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	lvl := roomMap(t)
	opts := testOptions(t, lvl)
	opts.Runtime.ScreenW = 80
	opts.Store = store
	m := newTestModel(t, opts)

	now := time.Now()
	m, _ = update(t, m, runeKey('e'))

	var cmd tea.Cmd
	for i := 1; i <= 10 && !m.result.Finished; i++ {
		m, cmd = update(t, m, TickMsg{ID: m.id, Time: now.Add(time.Duration(i) * 30 * time.Millisecond)})
	}

	res := m.Result()
	if !res.Finished || res.Err != nil {
		t.Fatalf("Result() = %+v, item %s", res, m.ctrl.State().Item)
	}
	if m.ctrl.State().Item != sim.Delivered {
		t.Errorf("item = %s", m.ctrl.State().Item)
	}
	if !isQuit(cmd) {
		t.Error("finishing a standalone session should quit")
	}
	if res.RunID == 0 {
		t.Fatal("run was not saved")
	}

	runs, err := store.BestRuns(lvl.Fingerprint(), 10)
	if err != nil || len(runs) != 1 {
		t.Fatalf("BestRuns() = %v, %v", runs, err)
	}
	if runs[0].Player != "tester" || runs[0].MapID != "room" {
		t.Errorf("saved run = %+v", runs[0])
	}

	if view := m.View(); !strings.Contains(view, "Well done!") {
		t.Errorf("View() after finishing should show the finish message")
	}
}

func TestModelOutOfBoundsStops(t *testing.T) {
	g, err := world.Parse([]string{"S.."})
	if err != nil {
		t.Fatal(err)
	}
	opts := testOptions(t, maps.Map{ID: "strip", Grid: g})
	m := newTestModel(t, opts)

	now := time.Now()
	var cmd tea.Cmd
	for i := 1; i <= 400 && m.result.Err == nil; i++ {
		tick := now.Add(time.Duration(i) * 30 * time.Millisecond)
		m.held.Press(core.ActionForward, tick)
		m, cmd = update(t, m, TickMsg{ID: m.id, Time: tick})
	}
	if m.Result().Err == nil {
		t.Fatal("walking off an open map should stop the session")
	}
	if !isQuit(cmd) {
		t.Error("a failed standalone session should quit")
	}
}

func TestModelViewAndResize(t *testing.T) {
	m := newTestModel(t, testOptions(t, classicMap(t)))
	if w, h := m.raster.Size(); w != 40 || h != 24 {
		t.Errorf("raster size = %dx%d, expected 40x24", w, h)
	}

	view := m.View()
	if !strings.ContainsRune(view, core.HalfBlock) {
		t.Error("View() should draw the scene with half blocks")
	}
	if !strings.Contains(view, "gem") {
		t.Error("View() should show the objective")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 21})
	if w, h := m.raster.Size(); w != 60 || h != 40 {
		t.Errorf("raster size after resize = %dx%d, expected 60x40", w, h)
	}
	if m.screen.Width() != 60 || m.screen.Height() != 21 {
		t.Errorf("screen size after resize = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestScanlinesFor(t *testing.T) {
	if got := scanlinesFor(480).Thickness; got != 5 {
		t.Errorf("Thickness at 480 rows = %v, expected 5", got)
	}
	if got := scanlinesFor(48).Thickness; got != 2 {
		t.Errorf("Thickness at 48 rows = %v, expected the minimum 2", got)
	}
}
