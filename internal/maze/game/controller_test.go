package game_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/gemquest/internal/config"
	"github.com/vovakirdan/gemquest/internal/core"
	"github.com/vovakirdan/gemquest/internal/maze/assets"
	"github.com/vovakirdan/gemquest/internal/maze/game"
	"github.com/vovakirdan/gemquest/internal/maze/maps"
	"github.com/vovakirdan/gemquest/internal/maze/sim"
	"github.com/vovakirdan/gemquest/internal/maze/world"
)

func newController(t *testing.T, id string) *game.Controller {
	t.Helper()
	m, err := maps.ByID(id)
	if err != nil {
		t.Fatal(err)
	}
	return game.New(m, config.DefaultConfig())
}

func near(got, want time.Duration) bool {
	d := got - want
	return d > -time.Millisecond && d < time.Millisecond
}

func TestTickUsesWallClock(t *testing.T) {
	c := newController(t, "classic")
	start := time.Unix(1000, 0)

	if _, err := c.Tick(start, sim.Input{}); err != nil {
		t.Fatal(err)
	}
	if got := c.Elapsed(); !near(got, 30*time.Millisecond) {
		t.Errorf("first tick simulated %v, expected the configured 30ms", got)
	}

	if _, err := c.Tick(start.Add(45*time.Millisecond), sim.Input{}); err != nil {
		t.Fatal(err)
	}
	if got := c.Elapsed(); !near(got, 75*time.Millisecond) {
		t.Errorf("elapsed after a 45ms gap = %v, expected ~75ms", got)
	}

	if _, err := c.Tick(start.Add(time.Hour), sim.Input{}); err != nil {
		t.Fatal(err)
	}
	if got := c.Elapsed(); !near(got, 75*time.Millisecond+c.MaxStep()) {
		t.Errorf("a stalled tick should be capped at %v, elapsed %v", c.MaxStep(), got)
	}
}

func TestMaxStepKeepsFrictionStable(t *testing.T) {
	tests := []struct {
		name     string
		friction float32
		look     float32
		want     time.Duration
	}{
		{"defaults", 5, 7.5, game.MaxDelta},
		{"stiff look", 5, 20, 50 * time.Millisecond},
		{"stiff movement", 40, 7.5, 25 * time.Millisecond},
		{"no friction", 0, 0, game.MaxDelta},
	}

	m, err := maps.ByID("classic")
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Player.Friction = tc.friction
			cfg.Look.Friction = tc.look
			c := game.New(m, cfg)
			if got := c.MaxStep(); !near(got, tc.want) {
				t.Errorf("MaxStep() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestStallStillTurnsTowardPointer(t *testing.T) {
	c := newController(t, "classic")
	now := time.Unix(1000, 0)

	// Fade in fully so look input is not damped by brightness.
	for i := 0; i < 80; i++ {
		now = now.Add(30 * time.Millisecond)
		if _, err := c.Tick(now, sim.Input{}); err != nil {
			t.Fatal(err)
		}
	}
	if b := c.State().Brightness; b < 1 {
		t.Fatalf("brightness after fade-in = %v", b)
	}
	yaw := c.State().Player.Yaw

	now = now.Add(time.Second)
	if _, err := c.Tick(now, sim.Input{PointerX: -12}); err != nil {
		t.Fatal(err)
	}

	st := c.State()
	if st.Player.Yaw <= yaw || st.Player.YawRate <= 0 {
		t.Errorf("pointer left after a stall: yaw %v -> %v, rate %v", yaw, st.Player.Yaw, st.Player.YawRate)
	}
}

func TestPickUpOnBoringMap(t *testing.T) {
	c := newController(t, "boring")
	now := time.Unix(0, 0)
	tick := func(in sim.Input) sim.Events {
		t.Helper()
		now = now.Add(30 * time.Millisecond)
		ev, err := c.Tick(now, in)
		if err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
		return ev
	}

	if !strings.Contains(c.Objective(), "gem") {
		t.Errorf("Objective() = %q", c.Objective())
	}

	// The gem at (9, 3) is within reach of (8, 2), diagonally from the spawn.
	reached := false
	for i := 0; i < 400 && !reached; i++ {
		tick(sim.Input{Right: true, Forward: true})
		pos := c.State().Player.Pos
		x, z := world.PositionToIndex(pos.X(), pos.Z())
		reached = x == 8 && z == 2
	}
	if !reached {
		t.Fatalf("could not walk to (8, 2), ended at %v", c.State().Player.Pos)
	}

	if ev := tick(sim.Input{Interact: true}); !ev.PickedUp {
		t.Fatalf("interact next to the gem: %+v, item %s", ev, c.State().Item)
	}
	if !strings.Contains(c.Objective(), "GemContainer") {
		t.Errorf("Objective() while carrying = %q", c.Objective())
	}
}

func TestDeliverAndFinish(t *testing.T) {
	g, err := world.Parse([]string{
		"#####",
		"#I.G#",
		"#.S.#",
		"#####",
	})
	if err != nil {
		t.Fatal(err)
	}
	c := game.New(maps.Map{ID: "room", Grid: g}, config.DefaultConfig())
	now := time.Unix(0, 0)

	var picked, delivered, completed bool
	for i := 0; i < 20 && !c.Finished(); i++ {
		now = now.Add(30 * time.Millisecond)
		ev, err := c.Tick(now, sim.Input{Interact: true})
		if err != nil {
			t.Fatal(err)
		}
		picked = picked || ev.PickedUp
		delivered = delivered || ev.Delivered
		completed = completed || ev.Completed
	}
	if !picked || !delivered || !completed {
		t.Fatalf("events picked=%v delivered=%v completed=%v", picked, delivered, completed)
	}
	if !c.Finished() || c.State().Item != sim.Delivered {
		t.Fatalf("Finished() = %v, item %s", c.Finished(), c.State().Item)
	}
	if c.Objective() != "Well done!" {
		t.Errorf("Objective() = %q", c.Objective())
	}

	run := c.Run("ann")
	if run.MapID != "room" || run.Player != "ann" || run.Duration != c.Elapsed() || run.MapHash != maps.Fingerprint(g) {
		t.Errorf("Run() = %+v", run)
	}

	elapsed := c.Elapsed()
	ev, err := c.Tick(now.Add(time.Second), sim.Input{Interact: true})
	if err != nil || ev.Any() {
		t.Errorf("Tick() after finish = %+v, %v", ev, err)
	}
	if c.Elapsed() != elapsed {
		t.Errorf("elapsed moved after finish: %v -> %v", elapsed, c.Elapsed())
	}
}

func TestInputFrom(t *testing.T) {
	f := core.NewInputFrame()
	f.Set(core.ActionForward)
	f.Set(core.ActionInteract)
	f.LookDX, f.LookDY = -3, 4

	in := game.InputFrom(f)
	if !in.Forward || !in.Interact || in.Back || in.Jump {
		t.Errorf("InputFrom() flags = %+v", in)
	}
	if in.PointerX != -3 || in.PointerY != 4 || in.CenterX != 0 || in.CenterY != 0 {
		t.Errorf("InputFrom() pointer = (%v, %v) centre (%v, %v)", in.PointerX, in.PointerY, in.CenterX, in.CenterY)
	}
}

func TestTickErrorIsSticky(t *testing.T) {
	g, err := world.Parse([]string{"S.."})
	if err != nil {
		t.Fatal(err)
	}
	c := game.New(maps.Map{ID: "strip", Grid: g}, config.DefaultConfig())
	now := time.Unix(0, 0)

	var tickErr error
	for i := 0; i < 500 && tickErr == nil; i++ {
		now = now.Add(30 * time.Millisecond)
		_, tickErr = c.Tick(now, sim.Input{Forward: true})
	}
	if !errors.Is(tickErr, world.ErrOutOfBounds) {
		t.Fatalf("walking off an open map: error = %v", tickErr)
	}
	if _, err := c.Tick(now.Add(time.Second), sim.Input{}); !errors.Is(err, world.ErrOutOfBounds) {
		t.Errorf("later Tick() error = %v, expected the same failure", err)
	}
	if c.Err() == nil {
		t.Error("Err() should report the failure")
	}
}

func TestFrameFollowsState(t *testing.T) {
	c := newController(t, "classic")
	f := c.Frame()
	if len(f.Ops) == 0 || f.Ops[0].Mesh != assets.Skybox {
		t.Fatal("frame should start with the skybox")
	}
	want := mgl32.Vec3{-7, -0.5, -1}
	if got := f.View.Col(3).Vec3(); !got.ApproxEqual(want) {
		t.Errorf("view translation = %v, expected %v", got, want)
	}
}

func TestNewRenderer(t *testing.T) {
	c := newController(t, "classic")
	r, err := game.NewRenderer(80, 48, config.DefaultConfig())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	if err := r.Draw(c.Frame()); err != nil {
		t.Errorf("Draw() error = %v", err)
	}
}

func TestFinishMessage(t *testing.T) {
	got := game.FinishMessage(12345 * time.Millisecond)
	if got != "You finished the game in 12.35 seconds. Well done!" {
		t.Errorf("FinishMessage() = %q", got)
	}
}
