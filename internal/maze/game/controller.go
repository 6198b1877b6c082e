// Package game runs one GemQuest session: it owns the game state, turns wall
// clock ticks into simulation steps and composes frames for the hosts.
package game

import (
	"fmt"
	"time"

	"github.com/vovakirdan/gemquest/internal/config"
	"github.com/vovakirdan/gemquest/internal/core"
	"github.com/vovakirdan/gemquest/internal/maze/assets"
	"github.com/vovakirdan/gemquest/internal/maze/maps"
	"github.com/vovakirdan/gemquest/internal/maze/scene"
	"github.com/vovakirdan/gemquest/internal/maze/sim"
	"github.com/vovakirdan/gemquest/internal/raster"
	"github.com/vovakirdan/gemquest/internal/storage"
)

// MaxDelta caps the time a single tick may simulate. A host that stalls
// (suspended laptop, blocked terminal) would otherwise move the player
// through walls in one step. The cap is lowered further when the friction
// settings need shorter steps; see sim.Params.MaxStableStep.
//
// After a stall the session clock advances by at most the cap, so Elapsed
// and recorded run times fall behind wall time by the excess.
const MaxDelta = 100 * time.Millisecond

// Controller is a single session.
type Controller struct {
	sim   sim.Simulation
	opts  scene.Options
	cfg   config.GameConfig
	level maps.Map
	limit time.Duration

	state sim.State
	last  time.Time
	err   error
}

// New starts a session on m.
func New(m maps.Map, cfg config.GameConfig) *Controller {
	p := sim.ParamsFromConfig(cfg)
	return &Controller{
		sim:   sim.New(m.Grid, p),
		opts:  scene.OptionsFromConfig(cfg),
		cfg:   cfg,
		level: m,
		limit: stepLimit(p),
		state: sim.NewState(m.Grid),
	}
}

// stepLimit is MaxDelta, or less when p needs shorter steps to stay stable.
func stepLimit(p sim.Params) time.Duration {
	limit := MaxDelta
	if s := p.MaxStableStep(); s > 0 {
		limit = min(limit, time.Duration(float64(s)*float64(time.Second)))
	}
	return limit
}

// MaxStep returns the longest time a single tick simulates.
func (c *Controller) MaxStep() time.Duration {
	return c.limit
}

// Tick advances the session to now. The first tick simulates one configured
// interval and no tick simulates more than MaxStep. After an error or
// completion further ticks do nothing.
func (c *Controller) Tick(now time.Time, in sim.Input) (sim.Events, error) {
	if c.err != nil {
		return sim.Events{}, c.err
	}
	if c.state.Finished {
		return sim.Events{}, nil
	}

	delta := c.cfg.TickInterval
	if !c.last.IsZero() {
		delta = now.Sub(c.last)
	}
	c.last = now
	delta = min(max(delta, 0), c.limit)

	next, ev, err := c.sim.Step(c.state, in, float32(delta.Seconds()))
	if err != nil {
		c.err = fmt.Errorf("game: tick %d: %w", c.state.Ticks+1, err)
		return ev, c.err
	}
	c.state = next
	return ev, nil
}

// Frame composes the scene for the current state.
func (c *Controller) Frame() scene.Frame {
	return scene.Compose(c.level.Grid, c.state, c.opts)
}

// State returns the current state.
func (c *Controller) State() sim.State {
	return c.state
}

// Map returns the map being played.
func (c *Controller) Map() maps.Map {
	return c.level
}

// Finished reports whether the final fade-out has completed.
func (c *Controller) Finished() bool {
	return c.state.Finished
}

// Err returns the error that stopped the session, if any.
func (c *Controller) Err() error {
	return c.err
}

// Elapsed returns the simulated play time, fade-in included.
func (c *Controller) Elapsed() time.Duration {
	return time.Duration(float64(c.state.Elapsed) * float64(time.Second))
}

// Objective returns the HUD hint for the current item state.
func (c *Controller) Objective() string {
	switch c.state.Item {
	case sim.AtRest:
		return "Find the magic gem"
	case sim.Carried:
		return "Bring the gem to the GemContainer"
	default:
		return "Well done!"
	}
}

// Run returns the leaderboard record for the current session.
func (c *Controller) Run(player string) storage.Run {
	return storage.Run{
		MapHash:  c.level.Fingerprint(),
		MapID:    c.level.ID,
		MapName:  c.level.Name,
		Player:   player,
		Duration: c.Elapsed(),
	}
}

// FinishMessage is printed when a run completes.
func FinishMessage(d time.Duration) string {
	return fmt.Sprintf("You finished the game in %.2f seconds. Well done!", d.Seconds())
}

// Banner is the short introduction shown before play.
func Banner() []string {
	return []string{
		"** GemQuest **",
		"Find the magic gem and yeet it into the GemContainer(TM)!",
		"Move: WASD, Jump: Space, Interact: E, Look: Mouse/Arrows, Exit: ESC.",
	}
}

// InputFrom converts a host input frame to a step input. The pointer offset
// of the frame is reported relative to a centre at the origin.
func InputFrom(f core.InputFrame) sim.Input {
	return sim.Input{
		Forward:  f.Has(core.ActionForward),
		Back:     f.Has(core.ActionBackward),
		Left:     f.Has(core.ActionLeft),
		Right:    f.Has(core.ActionRight),
		Jump:     f.Has(core.ActionJump),
		Interact: f.Has(core.ActionInteract),
		PointerX: f.LookDX,
		PointerY: f.LookDY,
	}
}

// NewRenderer creates a renderer of the given size with every mesh uploaded.
func NewRenderer(w, h int, cfg config.GameConfig) (*raster.Renderer, error) {
	meshes, err := assets.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("game: loading meshes: %w", err)
	}
	r := raster.New(w, h, cfg.Render)
	r.UploadAll(meshes)
	return r, nil
}
