// Package window runs GemQuest in a desktop window with Ebiten: real key
// up/down state, a captured mouse for looking around and the software
// framebuffer scaled up to the window.
package window

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/vovakirdan/gemquest/internal/config"
	"github.com/vovakirdan/gemquest/internal/core"
	"github.com/vovakirdan/gemquest/internal/maze/game"
	"github.com/vovakirdan/gemquest/internal/maze/maps"
	"github.com/vovakirdan/gemquest/internal/raster"
	"github.com/vovakirdan/gemquest/internal/storage"
)

// Options configure a window session.
type Options struct {
	Map    maps.Map
	Config config.GameConfig
	Player string
	Store  *storage.Store // nil disables the leaderboard
	Logger *log.Logger    // nil discards
}

// Result is the outcome of a window session.
type Result struct {
	Finished bool
	Elapsed  time.Duration
	RunID    int64
	Err      error
}

// bindings maps physical keys to actions. Arrow keys look, as in the
// terminal.
var bindings = []struct {
	key    ebiten.Key
	action core.Action
}{
	{ebiten.KeyW, core.ActionForward},
	{ebiten.KeyS, core.ActionBackward},
	{ebiten.KeyA, core.ActionLeft},
	{ebiten.KeyD, core.ActionRight},
	{ebiten.KeySpace, core.ActionJump},
	{ebiten.KeyE, core.ActionInteract},
	{ebiten.KeyArrowLeft, core.ActionLookLeft},
	{ebiten.KeyArrowRight, core.ActionLookRight},
	{ebiten.KeyArrowUp, core.ActionLookUp},
	{ebiten.KeyArrowDown, core.ActionLookDown},
	{ebiten.KeyEscape, core.ActionQuit},
}

// inputFrame collects the held actions reported by pressed.
func inputFrame(pressed func(ebiten.Key) bool) core.InputFrame {
	f := core.NewInputFrame()
	for _, b := range bindings {
		if pressed(b.key) {
			f.Set(b.action)
		}
	}
	return f
}

// lookStep converts held arrow keys to pointer motion.
func lookStep(f core.InputFrame, step float32) (dx, dy float32) {
	if f.Has(core.ActionLookLeft) {
		dx -= step
	}
	if f.Has(core.ActionLookRight) {
		dx += step
	}
	if f.Has(core.ActionLookUp) {
		dy -= step
	}
	if f.Has(core.ActionLookDown) {
		dy += step
	}
	return dx, dy
}

// framebufferSize returns the render resolution for the configured window.
func framebufferSize(cfg config.WindowConfig) (w, h int) {
	scale := max(cfg.Scale, 1)
	return max(cfg.Width/scale, 1), max(cfg.Height/scale, 1)
}

// Game implements ebiten.Game for one session.
type Game struct {
	opts    Options
	logger  *log.Logger
	ctrl    *game.Controller
	raster  *raster.Renderer
	fb      *ebiten.Image
	pointer core.PointerTracker
	now     func() time.Time

	result Result
}

// New creates a window session. It does not open the window.
func New(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w, h := framebufferSize(opts.Config.Window)
	r, err := game.NewRenderer(w, h, opts.Config)
	if err != nil {
		return nil, err
	}
	s := raster.DefaultScanlines
	s.Thickness = max(2, s.Thickness*float32(h)/480)
	r.SetScanlines(s)

	return &Game{
		opts:   opts,
		logger: logger.With("map", opts.Map.ID),
		ctrl:   game.New(opts.Map, opts.Config),
		raster: r,
		now:    time.Now,
	}, nil
}

// Update advances the session by one tick.
func (g *Game) Update() error {
	frame := inputFrame(ebiten.IsKeyPressed)
	if frame.Has(core.ActionQuit) {
		g.logger.Info("session abandoned", "elapsed", g.ctrl.Elapsed())
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	g.pointer.MoveTo(float32(x), float32(y))
	g.pointer.Move(lookStep(frame, g.opts.Config.Look.KeyStep))
	frame.LookDX, frame.LookDY = g.pointer.Consume()

	return g.tick(frame)
}

// tick runs the simulation step for an assembled input frame.
func (g *Game) tick(frame core.InputFrame) error {
	ev, err := g.ctrl.Tick(g.now(), game.InputFrom(frame))
	if err != nil {
		g.logger.Error("game stopped", "err", err, "pos", g.ctrl.State().Player.Pos)
		g.result.Err = err
		return ebiten.Termination
	}

	if ev.PickedUp {
		g.logger.Info("gem picked up", "elapsed", g.ctrl.Elapsed())
	}
	if ev.Delivered {
		g.logger.Info("gem delivered", "elapsed", g.ctrl.Elapsed())
	}
	if ev.Completed {
		g.finish()
		return ebiten.Termination
	}
	return nil
}

func (g *Game) finish() {
	g.result.Finished = true
	g.result.Elapsed = g.ctrl.Elapsed()
	g.logger.Info("game finished", "elapsed", g.result.Elapsed, "ticks", g.ctrl.State().Ticks)

	if g.opts.Store == nil {
		return
	}
	id, err := g.opts.Store.SaveRun(g.ctrl.Run(g.opts.Player))
	if err != nil {
		g.logger.Warn("could not save run", "err", err)
		return
	}
	g.result.RunID = id
}

// Draw rasterizes the scene and scales it to the window.
func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.raster.Draw(g.ctrl.Frame()); err != nil {
		ebitenutil.DebugPrint(screen, err.Error())
		return
	}

	img := g.raster.Image()
	if g.fb == nil || g.fb.Bounds() != img.Bounds() {
		if g.fb != nil {
			g.fb.Deallocate()
		}
		g.fb = ebiten.NewImage(img.Bounds().Dx(), img.Bounds().Dy())
	}
	g.fb.WritePixels(img.Pix)
	screen.DrawImage(g.fb, nil)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  %.1fs", g.ctrl.Objective(), g.ctrl.Elapsed().Seconds()), 2, 2)
}

// Layout keeps the logical screen at framebuffer resolution; Ebiten scales
// it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return framebufferSize(g.opts.Config.Window)
}

// Result returns the outcome so far.
func (g *Game) Result() Result {
	return g.result
}

// Run opens the window and blocks until the session ends.
func Run(opts Options) (Result, error) {
	g, err := New(opts)
	if err != nil {
		return Result{}, err
	}

	wc := opts.Config.Window
	ebiten.SetWindowTitle("GemQuest - " + opts.Map.Name)
	ebiten.SetWindowSize(wc.Width, wc.Height)
	ebiten.SetFullscreen(wc.Fullscreen)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	if opts.Config.TickInterval > 0 {
		ebiten.SetTPS(max(int(time.Second/opts.Config.TickInterval), 1))
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return g.Result(), fmt.Errorf("window: %w", err)
	}
	return g.Result(), nil
}

var _ ebiten.Game = (*Game)(nil)
