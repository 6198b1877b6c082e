package tui

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gemquest/internal/config"
	"github.com/vovakirdan/gemquest/internal/core"
	"github.com/vovakirdan/gemquest/internal/maze/game"
	"github.com/vovakirdan/gemquest/internal/maze/maps"
	"github.com/vovakirdan/gemquest/internal/maze/sim"
	"github.com/vovakirdan/gemquest/internal/raster"
	"github.com/vovakirdan/gemquest/internal/storage"
)

// hudRows is the number of text rows below the 3D view.
const hudRows = 1

// Options configure a play session.
type Options struct {
	Map      maps.Map
	Config   config.GameConfig
	Runtime  core.RuntimeConfig
	Store    *storage.Store     // nil disables the leaderboard
	Logger   *log.Logger        // nil discards
	Renderer *lipgloss.Renderer // nil uses the local terminal

	// Embedded models never quit the program; the parent checks Done.
	Embedded bool
}

// Result is the outcome of a play session.
type Result struct {
	Finished bool
	Elapsed  time.Duration
	RunID    int64 // zero if the run was not saved
	Err      error
}

// Model is the Bubble Tea model for one GemQuest session.
type Model struct {
	id      uint64
	opts    Options
	logger  *log.Logger
	ctrl    *game.Controller
	raster  *raster.Renderer
	screen  *core.Screen
	held    *core.HeldKeys
	pointer *core.PointerTracker
	keys    *KeyMapper

	result   Result
	over     bool // finished or failed; waiting for a key
	quitting bool
}

// NewModel creates a play model for opts.Map.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Runtime.TickInterval <= 0 {
		opts.Runtime.TickInterval = opts.Config.TickInterval
	}

	w, h := viewSize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	r, err := game.NewRenderer(w, h, opts.Config)
	if err != nil {
		return Model{}, err
	}
	r.SetScanlines(scanlinesFor(h))

	return Model{
		id:      nextModelID.Add(1),
		opts:    opts,
		logger:  logger.With("map", opts.Map.ID),
		ctrl:    game.New(opts.Map, opts.Config),
		raster:  r,
		screen:  core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		held:    core.NewHeldKeys(opts.Config.Terminal.HoldInitial, opts.Config.Terminal.HoldRepeat),
		pointer: &core.PointerTracker{},
		keys:    NewKeyMapper(),
	}, nil
}

// viewSize returns the framebuffer size for a terminal of cols x rows.
func viewSize(cols, rows int) (w, h int) {
	return max(cols, 1), max(rows-hudRows, 1) * 2
}

// scanlinesFor scales the scanline bands to a framebuffer of h pixel rows.
func scanlinesFor(h int) raster.Scanlines {
	s := raster.DefaultScanlines
	s.Thickness = max(2, s.Thickness*float32(h)/480)
	return s
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("session started", "player", m.opts.Runtime.Player)
	return tickCmd(m.id, m.opts.Runtime.TickInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			m.pointer.MoveTo(float32(msg.X*cellWidthPx), float32(msg.Y*cellHeightPx))
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)

	if isQuit || m.over {
		if !m.over {
			m.logger.Info("session abandoned", "elapsed", m.ctrl.Elapsed())
		}
		m.quitting = true
		return m, m.quit()
	}

	if action != core.ActionNone {
		m.held.Press(action, time.Now())
	}
	return m, nil
}

// handleResize processes window resize events. The session continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	w, h := viewSize(msg.Width, msg.Height)
	m.raster.Resize(w, h)
	m.raster.SetScanlines(scanlinesFor(h))
	return m, nil
}

// handleTick advances the simulation by the wall time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.over {
		return m, nil
	}

	frame := m.held.Frame(now)
	for _, a := range lookActions {
		if frame.Has(a) {
			m.pointer.Move(LookOffset(a, m.opts.Config.Look.KeyStep))
		}
	}
	frame.LookDX, frame.LookDY = m.pointer.Consume()

	ev, err := m.ctrl.Tick(now, game.InputFrom(frame))
	if err != nil {
		m.logger.Error("game stopped", "err", err, "pos", m.ctrl.State().Player.Pos)
		m.result.Err = err
		m.over = true
		return m, m.quit()
	}

	if ev.PickedUp {
		m.logger.Info("gem picked up", "elapsed", m.ctrl.Elapsed())
	}
	if ev.Delivered {
		m.logger.Info("gem delivered", "elapsed", m.ctrl.Elapsed())
	}
	if ev.Completed {
		m.finish()
		return m, m.quit()
	}

	return m, tickCmd(m.id, m.opts.Runtime.TickInterval)
}

// finish records the completed run.
func (m *Model) finish() {
	m.over = true
	m.result.Finished = true
	m.result.Elapsed = m.ctrl.Elapsed()
	m.logger.Info("game finished", "elapsed", m.result.Elapsed, "ticks", m.ctrl.State().Ticks)

	if m.opts.Store == nil {
		return
	}
	id, err := m.opts.Store.SaveRun(m.ctrl.Run(m.opts.Runtime.Player))
	if err != nil {
		m.logger.Warn("could not save run", "err", err)
		return
	}
	m.result.RunID = id
}

// quit ends the program unless the model is embedded in a session. An
// embedded model that is over stays on screen until a key is pressed.
func (m Model) quit() tea.Cmd {
	if m.opts.Embedded {
		return nil
	}
	return tea.Quit
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting && !m.opts.Embedded {
		return ""
	}

	m.screen.Clear()
	switch {
	case m.result.Err != nil:
		m.drawMessage(core.ColorRed, "The game stopped unexpectedly.", m.result.Err.Error(), "Press any key.")
	case m.result.Finished:
		m.drawMessage(core.ColorGreen, game.FinishMessage(m.result.Elapsed), "", "Press any key.")
	default:
		m.drawScene()
	}
	return RenderScreenWith(m.opts.Renderer, m.screen)
}

func (m Model) drawScene() {
	if err := m.raster.Draw(m.ctrl.Frame()); err != nil {
		m.drawMessage(core.ColorRed, err.Error())
		return
	}
	BlitImage(m.screen, m.raster.Image(), 0)

	st := m.ctrl.State()
	if st.Brightness < 1 && st.Item == sim.AtRest {
		for i, line := range game.Banner() {
			m.screen.DrawTextCentered(1+i, line, core.ColorWhite)
		}
	}

	hud := m.screen.Height() - hudRows
	m.screen.FillRect(core.NewRect(0, hud, m.screen.Width(), hudRows), core.Cell{Rune: ' ', FG: core.ColorDefault, BG: core.ColorBlack})
	objective := m.ctrl.Objective()
	m.screen.DrawText(1, hud, objective, core.ColorYellow)

	status := fmt.Sprintf("%.1fs", m.ctrl.Elapsed().Seconds())
	if name := m.ctrl.Map().Name; utf8.RuneCountInString(objective+name+status)+6 <= m.screen.Width() {
		status = name + "  " + status
	}
	m.screen.DrawText(m.screen.Width()-utf8.RuneCountInString(status)-1, hud, status, core.ColorGray)
}

func (m Model) drawMessage(fg core.Color, lines ...string) {
	w := 0
	for _, line := range lines {
		w = max(w, utf8.RuneCountInString(line))
	}
	box := core.NewRect(0, 0, m.screen.Width(), m.screen.Height()).Centered(w+4, len(lines)+2)
	m.screen.FillRect(box, core.Cell{Rune: ' ', FG: core.ColorDefault, BG: core.ColorBlack})
	m.screen.DrawBox(box, fg)
	for i, line := range lines {
		m.screen.DrawTextCentered(box.Y+1+i, line, fg)
	}
}

// Done reports whether the session is over and the player has left it.
func (m Model) Done() bool {
	return m.quitting
}

// Result returns the outcome so far.
func (m Model) Result() Result {
	return m.result
}

// Run starts a Bubble Tea program for a single session.
func Run(opts Options) (Result, error) {
	opts.Embedded = false
	model, err := NewModel(opts)
	if err != nil {
		return Result{}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Result(), nil
	}
	return Result{}, nil
}
