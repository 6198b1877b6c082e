package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// Hosts translate keys into actions; the game never sees key codes.
type Action int

const (
	ActionNone      Action = iota
	ActionForward          // W
	ActionBackward         // S
	ActionLeft             // A
	ActionRight            // D
	ActionJump             // Space
	ActionInteract         // E - pick up / deliver the gem
	ActionLookLeft         // Left arrow (terminal only)
	ActionLookRight        // Right arrow (terminal only)
	ActionLookUp           // Up arrow (terminal only)
	ActionLookDown         // Down arrow (terminal only)
	ActionConfirm          // Enter - confirm selection in menu
	ActionBack             // B - go back to menu
	ActionQuit             // Esc, Q, Ctrl+C - exit game/session
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionForward:   "Forward",
	ActionBackward:  "Backward",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionJump:      "Jump",
	ActionInteract:  "Interact",
	ActionLookLeft:  "LookLeft",
	ActionLookRight: "LookRight",
	ActionLookUp:    "LookUp",
	ActionLookDown:  "LookDown",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionQuit:      "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame is the set of actions held during one simulation tick plus the
// pointer offset accumulated since the previous tick.
type InputFrame struct {
	Actions map[Action]bool
	LookDX  float32
	LookDY  float32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// HeldKeys approximates key-down state for hosts that only report presses.
//
// A terminal sends one event when a key goes down and then auto-repeat events
// while it stays down, but nothing on release. A key therefore counts as held
// for Initial after its first press (covering the repeat delay) and for Repeat
// after each further press (covering the repeat interval).
type HeldKeys struct {
	Initial time.Duration
	Repeat  time.Duration

	until map[Action]time.Time
}

// NewHeldKeys creates a tracker with the given hold windows.
func NewHeldKeys(initial, repeat time.Duration) *HeldKeys {
	return &HeldKeys{
		Initial: initial,
		Repeat:  repeat,
		until:   make(map[Action]time.Time),
	}
}

// Press records a key press at now.
func (h *HeldKeys) Press(a Action, now time.Time) {
	window := h.Initial
	if h.Held(a, now) {
		window = h.Repeat
	}
	deadline := now.Add(window)
	if prev, ok := h.until[a]; ok && prev.After(deadline) {
		deadline = prev
	}
	h.until[a] = deadline
}

// Release forgets a key immediately.
func (h *HeldKeys) Release(a Action) {
	delete(h.until, a)
}

// Reset forgets all keys.
func (h *HeldKeys) Reset() {
	clear(h.until)
}

// Held reports whether a is still considered down at now.
func (h *HeldKeys) Held(a Action, now time.Time) bool {
	deadline, ok := h.until[a]
	return ok && now.Before(deadline)
}

// Frame returns the actions held at now and drops expired entries.
func (h *HeldKeys) Frame(now time.Time) InputFrame {
	f := NewInputFrame()
	for a, deadline := range h.until {
		if now.Before(deadline) {
			f.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	return f
}

// PointerTracker accumulates pointer motion between ticks.
//
// The game reads the pointer once per tick as an offset from the viewport
// centre and expects the host to re-centre it afterwards. Consume returns the
// motion since the last call and starts a new accumulation, which is the same
// thing without moving the real cursor.
type PointerTracker struct {
	dx, dy  float32
	lastX   float32
	lastY   float32
	hasLast bool
}

// Move adds a relative motion.
func (p *PointerTracker) Move(dx, dy float32) {
	p.dx += dx
	p.dy += dy
}

// MoveTo records an absolute pointer position; the first call only
// establishes the reference point.
func (p *PointerTracker) MoveTo(x, y float32) {
	if p.hasLast {
		p.Move(x-p.lastX, y-p.lastY)
	}
	p.lastX, p.lastY = x, y
	p.hasLast = true
}

// Consume returns the accumulated motion and resets it.
func (p *PointerTracker) Consume() (dx, dy float32) {
	dx, dy = p.dx, p.dy
	p.dx, p.dy = 0, 0
	return dx, dy
}
