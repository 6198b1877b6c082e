package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gemquest/internal/core"
)

// Terminal cells are treated as 8x16 pixels when turning mouse motion into
// pointer motion.
const (
	cellWidthPx  = 8
	cellHeightPx = 16
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()
	if len(key) == 1 {
		key = strings.ToLower(key)
	}

	switch key {
	case "ctrl+c", "esc", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w":
		return core.ActionForward, false
	case "s":
		return core.ActionBackward, false
	case "a":
		return core.ActionLeft, false
	case "d":
		return core.ActionRight, false
	case " ":
		return core.ActionJump, false
	case "e":
		return core.ActionInteract, false
	case "left":
		return core.ActionLookLeft, false
	case "right":
		return core.ActionLookRight, false
	case "up":
		return core.ActionLookUp, false
	case "down":
		return core.ActionLookDown, false
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// LookOffset returns the synthetic pointer motion for a held look key.
// Moving the pointer left turns the view left, as with a mouse.
func LookOffset(a core.Action, step float32) (dx, dy float32) {
	switch a {
	case core.ActionLookLeft:
		return -step, 0
	case core.ActionLookRight:
		return step, 0
	case core.ActionLookUp:
		return 0, -step
	case core.ActionLookDown:
		return 0, step
	}
	return 0, 0
}

// lookActions are the actions LookOffset understands.
var lookActions = []core.Action{
	core.ActionLookLeft,
	core.ActionLookRight,
	core.ActionLookUp,
	core.ActionLookDown,
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
