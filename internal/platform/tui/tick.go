// Package tui provides the Bubble Tea integration for GemQuest.
// It handles the terminal UI loop, input mapping, the menu and scoreboard
// screens, and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// ID ties the tick to the model that scheduled it, so a stale tick chain
// from a finished game cannot drive the next one.
type TickMsg struct {
	ID   uint64
	Time time.Time
}

var nextModelID atomic.Uint64

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(id uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
