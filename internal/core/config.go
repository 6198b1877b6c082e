package core

import "time"

// RuntimeConfig contains configuration passed to a game session at start.
// Hosts fill it from the terminal/window size and the command line.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters (or pixels for the window host)
	ScreenH      int           // Screen height in characters (or pixels)
	TickInterval time.Duration // Wall time between simulation ticks
	Player       string        // Name recorded with finished runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickInterval: 30 * time.Millisecond,
		Player:       "player",
	}
}
