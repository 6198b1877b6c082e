package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/gemquest.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It matches the embedded
// defaults/gemquest.yaml and is the last fallback of Load.
func DefaultConfig() GameConfig {
	return GameConfig{
		TickInterval: 30 * time.Millisecond,
		Map:          "classic",
		Player: PlayerConfig{
			MaxSpeed:        0.2,
			JumpSpeed:       1.8,
			Friction:        5.0,
			Gravity:         0.08,
			FloorBounciness: 0.25,
			EyeHeight:       0.5,
			CarryOffset:     -0.2,
		},
		Look: LookConfig{
			Speed:    1.75,
			Friction: 7.5,
			KeyStep:  12,
		},
		Fade: FadeConfig{
			Speed:         0.5,
			StartDistance: 4.0,
		},
		Item: ItemConfig{
			RotationSpeed: 45,
		},
		Render: RenderConfig{
			FOV:  70,
			Near: 0.001,
			Far:  200,
		},
		Window: WindowConfig{
			Width:  640,
			Height: 480,
			Scale:  2,
		},
		Terminal: TerminalConfig{
			HoldInitial: 550 * time.Millisecond,
			HoldRepeat:  120 * time.Millisecond,
		},
		Storage: StorageConfig{
			DBPath: "~/.gemquest/runs.db",
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
