// Package config provides YAML-based tuning for GemQuest: physics and look
// constants, render settings, host options and storage/server locations.
package config

import "time"

// GameConfig is the full tuning file.
type GameConfig struct {
	TickInterval time.Duration  `yaml:"tick_interval"`
	Map          string         `yaml:"map"` // embedded map name or path to a map file
	Player       PlayerConfig   `yaml:"player"`
	Look         LookConfig     `yaml:"look"`
	Fade         FadeConfig     `yaml:"fade"`
	Item         ItemConfig     `yaml:"item"`
	Render       RenderConfig   `yaml:"render"`
	Window       WindowConfig   `yaml:"window"`
	Terminal     TerminalConfig `yaml:"terminal"`
	Storage      StorageConfig  `yaml:"storage"`
	Server       ServerConfig   `yaml:"server"`
}

// PlayerConfig defines movement physics. Speeds are per second and are
// scaled by the tick delta inside the simulation.
type PlayerConfig struct {
	MaxSpeed        float32 `yaml:"max_speed"`
	JumpSpeed       float32 `yaml:"jump_speed"`
	Friction        float32 `yaml:"friction"`
	Gravity         float32 `yaml:"gravity"`
	FloorBounciness float32 `yaml:"floor_bounciness"` // must stay below 1
	EyeHeight       float32 `yaml:"eye_height"`
	CarryOffset     float32 `yaml:"carry_offset"` // carried gem height relative to the player
}

// LookConfig defines pointer look smoothing.
type LookConfig struct {
	Speed    float32 `yaml:"speed"`
	Friction float32 `yaml:"friction"`
	KeyStep  float32 `yaml:"key_step"` // pointer units per arrow key press (terminal)
}

// FadeConfig defines the fade-in/out and distance fade.
type FadeConfig struct {
	Speed         float32 `yaml:"speed"`          // brightness per second
	StartDistance float32 `yaml:"start_distance"` // cells start fading beyond this distance
}

// ItemConfig defines the gem animation.
type ItemConfig struct {
	RotationSpeed float32 `yaml:"rotation_speed"` // degrees per second
}

// RenderConfig defines the projection.
type RenderConfig struct {
	FOV  float32 `yaml:"fov"` // degrees
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// WindowConfig defines the desktop window host.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Scale      int  `yaml:"scale"` // framebuffer pixels are Width/Scale x Height/Scale
	Fullscreen bool `yaml:"fullscreen"`
}

// TerminalConfig defines the terminal host's held-key emulation.
type TerminalConfig struct {
	HoldInitial time.Duration `yaml:"hold_initial"`
	HoldRepeat  time.Duration `yaml:"hold_repeat"`
}

// StorageConfig defines where finished runs are recorded.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines the SSH host.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}
