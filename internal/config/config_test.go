package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchDefaultConfig(t *testing.T) {
	var cfg GameConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded defaults differ from DefaultConfig():\n%+v\n%+v", cfg, DefaultConfig())
	}
}

func TestDefaultConfigOriginalConstants(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  float32
		want float32
	}{
		{"max speed", cfg.Player.MaxSpeed, 0.2},
		{"jump speed", cfg.Player.JumpSpeed, 1.8},
		{"friction", cfg.Player.Friction, 5.0},
		{"gravity", cfg.Player.Gravity, 0.08},
		{"floor bounciness", cfg.Player.FloorBounciness, 0.25},
		{"mouse speed", cfg.Look.Speed, 1.75},
		{"mouse friction", cfg.Look.Friction, 7.5},
		{"fade speed", cfg.Fade.Speed, 0.5},
		{"fade start", cfg.Fade.StartDistance, 4},
		{"item rotation", cfg.Item.RotationSpeed, 45},
		{"fov", cfg.Render.FOV, 70},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %v, expected %v", tc.name, tc.got, tc.want)
		}
	}
	if cfg.TickInterval != 30*time.Millisecond {
		t.Errorf("tick interval = %v, expected 30ms", cfg.TickInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("player:\n  max_speed: 0.4\nrender:\n  fov: 90\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Player.MaxSpeed != 0.4 || cfg.Render.FOV != 90 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Player.Gravity != 0.08 {
		t.Errorf("unspecified key should keep default, gravity = %v", cfg.Player.Gravity)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("player:\n  floor_bounciness: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(bad)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "player.floor_bounciness" {
		t.Errorf("Field = %q", verr.Field)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
		field  string
	}{
		{"zero tick", func(c *GameConfig) { c.TickInterval = 0 }, "tick_interval"},
		{"far before near", func(c *GameConfig) { c.Render.Far = 0.0001 }, "render.far"},
		{"flat fov", func(c *GameConfig) { c.Render.FOV = 180 }, "render.fov"},
		{"zero scale", func(c *GameConfig) { c.Window.Scale = 0 }, "window.scale"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			var verr ValidationError
			if err := cfg.Validate(); !errors.As(err, &verr) || verr.Field != tc.field {
				t.Errorf("Validate() = %v, expected field %q", err, tc.field)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("relative/runs.db")
	if err != nil || got != "relative/runs.db" {
		t.Errorf("ExpandHome(relative) = %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/x/runs.db")
	if err != nil || got != filepath.Join(home, "x", "runs.db") {
		t.Errorf("ExpandHome(~/...) = %q, %v", got, err)
	}
}
