package config

import "fmt"

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks value ranges the simulation and renderer rely on.
// It returns the first problem found.
func (c GameConfig) Validate() error {
	checks := []struct {
		ok      bool
		field   string
		message string
	}{
		{c.TickInterval > 0, "tick_interval", "must be positive"},
		{c.Map != "", "map", "must not be empty"},
		{c.Player.MaxSpeed > 0, "player.max_speed", "must be positive"},
		{c.Player.Friction >= 0, "player.friction", "must not be negative"},
		{c.Player.Gravity > 0, "player.gravity", "must be positive"},
		{c.Player.FloorBounciness >= 0 && c.Player.FloorBounciness < 1, "player.floor_bounciness", "must be in [0, 1)"},
		{c.Look.Friction >= 0, "look.friction", "must not be negative"},
		{c.Fade.Speed > 0, "fade.speed", "must be positive"},
		{c.Fade.StartDistance >= 0, "fade.start_distance", "must not be negative"},
		{c.Render.FOV > 0 && c.Render.FOV < 180, "render.fov", "must be in (0, 180)"},
		{c.Render.Near > 0, "render.near", "must be positive"},
		{c.Render.Far > c.Render.Near, "render.far", "must be greater than render.near"},
		{c.Window.Width > 0 && c.Window.Height > 0, "window", "width and height must be positive"},
		{c.Window.Scale >= 1, "window.scale", "must be at least 1"},
		{c.Terminal.HoldInitial > 0, "terminal.hold_initial", "must be positive"},
		{c.Terminal.HoldRepeat > 0, "terminal.hold_repeat", "must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return ValidationError{Field: chk.field, Message: chk.message}
		}
	}
	return nil
}
