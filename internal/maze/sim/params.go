package sim

import "github.com/vovakirdan/gemquest/internal/config"

// Params are the tuning constants of the step.
type Params struct {
	MaxSpeed          float32 // horizontal acceleration per second of held input
	JumpSpeed         float32
	Friction          float32 // per second, horizontal
	Gravity           float32 // per second
	FloorBounciness   float32
	LookSpeed         float32
	LookFriction      float32 // per second
	FadeSpeed         float32 // brightness per second
	ItemRotationSpeed float32 // degrees per second
	Threshold         float32 // below this height or speed the player counts as settled
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultConfig())
}

// ParamsFromConfig extracts step parameters from the tuning file.
func ParamsFromConfig(cfg config.GameConfig) Params {
	return Params{
		MaxSpeed:          cfg.Player.MaxSpeed,
		JumpSpeed:         cfg.Player.JumpSpeed,
		Friction:          cfg.Player.Friction,
		Gravity:           cfg.Player.Gravity,
		FloorBounciness:   cfg.Player.FloorBounciness,
		LookSpeed:         cfg.Look.Speed,
		LookFriction:      cfg.Look.Friction,
		FadeSpeed:         cfg.Fade.Speed,
		ItemRotationSpeed: cfg.Item.RotationSpeed,
		Threshold:         0.01,
	}
}

// MaxStableStep is the longest dt for which the friction terms only shrink
// velocity and look rate. Beyond it v -= v*friction*dt overshoots and flips
// the sign. Zero means any step is stable.
func (p Params) MaxStableStep() float32 {
	f := max(p.Friction, p.LookFriction)
	if f <= 0 {
		return 0
	}
	return 1 / f
}
