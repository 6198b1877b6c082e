// Package sim advances the maze game by one tick: gem animation, fade,
// pointer look, walking, jumping, wall collision and gem interaction.
//
// Step is a pure function of its arguments. The host measures the real time
// between ticks and passes it as dt, so the result does not depend on the
// tick rate being exact.
package sim

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/gemquest/internal/maze/world"
)

// Simulation binds the step to a grid and its tuning.
type Simulation struct {
	Grid   *world.Grid
	Params Params
}

// New creates a simulation over g.
func New(g *world.Grid, p Params) Simulation {
	return Simulation{Grid: g, Params: p}
}

// Step advances st by dt seconds.
//
// The order is fixed: gem rotation, fade, look, horizontal acceleration,
// vertical motion, collision, interaction. A finished state is returned
// unchanged. The only error is an out-of-bounds grid lookup, which means the
// player escaped the map; it wraps world.ErrOutOfBounds.
func (s Simulation) Step(st State, in Input, dt float32) (State, Events, error) {
	var ev Events
	if st.Finished {
		return st, ev, nil
	}
	p := s.Params

	st.Ticks++
	st.Elapsed += dt
	st.ItemRotation += p.ItemRotationSpeed * dt

	if s.fade(&st, dt) {
		st.Finished = true
		ev.Completed = true
	}

	s.look(&st.Player, in, st.Brightness, dt)
	s.accelerate(&st.Player, in, dt)
	s.vertical(&st.Player, in.Jump, dt)

	if err := s.collide(&st.Player); err != nil {
		return st, ev, err
	}

	if in.Interact {
		s.interact(&st, &ev)
	}
	return st, ev, nil
}

// fade moves brightness for the current item state and reports whether the
// final fade-out just reached black.
func (s Simulation) fade(st *State, dt float32) bool {
	step := s.Params.FadeSpeed * dt
	switch st.Item {
	case AtRest:
		st.Brightness = math32.Min(1, st.Brightness+step)
	case Delivered:
		st.Brightness -= step
		if st.Brightness <= 0 {
			st.Brightness = 0
			return true
		}
	}
	st.Brightness = math32.Max(0, math32.Min(1, st.Brightness))
	return false
}

// look turns the pointer offset from the viewport centre into an angular
// impulse. Brightness scales it so the view stays still during the fade-in.
func (s Simulation) look(pl *Player, in Input, brightness, dt float32) {
	dx := (in.CenterX - in.PointerX) * brightness
	dy := (in.CenterY - in.PointerY) * brightness

	pl.PitchRate += dy * s.Params.LookSpeed * dt
	pl.YawRate += dx * s.Params.LookSpeed * dt
	pl.PitchRate -= pl.PitchRate * s.Params.LookFriction * dt
	pl.YawRate -= pl.YawRate * s.Params.LookFriction * dt

	pl.Pitch += pl.PitchRate
	pl.Yaw += pl.YawRate
}

// Axis returns the movement direction from the four direction flags, in
// view space: x to the right, z forward. Diagonals are normalised.
func Axis(in Input) mgl32.Vec2 {
	var a mgl32.Vec2
	if in.Right {
		a[0]++
	}
	if in.Left {
		a[0]--
	}
	if in.Forward {
		a[1]++
	}
	if in.Back {
		a[1]--
	}
	if l := a.Len(); l > 1 {
		a = a.Mul(1 / l)
	}
	return a
}

// RotateAxis turns a view-space axis into world space for the given yaw.
func RotateAxis(a mgl32.Vec2, yawDeg float32) mgl32.Vec2 {
	sin, cos := math32.Sincos(mgl32.DegToRad(yawDeg))
	return mgl32.Vec2{
		a[0]*cos - a[1]*sin,
		a[1]*cos + a[0]*sin,
	}
}

func (s Simulation) accelerate(pl *Player, in Input, dt float32) {
	dir := RotateAxis(Axis(in), pl.Yaw)
	scale := dt * s.Params.MaxSpeed
	pl.Vel[0] += dir[0] * scale
	pl.Vel[2] += dir[1] * scale

	drag := dt * s.Params.Friction
	pl.Vel[0] -= pl.Vel[0] * drag
	pl.Vel[2] -= pl.Vel[2] * drag
}

// vertical runs the jump state machine. The first matching rule wins:
// airborne players fall, grounded players may jump, a landing with leftover
// speed bounces, anything else settles.
func (s Simulation) vertical(pl *Player, jump bool, dt float32) {
	p := s.Params
	switch {
	case pl.Pos[1] > p.Threshold:
		pl.Vel[1] -= p.Gravity * dt
	case jump:
		pl.Vel[1] = p.JumpSpeed * dt
	case math32.Abs(pl.Vel[1]) > p.Threshold:
		pl.Vel[1] = -pl.Vel[1] * p.FloorBounciness
	default:
		pl.Vel[1] = 0
	}
	pl.Pos[1] = math32.Max(0, pl.Pos[1]+pl.Vel[1])
}

// collide moves the player horizontally unless the target cell is solid.
// A blocked move reverses the velocity and steps back once; the step back
// is itself dropped if it would enter a solid cell.
func (s Simulation) collide(pl *Player) error {
	nx, nz := pl.Pos[0]+pl.Vel[0], pl.Pos[2]+pl.Vel[2]

	k, err := s.Grid.FieldAtPosition(nx, nz)
	if err != nil {
		return fmt.Errorf("sim: collision at (%.3f, %.3f): %w", nx, nz, err)
	}
	if !k.IsSolid() {
		pl.Pos[0], pl.Pos[2] = nx, nz
		return nil
	}

	pl.Vel[0], pl.Vel[2] = -pl.Vel[0], -pl.Vel[2]
	rx, rz := pl.Pos[0]+pl.Vel[0], pl.Pos[2]+pl.Vel[2]
	if back, err := s.Grid.FieldAtPosition(rx, rz); err == nil && !back.IsSolid() {
		pl.Pos[0], pl.Pos[2] = rx, rz
	}
	return nil
}

// interact checks the 3x3 cells around the player. The transition is chosen
// from the state at the start of the check, so one press never both picks
// up and delivers the gem.
func (s Simulation) interact(st *State, ev *Events) {
	cx, cz := world.PositionToIndex(st.Player.Pos[0], st.Player.Pos[2])
	before := st.Item
	for x := cx - 1; x <= cx+1; x++ {
		for z := cz - 1; z <= cz+1; z++ {
			k, err := s.Grid.FieldAt(x, z)
			if err != nil {
				continue
			}
			switch {
			case k == world.Item && before == AtRest:
				st.Item = Carried
			case k == world.Goal && before == Carried:
				st.Item = Delivered
			}
		}
	}
	ev.PickedUp = before == AtRest && st.Item == Carried
	ev.Delivered = before == Carried && st.Item == Delivered
}
