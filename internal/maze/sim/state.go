package sim

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/gemquest/internal/maze/world"
)

// ItemState tracks the gem. It only moves forward: AtRest -> Carried -> Delivered.
type ItemState int

const (
	AtRest ItemState = iota
	Carried
	Delivered
)

func (s ItemState) String() string {
	switch s {
	case AtRest:
		return "at rest"
	case Carried:
		return "carried"
	case Delivered:
		return "delivered"
	default:
		return "unknown"
	}
}

// Player is the player's body and view. Pos.Y() is the height above the floor.
// Yaw and Pitch are degrees; the rates are the smoothed per-tick look deltas.
type Player struct {
	Pos       mgl32.Vec3
	Vel       mgl32.Vec3
	Yaw       float32
	Pitch     float32
	YawRate   float32
	PitchRate float32
}

// State is everything the step advances.
type State struct {
	Player       Player
	Item         ItemState
	Brightness   float32 // [0, 1]; 0 while fading in and after the final fade-out
	ItemRotation float32 // degrees, grows without bound
	Finished     bool
	Ticks        uint64
	Elapsed      float32 // seconds of simulated time
}

// NewState places the player on the grid's spawn cell with the screen dark.
func NewState(g *world.Grid) State {
	sx, sz := g.Spawn()
	x, z := world.IndexToPosition(sx, sz)
	return State{
		Player: Player{Pos: mgl32.Vec3{x, 0, z}},
		Item:   AtRest,
	}
}

// Input is the input for one tick. The pointer is read relative to the
// centre of the viewport; the host re-centres it after every tick.
type Input struct {
	Forward  bool
	Back     bool
	Left     bool
	Right    bool
	Jump     bool
	Interact bool

	PointerX, PointerY float32
	CenterX, CenterY   float32
}

// Events reports what happened during a step.
type Events struct {
	PickedUp  bool
	Delivered bool
	Completed bool // the final fade-out reached black; the session is over
}

// Any reports whether any event fired.
func (e Events) Any() bool {
	return e.PickedUp || e.Delivered || e.Completed
}
