// Package scene turns a game state into the ordered list of mesh draws for
// one frame: the skybox, the carried gem, then every grid cell with its
// distance fade.
package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/gemquest/internal/config"
	"github.com/vovakirdan/gemquest/internal/maze/assets"
	"github.com/vovakirdan/gemquest/internal/maze/sim"
	"github.com/vovakirdan/gemquest/internal/maze/world"
)

// Epsilon is the opacity below which a cell is not drawn.
const Epsilon = 1e-4

// DrawOp is one mesh draw.
type DrawOp struct {
	Mesh    assets.MeshID
	Model   mgl32.Mat4
	Opacity float32
}

// Frame holds everything that changes per frame. The projection only
// changes with the viewport and is kept by the renderer.
type Frame struct {
	View       mgl32.Mat4
	Brightness float32
	TimeMs     float32 // milliseconds within the current second, drives the scanlines
	Ops        []DrawOp
}

// Options tune the composition.
type Options struct {
	EyeHeight   float32
	CarryOffset float32
	FadeStart   float32 // cells farther than this start to fade out

	// KeepTransparent emits cells whose opacity is below Epsilon instead of
	// skipping them. The rendered image is the same either way.
	KeepTransparent bool
}

// DefaultOptions returns the stock options.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig())
}

// OptionsFromConfig extracts composition options from the tuning file.
func OptionsFromConfig(cfg config.GameConfig) Options {
	return Options{
		EyeHeight:   cfg.Player.EyeHeight,
		CarryOffset: cfg.Player.CarryOffset,
		FadeStart:   cfg.Fade.StartDistance,
	}
}

// Camera builds the view matrix for an eye at (x, y, z) looking along
// yaw/pitch in degrees: RotX(pitch) * RotY(yaw) * Translate(-eye).
func Camera(eye mgl32.Vec3, yaw, pitch float32) mgl32.Mat4 {
	rot := mgl32.HomogRotate3DX(mgl32.DegToRad(pitch)).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(yaw)))
	return rot.Mul4(mgl32.Translate3D(-eye[0], -eye[1], -eye[2]))
}

// CellOpacity is the distance fade of a cell centred at (cx, cz) seen from
// (px, pz): fully opaque up to fadeStart, transparent one unit further.
func CellOpacity(cx, cz, px, pz, fadeStart float32) float32 {
	d := math32.Hypot(cx-px, cz-pz)
	return 1 - mgl32.Clamp(d-fadeStart, 0, 1)
}

// Compose lists the draws for st on g.
func Compose(g *world.Grid, st sim.State, opts Options) Frame {
	pl := st.Player
	eye := mgl32.Vec3{pl.Pos[0], pl.Pos[1] + opts.EyeHeight, pl.Pos[2]}

	f := Frame{
		View:       Camera(eye, pl.Yaw, pl.Pitch),
		Brightness: st.Brightness,
		TimeMs:     math32.Mod(st.Elapsed*1000, 1000),
		Ops:        make([]DrawOp, 0, 2*g.Width()*g.Depth()),
	}

	f.Ops = append(f.Ops, DrawOp{Mesh: assets.Skybox, Model: mgl32.Ident4(), Opacity: 1})

	spin := mgl32.HomogRotate3DY(mgl32.DegToRad(st.ItemRotation))
	if st.Item == sim.Carried {
		hover := mgl32.Translate3D(pl.Pos[0], pl.Pos[1]+opts.CarryOffset, pl.Pos[2])
		f.Ops = append(f.Ops, DrawOp{Mesh: assets.Crystal, Model: hover.Mul4(spin), Opacity: 1})
	}

	g.Each(func(x, z int, k world.FieldKind) {
		cx, cz := world.IndexToPosition(x, z)
		opacity := CellOpacity(cx, cz, pl.Pos[0], pl.Pos[2], opts.FadeStart)
		if opacity < Epsilon && !opts.KeepTransparent {
			return
		}

		at := mgl32.Translate3D(cx, 0, cz)
		draw := func(id assets.MeshID, model mgl32.Mat4) {
			f.Ops = append(f.Ops, DrawOp{Mesh: id, Model: model, Opacity: opacity})
		}

		if k != world.Wall {
			draw(assets.Floor, at)
		}
		switch {
		case k == world.Arch:
			draw(assets.Arch, at)
		case k == world.Wall:
			draw(assets.Wall, at)
		case k == world.Item && st.Item == sim.AtRest:
			draw(assets.Crystal, at.Mul4(spin))
		case k == world.Goal:
			draw(assets.Tube, at)
			if st.Item == sim.Delivered {
				draw(assets.Crystal, at.Mul4(spin))
			}
		}
	})
	return f
}
