package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/gemquest/internal/config"
)

// Perspective builds a left-handed projection: the camera looks down +z and
// clip w equals view-space z. Depth maps near to -1 and far to +1.
func Perspective(aspect, near, far, fovDeg float32) mgl32.Mat4 {
	tanHalf := math32.Tan(mgl32.DegToRad(fovDeg) / 2)
	zRange := near - far
	return mgl32.Mat4FromRows(
		mgl32.Vec4{1 / (tanHalf * aspect), 0, 0, 0},
		mgl32.Vec4{0, 1 / tanHalf, 0, 0},
		mgl32.Vec4{0, 0, (-near - far) / zRange, 2 * far * near / zRange},
		mgl32.Vec4{0, 0, 1, 0},
	)
}

// Viewport is the output size in pixels.
type Viewport struct {
	W, H int
}

// Aspect returns W/H, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.W <= 0 || v.H <= 0 {
		return 1
	}
	return float32(v.W) / float32(v.H)
}

// Projection returns the projection for this viewport.
func (v Viewport) Projection(cfg config.RenderConfig) mgl32.Mat4 {
	return Perspective(v.Aspect(), cfg.Near, cfg.Far, cfg.FOV)
}
