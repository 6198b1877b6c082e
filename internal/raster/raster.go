// Package raster is a small software renderer for the maze scene.
//
// It draws unindexed, vertex-coloured triangle meshes with a depth buffer,
// back-face culling, alpha blending, a global brightness and a rolling
// scanline effect, into an RGB framebuffer that hosts turn into terminal
// cells or window pixels.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/gemquest/internal/config"
	"github.com/vovakirdan/gemquest/internal/maze/assets"
	"github.com/vovakirdan/gemquest/internal/maze/scene"
)

// MinAlpha is the smallest opacity that can change an 8-bit pixel.
// Fragments below it are discarded without touching colour or depth.
const MinAlpha = 1.0 / 255

// ErrMeshNotUploaded means a draw referenced a mesh that was never uploaded.
var ErrMeshNotUploaded = errors.New("raster: mesh not uploaded")

// Scanlines configures the rolling scanline effect.
type Scanlines struct {
	Intensity float32 // darkening at the bottom of each band
	Thickness float32 // band height in pixels
}

// DefaultScanlines matches a 480 pixel high window.
var DefaultScanlines = Scanlines{Intensity: 0.15, Thickness: 5}

// Renderer owns the framebuffer, the depth buffer and the uploaded meshes.
type Renderer struct {
	w, h      int
	cfg       config.RenderConfig
	proj      mgl32.Mat4
	scanlines Scanlines

	color []float32 // RGB triples, row 0 at the top
	depth []float32
	img   *image.RGBA

	meshes map[assets.MeshID]assets.Mesh

	clipped []vertex
}

// New creates a renderer with a w*h framebuffer.
func New(w, h int, cfg config.RenderConfig) *Renderer {
	r := &Renderer{
		cfg:       cfg,
		scanlines: DefaultScanlines,
		meshes:    make(map[assets.MeshID]assets.Mesh),
	}
	r.Resize(w, h)
	return r
}

// Upload stores a mesh for later draws, replacing any previous upload.
func (r *Renderer) Upload(id assets.MeshID, m assets.Mesh) {
	r.meshes[id] = m
}

// UploadAll stores every mesh in ms.
func (r *Renderer) UploadAll(ms map[assets.MeshID]assets.Mesh) {
	for id, m := range ms {
		r.Upload(id, m)
	}
}

// Resize reallocates the buffers and recomputes the projection.
func (r *Renderer) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	r.w, r.h = w, h
	r.color = make([]float32, 3*w*h)
	r.depth = make([]float32, w*h)
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.proj = scene.Viewport{W: w, H: h}.Projection(r.cfg)
}

// Size returns the framebuffer size.
func (r *Renderer) Size() (w, h int) {
	return r.w, r.h
}

// Projection returns the current projection matrix.
func (r *Renderer) Projection() mgl32.Mat4 {
	return r.proj
}

// SetScanlines changes the scanline effect. A zero thickness disables it.
func (r *Renderer) SetScanlines(s Scanlines) {
	r.scanlines = s
}

// Clear resets the framebuffer to black and the depth buffer to far.
func (r *Renderer) Clear() {
	clear(r.color)
	for i := range r.depth {
		r.depth[i] = 1
	}
}

// Draw clears the buffers and renders every op of f in order.
func (r *Renderer) Draw(f scene.Frame) error {
	r.Clear()
	vp := r.proj.Mul4(f.View)
	for _, op := range f.Ops {
		m, ok := r.meshes[op.Mesh]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMeshNotUploaded, op.Mesh)
		}
		if op.Opacity < MinAlpha {
			continue
		}
		r.drawMesh(m, vp.Mul4(op.Model), shading{
			opacity:    op.Opacity,
			brightness: f.Brightness,
			timeMs:     f.TimeMs,
		})
	}
	return nil
}

// Image returns the framebuffer as an opaque RGBA image. The image is reused
// between calls.
func (r *Renderer) Image() *image.RGBA {
	for i, n := 0, r.w*r.h; i < n; i++ {
		o := i * 4
		r.img.Pix[o+0] = toByte(r.color[i*3+0])
		r.img.Pix[o+1] = toByte(r.color[i*3+1])
		r.img.Pix[o+2] = toByte(r.color[i*3+2])
		r.img.Pix[o+3] = 0xff
	}
	return r.img
}

// At returns the framebuffer colour at (x, y) without building the image.
func (r *Renderer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return color.RGBA{A: 0xff}
	}
	i := (y*r.w + x) * 3
	return color.RGBA{toByte(r.color[i]), toByte(r.color[i+1]), toByte(r.color[i+2]), 0xff}
}

func toByte(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}

type shading struct {
	opacity    float32
	brightness float32
	timeMs     float32
}

// factor returns the brightness factor for a fragment at window row fragY,
// counted from the bottom edge at pixel centres.
func (s Scanlines) factor(fragY, timeMs float32) float32 {
	if s.Thickness <= 0 {
		return 1
	}
	return 1 - s.Intensity*math32.Mod((fragY+timeMs)/s.Thickness, 1)
}
