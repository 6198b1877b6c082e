package raster

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/gemquest/internal/maze/assets"
)

// vertex is a clip-space position with its colour.
type vertex struct {
	pos mgl32.Vec4
	col mgl32.Vec3
}

// screenVertex is a vertex after the perspective divide and viewport mapping.
type screenVertex struct {
	x, y float32 // pixels, y down
	z    float32 // depth in [0, 1]
	invW float32
	colW mgl32.Vec3 // colour divided by w
	ndcX float32
	ndcY float32
}

func (r *Renderer) drawMesh(m assets.Mesh, mvp mgl32.Mat4, sh shading) {
	var tri [3]vertex
	var sv [8]screenVertex
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		for j := 0; j < 3; j++ {
			v := m.Vertices[i+j]
			tri[j] = vertex{pos: mvp.Mul4x1(v.Pos.Vec4(1)), col: v.Color}
		}

		poly := r.clipNear(tri[:])
		if len(poly) < 3 {
			continue
		}
		for j, v := range poly {
			sv[j] = r.toScreen(v)
		}
		if !frontFacing(sv[:len(poly)]) {
			continue
		}
		for j := 1; j+1 < len(poly); j++ {
			r.fill(sv[0], sv[j], sv[j+1], sh)
		}
	}
}

// clipNear clips a triangle against the near plane z >= -w.
// The result is a convex polygon of up to four vertices.
func (r *Renderer) clipNear(in []vertex) []vertex {
	out := r.clipped[:0]
	for i := range in {
		a, b := in[i], in[(i+1)%len(in)]
		da, db := a.pos[2]+a.pos[3], b.pos[2]+b.pos[3]
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			out = append(out, vertex{
				pos: a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
				col: a.col.Add(b.col.Sub(a.col).Mul(t)),
			})
		}
	}
	r.clipped = out
	return out
}

func (r *Renderer) toScreen(v vertex) screenVertex {
	invW := 1 / v.pos[3]
	nx, ny, nz := v.pos[0]*invW, v.pos[1]*invW, v.pos[2]*invW
	return screenVertex{
		x:    (nx + 1) * 0.5 * float32(r.w),
		y:    (1 - ny) * 0.5 * float32(r.h),
		z:    nz*0.5 + 0.5,
		invW: invW,
		colW: v.col.Mul(invW),
		ndcX: nx,
		ndcY: ny,
	}
}

// frontFacing reports whether the polygon winds counter-clockwise in
// normalised device coordinates.
func frontFacing(p []screenVertex) bool {
	var area float32
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		area += a.ndcX*b.ndcY - b.ndcX*a.ndcY
	}
	return area > 0
}

// edge is the signed area term of point (px, py) against edge a->b in
// screen space (y down).
func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// topLeft reports whether a->b is a top or left edge for a triangle whose
// interior has positive edge values.
func topLeft(a, b screenVertex) bool {
	dy := b.y - a.y
	return dy < 0 || (dy == 0 && b.x > a.x)
}

func (r *Renderer) fill(a, b, c screenVertex, sh shading) {
	area := edge(a, b, c.x, c.y)
	if area == 0 {
		return
	}
	if area < 0 {
		b, c = c, b
		area = -area
	}

	minX := max(int(min(a.x, b.x, c.x)), 0)
	maxX := min(int(max(a.x, b.x, c.x))+1, r.w-1)
	minY := max(int(min(a.y, b.y, c.y)), 0)
	maxY := min(int(max(a.y, b.y, c.y))+1, r.h-1)
	if minX > maxX || minY > maxY {
		return
	}

	tlA, tlB, tlC := topLeft(b, c), topLeft(c, a), topLeft(a, b)
	inv := 1 / area
	h := float32(r.h)

	for py := minY; py <= maxY; py++ {
		fy := float32(py) + 0.5
		scan := r.scanlines.factor(h-fy, sh.timeMs)
		for px := minX; px <= maxX; px++ {
			fx := float32(px) + 0.5
			wa := edge(b, c, fx, fy)
			wb := edge(c, a, fx, fy)
			wc := edge(a, b, fx, fy)
			if !inside(wa, tlA) || !inside(wb, tlB) || !inside(wc, tlC) {
				continue
			}
			wa, wb, wc = wa*inv, wb*inv, wc*inv

			z := wa*a.z + wb*b.z + wc*c.z
			if z < 0 || z > 1 {
				continue
			}
			idx := py*r.w + px
			if z >= r.depth[idx] {
				continue
			}
			r.depth[idx] = z

			invW := wa*a.invW + wb*b.invW + wc*c.invW
			col := a.colW.Mul(wa).Add(b.colW.Mul(wb)).Add(c.colW.Mul(wc)).Mul(1 / invW)
			k := scan * sh.brightness
			r.blend(idx, col.Mul(k), sh.opacity)
		}
	}
}

func inside(w float32, topLeft bool) bool {
	return w > 0 || (w == 0 && topLeft)
}

// blend applies src-alpha / one-minus-src-alpha blending.
func (r *Renderer) blend(idx int, src mgl32.Vec3, alpha float32) {
	o := idx * 3
	for i := 0; i < 3; i++ {
		r.color[o+i] = src[i]*alpha + r.color[o+i]*(1-alpha)
	}
}
