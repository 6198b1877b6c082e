// Package world holds the static maze grid and the mapping between grid
// indices and continuous world coordinates.
//
// A grid is width x depth cells stored x-major (index x*depth+z). Cell (x, z)
// is centred on world position (x, z); one cell is one world unit.
package world

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Grid is an immutable maze layout.
type Grid struct {
	width  int
	depth  int
	cells  []FieldKind
	spawnX int
	spawnZ int
}

// New validates cells and builds a Grid. The slice is copied.
func New(width, depth int, cells []FieldKind) (*Grid, error) {
	if width <= 0 || depth <= 0 || len(cells) != width*depth {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrSizeMismatch, len(cells), width, depth)
	}

	g := &Grid{
		width: width,
		depth: depth,
		cells: append([]FieldKind(nil), cells...),
	}

	spawns := 0
	for i, k := range g.cells {
		if !k.Valid() {
			return nil, fmt.Errorf("%w: %d at index %d", ErrUnknownField, int8(k), i)
		}
		if k == Spawn {
			spawns++
			g.spawnX, g.spawnZ = i/depth, i%depth
		}
	}
	switch {
	case spawns == 0:
		return nil, ErrNoSpawn
	case spawns > 1:
		return nil, fmt.Errorf("%w: found %d", ErrMultipleSpawns, spawns)
	}
	return g, nil
}

// Width returns the number of cells along x.
func (g *Grid) Width() int { return g.width }

// Depth returns the number of cells along z.
func (g *Grid) Depth() int { return g.depth }

// Spawn returns the index of the Spawn cell.
func (g *Grid) Spawn() (x, z int) { return g.spawnX, g.spawnZ }

// InBounds reports whether (x, z) addresses a cell.
func (g *Grid) InBounds(x, z int) bool {
	return x >= 0 && x < g.width && z >= 0 && z < g.depth
}

// FieldAt returns the field at index (x, z).
// Indices outside the grid return an *OutOfBoundsError.
func (g *Grid) FieldAt(x, z int) (FieldKind, error) {
	if !g.InBounds(x, z) {
		return Wall, &OutOfBoundsError{X: x, Z: z, Width: g.width, Depth: g.depth}
	}
	return g.cells[x*g.depth+z], nil
}

// MustFieldAt is FieldAt for callers that have already checked bounds.
// It panics on an out-of-bounds index.
func (g *Grid) MustFieldAt(x, z int) FieldKind {
	k, err := g.FieldAt(x, z)
	if err != nil {
		panic(err)
	}
	return k
}

// PositionToIndex maps a world position to the nearest cell index.
// Halfway positions round away from zero, so 0.5 belongs to cell 1 and
// -0.5 to cell -1.
func PositionToIndex(x, z float32) (int, int) {
	return int(math32.Round(x)), int(math32.Round(z))
}

// IndexToPosition returns the world position of the centre of cell (x, z).
func IndexToPosition(x, z int) (float32, float32) {
	return float32(x), float32(z)
}

// FieldAtPosition returns the field containing world position (x, z).
func (g *Grid) FieldAtPosition(x, z float32) (FieldKind, error) {
	ix, iz := PositionToIndex(x, z)
	return g.FieldAt(ix, iz)
}

// Each calls fn for every cell, x-major then z, matching storage order.
func (g *Grid) Each(fn func(x, z int, k FieldKind)) {
	for x := 0; x < g.width; x++ {
		for z := 0; z < g.depth; z++ {
			fn(x, z, g.cells[x*g.depth+z])
		}
	}
}

// Count returns how many cells hold k.
func (g *Grid) Count(k FieldKind) int {
	n := 0
	for _, c := range g.cells {
		if c == k {
			n++
		}
	}
	return n
}

// Cells returns a copy of the cells in storage order.
func (g *Grid) Cells() []FieldKind {
	return append([]FieldKind(nil), g.cells...)
}
