package world

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeMismatch means the cell count does not equal width*depth.
	ErrSizeMismatch = errors.New("world: cell count does not match grid size")
	// ErrNoSpawn means the grid has no Spawn cell.
	ErrNoSpawn = errors.New("world: grid has no spawn")
	// ErrMultipleSpawns means the grid has more than one Spawn cell.
	ErrMultipleSpawns = errors.New("world: grid has more than one spawn")
	// ErrUnknownField means a cell holds an undefined FieldKind or map character.
	ErrUnknownField = errors.New("world: unknown field")
	// ErrOutOfBounds means a lookup addressed a cell outside the grid.
	ErrOutOfBounds = errors.New("world: index out of bounds")
)

// OutOfBoundsError is returned by FieldAt for indices outside the grid.
// It matches ErrOutOfBounds with errors.Is.
type OutOfBoundsError struct {
	X, Z         int
	Width, Depth int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("world: index (%d, %d) out of bounds for %dx%d grid", e.X, e.Z, e.Width, e.Depth)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}
