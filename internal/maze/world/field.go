package world

import "fmt"

// FieldKind is the content of one grid cell.
// Kinds with an ordinal of zero or less can be walked through.
type FieldKind int8

const (
	Spawn FieldKind = -2 // player start; walkable
	Arch  FieldKind = -1 // doorway; walkable
	Tile  FieldKind = 0  // plain floor
	Wall  FieldKind = 1
	Item  FieldKind = 2 // the gem's pedestal
	Goal  FieldKind = 3 // the tube the gem is delivered to
)

var fieldNames = map[FieldKind]string{
	Spawn: "spawn",
	Arch:  "arch",
	Tile:  "tile",
	Wall:  "wall",
	Item:  "item",
	Goal:  "goal",
}

var fieldRunes = map[FieldKind]rune{
	Spawn: 'S',
	Arch:  'A',
	Tile:  '.',
	Wall:  '#',
	Item:  'I',
	Goal:  'G',
}

// IsSolid reports whether the player collides with the field.
func (k FieldKind) IsSolid() bool {
	return k > 0
}

// Valid reports whether k is one of the defined kinds.
func (k FieldKind) Valid() bool {
	_, ok := fieldNames[k]
	return ok
}

func (k FieldKind) String() string {
	if name, ok := fieldNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FieldKind(%d)", int8(k))
}

// Rune returns the character used for k in text maps.
func (k FieldKind) Rune() rune {
	if r, ok := fieldRunes[k]; ok {
		return r
	}
	return '?'
}

// ParseFieldRune converts a text map character to a FieldKind.
func ParseFieldRune(r rune) (FieldKind, error) {
	for k, fr := range fieldRunes {
		if fr == r {
			return k, nil
		}
	}
	return Tile, fmt.Errorf("%w: %q", ErrUnknownField, r)
}
