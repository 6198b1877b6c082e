package world

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse builds a grid from text rows, one row per x and one character per z.
// Whitespace inside a row is ignored so rows may be written spaced out.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrSizeMismatch)
	}
	depth := -1
	var cells []FieldKind
	for x, row := range rows {
		row = strings.Join(strings.Fields(row), "")
		n := utf8.RuneCountInString(row)
		if depth == -1 {
			depth = n
		} else if n != depth {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrSizeMismatch, x, n, depth)
		}
		for _, r := range row {
			k, err := ParseFieldRune(r)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", x, err)
			}
			cells = append(cells, k)
		}
	}
	return New(len(rows), depth, cells)
}

// Rows renders the grid in the text format accepted by Parse.
func (g *Grid) Rows() []string {
	rows := make([]string, g.width)
	var sb strings.Builder
	for x := 0; x < g.width; x++ {
		sb.Reset()
		for z := 0; z < g.depth; z++ {
			sb.WriteRune(g.cells[x*g.depth+z].Rune())
		}
		rows[x] = sb.String()
	}
	return rows
}
