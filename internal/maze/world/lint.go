package world

import "fmt"

// Lint returns non-fatal problems that make a grid unplayable or let the
// player walk off the map. A grid that passes New but fails Lint still loads.
func (g *Grid) Lint() []string {
	var warnings []string
	if g.Count(Item) == 0 {
		warnings = append(warnings, "no item: the gem can never be picked up")
	}
	if g.Count(Goal) == 0 {
		warnings = append(warnings, "no goal: the gem can never be delivered")
	}
	g.Each(func(x, z int, k FieldKind) {
		onBorder := x == 0 || z == 0 || x == g.width-1 || z == g.depth-1
		if onBorder && !k.IsSolid() {
			warnings = append(warnings, fmt.Sprintf("open border at (%d, %d): %s", x, z, k))
		}
	})
	return warnings
}
