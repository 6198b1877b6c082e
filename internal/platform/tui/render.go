package tui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gemquest/internal/core"
)

type cellColors struct {
	fg, bg core.Color
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return RenderScreenWith(lipgloss.DefaultRenderer(), s)
}

// RenderScreenWith renders through r, which carries the colour profile of
// the target terminal (an SSH client's rather than the server's).
func RenderScreenWith(r *lipgloss.Renderer, s *core.Screen) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := make(map[cellColors]lipgloss.Style)
	styleFor := func(c cellColors) lipgloss.Style {
		if st, ok := styles[c]; ok {
			return st
		}
		st := r.NewStyle()
		if hex := c.fg.Hex(); hex != "" {
			st = st.Foreground(lipgloss.Color(hex))
		}
		if hex := c.bg.Hex(); hex != "" {
			st = st.Background(lipgloss.Color(hex))
		}
		styles[c] = st
		return st
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*8 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := cellColors{cell.FG, cell.BG}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (cellColors{cell.FG, cell.BG}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.fg.IsDefault() && start.bg.IsDefault() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(start).Render(run.String()))
		}
	}
	return sb.String()
}

// BlitImage packs img into half-block cells starting at screen row top:
// pixel rows 2n and 2n+1 share cell row top+n. A missing bottom pixel is black.
func BlitImage(s *core.Screen, img *image.RGBA, top int) {
	b := img.Bounds()
	for y := 0; y*2 < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			upper := pixelColor(img, b.Min.X+x, b.Min.Y+y*2)
			lower := core.ColorBlack
			if y*2+1 < b.Dy() {
				lower = pixelColor(img, b.Min.X+x, b.Min.Y+y*2+1)
			}
			s.SetHalfBlock(x, top+y, upper, lower)
		}
	}
}

func pixelColor(img *image.RGBA, x, y int) core.Color {
	c := img.RGBAAt(x, y)
	return core.RGB(c.R, c.G, c.B)
}
