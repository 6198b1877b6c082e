package core

import "fmt"

// Color is a 24-bit RGB colour for a screen cell, packed as 0xRRGGBB.
// ColorDefault leaves the terminal's own colour in place.
type Color uint32

// ColorDefault means "no explicit colour".
const ColorDefault Color = 0xFF000000

// Predefined colors for HUD elements.
const (
	ColorBlack  Color = 0x000000
	ColorWhite  Color = 0xE6E6E6
	ColorGray   Color = 0x8A8A8A
	ColorYellow Color = 0xF2D14B
	ColorCyan   Color = 0x5FD7D7
	ColorRed    Color = 0xD75F5F
	ColorGreen  Color = 0x5AE47F
)

// RGB packs three 8-bit channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// IsDefault reports whether c is ColorDefault.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}

// Channels returns the red, green and blue components.
func (c Color) Channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns the colour as "#rrggbb", or "" for ColorDefault.
func (c Color) Hex() string {
	if c.IsDefault() {
		return ""
	}
	r, g, b := c.Channels()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
