package render

import "image/color"

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors used by the renderer.
var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorMagenta = color.RGBA{255, 0, 255, 255}
	ColorGrey    = color.RGBA{51, 51, 51, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return color.RGBA{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) Color {
	return color.RGBA{r, g, b, a}
}

// ApplyIntensity scales the RGB channels of c by intensity clamped to [0, 1].
// Alpha is kept unchanged.
func ApplyIntensity(c Color, intensity float64) Color {
	switch {
	case intensity < 0:
		intensity = 0
	case intensity > 1:
		intensity = 1
	}
	return Color{
		R: uint8(float64(c.R) * intensity),
		G: uint8(float64(c.G) * intensity),
		B: uint8(float64(c.B) * intensity),
		A: c.A,
	}
}
