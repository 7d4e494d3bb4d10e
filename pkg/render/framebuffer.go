// Package render provides the framebuffer, clipper and scanline rasterizer.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// ErrInvalidSize is returned when a framebuffer is requested with a
// non-positive dimension.
var ErrInvalidSize = errors.New("invalid framebuffer size")

// Framebuffer holds a color buffer and a parallel inverse-depth ("w")
// buffer of the same dimensions.
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major pixel data
	Depth  []float64    // Row-major 1/w values, 0 means nothing drawn yet
}

// NewFramebuffer allocates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
		Depth:  make([]float64, width*height),
	}, nil
}

// Clear fills the color buffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	// Copy-doubling fill
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// ClearDepth resets the w-buffer to 0, the "infinitely far" value.
func (fb *Framebuffer) ClearDepth() {
	clear(fb.Depth)
}

func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel sets a pixel at (x, y) to the given color.
// Out-of-bounds writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if !fb.inBounds(x, y) {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DepthAt returns the stored 1/w at (x, y), or 0 outside the buffer.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if !fb.inBounds(x, y) {
		return 0
	}
	return fb.Depth[y*fb.Width+x]
}

// SetDepth stores 1/w at (x, y).
func (fb *Framebuffer) SetDepth(x, y int, invW float64) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.Depth[y*fb.Width+x] = invW
}

// DrawGrid draws a dot every spacing pixels in both directions.
func (fb *Framebuffer) DrawGrid(spacing int, c color.RGBA) {
	if spacing <= 0 {
		return
	}
	for y := 0; y < fb.Height; y += spacing {
		for x := 0; x < fb.Width; x += spacing {
			fb.Pixels[y*fb.Width+x] = c
		}
	}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) with a DDA walk: it steps
// one pixel at a time along the longer axis and rounds the other.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := x1 - x0
	dy := y1 - y0

	side := max(abs(dx), abs(dy))
	if side == 0 {
		fb.SetPixel(x0, y0, c)
		return
	}

	xInc := float64(dx) / float64(side)
	yInc := float64(dy) / float64(side)

	cx, cy := float64(x0), float64(y0)
	for range side + 1 {
		fb.SetPixel(int(math.Round(cx)), int(math.Round(cy)), c)
		cx += xInc
		cy += yInc
	}
}

// DrawTriangle draws the outline of a triangle.
func (fb *Framebuffer) DrawTriangle(x0, y0, x1, y1, x2, y2 int, c color.RGBA) {
	fb.DrawLine(x0, y0, x1, y1, c)
	fb.DrawLine(x1, y1, x2, y2, c)
	fb.DrawLine(x2, y2, x0, y0, c)
}

// DrawRect draws a filled rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c color.RGBA) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.SetPixel(px, py, c)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBABytes returns the color buffer packed as 4 bytes per pixel (R, G, B, A),
// row-major. dst is reused when large enough.
func (fb *Framebuffer) RGBABytes(dst []byte) []byte {
	n := len(fb.Pixels) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, p := range fb.Pixels {
		j := i * 4
		dst[j] = p.R
		dst[j+1] = p.G
		dst[j+2] = p.B
		dst[j+3] = p.A
	}
	return dst
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	img.Pix = fb.RGBABytes(img.Pix)
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, fb.ToImage()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
