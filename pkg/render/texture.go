package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Texture holds decoded RGBA8 pixels for texture mapping.
type Texture struct {
	Width  int
	Height int
	Pixels []Color // Row-major pixel data
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// LoadTexture loads a texture from an image file (PNG, JPEG, BMP, TIFF, WebP).
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return TextureFromImage(img), nil
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, xdraw.Src)
	return textureFromRGBA(rgba)
}

func textureFromRGBA(rgba *image.RGBA) *Texture {
	width, height := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			tex.Pixels[y*width+x] = rgba.RGBAAt(x, y)
		}
	}
	return tex
}

// ToImage converts the texture to an image.RGBA.
func (t *Texture) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := range t.Height {
		for x := range t.Width {
			img.SetRGBA(x, y, t.Pixels[y*t.Width+x])
		}
	}
	return img
}

// ResizeTexture resamples t to width x height using Catmull-Rom filtering.
func ResizeTexture(t *Texture, width, height int) *Texture {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), t.ToImage(), image.Rect(0, 0, t.Width, t.Height), xdraw.Src, nil)
	return textureFromRGBA(dst)
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			cx := x / checkSize
			cy := y / checkSize
			if (cx+cy)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// SetPixel sets a pixel in the texture.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel returns the pixel at (x, y) with bounds checking.
func (t *Texture) GetPixel(x, y int) Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// Texel returns the texel for (u, v). Coordinates outside [0, 1] tile:
// the texel index is |round(u*W)| mod W, and the same for v. An empty
// texture samples as magenta.
func (t *Texture) Texel(u, v float64) Color {
	if t.Width <= 0 || t.Height <= 0 {
		return ColorMagenta
	}
	x := texelIndex(u, t.Width)
	y := texelIndex(v, t.Height)
	return t.Pixels[y*t.Width+x]
}

// texelIndex always lands in [0, size); NaN and infinite coordinates map to 0.
func texelIndex(coord float64, size int) int {
	i := math.Abs(math.Round(coord * float64(size)))
	if math.IsNaN(i) || math.IsInf(i, 0) {
		return 0
	}
	return int(math.Mod(i, float64(size)))
}

// missingTexel is drawn when a mesh has no texture: a magenta dot on every
// odd pixel over black.
func missingTexel(x, y int) Color {
	if x%2 != 0 && y%2 != 0 {
		return ColorMagenta
	}
	return ColorBlack
}
