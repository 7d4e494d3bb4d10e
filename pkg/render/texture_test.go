package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestTexelWrap(t *testing.T) {
	// 4x1 texture, one color per column.
	tex := NewTexture(4, 1)
	for x := range 4 {
		tex.SetPixel(x, 0, RGB(uint8(x), 0, 0))
	}

	tests := []struct {
		name string
		u    float64
		want uint8
	}{
		{"origin", 0, 0},
		{"rounds to nearest", 0.24, 1},
		{"one wraps to zero", 1, 0},
		{"negative uses magnitude", -0.25, 1},
		{"tiles past one", 1.5, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Texel(tc.u, 0).R; got != tc.want {
				t.Errorf("Texel(%v) column = %d, want %d", tc.u, got, tc.want)
			}
		})
	}
}

func TestTexelIndexInRange(t *testing.T) {
	tests := []struct {
		name  string
		coord float64
		size  int
		want  int
	}{
		{"nan", math.NaN(), 3, 0},
		{"positive infinity", math.Inf(1), 3, 0},
		{"negative infinity", math.Inf(-1), 100, 0},
		{"negative odd size", -2.7, 3, 2},
		{"beyond int range", 1e300, 3, int(math.Mod(1e300, 3))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := texelIndex(tc.coord, tc.size)
			if got != tc.want || got < 0 || got >= tc.size {
				t.Errorf("texelIndex(%v, %d) = %d, want %d", tc.coord, tc.size, got, tc.want)
			}
		})
	}
}

func TestTexelEmptyTexture(t *testing.T) {
	if got := NewTexture(0, 0).Texel(0.5, 0.5); got != ColorMagenta {
		t.Errorf("Texel on empty texture = %v, want magenta", got)
	}
}

func TestMissingTexel(t *testing.T) {
	tests := []struct {
		x, y int
		want Color
	}{
		{1, 1, ColorMagenta},
		{3, 7, ColorMagenta},
		{0, 0, ColorBlack},
		{1, 2, ColorBlack},
		{2, 1, ColorBlack},
	}
	for _, tc := range tests {
		if got := missingTexel(tc.x, tc.y); got != tc.want {
			t.Errorf("missingTexel(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestCheckerTexture(t *testing.T) {
	tex := NewCheckerTexture(8, 8, 4, ColorWhite, ColorBlack)
	if tex.GetPixel(0, 0) != ColorWhite || tex.GetPixel(4, 0) != ColorBlack || tex.GetPixel(4, 4) != ColorWhite {
		t.Error("unexpected checker layout")
	}
	if got := tex.GetPixel(8, 0); got != (Color{}) {
		t.Errorf("out-of-bounds GetPixel = %v", got)
	}
}

func TestTextureFromImage(t *testing.T) {
	// Non-zero origin and a non-RGBA source.
	img := image.NewNRGBA(image.Rect(10, 10, 13, 12))
	img.SetNRGBA(12, 11, color.NRGBA{R: 9, G: 8, B: 7, A: 255})

	tex := TextureFromImage(img)
	if tex.Width != 3 || tex.Height != 2 {
		t.Fatalf("size = %dx%d, want 3x2", tex.Width, tex.Height)
	}
	if got := tex.GetPixel(2, 1); got != RGB(9, 8, 7) {
		t.Errorf("pixel = %v", got)
	}
}

func TestResizeTexture(t *testing.T) {
	src := NewTexture(4, 4)
	for i := range src.Pixels {
		src.Pixels[i] = RGB(200, 100, 50)
	}

	dst := ResizeTexture(src, 8, 2)
	if dst.Width != 8 || dst.Height != 2 || len(dst.Pixels) != 16 {
		t.Fatalf("resized to %dx%d (%d pixels)", dst.Width, dst.Height, len(dst.Pixels))
	}
	got := dst.GetPixel(4, 1)
	if abs(int(got.R)-200) > 1 || abs(int(got.G)-100) > 1 || abs(int(got.B)-50) > 1 {
		t.Errorf("uniform texture resampled to %v", got)
	}
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})

	encoders := []struct {
		name   string
		encode func(*os.File) error
	}{
		{"tex.png", func(f *os.File) error { return png.Encode(f, img) }},
		{"tex.bmp", func(f *os.File) error { return bmp.Encode(f, img) }},
	}

	for _, enc := range encoders {
		t.Run(enc.name, func(t *testing.T) {
			path := filepath.Join(dir, enc.name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := enc.encode(f); err != nil {
				t.Fatal(err)
			}
			f.Close()

			tex, err := LoadTexture(path)
			if err != nil {
				t.Fatalf("LoadTexture: %v", err)
			}
			if tex.Width != 2 || tex.Height != 2 {
				t.Errorf("size = %dx%d", tex.Width, tex.Height)
			}
			if got := tex.GetPixel(1, 0); got.R != 255 || got.G != 0 {
				t.Errorf("pixel (1,0) = %v, want red", got)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadTexture(filepath.Join(dir, "nope.png")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("not an image", func(t *testing.T) {
		path := filepath.Join(dir, "junk.png")
		if err := os.WriteFile(path, []byte("junk"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadTexture(path); err == nil {
			t.Error("expected decode error")
		}
	})
}
