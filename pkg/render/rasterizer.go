package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// VertexMarkerSize is the side length of the square drawn on each vertex.
const VertexMarkerSize = 6

// Rasterizer fills screen-space triangles into a framebuffer using
// flat-top/flat-bottom scanline decomposition.
type Rasterizer struct {
	fb *Framebuffer
}

// NewRasterizer creates a rasterizer drawing into fb.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{fb: fb}
}

// Framebuffer returns the target framebuffer.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// SetFramebuffer retargets the rasterizer, e.g. after a resize.
func (r *Rasterizer) SetFramebuffer(fb *Framebuffer) {
	r.fb = fb
}

// FillTriangle fills tri with its flat-shaded color. No depth test is done.
func (r *Rasterizer) FillTriangle(tri Triangle) {
	tri.SortByY()
	r.scan(&tri, func(x, y int) {
		r.fb.SetPixel(x, y, tri.Color)
	})
}

// FillTexturedTriangle fills tri with perspective-correct texture mapping.
// A pixel is written only when its interpolated 1/w is greater than the
// value already in the w-buffer. A nil texture draws the missing-texture
// pattern.
func (r *Rasterizer) FillTexturedTriangle(tri Triangle, tex *Texture) {
	tri.SortByY()
	if tex == nil {
		r.scan(&tri, r.plotMissing)
		return
	}
	r.scan(&tri, func(x, y int) {
		uv, invW := tri.PerspectiveUV(math3d.V2(float64(x), float64(y)))
		if invW > r.fb.DepthAt(x, y) {
			r.fb.SetPixel(x, y, tex.Texel(uv.X, uv.Y))
			r.fb.SetDepth(x, y, invW)
		}
	})
}

// FillAffineTriangle fills tri with screen-space linear UV interpolation and
// no depth test. It relies on triangles arriving back to front.
func (r *Rasterizer) FillAffineTriangle(tri Triangle, tex *Texture) {
	tri.SortByY()
	if tex == nil {
		r.scan(&tri, r.plotMissing)
		return
	}
	r.scan(&tri, func(x, y int) {
		uv := tri.AffineUV(math3d.V2(float64(x), float64(y)))
		r.fb.SetPixel(x, y, tex.Texel(uv.X, uv.Y))
	})
}

func (r *Rasterizer) plotMissing(x, y int) {
	r.fb.SetPixel(x, y, missingTexel(x, y))
}

// DrawWireframe draws the three edges of tri.
func (r *Rasterizer) DrawWireframe(tri Triangle, c Color) {
	a, b, cc := tri.A(), tri.B(), tri.C()
	r.fb.DrawTriangle(
		round(a.X), round(a.Y),
		round(b.X), round(b.Y),
		round(cc.X), round(cc.Y),
		c,
	)
}

// DrawVertexMarkers draws a small filled square centered on each vertex.
func (r *Rasterizer) DrawVertexMarkers(tri Triangle, c Color) {
	const half = VertexMarkerSize / 2
	for _, p := range tri.Points {
		r.fb.DrawRect(round(p.X)-half, round(p.Y)-half, VertexMarkerSize, VertexMarkerSize, c)
	}
}

// PerspectiveUV interpolates the texture coordinate at pixel p with
// perspective correction. It interpolates u/w, v/w and 1/w with the
// barycentric weights of p and divides out 1/w. The interpolated 1/w is
// returned for depth testing.
func (t *Triangle) PerspectiveUV(p math3d.Vec2) (math3d.Vec2, float64) {
	a, b, c := t.A(), t.B(), t.C()
	w := Barycentric(a.Vec2(), b.Vec2(), c.Vec2(), p)

	invWA, invWB, invWC := 1/a.W, 1/b.W, 1/c.W

	u := t.UVs[0].X*invWA*w.X + t.UVs[1].X*invWB*w.Y + t.UVs[2].X*invWC*w.Z
	v := t.UVs[0].Y*invWA*w.X + t.UVs[1].Y*invWB*w.Y + t.UVs[2].Y*invWC*w.Z
	invW := invWA*w.X + invWB*w.Y + invWC*w.Z

	return math3d.V2(u/invW, v/invW), invW
}

// AffineUV interpolates the texture coordinate at pixel p linearly in
// screen space.
func (t *Triangle) AffineUV(p math3d.Vec2) math3d.Vec2 {
	w := Barycentric(t.A().Vec2(), t.B().Vec2(), t.C().Vec2(), p)
	return math3d.V2(
		t.UVs[0].X*w.X+t.UVs[1].X*w.Y+t.UVs[2].X*w.Z,
		t.UVs[0].Y*w.X+t.UVs[1].Y*w.Y+t.UVs[2].Y*w.Z,
	)
}

// scan walks every pixel covered by tri, which must already be sorted by y.
func (r *Rasterizer) scan(tri *Triangle, plot func(x, y int)) {
	for _, p := range tri.Points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return
		}
	}

	x0, y0 := roundf(tri.Points[0].X), roundf(tri.Points[0].Y)
	x1, y1 := roundf(tri.Points[1].X), roundf(tri.Points[1].Y)
	x2, y2 := roundf(tri.Points[2].X), roundf(tri.Points[2].Y)

	switch {
	case y1 == y2:
		r.fillFlatBottom(x0, y0, x1, y1, x2, y2, plot)
	case y0 == y1:
		r.fillFlatTop(x0, y0, x1, y1, x2, y2, plot)
	default:
		// Split on the long edge at the height of the middle vertex.
		mx := roundf(x0 + (x2-x0)*(y1-y0)/(y2-y0))
		my := y1
		r.fillFlatBottom(x0, y0, x1, y1, mx, my, plot)
		r.fillFlatTop(x1, y1, mx, my, x2, y2, plot)
	}
}

// fillFlatBottom fills a triangle whose b and c share a row below a,
// walking down from a.
func (r *Rasterizer) fillFlatBottom(ax, ay, bx, by, cx, cy float64, plot func(x, y int)) {
	step1 := inverseSlope(bx-ax, by-ay)
	step2 := inverseSlope(cx-ax, cy-ay)

	xStart, xEnd := ax, ax
	for y := int(ay); y <= int(by); y++ {
		if xEnd < xStart {
			xStart, xEnd = xEnd, xStart
			step1, step2 = step2, step1
		}
		r.span(y, xStart, xEnd, plot)
		xStart += step1
		xEnd += step2
	}
}

// fillFlatTop fills a triangle whose a and b share a row above c,
// walking up from c.
func (r *Rasterizer) fillFlatTop(ax, ay, bx, by, cx, cy float64, plot func(x, y int)) {
	step1 := inverseSlope(cx-bx, cy-by)
	step2 := inverseSlope(cx-ax, cy-ay)

	xStart, xEnd := cx, cx
	for y := int(cy); y >= int(by); y-- {
		if xEnd < xStart {
			xStart, xEnd = xEnd, xStart
			step1, step2 = step2, step1
		}
		r.span(y, xStart, xEnd, plot)
		xStart -= step1
		xEnd -= step2
	}
}

// span plots one row from xStart to xEnd inclusive, skipping pixels that
// fall outside the framebuffer.
func (r *Rasterizer) span(y int, xStart, xEnd float64, plot func(x, y int)) {
	if y < 0 || y >= r.fb.Height {
		return
	}
	lo := max(round(xStart), 0)
	hi := min(round(xEnd), r.fb.Width-1)
	for x := lo; x <= hi; x++ {
		plot(x, y)
	}
}

// inverseSlope returns dx/dy, or 0 for a horizontal edge.
func inverseSlope(dx, dy float64) float64 {
	if dy == 0 {
		return 0
	}
	return dx / dy
}

func roundf(v float64) float64 {
	return math.Round(v)
}

func round(v float64) int {
	return int(math.Round(v))
}
