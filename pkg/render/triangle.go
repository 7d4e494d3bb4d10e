package render

import (
	"cmp"
	"slices"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Triangle is a projected, render-ready triangle.
//
// Points hold pixel x and y, the projected depth in z, and the view-space
// depth in w for perspective correction. AvgDepth is only used to order
// triangles for the painter's algorithm.
type Triangle struct {
	Points   [3]math3d.Vec4
	UVs      [3]math3d.Vec2
	Color    Color
	AvgDepth float64
}

// A returns the first vertex.
func (t *Triangle) A() math3d.Vec4 { return t.Points[0] }

// B returns the second vertex.
func (t *Triangle) B() math3d.Vec4 { return t.Points[1] }

// C returns the third vertex.
func (t *Triangle) C() math3d.Vec4 { return t.Points[2] }

func (t *Triangle) swap(i, j int) {
	t.Points[i], t.Points[j] = t.Points[j], t.Points[i]
	t.UVs[i], t.UVs[j] = t.UVs[j], t.UVs[i]
}

// above reports whether vertex i must come after vertex j in y order.
// Equal y is ordered by ascending x.
func (t *Triangle) above(i, j int) bool {
	pi, pj := t.Points[i], t.Points[j]
	if pi.Y != pj.Y {
		return pi.Y > pj.Y
	}
	return pi.X > pj.X
}

// SortByY orders the vertices (and their UVs) by ascending screen y.
func (t *Triangle) SortByY() {
	if t.above(0, 1) {
		t.swap(0, 1)
	}
	if t.above(1, 2) {
		t.swap(1, 2)
	}
	if t.above(0, 1) {
		t.swap(0, 1)
	}
}

// SortPainter orders tris back to front by descending AvgDepth.
func SortPainter(tris []Triangle) {
	slices.SortStableFunc(tris, func(a, b Triangle) int {
		return cmp.Compare(b.AvgDepth, a.AvgDepth)
	})
}
