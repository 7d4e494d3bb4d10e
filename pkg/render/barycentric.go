package render

import "github.com/taigrr/scanline/pkg/math3d"

// Barycentric returns the weights (alpha, beta, gamma) of p with respect to
// the 2D triangle a, b, c, packed as X, Y, Z.
//
// Each weight is clamped to [0, 1] on its own; the result is not
// renormalized, so points outside the triangle may sum to more than 1.
// A degenerate triangle (zero area) gives all-zero weights.
func Barycentric(a, b, c, p math3d.Vec2) math3d.Vec3 {
	ac := c.Sub(a)
	ab := b.Sub(a)
	pc := c.Sub(p)
	pb := b.Sub(p)
	ap := p.Sub(a)

	area := ac.Cross(ab)
	if area == 0 {
		return math3d.Vec3{}
	}

	alpha := clamp01(pc.Cross(pb) / area)
	beta := clamp01(ac.Cross(ap) / area)
	gamma := clamp01(1 - alpha - beta)

	return math3d.V3(alpha, beta, gamma)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
