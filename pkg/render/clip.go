package render

import (
	"errors"

	"github.com/taigrr/scanline/pkg/math3d"
)

// MaxPolygonVertices bounds a clip polygon. A triangle gains at most one
// vertex per plane, so 3 + 6 fits.
const MaxPolygonVertices = 10

// MaxPolygonTriangles is the most triangles a full polygon fans into.
const MaxPolygonTriangles = MaxPolygonVertices - 2

// ErrPolygonOverflow is returned when clipping would grow a polygon past
// MaxPolygonVertices.
var ErrPolygonOverflow = errors.New("clip polygon exceeds vertex capacity")

// Polygon is a convex polygon in view space with a texture coordinate per
// vertex. Vertices and UVs are kept in lockstep.
type Polygon struct {
	Vertices [MaxPolygonVertices]math3d.Vec3
	UVs      [MaxPolygonVertices]math3d.Vec2
	N        int
}

// ClipTriangle is a view-space triangle produced by fanning a clipped polygon.
type ClipTriangle struct {
	Points [3]math3d.Vec3
	UVs    [3]math3d.Vec2
}

// NewPolygon creates a polygon from a triangle and its UVs.
func NewPolygon(v0, v1, v2 math3d.Vec3, uv0, uv1, uv2 math3d.Vec2) Polygon {
	return Polygon{
		Vertices: [MaxPolygonVertices]math3d.Vec3{v0, v1, v2},
		UVs:      [MaxPolygonVertices]math3d.Vec2{uv0, uv1, uv2},
		N:        3,
	}
}

// Clip intersects the polygon with every plane of the frustum, in order.
// Clipping stops early once nothing is left.
func (p *Polygon) Clip(f *Frustum) error {
	for i := range f.Planes {
		if err := p.ClipAgainst(f.Planes[i]); err != nil {
			return err
		}
		if p.N == 0 {
			return nil
		}
	}
	return nil
}

// ClipAgainst keeps the part of the polygon strictly inside plane
// (Sutherland-Hodgman). A vertex lying exactly on the plane counts as
// outside. Crossing points interpolate position and UV with the same
// parameter.
func (p *Polygon) ClipAgainst(plane Plane) error {
	if p.N == 0 {
		return nil
	}

	var out Polygon

	prevV := p.Vertices[p.N-1]
	prevUV := p.UVs[p.N-1]
	prevDist := plane.DistanceToPoint(prevV)

	for i := range p.N {
		currV := p.Vertices[i]
		currUV := p.UVs[i]
		currDist := plane.DistanceToPoint(currV)

		// The endpoints lie strictly on opposite sides.
		if prevDist*currDist < 0 {
			t := prevDist / (prevDist - currDist)
			if err := out.push(prevV.Lerp(currV, t), prevUV.Lerp(currUV, t)); err != nil {
				return err
			}
		}

		if currDist > 0 {
			if err := out.push(currV, currUV); err != nil {
				return err
			}
		}

		prevV, prevUV, prevDist = currV, currUV, currDist
	}

	*p = out
	return nil
}

func (p *Polygon) push(v math3d.Vec3, uv math3d.Vec2) error {
	if p.N >= MaxPolygonVertices {
		return ErrPolygonOverflow
	}
	p.Vertices[p.N] = v
	p.UVs[p.N] = uv
	p.N++
	return nil
}

// Triangles fans the polygon from vertex 0 and appends the n-2 triangles
// (v0, v[i+1], v[i+2]) to dst.
func (p *Polygon) Triangles(dst []ClipTriangle) []ClipTriangle {
	for i := 0; i < p.N-2; i++ {
		dst = append(dst, ClipTriangle{
			Points: [3]math3d.Vec3{p.Vertices[0], p.Vertices[i+1], p.Vertices[i+2]},
			UVs:    [3]math3d.Vec2{p.UVs[0], p.UVs[i+1], p.UVs[i+2]},
		})
	}
	return dst
}
