package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Plane is a plane through Point with a unit Normal. The side the normal
// points to is "inside".
type Plane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = inside (same side as normal), negative = outside.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return point.Sub(p.Point).Dot(p.Normal)
}

// FrustumPlane indices, in clipping order.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumTop
	FrustumBottom
	FrustumNear
	FrustumFar
)

// Frustum holds the 6 inward-facing planes of the view volume in view space.
type Frustum struct {
	Planes [6]Plane
}

// HorizontalFOV derives the horizontal field of view from the vertical one
// and the width/height aspect ratio.
func HorizontalFOV(fovY, aspect float64) float64 {
	return 2 * math.Atan(math.Tan(fovY/2)*aspect)
}

// NewFrustum builds the view-space frustum for a camera at the origin
// looking down +Z. The four side planes pass through the origin.
func NewFrustum(fovX, fovY, znear, zfar float64) Frustum {
	cosX, sinX := math.Cos(fovX/2), math.Sin(fovX/2)
	cosY, sinY := math.Cos(fovY/2), math.Sin(fovY/2)

	var f Frustum
	f.Planes[FrustumLeft] = Plane{Normal: math3d.V3(cosX, 0, sinX)}
	f.Planes[FrustumRight] = Plane{Normal: math3d.V3(-cosX, 0, sinX)}
	f.Planes[FrustumTop] = Plane{Normal: math3d.V3(0, -cosY, sinY)}
	f.Planes[FrustumBottom] = Plane{Normal: math3d.V3(0, cosY, sinY)}
	f.Planes[FrustumNear] = Plane{Point: math3d.V3(0, 0, znear), Normal: math3d.V3(0, 0, 1)}
	f.Planes[FrustumFar] = Plane{Point: math3d.V3(0, 0, zfar), Normal: math3d.V3(0, 0, -1)}
	return f
}

// ContainsPoint tests if a point is strictly inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(p) <= 0 {
			return false
		}
	}
	return true
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Corners returns the 8 corners of the box.
func (b AABB) Corners() [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// Transform returns an AABB that bounds the original AABB after transformation.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := b.Corners()

	transformed := m.MulVec3(corners[0])
	newMin := transformed
	newMax := transformed

	for i := 1; i < 8; i++ {
		transformed = m.MulVec3(corners[i])
		newMin = newMin.Min(transformed)
		newMax = newMax.Max(transformed)
	}

	return AABB{Min: newMin, Max: newMax}
}

// IntersectAABB tests if any part of the box may be inside the frustum.
// It is conservative: a false result means the box is fully outside one plane.
func (f Frustum) IntersectAABB(box AABB) bool {
	for i := range f.Planes {
		plane := f.Planes[i]

		// The corner furthest along the plane normal.
		pVertex := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			selectComponent(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			selectComponent(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)

		if plane.DistanceToPoint(pVertex) < 0 {
			return false
		}
	}

	return true
}

func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
