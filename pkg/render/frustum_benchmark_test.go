package render

import (
	"math"
	"math/rand"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

// BenchmarkNewFrustum benchmarks building the view-space planes.
func BenchmarkNewFrustum(b *testing.B) {
	fovY := math.Pi / 3
	fovX := HorizontalFOV(fovY, 16.0/9.0)

	for b.Loop() {
		_ = NewFrustum(fovX, fovY, 0.8, 20)
	}
}

// BenchmarkAABBIntersection benchmarks AABB vs frustum intersection test.
func BenchmarkAABBIntersection(b *testing.B) {
	frustum := testFrustum()

	// AABB in front of camera (visible)
	visibleBounds := NewAABB(math3d.V3(-1, -1, 4), math3d.V3(1, 1, 6))

	b.Run("visible", func(b *testing.B) {
		for b.Loop() {
			_ = frustum.IntersectAABB(visibleBounds)
		}
	})

	// AABB behind camera (culled quickly)
	culledBounds := NewAABB(math3d.V3(-1, -1, -15), math3d.V3(1, 1, -5))

	b.Run("culled", func(b *testing.B) {
		for b.Loop() {
			_ = frustum.IntersectAABB(culledBounds)
		}
	})
}

// BenchmarkTransformAABB benchmarks AABB transformation.
func BenchmarkTransformAABB(b *testing.B) {
	local := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	transform := math3d.World(math3d.V3(2, 2, 2), math3d.V3(0, 0.5, 0), math3d.V3(10, 5, 20))

	for b.Loop() {
		_ = local.Transform(transform)
	}
}

// BenchmarkClip compares clipping triangles that need no work with ones
// that cross the frustum.
func BenchmarkClip(b *testing.B) {
	frustum := testFrustum()
	ua, ub, uc := uvs()
	dst := make([]ClipTriangle, 0, MaxPolygonTriangles)

	inside := NewPolygon(
		math3d.V3(-0.5, -0.5, 5), math3d.V3(0.5, -0.5, 5), math3d.V3(0, 0.5, 6),
		ua, ub, uc,
	)
	straddling := NewPolygon(
		math3d.V3(-0.5, -0.5, 5), math3d.V3(0.5, -0.5, 5), math3d.V3(-3, 0, 0.2),
		ua, ub, uc,
	)

	b.Run("inside", func(b *testing.B) {
		for b.Loop() {
			poly := inside
			_ = poly.Clip(&frustum)
			dst = poly.Triangles(dst[:0])
		}
	})

	b.Run("straddling", func(b *testing.B) {
		for b.Loop() {
			poly := straddling
			_ = poly.Clip(&frustum)
			dst = poly.Triangles(dst[:0])
		}
	})
}

// BenchmarkCullingScenario simulates rejecting N objects, some visible, some not.
func BenchmarkCullingScenario(b *testing.B) {
	frustum := testFrustum()

	// Generate random objects: some in view, some out
	rng := rand.New(rand.NewSource(42))
	objectCount := 100

	type object struct {
		bounds    AABB
		transform math3d.Mat4
	}
	objects := make([]object, objectCount)

	for i := range objectCount {
		// Random position: X, Y in [-10, 10], Z in [-20, 30]
		x := rng.Float64()*20 - 10
		y := rng.Float64()*20 - 10
		z := rng.Float64()*50 - 20

		objects[i] = object{
			bounds:    NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)),
			transform: math3d.Translate(math3d.V3(x, y, z)),
		}
	}

	for b.Loop() {
		visible := 0
		for _, obj := range objects {
			if frustum.IntersectAABB(obj.bounds.Transform(obj.transform)) {
				visible++
			}
		}
		_ = visible
	}
}
