package scene

import (
	"slices"

	"github.com/taigrr/scanline/pkg/logging"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Update runs the geometry pipeline for a width x height viewport and
// rebuilds every mesh's triangle list.
//
// Per face: model to view space, back-face cull, clip against the frustum,
// project to pixels, flat shade. In PS1 mode each list is then sorted back
// to front.
func (s *Scene) Update(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width != s.width || height != s.height {
		s.resize(width, height)
	}

	s.stats = Stats{}
	view := s.Camera.ViewMatrix()

	for _, mesh := range s.Meshes {
		mesh.Triangles = slices.Grow(mesh.Triangles[:0], len(mesh.Faces))

		world := mesh.WorldMatrix()
		if !s.frustum.IntersectAABB(mesh.Bounds().Transform(view.Mul(world))) {
			s.stats.MeshesRejected++
			continue
		}

		for i := range mesh.Faces {
			s.processFace(mesh, &mesh.Faces[i], world, view)
		}

		if s.Renderer.Mode.PS1() {
			render.SortPainter(mesh.Triangles)
		}
		s.stats.Triangles += len(mesh.Triangles)
	}
}

func (s *Scene) processFace(mesh *models.Mesh, face *models.Face, world, view math3d.Mat4) {
	s.stats.Faces++

	var v [3]math3d.Vec3
	for j, idx := range [3]int{face.A, face.B, face.C} {
		p := world.MulVec4(math3d.V4FromV3(mesh.Vertices[idx]))
		v[j] = view.MulVec4(p).Vec3()
	}

	// The camera sits at the view-space origin.
	normal := v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
	ray := v[0].Negate()
	if s.Renderer.Cull == CullBackface && ray.Dot(normal) < 0 {
		s.stats.Culled++
		return
	}

	poly := render.NewPolygon(v[0], v[1], v[2], face.UVs[0], face.UVs[1], face.UVs[2])
	if err := poly.Clip(&s.frustum); err != nil {
		s.stats.Overflowed++
		logging.Logger().Warn("dropping face", "mesh", mesh.Name, "err", err)
		return
	}
	s.clipBuf = poly.Triangles(s.clipBuf[:0])
	if len(s.clipBuf) == 0 {
		s.stats.Clipped++
		return
	}

	color := s.Light.Shade(face.Color, normal)
	avgDepth := v[0].Z + v[1].Z + v[2].Z

	halfW, halfH := float64(s.width)/2, float64(s.height)/2
	for _, ct := range s.clipBuf {
		tri := render.Triangle{
			UVs:      ct.UVs,
			Color:    color,
			AvgDepth: avgDepth,
		}
		for j, p := range ct.Points {
			q := s.projection.MulVec4Project(math3d.V4FromV3(p))
			// Screen y grows downward.
			q.X = q.X*halfW + halfW
			q.Y = q.Y*-halfH + halfH
			tri.Points[j] = q
		}
		mesh.Triangles = append(mesh.Triangles, tri)
	}
}
