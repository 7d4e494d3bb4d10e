// Package models provides triangle meshes and the loaders that build them.
package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Face is a triangle referencing three mesh vertices by 0-based index.
// Front faces wind so that (B-A) x (C-A) points out of the mesh.
type Face struct {
	A, B, C int
	UVs     [3]math3d.Vec2
	Color   render.Color // Solid color used by the fill modes
}

// Mesh represents a 3D mesh with its transform and per-frame output.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face
	Texture  *render.Texture // nil draws the missing-texture pattern

	// Transform, applied as scale, then rotation (z, y, x), then translation
	Rotation    math3d.Vec3
	Scale       math3d.Vec3
	Translation math3d.Vec3

	// Bounding box in model space (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3

	// Triangles is rebuilt every frame by the pipeline.
	Triangles []render.Triangle
}

// NewMesh creates an empty mesh with unit scale.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
		Scale:    math3d.V3(1, 1, 1),
	}
}

// Load reads a mesh file, choosing the loader by extension.
func Load(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Bounds returns the model-space bounding box.
func (m *Mesh) Bounds() render.AABB {
	return render.NewAABB(m.BoundsMin, m.BoundsMax)
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// WorldMatrix returns the model-to-world transform.
func (m *Mesh) WorldMatrix() math3d.Mat4 {
	return math3d.World(m.Scale, m.Rotation, m.Translation)
}

// Normalize recenters the mesh on the origin and scales it uniformly so its
// largest dimension equals size. Loaded assets come in arbitrary units.
func (m *Mesh) Normalize(size float64) {
	m.CalculateBounds()
	extent := m.Size()
	largest := max(extent.X, extent.Y, extent.Z)
	if largest == 0 {
		return
	}
	center := m.Center()
	k := size / largest
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Sub(center).Scale(k)
	}
	m.CalculateBounds()
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// SetColor paints every face with c.
func (m *Mesh) SetColor(c render.Color) {
	for i := range m.Faces {
		m.Faces[i].Color = c
	}
}

// Clone creates a deep copy of the mesh geometry. The texture is shared and
// the per-frame triangle list is not copied.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:        m.Name,
		Vertices:    make([]math3d.Vec3, len(m.Vertices)),
		Faces:       make([]Face, len(m.Faces)),
		Texture:     m.Texture,
		Rotation:    m.Rotation,
		Scale:       m.Scale,
		Translation: m.Translation,
		BoundsMin:   m.BoundsMin,
		BoundsMax:   m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// validFace reports whether all of f's indices address a vertex.
func (m *Mesh) validFace(f Face) bool {
	n := len(m.Vertices)
	return f.A >= 0 && f.A < n && f.B >= 0 && f.B < n && f.C >= 0 && f.C < n
}
