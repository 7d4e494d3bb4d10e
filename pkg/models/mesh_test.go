package models

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

func TestNewCube(t *testing.T) {
	cube := NewCube()

	if cube.VertexCount() != 8 {
		t.Errorf("vertices = %d, want 8", cube.VertexCount())
	}
	if cube.TriangleCount() != 12 {
		t.Errorf("faces = %d, want 12", cube.TriangleCount())
	}
	if cube.BoundsMin != math3d.V3(-1, -1, -1) || cube.BoundsMax != math3d.V3(1, 1, 1) {
		t.Errorf("bounds = %v..%v", cube.BoundsMin, cube.BoundsMax)
	}

	// Every face normal must point away from the center.
	for i, f := range cube.Faces {
		a, b, c := cube.Vertices[f.A], cube.Vertices[f.B], cube.Vertices[f.C]
		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		if normal.Dot(centroid) <= 0 {
			t.Errorf("face %d winds inward: normal %v at %v", i, normal, centroid)
		}
		if f.Color != render.ColorWhite {
			t.Errorf("face %d color = %v", i, f.Color)
		}
	}
}

func TestMeshNormalize(t *testing.T) {
	mesh := NewMesh("box")
	mesh.Vertices = []math3d.Vec3{
		math3d.V3(10, 20, 30),
		math3d.V3(14, 22, 31),
	}
	mesh.Normalize(2)

	if c := mesh.Center(); c.Len() > 1e-9 {
		t.Errorf("center = %v, want origin", c)
	}
	size := mesh.Size()
	if math.Abs(size.X-2) > 1e-9 || math.Abs(size.Y-1) > 1e-9 || math.Abs(size.Z-0.5) > 1e-9 {
		t.Errorf("size = %v, want (2, 1, 0.5)", size)
	}

	// A single point cannot be scaled.
	point := NewMesh("point")
	point.Vertices = []math3d.Vec3{math3d.V3(1, 1, 1)}
	point.Normalize(2)
	if point.Vertices[0] != math3d.V3(1, 1, 1) {
		t.Errorf("point moved to %v", point.Vertices[0])
	}
}

func TestMeshWorldMatrix(t *testing.T) {
	mesh := NewCube()
	mesh.Translation = math3d.V3(0, 0, 5)
	mesh.Scale = math3d.V3(2, 2, 2)

	got := mesh.WorldMatrix().MulVec3(math3d.V3(1, 1, 1))
	if got != math3d.V3(2, 2, 7) {
		t.Errorf("world corner = %v, want (2, 2, 7)", got)
	}

	box := mesh.Bounds().Transform(mesh.WorldMatrix())
	if box.Min != math3d.V3(-2, -2, 3) || box.Max != math3d.V3(2, 2, 7) {
		t.Errorf("world bounds = %v", box)
	}
}

func TestMeshClone(t *testing.T) {
	mesh := NewCube()
	mesh.Texture = render.NewTexture(2, 2)
	mesh.Triangles = append(mesh.Triangles, render.Triangle{})

	clone := mesh.Clone()
	clone.Vertices[0] = math3d.V3(9, 9, 9)
	clone.Faces[0].Color = render.ColorRed

	if mesh.Vertices[0] == clone.Vertices[0] {
		t.Error("vertices are shared")
	}
	if mesh.Faces[0].Color == render.ColorRed {
		t.Error("faces are shared")
	}
	if clone.Texture != mesh.Texture {
		t.Error("texture should be shared")
	}
	if len(clone.Triangles) != 0 {
		t.Error("triangle list should not be copied")
	}
}

func TestMeshSetColor(t *testing.T) {
	mesh := NewCube()
	mesh.SetColor(render.ColorGreen)
	for i, f := range mesh.Faces {
		if f.Color != render.ColorGreen {
			t.Fatalf("face %d color = %v", i, f.Color)
		}
	}
}

func TestLoadUnsupported(t *testing.T) {
	tests := []string{"model.stl", "model.fbx", "noext"}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			_, err := Load(path)
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("err = %v, want ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestValidFace(t *testing.T) {
	mesh := NewCube()
	tests := []struct {
		face Face
		want bool
	}{
		{Face{A: 0, B: 1, C: 7}, true},
		{Face{A: 0, B: 1, C: 8}, false},
		{Face{A: -1, B: 1, C: 2}, false},
	}
	for _, tc := range tests {
		if got := mesh.validFace(tc.face); got != tc.want {
			t.Errorf("validFace(%+v) = %v, want %v", tc.face, got, tc.want)
		}
	}
}
