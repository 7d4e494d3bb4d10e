package models

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

var cubeVertices = []math3d.Vec3{
	{X: -1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: -1, Z: 1},
}

// Each side is two triangles over the same quad UV layout.
var cubeSides = [6][4]int{
	{0, 1, 2, 3}, // front (-Z)
	{3, 2, 4, 5}, // east (+X)
	{5, 4, 6, 7}, // back (+Z)
	{7, 6, 1, 0}, // west (-X)
	{1, 6, 4, 2}, // top (+Y)
	{7, 0, 3, 5}, // bottom (-Y)
}

// NewCube returns a 2x2x2 cube centered on the origin with every side
// mapped to the full texture.
func NewCube() *Mesh {
	m := NewMesh("cube")
	m.Vertices = append(m.Vertices, cubeVertices...)

	uv00, uv01, uv11, uv10 := math3d.V2(0, 0), math3d.V2(0, 1), math3d.V2(1, 1), math3d.V2(1, 0)
	for _, s := range cubeSides {
		m.Faces = append(m.Faces,
			Face{A: s[0], B: s[1], C: s[2], UVs: [3]math3d.Vec2{uv00, uv01, uv11}, Color: render.ColorWhite},
			Face{A: s[0], B: s[2], C: s[3], UVs: [3]math3d.Vec2{uv00, uv11, uv10}, Color: render.ColorWhite},
		)
	}

	m.CalculateBounds()
	return m
}
