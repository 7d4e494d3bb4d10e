package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/scanline/pkg/logging"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// ErrNoFaces is returned when a model file contains no usable faces.
var ErrNoFaces = errors.New("model has no faces")

// LoadOBJ loads a Wavefront .obj file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f, filepath.Base(path))
}

// objVertex is one corner of an "f" statement, with 0-based indices.
// uv is -1 when the corner has no texture coordinate.
type objVertex struct {
	v, uv int
}

// ParseOBJ reads vertex positions ("v"), texture coordinates ("vt") and
// faces ("f") from r. Texture v is flipped to 1-v. Polygons are fanned
// into triangles. Malformed lines and faces with out-of-range indices are
// logged and skipped; other statements are ignored.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	log := logging.Logger().With("model", name)

	mesh := NewMesh(name)
	var texcoords []math3d.Vec2

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				log.Warn("skipping vertex", "line", lineNo, "err", err)
				continue
			}
			mesh.Vertices = append(mesh.Vertices, math3d.V3(v[0], v[1], v[2]))

		case "vt":
			t, err := parseFloats(fields[1:], 2)
			if err != nil {
				log.Warn("skipping texture coordinate", "line", lineNo, "err", err)
				continue
			}
			texcoords = append(texcoords, math3d.V2(t[0], 1-t[1]))

		case "f":
			corners, err := parseFace(fields[1:], len(mesh.Vertices), len(texcoords))
			if err != nil {
				log.Warn("skipping face", "line", lineNo, "err", err)
				continue
			}
			for i := 1; i+1 < len(corners); i++ {
				mesh.Faces = append(mesh.Faces, makeFace(corners[0], corners[i], corners[i+1], texcoords))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoFaces)
	}

	mesh.CalculateBounds()
	log.Debug("loaded obj", "vertices", mesh.VertexCount(), "faces", mesh.TriangleCount())
	return mesh, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// parseFace parses the corners of an "f" statement. Each corner is
// v, v/vt, v//vn or v/vt/vn; normals are ignored.
func parseFace(fields []string, numVertices, numTexcoords int) ([]objVertex, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("face needs 3 corners, got %d", len(fields))
	}

	corners := make([]objVertex, len(fields))
	for i, field := range fields {
		parts := strings.Split(field, "/")

		v, err := resolveIndex(parts[0], numVertices)
		if err != nil {
			return nil, fmt.Errorf("vertex %q: %w", field, err)
		}

		uv := -1
		if len(parts) > 1 && parts[1] != "" {
			uv, err = resolveIndex(parts[1], numTexcoords)
			if err != nil {
				return nil, fmt.Errorf("texture coordinate %q: %w", field, err)
			}
		}

		corners[i] = objVertex{v: v, uv: uv}
	}
	return corners, nil
}

// resolveIndex converts a 1-based (or negative, end-relative) index to a
// 0-based one and checks it against n.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, errors.New("index 0")
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index out of range [0, %d)", n)
	}
	return i, nil
}

func makeFace(a, b, c objVertex, texcoords []math3d.Vec2) Face {
	uv := func(o objVertex) math3d.Vec2 {
		if o.uv < 0 {
			return math3d.Vec2{}
		}
		return texcoords[o.uv]
	}
	return Face{
		A:     a.v,
		B:     b.v,
		C:     c.v,
		UVs:   [3]math3d.Vec2{uv(a), uv(b), uv(c)},
		Color: render.ColorWhite,
	}
}
