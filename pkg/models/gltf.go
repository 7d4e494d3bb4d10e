package models

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/scanline/pkg/logging"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// LoadGLB loads a binary glTF (.glb) file, or a .gltf with its buffers next
// to it. All triangle primitives are merged into one mesh, faces take the
// base color of their material, and the first base color texture becomes
// the mesh texture.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	name := filepath.Base(path)
	mesh := NewMesh(name)

	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoFaces)
	}

	tex, err := baseColorTexture(doc, filepath.Dir(path))
	if err != nil {
		logging.Logger().Warn("ignoring embedded texture", "model", name, "err", err)
	}
	mesh.Texture = tex

	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh appends the triangles of every primitive in m to mesh.
//
// glTF is right-handed with +Z toward the viewer. Z is mirrored into the
// renderer's left-handed space, which also flips the winding, so B and C
// are swapped to keep (B-A) x (C-A) pointing outward.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		base := len(mesh.Vertices)
		for _, p := range positions {
			mesh.Vertices = append(mesh.Vertices, math3d.V3(float64(p[0]), float64(p[1]), -float64(p[2])))
		}

		// glTF puts UV (0,0) at the top-left of the image, as the texture
		// sampler does, so V is not flipped.
		uvAt := func(i uint32) math3d.Vec2 {
			if int(i) >= len(uvs) {
				return math3d.Vec2{}
			}
			return math3d.V2(float64(uvs[i][0]), float64(uvs[i][1]))
		}

		color := materialColor(doc, prim.Material)
		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+2], indices[i+1] // swapped
			face := Face{
				A:     base + int(a),
				B:     base + int(b),
				C:     base + int(c),
				UVs:   [3]math3d.Vec2{uvAt(a), uvAt(b), uvAt(c)},
				Color: color,
			}
			if !mesh.validFace(face) {
				logging.Logger().Warn("skipping face with out-of-range index", "mesh", m.Name, "index", i/3)
				continue
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}

	return nil
}

// materialColor returns the base color factor of a material, or white.
func materialColor(doc *gltf.Document, idx *int) render.Color {
	if idx == nil || *idx >= len(doc.Materials) {
		return render.ColorWhite
	}
	pbr := doc.Materials[*idx].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return render.ColorWhite
	}
	f := pbr.BaseColorFactor
	return render.RGBA(unit8(f[0]), unit8(f[1]), unit8(f[2]), unit8(f[3]))
}

func unit8(v float64) uint8 {
	return uint8(min(max(v, 0), 1) * 255)
}

// baseColorTexture decodes the image used by the first material with a
// base color texture, falling back to the first image in the document.
// It returns nil, nil when the document has no images.
func baseColorTexture(doc *gltf.Document, dir string) (*render.Texture, error) {
	if len(doc.Images) == 0 {
		return nil, nil
	}

	imgIdx := 0
	for _, mat := range doc.Materials {
		pbr := mat.PBRMetallicRoughness
		if pbr == nil || pbr.BaseColorTexture == nil || pbr.BaseColorTexture.Index >= len(doc.Textures) {
			continue
		}
		if src := doc.Textures[pbr.BaseColorTexture.Index].Source; src != nil && *src < len(doc.Images) {
			imgIdx = *src
			break
		}
	}

	img := doc.Images[imgIdx]
	switch {
	case img.BufferView != nil:
		bv := doc.BufferViews[*img.BufferView]
		data := doc.Buffers[bv.Buffer].Data
		if bv.ByteOffset+bv.ByteLength > len(data) {
			return nil, fmt.Errorf("image %d: buffer view out of range", imgIdx)
		}
		return decodeTexture(data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength])
	case strings.HasPrefix(img.URI, "data:"):
		data, err := img.MarshalData()
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", imgIdx, err)
		}
		return decodeTexture(data)
	case img.URI != "":
		return render.LoadTexture(filepath.Join(dir, img.URI))
	}
	return nil, fmt.Errorf("image %d has no data", imgIdx)
}

func decodeTexture(data []byte) (*render.Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return render.TextureFromImage(img), nil
}
