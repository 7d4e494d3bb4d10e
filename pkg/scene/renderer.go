package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// ErrUnknownMode is returned when parsing an unrecognized mode name.
var ErrUnknownMode = errors.New("unknown mode")

// RenderMode controls how triangles are drawn.
type RenderMode int

const (
	RenderWire        RenderMode = iota // Edges only
	RenderWireVerts                     // Edges and vertex markers
	RenderFill                          // Flat-shaded fill
	RenderFillWire                      // Fill with edges on top
	RenderTexture                       // Perspective-correct texture with w-buffer
	RenderTextureWire                   // Texture with edges on top
	RenderPS1                           // Affine texture, painter's algorithm
)

var renderModeNames = [...]string{
	RenderWire:        "wire",
	RenderWireVerts:   "wire-verts",
	RenderFill:        "fill",
	RenderFillWire:    "fill-wire",
	RenderTexture:     "texture",
	RenderTextureWire: "texture-wire",
	RenderPS1:         "ps1",
}

func (m RenderMode) String() string {
	if m < 0 || int(m) >= len(renderModeNames) {
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
	return renderModeNames[m]
}

// ParseRenderMode parses a mode name as printed by String.
func ParseRenderMode(s string) (RenderMode, error) {
	for i, name := range renderModeNames {
		if strings.EqualFold(s, name) {
			return RenderMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: render mode %q", ErrUnknownMode, s)
}

// Wire reports whether edges are drawn.
func (m RenderMode) Wire() bool {
	return m == RenderWire || m == RenderWireVerts || m == RenderFillWire || m == RenderTextureWire
}

// Verts reports whether vertex markers are drawn.
func (m RenderMode) Verts() bool { return m == RenderWireVerts }

// Fill reports whether solid fills are drawn.
func (m RenderMode) Fill() bool { return m == RenderFill || m == RenderFillWire }

// Texture reports whether perspective-correct texturing is used.
func (m RenderMode) Texture() bool { return m == RenderTexture || m == RenderTextureWire }

// PS1 reports whether affine texturing with depth sorting is used.
func (m RenderMode) PS1() bool { return m == RenderPS1 }

// CullMode controls back-face culling.
type CullMode int

const (
	CullNone CullMode = iota
	CullBackface
)

func (c CullMode) String() string {
	switch c {
	case CullNone:
		return "none"
	case CullBackface:
		return "backface"
	}
	return fmt.Sprintf("CullMode(%d)", int(c))
}

// ParseCullMode parses "none" or "backface".
func ParseCullMode(s string) (CullMode, error) {
	switch strings.ToLower(s) {
	case "none":
		return CullNone, nil
	case "backface":
		return CullBackface, nil
	}
	return 0, fmt.Errorf("%w: cull mode %q", ErrUnknownMode, s)
}

// Renderer holds the display settings and draws the pipeline output.
type Renderer struct {
	Mode RenderMode
	Cull CullMode

	Background  render.Color
	GridColor   render.Color
	GridSpacing int // 0 disables the grid
	WireColor   render.Color

	rast *render.Rasterizer
}

// NewRenderer creates a renderer in wireframe mode with back-face culling.
func NewRenderer() *Renderer {
	return &Renderer{
		Mode:        RenderWire,
		Cull:        CullBackface,
		Background:  render.ColorBlack,
		GridColor:   render.ColorGrey,
		GridSpacing: 10,
		WireColor:   render.ColorGreen,
		rast:        render.NewRasterizer(nil),
	}
}

// ToggleCull switches between CullBackface and CullNone.
func (r *Renderer) ToggleCull() {
	if r.Cull == CullBackface {
		r.Cull = CullNone
	} else {
		r.Cull = CullBackface
	}
}

// Draw clears fb and draws every mesh's triangle list according to Mode.
func (r *Renderer) Draw(fb *render.Framebuffer, meshes []*models.Mesh) {
	fb.Clear(r.Background)
	fb.ClearDepth()
	fb.DrawGrid(r.GridSpacing, r.GridColor)

	r.rast.SetFramebuffer(fb)
	mode := r.Mode

	for _, mesh := range meshes {
		for _, tri := range mesh.Triangles {
			if mode.Texture() {
				r.rast.FillTexturedTriangle(tri, mesh.Texture)
			}
			if mode.Fill() {
				r.rast.FillTriangle(tri)
			}
			if mode.Wire() {
				r.rast.DrawWireframe(tri, r.WireColor)
			}
			if mode.Verts() {
				r.rast.DrawVertexMarkers(tri, r.WireColor)
			}
			if mode.PS1() {
				r.rast.FillAffineTriangle(tri, mesh.Texture)
			}
		}
	}
}
