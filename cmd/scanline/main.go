// scanline - CPU 3D Software Rasterizer
// Renders OBJ and GLB meshes without a GPU, in the terminal or in a window.
//
// Controls:
//
//	1-6         - Wire, wire+verts, fill, fill+wire, texture, texture+wire
//	P           - PS1 mode (affine texture, painter's algorithm)
//	B           - Toggle back-face culling
//	R           - Toggle auto-spin
//	Arrows      - Look around (yaw/pitch)
//	W/S         - Move forward/back
//	A/D         - Strafe left/right
//	Space/C     - Move up/down
//	Esc         - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/taigrr/scanline/pkg/logging"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/scene"
)

var (
	texturePath = flag.String("texture", "", "Path to texture image (PNG/JPG/BMP/TIFF/WebP)")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	bgColor     = flag.String("bg", "0,0,0", "Background color (R,G,B)")
	backend     = flag.String("backend", "terminal", "Output: terminal or window")
	fbWidth     = flag.Int("width", 640, "Framebuffer width for the window backend and snapshots")
	fbHeight    = flag.Int("height", 360, "Framebuffer height for the window backend and snapshots")
	renderMode  = flag.String("mode", "wire", "Render mode: wire, wire-verts, fill, fill-wire, texture, texture-wire, ps1")
	cullMode    = flag.String("cull", "backface", "Culling: backface or none")
	spin        = flag.Bool("spin", false, "Start with auto-spin enabled")
	texSize     = flag.Int("texsize", 0, "Resample the texture to NxN (0 keeps its size)")
	verbose     = flag.Bool("v", false, "Verbose logging")
	logPath     = flag.String("log", "", "Write logs to this file instead of stderr")
	snapshot    = flag.String("snapshot", "", "Render one frame to this PNG file and exit")
)

// errUnknownBackend is returned for a -backend value other than terminal or window.
var errUnknownBackend = errors.New("unknown backend")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scanline - CPU 3D Software Rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scanline [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model the built-in cube is shown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  1-6         - Wire, wire+verts, fill, fill+wire, texture, texture+wire\n")
		fmt.Fprintf(os.Stderr, "  P           - PS1 mode\n")
		fmt.Fprintf(os.Stderr, "  B           - Toggle back-face culling\n")
		fmt.Fprintf(os.Stderr, "  R           - Toggle auto-spin\n")
		fmt.Fprintf(os.Stderr, "  Arrows      - Look around\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Move\n")
		fmt.Fprintf(os.Stderr, "  Space/C     - Up/down\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options is the parsed command line.
type options struct {
	texturePath string
	fps         int
	background  render.Color
	backend     string
	width       int
	height      int
	mode        scene.RenderMode
	cull        scene.CullMode
	spin        bool
	texSize     int
	snapshot    string
}

func parseOptions() (options, error) {
	opts := options{
		texturePath: *texturePath,
		fps:         *targetFPS,
		backend:     *backend,
		width:       *fbWidth,
		height:      *fbHeight,
		spin:        *spin,
		texSize:     *texSize,
		snapshot:    *snapshot,
	}

	var err error
	if opts.background, err = parseColor(*bgColor); err != nil {
		return opts, err
	}
	if opts.mode, err = scene.ParseRenderMode(*renderMode); err != nil {
		return opts, err
	}
	if opts.cull, err = scene.ParseCullMode(*cullMode); err != nil {
		return opts, err
	}
	if opts.fps <= 0 {
		return opts, fmt.Errorf("fps must be positive, got %d", opts.fps)
	}
	if opts.backend != "terminal" && opts.backend != "window" {
		return opts, fmt.Errorf("%w: %q", errUnknownBackend, opts.backend)
	}
	return opts, nil
}

// parseColor parses an "R,G,B" triple.
func parseColor(s string) (render.Color, error) {
	var r, g, b int
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return render.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	for _, c := range [3]int{r, g, b} {
		if c < 0 || c > 255 {
			return render.Color{}, fmt.Errorf("parse color %q: component %d out of range", s, c)
		}
	}
	return render.RGB(uint8(r), uint8(g), uint8(b)), nil
}

func setupLogging() (io.Closer, error) {
	if !*verbose {
		return nil, nil
	}
	var (
		w      io.Writer = os.Stderr
		closer io.Closer
	)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		w, closer = f, f
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return closer, nil
}

// loadMesh loads the model at path, or the built-in cube when path is empty,
// and applies the texture options. An explicit -texture wins over an
// embedded one.
func loadMesh(path string, opts options) (*models.Mesh, error) {
	var mesh *models.Mesh
	if path == "" {
		mesh = models.NewCube()
	} else {
		var err error
		mesh, err = models.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		// Assets come in arbitrary units; fit them to the cube's size.
		mesh.Normalize(2)
	}

	if opts.texturePath != "" {
		tex, err := render.LoadTexture(opts.texturePath)
		if err != nil {
			fmt.Printf("Warning: could not load texture: %v\n", err)
		} else {
			mesh.Texture = tex
		}
	}

	if mesh.Texture != nil && opts.texSize > 0 {
		mesh.Texture = render.ResizeTexture(mesh.Texture, opts.texSize, opts.texSize)
	}
	return mesh, nil
}

// newScene builds the scene for mesh with the renderer configured from opts.
func newScene(mesh *models.Mesh, opts options) *scene.Scene {
	cfg := scene.DefaultConfig()
	cfg.FPS = opts.fps

	s := scene.New(cfg)
	s.Renderer.Mode = opts.mode
	s.Renderer.Cull = opts.cull
	s.Renderer.Background = opts.background
	s.Spinner.SetSpinning(opts.spin)
	s.AddMesh(mesh)
	return s
}

// renderSnapshot draws a single frame of s to a PNG file.
func renderSnapshot(s *scene.Scene, width, height int, path string) error {
	fb, err := render.NewFramebuffer(width, height)
	if err != nil {
		return err
	}
	s.Update(width, height)
	s.Render(fb)

	stats := s.Stats()
	logging.Logger().Info("snapshot", "path", path, "triangles", stats.Triangles, "culled", stats.Culled)
	return fb.SavePNG(path)
}

func run(modelPath string) error {
	opts, err := parseOptions()
	if err != nil {
		return err
	}

	closer, err := setupLogging()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	mesh, err := loadMesh(modelPath, opts)
	if err != nil {
		return err
	}

	name := "cube"
	if modelPath != "" {
		name = filepath.Base(modelPath)
	}
	logging.Logger().Info("loaded mesh", "name", name, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount(), "textured", mesh.Texture != nil)

	s := newScene(mesh, opts)

	if opts.snapshot != "" {
		return renderSnapshot(s, opts.width, opts.height, opts.snapshot)
	}

	switch opts.backend {
	case "window":
		return runWindow(s, opts)
	default:
		return runTerminal(s, opts)
	}
}
