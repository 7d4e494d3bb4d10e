package scene

import (
	"log/slog"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Stats counts what the pipeline did during the last Update.
type Stats struct {
	Faces          int // Faces considered
	Culled         int // Faces dropped by back-face culling
	Clipped        int // Faces clipped away entirely
	Overflowed     int // Faces dropped because clipping overflowed
	Triangles      int // Screen triangles emitted
	MeshesRejected int // Meshes whose bounds were outside the frustum
}

// LogValue groups the counters in log output.
func (st Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("faces", st.Faces),
		slog.Int("culled", st.Culled),
		slog.Int("clipped", st.Clipped),
		slog.Int("overflowed", st.Overflowed),
		slog.Int("triangles", st.Triangles),
		slog.Int("rejected", st.MeshesRejected),
	)
}

// Scene is everything needed to produce a frame.
type Scene struct {
	Meshes   []*models.Mesh
	Light    Light
	Camera   *Camera
	Renderer *Renderer
	Spinner  *Spinner

	config     Config
	projection math3d.Mat4
	frustum    render.Frustum
	width      int
	height     int

	stats   Stats
	clipBuf []render.ClipTriangle
}

// New creates an empty scene from cfg.
func New(cfg Config) *Scene {
	return &Scene{
		Light:    Light{Direction: cfg.Light},
		Camera:   NewCamera(cfg.CameraPosition, cfg.CameraUp, cfg.CameraForward),
		Renderer: NewRenderer(),
		Spinner:  NewSpinner(cfg.FPS, cfg.SpinSpeed),
		config:   cfg,
		clipBuf:  make([]render.ClipTriangle, 0, render.MaxPolygonTriangles),
	}
}

// Config returns the configuration the scene was created with.
func (s *Scene) Config() Config {
	return s.config
}

// AddMesh adds m to the scene at the configured mesh translation. The
// bounds used for frustum rejection are recomputed from the vertices.
func (s *Scene) AddMesh(m *models.Mesh) {
	m.CalculateBounds()
	m.Translation = s.config.MeshTranslation
	s.Meshes = append(s.Meshes, m)
}

// Stats returns the counters from the last Update.
func (s *Scene) Stats() Stats {
	return s.stats
}

// Frustum returns the view-space frustum for the current viewport.
func (s *Scene) Frustum() render.Frustum {
	return s.frustum
}

// resize rebuilds the projection and frustum for a width x height viewport.
func (s *Scene) resize(width, height int) {
	s.width, s.height = width, height

	aspect := float64(width) / float64(height)
	invAspect := float64(height) / float64(width)
	fovX := render.HorizontalFOV(s.config.FOVY, aspect)

	s.projection = math3d.Perspective(s.config.FOVY, invAspect, s.config.ZNear, s.config.ZFar)
	s.frustum = render.NewFrustum(fovX, s.config.FOVY, s.config.ZNear, s.config.ZFar)
}

// Animate advances the spinner and applies it to every mesh. dt is the
// frame time in seconds.
func (s *Scene) Animate(dt float64) {
	if s.Spinner == nil {
		return
	}
	v := s.Spinner.Update()
	if v == 0 {
		return
	}
	for _, m := range s.Meshes {
		m.Rotation.Y += v * dt
		m.Rotation.X += 0.5 * v * dt
	}
}

// Render draws the triangles produced by the last Update into fb.
func (s *Scene) Render(fb *render.Framebuffer) {
	s.Renderer.Draw(fb, s.Meshes)
}
