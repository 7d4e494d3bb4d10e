package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/scanline/pkg/logging"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/scene"
)

// windowScale is the number of screen pixels per framebuffer pixel.
const windowScale = 2

// Keys that act once per press.
var windowPressKeys = map[ebiten.Key]string{
	ebiten.Key1:      "1",
	ebiten.Key2:      "2",
	ebiten.Key3:      "3",
	ebiten.Key4:      "4",
	ebiten.Key5:      "5",
	ebiten.Key6:      "6",
	ebiten.KeyP:      "p",
	ebiten.KeyB:      "b",
	ebiten.KeyR:      "r",
	ebiten.KeyEscape: "escape",
}

// Keys that act every frame while held.
var windowHoldKeys = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    "up",
	ebiten.KeyArrowDown:  "down",
	ebiten.KeyArrowLeft:  "left",
	ebiten.KeyArrowRight: "right",
	ebiten.KeyW:          "w",
	ebiten.KeyA:          "a",
	ebiten.KeyS:          "s",
	ebiten.KeyD:          "d",
	ebiten.KeySpace:      "space",
	ebiten.KeyC:          "c",
}

// windowGame presents the scene in a desktop window.
type windowGame struct {
	scene *scene.Scene
	fb    *render.Framebuffer
	dt    float64

	img     *ebiten.Image
	scratch []byte
}

func newWindowGame(s *scene.Scene, width, height, fps int) (*windowGame, error) {
	fb, err := render.NewFramebuffer(width, height)
	if err != nil {
		return nil, err
	}
	return &windowGame{
		scene: s,
		fb:    fb,
		dt:    1 / float64(fps),
		img:   ebiten.NewImage(width, height),
	}, nil
}

func (g *windowGame) Update() error {
	for key, name := range windowPressKeys {
		if inpututil.IsKeyJustPressed(key) && g.scene.HandleKey(name, g.dt) {
			return ebiten.Termination
		}
	}
	for key, name := range windowHoldKeys {
		if ebiten.IsKeyPressed(key) {
			g.scene.HandleKey(name, g.dt)
		}
	}

	g.scene.Animate(g.dt)
	g.scene.Update(g.fb.Width, g.fb.Height)
	logging.Logger().Debug("frame", "stats", g.scene.Stats())
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	g.scene.Render(g.fb)
	g.scratch = g.fb.RGBABytes(g.scratch)
	g.img.WritePixels(g.scratch)
	screen.DrawImage(g.img, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}

// runWindow shows s in a window until Esc or the window is closed.
func runWindow(s *scene.Scene, opts options) error {
	g, err := newWindowGame(s, opts.width, opts.height, opts.fps)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle("scanline")
	ebiten.SetWindowSize(opts.width*windowScale, opts.height*windowScale)
	ebiten.SetTPS(opts.fps)

	logging.Logger().Info("window started", "width", opts.width, "height", opts.height, "mode", s.Renderer.Mode)

	// RunGame returns nil when Update returns ebiten.Termination.
	return ebiten.RunGame(g)
}
