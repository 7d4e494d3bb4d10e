package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/scanline/pkg/logging"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/scene"
)

// terminalKeys are the key names forwarded from the terminal to
// scene.HandleKey.
var terminalKeys = []string{
	"1", "2", "3", "4", "5", "6", "p", "b", "r",
	"up", "down", "left", "right",
	"w", "a", "s", "d", "space", "c",
	"escape", "ctrl+c",
}

// matchKey returns the first of terminalKeys that ev matches.
func matchKey(ev uv.KeyPressEvent) (string, bool) {
	for _, k := range terminalKeys {
		if ev.MatchString(k) {
			return k, true
		}
	}
	return "", false
}

// terminalView pairs a terminal size with its framebuffer.
type terminalView struct {
	presenter *render.TerminalRenderer
	fb        *render.Framebuffer
}

func newTerminalView(term *uv.Terminal, width, height int) (terminalView, error) {
	presenter := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := presenter.FramebufferSize()
	fb, err := render.NewFramebuffer(fbWidth, fbHeight)
	if err != nil {
		return terminalView{}, err
	}
	return terminalView{presenter: presenter, fb: fb}, nil
}

// runTerminal shows s on the terminal with half-block cells until Esc or
// a signal.
func runTerminal(s *scene.Scene, opts options) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	view, err := newTerminalView(term, width, height)
	if err != nil {
		return err
	}

	// Context for clean shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Events are read on their own goroutine and handed to the frame loop,
	// which owns the scene.
	keys := make(chan string, 64)
	sizes := make(chan [2]int, 1)
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case <-sizes:
				default:
				}
				sizes <- [2]int{ev.Width, ev.Height}
			case uv.KeyPressEvent:
				if k, ok := matchKey(ev); ok {
					select {
					case keys <- k:
					default:
					}
				}
			}
		}
	}()

	logging.Logger().Info("terminal started", "cols", width, "rows", height, "mode", s.Renderer.Mode)

	clock := scene.NewClock(opts.fps)
	dt := 0.0
	for {
		select {
		case <-ctx.Done():
			return nil
		case size := <-sizes:
			width, height = size[0], size[1]
			term.Erase()
			term.Resize(width, height)
			if view, err = newTerminalView(term, width, height); err != nil {
				return err
			}
		default:
		}

	drain:
		for {
			select {
			case k := <-keys:
				if s.HandleKey(k, dt) {
					return nil
				}
			default:
				break drain
			}
		}

		s.Animate(dt)
		s.Update(view.fb.Width, view.fb.Height)
		s.Render(view.fb)
		logging.Logger().Debug("frame", "stats", s.Stats())

		view.presenter.Render(view.fb)
		if err := view.presenter.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		dt = clock.Tick()
	}
}
