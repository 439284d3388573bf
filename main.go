// Command parallel-mandelbrot is an interactive Mandelbrot viewer.
//
// Drag a box to zoom into it. Keys: 0-3 color mode, t worker tint,
// u or backspace undo, + and - zoom, [ and ] halve or double the
// iterations, z zoom-out animation, esc quit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/colormap"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/config"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/logging"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/scene"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/types"
)

// pollInterval bounds how long a finished render waits to be shown, in ms.
const pollInterval = 16

func sdlInit(windowTitle string, w, h int) (*sdl.Window, *sdl.Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_TIMER); err != nil {
		return nil, nil, err
	}
	sdl.StopTextInput()

	window, err := sdl.CreateWindow(
		windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(w), int32(h), sdl.WINDOW_OPENGL,
	)
	if err != nil {
		return nil, nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, nil, err
	}

	return window, renderer, nil
}

func sdlClose(window *sdl.Window, renderer *sdl.Renderer) {
	renderer.Destroy()
	window.Destroy()
	sdl.Quit()
}

func loadControls() (config.Controls, error) {
	cfgPath := flag.String("config", "", "JSON controls file")
	hash := flag.String("hash", "", "controls as a URL fragment, controls=<escaped JSON>")
	flag.Parse()

	switch {
	case *hash != "":
		return config.ParseHash(*hash)
	case *cfgPath != "":
		return config.Load(*cfgPath)
	}
	return config.Default(), nil
}

func main() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := view(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func view() error {
	controls, err := loadControls()
	if err != nil {
		return err
	}

	// start SDL
	window, renderer, err := sdlInit("Mandelbrot", controls.Width, controls.Height)
	if err != nil {
		return err
	}
	defer sdlClose(window, renderer)

	c, err := newCanvas(renderer, controls.Width, controls.Height)
	if err != nil {
		return err
	}
	defer c.close()

	s, err := scene.NewWithWorkers(controls.Width, controls.Height, controls.NumThreads)
	if err != nil {
		return err
	}
	defer s.Close()

	v, err := newViewer(s, c, controls)
	if err != nil {
		return err
	}

	// start loop
	for run := true; run; {
		// must be on the same thread that did INIT_VIDEO
		// nil on timeout
		redraw := false
		if e := sdl.WaitEventTimeout(pollInterval); e != nil {
			redraw, run = handle(e, v)
		}
		if v.poll() {
			window.SetTitle("Mandelbrot: " + v.status)
			redraw = true
		}
		if redraw {
			c.draw()
		}
	}
	return nil
}

// handle applies one event. It reports whether the window needs redrawing
// and whether the loop should keep running.
func handle(e sdl.Event, v *viewer) (redraw, run bool) {
	switch t := e.(type) {
	case *sdl.QuitEvent:
		return false, false
	case *sdl.WindowEvent:
		return t.Event == sdl.WINDOWEVENT_EXPOSED, true
	case *sdl.MouseButtonEvent:
		if t.Button != sdl.BUTTON_LEFT {
			return false, true
		}
		p := types.Pointi{X: int(t.X), Y: int(t.Y)}
		if t.Type == sdl.MOUSEBUTTONDOWN {
			v.canvas.startSelection(p)
			return true, true
		}
		if r, ok := v.canvas.endSelection(p); ok {
			v.zoomToBox(r)
		}
		return true, true
	case *sdl.MouseMotionEvent:
		return v.canvas.moveSelection(types.Pointi{X: int(t.X), Y: int(t.Y)}), true
	case *sdl.KeyboardEvent:
		if t.Type != sdl.KEYDOWN {
			return false, true
		}
		switch t.Keysym.Sym {
		case sdl.K_ESCAPE:
			return false, false
		case sdl.K_0, sdl.K_1, sdl.K_2, sdl.K_3:
			m, err := colormap.ParseMode(int(t.Keysym.Sym - sdl.K_0))
			if err == nil {
				v.setMode(m)
			}
		case sdl.K_t:
			v.toggleTint()
		case sdl.K_u, sdl.K_BACKSPACE:
			v.undo()
			return true, true
		case sdl.K_EQUALS, sdl.K_PLUS, sdl.K_KP_PLUS:
			v.zoom(2)
		case sdl.K_MINUS, sdl.K_KP_MINUS:
			v.zoom(0.5)
		case sdl.K_LEFTBRACKET:
			v.scaleIterations(0.5)
		case sdl.K_RIGHTBRACKET:
			v.scaleIterations(2)
		case sdl.K_z:
			v.animate()
		}
	}
	return false, true
}
