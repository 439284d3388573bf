package main

import (
	"fmt"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/colormap"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/config"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/logging"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/scene"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/sink"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/types"
)

type request struct {
	params scene.Params
	record bool // push onto the history once drawn
}

// viewer drives one scene from window input. At most one render is in
// flight; newer requests replace any queued one.
type viewer struct {
	scene    *scene.Scene
	canvas   *canvas
	controls config.Controls
	history  scene.History

	current request // last drawn, or being drawn
	pending *scene.Completion
	queued  *request
	anim    []scene.View // remaining zoom-out frames

	status string
}

func newViewer(s *scene.Scene, c *canvas, controls config.Controls) (*viewer, error) {
	p, err := controls.Params()
	if err != nil {
		return nil, err
	}
	v := &viewer{scene: s, canvas: c, controls: controls}
	v.request(request{params: p, record: true})
	return v, nil
}

func (v *viewer) request(r request) {
	if v.pending != nil {
		v.queued = &r
		return
	}
	done, err := v.scene.Render(r.params)
	if err != nil {
		logging.Logger().Warn("render rejected", "error", err)
		return
	}
	v.current = r
	v.pending = done
}

// poll reports whether a render has finished since the last call.
func (v *viewer) poll() bool {
	if v.pending == nil {
		return false
	}
	select {
	case <-v.pending.Done():
	default:
		return false
	}
	done := v.pending
	v.pending = nil

	if err := done.Err(); err != nil {
		logging.Logger().Warn("render failed", "error", err)
	} else if err := v.show(done); err != nil {
		logging.Logger().Warn("frame not shown", "error", err)
	}

	switch {
	case v.queued != nil:
		r := *v.queued
		v.queued = nil
		v.request(r)
	case len(v.anim) > 0:
		p := v.current.params
		p.View = v.anim[0]
		v.anim = v.anim[1:]
		v.request(request{params: p})
	}
	return true
}

func (v *viewer) show(done *scene.Completion) error {
	buf, err := v.scene.Buffer()
	if err != nil {
		return err
	}
	if err := v.canvas.upload(buf); err != nil {
		return err
	}
	p := v.current.params
	v.status = fmt.Sprintf("scale %.4g center (%.10g, %.10g) %s, %v",
		p.Scale, -p.DX, -p.DY, p.Mode, done.Elapsed())

	if !v.current.record {
		return nil
	}
	img, err := v.scene.Image()
	if err != nil {
		return err
	}
	th, err := sink.Thumbnail(img, v.controls.ThumbnailFactor)
	if err != nil {
		return err
	}
	v.history.Push(scene.Entry{Params: p, Thumb: th})
	v.canvas.setThumbs(v.history.Recent(scene.DefaultHistorySize))
	if h, err := v.controls.WithView(p.View).Hash(); err == nil {
		logging.Logger().Info("view", "hash", "#"+h)
	}
	return nil
}

// params is the view the next change starts from.
func (v *viewer) params() scene.Params {
	if v.queued != nil {
		return v.queued.params
	}
	return v.current.params
}

func (v *viewer) zoomToBox(r types.Recti) {
	p := v.params()
	view, ok := p.ZoomToBox(r.Rect(), v.scene.Width(), v.scene.Height())
	if !ok {
		return
	}
	v.anim = nil
	p.View = view
	v.request(request{params: p, record: true})
}

// zoom scales the view by f around the image center.
func (v *viewer) zoom(f float64) {
	p := v.params()
	p.Scale *= f
	v.anim = nil
	v.request(request{params: p, record: true})
}

func (v *viewer) setMode(m colormap.Mode) {
	p := v.params()
	p.Mode = m
	v.request(request{params: p, record: true})
}

func (v *viewer) scaleIterations(f float64) {
	p := v.params()
	p.MaxIterations = max(int(float64(p.MaxIterations)*f), 1)
	v.request(request{params: p, record: true})
}

func (v *viewer) toggleTint() {
	p := v.params()
	p.DebugTint = !p.DebugTint
	v.request(request{params: p})
}

func (v *viewer) undo() {
	e, ok := v.history.Undo()
	if !ok {
		return
	}
	v.anim = nil
	v.canvas.setThumbs(v.history.Recent(scene.DefaultHistorySize))
	v.request(request{params: e.Params})
}

// animate plays a zoom out from the current view.
func (v *viewer) animate() {
	v.anim = scene.ZoomOutPath(v.params().View, v.controls.AnimationNumFrames)
	if v.pending == nil && len(v.anim) > 0 {
		p := v.current.params
		p.View = v.anim[0]
		v.anim = v.anim[1:]
		v.request(request{params: p})
	}
}
