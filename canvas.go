package main

import (
	"image"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/logging"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/scene"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/sdlsink"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/types"
)

const thumbMargin = 8

// canvas owns the textures shown in the window.
type canvas struct {
	renderer *sdl.Renderer
	frame    *sdl.Texture // streaming, same size as the scene
	w, h     int
	thumbs   []thumb

	selecting bool
	selStart  types.Pointi
	selEnd    types.Pointi
}

type thumb struct {
	texture *sdl.Texture
	w, h    int32
}

func newCanvas(r *sdl.Renderer, w, h int) (*canvas, error) {
	t, err := sdlsink.NewTexture(r, w, h)
	if err != nil {
		return nil, err
	}
	return &canvas{renderer: r, frame: t, w: w, h: h}, nil
}

func (c *canvas) close() {
	c.clearThumbs()
	c.frame.Destroy()
}

func (c *canvas) upload(buf []byte) error {
	return sdlsink.Upload(c.frame, buf, c.w, c.h)
}

func (c *canvas) clearThumbs() {
	for _, t := range c.thumbs {
		t.texture.Destroy()
	}
	c.thumbs = c.thumbs[:0]
}

// setThumbs replaces the thumbnail strip, newest first.
func (c *canvas) setThumbs(entries []scene.Entry) {
	c.clearThumbs()
	for _, e := range entries {
		img, ok := e.Thumb.(*image.RGBA)
		if !ok {
			continue
		}
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		s, err := sdlsink.Surface(img.Pix, w, h)
		if err != nil {
			logging.Logger().Warn("thumbnail dropped", "error", err)
			continue
		}
		t, err := c.renderer.CreateTextureFromSurface(s)
		s.Free()
		if err != nil {
			logging.Logger().Warn("thumbnail dropped", "error", err)
			continue
		}
		c.thumbs = append(c.thumbs, thumb{texture: t, w: int32(w), h: int32(h)})
	}
}

func (c *canvas) startSelection(p types.Pointi) {
	c.selecting = true
	c.selStart, c.selEnd = p, p
}

func (c *canvas) moveSelection(p types.Pointi) bool {
	if !c.selecting {
		return false
	}
	c.selEnd = p
	return true
}

func (c *canvas) endSelection(p types.Pointi) (types.Recti, bool) {
	if !c.selecting {
		return types.Recti{}, false
	}
	c.selecting = false
	c.selEnd = p
	return types.RectiFromCorners(c.selStart, c.selEnd), true
}

func (c *canvas) draw() {
	c.renderer.SetDrawColor(0, 0, 0, 255)
	c.renderer.Clear()
	c.renderer.Copy(c.frame, nil, nil)

	// thumbnails along the bottom, newest on the left
	x := int32(thumbMargin)
	for _, t := range c.thumbs {
		dst := sdl.Rect{X: x, Y: int32(c.h) - t.h - thumbMargin, W: t.w, H: t.h}
		c.renderer.Copy(t.texture, nil, &dst)
		c.renderer.SetDrawColor(255, 255, 255, 255)
		c.renderer.DrawRect(&dst)
		x += t.w + thumbMargin
	}

	if c.selecting {
		r := types.RectiFromCorners(c.selStart, c.selEnd)
		c.renderer.SetDrawColor(255, 150, 77, 255)
		c.renderer.DrawRect(&sdl.Rect{X: int32(r.X), Y: int32(r.Y), W: int32(r.W), H: int32(r.H)})
	}
	c.renderer.Present()
}
