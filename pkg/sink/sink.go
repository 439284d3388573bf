// Package sink turns a rendered RGBA frame buffer into images and files.
package sink

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/logging"
)

var ErrConversion = errors.New("sink: conversion failed")

// RGBA wraps buf as a width x height image without copying.
// buf must hold exactly width*height*4 bytes.
func RGBA(buf []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %dx%d", ErrConversion, width, height)
	}
	if len(buf) != width*height*4 {
		return nil, fmt.Errorf("%w: buffer holds %d bytes, %dx%d needs %d",
			ErrConversion, len(buf), width, height, width*height*4)
	}
	return &image.RGBA{
		Pix:    buf,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// Clone copies img into a fresh RGBA image.
func Clone(img image.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// Thumbnail scales img down by factor on both axes. Each side is at least
// one pixel.
func Thumbnail(img image.Image, factor int) (*image.RGBA, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: thumbnail factor must be at least 1, got %d", ErrConversion, factor)
	}
	b := img.Bounds()
	w := max(b.Dx()/factor, 1)
	h := max(b.Dy()/factor, 1)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out, nil
}

// Format is an output file format.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	GIF  Format = "gif"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case PNG, BMP, TIFF, GIF:
		return f, nil
	case "tif":
		return TIFF, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", ErrConversion, s)
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Encode writes img to w. GIF writes a single quantized frame.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case GIF:
		err = EncodeAnimation(w, []image.Image{img}, 0)
	default:
		return fmt.Errorf("%w: unknown format %q", ErrConversion, string(f))
	}
	if err != nil {
		return fmt.Errorf("sink: encode %s: %w", f, err)
	}
	return nil
}

// WriteFile encodes img to path, choosing the format from the extension.
func WriteFile(path string, img image.Image) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	logging.Logger().Debug("image written", "path", path, "format", string(f))
	return nil
}

// EncodeAnimation writes frames as a looping GIF. delay is in 100ths of a
// second per frame.
func EncodeAnimation(w io.Writer, frames []image.Image, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("%w: no frames", ErrConversion)
	}
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}
	for _, fr := range frames {
		b := fr.Bounds()
		pimg := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), fr, b.Min)
		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}
	return gif.EncodeAll(w, out)
}
