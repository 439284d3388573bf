package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/config"
)

type options struct {
	thumbnail string // thumbnail output path, empty for none
	animate   bool   // zoom-out GIF instead of a single frame
	timeout   time.Duration
}

// parseFlags builds the controls from defaults, then -config, then -hash,
// then any flag given explicitly on the command line.
func parseFlags(name string, args []string, stderr io.Writer) (config.Controls, options, error) {
	d := config.Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		cfgPath    = fs.String("config", "", "JSON controls file")
		hash       = fs.String("hash", "", "controls as a URL fragment, controls=<escaped JSON>")
		width      = fs.Int("width", d.Width, "image width")
		height     = fs.Int("height", d.Height, "image height")
		scale      = fs.Float64("scale", d.Scale, "pixels per unit")
		dx         = fs.Float64("dx", d.DX, "horizontal offset, the image center is at -dx")
		dy         = fs.Float64("dy", d.DY, "vertical offset, the image center is at -dy")
		iterations = fs.Int("iterations", d.Iterations, "maximum iterations per pixel")
		threads    = fs.Int("threads", d.NumThreads, "worker threads")
		mode       = fs.Int("mode", d.ColorMode, "color mode: 0 gray, 1 inverse gray, 2 smooth palette, 3 banded palette")
		tint       = fs.Bool("tint", d.ColorThreads, "tint pixels by the worker that drew them")
		out        = fs.String("out", d.Out, "output file")
		format     = fs.String("format", d.Format, "png, bmp, tiff or gif; default from the -out extension")
		frames     = fs.Int("frames", d.AnimationNumFrames, "zoom-out animation speed, larger is slower")
		delay      = fs.Int("delay", d.GIFDelay, "GIF frame delay in 100ths of a second")
		factor     = fs.Int("thumbnail-factor", d.ThumbnailFactor, "thumbnail downscale factor")

		opts options
	)
	fs.StringVar(&opts.thumbnail, "thumbnail", "", "also write a thumbnail to this file")
	fs.BoolVar(&opts.animate, "animate", false, "write a zoom-out animation as GIF")
	fs.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "give up waiting for a render after this long")

	if err := fs.Parse(args); err != nil {
		return config.Controls{}, options{}, err
	}
	if fs.NArg() > 0 {
		return config.Controls{}, options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	c := d
	var err error
	if *cfgPath != "" {
		if c, err = config.Load(*cfgPath); err != nil {
			return config.Controls{}, options{}, err
		}
	}
	if *hash != "" {
		if c, err = config.ParseHash(*hash); err != nil {
			return config.Controls{}, options{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			c.Width = *width
		case "height":
			c.Height = *height
		case "scale":
			c.Scale = *scale
		case "dx":
			c.DX = *dx
		case "dy":
			c.DY = *dy
		case "iterations":
			c.Iterations = *iterations
		case "threads":
			c.NumThreads = *threads
		case "mode":
			c.ColorMode = *mode
		case "tint":
			c.ColorThreads = *tint
		case "out":
			c.Out = *out
		case "format":
			c.Format = *format
		case "frames":
			c.AnimationNumFrames = *frames
		case "delay":
			c.GIFDelay = *delay
		case "thumbnail-factor":
			c.ThumbnailFactor = *factor
		}
	})
	if err := c.Validate(); err != nil {
		return config.Controls{}, options{}, err
	}
	return c, opts, nil
}
