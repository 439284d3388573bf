package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/config"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/logging"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/scene"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/sink"
)

func run(ctx context.Context, c config.Controls, opts options, stdout io.Writer) error {
	p, err := c.Params()
	if err != nil {
		return err
	}
	format, err := c.OutputFormat()
	if err != nil {
		return err
	}
	if opts.animate && format != sink.GIF {
		return fmt.Errorf("animation is written as GIF, got output format %s", format)
	}

	s, err := scene.NewWithWorkers(c.Width, c.Height, c.NumThreads)
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	pr := message.NewPrinter(language.English)
	var last image.Image
	if opts.animate {
		frames, total, err := animate(ctx, s, p, c.AnimationNumFrames)
		if err != nil {
			return err
		}
		if err := writeOut(c.Out, func(w io.Writer) error {
			return sink.EncodeAnimation(w, frames, c.GIFDelay)
		}); err != nil {
			return err
		}
		last = frames[0]
		pr.Fprintf(stdout, "rendered %d frames of %d x %d in %v with %d workers\n",
			len(frames), c.Width, c.Height, total.Round(time.Millisecond), s.Concurrency())
	} else {
		img, elapsed, err := renderFrame(ctx, s, p)
		if err != nil {
			return err
		}
		if err := writeOut(c.Out, func(w io.Writer) error {
			return sink.Encode(w, img, format)
		}); err != nil {
			return err
		}
		last = img
		pr.Fprintf(stdout, "rendered %d x %d (%d pixels, %d max iterations) in %v with %d workers\n",
			c.Width, c.Height, c.Width*c.Height, c.Iterations, elapsed.Round(time.Microsecond), s.Concurrency())
	}
	fmt.Fprintf(stdout, "wrote %s\n", c.Out)

	if opts.thumbnail != "" {
		th, err := sink.Thumbnail(last, c.ThumbnailFactor)
		if err != nil {
			return err
		}
		if err := sink.WriteFile(opts.thumbnail, th); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", opts.thumbnail)
	}

	if h, err := c.Hash(); err == nil {
		fmt.Fprintf(stdout, "#%s\n", h)
	}
	return nil
}

// renderFrame draws p and returns the frame buffer as an image. The image
// shares memory with the scene and is overwritten by the next render.
func renderFrame(ctx context.Context, s *scene.Scene, p scene.Params) (*image.RGBA, time.Duration, error) {
	done, err := s.Render(p)
	if err != nil {
		return nil, 0, err
	}
	if err := done.Wait(ctx); err != nil {
		return nil, 0, err
	}
	img, err := s.Image()
	if err != nil {
		return nil, 0, err
	}
	return img, done.Elapsed(), nil
}

// animate renders the current view followed by a zoom out to the full set.
func animate(ctx context.Context, s *scene.Scene, p scene.Params, numFrames int) ([]image.Image, time.Duration, error) {
	views := append([]scene.View{p.View}, scene.ZoomOutPath(p.View, numFrames)...)
	frames := make([]image.Image, 0, len(views))
	var total time.Duration
	for i, v := range views {
		q := p
		q.View = v
		img, elapsed, err := renderFrame(ctx, s, q)
		if err != nil {
			return nil, 0, fmt.Errorf("frame %d: %w", i, err)
		}
		total += elapsed
		frames = append(frames, sink.Clone(img))
		logging.Logger().Debug("frame rendered", "frame", i, "frames", len(views), "scale", v.Scale, "elapsed", elapsed)
	}
	return frames, total, nil
}

func writeOut(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
