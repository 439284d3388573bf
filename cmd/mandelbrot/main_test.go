package main

import (
	"bytes"
	"context"
	"errors"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/config"
)

func TestParseFlagsOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.json")
	if err := os.WriteFile(path, []byte(`{"width": 100, "height": 80, "iterations": 64}`), 0o644); err != nil {
		t.Fatal(err)
	}

	c, opts, err := parseFlags("mandelbrot", []string{
		"-config", path, "-height", "40", "-mode", "0", "-tint", "-animate", "-out", "z.gif",
	}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	want := config.Default()
	want.Width, want.Height, want.Iterations = 100, 40, 64
	want.ColorMode = 0
	want.ColorThreads = true
	want.Out = "z.gif"
	if c != want {
		t.Errorf("controls = %+v\nwant %+v", c, want)
	}
	if !opts.animate || opts.thumbnail != "" {
		t.Errorf("options = %+v", opts)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := [][]string{
		{"-threads", "0"},
		{"-mode", "7"},
		{"-hash", "nonsense"},
		{"extra"},
		{"-config", "does-not-exist.json"},
	}
	for _, args := range tests {
		if _, _, err := parseFlags("mandelbrot", args, io.Discard); err == nil {
			t.Errorf("parseFlags(%q) succeeded", args)
		}
	}
}

func smallControls(dir, out string) config.Controls {
	c := config.Default()
	c.Width, c.Height = 48, 36
	c.Scale = 15
	c.DX = 0.5
	c.Iterations = 64
	c.NumThreads = 3
	c.Out = filepath.Join(dir, out)
	return c
}

func TestRunWritesImage(t *testing.T) {
	dir := t.TempDir()
	c := smallControls(dir, "m.png")
	thumb := filepath.Join(dir, "thumb.png")

	var stdout bytes.Buffer
	if err := run(context.Background(), c, options{thumbnail: thumb}, &stdout); err != nil {
		t.Fatal(err)
	}
	for path, size := range map[string][2]int{c.Out: {48, 36}, thumb: {9, 7}} {
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Width != size[0] || cfg.Height != size[1] {
			t.Errorf("%s is %dx%d, want %dx%d", filepath.Base(path), cfg.Width, cfg.Height, size[0], size[1])
		}
	}

	h, _ := c.Hash()
	if !strings.Contains(stdout.String(), "#"+h) {
		t.Errorf("output lacks the controls fragment:\n%s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "1,728 pixels") {
		t.Errorf("output lacks the pixel count:\n%s", stdout.String())
	}
}

func TestRunAnimation(t *testing.T) {
	dir := t.TempDir()
	c := smallControls(dir, "zoom.gif")
	c.Scale = 1000
	c.AnimationNumFrames = 10

	if err := run(context.Background(), c, options{animate: true}, io.Discard); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(c.Out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	// the starting view plus 900, 800, ... 200
	if len(g.Image) != 9 {
		t.Errorf("%d frames, want 9", len(g.Image))
	}

	c.Out = filepath.Join(dir, "zoom.png")
	if err := run(context.Background(), c, options{animate: true}, io.Discard); err == nil {
		t.Error("animation to a PNG file succeeded")
	}
}

func TestRunCanceled(t *testing.T) {
	c := smallControls(t.TempDir(), "m.png")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := run(ctx, c, options{}, io.Discard)
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want nil or context.Canceled", err)
	}
}
