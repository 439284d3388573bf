// Package config loads render controls from JSON files and URL fragments.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"strings"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/colormap"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/scene"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/sink"
)

var ErrInvalid = errors.New("config: invalid controls")

// HashKey prefixes the controls in a URL fragment: #controls=<escaped JSON>.
const HashKey = "controls="

// Controls are the user-facing render settings.
type Controls struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Scale      float64 `json:"scale"`
	DX         float64 `json:"dx"`
	DY         float64 `json:"dy"`
	Iterations int     `json:"iterations"`
	NumThreads int     `json:"num_threads"`
	ColorMode  int     `json:"color_mode"`
	// tint pixels by the worker that drew them
	ColorThreads       bool   `json:"color_threads"`
	AnimationNumFrames int    `json:"animation_num_frames"`
	GIFDelay           int    `json:"gif_delay,omitempty"` // 100ths of a second
	Out                string `json:"out,omitempty"`
	Format             string `json:"format,omitempty"` // empty: from the extension of Out
	ThumbnailFactor    int    `json:"thumbnail_factor"`
}

func Default() Controls {
	return Controls{
		Width:              800,
		Height:             600,
		Scale:              305,
		DX:                 1,
		DY:                 0,
		Iterations:         350,
		NumThreads:         8,
		ColorMode:          int(colormap.PaletteSmooth),
		AnimationNumFrames: 100,
		GIFDelay:           4,
		Out:                "mandelbrot.png",
		ThumbnailFactor:    5,
	}
}

func (c Controls) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalid, c.Width, c.Height)
	case !(c.Scale > 0) || math.IsInf(c.Scale, 0):
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalid, c.Scale)
	case math.IsNaN(c.DX) || math.IsInf(c.DX, 0) || math.IsNaN(c.DY) || math.IsInf(c.DY, 0):
		return fmt.Errorf("%w: offset must be finite", ErrInvalid)
	case c.Iterations <= 0:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalid, c.Iterations)
	case c.NumThreads < 1:
		return fmt.Errorf("%w: num_threads must be at least 1, got %d", ErrInvalid, c.NumThreads)
	case c.AnimationNumFrames < 1:
		return fmt.Errorf("%w: animation_num_frames must be at least 1, got %d", ErrInvalid, c.AnimationNumFrames)
	case c.ThumbnailFactor < 1:
		return fmt.Errorf("%w: thumbnail_factor must be at least 1, got %d", ErrInvalid, c.ThumbnailFactor)
	case c.GIFDelay < 0:
		return fmt.Errorf("%w: gif_delay must not be negative", ErrInvalid)
	}
	if _, err := colormap.ParseMode(c.ColorMode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Format != "" || c.Out != "" {
		if _, err := c.OutputFormat(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	return nil
}

// OutputFormat is Format, or the format named by the extension of Out.
func (c Controls) OutputFormat() (sink.Format, error) {
	if c.Format != "" {
		return sink.ParseFormat(c.Format)
	}
	return sink.FormatFromPath(c.Out)
}

// Params converts the controls to the parameters of one render.
func (c Controls) Params() (scene.Params, error) {
	mode, err := colormap.ParseMode(c.ColorMode)
	if err != nil {
		return scene.Params{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return scene.Params{
		View:          c.View(),
		MaxIterations: c.Iterations,
		Mode:          mode,
		DebugTint:     c.ColorThreads,
	}, nil
}

func (c Controls) View() scene.View {
	return scene.View{Scale: c.Scale, DX: c.DX, DY: c.DY}
}

// WithView returns c moved to v.
func (c Controls) WithView(v scene.View) Controls {
	c.Scale, c.DX, c.DY = v.Scale, v.DX, v.DY
	return c
}

// Decode reads JSON controls on top of Default, so missing keys keep their
// default values.
func Decode(data []byte) (Controls, error) {
	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return Controls{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return Controls{}, err
	}
	return c, nil
}

// Load reads controls from a JSON file.
func Load(path string) (Controls, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Controls{}, err
	}
	c, err := Decode(data)
	if err != nil {
		return Controls{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Hash encodes c as a URL fragment body, controls=<escaped JSON>.
func (c Controls) Hash() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return HashKey + url.QueryEscape(string(data)), nil
}

// ParseHash decodes a fragment written by Hash. A leading '#' is allowed.
func ParseHash(s string) (Controls, error) {
	s = strings.TrimPrefix(s, "#")
	body, ok := strings.CutPrefix(s, HashKey)
	if !ok {
		return Controls{}, fmt.Errorf("%w: fragment does not start with %q", ErrInvalid, HashKey)
	}
	data, err := url.QueryUnescape(body)
	if err != nil {
		return Controls{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return Decode([]byte(data))
}
