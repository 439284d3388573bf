package colormap

import (
	"errors"
	"fmt"
	"math"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/fractal"
)

var ErrUnknownMode = errors.New("colormap: unknown color mode")

// Mode selects a coloring strategy. The numeric values are the color mode
// codes accepted on the command line and in config files.
type Mode uint8

const (
	Gray          Mode = iota // smoothed grayscale, fast escapes are bright
	InverseGray               // smoothed grayscale, fast escapes are dark
	PaletteSmooth             // keyframe palette keyed by the rounded continuous iteration
	PaletteBanded             // keyframe palette keyed by the integer iteration
)

func ParseMode(code int) (Mode, error) {
	if code < 0 || code > int(PaletteBanded) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownMode, code)
	}
	return Mode(code), nil
}

func (m Mode) Valid() bool {
	return m <= PaletteBanded
}

func (m Mode) String() string {
	switch m {
	case Gray:
		return "gray"
	case InverseGray:
		return "inverse-gray"
	case PaletteSmooth:
		return "palette-smooth"
	case PaletteBanded:
		return "palette-banded"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Strategy maps one escape result to a color.
// Implementations are read-only and shared by all render workers.
type Strategy interface {
	Color(r fractal.Result) Color
}

// Strategy builds the coloring strategy for renders of maxIter iterations.
// Palette modes precompute their Cache here.
func (m Mode) Strategy(maxIter int) (Strategy, error) {
	if maxIter <= 0 {
		return nil, fmt.Errorf("colormap: max iterations must be positive, got %d", maxIter)
	}
	switch m {
	case Gray:
		return grayscale{max: float64(maxIter)}, nil
	case InverseGray:
		return grayscale{max: float64(maxIter), inverse: true}, nil
	case PaletteSmooth:
		return &paletted{
			cache:  NewCache(DefaultPalette, maxIter, DefaultPalette[0]),
			smooth: true,
		}, nil
	case PaletteBanded:
		return &paletted{cache: NewCache(DefaultPalette, maxIter, Black)}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMode, uint8(m))
}

type grayscale struct {
	max     float64
	inverse bool
}

func (g grayscale) Color(r fractal.Result) Color {
	if !r.Escaped {
		if g.inverse {
			return White
		}
		return Black
	}
	mu := fractal.Smooth(r)
	v := (g.max - mu) * 255 / g.max
	if g.inverse {
		v = mu * 255 / g.max
	}
	b := clampByte(v)
	return Color{R: b, G: b, B: b}
}

type paletted struct {
	cache  *Cache
	smooth bool
}

func (p *paletted) Color(r fractal.Result) Color {
	if !r.Escaped {
		return p.cache.InSet()
	}
	if !p.smooth {
		return p.cache.Lookup(r.Iterations)
	}
	key := math.Round(fractal.Smooth(r))
	if key < 0 {
		key = 0
	}
	if top := float64(p.cache.MaxIterations()); key > top {
		key = top
	}
	return p.cache.Lookup(int(key))
}
