package scene

import (
	"fmt"
	"math"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/colormap"
)

// Params describes one render.
type Params struct {
	View
	MaxIterations int
	Mode          colormap.Mode
	DebugTint     bool // tint each pixel by the id of the worker that drew it
}

func (p Params) Validate() error {
	switch {
	case !(p.Scale > 0) || math.IsInf(p.Scale, 0):
		return fmt.Errorf("%w: scale must be positive and finite, got %v", ErrInvalidParams, p.Scale)
	case math.IsNaN(p.DX) || math.IsInf(p.DX, 0) || math.IsNaN(p.DY) || math.IsInf(p.DY, 0):
		return fmt.Errorf("%w: offset must be finite, got (%v, %v)", ErrInvalidParams, p.DX, p.DY)
	case p.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidParams, p.MaxIterations)
	case !p.Mode.Valid():
		return fmt.Errorf("%w: %w: %d", ErrInvalidParams, colormap.ErrUnknownMode, uint8(p.Mode))
	}
	return nil
}
