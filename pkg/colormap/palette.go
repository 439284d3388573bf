// Package colormap turns escape-time results into RGB colors.
//
// Four coloring strategies are available, selected by Mode. The palette
// strategies read from a Cache that holds one precomputed color per integer
// iteration, so the per-pixel cost is a slice index instead of palette
// interpolation.
package colormap

import "math"

// Color is an RGB triple. Alpha is always opaque in the frame buffer.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{}
	White = Color{R: 255, G: 255, B: 255}
)

// Palette is an ordered list of keyframe colors.
type Palette []Color

// DefaultPalette runs from deep blue through green, yellow and orange to red.
var DefaultPalette = Palette{
	{R: 10, G: 10, B: 60},
	{R: 20, G: 200, B: 20},
	{R: 200, G: 200, B: 20},
	{R: 255, G: 165, B: 20},
	{R: 255, G: 20, B: 20},
}

// At interpolates the palette at iteration iter of maxIter.
// The position (iter/maxIter)*(len-1) selects an adjacent keyframe pair and
// the fractional part blends between them.
func (p Palette) At(iter float64, maxIter int) Color {
	switch {
	case len(p) == 0:
		return Black
	case len(p) == 1 || maxIter <= 0:
		return p[0]
	}

	pos := iter / float64(maxIter) * float64(len(p)-1)
	if math.IsNaN(pos) {
		pos = 0
	}
	i := int(math.Floor(math.Max(pos, 0)))
	if i > len(p)-2 {
		i = len(p) - 2
	}
	ratio := math.Min(math.Max(pos-float64(i), 0), 1)

	c1, c2 := p[i], p[i+1]
	return Color{
		R: lerp(c1.R, c2.R, ratio),
		G: lerp(c1.G, c2.G, ratio),
		B: lerp(c1.B, c2.B, ratio),
	}
}

func lerp(a, b uint8, ratio float64) uint8 {
	return clampByte(math.Floor((float64(b)-float64(a))*ratio + float64(a)))
}

func clampByte(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
