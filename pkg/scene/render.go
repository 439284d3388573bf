package scene

import (
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/colormap"
	"github.com/joshvictor1024/parallel-mandelbrot/pkg/fractal"
)

const (
	BytesPerPixel  = 4
	bandsPerWorker = 4
)

// band is a run of whole rows. pix never overlaps another band of the same
// render and its capacity is capped, so a band cannot write past its rows.
type band struct {
	first int // index of the first pixel
	pix   []byte
}

// splitBands cuts buf into at most n bands of whole rows.
func splitBands(buf []byte, width, height, n int) []band {
	if n > height {
		n = height
	}
	if n < 1 {
		n = 1
	}
	rowBytes := width * BytesPerPixel
	bands := make([]band, 0, n)
	for k := 0; k < n; k++ {
		r0 := k * height / n
		r1 := (k + 1) * height / n
		lo, hi := r0*rowBytes, r1*rowBytes
		bands = append(bands, band{first: r0 * width, pix: buf[lo:hi:hi]})
	}
	return bands
}

// frame holds what every band of one render reads. Immutable once built.
type frame struct {
	w             int
	width, height float64
	view          View
	maxIterations int
	strategy      colormap.Strategy
	tint          bool
}

func newFrame(width, height int, p Params, s colormap.Strategy) *frame {
	return &frame{
		w:             width,
		width:         float64(width),
		height:        float64(height),
		view:          p.View,
		maxIterations: p.MaxIterations,
		strategy:      s,
		tint:          p.DebugTint,
	}
}

// plane maps pixel index i to its point on the complex plane.
func (f *frame) plane(i int) fractal.Complex {
	return fractal.Complex{
		X: (float64(i%f.w)-f.width/2)/f.view.Scale - f.view.DX,
		Y: (float64(i/f.w)-f.height/2)/f.view.Scale - f.view.DY,
	}
}

func (f *frame) color(i int) colormap.Color {
	return f.strategy.Color(fractal.Escape(f.plane(i), f.maxIterations))
}

func (f *frame) drawBand(b band, worker int) {
	for off := 0; off+BytesPerPixel <= len(b.pix); off += BytesPerPixel {
		c := f.color(b.first + off/BytesPerPixel)
		if f.tint {
			c = colormap.Tint(c, worker)
		}
		px := b.pix[off : off+BytesPerPixel : off+BytesPerPixel]
		px[0] = c.R
		px[1] = c.G
		px[2] = c.B
		px[3] = 255
	}
}
