package scene

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// MinZoomBoxArea is the smallest selection, in square pixels, that zooms.
// Anything smaller is treated as a click.
const MinZoomBoxArea = 500

// View places the image on the complex plane. Scale is in pixels per unit;
// the image center sits at (-DX, -DY).
type View struct {
	Scale  float64
	DX, DY float64
}

// PixelToPlane maps pixel coordinates to the plane:
// x = (px - w/2)/scale - dx, y = (py - h/2)/scale - dy.
func (v View) PixelToPlane(px, py float64, width, height int) vec.Vec2 {
	return vec.Vec2{
		X: (px-float64(width)/2)/v.Scale - v.DX,
		Y: (py-float64(height)/2)/v.Scale - v.DY,
	}
}

// Bounds is the region of the plane covered by a width x height image.
// Rows grow downwards, so LLy is the plane y of the top row.
func (v View) Bounds(width, height int) rect.Rect {
	a := v.PixelToPlane(0, 0, width, height)
	b := v.PixelToPlane(float64(width), float64(height), width, height)
	return rect.Rect{LLx: a.X, LLy: a.Y, URx: b.X, URy: b.Y}
}

// ZoomToBox centers the view on a pixel selection and scales it up until
// the selection fills the image along its tighter axis. The corners of box
// may be given in any order. Selections below MinZoomBoxArea return v, false.
func (v View) ZoomToBox(box rect.Rect, width, height int) (View, bool) {
	bw := math.Abs(box.URx - box.LLx)
	bh := math.Abs(box.URy - box.LLy)
	if bw*bh < MinZoomBoxArea {
		return v, false
	}
	x := math.Min(box.LLx, box.URx) + bw/2 - float64(width)/2
	y := math.Min(box.LLy, box.URy) + bh/2 - float64(height)/2

	out := v
	out.DX -= x / v.Scale
	out.DY -= y / v.Scale
	out.Scale /= math.Max(bw/float64(width), bh/float64(height))
	return out, true
}

const (
	zoomOutFloor   = 250
	zoomOutMinStep = 100
	zoomOutFast    = 10000
)

// ZoomOutPath returns the views of a zoom-out animation from v, one per
// frame, ending once the scale falls to 250 pixels per unit or below.
// Above a scale of 10000 the steps are lengthened so deep views do not take
// thousands of frames.
func ZoomOutPath(v View, frames int) []View {
	if frames < 1 {
		frames = 1
	}
	var out []View
	global := math.Max(zoomOutMinStep, v.Scale/float64(frames))
	for v.Scale > zoomOutFloor {
		step := math.Max(zoomOutMinStep, v.Scale/float64(frames))
		if v.Scale > zoomOutFast {
			step += math.Min(global, v.Scale-step-zoomOutMinStep)
		}
		if v.Scale-step <= 0 {
			break
		}
		v.Scale -= step
		out = append(out, v)
	}
	return out
}
