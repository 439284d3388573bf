package types

import "seehuhn.de/go/geom/rect"

type Pointi struct {
	X, Y int
}

type Recti struct {
	X, Y, W, H int
}

// normalized so that W and H are not negative
func RectiFromCorners(a, b Pointi) Recti {
	r := Recti{X: a.X, Y: a.Y, W: b.X - a.X, H: b.Y - a.Y}
	if r.W < 0 {
		r.X, r.W = b.X, -r.W
	}
	if r.H < 0 {
		r.Y, r.H = b.Y, -r.H
	}
	return r
}

func (r Recti) Area() int {
	return r.W * r.H
}

// Rect converts to float corners, (X, Y) and (X+W, Y+H).
func (r Recti) Rect() rect.Rect {
	return rect.Rect{
		LLx: float64(r.X),
		LLy: float64(r.Y),
		URx: float64(r.X + r.W),
		URy: float64(r.Y + r.H),
	}
}
