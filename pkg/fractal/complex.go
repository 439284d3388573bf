// Package fractal holds the escape-time math for the Mandelbrot set.
package fractal

// Complex is a double precision complex number.
// complex128 is avoided so the operation order of the kernel is spelled out.
type Complex struct {
	X, Y float64
}

func (a Complex) Mul(b Complex) Complex {
	return Complex{
		X: a.X*b.X - a.Y*b.Y,
		Y: a.X*b.Y + a.Y*b.X,
	}
}

func (a Complex) Add(b Complex) Complex {
	return Complex{X: a.X + b.X, Y: a.Y + b.Y}
}

// MagSq is |a|^2, which keeps the square root off the hot path.
func (a Complex) MagSq() float64 {
	return a.X*a.X + a.Y*a.Y
}
