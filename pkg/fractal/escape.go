package fractal

import "math"

// BailoutSq is the squared escape radius.
const BailoutSq = 4.0

// minLogInput keeps log2 finite in Smooth.
const minLogInput = 1e-9

// Result is the outcome of iterating one point.
type Result struct {
	Iterations int     // 0..=max
	Z          Complex // last computed z
	Escaped    bool    // |z|^2 > BailoutSq was observed
}

// Escape iterates z = z*z + c from z = 0 until |z|^2 > 4 or maxIter steps.
func Escape(c Complex, maxIter int) Result {
	var z Complex
	it := 0
	for it < maxIter {
		// z = z ^ 2 + c
		z = z.Mul(z).Add(c)
		it += 1
		if z.MagSq() > BailoutSq {
			return Result{Iterations: it, Z: z, Escaped: true}
		}
	}
	return Result{Iterations: it, Z: z}
}

// Smooth returns the continuous iteration count it + 1 - log2(log2(|z|)).
// Both log2 inputs are clamped to a small positive value, so the result is
// always finite. Points that did not escape return their iteration count.
func Smooth(r Result) float64 {
	if !r.Escaped {
		return float64(r.Iterations)
	}
	l := math.Log2(math.Max(math.Sqrt(r.Z.MagSq()), minLogInput))
	nu := math.Log2(math.Max(l, minLogInput))
	return float64(r.Iterations) + 1 - nu
}
