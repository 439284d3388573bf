package fractal

import (
	"math"
	"testing"
)

func TestComplexOps(t *testing.T) {
	a := Complex{X: 1, Y: 2}
	b := Complex{X: 3, Y: -1}
	if got := a.Mul(b); got != (Complex{X: 5, Y: 5}) {
		t.Fatalf("Mul = %+v, want {5 5}", got)
	}
	if got := a.Add(b); got != (Complex{X: 4, Y: 1}) {
		t.Fatalf("Add = %+v, want {4 1}", got)
	}
	if got := b.MagSq(); got != 10 {
		t.Fatalf("MagSq = %v, want 10", got)
	}
}

func TestEscapeOrigin(t *testing.T) {
	for _, max := range []int{1, 2, 50, 700} {
		r := Escape(Complex{}, max)
		if r.Escaped || r.Iterations != max {
			t.Fatalf("max=%d: origin escaped=%v after %d", max, r.Escaped, r.Iterations)
		}
	}
}

func TestEscapeFarPoint(t *testing.T) {
	r := Escape(Complex{X: 3, Y: 3}, 100)
	if !r.Escaped || r.Iterations > 2 {
		t.Fatalf("3+3i: escaped=%v after %d, want escape within 2", r.Escaped, r.Iterations)
	}
	if r.Z != (Complex{X: 3, Y: 3}) {
		t.Fatalf("3+3i: final z = %+v", r.Z)
	}
}

func TestEscapeStrictBailout(t *testing.T) {
	// z1 = 2, |z1|^2 = 4 is not > 4; z2 = 6 escapes.
	r := Escape(Complex{X: 2}, 10)
	if r.Iterations != 2 || !r.Escaped {
		t.Fatalf("c=2: %+v, want escape at 2", r)
	}
}

func TestEscapeMatchesComplex128(t *testing.T) {
	points := []Complex{{-0.1, 0.1}, {0.5, 0.5}, {-1.82, -0.82}, {-2.5, 0}}
	for _, c := range points {
		r := Escape(c, 200)
		var z complex128
		n := 0
		for n < 200 {
			z = z*z + complex(c.X, c.Y)
			n++
			if real(z)*real(z)+imag(z)*imag(z) > 4 {
				break
			}
		}
		if n != r.Iterations {
			t.Errorf("c=%+v: iterations %d, complex128 gives %d", c, r.Iterations, n)
		}
	}
}

func TestSmooth(t *testing.T) {
	in := Escape(Complex{}, 30)
	if got := Smooth(in); got != 30 {
		t.Fatalf("Smooth(in-set) = %v, want 30", got)
	}

	out := Escape(Complex{X: 3, Y: 3}, 30)
	want := 2 - math.Log2(math.Log2(math.Sqrt(18)))
	if got := Smooth(out); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Smooth(3+3i) = %v, want %v", got, want)
	}

	// A hand-made result inside the bailout circle must stay finite.
	odd := Result{Iterations: 1, Z: Complex{X: 0.5}, Escaped: true}
	if got := Smooth(odd); math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("Smooth(|z|<=1) = %v, want finite", got)
	}
}

func BenchmarkEscape(b *testing.B) {
	c := Complex{X: -0.743643887037151, Y: 0.13182590420533}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Escape(c, 1000)
	}
}
