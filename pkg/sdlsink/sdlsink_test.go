package sdlsink

import (
	"errors"
	"testing"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/sink"
)

func TestCopyRowsPacked(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]byte, 8)
	if err := copyRows(dst, 4, src, 4, 2); err != nil {
		t.Fatal(err)
	}
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("dst = %v, want %v", dst, src)
		}
	}
}

func TestCopyRowsPitch(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]byte, 6+4)
	for i := range dst {
		dst[i] = 0xee
	}
	if err := copyRows(dst, 6, src, 4, 2); err != nil {
		t.Fatal(err)
	}
	want := []byte{1, 2, 3, 4, 0xee, 0xee, 5, 6, 7, 8}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}

func TestCopyRowsTooSmall(t *testing.T) {
	src := make([]byte, 16)
	tests := []struct {
		name  string
		dst   int
		pitch int
	}{
		{"short pitch", 16, 4},
		{"short buffer", 12, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := copyRows(make([]byte, tt.dst), tt.pitch, src, 8, 2)
			if !errors.Is(err, sink.ErrConversion) {
				t.Errorf("err = %v, want ErrConversion", err)
			}
		})
	}
}

func TestSurface(t *testing.T) {
	buf := make([]byte, 3*2*4)
	for i := range buf {
		buf[i] = byte(i)
	}
	s, err := Surface(buf, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Free()
	if s.W != 3 || s.H != 2 {
		t.Fatalf("surface is %dx%d", s.W, s.H)
	}
	pix := s.Pixels()
	for y := 0; y < 2; y++ {
		for x := 0; x < 12; x++ {
			if got, want := pix[y*int(s.Pitch)+x], buf[y*12+x]; got != want {
				t.Fatalf("row %d byte %d = %d, want %d", y, x, got, want)
			}
		}
	}

	if _, err := Surface(buf[:5], 3, 2); !errors.Is(err, sink.ErrConversion) {
		t.Errorf("short buffer: err = %v, want ErrConversion", err)
	}
}
