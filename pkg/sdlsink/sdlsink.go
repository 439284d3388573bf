// Package sdlsink copies rendered frames into SDL surfaces and textures.
package sdlsink

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/parallel-mandelbrot/pkg/sink"
)

// PixelFormat lays a packed ABGR pixel out in memory as R, G, B, A on
// little-endian hosts, the byte order of the frame buffer.
const PixelFormat = sdl.PIXELFORMAT_ABGR8888

// NewTexture creates a streaming texture Upload can write to.
// only textures with TEXTUREACCESS_STREAMING can be locked
func NewTexture(r *sdl.Renderer, width, height int) (*sdl.Texture, error) {
	t, err := r.CreateTexture(uint32(PixelFormat), sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sink.ErrConversion, err)
	}
	return t, nil
}

// Surface copies buf into a new surface. The caller frees it.
func Surface(buf []byte, width, height int) (*sdl.Surface, error) {
	if err := checkSize(buf, width, height); err != nil {
		return nil, err
	}
	s, err := sdl.CreateRGBSurfaceWithFormat(0, int32(width), int32(height), 32, uint32(PixelFormat))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sink.ErrConversion, err)
	}
	if s.MustLock() {
		if err := s.Lock(); err != nil {
			s.Free()
			return nil, fmt.Errorf("%w: %w", sink.ErrConversion, err)
		}
		defer s.Unlock()
	}
	if err := copyRows(s.Pixels(), int(s.Pitch), buf, width*4, height); err != nil {
		s.Free()
		return nil, err
	}
	return s, nil
}

// Upload copies buf into tex, which must be a streaming texture at least
// width x height in PixelFormat.
func Upload(tex *sdl.Texture, buf []byte, width, height int) error {
	if err := checkSize(buf, width, height); err != nil {
		return err
	}
	data, pitch, err := tex.Lock(nil)
	if err != nil {
		return fmt.Errorf("%w: %w", sink.ErrConversion, err)
	}
	defer tex.Unlock()
	return copyRows(data, pitch, buf, width*4, height)
}

func checkSize(buf []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(buf) != width*height*4 {
		return fmt.Errorf("%w: %d bytes for a %dx%d frame", sink.ErrConversion, len(buf), width, height)
	}
	return nil
}

// copyRows copies rows of rowBytes from a tightly packed src into dst whose
// rows are pitch bytes apart.
func copyRows(dst []byte, pitch int, src []byte, rowBytes, rows int) error {
	if pitch < rowBytes || len(dst) < (rows-1)*pitch+rowBytes {
		return fmt.Errorf("%w: destination pitch %d and length %d too small for %d rows of %d bytes",
			sink.ErrConversion, pitch, len(dst), rows, rowBytes)
	}
	if pitch == rowBytes {
		copy(dst, src[:rows*rowBytes])
		return nil
	}
	for y := 0; y < rows; y++ {
		copy(dst[y*pitch:y*pitch+rowBytes], src[y*rowBytes:(y+1)*rowBytes])
	}
	return nil
}
