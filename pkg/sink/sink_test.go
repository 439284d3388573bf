package sink

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func solid(w, h int, c color.RGBA) []byte {
	buf := make([]byte, w*h*4)
	for i := 0; i < len(buf); i += 4 {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = c.R, c.G, c.B, c.A
	}
	return buf
}

func TestRGBASharesMemory(t *testing.T) {
	buf := solid(3, 2, color.RGBA{10, 20, 30, 255})
	img, err := RGBA(buf, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v", got)
	}
	buf[4] = 99
	if got := img.RGBAAt(1, 0); got.R != 99 {
		t.Errorf("pixel (1,0) = %v, want R=99 after writing the buffer", got)
	}
}

func TestRGBARejectsBadSize(t *testing.T) {
	tests := []struct {
		name string
		n    int
		w, h int
	}{
		{"short", 10, 2, 2},
		{"long", 20, 2, 2},
		{"zero width", 0, 0, 2},
		{"negative", 16, -2, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RGBA(make([]byte, tt.n), tt.w, tt.h)
			if !errors.Is(err, ErrConversion) {
				t.Errorf("err = %v, want ErrConversion", err)
			}
		})
	}
}

func TestThumbnail(t *testing.T) {
	img, _ := RGBA(solid(50, 20, color.RGBA{200, 100, 50, 255}), 50, 20)
	th, err := Thumbnail(img, 5)
	if err != nil {
		t.Fatal(err)
	}
	if th.Bounds().Dx() != 10 || th.Bounds().Dy() != 4 {
		t.Fatalf("thumbnail is %v, want 10x4", th.Bounds())
	}
	if got := th.RGBAAt(5, 2); got != (color.RGBA{200, 100, 50, 255}) {
		t.Errorf("thumbnail pixel = %v", got)
	}

	tiny, err := Thumbnail(img, 100)
	if err != nil {
		t.Fatal(err)
	}
	if tiny.Bounds().Dx() != 1 || tiny.Bounds().Dy() != 1 {
		t.Errorf("tiny thumbnail is %v, want 1x1", tiny.Bounds())
	}

	if _, err := Thumbnail(img, 0); !errors.Is(err, ErrConversion) {
		t.Errorf("factor 0: err = %v, want ErrConversion", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"png", PNG, true},
		{".PNG", PNG, true},
		{"bmp", BMP, true},
		{"tif", TIFF, true},
		{"tiff", TIFF, true},
		{"gif", GIF, true},
		{"jpeg", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	want := color.RGBA{20, 200, 20, 255}
	img, _ := RGBA(solid(4, 3, want), 4, 3)

	decoders := map[Format]func(*bytes.Reader) (image.Image, error){
		PNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		BMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		TIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}
	for f, decode := range decoders {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, f); err != nil {
				t.Fatal(err)
			}
			got, err := decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatal(err)
			}
			r, g, b, _ := got.At(2, 1).RGBA()
			if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
				t.Errorf("decoded pixel = %d,%d,%d, want %v", r>>8, g>>8, b>>8, want)
			}
		})
	}

	if err := Encode(&bytes.Buffer{}, img, Format("webp")); !errors.Is(err, ErrConversion) {
		t.Errorf("unknown format: err = %v, want ErrConversion", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	img, _ := RGBA(solid(8, 8, color.RGBA{255, 20, 20, 255}), 8, 8)

	path := filepath.Join(dir, "out.png")
	if err := WriteFile(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 8 || cfg.Height != 8 {
		t.Errorf("png is %dx%d, want 8x8", cfg.Width, cfg.Height)
	}

	if err := WriteFile(filepath.Join(dir, "out.xyz"), img); !errors.Is(err, ErrConversion) {
		t.Errorf("unknown extension: err = %v, want ErrConversion", err)
	}
}

func TestEncodeAnimation(t *testing.T) {
	frames := make([]image.Image, 3)
	for i := range frames {
		img, _ := RGBA(solid(6, 4, color.RGBA{uint8(80 * i), 0, 0, 255}), 6, 4)
		frames[i] = Clone(img)
	}
	var buf bytes.Buffer
	if err := EncodeAnimation(&buf, frames, 5); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("decoded %d frames, want 3", len(g.Image))
	}
	for i, d := range g.Delay {
		if d != 5 {
			t.Errorf("frame %d delay = %d, want 5", i, d)
		}
	}

	if err := EncodeAnimation(&bytes.Buffer{}, nil, 5); !errors.Is(err, ErrConversion) {
		t.Errorf("no frames: err = %v, want ErrConversion", err)
	}
}
