package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestFromStdImage_RGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 10, 10))
	rgba.Set(5, 5, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	// Premultiplied half-transparent red.
	rgba.Set(1, 1, color.RGBA{R: 100, G: 0, B: 0, A: 128})

	buf := FromStdImage(rgba)

	if buf.Width() != 10 || buf.Height() != 10 {
		t.Errorf("Dimensions = (%d, %d), want (10, 10)", buf.Width(), buf.Height())
	}
	if buf.Format() != FormatRGBA8 {
		t.Errorf("Format = %v, want RGBA8 for a translucent image", buf.Format())
	}

	r, g, b, a := buf.GetRGBA(5, 5)
	if r != 200 || g != 100 || b != 50 || a != 255 {
		t.Errorf("Pixel = (%d, %d, %d, %d), want (200, 100, 50, 255)", r, g, b, a)
	}

	r, _, _, a = buf.GetRGBA(1, 1)
	if a != 128 || absDiff(r, 199) > 1 {
		t.Errorf("Pixel = (%d, .., %d), want straight alpha (199, .., 128)", r, a)
	}
}

func TestFromStdImage_NRGBA(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	nrgba.Set(3, 3, color.NRGBA{R: 128, G: 64, B: 32, A: 200})

	buf := FromStdImage(nrgba)

	r, g, b, a := buf.GetRGBA(3, 3)
	if r != 128 || g != 64 || b != 32 || a != 200 {
		t.Errorf("Pixel = (%d, %d, %d, %d), want (128, 64, 32, 200)", r, g, b, a)
	}
}

func TestFromStdImage_OpaqueBecomesRGB(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	gray.SetGray(5, 5, color.Gray{Y: 128})

	buf := FromStdImage(gray)

	if buf.Format() != FormatRGB8 {
		t.Errorf("Format = %v, want RGB8", buf.Format())
	}
	r, g, b, _ := buf.GetRGBA(5, 5)
	if r != 128 || g != 128 || b != 128 {
		t.Errorf("Pixel = (%d, %d, %d), want (128, 128, 128)", r, g, b)
	}
}

func TestFromStdImage_SubImage(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	nrgba.Set(2, 2, color.NRGBA{R: 9, A: 255})
	sub := nrgba.SubImage(image.Rect(2, 2, 4, 4))

	buf := FromStdImage(sub)
	if buf.Width() != 2 || buf.Height() != 2 {
		t.Fatalf("Dimensions = (%d, %d), want (2, 2)", buf.Width(), buf.Height())
	}
	if r, _, _, _ := buf.GetRGBA(0, 0); r != 9 {
		t.Errorf("Pixel = %d, want 9", r)
	}
}

func TestToStdImage_RGB8(t *testing.T) {
	buf, _ := NewImageBuf(10, 10, FormatRGB8)
	_ = buf.SetRGBA(5, 5, 200, 100, 50, 0)

	c := buf.ToStdImage().NRGBAAt(5, 5)
	if c.R != 200 || c.G != 100 || c.B != 50 || c.A != 255 {
		t.Errorf("Pixel = %v, want {200, 100, 50, 255}", c)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// Lossless formats must reproduce an opaque buffer exactly.
	formats := []string{"png", "bmp", "tiff", "qoi"}

	src, _ := NewImageBuf(4, 3, FormatRGB8)
	for y := range 3 {
		for x := range 4 {
			_ = src.SetRGBA(x, y, uint8(x*60), uint8(y*80), 7, 255)
		}
	}

	for _, format := range formats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := src.Encode(&buf, format); err != nil {
				t.Fatalf("Encode(%s) error = %v", format, err)
			}

			ext, err := Sniff(buf.Bytes())
			if err != nil {
				t.Fatalf("Sniff() error = %v", err)
			}
			if ext != format && (format != "tiff" || ext != "tif") {
				t.Errorf("Sniff() = %q, want %q", ext, format)
			}

			got, err := DecodeBytes(buf.Bytes())
			if err != nil {
				t.Fatalf("DecodeBytes() error = %v", err)
			}
			if !got.Equal(src) {
				t.Errorf("%s round trip changed the pixels", format)
			}
		})
	}
}

func TestEncodePNGKeepsAlpha(t *testing.T) {
	src, _ := NewImageBuf(2, 2, FormatRGBA8)
	src.Fill(50, 60, 70, 255)
	_ = src.SetRGBA(0, 0, 10, 20, 30, 100)

	var buf bytes.Buffer
	if err := src.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	got, err := DecodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if !got.Equal(src) {
		t.Error("PNG round trip changed a translucent buffer")
	}
}

func TestEncodeJPEG(t *testing.T) {
	src, _ := NewImageBuf(8, 8, FormatRGB8)
	src.Fill(120, 120, 120, 255)

	var buf bytes.Buffer
	if err := src.Encode(&buf, "jpg"); err != nil {
		t.Fatalf("Encode(jpg) error = %v", err)
	}
	got, err := DecodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if got.Format() != FormatRGB8 {
		t.Errorf("JPEG decodes to %v, want RGB8", got.Format())
	}
	if r, _, _, _ := got.GetRGBA(4, 4); absDiff(r, 120) > 3 {
		t.Errorf("Pixel = %d, want about 120", r)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	src, _ := NewImageBuf(1, 1, FormatRGB8)
	if err := src.Encode(&bytes.Buffer{}, "webp"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(webp) error = %v, want ErrUnsupportedFormat", err)
	}
	if CanEncode("psd") {
		t.Error("CanEncode(psd) = true")
	}
}

func TestSniffRejects(t *testing.T) {
	if _, err := Sniff(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("Sniff(nil) error = %v, want ErrEmptyData", err)
	}
	if _, err := Sniff([]byte("plain text, not an image")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Sniff(text) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	src, _ := NewImageBuf(3, 3, FormatRGB8)
	src.Fill(1, 2, 3, 255)

	path := filepath.Join(dir, "out.png")
	if err := src.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Equal(src) {
		t.Error("Load(Save(x)) != x")
	}

	if err := src.Save(filepath.Join(dir, "out.xyz")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.xyz) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.xyz")); !os.IsNotExist(err) {
		t.Error("Save(.xyz) should not create a file")
	}

	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Load(missing) should fail")
	}
}
