package image

import (
	"bytes"
	"errors"
	"fmt"
	stdimage "image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // registers the WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// JPEGQuality is the quality used when encoding JPEG files.
const JPEGQuality = 95

// qoiType is registered with filetype so that Sniff recognises QOI files,
// which the stock matchers do not know.
var qoiType = filetype.NewType("qoi", "image/qoi")

func init() {
	filetype.AddMatcher(qoiType, func(buf []byte) bool {
		return len(buf) >= 4 && string(buf[:4]) == "qoif"
	})
}

// Sniff returns the canonical extension ("png", "jpg", "qoi", ...) of the
// image encoded in header, which should hold at least the first 262 bytes
// of the file.
func Sniff(header []byte) (string, error) {
	if len(header) == 0 {
		return "", ErrEmptyData
	}
	kind, err := filetype.Match(header)
	if err != nil {
		return "", fmt.Errorf("image: sniff: %w", err)
	}
	if kind == types.Unknown || (kind != qoiType && !filetype.IsImage(header)) {
		return "", ErrUnsupportedFormat
	}
	return kind.Extension, nil
}

// Load reads the image file at path, detecting the format from its content.
func Load(path string) (*ImageBuf, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: read file: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from the given reader, auto-detecting the format.
// PNG, JPEG, GIF, BMP, TIFF, WebP and QOI are understood.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := stdimage.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img), nil
}

// Save writes b to path, choosing the encoding from the file extension.
func (b *ImageBuf) Save(path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !CanEncode(format) {
		return fmt.Errorf("image: save %s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := b.Encode(f, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// CanEncode reports whether Encode supports the named format.
func CanEncode(format string) bool {
	switch format {
	case "png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "qoi":
		return true
	}
	return false
}

// Encode writes b to w in the named format (an extension without the dot).
func (b *ImageBuf) Encode(w io.Writer, format string) error {
	img := b.ToStdImage()

	var err error
	switch format {
	case "png":
		err = png.Encode(w, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case "gif":
		err = gif.Encode(w, img, nil)
	case "bmp":
		err = bmp.Encode(w, img)
	case "tif", "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "qoi":
		err = qoi.Encode(w, img)
	default:
		return fmt.Errorf("image: encode %q: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", format, err)
	}
	return nil
}

// EncodePNG encodes the image as PNG to the given writer.
func (b *ImageBuf) EncodePNG(w io.Writer) error {
	return b.Encode(w, "png")
}

// FromStdImage creates an ImageBuf from a standard library image.Image.
// Opaque images become RGB8, everything else RGBA8 with straight alpha.
func FromStdImage(img stdimage.Image) *ImageBuf {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	format := FormatRGBA8
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		format = FormatRGB8
	}

	// NRGBA already holds straight alpha.
	if nrgba, ok := img.(*stdimage.NRGBA); ok {
		buf, _ := NewImageBuf(width, height, format)
		bpp := format.BytesPerPixel()
		for y := range height {
			src := nrgba.Pix[nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			row := buf.RowBytes(y)
			for x := range width {
				copy(row[x*bpp:(x+1)*bpp], src[x*4:x*4+bpp])
			}
		}
		return buf
	}

	return fromRGBA(clone.AsRGBA(img), format)
}

// ToStdImage converts the buffer to an *image.NRGBA. RGB8 pixels are
// expanded with full opacity.
func (b *ImageBuf) ToStdImage() *stdimage.NRGBA {
	return toNRGBA(b)
}
