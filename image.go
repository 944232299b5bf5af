package pixelsort

import (
	"image"

	intImage "github.com/gogpu/pixelsort/internal/image"
)

// Image is a public alias for the internal pixel buffer.
// It is a dense row-major grid of 8-bit pixels with 3 (RGB) or 4 (RGBA)
// channels.
type Image = intImage.ImageBuf

// Format represents a pixel storage format.
type Format = intImage.Format

// Pixel formats.
const (
	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB8 = intImage.FormatRGB8

	// FormatRGBA8 is 32-bit RGBA with straight alpha (4 bytes per pixel).
	FormatRGBA8 = intImage.FormatRGBA8
)

// Mask is a boolean inclusion grid. Only pixels where the mask is set take
// part in sorting. A nil *Mask includes every pixel.
type Mask = intImage.Mask

// NewImage creates a zeroed image.
func NewImage(width, height int, format Format) (*Image, error) {
	return intImage.NewImageBuf(width, height, format)
}

// ImageFromPix creates an image holding a copy of pix, a height×width×channels
// byte grid. channels must be 3 or 4.
func ImageFromPix(pix []byte, width, height, channels int) (*Image, error) {
	return intImage.FromPix(pix, width, height, channels)
}

// FromStdImage converts a standard library image. Opaque images become RGB,
// all others RGBA.
func FromStdImage(img image.Image) *Image {
	return intImage.FromStdImage(img)
}

// NewMask creates a mask with every pixel excluded.
func NewMask(width, height int) *Mask {
	return intImage.NewMask(width, height)
}

// MaskFromBools creates a mask from a row-major width×height grid.
func MaskFromBools(values []bool, width, height int) (*Mask, error) {
	return intImage.MaskFromBools(values, width, height)
}

// MaskFromImage builds a mask that includes pixels whose gray level (for
// opaque images) or alpha exceeds 127.
func MaskFromImage(img image.Image) *Mask {
	return intImage.MaskFromImage(img)
}

// LoadImage reads an image file, detecting the format from its content.
func LoadImage(path string) (*Image, error) {
	return intImage.Load(path)
}

// SaveImage writes img to path, choosing the encoding from the extension.
func SaveImage(img *Image, path string) error {
	return img.Save(path)
}
