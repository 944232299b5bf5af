package image

import (
	"bytes"
	"errors"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrInvalidChannels is returned when a pixel layout does not have 3 or 4 channels.
	ErrInvalidChannels = errors.New("image: pixels must have 3 or 4 channels")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")

	// ErrSizeMismatch is returned when two buffers that must share an extent do not.
	ErrSizeMismatch = errors.New("image: size mismatch")
)

// ImageBuf is a dense row-major 8-bit pixel buffer.
//
// Rows are packed without padding, so the buffer is an H×W×C byte grid
// with C = 3 (RGB) or C = 4 (RGBA). The channel count is fixed for the
// lifetime of the buffer.
//
// Thread safety: ImageBuf is safe for concurrent read access. Write
// operations require external synchronization.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	format Format
}

// NewImageBuf creates a zeroed image buffer with the given dimensions and format.
// Returns an error if dimensions are invalid or format is unknown.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	return &ImageBuf{
		data:   make([]byte, format.ImageBytes(width, height)),
		width:  width,
		height: height,
		format: format,
	}, nil
}

// FromRaw creates an ImageBuf from existing data without copying.
// The caller must ensure data remains valid for the lifetime of the ImageBuf.
func FromRaw(data []byte, width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	requiredSize := format.ImageBytes(width, height)
	if len(data) < requiredSize {
		return nil, ErrDataTooSmall
	}

	return &ImageBuf{
		data:   data[:requiredSize],
		width:  width,
		height: height,
		format: format,
	}, nil
}

// FromPix creates an ImageBuf holding a copy of pix, an H×W×channels byte grid.
func FromPix(pix []byte, width, height, channels int) (*ImageBuf, error) {
	format, err := FormatForChannels(channels)
	if err != nil {
		return nil, err
	}
	b, err := NewImageBuf(width, height, format)
	if err != nil {
		return nil, err
	}
	if len(pix) < len(b.data) {
		return nil, ErrDataTooSmall
	}
	copy(b.data, pix)
	return b, nil
}

// Clone creates a deep copy of the image buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	newData := make([]byte, len(b.data))
	copy(newData, b.data)

	return &ImageBuf{
		data:   newData,
		width:  b.width,
		height: b.height,
		format: b.format,
	}
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Format returns the pixel format.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Channels returns the number of bytes per pixel (3 or 4).
func (b *ImageBuf) Channels() int {
	return b.format.Channels()
}

// Stride returns the number of bytes per row.
func (b *ImageBuf) Stride() int {
	return b.format.RowBytes(b.width)
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw pixel data slice.
// Modifying this data will affect the image.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	stride := b.Stride()
	return b.data[y*stride : (y+1)*stride]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.Stride() + x*b.format.BytesPerPixel()
}

// PixelBytes returns a slice of the raw bytes for pixel (x, y).
// Returns nil if coordinates are out of bounds.
func (b *ImageBuf) PixelBytes(x, y int) []byte {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return nil
	}
	bpp := b.format.BytesPerPixel()
	return b.data[offset : offset+bpp]
}

// SetPixelBytes sets the raw bytes for pixel (x, y).
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetPixelBytes(x, y int, pixel []byte) error {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return ErrOutOfBounds
	}
	bpp := b.format.BytesPerPixel()
	copy(b.data[offset:offset+bpp], pixel)
	return nil
}

// GetRGBA returns the color at (x, y) as (r, g, b, a) in 0-255 range.
// For RGB8, a=255. Returns (0,0,0,0) if coordinates are out of bounds.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	pixel := b.PixelBytes(x, y)
	if pixel == nil {
		return 0, 0, 0, 0
	}
	if b.format == FormatRGB8 {
		return pixel[0], pixel[1], pixel[2], 255
	}
	return pixel[0], pixel[1], pixel[2], pixel[3]
}

// SetRGBA sets the color at (x, y) from (r, g, b, a) in 0-255 range.
// Alpha is dropped for RGB8. Returns ErrOutOfBounds if coordinates are
// outside image bounds.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return ErrOutOfBounds
	}
	b.data[offset] = r
	b.data[offset+1] = g
	b.data[offset+2] = bl
	if b.format == FormatRGBA8 {
		b.data[offset+3] = a
	}
	return nil
}

// Fill sets all pixels to the given RGBA color.
func (b *ImageBuf) Fill(r, g, bl, a uint8) {
	for y := range b.height {
		for x := range b.width {
			_ = b.SetRGBA(x, y, r, g, bl, a)
		}
	}
}

// Crop returns a copy of the rectangle (x, y, width, height).
// Returns nil if the rectangle is empty or not fully inside the image.
func (b *ImageBuf) Crop(x, y, width, height int) *ImageBuf {
	if x < 0 || y < 0 || width <= 0 || height <= 0 {
		return nil
	}
	if x+width > b.width || y+height > b.height {
		return nil
	}

	dst, _ := NewImageBuf(width, height, b.format)
	bpp := b.format.BytesPerPixel()
	for row := range height {
		src := b.RowBytes(y + row)[x*bpp : (x+width)*bpp]
		copy(dst.RowBytes(row), src)
	}
	return dst
}

// Paste copies src into b with its top-left corner at (x, y).
// Pixels falling outside b are skipped. Both buffers must share a format.
func (b *ImageBuf) Paste(src *ImageBuf, x, y int) error {
	if src.format != b.format {
		return ErrInvalidFormat
	}
	bpp := b.format.BytesPerPixel()
	x0, x1 := max(x, 0), min(x+src.width, b.width)
	if x0 >= x1 {
		return nil
	}
	for row := range src.height {
		dy := y + row
		if dy < 0 || dy >= b.height {
			continue
		}
		srcRow := src.RowBytes(row)[(x0-x)*bpp : (x1-x)*bpp]
		copy(b.RowBytes(dy)[x0*bpp:x1*bpp], srcRow)
	}
	return nil
}

// Equal reports whether b and other have the same format, extent and pixels.
func (b *ImageBuf) Equal(other *ImageBuf) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.format == other.format &&
		b.width == other.width &&
		b.height == other.height &&
		bytes.Equal(b.data, other.data)
}

// ByteSize returns the total size of the image data in bytes.
func (b *ImageBuf) ByteSize() int {
	return len(b.data)
}

// IsEmpty returns true if the image has zero dimensions.
func (b *ImageBuf) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}

// Convert returns a copy of b in format f. Converting RGBA to RGB drops the
// alpha channel without compositing; RGB to RGBA sets alpha to 255.
func (b *ImageBuf) Convert(f Format) (*ImageBuf, error) {
	if !f.IsValid() {
		return nil, ErrInvalidFormat
	}
	if f == b.format {
		return b.Clone(), nil
	}
	dst, err := NewImageBuf(b.width, b.height, f)
	if err != nil {
		return nil, err
	}
	if f.HasAlpha() {
		dst.Fill(0, 0, 0, 255)
	}
	n := min(b.format.Channels(), f.Channels())
	sbpp, dbpp := b.format.BytesPerPixel(), f.BytesPerPixel()
	for i, j := 0, 0; i < len(b.data); i, j = i+sbpp, j+dbpp {
		copy(dst.data[j:j+n], b.data[i:i+n])
	}
	return dst, nil
}
