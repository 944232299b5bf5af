// Package image provides the pixel buffers the sorting engine works on.
//
// ImageBuf stores dense, row-major 8-bit RGB or RGBA pixels. Mask is a
// boolean grid selecting the pixels that take part in sorting. The package
// also implements the geometric helpers the region sorter needs
// (quarter turns, expand-to-fit rotation, centre cropping, masked
// compositing) and the codec boundary used by the command-line tools.
package image

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB8 Format = iota

	// FormatRGBA8 is 32-bit non-premultiplied RGBA (4 bytes per pixel).
	FormatRGBA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatRGB8: {
		BytesPerPixel: 3,
		HasAlpha:      false,
	},
	FormatRGBA8: {
		BytesPerPixel: 4,
		HasAlpha:      true,
	},
}

// FormatForChannels returns the format storing the given number of 8-bit
// channels per pixel.
func FormatForChannels(channels int) (Format, error) {
	switch channels {
	case 3:
		return FormatRGB8, nil
	case 4:
		return FormatRGBA8, nil
	default:
		return 0, ErrInvalidChannels
	}
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// Channels returns the number of 8-bit channels per pixel.
// Every supported format stores one byte per channel.
func (f Format) Channels() int {
	return f.Info().BytesPerPixel
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}
