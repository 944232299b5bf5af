package pixelsort

import (
	"errors"

	intImage "github.com/gogpu/pixelsort/internal/image"
)

var (
	// ErrInvalidChannels is returned when an image is nil or its pixels do
	// not have 3 or 4 channels.
	ErrInvalidChannels = intImage.ErrInvalidChannels

	// ErrMaskShape is returned when a mask does not match the extent of the
	// clamped region it applies to.
	ErrMaskShape = errors.New("pixelsort: mask does not match region")

	// ErrInvalidParams is returned by Params.Validate for out-of-range fields.
	ErrInvalidParams = errors.New("pixelsort: invalid parameters")

	// ErrUnsupportedFormat is returned when an image file cannot be read or
	// written in the requested encoding.
	ErrUnsupportedFormat = intImage.ErrUnsupportedFormat
)
