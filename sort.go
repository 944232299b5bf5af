package pixelsort

import (
	"fmt"

	intImage "github.com/gogpu/pixelsort/internal/image"
	"github.com/gogpu/pixelsort/internal/linesort"
	"github.com/gogpu/pixelsort/internal/span"
)

// Sorter sorts image regions with a fixed random source.
//
// The zero value is not usable; create sorters with NewSorter.
type Sorter struct {
	rnd Rand
}

// NewSorter creates a Sorter with the given options.
func NewSorter(opts ...SorterOption) *Sorter {
	o := defaultSorterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Sorter{rnd: o.rnd}
}

var defaultSorter = NewSorter()

// SortRegion sorts a region of img with the default entropy-seeded sorter.
// See Sorter.SortRegion.
func SortRegion(img *Image, p Params, r Region, mask *Mask) (*Image, error) {
	return defaultSorter.SortRegion(img, p, r, mask)
}

// SortRegion returns a copy of img in which the pixels of region r have been
// sorted according to p. img is never modified.
//
// r is clamped to the image; the whole-image sentinel (W or H <= 0) selects
// every pixel. mask, when non-nil, must have the size of the clamped region
// and limits sorting to its set pixels; pixels outside it keep their values.
//
// Numeric parameters are raised to their lower bounds and the angle is folded
// into [0, 360); upper limits are not enforced here. Errors are returned only for
// malformed input: a nil image (ErrInvalidChannels), a mask of the wrong size
// (ErrMaskShape) or an unknown enum value (ErrInvalidParams).
func (s *Sorter) SortRegion(img *Image, p Params, r Region, mask *Mask) (*Image, error) {
	if img == nil {
		return nil, fmt.Errorf("pixelsort: nil image: %w", ErrInvalidChannels)
	}
	if ch := img.Channels(); ch != 3 && ch != 4 {
		return nil, fmt.Errorf("pixelsort: %d channels: %w", ch, ErrInvalidChannels)
	}
	if !p.Direction.IsValid() || !p.Key.IsValid() || !p.Interval.IsValid() {
		return nil, p.Validate()
	}
	p = p.Normalize()

	reg := r.Clamp(img.Width(), img.Height())
	if !r.IsWhole() && reg != r {
		Logger().Debug("pixelsort: region clamped", "requested", r.String(), "region", reg.String())
	}
	if mask != nil && (mask.Width() != reg.W || mask.Height() != reg.H) {
		return nil, fmt.Errorf("pixelsort: mask %dx%d for region %dx%d: %w",
			mask.Width(), mask.Height(), reg.W, reg.H, ErrMaskShape)
	}

	out := img.Clone()
	region := out.Crop(reg.X, reg.Y, reg.W, reg.H)

	var sorted *Image
	switch {
	case p.Direction == Horizontal && p.Angle != 0:
		var err error
		if sorted, err = s.sortAngled(region, mask, p); err != nil {
			return nil, fmt.Errorf("pixelsort: composite: %w", err)
		}
	case p.Direction == Vertical:
		var turnedMask *Mask
		if mask != nil {
			turnedMask = mask.Rotate90()
		}
		turned := intImage.Rotate90(region)
		s.sortRows(turned, turnedMask, p)
		sorted = intImage.Rotate270(turned)
	default:
		s.sortRows(region, mask, p)
		sorted = region
	}

	if err := out.Paste(sorted, reg.X, reg.Y); err != nil {
		return nil, fmt.Errorf("pixelsort: write region: %w", err)
	}
	return out, nil
}

// sortAngled turns region by -Angle, sorts its rows and turns it back,
// cropping the expanded canvas to the region size. With a mask only masked
// pixels take the sorted values.
func (s *Sorter) sortAngled(region *Image, mask *Mask, p Params) (*Image, error) {
	turned := intImage.Rotate(region, -p.Angle)
	var turnedMask *Mask
	if mask != nil {
		turnedMask = intImage.RotateMask(mask, -p.Angle)
	}
	Logger().Debug("pixelsort: rotated region",
		"angle", p.Angle,
		"width", turned.Width(),
		"height", turned.Height())

	s.sortRows(turned, turnedMask, p)
	back := intImage.CropCenter(intImage.Rotate(turned, p.Angle), region.Width(), region.Height())
	if mask == nil {
		return back, nil
	}
	if err := intImage.Composite(region, back, mask); err != nil {
		return nil, err
	}
	return region, nil
}

// sortRows sorts every row of buf in place.
func (s *Sorter) sortRows(buf *Image, mask *Mask, p Params) {
	opts := lineOptions(p)
	channels := buf.Channels()
	for y := range buf.Height() {
		var rowMask []bool
		if mask != nil {
			rowMask = mask.Row(y)
		}
		row := buf.RowBytes(y)
		copy(row, linesort.Sort(row, channels, rowMask, opts, s.rnd))
	}
}

func lineOptions(p Params) linesort.Options {
	return linesort.Options{
		Key: p.Key,
		Span: span.Config{
			Mode:  p.Interval,
			Lower: p.Lower,
			Upper: p.Upper,
			Min:   p.SpanMin,
			Max:   p.SpanMax,
		},
		BlockSize: p.PixelSize,
		Jitter:    p.Jitter,
		Reverse:   p.Reverse,
	}
}
