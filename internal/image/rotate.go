package image

import (
	stdimage "image"
	"math"

	"golang.org/x/image/draw"
)

// Rotate returns src rotated counter-clockwise by degrees about its centre.
//
// The canvas grows to hold the whole rotated picture; uncovered pixels are
// zero. Pixels are resampled bilinearly, except for multiples of 90° which
// are exact permutations.
func Rotate(src *ImageBuf, degrees float64) *ImageBuf {
	switch normalizeDegrees(degrees) {
	case 0:
		return src.Clone()
	case 90:
		return Rotate90(src)
	case 180:
		return Rotate180(src)
	case 270:
		return Rotate270(src)
	}

	s2d, nw, nh := rotation(src.width, src.height, degrees)
	in := toNRGBA(src)
	out := stdimage.NewRGBA(stdimage.Rect(0, 0, nw, nh))
	draw.BiLinear.Transform(out, s2d.Aff3(), in, in.Bounds(), draw.Src, nil)
	return fromRGBA(out, src.format)
}

// RotateMask returns m rotated counter-clockwise by degrees about its centre,
// using nearest-neighbour sampling. Uncovered cells are excluded.
func RotateMask(m *Mask, degrees float64) *Mask {
	switch normalizeDegrees(degrees) {
	case 0:
		return m.Clone()
	case 90:
		return m.Rotate90()
	case 180:
		return m.Rotate180()
	case 270:
		return m.Rotate270()
	}

	s2d, nw, nh := rotation(m.width, m.height, degrees)
	in := m.ToGray()
	out := stdimage.NewGray(stdimage.Rect(0, 0, nw, nh))
	draw.NearestNeighbor.Transform(out, s2d.Aff3(), in, in.Bounds(), draw.Src, nil)

	dst := NewMask(nw, nh)
	for i, v := range out.Pix {
		dst.data[i] = v > 127
	}
	return dst
}

// CropCenter cuts a width×height window around the centre of src.
// When src is smaller than the window in either direction the result is
// zero-padded on the right and bottom.
func CropCenter(src *ImageBuf, width, height int) *ImageBuf {
	dst, err := NewImageBuf(width, height, src.format)
	if err != nil {
		return nil
	}
	x0 := max(0, src.width/2-width/2)
	y0 := max(0, src.height/2-height/2)
	w := min(width, src.width-x0)
	h := min(height, src.height-y0)
	if w <= 0 || h <= 0 {
		return dst
	}
	_ = dst.Paste(src.Crop(x0, y0, w, h), 0, 0)
	return dst
}

// rotation returns the source-to-destination transform for a
// counter-clockwise turn by degrees together with the expanded canvas size.
func rotation(width, height int, degrees float64) (Affine, int, int) {
	w, h := float64(width), float64(height)
	turn := Rotation(-degrees * math.Pi / 180)
	about := Translate(w/2, h/2).Multiply(turn).Multiply(Translate(-w/2, -h/2))

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, c := range [4][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}} {
		x, y := about.TransformPoint(c[0], c[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	nw := int(math.Ceil(maxX) - math.Floor(minX))
	nh := int(math.Ceil(maxY) - math.Floor(minY))

	s2d := Translate(float64(nw)/2, float64(nh)/2).Multiply(turn).Multiply(Translate(-w/2, -h/2))
	return s2d, nw, nh
}

// normalizeDegrees maps an angle into [0, 360).
func normalizeDegrees(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func toNRGBA(b *ImageBuf) *stdimage.NRGBA {
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, b.width, b.height))
	if b.format == FormatRGBA8 {
		copy(img.Pix, b.data)
		return img
	}
	for i, j := 0, 0; i < len(b.data); i, j = i+3, j+4 {
		img.Pix[j] = b.data[i]
		img.Pix[j+1] = b.data[i+1]
		img.Pix[j+2] = b.data[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// fromRGBA converts premultiplied pixels back to a straight-alpha buffer.
func fromRGBA(img *stdimage.RGBA, format Format) *ImageBuf {
	bounds := img.Bounds()
	dst, _ := NewImageBuf(bounds.Dx(), bounds.Dy(), format)
	bpp := format.BytesPerPixel()
	for i, j := 0, 0; j < len(img.Pix); i, j = i+bpp, j+4 {
		a := img.Pix[j+3]
		if a == 0 {
			continue
		}
		for c := range 3 {
			v := img.Pix[j+c]
			if a != 0xff {
				v = uint8((uint32(v)*0xff + uint32(a)/2) / uint32(a))
			}
			dst.data[i+c] = v
		}
		if bpp == 4 {
			dst.data[i+3] = a
		}
	}
	return dst
}
