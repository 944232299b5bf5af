package colorkey

import "math"

// Rec. 601 luma weights shared by the brightness key and threshold detection.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Value computes the sort key of a single pixel.
// Unknown keys fall back to brightness.
func Value(r, g, b uint8, k Key) float64 {
	fr, fg, fb := float64(r), float64(g), float64(b)

	switch k {
	case KeyBrightness:
		return lumaR*fr + lumaG*fg + lumaB*fb
	case KeyHue:
		return Hue(r, g, b)
	case KeySaturation:
		return Saturation(r, g, b)
	case KeyIntensity:
		return (fr + fg + fb) / 3
	case KeyMinimum:
		return min(fr, fg, fb)
	case KeyRed:
		return fr
	case KeyGreen:
		return fg
	case KeyBlue:
		return fb
	default:
		return lumaR*fr + lumaG*fg + lumaB*fb
	}
}

// Values computes the sort key for every pixel in pix, a packed run of
// pixels with the given channel count (3 or 4; channels past the third are
// ignored). The result is written to dst, which is grown as needed, and
// returned.
func Values(pix []byte, channels int, k Key, dst []float64) []float64 {
	n := len(pix) / channels
	dst = grow(dst, n)
	for i := range n {
		p := pix[i*channels : i*channels+3]
		dst[i] = Value(p[0], p[1], p[2], k)
	}
	return dst
}

// Brightness computes the normalized brightness in [0, 1] of every pixel in
// pix. This drives threshold and edge span detection and is distinct from
// the brightness sort key, which stays on the 0-255 scale.
func Brightness(pix []byte, channels int, dst []float64) []float64 {
	n := len(pix) / channels
	dst = grow(dst, n)
	for i := range n {
		p := pix[i*channels : i*channels+3]
		dst[i] = (lumaR*float64(p[0]) + lumaG*float64(p[1]) + lumaB*float64(p[2])) / 255
	}
	return dst
}

// Hue returns the HSV hue of (r, g, b) in degrees, [0, 360).
// Achromatic pixels (max == min) have hue 0.
func Hue(r, g, b uint8) float64 {
	fr, fg, fb := float64(r), float64(g), float64(b)
	maxC := max(fr, fg, fb)
	minC := min(fr, fg, fb)
	delta := maxC - minC
	if delta == 0 {
		return 0
	}

	// Blue wins ties over green, green over red.
	switch maxC {
	case fb:
		return 60 * ((fr-fg)/delta + 4)
	case fg:
		return 60 * ((fb-fr)/delta + 2)
	default:
		h := math.Mod((fg-fb)/delta, 6)
		if h < 0 {
			h += 6
		}
		return 60 * h
	}
}

// Saturation returns the HSV saturation of (r, g, b) in [0, 1].
// Black has saturation 0.
func Saturation(r, g, b uint8) float64 {
	maxC := float64(max(r, g, b))
	if maxC == 0 {
		return 0
	}
	return (maxC - float64(min(r, g, b))) / maxC
}

func grow(dst []float64, n int) []float64 {
	if cap(dst) < n {
		return make([]float64, n)
	}
	return dst[:n]
}
