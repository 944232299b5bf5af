package pixelsort

import "fmt"

// Region is a rectangle of an image in pixel coordinates.
//
// A region with W <= 0 or H <= 0 stands for the whole image; the zero
// Region is therefore the whole image.
type Region struct {
	X, Y, W, H int
}

// WholeImage is the sentinel region covering every pixel.
var WholeImage = Region{}

// IsWhole reports whether r is the whole-image sentinel.
func (r Region) IsWhole() bool {
	return r.W <= 0 || r.H <= 0
}

// Clamp returns the part of r inside a width×height image.
//
// The origin is clamped to the image and the extent truncated to what
// remains to the right and below it, so the result always holds at least
// one pixel of a non-empty image.
func (r Region) Clamp(width, height int) Region {
	if r.IsWhole() {
		return Region{W: width, H: height}
	}
	x := max(0, min(r.X, width-1))
	y := max(0, min(r.Y, height-1))
	return Region{
		X: x,
		Y: y,
		W: min(r.W, width-x),
		H: min(r.H, height-y),
	}
}

// String returns the region as "x,y,w,h".
func (r Region) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.W, r.H)
}

// ParseRegion parses "x,y,w,h" as produced by String.
func ParseRegion(s string) (Region, error) {
	var r Region
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d", &r.X, &r.Y, &r.W, &r.H); err != nil {
		return Region{}, fmt.Errorf("pixelsort: parse region %q: %w", s, err)
	}
	return r, nil
}
