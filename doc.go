// Package pixelsort reorders the pixels of an image region by a color key.
//
// # Overview
//
// Pixel sorting walks every row (or column) of a region, splits it into
// spans and sorts the pixels of each span by a scalar key such as
// brightness or hue. The look is controlled by how spans are found: by a
// brightness band, at random, at strong edges, in sinusoidal waves or as
// the whole line.
//
// # Quick Start
//
//	img, err := pixelsort.LoadImage("in.png")
//	if err != nil {
//	    return err
//	}
//
//	p := pixelsort.DefaultParams()
//	p.Key = pixelsort.KeyHue
//	p.Angle = 30
//
//	out, err := pixelsort.SortRegion(img, p, pixelsort.WholeImage, nil)
//	if err != nil {
//	    return err
//	}
//	return pixelsort.SaveImage(out, "out.png")
//
// # Regions and Masks
//
// A Region is clamped to the image; a zero width or height selects the whole
// image. An optional Mask the size of the clamped region limits sorting to
// its set pixels. Everything outside the mask keeps its exact value.
//
// # Angles
//
// Horizontal sorting may run along any angle: the region is rotated by the
// negative angle onto an expanded canvas, sorted along rows, rotated back
// and cropped around its centre. Vertical sorting ignores the angle.
//
// # Determinism
//
// Random and wave spans and jitter draw from a random source. The package
// level SortRegion uses the global entropy-seeded generator; NewSorter with
// WithSeed gives reproducible output.
//
// # Ownership
//
// Every call copies its inputs and returns a freshly allocated image, so
// callers may hand snapshots to a background goroutine and keep editing
// their own buffers. See the preview and history packages for the
// background and undo integrations.
package pixelsort

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
