package image

// Composite copies the pixels of src into dst wherever mask is set.
// All three must share the same extent, and src and dst a format.
func Composite(dst, src *ImageBuf, mask *Mask) error {
	if dst.format != src.format {
		return ErrInvalidFormat
	}
	if dst.width != src.width || dst.height != src.height ||
		mask.width != dst.width || mask.height != dst.height {
		return ErrSizeMismatch
	}

	bpp := dst.format.BytesPerPixel()
	for i, keep := range mask.data {
		if keep {
			copy(dst.data[i*bpp:(i+1)*bpp], src.data[i*bpp:(i+1)*bpp])
		}
	}
	return nil
}
