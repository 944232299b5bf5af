package image

// Quarter turns are exact pixel permutations. Rotate90 turns the picture
// counter-clockwise; its rows are the source columns read from the
// rightmost column to the leftmost, each top to bottom.

// Rotate90 returns b rotated 90° counter-clockwise.
func Rotate90(b *ImageBuf) *ImageBuf {
	dst, _ := NewImageBuf(b.height, b.width, b.format)
	permute(b, dst, func(x, y int) (int, int) { return y, b.width - 1 - x })
	return dst
}

// Rotate180 returns b rotated by half a turn.
func Rotate180(b *ImageBuf) *ImageBuf {
	dst, _ := NewImageBuf(b.width, b.height, b.format)
	permute(b, dst, func(x, y int) (int, int) { return b.width - 1 - x, b.height - 1 - y })
	return dst
}

// Rotate270 returns b rotated 90° clockwise.
func Rotate270(b *ImageBuf) *ImageBuf {
	dst, _ := NewImageBuf(b.height, b.width, b.format)
	permute(b, dst, func(x, y int) (int, int) { return b.height - 1 - y, x })
	return dst
}

// permute copies every pixel (x, y) of src to to(x, y) in dst.
func permute(src, dst *ImageBuf, to func(x, y int) (int, int)) {
	bpp := src.format.BytesPerPixel()
	for y := range src.height {
		row := src.RowBytes(y)
		for x := range src.width {
			dx, dy := to(x, y)
			copy(dst.data[dst.PixelOffset(dx, dy):], row[x*bpp:(x+1)*bpp])
		}
	}
}

// Rotate90 returns the mask rotated 90° counter-clockwise.
func (m *Mask) Rotate90() *Mask {
	dst := NewMask(m.height, m.width)
	m.permute(dst, func(x, y int) (int, int) { return y, m.width - 1 - x })
	return dst
}

// Rotate180 returns the mask rotated by half a turn.
func (m *Mask) Rotate180() *Mask {
	dst := NewMask(m.width, m.height)
	m.permute(dst, func(x, y int) (int, int) { return m.width - 1 - x, m.height - 1 - y })
	return dst
}

// Rotate270 returns the mask rotated 90° clockwise.
func (m *Mask) Rotate270() *Mask {
	dst := NewMask(m.height, m.width)
	m.permute(dst, func(x, y int) (int, int) { return m.height - 1 - y, x })
	return dst
}

func (m *Mask) permute(dst *Mask, to func(x, y int) (int, int)) {
	for y := range m.height {
		for x := range m.width {
			dx, dy := to(x, y)
			dst.data[dy*dst.width+dx] = m.data[y*m.width+x]
		}
	}
}
