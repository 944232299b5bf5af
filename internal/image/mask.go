package image

import stdimage "image"

// Mask is a boolean inclusion grid. True marks pixels that take part in
// sorting.
type Mask struct {
	width  int
	height int
	data   []bool
}

// NewMask creates a mask with the given dimensions.
// All values are initialized to false (excluded).
func NewMask(width, height int) *Mask {
	return &Mask{
		width:  max(width, 0),
		height: max(height, 0),
		data:   make([]bool, max(width, 0)*max(height, 0)),
	}
}

// MaskFromBools creates a mask holding a copy of values, a row-major
// width×height grid.
func MaskFromBools(values []bool, width, height int) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(values) < width*height {
		return nil, ErrDataTooSmall
	}
	m := NewMask(width, height)
	copy(m.data, values)
	return m, nil
}

// MaskFromImage builds a mask from an image: a pixel is included when its
// gray level or alpha exceeds 127. Fully opaque images use the gray level,
// everything else the alpha channel.
func MaskFromImage(img stdimage.Image) *Mask {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	mask := NewMask(w, h)

	opaque := true
	if o, ok := img.(interface{ Opaque() bool }); ok {
		opaque = o.Opaque()
	}

	for y := range h {
		for x := range w {
			r, g, b, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			v := a >> 8
			if opaque {
				// 16-bit channels, Rec. 601 weights.
				v = (299*r + 587*g + 114*b) / 1000 >> 8
			}
			mask.data[y*w+x] = v > 127
		}
	}

	return mask
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() stdimage.Rectangle {
	return stdimage.Rect(0, 0, m.width, m.height)
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// At returns the mask value at (x, y).
// Returns false for coordinates outside the mask bounds.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.data[y*m.width+x]
}

// Set sets the mask value at (x, y).
// Coordinates outside the mask bounds are ignored.
func (m *Mask) Set(x, y int, value bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
}

// SetRect sets every value inside the rectangle (x, y, width, height),
// clipped to the mask bounds.
func (m *Mask) SetRect(x, y, width, height int, value bool) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+width, m.width), min(y+height, m.height)
	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			m.data[row*m.width+col] = value
		}
	}
}

// Fill sets every value in the mask.
func (m *Mask) Fill(value bool) {
	for i := range m.data {
		m.data[i] = value
	}
}

// Invert flips every value in the mask.
func (m *Mask) Invert() {
	for i := range m.data {
		m.data[i] = !m.data[i]
	}
}

// Count returns the number of included pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.data {
		if v {
			n++
		}
	}
	return n
}

// Row returns the values of row y. The slice aliases the mask.
// Returns nil if y is out of bounds.
func (m *Mask) Row(y int) []bool {
	if y < 0 || y >= m.height {
		return nil
	}
	return m.data[y*m.width : (y+1)*m.width]
}

// Column returns a copy of the values of column x, top to bottom.
// Returns nil if x is out of bounds.
func (m *Mask) Column(x int) []bool {
	if x < 0 || x >= m.width {
		return nil
	}
	col := make([]bool, m.height)
	for y := range m.height {
		col[y] = m.data[y*m.width+x]
	}
	return col
}

// Clone creates a copy of the mask.
func (m *Mask) Clone() *Mask {
	clone := NewMask(m.width, m.height)
	copy(clone.data, m.data)
	return clone
}

// Data returns the underlying row-major values.
func (m *Mask) Data() []bool {
	return m.data
}

// ToGray renders the mask as an 8-bit image: 255 where included, 0 elsewhere.
func (m *Mask) ToGray() *stdimage.Gray {
	gray := stdimage.NewGray(m.Bounds())
	for i, v := range m.data {
		if v {
			gray.Pix[i] = 255
		}
	}
	return gray
}
