package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/pixelsort"
)

type fakeDoc struct {
	img      *pixelsort.Image
	modified int
}

func (d *fakeDoc) Image() *pixelsort.Image { return d.img }
func (d *fakeDoc) MarkModified()           { d.modified++ }

func newDoc(t *testing.T, w, h int) *fakeDoc {
	t.Helper()
	pix := make([]byte, w*h*3)
	for i := range pix {
		pix[i] = uint8((i*53 + 17) % 256)
	}
	img, err := pixelsort.ImageFromPix(pix, w, h, 3)
	require.NoError(t, err)
	return &fakeDoc{img: img}
}

func randomParams() pixelsort.Params {
	p := pixelsort.DefaultParams()
	p.Interval = pixelsort.IntervalRandom
	p.Jitter = 40
	return p
}

func TestSortCommandRedoUndo(t *testing.T) {
	doc := newDoc(t, 16, 12)
	orig := doc.img.Clone()

	cmd, err := NewSortCommand(doc, pixelsort.NewSorter(pixelsort.WithSeed(3)), randomParams(), pixelsort.WholeImage, nil)
	require.NoError(t, err)
	assert.Equal(t, pixelsort.Region{W: 16, H: 12}, cmd.Region())

	require.NoError(t, cmd.Redo())
	sorted := doc.img.Clone()
	assert.False(t, orig.Equal(sorted), "sort left the image unchanged")
	assert.Equal(t, 1, doc.modified)

	require.NoError(t, cmd.Undo())
	assert.True(t, orig.Equal(doc.img), "undo did not restore the original pixels")

	// Later redos replay the cached result instead of drawing new spans.
	require.NoError(t, cmd.Redo())
	assert.True(t, sorted.Equal(doc.img), "redo produced a different result")
	assert.Equal(t, 3, doc.modified)
	assert.Positive(t, cmd.Size())
}

func TestSortCommandSubRegion(t *testing.T) {
	doc := newDoc(t, 20, 10)
	orig := doc.img.Clone()
	r := pixelsort.Region{X: 15, Y: 4, W: 50, H: 3}

	cmd, err := NewSortCommand(doc, nil, pixelsort.DefaultParams(), r, nil)
	require.NoError(t, err)
	assert.Equal(t, pixelsort.Region{X: 15, Y: 4, W: 5, H: 3}, cmd.Region())

	require.NoError(t, cmd.Redo())
	for y := range 10 {
		for x := range 20 {
			if x >= 15 && y >= 4 && y < 7 {
				continue
			}
			assert.Equal(t, orig.PixelBytes(x, y), doc.img.PixelBytes(x, y), "pixel (%d,%d) outside the region changed", x, y)
		}
	}

	require.NoError(t, cmd.Undo())
	assert.True(t, orig.Equal(doc.img))
}

func TestSortCommandSnapshotsAtCreation(t *testing.T) {
	doc := newDoc(t, 8, 8)
	cmd, err := NewSortCommand(doc, nil, pixelsort.DefaultParams(), pixelsort.WholeImage, nil)
	require.NoError(t, err)

	before := doc.img.Clone()
	require.NoError(t, cmd.Redo())
	doc.img.Fill(1, 2, 3, 255)

	require.NoError(t, cmd.Undo())
	assert.True(t, before.Equal(doc.img))
}

func TestSortCommandCopiesMask(t *testing.T) {
	doc := newDoc(t, 6, 4)
	mask := pixelsort.NewMask(6, 4)
	mask.SetRect(0, 0, 3, 4, true)

	cmd, err := NewSortCommand(doc, nil, pixelsort.DefaultParams(), pixelsort.WholeImage, mask)
	require.NoError(t, err)
	mask.Fill(true)

	want, err := pixelsort.SortRegion(doc.img, pixelsort.DefaultParams(), pixelsort.WholeImage, func() *pixelsort.Mask {
		m := pixelsort.NewMask(6, 4)
		m.SetRect(0, 0, 3, 4, true)
		return m
	}())
	require.NoError(t, err)

	require.NoError(t, cmd.Redo())
	assert.True(t, want.Equal(doc.img))
}

func TestSortCommandErrors(t *testing.T) {
	_, err := NewSortCommand(&fakeDoc{}, nil, pixelsort.DefaultParams(), pixelsort.WholeImage, nil)
	assert.ErrorIs(t, err, ErrNoImage)

	doc := newDoc(t, 6, 4)
	cmd, err := NewSortCommand(doc, nil, pixelsort.DefaultParams(), pixelsort.WholeImage, pixelsort.NewMask(2, 2))
	require.NoError(t, err)
	err = cmd.Redo()
	assert.ErrorIs(t, err, pixelsort.ErrMaskShape)
	assert.Zero(t, doc.modified)

	small := newDoc(t, 3, 3)
	doc.img = small.img
	assert.ErrorIs(t, cmd.Undo(), ErrTargetChanged)

	doc.img = nil
	assert.ErrorIs(t, cmd.Undo(), ErrNoImage)
}

// stubCommand records calls and can be told to fail.
type stubCommand struct {
	name    string
	log     *[]string
	failing bool
}

func (c *stubCommand) Name() string { return c.name }

func (c *stubCommand) Redo() error {
	if c.failing {
		return errors.New("boom")
	}
	*c.log = append(*c.log, "redo "+c.name)
	return nil
}

func (c *stubCommand) Undo() error {
	*c.log = append(*c.log, "undo "+c.name)
	return nil
}

func TestStackPushUndoRedo(t *testing.T) {
	var log []string
	s := NewStack()
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.ErrorIs(t, s.Undo(), ErrNothingToUndo)
	assert.ErrorIs(t, s.Redo(), ErrNothingToRedo)

	require.NoError(t, s.Push(&stubCommand{name: "a", log: &log}))
	require.NoError(t, s.Push(&stubCommand{name: "b", log: &log}))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "b", s.UndoName())

	require.NoError(t, s.Undo())
	assert.True(t, s.CanRedo())
	assert.Equal(t, "b", s.RedoName())
	assert.Equal(t, 1, s.Index())

	require.NoError(t, s.Redo())
	assert.False(t, s.CanRedo())
	assert.Equal(t, []string{"redo a", "redo b", "undo b", "redo b"}, log)
}

func TestStackPushDiscardsRedoTail(t *testing.T) {
	var log []string
	s := NewStack()
	require.NoError(t, s.Push(&stubCommand{name: "a", log: &log}))
	require.NoError(t, s.Push(&stubCommand{name: "b", log: &log}))
	require.NoError(t, s.Undo())

	require.NoError(t, s.Push(&stubCommand{name: "c", log: &log}))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.CanRedo())
	assert.Equal(t, "c", s.UndoName())
}

func TestStackPushFailure(t *testing.T) {
	var log []string
	s := NewStack()
	err := s.Push(&stubCommand{name: "bad", log: &log, failing: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.Zero(t, s.Len())
	assert.Empty(t, log)
}

func TestStackLimit(t *testing.T) {
	var log []string
	s := NewStack(WithLimit(2))
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, s.Push(&stubCommand{name: name, log: &log}))
	}
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.Index())

	require.NoError(t, s.Undo())
	require.NoError(t, s.Undo())
	assert.ErrorIs(t, s.Undo(), ErrNothingToUndo)
	assert.Equal(t, "b", s.RedoName())
}

func TestStackClear(t *testing.T) {
	var log []string
	s := NewStack(WithLimit(0))
	require.NoError(t, s.Push(&stubCommand{name: "a", log: &log}))
	s.Clear()
	assert.Zero(t, s.Len())
	assert.False(t, s.CanUndo())
	assert.Equal(t, "", s.UndoName())
}

func TestStackWithSortCommands(t *testing.T) {
	doc := newDoc(t, 10, 6)
	orig := doc.img.Clone()
	s := NewStack()

	sorter := pixelsort.NewSorter(pixelsort.WithSeed(11))
	first, err := NewSortCommand(doc, sorter, randomParams(), pixelsort.Region{W: 5, H: 6}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Push(first))
	afterFirst := doc.img.Clone()

	p := pixelsort.DefaultParams()
	p.Direction = pixelsort.Vertical
	second, err := NewSortCommand(doc, sorter, p, pixelsort.WholeImage, nil)
	require.NoError(t, err)
	require.NoError(t, s.Push(second))

	require.NoError(t, s.Undo())
	assert.True(t, afterFirst.Equal(doc.img))
	require.NoError(t, s.Undo())
	assert.True(t, orig.Equal(doc.img))
	require.NoError(t, s.Redo())
	assert.True(t, afterFirst.Equal(doc.img))
}
