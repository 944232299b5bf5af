// Package history provides undoable sort commands and an undo stack.
//
// A SortCommand runs the sort once and keeps compressed snapshots of the
// affected rectangle before and after, so undo and redo are cheap copies
// rather than recomputations. Random spans and jitter therefore come back
// exactly as they were first drawn.
package history

import (
	"errors"
	"fmt"

	"github.com/gogpu/pixelsort"
)

var (
	// ErrNoImage is returned when the target holds no image.
	ErrNoImage = errors.New("history: target has no image")

	// ErrTargetChanged is returned when the target image no longer matches
	// the snapshots taken when the command was created.
	ErrTargetChanged = errors.New("history: target image changed shape")
)

// Target is the document a command edits in place.
type Target interface {
	// Image returns the current image, or nil.
	Image() *pixelsort.Image

	// MarkModified flags the document as having unsaved changes.
	MarkModified()
}

// Command is an undoable edit.
type Command interface {
	// Redo applies the edit. The first call performs it.
	Redo() error

	// Undo reverts the edit.
	Undo() error

	// Name describes the edit for menus and logs.
	Name() string
}

// SortCommand sorts a region of a target image.
type SortCommand struct {
	target Target
	sorter *pixelsort.Sorter
	params pixelsort.Params
	mask   *pixelsort.Mask
	rect   pixelsort.Region

	before snapshot
	after  *snapshot
}

// NewSortCommand snapshots the region of target's image that r selects and
// returns a command that sorts it. The mask and params are copied. A nil
// sorter selects the default one.
func NewSortCommand(target Target, sorter *pixelsort.Sorter, p pixelsort.Params, r pixelsort.Region, mask *pixelsort.Mask) (*SortCommand, error) {
	img := target.Image()
	if img == nil {
		return nil, ErrNoImage
	}
	if sorter == nil {
		sorter = pixelsort.NewSorter()
	}

	rect := r.Clamp(img.Width(), img.Height())
	before, err := take(img, rect)
	if err != nil {
		return nil, err
	}

	c := &SortCommand{
		target: target,
		sorter: sorter,
		params: p.Copy(),
		rect:   rect,
		before: before,
	}
	if mask != nil {
		c.mask = mask.Clone()
	}
	return c, nil
}

// Name implements Command.
func (c *SortCommand) Name() string {
	return fmt.Sprintf("Pixel Sort (%v, %v)", c.params.Key, c.params.Interval)
}

// Region returns the clamped rectangle the command edits.
func (c *SortCommand) Region() pixelsort.Region {
	return c.rect
}

// Size returns the compressed size of the snapshots in bytes.
func (c *SortCommand) Size() int {
	n := c.before.size()
	if c.after != nil {
		n += c.after.size()
	}
	return n
}

// Redo implements Command. The first call sorts the region; later calls
// restore the cached result.
func (c *SortCommand) Redo() error {
	img := c.target.Image()
	if img == nil {
		return ErrNoImage
	}

	if c.after != nil {
		if err := c.after.restore(img); err != nil {
			return err
		}
		c.target.MarkModified()
		return nil
	}

	sorted, err := c.sorter.SortRegion(img, c.params, c.rect, c.mask)
	if err != nil {
		return fmt.Errorf("history: sort: %w", err)
	}
	after, err := take(sorted, c.rect)
	if err != nil {
		return err
	}
	if err := after.restore(img); err != nil {
		return err
	}
	c.after = &after
	c.target.MarkModified()

	pixelsort.Logger().Debug("history: sort applied",
		"region", c.rect.String(),
		"snapshot_bytes", c.Size())
	return nil
}

// Undo implements Command.
func (c *SortCommand) Undo() error {
	img := c.target.Image()
	if img == nil {
		return ErrNoImage
	}
	if err := c.before.restore(img); err != nil {
		return err
	}
	c.target.MarkModified()
	return nil
}
