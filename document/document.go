// Package document holds the image being edited together with the file it
// came from and whether it has unsaved changes.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/pixelsort"
	intImage "github.com/gogpu/pixelsort/internal/image"
)

var (
	// ErrNoImage is returned when saving a document with nothing loaded.
	ErrNoImage = errors.New("document: no image loaded")

	// ErrNoPath is returned when saving a document that has no file yet.
	ErrNoPath = errors.New("document: no path specified")
)

// Document is an image plus its file and modification state.
//
// It satisfies history.Target, so sort commands edit its image in place.
//
// Thread safety: Document is not safe for concurrent use.
type Document struct {
	img      *pixelsort.Image
	path     string
	source   string
	modified bool

	keepAlpha bool
}

// New creates an empty document.
func New(opts ...Option) *Document {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Document{keepAlpha: o.keepAlpha}
}

// Load replaces the document with the image at path. The encoding is
// detected from the file content. Unless the document keeps alpha, the
// image is flattened to RGB. A loaded document is unmodified.
func (d *Document) Load(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("document: load: %w", err)
	}
	source, err := intImage.Sniff(data)
	if err != nil {
		return fmt.Errorf("document: load %s: %w", path, err)
	}
	img, err := intImage.DecodeBytes(data)
	if err != nil {
		return fmt.Errorf("document: load %s: %w", path, err)
	}
	if !d.keepAlpha && img.Format() != pixelsort.FormatRGB8 {
		if img, err = img.Convert(pixelsort.FormatRGB8); err != nil {
			return fmt.Errorf("document: load %s: %w", path, err)
		}
	}

	d.img = img
	d.path = path
	d.source = source
	d.modified = false

	pixelsort.Logger().Info("document: loaded",
		"path", path,
		"format", source,
		"width", img.Width(),
		"height", img.Height())
	return nil
}

// Save writes the image back to the file it was last loaded from or saved
// to, and clears the modified flag.
func (d *Document) Save() error {
	return d.SaveAs(d.path)
}

// SaveAs writes the image to path, which becomes the document's file, and
// clears the modified flag. The encoding follows the extension.
func (d *Document) SaveAs(path string) error {
	if d.img == nil {
		return ErrNoImage
	}
	if path == "" {
		return ErrNoPath
	}
	if err := d.img.Save(path); err != nil {
		return fmt.Errorf("document: save: %w", err)
	}

	d.path = path
	d.modified = false
	pixelsort.Logger().Info("document: saved", "path", path)
	return nil
}

// Close forgets the image, its file and its state.
func (d *Document) Close() {
	d.img = nil
	d.path = ""
	d.source = ""
	d.modified = false
}

// Image returns the current image, or nil. Edits made through the returned
// pointer should be followed by MarkModified.
func (d *Document) Image() *pixelsort.Image {
	return d.img
}

// SetImage replaces the image and marks the document modified.
func (d *Document) SetImage(img *pixelsort.Image) {
	d.img = img
	d.modified = true
}

// IsLoaded reports whether the document holds an image.
func (d *Document) IsLoaded() bool {
	return d.img != nil
}

// Width returns the image width, or 0 when nothing is loaded.
func (d *Document) Width() int {
	if d.img == nil {
		return 0
	}
	return d.img.Width()
}

// Height returns the image height, or 0 when nothing is loaded.
func (d *Document) Height() int {
	if d.img == nil {
		return 0
	}
	return d.img.Height()
}

// Path returns the document's file, or "".
func (d *Document) Path() string {
	return d.path
}

// SourceFormat returns the encoding the image was loaded from ("png",
// "jpg", ...), or "" for an image that was never loaded from a file.
func (d *Document) SourceFormat() string {
	return d.source
}

// Modified reports whether there are unsaved changes.
func (d *Document) Modified() bool {
	return d.modified
}

// MarkModified flags unsaved changes.
func (d *Document) MarkModified() {
	d.modified = true
}

// MarkSaved clears the modified flag without writing anything.
func (d *Document) MarkSaved() {
	d.modified = false
}
