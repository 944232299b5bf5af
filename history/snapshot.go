package history

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/pixelsort"
)

// snapshot is a zstd-compressed copy of one rectangle of an image.
type snapshot struct {
	rect   pixelsort.Region
	format pixelsort.Format
	data   []byte
}

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

// codec returns the shared encoder and decoder. EncodeAll and DecodeAll are
// safe for concurrent use.
func codec() (*zstd.Encoder, *zstd.Decoder, error) {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil)
	})
	return encoder, decoder, codecErr
}

// take captures rect (already clamped) of img.
func take(img *pixelsort.Image, rect pixelsort.Region) (snapshot, error) {
	enc, _, err := codec()
	if err != nil {
		return snapshot{}, fmt.Errorf("history: init zstd: %w", err)
	}
	region := img.Crop(rect.X, rect.Y, rect.W, rect.H)
	if region == nil {
		return snapshot{}, fmt.Errorf("history: region %v outside %dx%d image", rect, img.Width(), img.Height())
	}
	return snapshot{
		rect:   rect,
		format: img.Format(),
		data:   enc.EncodeAll(region.Data(), nil),
	}, nil
}

// restore writes the snapshot back into img.
func (s snapshot) restore(img *pixelsort.Image) error {
	if img.Format() != s.format {
		return fmt.Errorf("history: snapshot is %v, image is %v: %w", s.format, img.Format(), ErrTargetChanged)
	}
	if s.rect.X+s.rect.W > img.Width() || s.rect.Y+s.rect.H > img.Height() {
		return fmt.Errorf("history: region %v outside %dx%d image: %w", s.rect, img.Width(), img.Height(), ErrTargetChanged)
	}
	_, dec, err := codec()
	if err != nil {
		return fmt.Errorf("history: init zstd: %w", err)
	}
	pix, err := dec.DecodeAll(s.data, nil)
	if err != nil {
		return fmt.Errorf("history: decompress snapshot: %w", err)
	}
	region, err := pixelsort.ImageFromPix(pix, s.rect.W, s.rect.H, s.format.Channels())
	if err != nil {
		return fmt.Errorf("history: rebuild snapshot: %w", err)
	}
	return img.Paste(region, s.rect.X, s.rect.Y)
}

// size returns the compressed size in bytes.
func (s snapshot) size() int {
	return len(s.data)
}
