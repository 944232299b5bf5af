// Package linesort reorders the pixels of a single row or column.
//
// A line is a packed run of pixels with 3 or 4 channels. Sort detects spans
// on the line, orders each span by a color key and returns a new line; the
// input is never modified.
package linesort

import (
	"slices"

	"github.com/gogpu/pixelsort/internal/colorkey"
	"github.com/gogpu/pixelsort/internal/rng"
	"github.com/gogpu/pixelsort/internal/span"
)

// Options controls how a line is sorted.
type Options struct {
	// Key is the color property pixels are ordered by.
	Key colorkey.Key

	// Span configures span detection.
	Span span.Config

	// BlockSize moves pixels in groups of this many. Values <= 1 sort
	// individual pixels.
	BlockSize int

	// Jitter is the maximum displacement of the post-sort swap
	// perturbation. Zero disables it.
	Jitter int

	// Reverse sorts in descending key order.
	Reverse bool
}

// Sort returns a copy of line with every detected span reordered.
//
// mask, when non-nil, must have one entry per pixel; only positions where
// it is true take part in sorting and the rest keep their original pixels.
// rnd drives random spans and jitter; nil selects the global source.
func Sort(line []byte, channels int, mask []bool, opts Options, rnd rng.Rand) []byte {
	out := slices.Clone(line)
	n := len(line) / channels
	if n == 0 {
		return out
	}
	if rnd == nil {
		rnd = rng.Global()
	}
	if opts.BlockSize > 1 {
		sortBlocked(out, line, channels, mask, opts, rnd)
		return out
	}

	var (
		keys    []float64
		indices []int
		picked  []byte
	)
	for _, s := range span.Detect(line, channels, opts.Span, rnd) {
		indices = indices[:0]
		for i := s.Start; i < s.End; i++ {
			if mask == nil || mask[i] {
				indices = append(indices, i)
			}
		}
		if len(indices) < 2 {
			continue
		}

		picked = picked[:0]
		for _, i := range indices {
			picked = append(picked, line[i*channels:(i+1)*channels]...)
		}
		keys = colorkey.Values(picked, channels, opts.Key, keys)

		order := argsort(keys, opts.Reverse)
		if opts.Jitter > 0 {
			jitter(order, opts.Jitter, rnd)
		}

		for dst, src := range order {
			copy(out[indices[dst]*channels:], picked[src*channels:(src+1)*channels])
		}
	}

	return out
}

// argsort returns the stable ascending permutation of keys, reversed when
// desc is set.
func argsort(keys []float64, desc bool) []int {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case keys[a] < keys[b]:
			return -1
		case keys[a] > keys[b]:
			return 1
		default:
			return 0
		}
	})
	if desc {
		slices.Reverse(order)
	}
	return order
}

// jitter softens a sorted order with n independent swaps: element i is
// exchanged with a neighbour up to k positions away. Later swaps may undo
// earlier ones.
func jitter(order []int, k int, rnd rng.Rand) {
	last := len(order) - 1
	for i := range order {
		j := min(max(i+rng.Offset(rnd, k), 0), last)
		order[i], order[j] = order[j], order[i]
	}
}
