package linesort

import (
	"math"
	"slices"

	"github.com/gogpu/pixelsort/internal/colorkey"
	"github.com/gogpu/pixelsort/internal/rng"
	"github.com/gogpu/pixelsort/internal/span"
)

// sortBlocked sorts fixed-size groups of BlockSize pixels as units.
// Trailing pixels that do not fill a whole group stay in place.
func sortBlocked(out, line []byte, channels int, mask []bool, opts Options, rnd rng.Rand) {
	bs := opts.BlockSize
	groups := len(line) / channels / bs
	if groups < 2 {
		return
	}
	groupBytes := bs * channels

	keys := make([]float64, groups)
	reps := make([]byte, groups*channels)
	var vals []float64
	for g := range groups {
		pix := line[g*groupBytes : (g+1)*groupBytes]
		vals = colorkey.Values(pix, channels, opts.Key, vals)
		var sum float64
		for _, v := range vals {
			sum += v
		}
		keys[g] = sum / float64(bs)
		meanPixel(reps[g*channels:(g+1)*channels], pix, channels)
	}

	cfg := opts.Span
	cfg.Min = max(1, cfg.Min/bs)
	if cfg.Max > 0 {
		cfg.Max = max(1, cfg.Max/bs)
	}

	for _, s := range span.Detect(reps, channels, cfg, rnd) {
		if mask != nil && !slices.Contains(mask[s.Start*bs:s.End*bs], true) {
			continue
		}
		if s.Len() < 2 {
			continue
		}

		order := argsort(keys[s.Start:s.End], opts.Reverse)
		if opts.Jitter > 0 {
			order = jitterGroups(order, max(1, opts.Jitter/bs), rnd)
		}

		for i, g := range order {
			dst := (s.Start + i) * groupBytes
			src := (s.Start + g) * groupBytes
			copy(out[dst:dst+groupBytes], line[src:src+groupBytes])
		}
	}
}

// jitterGroups perturbs a group order. Each step assigns position i from
// the unperturbed order at j and position j from the unperturbed order at
// i, while earlier writes to the working copy are kept. Because reads come
// from order rather than the working copy, a group can end up placed twice
// and another dropped.
func jitterGroups(order []int, k int, rnd rng.Rand) []int {
	shuffled := slices.Clone(order)
	last := len(order) - 1
	for i := range shuffled {
		j := min(max(i+rng.Offset(rnd, k), 0), last)
		shuffled[i], shuffled[j] = order[j], order[i]
	}
	return shuffled
}

// meanPixel writes the per-channel mean of the packed pixels in pix to dst,
// rounded to 8 bits.
func meanPixel(dst, pix []byte, channels int) {
	n := len(pix) / channels
	for c := range channels {
		var sum int
		for i := range n {
			sum += int(pix[i*channels+c])
		}
		dst[c] = uint8(math.Round(float64(sum) / float64(n)))
	}
}
