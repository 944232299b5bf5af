package span

import (
	"math"

	"github.com/gogpu/pixelsort/internal/colorkey"
	"github.com/gogpu/pixelsort/internal/rng"
)

// Random-mode length and gap bounds.
const (
	randomMinLen = 10
	randomMinGap = 1
	randomMaxGap = 20
)

// Wave-mode constants.
const (
	waveMinPeriod = 10
	waveMinLen    = 2
	wavePhaseStep = 0.5
)

// Detect returns the ordered, disjoint spans of a line of packed pixels.
// rnd is consulted only by ModeRandom.
func Detect(pix []byte, channels int, cfg Config, rnd rng.Rand) []Span {
	n := len(pix) / channels
	if n == 0 {
		return nil
	}

	var spans []Span
	switch cfg.Mode {
	case ModeThreshold:
		spans = thresholdSpans(colorkey.Brightness(pix, channels, nil), cfg.Lower, cfg.Upper)
	case ModeRandom:
		spans = randomSpans(n, rnd)
	case ModeEdges:
		spans = edgeSpans(colorkey.Brightness(pix, channels, nil))
	case ModeWaves:
		spans = waveSpans(n)
	default:
		spans = []Span{{0, n}}
	}

	return Limit(spans, cfg.Min, cfg.Max)
}

// Limit applies the length post-processing shared by every mode: spans
// shorter than minLen are dropped when minLen > 1, and when maxLen > 0 each
// surviving span is cut into consecutive pieces of at most maxLen pixels.
func Limit(spans []Span, minLen, maxLen int) []Span {
	if minLen > 1 {
		kept := make([]Span, 0, len(spans))
		for _, s := range spans {
			if s.Len() >= minLen {
				kept = append(kept, s)
			}
		}
		spans = kept
	}

	if maxLen > 0 {
		capped := make([]Span, 0, len(spans))
		for _, s := range spans {
			for start := s.Start; start < s.End; {
				end := min(start+maxLen, s.End)
				capped = append(capped, Span{start, end})
				start = end
			}
		}
		spans = capped
	}

	return spans
}

// FromMask returns the maximal runs of true values in in.
// Positions before the first and after the last element count as false,
// so runs touching either end are closed.
func FromMask(in []bool) []Span {
	var spans []Span
	prev := false
	start := 0
	for i, v := range in {
		if v && !prev {
			start = i
		}
		if !v && prev {
			spans = append(spans, Span{start, i})
		}
		prev = v
	}
	if prev {
		spans = append(spans, Span{start, len(in)})
	}
	return spans
}

func thresholdSpans(brightness []float64, lower, upper float64) []Span {
	in := make([]bool, len(brightness))
	for i, b := range brightness {
		in[i] = b >= lower && b <= upper
	}
	return FromMask(in)
}

func randomSpans(n int, rnd rng.Rand) []Span {
	if rnd == nil {
		rnd = rng.Global()
	}
	var spans []Span
	hi := max(randomMinLen+1, n/4)
	for i := 0; i < n; {
		end := min(i+rng.Between(rnd, randomMinLen, hi), n)
		spans = append(spans, Span{i, end})
		i = end + rng.Between(rnd, randomMinGap, max(randomMinGap+1, randomMaxGap))
	}
	return spans
}

func edgeSpans(brightness []float64) []Span {
	n := len(brightness)
	if n < 2 {
		return []Span{{0, n}}
	}

	diffs := make([]float64, n-1)
	var sum float64
	for i := range diffs {
		diffs[i] = math.Abs(brightness[i+1] - brightness[i])
		sum += diffs[i]
	}
	mean := sum / float64(len(diffs))
	var variance float64
	for _, d := range diffs {
		variance += (d - mean) * (d - mean)
	}
	threshold := mean + math.Sqrt(variance/float64(len(diffs)))

	var spans []Span
	prev := 0
	for i, d := range diffs {
		if d > threshold {
			if i+1 > prev {
				spans = append(spans, Span{prev, i + 1})
			}
			prev = i + 1
		}
	}
	if n > prev {
		spans = append(spans, Span{prev, n})
	}
	return spans
}

func waveSpans(n int) []Span {
	period := float64(max(waveMinPeriod, n/8))
	var spans []Span
	phase := 0.0
	for i := 0; i < n; {
		length := max(waveMinLen, int(math.Round(period*(0.5+0.5*math.Sin(phase)))))
		end := min(i+length, n)
		spans = append(spans, Span{i, end})
		i = end
		phase += wavePhaseStep
	}
	return spans
}
