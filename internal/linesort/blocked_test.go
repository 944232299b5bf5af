package linesort

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/gogpu/pixelsort/internal/colorkey"
	"github.com/gogpu/pixelsort/internal/rng"
	"github.com/gogpu/pixelsort/internal/span"
)

func TestBlockedTwoGroups(t *testing.T) {
	// Two groups of three; the brighter group comes first and must move
	// behind the darker one with its internal order intact.
	line := grayLine(200, 250, 210, 10, 30, 20)
	opts := noneOpts
	opts.BlockSize = 3
	got := Sort(line, 3, nil, opts, rng.New(1))
	want := grayLine(10, 30, 20, 200, 250, 210)
	if !bytes.Equal(got, want) {
		t.Errorf("Sort(blocked) = %v, want %v", got, want)
	}
}

func TestBlockedRemainderUntouched(t *testing.T) {
	line := grayLine(200, 201, 10, 11, 99)
	opts := noneOpts
	opts.BlockSize = 2
	got := Sort(line, 3, nil, opts, rng.New(1))
	want := grayLine(10, 11, 200, 201, 99)
	if !bytes.Equal(got, want) {
		t.Errorf("Sort(blocked) = %v, want %v", got, want)
	}
}

func TestBlockedSingleGroup(t *testing.T) {
	line := grayLine(9, 1, 5)
	opts := noneOpts
	opts.BlockSize = 3
	if got := Sort(line, 3, nil, opts, rng.New(1)); !bytes.Equal(got, line) {
		t.Errorf("Sort(one group) = %v, want unchanged", got)
	}
}

func TestBlockedReverse(t *testing.T) {
	line := grayLine(1, 2, 50, 51, 9, 8)
	opts := noneOpts
	opts.BlockSize = 2
	opts.Reverse = true
	got := Sort(line, 3, nil, opts, rng.New(1))
	want := grayLine(50, 51, 9, 8, 1, 2)
	if !bytes.Equal(got, want) {
		t.Errorf("Sort(blocked, reverse) = %v, want %v", got, want)
	}
}

func TestBlockedMaskSuppressesWholeSpan(t *testing.T) {
	line := grayLine(200, 250, 10, 30)
	opts := noneOpts
	opts.BlockSize = 2

	none := []bool{false, false, false, false}
	if got := Sort(line, 3, none, opts, rng.New(1)); !bytes.Equal(got, line) {
		t.Errorf("Sort with empty mask = %v, want unchanged", got)
	}

	// A single masked pixel anywhere in the span enables the whole span,
	// including unmasked pixels.
	one := []bool{false, false, false, true}
	got := Sort(line, 3, one, opts, rng.New(1))
	want := grayLine(10, 30, 200, 250)
	if !bytes.Equal(got, want) {
		t.Errorf("Sort with one masked pixel = %v, want %v", got, want)
	}
}

func TestBlockedSpanLimitsScaled(t *testing.T) {
	// Eight pixels in four groups of two; SpanMax 4 allows two groups per
	// span, so each half is sorted independently.
	line := grayLine(90, 90, 10, 10, 80, 80, 20, 20)
	opts := noneOpts
	opts.BlockSize = 2
	opts.Span.Max = 4
	got := Sort(line, 3, nil, opts, rng.New(1))
	want := grayLine(10, 10, 90, 90, 20, 20, 80, 80)
	if !bytes.Equal(got, want) {
		t.Errorf("Sort(blocked, max=4) = %v, want %v", got, want)
	}

	// SpanMax smaller than the block size still allows one group per span.
	opts.Span.Max = 1
	if got := Sort(line, 3, nil, opts, rng.New(1)); !bytes.Equal(got, line) {
		t.Errorf("Sort(blocked, max=1) = %v, want unchanged", got)
	}
}

func TestBlockedGroupKeyIsMean(t *testing.T) {
	// Group A mean red 100 (0 and 200), group B mean red 90.
	line := []byte{
		0, 0, 0, 200, 0, 0,
		90, 0, 0, 90, 0, 0,
	}
	opts := noneOpts
	opts.Key = colorkey.KeyRed
	opts.BlockSize = 2
	got := Sort(line, 3, nil, opts, rng.New(1))
	want := []byte{
		90, 0, 0, 90, 0, 0,
		0, 0, 0, 200, 0, 0,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Sort(blocked mean key) = %v, want %v", got, want)
	}
}

func TestBlockedThresholdUsesRepresentative(t *testing.T) {
	// Representatives: (0+255)/2 -> 128 (in range), 255 (out), 128 (in), 0 (out).
	line := grayLine(0, 255, 255, 255, 128, 128, 0, 0)
	opts := noneOpts
	opts.BlockSize = 2
	opts.Span = span.Config{Mode: span.ModeThreshold, Lower: 0.25, Upper: 0.8}
	got := Sort(line, 3, nil, opts, rng.New(1))
	if !bytes.Equal(got, line) {
		t.Errorf("Sort(blocked threshold) = %v, want unchanged (no span of two groups)", got)
	}
}

func TestMeanPixelRounds(t *testing.T) {
	dst := make([]byte, 3)
	meanPixel(dst, []byte{0, 1, 2, 1, 2, 2}, 3)
	want := []byte{1, 2, 2}
	if !bytes.Equal(dst, want) {
		t.Errorf("meanPixel = %v, want %v", dst, want)
	}
}

// jitterGroups reads swap sources from the unperturbed order while writing
// into the working copy, so it can duplicate a group and drop another. This
// test pins that behavior.
func TestJitterGroupsDuplicates(t *testing.T) {
	order := []int{0, 1, 2}
	// Offsets +1, +1, 0.
	got := jitterGroups(order, 1, &seqRand{vals: []int{2, 2, 1}})
	want := []int{1, 2, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("jitterGroups = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(order, []int{0, 1, 2}) {
		t.Errorf("jitterGroups modified its input: %v", order)
	}
}

func TestBlockedJitterScaled(t *testing.T) {
	// Jitter 1 with block size 4 is scaled to max(1, 1/4) = 1 group.
	r := &seqRand{vals: []int{1}}
	line := grayLine(90, 90, 90, 90, 10, 10, 10, 10)
	opts := noneOpts
	opts.BlockSize = 4
	opts.Jitter = 1
	got := Sort(line, 3, nil, opts, r)
	want := grayLine(10, 10, 10, 10, 90, 90, 90, 90)
	if !bytes.Equal(got, want) {
		t.Errorf("Sort(blocked jitter, zero offsets) = %v, want %v", got, want)
	}
	if r.i != 2 {
		t.Errorf("jitter drew %d offsets, want 2 (one per group)", r.i)
	}
}
