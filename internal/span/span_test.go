package span

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/pixelsort/internal/rng"
)

// grayLine builds an RGB line whose normalized brightness is v/255 per pixel.
func grayLine(values ...uint8) []byte {
	pix := make([]byte, 0, len(values)*3)
	for _, v := range values {
		pix = append(pix, v, v, v)
	}
	return pix
}

func TestDetectThreshold(t *testing.T) {
	// Normalized brightness ~ [0,0,0.5,0.5,0.5,0,0,0.9,0.9,0].
	pix := grayLine(0, 0, 128, 128, 128, 0, 0, 230, 230, 0)
	cfg := Config{Mode: ModeThreshold, Lower: 0.25, Upper: 0.8, Min: 1}

	got := Detect(pix, 3, cfg, nil)
	want := []Span{{2, 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect(threshold) = %v, want %v", got, want)
	}
}

func TestDetectThresholdEdgeRuns(t *testing.T) {
	pix := grayLine(128, 128, 0, 128)
	cfg := Config{Mode: ModeThreshold, Lower: 0.25, Upper: 0.8}

	got := Detect(pix, 3, cfg, nil)
	want := []Span{{0, 2}, {3, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect(threshold) = %v, want %v", got, want)
	}
}

func TestDetectNone(t *testing.T) {
	pix := grayLine(1, 2, 3, 4, 5)
	got := Detect(pix, 3, Config{Mode: ModeNone}, nil)
	want := []Span{{0, 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect(none) = %v, want %v", got, want)
	}
}

func TestDetectEmptyLine(t *testing.T) {
	for _, m := range Modes() {
		if got := Detect(nil, 3, Config{Mode: m}, rng.New(1)); len(got) != 0 {
			t.Errorf("Detect(%v, empty) = %v, want none", m, got)
		}
	}
}

func TestDetectRGBA(t *testing.T) {
	pix := []byte{
		0, 0, 0, 255,
		128, 128, 128, 0,
		128, 128, 128, 255,
		0, 0, 0, 0,
	}
	got := Detect(pix, 4, Config{Mode: ModeThreshold, Lower: 0.25, Upper: 0.8}, nil)
	want := []Span{{1, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect(RGBA threshold) = %v, want %v", got, want)
	}
}

func TestLimitSplit(t *testing.T) {
	got := Limit([]Span{{0, 10}}, 1, 3)
	want := []Span{{0, 3}, {3, 6}, {6, 9}, {9, 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Limit(max=3) = %v, want %v", got, want)
	}
}

func TestLimitMin(t *testing.T) {
	in := []Span{{0, 1}, {2, 5}, {6, 8}}
	got := Limit(in, 3, 0)
	want := []Span{{2, 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Limit(min=3) = %v, want %v", got, want)
	}
	if len(in) != 3 || in[0] != (Span{0, 1}) {
		t.Errorf("Limit modified its input: %v", in)
	}

	// Min of 1 keeps everything.
	if got := Limit(in, 1, 0); !reflect.DeepEqual(got, in) {
		t.Errorf("Limit(min=1) = %v, want %v", got, in)
	}
}

func TestLimitMinThenMax(t *testing.T) {
	got := Limit([]Span{{0, 2}, {4, 9}}, 3, 2)
	want := []Span{{4, 6}, {6, 8}, {8, 9}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Limit(min=3,max=2) = %v, want %v", got, want)
	}
}

func TestFromMask(t *testing.T) {
	tests := []struct {
		name string
		in   []bool
		want []Span
	}{
		{"empty", nil, nil},
		{"all false", []bool{false, false}, nil},
		{"all true", []bool{true, true, true}, []Span{{0, 3}}},
		{"leading run", []bool{true, false, false}, []Span{{0, 1}}},
		{"trailing run", []bool{false, true, true}, []Span{{1, 3}}},
		{"two runs", []bool{true, false, true, true, false}, []Span{{0, 1}, {2, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromMask(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromMask(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetectEdges(t *testing.T) {
	pix := grayLine(0, 0, 0, 255, 255, 255)
	got := Detect(pix, 3, Config{Mode: ModeEdges}, nil)
	want := []Span{{0, 3}, {3, 6}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect(edges) = %v, want %v", got, want)
	}
}

func TestDetectEdgesFlat(t *testing.T) {
	pix := grayLine(50, 50, 50, 50)
	got := Detect(pix, 3, Config{Mode: ModeEdges}, nil)
	want := []Span{{0, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect(edges, flat) = %v, want %v", got, want)
	}
}

func TestDetectEdgesShortLine(t *testing.T) {
	got := Detect(grayLine(9), 3, Config{Mode: ModeEdges}, nil)
	want := []Span{{0, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect(edges, 1px) = %v, want %v", got, want)
	}
}

func TestDetectWaves(t *testing.T) {
	pix := grayLine(make([]uint8, 20)...)
	got := Detect(pix, 3, Config{Mode: ModeWaves}, nil)
	// Period max(10, 20/8) = 10; lengths round(10*(0.5+0.5*sin(phase))) for
	// phase 0, 0.5, 1.0 are 5, 7, 9; the last is clipped at the line end.
	want := []Span{{0, 5}, {5, 12}, {12, 20}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect(waves) = %v, want %v", got, want)
	}
}

func TestDetectWavesCoversLine(t *testing.T) {
	for _, n := range []int{1, 2, 3, 37, 400} {
		pix := grayLine(make([]uint8, n)...)
		spans := Detect(pix, 3, Config{Mode: ModeWaves}, nil)
		next := 0
		for _, s := range spans {
			if s.Start != next || s.End <= s.Start {
				t.Fatalf("n=%d: span %v does not follow %d", n, s, next)
			}
			next = s.End
		}
		if next != n {
			t.Errorf("n=%d: spans end at %d", n, next)
		}
	}
}

func TestDetectRandom(t *testing.T) {
	const n = 400
	pix := grayLine(make([]uint8, n)...)
	spans := Detect(pix, 3, Config{Mode: ModeRandom}, rng.New(99))
	if len(spans) == 0 {
		t.Fatal("Detect(random) returned no spans")
	}

	prevEnd := -1
	for i, s := range spans {
		if s.Start >= s.End {
			t.Fatalf("span %d empty: %v", i, s)
		}
		if s.End > n {
			t.Fatalf("span %d past line end: %v", i, s)
		}
		if i < len(spans)-1 && (s.Len() < randomMinLen || s.Len() >= n/4) {
			t.Errorf("span %d length %d outside [%d,%d)", i, s.Len(), randomMinLen, n/4)
		}
		if prevEnd >= 0 {
			gap := s.Start - prevEnd
			if gap < randomMinGap || gap >= randomMaxGap {
				t.Errorf("gap before span %d = %d, outside [%d,%d)", i, gap, randomMinGap, randomMaxGap)
			}
		}
		prevEnd = s.End
	}

	again := Detect(pix, 3, Config{Mode: ModeRandom}, rng.New(99))
	if !reflect.DeepEqual(spans, again) {
		t.Error("Detect(random) is not reproducible with the same seed")
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if got, err := ParseMode("Edges"); err != nil || got != ModeEdges {
		t.Errorf("ParseMode(Edges) = %v, %v", got, err)
	}
	if _, err := ParseMode("spiral"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseMode(spiral) error = %v", err)
	}
}

func TestSpanString(t *testing.T) {
	if got := (Span{2, 5}).String(); got != "[2,5)" {
		t.Errorf("String() = %q", got)
	}
}
