package pixelsort

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/pixelsort/internal/colorkey"
	"github.com/gogpu/pixelsort/internal/span"
	"golang.org/x/text/cases"
)

// ErrUnknownDirection is returned when a direction name is not recognized.
var ErrUnknownDirection = errors.New("pixelsort: unknown direction")

// Direction selects whether rows or columns are sorted.
type Direction uint8

const (
	// Horizontal sorts each row left to right. Only horizontal sorting
	// honours Params.Angle.
	Horizontal Direction = iota

	// Vertical sorts each column top to bottom.
	Vertical

	directionCount
)

var directionNames = [directionCount]string{
	Horizontal: "horizontal",
	Vertical:   "vertical",
}

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// IsValid reports whether d is one of the declared directions.
func (d Direction) IsValid() bool {
	return d < directionCount
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDirection parses a direction name. Matching is case-insensitive.
func ParseDirection(s string) (Direction, error) {
	name := cases.Fold().String(strings.TrimSpace(s))
	for i, n := range directionNames {
		if n == name {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// SortKey selects the color property pixels are ordered by.
type SortKey = colorkey.Key

// Sort keys.
const (
	KeyBrightness = colorkey.KeyBrightness
	KeyHue        = colorkey.KeyHue
	KeySaturation = colorkey.KeySaturation
	KeyIntensity  = colorkey.KeyIntensity
	KeyMinimum    = colorkey.KeyMinimum
	KeyRed        = colorkey.KeyRed
	KeyGreen      = colorkey.KeyGreen
	KeyBlue       = colorkey.KeyBlue
)

// ParseSortKey parses a sort key name. Matching is case-insensitive.
func ParseSortKey(s string) (SortKey, error) {
	return colorkey.ParseKey(s)
}

// IntervalMode selects how lines are split into spans.
type IntervalMode = span.Mode

// Interval modes.
const (
	IntervalThreshold = span.ModeThreshold
	IntervalRandom    = span.ModeRandom
	IntervalEdges     = span.ModeEdges
	IntervalWaves     = span.ModeWaves
	IntervalNone      = span.ModeNone
)

// ParseIntervalMode parses an interval mode name. Matching is case-insensitive.
func ParseIntervalMode(s string) (IntervalMode, error) {
	return span.ParseMode(s)
}

// Parameter limits.
const (
	MaxPixelSize = 32
	MaxSpanLen   = 10000
	MaxJitter    = 100
)

// Params is the immutable description of one sort operation.
//
// Params is a plain value; copies never share state. Pass a copy to any
// computation that may outlive the caller's next edit.
type Params struct {
	// Direction selects rows or columns.
	Direction Direction `toml:"direction" yaml:"direction"`

	// Angle in degrees. Only used for horizontal sorting; the region is
	// turned by -Angle, sorted along rows and turned back.
	Angle float64 `toml:"angle" yaml:"angle"`

	// Key is the color property pixels are ordered by.
	Key SortKey `toml:"key" yaml:"key"`

	// Interval selects the span detection mode.
	Interval IntervalMode `toml:"interval" yaml:"interval"`

	// Lower and Upper bound normalized brightness for threshold spans.
	Lower float64 `toml:"lower" yaml:"lower"`
	Upper float64 `toml:"upper" yaml:"upper"`

	// PixelSize moves pixels in blocks of this many. 1 sorts single pixels.
	PixelSize int `toml:"pixel_size" yaml:"pixel_size"`

	// SpanMin drops spans shorter than this; SpanMax splits spans longer
	// than this. SpanMax 0 means unlimited.
	SpanMin int `toml:"span_min" yaml:"span_min"`
	SpanMax int `toml:"span_max" yaml:"span_max"`

	// Jitter is the maximum displacement of the post-sort perturbation.
	Jitter int `toml:"jitter" yaml:"jitter"`

	// Reverse sorts in descending key order.
	Reverse bool `toml:"reverse" yaml:"reverse"`
}

// DefaultParams returns the parameters a fresh session starts with.
func DefaultParams() Params {
	return Params{
		Direction: Horizontal,
		Angle:     0,
		Key:       KeyBrightness,
		Interval:  IntervalThreshold,
		Lower:     0.25,
		Upper:     0.8,
		PixelSize: 1,
		SpanMin:   1,
		SpanMax:   0,
		Jitter:    0,
		Reverse:   false,
	}
}

// Copy returns an independent copy of p.
func (p Params) Copy() Params {
	return p
}

// Validate reports the first out-of-range field, wrapped in ErrInvalidParams.
func (p Params) Validate() error {
	switch {
	case !p.Direction.IsValid():
		return fmt.Errorf("%w: direction %v", ErrInvalidParams, p.Direction)
	case !p.Key.IsValid():
		return fmt.Errorf("%w: key %v", ErrInvalidParams, p.Key)
	case !p.Interval.IsValid():
		return fmt.Errorf("%w: interval %v", ErrInvalidParams, p.Interval)
	case math.IsNaN(p.Angle) || math.IsInf(p.Angle, 0):
		return fmt.Errorf("%w: angle %v", ErrInvalidParams, p.Angle)
	case !inUnit(p.Lower):
		return fmt.Errorf("%w: lower threshold %v outside [0, 1]", ErrInvalidParams, p.Lower)
	case !inUnit(p.Upper):
		return fmt.Errorf("%w: upper threshold %v outside [0, 1]", ErrInvalidParams, p.Upper)
	case p.PixelSize < 1 || p.PixelSize > MaxPixelSize:
		return fmt.Errorf("%w: pixel size %d outside [1, %d]", ErrInvalidParams, p.PixelSize, MaxPixelSize)
	case p.SpanMin < 1 || p.SpanMin > MaxSpanLen:
		return fmt.Errorf("%w: span min %d outside [1, %d]", ErrInvalidParams, p.SpanMin, MaxSpanLen)
	case p.SpanMax < 0 || p.SpanMax > MaxSpanLen:
		return fmt.Errorf("%w: span max %d outside [0, %d]", ErrInvalidParams, p.SpanMax, MaxSpanLen)
	case p.Jitter < 0 || p.Jitter > MaxJitter:
		return fmt.Errorf("%w: jitter %d outside [0, %d]", ErrInvalidParams, p.Jitter, MaxJitter)
	}
	return nil
}

// Normalize returns p with the angle folded into [0, 360), the thresholds
// clamped to [0, 1] and the counts raised to their lower bounds. A
// non-finite angle becomes 0. Upper limits are left to Validate, so large
// pixel sizes and span lengths pass through. Enum fields are left untouched.
func (p Params) Normalize() Params {
	switch {
	case math.IsNaN(p.Angle) || math.IsInf(p.Angle, 0):
		p.Angle = 0
	default:
		p.Angle = math.Mod(p.Angle, 360)
		if p.Angle < 0 {
			p.Angle += 360
		}
	}
	p.Lower = clampUnit(p.Lower)
	p.Upper = clampUnit(p.Upper)
	p.PixelSize = max(p.PixelSize, 1)
	p.SpanMin = max(p.SpanMin, 1)
	p.SpanMax = max(p.SpanMax, 0)
	p.Jitter = max(p.Jitter, 0)
	return p
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(v, 0), 1)
}
