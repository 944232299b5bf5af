// Package span finds the runs of a pixel line that are sorted as units.
package span

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownMode is returned when an interval mode name is not recognized.
var ErrUnknownMode = errors.New("span: unknown interval mode")

// Span is a half-open index interval [Start, End) over one line of pixels.
type Span struct {
	Start int
	End   int
}

// Len returns the number of pixels in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// String returns the span as "[start,end)".
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Mode selects how a line is split into spans.
type Mode uint8

const (
	// ModeThreshold spans maximal runs whose normalized brightness lies in
	// [Lower, Upper].
	ModeThreshold Mode = iota

	// ModeRandom spans random lengths separated by short random gaps.
	ModeRandom

	// ModeEdges splits the line where the brightness gradient is unusually
	// steep.
	ModeEdges

	// ModeWaves spans sinusoidally varying lengths.
	ModeWaves

	// ModeNone treats the whole line as a single span.
	ModeNone

	modeCount
)

var modeNames = [modeCount]string{
	ModeThreshold: "threshold",
	ModeRandom:    "random",
	ModeEdges:     "edges",
	ModeWaves:     "waves",
	ModeNone:      "none",
}

// Modes returns every valid mode in declaration order.
func Modes() []Mode {
	modes := make([]Mode, modeCount)
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// String returns the lower-case name of the mode.
func (m Mode) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// IsValid reports whether m is one of the declared modes.
func (m Mode) IsValid() bool {
	return m < modeCount
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMode parses a mode name. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	name := cases.Fold().String(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Config holds the detection parameters for one line.
type Config struct {
	Mode Mode

	// Lower and Upper bound normalized brightness for ModeThreshold.
	Lower float64
	Upper float64

	// Min drops spans shorter than Min when Min > 1.
	Min int

	// Max subdivides spans longer than Max when Max > 0.
	Max int
}
