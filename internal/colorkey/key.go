// Package colorkey computes scalar sort keys from raw 8-bit pixels.
package colorkey

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownKey is returned when a sort key name is not recognized.
var ErrUnknownKey = errors.New("colorkey: unknown sort key")

// Key selects the pixel property used to order pixels within a span.
type Key uint8

const (
	// KeyBrightness is perceived luma: 0.299R + 0.587G + 0.114B, in [0, 255].
	KeyBrightness Key = iota

	// KeyHue is the HSV hue angle in degrees, [0, 360).
	KeyHue

	// KeySaturation is the HSV saturation, (max-min)/max, in [0, 1].
	KeySaturation

	// KeyIntensity is the unweighted channel mean (R+G+B)/3.
	KeyIntensity

	// KeyMinimum is the smallest of the three color channels.
	KeyMinimum

	// KeyRed sorts by the red channel.
	KeyRed

	// KeyGreen sorts by the green channel.
	KeyGreen

	// KeyBlue sorts by the blue channel.
	KeyBlue

	keyCount
)

var keyNames = [keyCount]string{
	KeyBrightness: "brightness",
	KeyHue:        "hue",
	KeySaturation: "saturation",
	KeyIntensity:  "intensity",
	KeyMinimum:    "minimum",
	KeyRed:        "red",
	KeyGreen:      "green",
	KeyBlue:       "blue",
}

// Keys returns every valid key in declaration order.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// String returns the lower-case name of the key.
func (k Key) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("Key(%d)", uint8(k))
	}
	return keyNames[k]
}

// IsValid reports whether k is one of the declared keys.
func (k Key) IsValid() bool {
	return k < keyCount
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	v, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseKey parses a key name. Matching is case-insensitive.
func ParseKey(s string) (Key, error) {
	name := cases.Fold().String(strings.TrimSpace(s))
	for i, n := range keyNames {
		if n == name {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}
