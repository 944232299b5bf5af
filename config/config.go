// Package config reads and writes sort parameter presets.
//
// A preset is a named Params value stored as TOML or YAML. The encoding is
// chosen by file extension: .toml for TOML, .yaml or .yml for YAML. Fields a
// file leaves out keep their pixelsort.DefaultParams value, and unknown
// fields are rejected so typos do not pass silently.
//
// A TOML preset looks like:
//
//	name = "melt"
//
//	[params]
//	direction = "vertical"
//	key = "hue"
//	interval = "edges"
//	jitter = 12
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/pixelsort"
)

var (
	// ErrUnknownFormat is returned for a file extension that names no
	// supported encoding.
	ErrUnknownFormat = errors.New("config: unknown preset format")

	// ErrNotFound is returned by Find when no preset has the requested name.
	ErrNotFound = errors.New("config: preset not found")
)

// Format is a preset file encoding.
type Format uint8

const (
	// FormatTOML encodes presets as TOML.
	FormatTOML Format = iota

	// FormatYAML encodes presets as YAML.
	FormatYAML

	formatCount
)

var formatNames = [formatCount]string{
	FormatTOML: "toml",
	FormatYAML: "yaml",
}

// String returns the format name.
func (f Format) String() string {
	if f < formatCount {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", f)
}

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Preset is a named set of sort parameters.
type Preset struct {
	Name   string           `toml:"name" yaml:"name"`
	Params pixelsort.Params `toml:"params" yaml:"params"`
}

// Decode reads a preset from r. Missing parameters take their default
// values; the result is validated.
func Decode(r io.Reader, format Format) (Preset, error) {
	p := Preset{Params: pixelsort.DefaultParams()}

	var err error
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&p)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&p)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return Preset{}, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("config: decode %v: %w", format, err)
	}

	if err := p.Params.Validate(); err != nil {
		return Preset{}, fmt.Errorf("config: preset %q: %w", p.Name, err)
	}
	return p, nil
}

// Encode writes p to w.
func Encode(w io.Writer, p Preset, format Format) error {
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(p)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(p); err == nil {
			err = enc.Close()
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("config: encode %v: %w", format, err)
	}
	return nil
}

// Load reads the preset file at path. A preset without a name is named
// after the file.
func Load(path string) (Preset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Preset{}, err
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Preset{}, fmt.Errorf("config: open preset: %w", err)
	}
	defer f.Close()

	p, err := Decode(f, format)
	if err != nil {
		return Preset{}, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// Save writes p to path in the format its extension names.
func Save(path string, p Preset) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("config: create preset: %w", err)
	}
	if err := Encode(f, p, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// LoadDir loads every preset file in dir, sorted by name. Files with other
// extensions are ignored. The first unreadable preset aborts the load.
func LoadDir(dir string) ([]Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("config: read preset dir: %w", err)
	}

	var presets []Preset
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatFromPath(e.Name()); err != nil {
			continue
		}
		p, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}

	slices.SortFunc(presets, func(a, b Preset) int {
		return strings.Compare(a.Name, b.Name)
	})
	return presets, nil
}

// Find returns the preset called name from presets.
func Find(presets []Preset, name string) (Preset, error) {
	i := slices.IndexFunc(presets, func(p Preset) bool {
		return strings.EqualFold(p.Name, name)
	})
	if i < 0 {
		return Preset{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return presets[i], nil
}
