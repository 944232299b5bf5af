package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/pixelsort"
	"github.com/gogpu/pixelsort/config"
)

// sortFlags are the flags shared by sort and watch.
type sortFlags struct {
	preset    string
	presetDir string

	direction string
	angle     float64
	key       string
	interval  string
	lower     float64
	upper     float64
	pixelSize int
	spanMin   int
	spanMax   int
	jitter    int
	reverse   bool

	region string
	mask   string
	seed   uint64
}

func (f *sortFlags) register(fs *pflag.FlagSet) {
	d := pixelsort.DefaultParams()

	fs.StringVarP(&f.preset, "preset", "p", "", "preset file, or name of a preset in --preset-dir")
	fs.StringVar(&f.presetDir, "preset-dir", defaultPresetDir(), "directory searched for named presets")

	fs.StringVarP(&f.direction, "direction", "d", d.Direction.String(), "sort direction (horizontal, vertical)")
	fs.Float64VarP(&f.angle, "angle", "a", d.Angle, "sort angle in degrees, horizontal only")
	fs.StringVarP(&f.key, "key", "k", d.Key.String(), "sort key (brightness, hue, saturation, intensity, minimum, red, green, blue)")
	fs.StringVarP(&f.interval, "interval", "i", d.Interval.String(), "interval mode (threshold, random, edges, waves, none)")
	fs.Float64Var(&f.lower, "lower", d.Lower, "lower brightness threshold in [0, 1]")
	fs.Float64Var(&f.upper, "upper", d.Upper, "upper brightness threshold in [0, 1]")
	fs.IntVar(&f.pixelSize, "pixel-size", d.PixelSize, "block size; pixels are sorted in groups of this many")
	fs.IntVar(&f.spanMin, "span-min", d.SpanMin, "shortest span that is sorted")
	fs.IntVar(&f.spanMax, "span-max", d.SpanMax, "longest span, 0 for unlimited")
	fs.IntVar(&f.jitter, "jitter", d.Jitter, "maximum displacement after sorting")
	fs.BoolVarP(&f.reverse, "reverse", "r", d.Reverse, "sort in descending order")

	fs.StringVar(&f.region, "region", "", "region to sort as x,y,w,h (default whole image)")
	fs.StringVar(&f.mask, "mask", "", "mask image; light or opaque pixels are sorted")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed for reproducible output (0 draws a fresh one)")
}

// params resolves the preset, if any, and applies every flag the user set
// on top of it.
func (f *sortFlags) params(cmd *cobra.Command) (pixelsort.Params, error) {
	p := pixelsort.DefaultParams()
	if f.preset != "" {
		preset, err := loadPreset(f.preset, f.presetDir)
		if err != nil {
			return p, err
		}
		p = preset.Params
	}

	fs := cmd.Flags()
	var err error
	if fs.Changed("direction") {
		if p.Direction, err = pixelsort.ParseDirection(f.direction); err != nil {
			return p, fmt.Errorf("--direction: %w", err)
		}
	}
	if fs.Changed("key") {
		if p.Key, err = pixelsort.ParseSortKey(f.key); err != nil {
			return p, fmt.Errorf("--key: %w", err)
		}
	}
	if fs.Changed("interval") {
		if p.Interval, err = pixelsort.ParseIntervalMode(f.interval); err != nil {
			return p, fmt.Errorf("--interval: %w", err)
		}
	}
	if fs.Changed("angle") {
		p.Angle = f.angle
	}
	if fs.Changed("lower") {
		p.Lower = f.lower
	}
	if fs.Changed("upper") {
		p.Upper = f.upper
	}
	if fs.Changed("pixel-size") {
		p.PixelSize = f.pixelSize
	}
	if fs.Changed("span-min") {
		p.SpanMin = f.spanMin
	}
	if fs.Changed("span-max") {
		p.SpanMax = f.spanMax
	}
	if fs.Changed("jitter") {
		p.Jitter = f.jitter
	}
	if fs.Changed("reverse") {
		p.Reverse = f.reverse
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func (f *sortFlags) parseRegion() (pixelsort.Region, error) {
	if f.region == "" {
		return pixelsort.WholeImage, nil
	}
	return pixelsort.ParseRegion(f.region)
}

func (f *sortFlags) loadMask() (*pixelsort.Mask, error) {
	if f.mask == "" {
		return nil, nil
	}
	img, err := pixelsort.LoadImage(f.mask)
	if err != nil {
		return nil, fmt.Errorf("--mask: %w", err)
	}
	return pixelsort.MaskFromImage(img.ToStdImage()), nil
}

// sorter returns a new sorter, seeded when --seed was given.
func (f *sortFlags) sorter() *pixelsort.Sorter {
	if f.seed == 0 {
		return pixelsort.NewSorter()
	}
	return pixelsort.NewSorter(pixelsort.WithSeed(f.seed))
}

// loadPreset treats ref as a file when it has a preset extension and
// exists, and as a preset name in dir otherwise.
func loadPreset(ref, dir string) (config.Preset, error) {
	if _, err := config.FormatFromPath(ref); err == nil {
		if _, err := os.Stat(ref); err == nil {
			return config.Load(ref)
		}
	}
	presets, err := config.LoadDir(dir)
	if err != nil {
		return config.Preset{}, fmt.Errorf("--preset %q: %w", ref, err)
	}
	return config.Find(presets, ref)
}

func defaultPresetDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "presets"
	}
	return filepath.Join(dir, "pixelsort", "presets")
}
