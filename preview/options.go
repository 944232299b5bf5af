package preview

import "github.com/gogpu/pixelsort"

// Option configures a Worker during creation.
type Option func(*options)

type options struct {
	sort   SortFunc
	buffer int
}

func defaultOptions() options {
	return options{
		sort:   sortWith(nil),
		buffer: 1,
	}
}

// WithSorter computes previews with s instead of the default sorter.
// s must be safe for use from the worker goroutine.
func WithSorter(s *pixelsort.Sorter) Option {
	return func(o *options) {
		o.sort = sortWith(s)
	}
}

// WithSortFunc replaces the computation entirely.
func WithSortFunc(fn SortFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.sort = fn
		}
	}
}

// WithBuffer sets how many unread results the worker keeps. Once the
// buffer is full each new result replaces the oldest one. The minimum is 1.
func WithBuffer(n int) Option {
	return func(o *options) {
		o.buffer = max(n, 1)
	}
}

func sortWith(s *pixelsort.Sorter) SortFunc {
	return func(req Request) (*pixelsort.Image, error) {
		if s == nil {
			return pixelsort.SortRegion(req.Image, req.Params, req.Region, req.Mask)
		}
		return s.SortRegion(req.Image, req.Params, req.Region, req.Mask)
	}
}
