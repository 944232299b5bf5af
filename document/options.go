package document

// Option configures a Document during creation.
type Option func(*options)

type options struct {
	keepAlpha bool
}

func defaultOptions() options {
	return options{}
}

// WithAlpha keeps the alpha channel of images that have one. By default
// loaded images are flattened to RGB by dropping alpha.
func WithAlpha() Option {
	return func(o *options) {
		o.keepAlpha = true
	}
}
