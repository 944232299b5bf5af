package history

// DefaultLimit is the number of commands a Stack keeps by default.
const DefaultLimit = 100

// Option configures a Stack during creation.
type Option func(*options)

type options struct {
	limit int
}

func defaultOptions() options {
	return options{limit: DefaultLimit}
}

// WithLimit caps the stack at n commands, dropping the oldest beyond it.
// n <= 0 removes the cap.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}
