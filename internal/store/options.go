package store

import "time"

type options struct {
	now func() time.Time
}

// Option configures an entity store.
type Option func(*options)

// WithClock overrides the clock used to stamp record dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func applyOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
