//go:build pprof

package profile

// Option adds pkg/profile selections to a control.
type Option func(control) control

// apply folds opts over c in order.
func apply(c control, opts ...Option) control {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// newControl builds a control from the given options.
func newControl(opts ...Option) control {
	return apply(control{}, opts...)
}
