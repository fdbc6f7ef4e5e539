package butcher

// options collects resolved construction settings.
type options struct {
	policies map[string]Policy
}

// Option configures butcher construction.
type Option func(*options)

// WithPolicy overrides the projection policy for a named field, taking
// precedence over the field's butcher tag. This is the programmatic form of
// the resolved per-field policy table; unknown policies and fields whose
// types cannot support the policy are rejected at construction.
//
// For enum butchers the override applies to every variant declaring a field
// with that name; a name no variant declares is rejected, as on the struct
// path.
func WithPolicy(field string, policy Policy) Option {
	return func(o *options) {
		if o.policies == nil {
			o.policies = make(map[string]Policy)
		}
		o.policies[field] = policy
	}
}

// buildOptions applies opts to a fresh options value.
func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
