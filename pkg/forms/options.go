package forms

// Option configures a control during construction.
type Option func(*config)

type config struct {
	validators      []ValidatorFunc
	asyncValidators []AsyncValidatorFunc
	updateOn        UpdateOn
	disabled        bool
}

func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithValidators sets the control's synchronous validators. They are
// composed into a single validator with [Compose].
func WithValidators(validators ...ValidatorFunc) Option {
	return func(cfg *config) {
		cfg.validators = append(cfg.validators, validators...)
	}
}

// WithAsyncValidators sets the control's asynchronous validators. They
// are composed into a single validator with [ComposeAsync].
func WithAsyncValidators(validators ...AsyncValidatorFunc) Option {
	return func(cfg *config) {
		cfg.asyncValidators = append(cfg.asyncValidators, validators...)
	}
}

// WithUpdateOn sets the control's update strategy. When unset, the
// strategy is inherited from the nearest ancestor that sets one.
func WithUpdateOn(updateOn UpdateOn) Option {
	return func(cfg *config) {
		cfg.updateOn = updateOn
	}
}

// WithDisabled constructs the control in the disabled state.
func WithDisabled() Option {
	return func(cfg *config) {
		cfg.disabled = true
	}
}

// UpdateOption tunes a single mutation call.
type UpdateOption func(*updateOpts)

type updateOpts struct {
	onlySelf   bool
	skipEvents bool
}

func applyUpdateOptions(opts []UpdateOption) updateOpts {
	var o updateOpts
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// OnlySelf restricts the mutation to the control itself: ancestors are
// not recalculated.
func OnlySelf() UpdateOption {
	return func(o *updateOpts) {
		o.onlySelf = true
	}
}

// WithoutEvents suppresses value and status change notifications for the
// mutation. State still changes; observers simply are not told.
func WithoutEvents() UpdateOption {
	return func(o *updateOpts) {
		o.skipEvents = true
	}
}
