package forms

// FormControl is the leaf control type: it holds a single scalar value
// and has no children.
type FormControl struct {
	*control

	defaultValue any
}

// NewControl creates a leaf control with the given initial value. The
// initial value doubles as the default value that [FormControl.Reset]
// restores.
//
// Example:
//
//	email := forms.NewControl("", forms.WithValidators(validators.Required, validators.Email))
func NewControl(initial any, opts ...Option) *FormControl {
	cfg := applyOptions(opts)
	c := &FormControl{control: &control{}}
	c.bind(c)
	c.value = initial
	c.defaultValue = initial
	c.finishInit(cfg)
	return c
}

// DefaultValue returns the value the control resets to.
func (c *FormControl) DefaultValue() any { return c.defaultValue }

// RawValue returns the control's value; for a leaf it is identical to
// Value regardless of the disabled state.
func (c *FormControl) RawValue() any { return c.value }

// ResetTo resets the control to the given value instead of its default,
// marking it pristine and untouched.
func (c *FormControl) ResetTo(value any, opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := c.lockTree()
	c.resetAny(value, o)
	c.unlock(t)
}

// --- variant capability set -------------------------------------------

// updateValue is a pass-through: a leaf's value is assigned directly.
func (c *FormControl) updateValue() {}

func (c *FormControl) forEachChild(func(Control)) {}

// anyControls is always false: a leaf has no children to satisfy any
// predicate.
func (c *FormControl) anyControls(func(Control) bool) bool { return false }

func (c *FormControl) allControlsDisabled() bool { return c.Disabled() }

func (c *FormControl) find(string) Control { return nil }

func (c *FormControl) setValueInternal(value any, o updateOpts) error {
	c.value = value
	c.updateValueAndValidity(o)
	return nil
}

// patchValueInternal is identical to setValueInternal: a leaf has no
// partial shape to tolerate.
func (c *FormControl) patchValueInternal(value any, o updateOpts) error {
	return c.setValueInternal(value, o)
}

func (c *FormControl) resetInternal(o updateOpts) {
	c.resetAny(c.defaultValue, o)
}

func (c *FormControl) resetAny(value any, o updateOpts) {
	c.value = value
	c.markAsPristineInternal(o)
	c.markAsUntouchedInternal(o)
	c.updateValueAndValidity(o)
}
