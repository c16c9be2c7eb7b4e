package forms

// Status is the validity state of a control. A control is in exactly one
// status at any time.
type Status string

const (
	// StatusValid means the control has passed all validation checks.
	StatusValid Status = "VALID"

	// StatusInvalid means the control has failed at least one validation
	// check.
	StatusInvalid Status = "INVALID"

	// StatusPending means the control is in the midst of an asynchronous
	// validation run.
	StatusPending Status = "PENDING"

	// StatusDisabled means the control is exempt from validation and its
	// value is excluded from ancestor aggregate values.
	StatusDisabled Status = "DISABLED"
)

// String returns the status name.
func (s Status) String() string { return string(s) }

// UpdateOn describes when a control bound to an input surface should push
// its value and re-validate. The model itself stores and resolves the
// strategy; acting on it is the binding layer's job.
type UpdateOn string

const (
	// UpdateOnChange re-validates on every value change. This is the
	// default when neither the control nor any ancestor sets a strategy.
	UpdateOnChange UpdateOn = "change"

	// UpdateOnBlur re-validates when the input loses focus.
	UpdateOnBlur UpdateOn = "blur"

	// UpdateOnSubmit re-validates when the surrounding form is submitted.
	UpdateOnSubmit UpdateOn = "submit"
)
