package forms

import "errors"

// Structural errors. These indicate programmer mistakes (wrong key, wrong
// value shape) and are returned immediately from the operation that
// triggered them. Validation failures are never Go errors; they live in
// [ValidationErrors].
var (
	// ErrControlNotFound is returned when a value references a key or
	// index that has no corresponding control.
	ErrControlNotFound = errors.New("forms: control not found")

	// ErrMissingValue is returned by strict SetValue when the supplied
	// value omits an entry for a registered control.
	ErrMissingValue = errors.New("forms: missing value for control")

	// ErrLengthMismatch is returned by FormArray.SetValue when the value
	// slice length does not match the number of controls.
	ErrLengthMismatch = errors.New("forms: value length does not match controls")

	// ErrInvalidValueType is returned when a value has the wrong shape
	// for the control it targets (e.g. a non-map value for a FormGroup).
	ErrInvalidValueType = errors.New("forms: invalid value type")

	// ErrIndexOutOfRange is returned by FormArray index operations when
	// the index is outside the current control list.
	ErrIndexOutOfRange = errors.New("forms: index out of range")

	// ErrTypeMismatch is returned by the typed Value helper when the
	// control's value is not of the requested type.
	ErrTypeMismatch = errors.New("forms: type mismatch")
)
