package forms

import "fmt"

// Value is a typed helper to read a control's value with type safety.
// Returns an error if the control is nil or the value is not of the
// requested type.
func Value[T any](c Control) (T, error) {
	var zero T
	if c == nil {
		return zero, ErrControlNotFound
	}
	typed, ok := c.Value().(T)
	if !ok {
		return zero, fmt.Errorf("%w: have %T", ErrTypeMismatch, c.Value())
	}
	return typed, nil
}

// ValueOr is a typed helper that returns a default value if the control
// is nil or the value is not of the requested type.
func ValueOr[T any](c Control, defaultVal T) T {
	val, err := Value[T](c)
	if err != nil {
		return defaultVal
	}
	return val
}
