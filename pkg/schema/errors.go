package schema

import "errors"

var (
	// ErrInvalidDefinition is returned when a definition cannot be
	// parsed or is structurally malformed.
	ErrInvalidDefinition = errors.New("schema: invalid definition")

	// ErrUnknownKind is returned when a definition names a control kind
	// other than "control", "group", or "array".
	ErrUnknownKind = errors.New("schema: unknown control kind")

	// ErrUnknownValidator is returned when a definition references a
	// validator name the builder does not know.
	ErrUnknownValidator = errors.New("schema: unknown validator")

	// ErrInvalidArgument is returned when a validator argument has the
	// wrong type or value for the named validator.
	ErrInvalidArgument = errors.New("schema: invalid validator argument")

	// ErrInvalidUpdateOn is returned when a definition names an update
	// strategy other than change, blur, or submit.
	ErrInvalidUpdateOn = errors.New("schema: invalid updateOn strategy")
)
