// Package validators provides the built-in validator functions for the
// forms control model.
//
// Each validator is a [forms.ValidatorFunc] returning nil when the value
// passes and a [forms.ValidationErrors] map with a well-known key when it
// fails:
//
//	required   -> true
//	min        -> {"min": n, "actual": v}
//	max        -> {"max": n, "actual": v}
//	minlength  -> {"requiredLength": n, "actualLength": l}
//	maxlength  -> {"requiredLength": n, "actualLength": l}
//	pattern    -> {"requiredPattern": p, "actualValue": v}
//	email      -> true
//	safehtml   -> true
//
// Validators other than [Required] and [RequiredTrue] treat an empty
// value as passing: chain them with Required when the field is mandatory.
//
//	password := forms.NewControl("", forms.WithValidators(
//	    validators.Required,
//	    validators.MinLength(8),
//	))
package validators
