package validators

import (
	"reflect"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/dmitrymomot/formkit/pkg/forms"
)

// Required fails with {"required": true} when the control's value is
// empty: nil, an empty string, or a zero-length slice/array/map.
func Required(c forms.Control) forms.ValidationErrors {
	if isEmpty(c.Value()) {
		return forms.ValidationErrors{"required": true}
	}
	return nil
}

// RequiredTrue fails unless the control's value is the boolean true.
// Intended for mandatory checkboxes (terms of service and the like).
func RequiredTrue(c forms.Control) forms.ValidationErrors {
	if v, ok := c.Value().(bool); !ok || !v {
		return forms.ValidationErrors{"required": true}
	}
	return nil
}

// Min returns a validator that fails when the control's numeric value is
// less than min. Empty and non-numeric values pass.
func Min(min float64) forms.ValidatorFunc {
	return func(c forms.Control) forms.ValidationErrors {
		value := c.Value()
		if isEmpty(value) {
			return nil
		}
		n, ok := toFloat(value)
		if !ok || n >= min {
			return nil
		}
		return forms.ValidationErrors{"min": map[string]any{"min": min, "actual": value}}
	}
}

// Max returns a validator that fails when the control's numeric value is
// greater than max. Empty and non-numeric values pass.
func Max(max float64) forms.ValidatorFunc {
	return func(c forms.Control) forms.ValidationErrors {
		value := c.Value()
		if isEmpty(value) {
			return nil
		}
		n, ok := toFloat(value)
		if !ok || n <= max {
			return nil
		}
		return forms.ValidationErrors{"max": map[string]any{"max": max, "actual": value}}
	}
}

// MinLength returns a validator that fails when the value's length is
// below the required length. Strings are measured in runes; slices,
// arrays, and maps by element count. Empty values pass so the validator
// composes with Required instead of duplicating it.
func MinLength(required int) forms.ValidatorFunc {
	return func(c forms.Control) forms.ValidationErrors {
		length, ok := lengthOf(c.Value())
		if !ok || length == 0 || length >= required {
			return nil
		}
		return forms.ValidationErrors{"minlength": map[string]any{
			"requiredLength": required,
			"actualLength":   length,
		}}
	}
}

// MaxLength returns a validator that fails when the value's length
// exceeds the allowed length.
func MaxLength(allowed int) forms.ValidatorFunc {
	return func(c forms.Control) forms.ValidationErrors {
		length, ok := lengthOf(c.Value())
		if !ok || length <= allowed {
			return nil
		}
		return forms.ValidationErrors{"maxlength": map[string]any{
			"requiredLength": allowed,
			"actualLength":   length,
		}}
	}
}

// Pattern returns a validator that fails when the value's string form
// does not match the given expression. Empty values pass.
func Pattern(re *regexp.Regexp) forms.ValidatorFunc {
	return func(c forms.Control) forms.ValidationErrors {
		value := c.Value()
		if isEmpty(value) {
			return nil
		}
		s, ok := value.(string)
		if !ok {
			return nil
		}
		if re.MatchString(s) {
			return nil
		}
		return forms.ValidationErrors{"pattern": map[string]any{
			"requiredPattern": re.String(),
			"actualValue":     s,
		}}
	}
}

var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$",
)

// Email fails with {"email": true} when the control's value is a
// non-empty string that does not look like an email address.
func Email(c forms.Control) forms.ValidationErrors {
	value := c.Value()
	if isEmpty(value) {
		return nil
	}
	s, ok := value.(string)
	if !ok || emailPattern.MatchString(s) {
		return nil
	}
	return forms.ValidationErrors{"email": true}
}

// isEmpty reports whether a value counts as absent for validation
// purposes: nil, "", or a zero-length collection.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}

func lengthOf(value any) (int, bool) {
	if value == nil {
		return 0, false
	}
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
