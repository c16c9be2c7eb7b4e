package validators

import (
	"context"
	"time"

	"github.com/dmitrymomot/formkit/pkg/forms"
)

// Async lifts a synchronous validator into an asynchronous one. Useful
// when a validator list is configured through an API that only accepts
// async validators.
func Async(validate forms.ValidatorFunc) forms.AsyncValidatorFunc {
	return func(_ context.Context, c forms.Control) (forms.ValidationErrors, error) {
		return validate(c), nil
	}
}

// Debounced delays the wrapped validator by the given duration, bailing
// out early when the validation run is cancelled. Since starting a new
// run cancels the previous one, wrapping a backend lookup in Debounced
// turns rapid successive value changes into a single request.
func Debounced(delay time.Duration, validate forms.AsyncValidatorFunc) forms.AsyncValidatorFunc {
	return func(ctx context.Context, c forms.Control) (forms.ValidationErrors, error) {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
		return validate(ctx, c)
	}
}
