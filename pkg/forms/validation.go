package forms

import (
	"context"
	"maps"

	"golang.org/x/sync/errgroup"
)

// ValidationErrors maps an error key to an arbitrary payload describing
// the failure (a bool flag, a struct-like map with expected/actual values,
// and so on). A nil or empty map means the value passed.
type ValidationErrors map[string]any

// ValidatorFunc checks a control's current value synchronously.
// It returns nil when the value is acceptable.
type ValidatorFunc func(c Control) ValidationErrors

// AsyncValidatorFunc checks a control's current value asynchronously.
// The context is cancelled when the validation run is superseded by a
// newer one or the control is disabled; implementations should return
// promptly once it is done. A non-nil error that is not a cancellation is
// reported on the control under the "async" error key.
type AsyncValidatorFunc func(ctx context.Context, c Control) (ValidationErrors, error)

// Compose merges a list of synchronous validators into a single validator
// whose result is the key-wise union of the individual results. When two
// validators report the same key, the later one wins. Nil entries are
// skipped; composing zero validators yields nil.
func Compose(validators ...ValidatorFunc) ValidatorFunc {
	fns := make([]ValidatorFunc, 0, len(validators))
	for _, fn := range validators {
		if fn != nil {
			fns = append(fns, fn)
		}
	}
	if len(fns) == 0 {
		return nil
	}
	return func(c Control) ValidationErrors {
		var merged ValidationErrors
		for _, fn := range fns {
			merged = mergeErrors(merged, fn(c))
		}
		return merged
	}
}

// ComposeAsync merges a list of asynchronous validators into a single
// validator. The individual validators run concurrently; results are
// merged in declaration order so key collisions resolve deterministically.
// The first validator error cancels the remaining runs and is returned
// as-is. Composing zero validators yields nil.
func ComposeAsync(validators ...AsyncValidatorFunc) AsyncValidatorFunc {
	fns := make([]AsyncValidatorFunc, 0, len(validators))
	for _, fn := range validators {
		if fn != nil {
			fns = append(fns, fn)
		}
	}
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, c Control) (ValidationErrors, error) {
		results := make([]ValidationErrors, len(fns))
		g, ctx := errgroup.WithContext(ctx)
		for i, fn := range fns {
			i, fn := i, fn
			g.Go(func() error {
				errs, err := fn(ctx, c)
				if err != nil {
					return err
				}
				results[i] = errs
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		var merged ValidationErrors
		for _, errs := range results {
			merged = mergeErrors(merged, errs)
		}
		return merged, nil
	}
}

// mergeErrors copies src into dst, allocating dst lazily so that an
// all-passing composition stays nil.
func mergeErrors(dst, src ValidationErrors) ValidationErrors {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(ValidationErrors, len(src))
	}
	maps.Copy(dst, src)
	return dst
}
