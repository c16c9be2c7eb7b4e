package validators

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/formkit/pkg/forms"
)

var (
	ugcPolicy *bluemonday.Policy
	initOnce  sync.Once
)

func initPolicy() {
	initOnce.Do(func() {
		// Allows the formatting tags typical for user-generated content;
		// scripts, event handlers and javascript: URLs all get stripped.
		ugcPolicy = bluemonday.UGCPolicy()
	})
}

// SafeHTML fails with {"safehtml": true} when the control's string value
// contains markup that the user-generated-content sanitization policy
// would strip. The value itself is never rewritten: rejecting is the
// model's job, sanitizing is the caller's.
func SafeHTML(c forms.Control) forms.ValidationErrors {
	initPolicy()
	return safeHTML(ugcPolicy, c)
}

// SafeHTMLWith returns a validator like [SafeHTML] using a custom
// bluemonday policy.
func SafeHTMLWith(policy *bluemonday.Policy) forms.ValidatorFunc {
	return func(c forms.Control) forms.ValidationErrors {
		return safeHTML(policy, c)
	}
}

func safeHTML(policy *bluemonday.Policy, c forms.Control) forms.ValidationErrors {
	value := c.Value()
	if isEmpty(value) {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return nil
	}
	if policy.Sanitize(s) != s {
		return forms.ValidationErrors{"safehtml": true}
	}
	return nil
}
