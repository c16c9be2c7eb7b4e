// Package forms provides an in-memory form control model: a tree of
// controls holding values, validity, and interaction state, with
// synchronous and asynchronous validation.
//
// A form is built from three control types sharing one state engine:
//
//   - [FormControl] holds a single scalar value (a text input, a checkbox).
//   - [FormGroup] holds named child controls and aggregates their values
//     into a map.
//   - [FormArray] holds an ordered list of child controls and aggregates
//     their values into a slice.
//
// Every control is in exactly one of four states: [StatusValid],
// [StatusInvalid], [StatusPending] (asynchronous validation in flight),
// or [StatusDisabled]. Alongside validity, each control tracks whether it
// has been changed (dirty/pristine) and whether it has been visited
// (touched/untouched). State changes propagate along the parent chain:
// updating a child recomputes every ancestor's aggregate value and status.
//
// # Building a form
//
//	form := forms.NewGroup(map[string]forms.Control{
//	    "email":    forms.NewControl("", forms.WithValidators(validators.Required, validators.Email)),
//	    "password": forms.NewControl("", forms.WithValidators(validators.MinLength(8))),
//	})
//
//	if err := form.Get("email").SetValue("user@example.com"); err != nil {
//	    // structural error: unknown key, wrong value shape, etc.
//	}
//
//	if form.Valid() {
//	    payload := form.Value().(map[string]any)
//	    // ...
//	}
//
// # Validators
//
// A validator is a function from a control to a [ValidationErrors] map;
// nil means the value passes. Validation failures are data, never Go
// errors: the presence of any error key makes the control invalid.
// Multiple validators are merged with [Compose]; asynchronous validators
// (uniqueness checks against a backend, for example) run concurrently via
// [ComposeAsync] and put the control into [StatusPending] until the result
// arrives. Starting a new validation cycle cancels the previous
// asynchronous run, so stale results are never applied.
//
// Changing a control's validator set is a deliberate two-step contract:
// SetValidators and friends only mutate the stored list; the caller
// invokes UpdateValueAndValidity once afterwards. This keeps batch edits
// of validators cheap.
//
// # Observing changes
//
// OnValueChange and OnStatusChange register observers that fire after the
// control's state has fully settled for the current mutation. Operations
// accept [WithoutEvents] to suppress notification and [OnlySelf] to stop
// the upward cascade.
//
// # Concurrency
//
// A control tree is owned by one logical caller: mutating the same tree
// from multiple goroutines without external synchronization is not
// supported. Asynchronous validator results arrive on their own
// goroutines and are serialized internally against mutations; observers
// registered on a control may therefore be invoked from the goroutine
// that completed the validation.
package forms
