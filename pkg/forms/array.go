package forms

import (
	"fmt"
	"slices"
	"strconv"
)

// FormArray is the container control type indexed by position: it holds
// an ordered list of child controls and aggregates their values into a
// slice.
type FormArray struct {
	*control

	controls []Control
}

// NewArray creates an array from the given child controls, preserving
// their order.
//
// Example:
//
//	tags := forms.NewArray([]forms.Control{
//	    forms.NewControl("go"),
//	    forms.NewControl("forms"),
//	}, forms.WithValidators(validators.MinLength(1)))
func NewArray(controls []Control, opts ...Option) *FormArray {
	cfg := applyOptions(opts)
	a := &FormArray{
		control:  &control{},
		controls: slices.Clone(controls),
	}
	a.bind(a)
	for _, child := range a.controls {
		a.linkChild(child)
	}
	a.finishInit(cfg)
	return a
}

// Len returns the number of child controls.
func (a *FormArray) Len() int { return len(a.controls) }

// At returns the child at the given index, or nil when the index is out
// of range.
func (a *FormArray) At(index int) Control {
	if index < 0 || index >= len(a.controls) {
		return nil
	}
	return a.controls[index]
}

// Controls returns a copy of the array's child list.
func (a *FormArray) Controls() []Control {
	return slices.Clone(a.controls)
}

// Push appends a child control and recomputes the array.
func (a *FormArray) Push(child Control, opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := a.lockTree()
	a.controls = append(a.controls, child)
	a.linkChild(child)
	a.updateValueAndValidity(o)
	a.unlock(t)
}

// Insert adds a child control at the given index, shifting later
// children, and recomputes the array.
func (a *FormArray) Insert(index int, child Control, opts ...UpdateOption) error {
	if index < 0 || index > len(a.controls) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	o := applyUpdateOptions(opts)
	t := a.lockTree()
	a.controls = slices.Insert(a.controls, index, child)
	a.linkChild(child)
	a.updateValueAndValidity(o)
	a.unlock(t)
	return nil
}

// RemoveAt removes the child at the given index, unlinking it into a
// standalone tree, and recomputes the array.
func (a *FormArray) RemoveAt(index int, opts ...UpdateOption) error {
	if index < 0 || index >= len(a.controls) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	o := applyUpdateOptions(opts)
	t := a.lockTree()
	a.unlinkChild(a.controls[index])
	a.controls = slices.Delete(a.controls, index, index+1)
	a.updateValueAndValidity(o)
	a.unlock(t)
	return nil
}

// Clear removes every child control and recomputes the array.
func (a *FormArray) Clear(opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := a.lockTree()
	for _, child := range a.controls {
		a.unlinkChild(child)
	}
	a.controls = nil
	a.updateValueAndValidity(o)
	a.unlock(t)
}

// RawValue returns a slice of every child's raw value, disabled children
// included.
func (a *FormArray) RawValue() any {
	out := make([]any, len(a.controls))
	for i, child := range a.controls {
		out[i] = child.RawValue()
	}
	return out
}

// ResetTo resets the array's children to the given values, marking the
// subtree pristine and untouched. Children beyond the slice reset to
// their own defaults.
func (a *FormArray) ResetTo(values []any, opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := a.lockTree()
	a.resetAny(values, o)
	a.unlock(t)
}

// --- variant capability set -------------------------------------------

// updateValue rebuilds the aggregate slice in child order. Disabled
// children are skipped unless the array itself is disabled.
func (a *FormArray) updateValue() {
	out := make([]any, 0, len(a.controls))
	for _, child := range a.controls {
		if child.Enabled() || a.Disabled() {
			out = append(out, child.Value())
		}
	}
	a.value = out
}

func (a *FormArray) forEachChild(fn func(Control)) {
	for _, child := range a.controls {
		fn(child)
	}
}

// anyControls checks the predicate against enabled children only.
func (a *FormArray) anyControls(pred func(Control) bool) bool {
	for _, child := range a.controls {
		if child.Enabled() && pred(child) {
			return true
		}
	}
	return false
}

// allControlsDisabled reports whether every child is disabled. An empty
// array only counts as disabled when it was disabled explicitly.
func (a *FormArray) allControlsDisabled() bool {
	for _, child := range a.controls {
		if child.Enabled() {
			return false
		}
	}
	return len(a.controls) > 0 || a.Disabled()
}

// find treats the name as a numeric index.
func (a *FormArray) find(name string) Control {
	index, err := strconv.Atoi(name)
	if err != nil {
		return nil
	}
	return a.At(index)
}

// setValueInternal requires the value slice to match the control list in
// length and order.
func (a *FormArray) setValueInternal(value any, o updateOpts) error {
	values, ok := value.([]any)
	if !ok {
		return fmt.Errorf("%w: FormArray requires []any, got %T", ErrInvalidValueType, value)
	}
	if len(values) != len(a.controls) {
		return fmt.Errorf("%w: got %d values for %d controls", ErrLengthMismatch, len(values), len(a.controls))
	}
	for i, child := range a.controls {
		if err := unwrap(child).self.setValueInternal(values[i], updateOpts{onlySelf: true, skipEvents: o.skipEvents}); err != nil {
			return err
		}
	}
	a.updateValueAndValidity(o)
	return nil
}

// patchValueInternal applies as many values as are supplied; a shorter
// slice leaves the remaining children untouched.
func (a *FormArray) patchValueInternal(value any, o updateOpts) error {
	values, ok := value.([]any)
	if !ok {
		return fmt.Errorf("%w: FormArray requires []any, got %T", ErrInvalidValueType, value)
	}
	for i, v := range values {
		if i >= len(a.controls) {
			break
		}
		if err := unwrap(a.controls[i]).self.patchValueInternal(v, updateOpts{onlySelf: true, skipEvents: o.skipEvents}); err != nil {
			return err
		}
	}
	a.updateValueAndValidity(o)
	return nil
}

func (a *FormArray) resetInternal(o updateOpts) {
	a.resetAny(nil, o)
}

func (a *FormArray) resetAny(value any, o updateOpts) {
	values, _ := value.([]any)
	for i, child := range a.controls {
		childOpts := updateOpts{onlySelf: true, skipEvents: o.skipEvents}
		if i < len(values) {
			unwrap(child).self.resetAny(values[i], childOpts)
		} else {
			unwrap(child).self.resetInternal(childOpts)
		}
	}
	a.updatePristine(o)
	a.updateTouched(o)
	a.updateValueAndValidity(o)
}
