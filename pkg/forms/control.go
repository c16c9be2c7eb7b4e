package forms

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// Control is the public surface shared by [FormControl], [FormGroup] and
// [FormArray]. It is implemented only by this package: the tree's
// propagation algorithms rely on internal cooperation between nodes.
type Control interface {
	// Value returns the control's current value. For containers the
	// value aggregates enabled children only; see RawValue.
	Value() any
	// RawValue returns the control's value including disabled children.
	RawValue() any
	// Status returns the control's current validity state.
	Status() Status
	// Valid reports whether the status is StatusValid.
	Valid() bool
	// Invalid reports whether the status is StatusInvalid.
	Invalid() bool
	// Pending reports whether the status is StatusPending.
	Pending() bool
	// Disabled reports whether the status is StatusDisabled.
	Disabled() bool
	// Enabled reports whether the status is anything but StatusDisabled.
	Enabled() bool
	// Errors returns the control's current validation errors, or nil.
	Errors() ValidationErrors
	// Pristine reports whether the value is unchanged since creation or
	// the last reset.
	Pristine() bool
	// Dirty is the complement of Pristine.
	Dirty() bool
	// Touched reports whether a blur-equivalent interaction occurred.
	Touched() bool
	// Untouched is the complement of Touched.
	Untouched() bool
	// Parent returns the owning container, or nil at the root.
	Parent() Control
	// Root returns the top-most ancestor (the control itself when it has
	// no parent).
	Root() Control
	// SetParent sets the back-reference to the owning container.
	// Container types maintain it automatically; SetParent(nil) unlinks
	// the control into a standalone tree.
	SetParent(parent Control)
	// UpdateOn returns the control's update strategy, inherited from the
	// nearest ancestor when the control does not set its own.
	UpdateOn() UpdateOn

	// Get resolves a dot-delimited path of child names and indices
	// ("address.city", "items.0.name"). It returns nil when any segment
	// is absent.
	Get(path string) Control
	// GetError returns the payload for the given error code on this
	// control, or on the control at the given path. Nil when absent.
	GetError(code string, path ...string) any
	// HasError reports whether GetError returns a non-nil payload.
	HasError(code string, path ...string) bool

	// SetValue replaces the control's value. Container controls require
	// the value to cover every child exactly; see PatchValue for the
	// lenient variant. Structural mismatches are returned as errors.
	SetValue(value any, opts ...UpdateOption) error
	// PatchValue updates the parts of the value that are supplied,
	// tolerating missing entries.
	PatchValue(value any, opts ...UpdateOption) error
	// Reset restores the control (and its children) to default values
	// and marks the subtree pristine and untouched.
	Reset(opts ...UpdateOption)

	// MarkAsTouched marks the control touched and cascades the mark up
	// the parent chain.
	MarkAsTouched(opts ...UpdateOption)
	// MarkAllAsTouched marks the control and all descendants touched.
	MarkAllAsTouched()
	// MarkAsUntouched marks the control and all descendants untouched,
	// then recomputes ancestor touched flags.
	MarkAsUntouched(opts ...UpdateOption)
	// MarkAsDirty marks the control dirty and cascades the mark up the
	// parent chain.
	MarkAsDirty(opts ...UpdateOption)
	// MarkAsPristine marks the control and all descendants pristine,
	// then recomputes ancestor dirty flags.
	MarkAsPristine(opts ...UpdateOption)
	// MarkAsPending puts the control into StatusPending.
	MarkAsPending(opts ...UpdateOption)

	// Disable excludes the control from validation and ancestor values.
	Disable(opts ...UpdateOption)
	// Enable re-includes the control and recomputes validity.
	Enable(opts ...UpdateOption)

	// SetErrors assigns validation errors directly and recomputes status
	// without re-running validators. Useful for surfacing server-side
	// validation results on a control.
	SetErrors(errs ValidationErrors, opts ...UpdateOption)

	// Validator returns the composed synchronous validator, or nil.
	Validator() ValidatorFunc
	// AsyncValidator returns the composed asynchronous validator, or nil.
	AsyncValidator() AsyncValidatorFunc
	// SetValidators replaces the synchronous validator list. The change
	// takes effect on the next UpdateValueAndValidity call.
	SetValidators(validators ...ValidatorFunc)
	// AddValidators appends validators not already present.
	AddValidators(validators ...ValidatorFunc)
	// RemoveValidators removes the given validators, matched by function
	// identity.
	RemoveValidators(validators ...ValidatorFunc)
	// HasValidator reports whether the given validator is present,
	// matched by function identity.
	HasValidator(validator ValidatorFunc) bool
	// ClearValidators removes all synchronous validators.
	ClearValidators()
	// SetAsyncValidators replaces the asynchronous validator list.
	SetAsyncValidators(validators ...AsyncValidatorFunc)
	// AddAsyncValidators appends asynchronous validators not already
	// present.
	AddAsyncValidators(validators ...AsyncValidatorFunc)
	// RemoveAsyncValidators removes the given asynchronous validators.
	RemoveAsyncValidators(validators ...AsyncValidatorFunc)
	// HasAsyncValidator reports whether the given asynchronous validator
	// is present.
	HasAsyncValidator(validator AsyncValidatorFunc) bool
	// ClearAsyncValidators removes all asynchronous validators.
	ClearAsyncValidators()

	// UpdateValueAndValidity recomputes the control's value and status
	// and cascades the recomputation up the parent chain.
	UpdateValueAndValidity(opts ...UpdateOption)

	// OnValueChange registers a value observer; see package docs for
	// delivery semantics.
	OnValueChange(fn func(value any)) Subscription
	// OnStatusChange registers a status observer.
	OnStatusChange(fn func(status Status)) Subscription

	base() *control
}

// variant is the capability set each concrete control type supplies to
// the shared engine. Every propagation algorithm in this file is written
// against these five traversal operations plus the typed value setters,
// so the state machine exists once rather than per type.
type variant interface {
	Control

	updateValue()
	forEachChild(fn func(child Control))
	anyControls(pred func(child Control) bool) bool
	allControlsDisabled() bool
	find(name string) Control

	setValueInternal(value any, o updateOpts) error
	patchValueInternal(value any, o updateOpts) error
	resetInternal(o updateOpts)
	resetAny(value any, o updateOpts)
}

// treeState is shared by every control attached to one tree. Its mutex
// serializes mutations (including asynchronous validator completions);
// pending holds notifications queued during the current mutation, fired
// once the lock is released.
type treeState struct {
	mu      sync.Mutex
	pending []func()
}

// control is the shared state/propagation engine embedded by the three
// concrete control types.
type control struct {
	self   variant
	parent *control
	tree   atomic.Pointer[treeState]

	value   any
	status  Status
	errors  ValidationErrors
	dirty   bool
	touched bool

	updateOn UpdateOn

	rawValidators      []ValidatorFunc
	rawAsyncValidators []AsyncValidatorFunc
	validator          ValidatorFunc
	asyncValidator     AsyncValidatorFunc

	asyncCancel  context.CancelFunc
	asyncGen     uint64
	pendingAsync bool

	valueObs  []valueObserver
	statusObs []statusObserver
}

// bind wires the base into its concrete type. Called first in every
// constructor, before children are linked.
func (c *control) bind(self variant) {
	c.self = self
	c.tree.Store(&treeState{})
}

// finishInit applies the construction options and computes the initial
// status. Called last in every constructor, after children are linked and
// before the control is visible to any other goroutine.
func (c *control) finishInit(cfg *config) {
	c.rawValidators = slices.Clone(cfg.validators)
	c.validator = Compose(c.rawValidators...)
	c.rawAsyncValidators = slices.Clone(cfg.asyncValidators)
	c.asyncValidator = ComposeAsync(c.rawAsyncValidators...)
	c.updateOn = cfg.updateOn
	c.status = StatusValid

	if cfg.disabled {
		c.disableInternal(updateOpts{onlySelf: true, skipEvents: true})
	} else {
		c.updateValueAndValidity(updateOpts{onlySelf: true, skipEvents: true})
	}
}

func (c *control) base() *control { return c }

func unwrap(c Control) *control {
	if c == nil {
		return nil
	}
	return c.base()
}

// lockTree locks the tree the control currently belongs to, retrying if
// the control was moved to a different tree while waiting.
func (c *control) lockTree() *treeState {
	for {
		t := c.tree.Load()
		t.mu.Lock()
		if c.tree.Load() == t {
			return t
		}
		t.mu.Unlock()
	}
}

// unlock releases the tree lock and delivers the notifications queued
// during the mutation, in settle order.
func (c *control) unlock(t *treeState) {
	pending := t.pending
	t.pending = nil
	t.mu.Unlock()
	for _, fire := range pending {
		fire()
	}
}

// adoptTree moves the control's whole subtree onto the given tree state.
func (c *control) adoptTree(t *treeState) {
	c.tree.Store(t)
	c.self.forEachChild(func(child Control) {
		unwrap(child).adoptTree(t)
	})
}

// --- read surface -----------------------------------------------------

func (c *control) Value() any               { return c.value }
func (c *control) Status() Status           { return c.status }
func (c *control) Valid() bool              { return c.status == StatusValid }
func (c *control) Invalid() bool            { return c.status == StatusInvalid }
func (c *control) Pending() bool            { return c.status == StatusPending }
func (c *control) Disabled() bool           { return c.status == StatusDisabled }
func (c *control) Enabled() bool            { return c.status != StatusDisabled }
func (c *control) Errors() ValidationErrors { return c.errors }
func (c *control) Pristine() bool           { return !c.dirty }
func (c *control) Dirty() bool              { return c.dirty }
func (c *control) Touched() bool            { return c.touched }
func (c *control) Untouched() bool          { return !c.touched }

func (c *control) Parent() Control {
	if c.parent == nil {
		return nil
	}
	return c.parent.self
}

func (c *control) Root() Control {
	x := c
	for x.parent != nil {
		x = x.parent
	}
	return x.self
}

func (c *control) UpdateOn() UpdateOn {
	if c.updateOn != "" {
		return c.updateOn
	}
	if c.parent != nil {
		return c.parent.UpdateOn()
	}
	return UpdateOnChange
}

func (c *control) Get(path string) Control {
	if path == "" {
		return nil
	}
	current := Control(c.self)
	for _, segment := range strings.Split(path, ".") {
		if current == nil {
			return nil
		}
		current = unwrap(current).self.find(segment)
	}
	return current
}

func (c *control) GetError(code string, path ...string) any {
	target := Control(c.self)
	if len(path) > 0 {
		target = c.Get(strings.Join(path, "."))
	}
	if target == nil {
		return nil
	}
	return target.Errors()[code]
}

func (c *control) HasError(code string, path ...string) bool {
	return c.GetError(code, path...) != nil
}

// --- value mutation ---------------------------------------------------

func (c *control) SetValue(value any, opts ...UpdateOption) error {
	o := applyUpdateOptions(opts)
	t := c.lockTree()
	err := c.self.setValueInternal(value, o)
	c.unlock(t)
	return err
}

func (c *control) PatchValue(value any, opts ...UpdateOption) error {
	o := applyUpdateOptions(opts)
	t := c.lockTree()
	err := c.self.patchValueInternal(value, o)
	c.unlock(t)
	return err
}

func (c *control) Reset(opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := c.lockTree()
	c.self.resetInternal(o)
	c.unlock(t)
}

// --- interaction state ------------------------------------------------

func (c *control) MarkAsTouched(opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := c.lockTree()
	c.markAsTouchedInternal(o)
	c.unlock(t)
}

func (c *control) MarkAllAsTouched() {
	t := c.lockTree()
	c.markAllAsTouchedInternal()
	c.unlock(t)
}

func (c *control) MarkAsUntouched(opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := c.lockTree()
	c.markAsUntouchedInternal(o)
	c.unlock(t)
}

func (c *control) MarkAsDirty(opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := c.lockTree()
	c.markAsDirtyInternal(o)
	c.unlock(t)
}

func (c *control) MarkAsPristine(opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := c.lockTree()
	c.markAsPristineInternal(o)
	c.unlock(t)
}

func (c *control) MarkAsPending(opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := c.lockTree()
	c.markAsPendingInternal(o)
	c.unlock(t)
}

func (c *control) markAsTouchedInternal(o updateOpts) {
	c.touched = true
	if c.parent != nil && !o.onlySelf {
		c.parent.markAsTouchedInternal(o)
	}
}

func (c *control) markAllAsTouchedInternal() {
	c.touched = true
	c.self.forEachChild(func(child Control) {
		unwrap(child).markAllAsTouchedInternal()
	})
}

func (c *control) markAsUntouchedInternal(o updateOpts) {
	c.touched = false
	c.self.forEachChild(func(child Control) {
		unwrap(child).markAsUntouchedInternal(updateOpts{onlySelf: true})
	})
	if c.parent != nil && !o.onlySelf {
		c.parent.updateTouched(o)
	}
}

func (c *control) markAsDirtyInternal(o updateOpts) {
	c.dirty = true
	if c.parent != nil && !o.onlySelf {
		c.parent.markAsDirtyInternal(o)
	}
}

func (c *control) markAsPristineInternal(o updateOpts) {
	c.dirty = false
	c.self.forEachChild(func(child Control) {
		unwrap(child).markAsPristineInternal(updateOpts{onlySelf: true})
	})
	if c.parent != nil && !o.onlySelf {
		c.parent.updatePristine(o)
	}
}

func (c *control) markAsPendingInternal(o updateOpts) {
	c.status = StatusPending
	if !o.skipEvents {
		c.queueStatusEvent()
	}
	if c.parent != nil && !o.onlySelf {
		c.parent.markAsPendingInternal(o)
	}
}

// updateTouched recomputes the aggregate touched flag from the children
// and cascades the recomputation upward.
func (c *control) updateTouched(o updateOpts) {
	c.touched = c.self.anyControls(func(child Control) bool { return child.Touched() })
	if c.parent != nil && !o.onlySelf {
		c.parent.updateTouched(o)
	}
}

// updatePristine recomputes the aggregate dirty flag from the children
// and cascades the recomputation upward.
func (c *control) updatePristine(o updateOpts) {
	c.dirty = c.self.anyControls(func(child Control) bool { return child.Dirty() })
	if c.parent != nil && !o.onlySelf {
		c.parent.updatePristine(o)
	}
}

// --- enable / disable -------------------------------------------------

func (c *control) Disable(opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := c.lockTree()
	c.disableInternal(o)
	c.unlock(t)
}

func (c *control) Enable(opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := c.lockTree()
	c.enableInternal(o)
	c.unlock(t)
}

func (c *control) disableInternal(o updateOpts) {
	// Captured before the status flips: a parent that was explicitly
	// marked dirty must not be re-pristined as a side effect of this
	// child's state change.
	skipPristineCheck := c.parentMarkedDirty(o.onlySelf)

	c.status = StatusDisabled
	c.errors = nil
	c.cancelAsync()
	c.self.forEachChild(func(child Control) {
		unwrap(child).disableInternal(updateOpts{onlySelf: true, skipEvents: o.skipEvents})
	})
	c.self.updateValue()

	if !o.skipEvents {
		c.queueValueEvent()
		c.queueStatusEvent()
	}

	c.updateAncestors(o, skipPristineCheck)
}

func (c *control) enableInternal(o updateOpts) {
	skipPristineCheck := c.parentMarkedDirty(o.onlySelf)

	c.status = StatusValid
	c.self.forEachChild(func(child Control) {
		unwrap(child).enableInternal(updateOpts{onlySelf: true, skipEvents: o.skipEvents})
	})
	c.updateValueAndValidity(updateOpts{onlySelf: true, skipEvents: o.skipEvents})

	c.updateAncestors(o, skipPristineCheck)
}

func (c *control) updateAncestors(o updateOpts, skipPristineCheck bool) {
	if c.parent == nil || o.onlySelf {
		return
	}
	c.parent.updateValueAndValidity(updateOpts{skipEvents: o.skipEvents})
	if !skipPristineCheck {
		c.parent.updatePristine(updateOpts{})
	}
	c.parent.updateTouched(updateOpts{})
}

// parentMarkedDirty reports whether the parent's dirtiness was set
// explicitly rather than derived from its children.
func (c *control) parentMarkedDirty(onlySelf bool) bool {
	return !onlySelf && c.parent != nil && c.parent.dirty &&
		!c.parent.self.anyControls(func(child Control) bool { return child.Dirty() })
}

// --- validity engine --------------------------------------------------

// UpdateValueAndValidity recomputes the control's value from its children
// and re-runs validation, then cascades the recomputation to ancestors.
// Children are read as-is: their own mutations have already settled them
// bottom-up before this control recomputes.
func (c *control) UpdateValueAndValidity(opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := c.lockTree()
	c.updateValueAndValidity(o)
	c.unlock(t)
}

func (c *control) updateValueAndValidity(o updateOpts) {
	c.setInitialStatus()
	c.self.updateValue()

	if c.Enabled() {
		c.cancelAsync()
		c.errors = c.runValidator()
		c.status = c.calculateStatus()
		if c.status == StatusValid || c.status == StatusPending {
			c.runAsyncValidator(o)
		}
	}

	if !o.skipEvents {
		c.queueValueEvent()
		c.queueStatusEvent()
	}

	if c.parent != nil && !o.onlySelf {
		c.parent.updateValueAndValidity(o)
	}
}

func (c *control) setInitialStatus() {
	if c.self.allControlsDisabled() {
		c.status = StatusDisabled
	} else {
		c.status = StatusValid
	}
}

func (c *control) runValidator() ValidationErrors {
	if c.validator == nil {
		return nil
	}
	return c.validator(c.self)
}

func (c *control) calculateStatus() Status {
	switch {
	case c.self.allControlsDisabled():
		return StatusDisabled
	case len(c.errors) > 0:
		return StatusInvalid
	case c.pendingAsync || c.anyControlsHaveStatus(StatusPending):
		return StatusPending
	case c.anyControlsHaveStatus(StatusInvalid):
		return StatusInvalid
	default:
		return StatusValid
	}
}

func (c *control) anyControlsHaveStatus(status Status) bool {
	return c.self.anyControls(func(child Control) bool { return child.Status() == status })
}

// runAsyncValidator starts the composed asynchronous validator on its own
// goroutine. The run is identified by a generation number: cancelling
// bumps the generation, so a superseded run's result is discarded even if
// the validator ignored its context.
func (c *control) runAsyncValidator(o updateOpts) {
	if c.asyncValidator == nil {
		return
	}
	c.status = StatusPending
	c.pendingAsync = true

	ctx, cancel := context.WithCancel(context.Background())
	c.asyncCancel = cancel
	generation := c.asyncGen
	validate := c.asyncValidator
	self := c.self

	go func() {
		defer cancel()
		errs, err := validate(ctx, self)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			errs = mergeErrors(ValidationErrors{"async": err.Error()}, errs)
		}

		t := c.lockTree()
		if generation != c.asyncGen {
			// A newer cycle started while we were validating.
			c.unlock(t)
			return
		}
		c.pendingAsync = false
		c.asyncCancel = nil
		c.setErrorsInternal(errs, o)
		c.unlock(t)
	}()
}

func (c *control) cancelAsync() {
	if c.asyncCancel != nil {
		c.asyncCancel()
		c.asyncCancel = nil
	}
	c.asyncGen++
	c.pendingAsync = false
}

// --- errors -----------------------------------------------------------

func (c *control) SetErrors(errs ValidationErrors, opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := c.lockTree()
	c.setErrorsInternal(errs, o)
	c.unlock(t)
}

// setErrorsInternal assigns errors directly and recomputes status from
// the current state, without re-running the synchronous validator. The
// recomputation always walks the full ancestor chain.
func (c *control) setErrorsInternal(errs ValidationErrors, o updateOpts) {
	if len(errs) == 0 {
		errs = nil
	}
	c.errors = errs
	c.updateControlsErrors(o.skipEvents)
}

func (c *control) updateControlsErrors(skipEvents bool) {
	c.status = c.calculateStatus()
	if !skipEvents {
		c.queueStatusEvent()
	}
	if c.parent != nil {
		c.parent.updateControlsErrors(skipEvents)
	}
}

// --- validator management ---------------------------------------------
//
// Validator setters only mutate the stored list; the caller invokes
// UpdateValueAndValidity once afterwards for the change to take effect.

func (c *control) Validator() ValidatorFunc           { return c.validator }
func (c *control) AsyncValidator() AsyncValidatorFunc { return c.asyncValidator }

func (c *control) SetValidators(validators ...ValidatorFunc) {
	t := c.lockTree()
	c.rawValidators = slices.Clone(validators)
	c.validator = Compose(c.rawValidators...)
	c.unlock(t)
}

func (c *control) AddValidators(validators ...ValidatorFunc) {
	t := c.lockTree()
	for _, fn := range validators {
		if fn == nil || containsFunc(c.rawValidators, fn) {
			continue
		}
		c.rawValidators = append(c.rawValidators, fn)
	}
	c.validator = Compose(c.rawValidators...)
	c.unlock(t)
}

func (c *control) RemoveValidators(validators ...ValidatorFunc) {
	t := c.lockTree()
	for _, fn := range validators {
		c.rawValidators = slices.DeleteFunc(c.rawValidators, func(existing ValidatorFunc) bool {
			return sameFunc(existing, fn)
		})
	}
	c.validator = Compose(c.rawValidators...)
	c.unlock(t)
}

func (c *control) HasValidator(validator ValidatorFunc) bool {
	return containsFunc(c.rawValidators, validator)
}

func (c *control) ClearValidators() {
	t := c.lockTree()
	c.rawValidators = nil
	c.validator = nil
	c.unlock(t)
}

func (c *control) SetAsyncValidators(validators ...AsyncValidatorFunc) {
	t := c.lockTree()
	c.rawAsyncValidators = slices.Clone(validators)
	c.asyncValidator = ComposeAsync(c.rawAsyncValidators...)
	c.unlock(t)
}

func (c *control) AddAsyncValidators(validators ...AsyncValidatorFunc) {
	t := c.lockTree()
	for _, fn := range validators {
		if fn == nil || containsFunc(c.rawAsyncValidators, fn) {
			continue
		}
		c.rawAsyncValidators = append(c.rawAsyncValidators, fn)
	}
	c.asyncValidator = ComposeAsync(c.rawAsyncValidators...)
	c.unlock(t)
}

func (c *control) RemoveAsyncValidators(validators ...AsyncValidatorFunc) {
	t := c.lockTree()
	for _, fn := range validators {
		c.rawAsyncValidators = slices.DeleteFunc(c.rawAsyncValidators, func(existing AsyncValidatorFunc) bool {
			return sameFunc(existing, fn)
		})
	}
	c.asyncValidator = ComposeAsync(c.rawAsyncValidators...)
	c.unlock(t)
}

func (c *control) HasAsyncValidator(validator AsyncValidatorFunc) bool {
	return containsFunc(c.rawAsyncValidators, validator)
}

func (c *control) ClearAsyncValidators() {
	t := c.lockTree()
	c.rawAsyncValidators = nil
	c.asyncValidator = nil
	c.unlock(t)
}

// sameFunc compares validators by function identity, the closest Go
// equivalent to reference equality.
func sameFunc[F any](a, b F) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func containsFunc[F any](list []F, fn F) bool {
	for _, existing := range list {
		if sameFunc(existing, fn) {
			return true
		}
	}
	return false
}

// --- parent linkage ---------------------------------------------------

func (c *control) SetParent(parent Control) {
	p := unwrap(parent)
	t := c.lockTree()
	c.parent = p
	if p != nil {
		c.adoptTree(p.tree.Load())
	} else {
		c.adoptTree(&treeState{})
	}
	c.unlock(t)
}

// linkChild attaches a child to this container: back-reference plus tree
// adoption. Caller holds the tree lock.
func (c *control) linkChild(child Control) {
	b := unwrap(child)
	b.parent = c
	b.adoptTree(c.tree.Load())
}

// unlinkChild detaches a child into its own standalone tree. Caller holds
// the tree lock.
func (c *control) unlinkChild(child Control) {
	b := unwrap(child)
	b.parent = nil
	b.adoptTree(&treeState{})
}
