package forms

import (
	"fmt"
	"slices"
	"sort"
)

// FormGroup is the container control type keyed by name: it holds a
// mapping from string keys to child controls and aggregates their values
// into a map.
type FormGroup struct {
	*control

	controls map[string]Control
	order    []string
}

// NewGroup creates a group from the given child controls. The children
// are linked to the group and iterated in sorted key order; controls
// added later keep their insertion position.
//
// Example:
//
//	address := forms.NewGroup(map[string]forms.Control{
//	    "street": forms.NewControl(""),
//	    "city":   forms.NewControl("", forms.WithValidators(validators.Required)),
//	})
func NewGroup(controls map[string]Control, opts ...Option) *FormGroup {
	cfg := applyOptions(opts)
	g := &FormGroup{
		control:  &control{},
		controls: make(map[string]Control, len(controls)),
		order:    make([]string, 0, len(controls)),
	}
	g.bind(g)
	for name, child := range controls {
		g.controls[name] = child
		g.order = append(g.order, name)
	}
	sort.Strings(g.order)
	for _, name := range g.order {
		g.linkChild(g.controls[name])
	}
	g.finishInit(cfg)
	return g
}

// Contains reports whether the group has an enabled control under the
// given name.
func (g *FormGroup) Contains(name string) bool {
	child, ok := g.controls[name]
	return ok && child.Enabled()
}

// Controls returns a copy of the group's child map.
func (g *FormGroup) Controls() map[string]Control {
	out := make(map[string]Control, len(g.controls))
	for name, child := range g.controls {
		out[name] = child
	}
	return out
}

// Keys returns the group's child names in iteration order.
func (g *FormGroup) Keys() []string {
	return slices.Clone(g.order)
}

// Len returns the number of child controls.
func (g *FormGroup) Len() int { return len(g.controls) }

// AddControl adds a child under the given name and recomputes the group.
// If the name is already taken the existing control is kept.
func (g *FormGroup) AddControl(name string, child Control, opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := g.lockTree()
	if _, exists := g.controls[name]; !exists {
		g.controls[name] = child
		g.order = append(g.order, name)
		g.linkChild(child)
	}
	g.updateValueAndValidity(o)
	g.unlock(t)
}

// RemoveControl removes the child under the given name, unlinking it into
// a standalone tree, and recomputes the group. Removing an absent name is
// a no-op apart from the recomputation.
func (g *FormGroup) RemoveControl(name string, opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := g.lockTree()
	if child, exists := g.controls[name]; exists {
		g.unlinkChild(child)
		delete(g.controls, name)
		g.order = slices.DeleteFunc(g.order, func(n string) bool { return n == name })
	}
	g.updateValueAndValidity(o)
	g.unlock(t)
}

// SetControl replaces (or adds) the child under the given name and
// recomputes the group.
func (g *FormGroup) SetControl(name string, child Control, opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := g.lockTree()
	if existing, exists := g.controls[name]; exists {
		g.unlinkChild(existing)
	} else {
		g.order = append(g.order, name)
	}
	g.controls[name] = child
	g.linkChild(child)
	g.updateValueAndValidity(o)
	g.unlock(t)
}

// RawValue returns a map of every child's raw value, disabled children
// included.
func (g *FormGroup) RawValue() any {
	out := make(map[string]any, len(g.controls))
	for name, child := range g.controls {
		out[name] = child.RawValue()
	}
	return out
}

// ResetTo resets the group's children to the given values, marking the
// subtree pristine and untouched. Children without an entry reset to
// their own defaults.
func (g *FormGroup) ResetTo(values map[string]any, opts ...UpdateOption) {
	o := applyUpdateOptions(opts)
	t := g.lockTree()
	g.resetAny(values, o)
	g.unlock(t)
}

// --- variant capability set -------------------------------------------

// updateValue rebuilds the aggregate map. Disabled children are excluded
// unless the group itself is disabled.
func (g *FormGroup) updateValue() {
	out := make(map[string]any, len(g.controls))
	for _, name := range g.order {
		child := g.controls[name]
		if child.Enabled() || g.Disabled() {
			out[name] = child.Value()
		}
	}
	g.value = out
}

func (g *FormGroup) forEachChild(fn func(Control)) {
	for _, name := range g.order {
		fn(g.controls[name])
	}
}

// anyControls checks the predicate against enabled children only.
func (g *FormGroup) anyControls(pred func(Control) bool) bool {
	for _, name := range g.order {
		child := g.controls[name]
		if child.Enabled() && pred(child) {
			return true
		}
	}
	return false
}

// allControlsDisabled reports whether every child is disabled. An empty
// group only counts as disabled when it was disabled explicitly.
func (g *FormGroup) allControlsDisabled() bool {
	for _, child := range g.controls {
		if child.Enabled() {
			return false
		}
	}
	return len(g.controls) > 0 || g.Disabled()
}

func (g *FormGroup) find(name string) Control {
	if child, ok := g.controls[name]; ok {
		return child
	}
	return nil
}

// setValueInternal requires the value to be a map covering every child
// exactly: a missing key or an unknown key is a structural error, and
// nothing is applied when the shape check fails.
func (g *FormGroup) setValueInternal(value any, o updateOpts) error {
	values, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: FormGroup requires map[string]any, got %T", ErrInvalidValueType, value)
	}
	for _, name := range g.order {
		if _, present := values[name]; !present {
			return fmt.Errorf("%w: %q", ErrMissingValue, name)
		}
	}
	for name := range values {
		if _, present := g.controls[name]; !present {
			return fmt.Errorf("%w: %q", ErrControlNotFound, name)
		}
	}
	for _, name := range g.order {
		child := unwrap(g.controls[name])
		if err := child.self.setValueInternal(values[name], updateOpts{onlySelf: true, skipEvents: o.skipEvents}); err != nil {
			return err
		}
	}
	g.updateValueAndValidity(o)
	return nil
}

// patchValueInternal applies the supplied entries and ignores keys that
// have no matching control.
func (g *FormGroup) patchValueInternal(value any, o updateOpts) error {
	values, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: FormGroup requires map[string]any, got %T", ErrInvalidValueType, value)
	}
	for _, name := range g.order {
		v, present := values[name]
		if !present {
			continue
		}
		child := unwrap(g.controls[name])
		if err := child.self.patchValueInternal(v, updateOpts{onlySelf: true, skipEvents: o.skipEvents}); err != nil {
			return err
		}
	}
	g.updateValueAndValidity(o)
	return nil
}

func (g *FormGroup) resetInternal(o updateOpts) {
	g.resetAny(nil, o)
}

func (g *FormGroup) resetAny(value any, o updateOpts) {
	values, _ := value.(map[string]any)
	for _, name := range g.order {
		child := unwrap(g.controls[name])
		childOpts := updateOpts{onlySelf: true, skipEvents: o.skipEvents}
		if v, present := values[name]; present {
			child.self.resetAny(v, childOpts)
		} else {
			child.self.resetInternal(childOpts)
		}
	}
	g.updatePristine(o)
	g.updateTouched(o)
	g.updateValueAndValidity(o)
}
