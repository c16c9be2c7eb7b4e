package forms

import (
	"slices"

	"github.com/google/uuid"
)

// Subscription represents a registered observer. Unsubscribing stops
// future deliveries; it never interrupts a delivery already in flight.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the observer from its control.
// Safe to call more than once.
func (s Subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type valueObserver struct {
	id string
	fn func(value any)
}

type statusObserver struct {
	id string
	fn func(status Status)
}

// OnValueChange registers an observer invoked with the control's new
// value after every recomputation where emission is not suppressed.
func (c *control) OnValueChange(fn func(value any)) Subscription {
	t := c.lockTree()
	id := uuid.NewString()
	c.valueObs = append(c.valueObs, valueObserver{id: id, fn: fn})
	c.unlock(t)
	return Subscription{cancel: func() {
		t := c.lockTree()
		c.valueObs = slices.DeleteFunc(c.valueObs, func(o valueObserver) bool { return o.id == id })
		c.unlock(t)
	}}
}

// OnStatusChange registers an observer invoked with the control's new
// status after every recomputation where emission is not suppressed.
func (c *control) OnStatusChange(fn func(status Status)) Subscription {
	t := c.lockTree()
	id := uuid.NewString()
	c.statusObs = append(c.statusObs, statusObserver{id: id, fn: fn})
	c.unlock(t)
	return Subscription{cancel: func() {
		t := c.lockTree()
		c.statusObs = slices.DeleteFunc(c.statusObs, func(o statusObserver) bool { return o.id == id })
		c.unlock(t)
	}}
}

// queueValueEvent snapshots the current observers and value; delivery
// happens once the tree lock is released so observers may freely mutate
// the tree.
func (c *control) queueValueEvent() {
	if len(c.valueObs) == 0 {
		return
	}
	obs := slices.Clone(c.valueObs)
	value := c.value
	t := c.tree.Load()
	t.pending = append(t.pending, func() {
		for _, o := range obs {
			o.fn(value)
		}
	})
}

func (c *control) queueStatusEvent() {
	if len(c.statusObs) == 0 {
		return
	}
	obs := slices.Clone(c.statusObs)
	status := c.status
	t := c.tree.Load()
	t.pending = append(t.pending, func() {
		for _, o := range obs {
			o.fn(status)
		}
	})
}
