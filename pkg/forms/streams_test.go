package forms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/forms"
)

func TestOnValueChange(t *testing.T) {
	t.Parallel()

	t.Run("delivers the new value after each mutation", func(t *testing.T) {
		t.Parallel()
		c := forms.NewControl("initial")
		var seen []any
		sub := c.OnValueChange(func(v any) { seen = append(seen, v) })
		defer sub.Unsubscribe()

		require.NoError(t, c.SetValue("a"))
		require.NoError(t, c.SetValue("b"))

		assert.Equal(t, []any{"a", "b"}, seen)
	})

	t.Run("state is fully settled at delivery time", func(t *testing.T) {
		t.Parallel()
		c := forms.NewControl("x", forms.WithValidators(requiredString))
		var statusAtDelivery forms.Status
		sub := c.OnValueChange(func(v any) { statusAtDelivery = c.Status() })
		defer sub.Unsubscribe()

		require.NoError(t, c.SetValue(""))

		assert.Equal(t, forms.StatusInvalid, statusAtDelivery)
	})

	t.Run("withoutEvents suppresses delivery", func(t *testing.T) {
		t.Parallel()
		c := forms.NewControl("initial")
		calls := 0
		sub := c.OnValueChange(func(v any) { calls++ })
		defer sub.Unsubscribe()

		require.NoError(t, c.SetValue("quiet", forms.WithoutEvents()))

		assert.Zero(t, calls)
		assert.Equal(t, "quiet", c.Value(), "the state still changed")
	})

	t.Run("unsubscribe stops future deliveries", func(t *testing.T) {
		t.Parallel()
		c := forms.NewControl("initial")
		calls := 0
		sub := c.OnValueChange(func(v any) { calls++ })

		require.NoError(t, c.SetValue("a"))
		sub.Unsubscribe()
		sub.Unsubscribe() // safe to repeat
		require.NoError(t, c.SetValue("b"))

		assert.Equal(t, 1, calls)
	})

	t.Run("child mutations reach parent observers", func(t *testing.T) {
		t.Parallel()
		child := forms.NewControl("old")
		group := forms.NewGroup(map[string]forms.Control{"name": child})
		var seen []any
		sub := group.OnValueChange(func(v any) { seen = append(seen, v) })
		defer sub.Unsubscribe()

		require.NoError(t, child.SetValue("new"))

		assert.Equal(t, []any{map[string]any{"name": "new"}}, seen)
	})

	t.Run("onlySelf keeps parent observers quiet", func(t *testing.T) {
		t.Parallel()
		child := forms.NewControl("old")
		group := forms.NewGroup(map[string]forms.Control{"name": child})
		calls := 0
		sub := group.OnValueChange(func(v any) { calls++ })
		defer sub.Unsubscribe()

		require.NoError(t, child.SetValue("new", forms.OnlySelf()))

		assert.Zero(t, calls)
	})

	t.Run("observers may mutate the tree", func(t *testing.T) {
		t.Parallel()
		c := forms.NewControl("")
		var final forms.Status
		sub := c.OnValueChange(func(v any) {
			if v == "flag" {
				c.SetErrors(forms.ValidationErrors{"flagged": true})
			}
			final = c.Status()
		})
		defer sub.Unsubscribe()

		require.NoError(t, c.SetValue("flag"))

		assert.Equal(t, forms.StatusInvalid, final)
		assert.True(t, c.Invalid())
	})
}

func TestOnStatusChange(t *testing.T) {
	t.Parallel()

	t.Run("delivers the status after each recomputation", func(t *testing.T) {
		t.Parallel()
		c := forms.NewControl("x", forms.WithValidators(requiredString))
		var seen []forms.Status
		sub := c.OnStatusChange(func(s forms.Status) { seen = append(seen, s) })
		defer sub.Unsubscribe()

		require.NoError(t, c.SetValue(""))
		require.NoError(t, c.SetValue("y"))

		assert.Equal(t, []forms.Status{forms.StatusInvalid, forms.StatusValid}, seen)
	})

	t.Run("disable and enable are observable", func(t *testing.T) {
		t.Parallel()
		c := forms.NewControl("x")
		var seen []forms.Status
		sub := c.OnStatusChange(func(s forms.Status) { seen = append(seen, s) })
		defer sub.Unsubscribe()

		c.Disable()
		c.Enable()

		assert.Equal(t, []forms.Status{forms.StatusDisabled, forms.StatusValid}, seen)
	})

	t.Run("setErrors notifies the whole ancestor chain", func(t *testing.T) {
		t.Parallel()
		child := forms.NewControl("x")
		group := forms.NewGroup(map[string]forms.Control{"name": child})
		var groupSeen []forms.Status
		sub := group.OnStatusChange(func(s forms.Status) { groupSeen = append(groupSeen, s) })
		defer sub.Unsubscribe()

		child.SetErrors(forms.ValidationErrors{"taken": true})

		assert.Equal(t, []forms.Status{forms.StatusInvalid}, groupSeen)
	})
}
