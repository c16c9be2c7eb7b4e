package forms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/forms"
)

func TestFormGroup_SetValue(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a complete value", func(t *testing.T) {
		t.Parallel()
		g := forms.NewGroup(map[string]forms.Control{
			"a": forms.NewControl(""),
			"b": forms.NewControl(""),
		})

		require.NoError(t, g.SetValue(map[string]any{"a": "x", "b": "y"}))

		assert.Equal(t, map[string]any{"a": "x", "b": "y"}, g.Value())
	})

	t.Run("rejects a missing key", func(t *testing.T) {
		t.Parallel()
		g := forms.NewGroup(map[string]forms.Control{
			"a": forms.NewControl(""),
			"b": forms.NewControl(""),
		})

		err := g.SetValue(map[string]any{"a": "x"})
		require.ErrorIs(t, err, forms.ErrMissingValue)
		assert.Equal(t, map[string]any{"a": "", "b": ""}, g.Value(), "nothing applied")
	})

	t.Run("rejects an unknown key", func(t *testing.T) {
		t.Parallel()
		g := forms.NewGroup(map[string]forms.Control{"a": forms.NewControl("")})

		err := g.SetValue(map[string]any{"a": "x", "ghost": "y"})
		require.ErrorIs(t, err, forms.ErrControlNotFound)
	})

	t.Run("rejects a non-map value", func(t *testing.T) {
		t.Parallel()
		g := forms.NewGroup(map[string]forms.Control{"a": forms.NewControl("")})

		err := g.SetValue("not a map")
		require.ErrorIs(t, err, forms.ErrInvalidValueType)
	})

	t.Run("patchValue tolerates missing keys", func(t *testing.T) {
		t.Parallel()
		g := forms.NewGroup(map[string]forms.Control{
			"a": forms.NewControl("1"),
			"b": forms.NewControl("2"),
		})

		require.NoError(t, g.PatchValue(map[string]any{"b": "changed"}))

		assert.Equal(t, map[string]any{"a": "1", "b": "changed"}, g.Value())
	})

	t.Run("patchValue ignores unknown keys", func(t *testing.T) {
		t.Parallel()
		g := forms.NewGroup(map[string]forms.Control{"a": forms.NewControl("1")})

		require.NoError(t, g.PatchValue(map[string]any{"ghost": "y"}))

		assert.Equal(t, map[string]any{"a": "1"}, g.Value())
	})
}

func TestFormGroup_DisabledChildren(t *testing.T) {
	t.Parallel()

	t.Run("value omits disabled children, rawValue includes them", func(t *testing.T) {
		t.Parallel()
		b := forms.NewControl("hidden")
		g := forms.NewGroup(map[string]forms.Control{
			"a": forms.NewControl("shown"),
			"b": b,
		})

		b.Disable()

		assert.Equal(t, map[string]any{"a": "shown"}, g.Value())
		assert.Equal(t, map[string]any{"a": "shown", "b": "hidden"}, g.RawValue())
	})

	t.Run("a disabled child's errors do not invalidate the group", func(t *testing.T) {
		t.Parallel()
		b := forms.NewControl("", forms.WithValidators(requiredString))
		g := forms.NewGroup(map[string]forms.Control{
			"a": forms.NewControl("x"),
			"b": b,
		})
		require.True(t, g.Invalid())

		b.Disable()

		assert.True(t, g.Valid())
	})

	t.Run("group becomes disabled when every child is disabled", func(t *testing.T) {
		t.Parallel()
		a := forms.NewControl("1")
		b := forms.NewControl("2")
		g := forms.NewGroup(map[string]forms.Control{"a": a, "b": b})

		a.Disable()
		assert.True(t, g.Valid(), "one enabled child keeps the group enabled")

		b.Disable()
		assert.True(t, g.Disabled())

		b.Enable()
		assert.True(t, g.Valid())
	})

	t.Run("an empty group is valid, not disabled", func(t *testing.T) {
		t.Parallel()
		g := forms.NewGroup(map[string]forms.Control{})

		assert.Equal(t, forms.StatusValid, g.Status())
	})

	t.Run("disabling the group disables the children", func(t *testing.T) {
		t.Parallel()
		a := forms.NewControl("1")
		g := forms.NewGroup(map[string]forms.Control{"a": a})

		g.Disable()
		assert.True(t, g.Disabled())
		assert.True(t, a.Disabled())

		g.Enable()
		assert.True(t, g.Valid())
		assert.True(t, a.Valid())
	})
}

func TestFormGroup_Propagation(t *testing.T) {
	t.Parallel()

	t.Run("child validity drives group validity", func(t *testing.T) {
		t.Parallel()
		g := forms.NewGroup(map[string]forms.Control{
			"a": forms.NewControl("", forms.WithValidators(requiredString)),
		})
		require.Equal(t, forms.StatusInvalid, g.Status())

		require.NoError(t, g.Get("a").SetValue("x"))

		assert.Equal(t, forms.StatusValid, g.Status())
	})

	t.Run("nested groups propagate to the root", func(t *testing.T) {
		t.Parallel()
		leaf := forms.NewControl("", forms.WithValidators(requiredString))
		inner := forms.NewGroup(map[string]forms.Control{"leaf": leaf})
		outer := forms.NewGroup(map[string]forms.Control{"inner": inner})
		require.True(t, outer.Invalid())

		require.NoError(t, leaf.SetValue("x"))

		assert.True(t, inner.Valid())
		assert.True(t, outer.Valid())
		assert.Equal(t, map[string]any{"inner": map[string]any{"leaf": "x"}}, outer.Value())
	})
}

func TestFormGroup_Structure(t *testing.T) {
	t.Parallel()

	t.Run("addControl links and recomputes", func(t *testing.T) {
		t.Parallel()
		g := forms.NewGroup(map[string]forms.Control{"a": forms.NewControl("1")})
		child := forms.NewControl("", forms.WithValidators(requiredString))

		g.AddControl("b", child)

		assert.Same(t, forms.Control(g), child.Parent())
		assert.True(t, g.Invalid())
		assert.Equal(t, map[string]any{"a": "1", "b": ""}, g.Value())
	})

	t.Run("addControl keeps an existing control", func(t *testing.T) {
		t.Parallel()
		original := forms.NewControl("keep")
		g := forms.NewGroup(map[string]forms.Control{"a": original})

		g.AddControl("a", forms.NewControl("clobber"))

		assert.Same(t, forms.Control(original), g.Get("a"))
	})

	t.Run("removeControl unlinks into a standalone tree", func(t *testing.T) {
		t.Parallel()
		child := forms.NewControl("", forms.WithValidators(requiredString))
		g := forms.NewGroup(map[string]forms.Control{"a": forms.NewControl("1"), "b": child})
		require.True(t, g.Invalid())

		g.RemoveControl("b")

		assert.Nil(t, child.Parent())
		assert.True(t, g.Valid())
		assert.Equal(t, map[string]any{"a": "1"}, g.Value())
	})

	t.Run("setControl replaces and relinks", func(t *testing.T) {
		t.Parallel()
		old := forms.NewControl("old")
		g := forms.NewGroup(map[string]forms.Control{"a": old})
		replacement := forms.NewControl("new")

		g.SetControl("a", replacement)

		assert.Nil(t, old.Parent())
		assert.Same(t, forms.Control(g), replacement.Parent())
		assert.Equal(t, map[string]any{"a": "new"}, g.Value())
	})

	t.Run("contains reports enabled controls only", func(t *testing.T) {
		t.Parallel()
		b := forms.NewControl("2")
		g := forms.NewGroup(map[string]forms.Control{"a": forms.NewControl("1"), "b": b})

		assert.True(t, g.Contains("a"))
		assert.False(t, g.Contains("ghost"))

		b.Disable()
		assert.False(t, g.Contains("b"))
	})

	t.Run("keys are deterministic", func(t *testing.T) {
		t.Parallel()
		g := forms.NewGroup(map[string]forms.Control{
			"c": forms.NewControl(""),
			"a": forms.NewControl(""),
			"b": forms.NewControl(""),
		})

		assert.Equal(t, []string{"a", "b", "c"}, g.Keys())
		assert.Equal(t, 3, g.Len())
	})
}

func TestFormGroup_Reset(t *testing.T) {
	t.Parallel()

	t.Run("reset restores child defaults", func(t *testing.T) {
		t.Parallel()
		g := forms.NewGroup(map[string]forms.Control{
			"a": forms.NewControl("default-a"),
			"b": forms.NewControl("default-b"),
		})
		require.NoError(t, g.SetValue(map[string]any{"a": "1", "b": "2"}))
		g.MarkAllAsTouched()
		g.Get("a").MarkAsDirty()

		g.Reset()

		assert.Equal(t, map[string]any{"a": "default-a", "b": "default-b"}, g.Value())
		assert.True(t, g.Pristine())
		assert.True(t, g.Untouched())
		assert.True(t, g.Get("a").Pristine())
	})

	t.Run("resetTo applies supplied values and defaults the rest", func(t *testing.T) {
		t.Parallel()
		g := forms.NewGroup(map[string]forms.Control{
			"a": forms.NewControl("default-a"),
			"b": forms.NewControl("default-b"),
		})
		require.NoError(t, g.SetValue(map[string]any{"a": "1", "b": "2"}))

		g.ResetTo(map[string]any{"a": "given"})

		assert.Equal(t, map[string]any{"a": "given", "b": "default-b"}, g.Value())
	})
}

func TestFormGroup_DisablePristineInteraction(t *testing.T) {
	t.Parallel()

	t.Run("disabling a dirty child re-pristines the parent", func(t *testing.T) {
		t.Parallel()
		a := forms.NewControl("1")
		g := forms.NewGroup(map[string]forms.Control{"a": a, "b": forms.NewControl("2")})

		a.MarkAsDirty()
		require.True(t, g.Dirty())

		a.Disable()

		assert.True(t, g.Pristine(), "dirtiness derived from a now-disabled child is dropped")
	})

	t.Run("an explicitly dirty parent stays dirty", func(t *testing.T) {
		t.Parallel()
		a := forms.NewControl("1")
		g := forms.NewGroup(map[string]forms.Control{"a": a, "b": forms.NewControl("2")})

		g.MarkAsDirty()
		a.Disable()

		assert.True(t, g.Dirty())
	})
}
