package forms_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/forms"
)

func TestCompose(t *testing.T) {
	t.Parallel()

	errKey := func(key string, payload any) forms.ValidatorFunc {
		return func(c forms.Control) forms.ValidationErrors {
			return forms.ValidationErrors{key: payload}
		}
	}
	pass := func(c forms.Control) forms.ValidationErrors { return nil }

	t.Run("merges results key-wise", func(t *testing.T) {
		t.Parallel()
		composed := forms.Compose(errKey("a", 1), pass, errKey("b", 2))

		got := composed(forms.NewControl(""))

		assert.Equal(t, forms.ValidationErrors{"a": 1, "b": 2}, got)
	})

	t.Run("later validator wins on key collision", func(t *testing.T) {
		t.Parallel()
		composed := forms.Compose(errKey("a", "first"), errKey("a", "second"))

		got := composed(forms.NewControl(""))

		assert.Equal(t, forms.ValidationErrors{"a": "second"}, got)
	})

	t.Run("all-passing composition returns nil", func(t *testing.T) {
		t.Parallel()
		composed := forms.Compose(pass, pass)

		assert.Nil(t, composed(forms.NewControl("")))
	})

	t.Run("nil entries are skipped", func(t *testing.T) {
		t.Parallel()
		composed := forms.Compose(nil, errKey("a", true), nil)

		assert.Equal(t, forms.ValidationErrors{"a": true}, composed(forms.NewControl("")))
	})

	t.Run("composing nothing yields nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, forms.Compose())
		assert.Nil(t, forms.Compose(nil, nil))
	})
}

func TestComposeAsync(t *testing.T) {
	t.Parallel()

	asyncErr := func(key string, payload any) forms.AsyncValidatorFunc {
		return func(ctx context.Context, c forms.Control) (forms.ValidationErrors, error) {
			return forms.ValidationErrors{key: payload}, nil
		}
	}
	asyncPass := func(ctx context.Context, c forms.Control) (forms.ValidationErrors, error) {
		return nil, nil
	}

	t.Run("merges results in declaration order", func(t *testing.T) {
		t.Parallel()
		composed := forms.ComposeAsync(asyncErr("a", "first"), asyncPass, asyncErr("a", "second"))

		got, err := composed(context.Background(), forms.NewControl(""))

		require.NoError(t, err)
		assert.Equal(t, forms.ValidationErrors{"a": "second"}, got)
	})

	t.Run("a validator error wins over results", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		failing := func(ctx context.Context, c forms.Control) (forms.ValidationErrors, error) {
			return nil, boom
		}
		composed := forms.ComposeAsync(asyncErr("a", true), failing)

		got, err := composed(context.Background(), forms.NewControl(""))

		require.ErrorIs(t, err, boom)
		assert.Nil(t, got)
	})

	t.Run("all-passing composition returns nil", func(t *testing.T) {
		t.Parallel()
		composed := forms.ComposeAsync(asyncPass, asyncPass)

		got, err := composed(context.Background(), forms.NewControl(""))

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("composing nothing yields nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, forms.ComposeAsync())
		assert.Nil(t, forms.ComposeAsync(nil))
	})
}
