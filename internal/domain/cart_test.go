package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCart(t *testing.T) {
	t.Run("valid object", func(t *testing.T) {
		cart, err := ParseCart([]byte(`{"tee":2,"mug":1}`))
		require.NoError(t, err)
		assert.Equal(t, Cart{"tee": 2, "mug": 1}, cart)
	})

	t.Run("drops non-positive and non-integer quantities", func(t *testing.T) {
		cart, err := ParseCart([]byte(`{"tee":0,"mug":-3,"cap":1.5,"pen":"2","ok":4}`))
		require.NoError(t, err)
		assert.Equal(t, Cart{"ok": 4}, cart)
	})

	malformed := map[string]string{
		"not json":   `not json`,
		"array":      `[1,2,3]`,
		"null":       `null`,
		"string":     `"cart"`,
		"number":     `42`,
		"empty":      ``,
		"trailing":   `{"tee":1} {"mug":1}`,
		"whitespace": "   ",
		"truncated":  `{"tee":`,
	}
	for name, raw := range malformed {
		t.Run("malformed "+name, func(t *testing.T) {
			cart, err := ParseCart([]byte(raw))
			assert.ErrorIs(t, err, ErrMalformedCart)
			assert.Nil(t, cart)
		})
	}
}

func TestCartEncodeRoundTrip(t *testing.T) {
	carts := []Cart{
		{},
		{"tee": 1},
		{"tee": 3, "mug": 12, "unknown": 1},
	}
	for _, c := range carts {
		raw, err := c.Encode()
		require.NoError(t, err)

		parsed, err := ParseCart(raw)
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestCartEncode_Nil(t *testing.T) {
	var c Cart
	raw, err := c.Encode()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
}

func TestCartMutations(t *testing.T) {
	t.Run("add twice yields two", func(t *testing.T) {
		c := NewCart()
		c.Add("tee")
		c.Add("tee")
		assert.Equal(t, 2, c.Quantity("tee"))
		assert.Equal(t, 2, c.Count())
	})

	t.Run("change by minus current removes entry", func(t *testing.T) {
		c := Cart{"tee": 3}
		c.ChangeQuantity("tee", -3)
		_, ok := c["tee"]
		assert.False(t, ok)
	})

	t.Run("change below zero removes entry", func(t *testing.T) {
		c := Cart{"tee": 1}
		c.ChangeQuantity("tee", -5)
		assert.Empty(t, c)
	})

	t.Run("negative delta on absent id is a no-op", func(t *testing.T) {
		c := NewCart()
		c.ChangeQuantity("tee", -1)
		assert.Empty(t, c)
	})

	t.Run("remove is unconditional", func(t *testing.T) {
		c := Cart{"tee": 5, "mug": 1}
		c.Remove("tee")
		c.Remove("missing")
		assert.Equal(t, Cart{"mug": 1}, c)
	})

	t.Run("clone is independent", func(t *testing.T) {
		c := Cart{"tee": 1}
		clone := c.Clone()
		clone.Add("tee")
		assert.Equal(t, 1, c.Quantity("tee"))
	})
}

func TestCartCount_IgnoresNonPositive(t *testing.T) {
	c := Cart{"tee": 2, "mug": 0, "cap": -1, "pen": 3}
	assert.Equal(t, 5, c.Count())
}
