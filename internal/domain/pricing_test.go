package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShipping(t *testing.T) {
	cases := []struct {
		subtotal int64
		want     int64
	}{
		{0, 0},
		{1, 600},
		{3999, 600},
		{4000, 0},
		{10000, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Shipping(tc.subtotal), "subtotal %d", tc.subtotal)
	}
}

func TestSubtotal(t *testing.T) {
	catalog := testCatalog(t)

	assert.Equal(t, int64(0), Subtotal(NewCart(), catalog))
	assert.Equal(t, int64(2*2500+1200), Subtotal(Cart{"tee": 2, "mug": 1}, catalog))

	t.Run("unknown ids contribute zero", func(t *testing.T) {
		assert.Equal(t, int64(300), Subtotal(Cart{"pen": 1, "ghost": 9}, catalog))
	})
}

func TestTotal(t *testing.T) {
	catalog := testCatalog(t)

	assert.Equal(t, int64(0), Total(NewCart(), catalog))
	assert.Equal(t, int64(1200+600), Total(Cart{"mug": 1}, catalog))
	assert.Equal(t, int64(5000), Total(Cart{"tee": 2}, catalog))
	assert.Equal(t, int64(0), Total(Cart{"ghost": 3}, catalog))
}

func TestLines_CatalogOrderAndUnknownSkipped(t *testing.T) {
	catalog := testCatalog(t)
	lines := Lines(Cart{"pen": 2, "ghost": 1, "tee": 1}, catalog)

	if assert.Len(t, lines, 2) {
		assert.Equal(t, "tee", lines[0].Product.ID)
		assert.Equal(t, int64(2500), lines[0].Total)
		assert.Equal(t, "pen", lines[1].Product.ID)
		assert.Equal(t, int64(600), lines[1].Total)
	}
}

func TestSummarize(t *testing.T) {
	catalog := testCatalog(t)
	s := Summarize(Cart{"mug": 2, "pen": 1}, catalog)

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, int64(2700), s.Subtotal)
	assert.Equal(t, int64(600), s.Shipping)
	assert.Equal(t, int64(3300), s.Total)
}

func TestOrderSummaryText(t *testing.T) {
	catalog := testCatalog(t)
	text := OrderSummaryText(Summarize(Cart{"mug": 2}, catalog))

	want := "apple Mug × 2 = ¥2,400\n" +
		"---\n" +
		"小計: ¥2,400\n" +
		"送料: ¥600\n" +
		"合計: ¥3,000"
	assert.Equal(t, want, text)
}

func TestFormatYen(t *testing.T) {
	assert.Equal(t, "¥0", FormatYen(0))
	assert.Equal(t, "¥600", FormatYen(600))
	assert.Equal(t, "¥1,200", FormatYen(1200))
	assert.Equal(t, "¥1,234,567", FormatYen(1234567))
}
