package service

import (
	"context"
	"testing"

	"github.com/mrops-br/simple-shop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_ListProducts(t *testing.T) {
	s := NewProductService(testSettings(t), testTracer, testMeter, testLogger)
	ctx := context.Background()

	all := s.ListProducts(ctx, "", "")
	require.Len(t, all, 3)
	assert.Equal(t, "tee", all[0].ID)
	assert.Equal(t, "¥2,500", all[0].PriceLabel)

	cheap := s.ListProducts(ctx, "", "priceAsc")
	assert.Equal(t, "pen", cheap[0].ID)

	filtered := s.ListProducts(ctx, "MU", "unknown")
	require.Len(t, filtered, 1)
	assert.Equal(t, "mug", filtered[0].ID)
}

func TestProductService_GetProductByID(t *testing.T) {
	s := NewProductService(testSettings(t), testTracer, testMeter, testLogger)

	p, err := s.GetProductByID(context.Background(), "mug")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), p.Price)

	_, err = s.GetProductByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestPricingService(t *testing.T) {
	p := NewPricingService(testSettings(t))
	cart := domain.Cart{"mug": 2, "ghost": 5}

	assert.Equal(t, int64(2400), p.Subtotal(cart))
	assert.Equal(t, int64(600), p.Shipping(2400))
	assert.Equal(t, int64(3000), p.Total(cart))
	assert.Equal(t, 7, p.Summarize(cart).Count)
}
