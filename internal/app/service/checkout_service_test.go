package service

import (
	"context"
	"testing"

	"github.com/mrops-br/simple-shop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutService(t *testing.T, gateway domain.CheckoutGateway) (*CheckoutService, *CartService) {
	t.Helper()
	settings := testSettings(t)
	cart := NewCartService(newMemoryStorage(), settings, testTracer, testMeter, testLogger)
	return NewCheckoutService(cart, NewPricingService(settings), gateway, testTracer, testMeter, testLogger), cart
}

func TestCheckoutService_EmptyCartNoNetwork(t *testing.T) {
	gateway := &fakeGateway{}
	s, _ := newCheckoutService(t, gateway)

	result := s.Checkout(context.Background())

	assert.Equal(t, domain.CheckoutEmptyCart, result.Kind)
	assert.Equal(t, "カートが空です。", result.Message())
	assert.Zero(t, gateway.callCount())
}

func TestCheckoutService_OnlyUnknownIDsCountsAsEmpty(t *testing.T) {
	gateway := &fakeGateway{}
	s, cart := newCheckoutService(t, gateway)
	require.NoError(t, cart.Save(context.Background(), domain.Cart{"ghost": 2}))

	result := s.Checkout(context.Background())

	assert.Equal(t, domain.CheckoutEmptyCart, result.Kind)
	assert.Zero(t, gateway.callCount())
}

func TestCheckoutService_Success(t *testing.T) {
	gateway := &fakeGateway{result: domain.CheckoutResult{Kind: domain.CheckoutSuccess, URL: "https://pay.example/s/1"}}
	s, cart := newCheckoutService(t, gateway)
	ctx := context.Background()
	require.NoError(t, cart.Save(ctx, domain.Cart{"pen": 2, "tee": 1, "ghost": 1}))

	result := s.Checkout(ctx)

	require.True(t, result.OK())
	assert.Equal(t, "https://pay.example/s/1", result.URL)
	require.Equal(t, 1, gateway.callCount())
	assert.Equal(t, []domain.CheckoutItem{{ID: "tee", Qty: 1}, {ID: "pen", Qty: 2}}, gateway.calls[0])
}

func TestCheckoutService_FailureKeepsCart(t *testing.T) {
	gateway := &fakeGateway{result: domain.CheckoutResult{Kind: domain.CheckoutStatus, StatusCode: 500, Detail: "boom"}}
	s, cart := newCheckoutService(t, gateway)
	ctx := context.Background()
	before := domain.Cart{"mug": 3}
	require.NoError(t, cart.Save(ctx, before))

	result := s.Checkout(ctx)

	assert.False(t, result.OK())
	assert.Contains(t, result.Message(), "500")
	assert.Equal(t, before, cart.Load(ctx))
}

func TestCheckoutService_Async(t *testing.T) {
	gateway := &fakeGateway{result: domain.CheckoutResult{Kind: domain.CheckoutSuccess, URL: "https://pay.example/s/2"}}
	s, cart := newCheckoutService(t, gateway)
	ctx := context.Background()
	require.NoError(t, cart.Save(ctx, domain.Cart{"mug": 1}))

	ch := s.CheckoutAsync(ctx)
	result, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, "https://pay.example/s/2", result.URL)

	_, open := <-ch
	assert.False(t, open)
}
