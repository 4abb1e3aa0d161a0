package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutItems(t *testing.T) {
	catalog := testCatalog(t)

	items := CheckoutItems(Cart{"pen": 2, "ghost": 1, "tee": 1}, catalog)
	assert.Equal(t, []CheckoutItem{{ID: "tee", Qty: 1}, {ID: "pen", Qty: 2}}, items)

	assert.Empty(t, CheckoutItems(NewCart(), catalog))
	assert.Empty(t, CheckoutItems(Cart{"ghost": 4}, catalog))
}

func TestCheckoutResult_Messages(t *testing.T) {
	status := CheckoutResult{Kind: CheckoutStatus, StatusCode: 500, Detail: "boom"}
	assert.Contains(t, status.Message(), "500")
	assert.Contains(t, status.Message(), "boom")
	assert.False(t, status.OK())

	transport := CheckoutResult{Kind: CheckoutTransport, Detail: "connection refused"}
	assert.Contains(t, transport.Message(), "connection refused")

	decode := CheckoutResult{Kind: CheckoutDecode, Detail: "invalid character"}
	assert.Contains(t, decode.Message(), "invalid character")

	assert.Equal(t, "カートが空です。", CheckoutResult{Kind: CheckoutEmptyCart}.Message())

	seen := map[string]CheckoutKind{}
	for _, k := range []CheckoutKind{CheckoutSuccess, CheckoutEmptyCart, CheckoutTransport, CheckoutStatus, CheckoutDecode, CheckoutMissingURL} {
		msg := CheckoutResult{Kind: k}.Message()
		_, dup := seen[msg]
		assert.False(t, dup, "message for %s is not distinct", k)
		seen[msg] = k
	}
}

func TestCheckoutResult_OK(t *testing.T) {
	assert.True(t, CheckoutResult{Kind: CheckoutSuccess, URL: "https://pay.example/s/1"}.OK())
	assert.False(t, CheckoutResult{Kind: CheckoutSuccess}.OK())
	assert.Equal(t, "missing_url", CheckoutMissingURL.String())
}
