package dto

import (
	"github.com/mrops-br/simple-shop/internal/domain"
)

// AddItemRequest is the body of POST /api/cart/items
type AddItemRequest struct {
	ID string `json:"id"`
}

// ChangeQuantityRequest is the body of PATCH /api/cart/items/{id}
type ChangeQuantityRequest struct {
	Delta int `json:"delta"`
}

// CartLineResponse is one priced cart line
type CartLineResponse struct {
	Product   *ProductResponse `json:"product"`
	Qty       int              `json:"qty"`
	LineTotal int64            `json:"lineTotal"`
	LineLabel string           `json:"lineLabel"`
}

// CartResponse is the cart with its derived totals
type CartResponse struct {
	Items         []*CartLineResponse `json:"items"`
	Count         int                 `json:"count"`
	Subtotal      int64               `json:"subtotal"`
	Shipping      int64               `json:"shipping"`
	Total         int64               `json:"total"`
	SubtotalLabel string              `json:"subtotalLabel"`
	ShippingLabel string              `json:"shippingLabel"`
	TotalLabel    string              `json:"totalLabel"`
}

// ToCartResponse converts a priced summary to CartResponse
func ToCartResponse(s domain.Summary) *CartResponse {
	items := make([]*CartLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		items[i] = &CartLineResponse{
			Product:   ToProductResponse(l.Product),
			Qty:       l.Quantity,
			LineTotal: l.Total,
			LineLabel: domain.FormatYen(l.Total),
		}
	}
	return &CartResponse{
		Items:         items,
		Count:         s.Count,
		Subtotal:      s.Subtotal,
		Shipping:      s.Shipping,
		Total:         s.Total,
		SubtotalLabel: domain.FormatYen(s.Subtotal),
		ShippingLabel: domain.FormatYen(s.Shipping),
		TotalLabel:    domain.FormatYen(s.Total),
	}
}

// CheckoutResponse is returned when a session URL was obtained
type CheckoutResponse struct {
	URL string `json:"url"`
}
