package domain

import (
	"context"
	"fmt"
)

// CheckoutItem is one line of a checkout session request.
type CheckoutItem struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

// CheckoutKind tells which way a checkout attempt ended.
type CheckoutKind int

const (
	CheckoutSuccess CheckoutKind = iota
	CheckoutEmptyCart
	CheckoutTransport
	CheckoutStatus
	CheckoutDecode
	CheckoutMissingURL
)

func (k CheckoutKind) String() string {
	switch k {
	case CheckoutSuccess:
		return "success"
	case CheckoutEmptyCart:
		return "empty_cart"
	case CheckoutTransport:
		return "transport_error"
	case CheckoutStatus:
		return "bad_status"
	case CheckoutDecode:
		return "bad_response"
	case CheckoutMissingURL:
		return "missing_url"
	default:
		return "unknown"
	}
}

// CheckoutResult is the outcome of a checkout attempt. URL is set only on
// success; StatusCode only for CheckoutStatus; Detail carries the error text
// or response snippet for failures.
type CheckoutResult struct {
	Kind       CheckoutKind
	URL        string
	StatusCode int
	Detail     string
}

// OK reports whether a session URL was obtained.
func (r CheckoutResult) OK() bool {
	return r.Kind == CheckoutSuccess && r.URL != ""
}

// Message is the text shown to the shopper.
func (r CheckoutResult) Message() string {
	switch r.Kind {
	case CheckoutSuccess:
		return "決済ページへ移動します。"
	case CheckoutEmptyCart:
		return "カートが空です。"
	case CheckoutTransport:
		return fmt.Sprintf("決済ページの作成に失敗しました（通信エラー: %s）。時間をおいて再試行してください。", r.Detail)
	case CheckoutStatus:
		return fmt.Sprintf("決済ページの作成に失敗しました（HTTP %d: %s）。時間をおいて再試行してください。", r.StatusCode, r.Detail)
	case CheckoutDecode:
		return fmt.Sprintf("決済ページの作成に失敗しました（応答を解析できません: %s）。", r.Detail)
	case CheckoutMissingURL:
		return "決済ページの作成に失敗しました（決済URLが返されませんでした）。"
	default:
		return "決済ページの作成に失敗しました。"
	}
}

// CheckoutGateway creates payment sessions with the external checkout API.
// Expected failures come back as result values, not errors.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, items []CheckoutItem) CheckoutResult
}

// CheckoutItems lists the cart entries to send, in catalog order. Unknown ids
// and non-positive quantities are left out.
func CheckoutItems(cart Cart, catalog *Catalog) []CheckoutItem {
	lines := Lines(cart, catalog)
	items := make([]CheckoutItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, CheckoutItem{ID: l.Product.ID, Qty: l.Quantity})
	}
	return items
}
