package domain

import (
	"fmt"
	"strings"
)

const (
	// FreeShippingThreshold is the subtotal from which shipping is free.
	FreeShippingThreshold int64 = 4000
	// FlatShippingFee applies to non-empty carts below the threshold.
	FlatShippingFee int64 = 600
)

// Line is a priced cart entry.
type Line struct {
	Product  Product
	Quantity int
	Total    int64
}

// Summary is everything a view needs to show the cart.
type Summary struct {
	Lines    []Line
	Count    int
	Subtotal int64
	Shipping int64
	Total    int64
}

// Subtotal sums price*quantity over cart entries found in the catalog.
func Subtotal(cart Cart, catalog *Catalog) int64 {
	var sum int64
	for id, qty := range cart {
		if qty <= 0 {
			continue
		}
		p, ok := catalog.Lookup(id)
		if !ok {
			continue
		}
		sum += p.Price * int64(qty)
	}
	return sum
}

// Shipping returns the fee for a subtotal.
func Shipping(subtotal int64) int64 {
	if subtotal == 0 {
		return 0
	}
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// Total is subtotal plus shipping.
func Total(cart Cart, catalog *Catalog) int64 {
	subtotal := Subtotal(cart, catalog)
	return subtotal + Shipping(subtotal)
}

// Lines returns the priced entries in catalog order. Unknown ids are skipped.
func Lines(cart Cart, catalog *Catalog) []Line {
	lines := make([]Line, 0, len(cart))
	for _, p := range catalog.products {
		qty := cart.Quantity(p.ID)
		if qty == 0 {
			continue
		}
		lines = append(lines, Line{
			Product:  p,
			Quantity: qty,
			Total:    p.Price * int64(qty),
		})
	}
	return lines
}

// Summarize prices the cart against the catalog.
func Summarize(cart Cart, catalog *Catalog) Summary {
	subtotal := Subtotal(cart, catalog)
	shipping := Shipping(subtotal)
	return Summary{
		Lines:    Lines(cart, catalog),
		Count:    cart.Count(),
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

// OrderSummaryText renders the summary as plain text, one line per entry
// followed by the totals.
func OrderSummaryText(s Summary) string {
	var b strings.Builder
	for _, l := range s.Lines {
		fmt.Fprintf(&b, "%s × %d = %s\n", l.Product.Name, l.Quantity, FormatYen(l.Total))
	}
	b.WriteString("---\n")
	fmt.Fprintf(&b, "小計: %s\n", FormatYen(s.Subtotal))
	fmt.Fprintf(&b, "送料: %s\n", FormatYen(s.Shipping))
	fmt.Fprintf(&b, "合計: %s", FormatYen(s.Total))
	return b.String()
}
