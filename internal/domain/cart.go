package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedCart is returned by ParseCart when the persisted blob is not a
// JSON object.
var ErrMalformedCart = errors.New("malformed cart")

// Cart maps product id to a positive quantity. Ids with a quantity <= 0 are
// absent.
type Cart map[string]int

// NewCart returns an empty cart.
func NewCart() Cart {
	return make(Cart)
}

// ParseCart decodes a persisted cart blob. Anything that is not a JSON object
// yields ErrMalformedCart. Entries whose value is not a positive integer are
// dropped.
func ParseCart(raw []byte) (Cart, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrMalformedCart)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCart, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: null", ErrMalformedCart)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedCart)
	}

	cart := make(Cart, len(fields))
	for id, v := range fields {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		qty, err := n.Int64()
		if err != nil || qty <= 0 {
			continue
		}
		cart[id] = int(qty)
	}
	return cart, nil
}

// Encode serializes the cart as a JSON object. Keys are sorted.
func (c Cart) Encode() ([]byte, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]int(c))
}

// Count returns the total number of items.
func (c Cart) Count() int {
	total := 0
	for _, qty := range c {
		if qty > 0 {
			total += qty
		}
	}
	return total
}

// Quantity returns the quantity for id, 0 when absent.
func (c Cart) Quantity(id string) int {
	if qty := c[id]; qty > 0 {
		return qty
	}
	return 0
}

// Add increments id by one.
func (c Cart) Add(id string) {
	c.ChangeQuantity(id, 1)
}

// ChangeQuantity adds delta to id and drops the entry when the result is <= 0.
func (c Cart) ChangeQuantity(id string, delta int) {
	next := c.Quantity(id) + delta
	if next <= 0 {
		delete(c, id)
		return
	}
	c[id] = next
}

// Remove deletes id.
func (c Cart) Remove(id string) {
	delete(c, id)
}

// Clone returns an independent copy.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}
