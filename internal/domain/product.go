package domain

import (
	"errors"
	"strings"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInvalidProductID    = errors.New("product id is required")
	ErrInvalidProductName  = errors.New("product name is required")
	ErrInvalidProductPrice = errors.New("product price must not be negative")
)

// Product represents an immutable catalog entry. Price is in yen.
type Product struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"desc" yaml:"desc"`
	Tag         string `json:"tag" yaml:"tag"`
	Price       int64  `json:"price" yaml:"price"`
	Icon        string `json:"icon" yaml:"icon"`
}

// Validate performs business validation on the product
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrInvalidProductID
	}
	if p.Name == "" {
		return ErrInvalidProductName
	}
	if p.Price < 0 {
		return ErrInvalidProductPrice
	}
	return nil
}

// searchText is the haystack used by catalog queries.
func (p *Product) searchText() string {
	return strings.ToLower(p.Name + " " + p.Description + " " + p.Tag)
}
