package dto

import (
	"github.com/mrops-br/simple-shop/internal/domain"
)

// ProductResponse represents the product response
type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"desc"`
	Tag         string `json:"tag"`
	Price       int64  `json:"price"`
	PriceLabel  string `json:"priceLabel"`
	Icon        string `json:"icon"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Tag:         p.Tag,
		Price:       p.Price,
		PriceLabel:  domain.FormatYen(p.Price),
		Icon:        p.Icon,
	}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}
