package service

import (
	"github.com/mrops-br/simple-shop/internal/domain"
)

// PricingService binds the pricing rules to the configured catalog.
type PricingService struct {
	catalog *domain.Catalog
}

// NewPricingService creates a pricing service for the catalog in settings
func NewPricingService(settings domain.Settings) *PricingService {
	return &PricingService{catalog: settings.Catalog}
}

func (p *PricingService) Subtotal(cart domain.Cart) int64 {
	return domain.Subtotal(cart, p.catalog)
}

func (p *PricingService) Shipping(subtotal int64) int64 {
	return domain.Shipping(subtotal)
}

func (p *PricingService) Total(cart domain.Cart) int64 {
	return domain.Total(cart, p.catalog)
}

func (p *PricingService) Summarize(cart domain.Cart) domain.Summary {
	return domain.Summarize(cart, p.catalog)
}

// CheckoutItems lists what a checkout for cart would send.
func (p *PricingService) CheckoutItems(cart domain.Cart) []domain.CheckoutItem {
	return domain.CheckoutItems(cart, p.catalog)
}
