package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mrops-br/simple-shop/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CartService is the cart store: it keeps the cart blob in storage under the
// configured key. Every mutation reads the current cart, applies the change
// and writes the whole cart back. There is no locking, so concurrent writers
// race and the last write wins.
type CartService struct {
	storage        domain.Storage
	key            string
	tracer         trace.Tracer
	logger         *slog.Logger
	cartOperations metric.Int64Counter
	cartItems      metric.Int64Gauge
}

// NewCartService creates a new cart service
func NewCartService(
	storage domain.Storage,
	settings domain.Settings,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CartService {
	key := settings.StorageKey
	if key == "" {
		key = domain.DefaultStorageKey
	}

	cartOperations, _ := meter.Int64Counter(
		"cart.operations",
		metric.WithDescription("Total number of cart operations"),
	)

	cartItems, _ := meter.Int64Gauge(
		"cart.items",
		metric.WithDescription("Number of items in the cart after the last write"),
	)

	return &CartService{
		storage:        storage,
		key:            key,
		tracer:         tracer,
		logger:         logger,
		cartOperations: cartOperations,
		cartItems:      cartItems,
	}
}

// Load returns the persisted cart. A missing, unreadable or malformed blob
// yields an empty cart; Load never fails.
func (s *CartService) Load(ctx context.Context) domain.Cart {
	ctx, span := s.tracer.Start(ctx, "CartService.Load")
	defer span.End()

	span.SetAttributes(attribute.String("storage.key", s.key))

	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "Cart storage unreadable, using empty cart",
			slog.String("error", err.Error()),
		)
		return domain.NewCart()
	}
	if !ok {
		span.SetAttributes(attribute.Bool("cart.exists", false))
		return domain.NewCart()
	}

	cart, err := domain.ParseCart(raw)
	if err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "Persisted cart is malformed, using empty cart",
			slog.String("error", err.Error()),
		)
		return domain.NewCart()
	}

	span.SetAttributes(attribute.Int("cart.count", cart.Count()))
	span.SetStatus(codes.Ok, "Cart loaded")
	return cart
}

// Save persists the full cart.
func (s *CartService) Save(ctx context.Context, cart domain.Cart) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Save")
	defer span.End()

	raw, err := cart.Encode()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to encode cart")
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to persist cart")
		s.logger.ErrorContext(ctx, "Failed to persist cart",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to save cart: %w", err)
	}

	count := cart.Count()
	s.cartItems.Record(ctx, int64(count))
	span.SetAttributes(attribute.Int("cart.count", count))
	span.SetStatus(codes.Ok, "Cart saved")
	return nil
}

// Count returns the item count badge value.
func (s *CartService) Count(cart domain.Cart) int {
	return cart.Count()
}

// Add increments id by one.
func (s *CartService) Add(ctx context.Context, id string) (domain.Cart, error) {
	return s.mutate(ctx, "add", id, func(c domain.Cart) { c.Add(id) })
}

// ChangeQuantity adds delta to id, removing it when the result is <= 0.
func (s *CartService) ChangeQuantity(ctx context.Context, id string, delta int) (domain.Cart, error) {
	return s.mutate(ctx, "change_quantity", id, func(c domain.Cart) { c.ChangeQuantity(id, delta) })
}

// Remove deletes id from the cart.
func (s *CartService) Remove(ctx context.Context, id string) (domain.Cart, error) {
	return s.mutate(ctx, "remove", id, func(c domain.Cart) { c.Remove(id) })
}

// Clear replaces the cart with an empty one.
func (s *CartService) Clear(ctx context.Context) (domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear")
	defer span.End()

	cart := domain.NewCart()
	if err := s.Save(ctx, cart); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to clear cart")
		s.record(ctx, "clear", "failure")
		return nil, err
	}

	s.logger.InfoContext(ctx, "Cart cleared")
	s.record(ctx, "clear", "success")
	span.SetStatus(codes.Ok, "Cart cleared")
	return cart, nil
}

func (s *CartService) mutate(ctx context.Context, op, id string, apply func(domain.Cart)) (domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService."+op)
	defer span.End()

	span.SetAttributes(
		attribute.String("cart.operation", op),
		attribute.String("product.id", id),
	)

	if strings.TrimSpace(id) == "" {
		span.RecordError(domain.ErrInvalidProductID)
		span.SetStatus(codes.Error, "Validation failed")
		s.record(ctx, op, "invalid")
		return nil, domain.ErrInvalidProductID
	}

	cart := s.Load(ctx)
	apply(cart)

	if err := s.Save(ctx, cart); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save cart")
		s.record(ctx, op, "failure")
		return nil, err
	}

	s.logger.InfoContext(ctx, "Cart updated",
		slog.String("operation", op),
		slog.String("product_id", id),
		slog.Int("quantity", cart.Quantity(id)),
		slog.Int("count", cart.Count()),
	)

	s.record(ctx, op, "success")
	span.SetStatus(codes.Ok, "Cart updated")
	return cart, nil
}

func (s *CartService) record(ctx context.Context, op, result string) {
	s.cartOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", op),
			attribute.String("result", result),
		),
	)
}

// IsValidationError reports whether err is a caller mistake rather than a
// storage failure.
func IsValidationError(err error) bool {
	return errors.Is(err, domain.ErrInvalidProductID) || errors.Is(err, domain.ErrProductNotFound)
}
