package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/simple-shop/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CheckoutService hands the cart to the external checkout API. It is the only
// checkout path; the web page, the JSON API and the CLI all go through it.
type CheckoutService struct {
	cart             *CartService
	pricing          *PricingService
	gateway          domain.CheckoutGateway
	tracer           trace.Tracer
	logger           *slog.Logger
	checkoutAttempts metric.Int64Counter
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	cart *CartService,
	pricing *PricingService,
	gateway domain.CheckoutGateway,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CheckoutService {
	checkoutAttempts, _ := meter.Int64Counter(
		"checkout.attempts",
		metric.WithDescription("Total number of checkout attempts by result"),
	)

	return &CheckoutService{
		cart:             cart,
		pricing:          pricing,
		gateway:          gateway,
		tracer:           tracer,
		logger:           logger,
		checkoutAttempts: checkoutAttempts,
	}
}

// Checkout requests a payment session for the current cart. An empty cart is
// rejected before any network call. The cart is never modified.
func (s *CheckoutService) Checkout(ctx context.Context) domain.CheckoutResult {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.Checkout")
	defer span.End()

	items := s.pricing.CheckoutItems(s.cart.Load(ctx))
	span.SetAttributes(attribute.Int("checkout.items", len(items)))

	var result domain.CheckoutResult
	if len(items) == 0 {
		result = domain.CheckoutResult{Kind: domain.CheckoutEmptyCart}
		s.logger.InfoContext(ctx, "Checkout rejected, cart is empty")
	} else {
		result = s.gateway.CreateSession(ctx, items)
	}

	s.checkoutAttempts.Add(ctx, 1,
		metric.WithAttributes(attribute.String("result", result.Kind.String())),
	)
	span.SetAttributes(attribute.String("checkout.result", result.Kind.String()))

	if !result.OK() {
		span.SetStatus(codes.Error, result.Kind.String())
		return result
	}

	span.SetStatus(codes.Ok, "Checkout session created")
	return result
}

// CheckoutAsync runs Checkout in its own goroutine. The channel receives
// exactly one result and is then closed.
func (s *CheckoutService) CheckoutAsync(ctx context.Context) <-chan domain.CheckoutResult {
	out := make(chan domain.CheckoutResult, 1)
	go func() {
		defer close(out)
		out <- s.Checkout(ctx)
	}()
	return out
}
