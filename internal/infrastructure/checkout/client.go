// Package checkout talks to the external payment-session API.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mrops-br/simple-shop/internal/domain"
	"github.com/mrops-br/simple-shop/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	sessionPath = "/api/create-checkout-session"

	// snippetLimit bounds how much of an error body reaches the shopper.
	snippetLimit = 200
	// maxResponseBytes bounds how much of any response is read.
	maxResponseBytes = 1 << 20
)

type sessionRequest struct {
	Items []domain.CheckoutItem `json:"items"`
}

type sessionResponse struct {
	URL string `json:"url"`
}

// Client implements domain.CheckoutGateway over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *slog.Logger
}

// NewClient creates a checkout client. The transport is instrumented so the
// trace continues into the checkout API.
func NewClient(cfg *config.CheckoutConfig, tracer trace.Tracer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		},
		tracer: tracer,
		logger: logger,
	}
}

// CreateSession posts the items and returns the session URL or the reason it
// could not be obtained. There are no retries.
func (c *Client) CreateSession(ctx context.Context, items []domain.CheckoutItem) domain.CheckoutResult {
	ctx, span := c.tracer.Start(ctx, "CheckoutClient.CreateSession")
	defer span.End()

	idempotencyKey := uuid.NewString()
	span.SetAttributes(
		attribute.Int("checkout.items", len(items)),
		attribute.String("checkout.idempotency_key", idempotencyKey),
	)

	result := c.createSession(ctx, items, idempotencyKey)

	span.SetAttributes(attribute.String("checkout.result", result.Kind.String()))
	if result.OK() {
		span.SetStatus(codes.Ok, "Checkout session created")
		c.logger.InfoContext(ctx, "Checkout session created",
			slog.Int("items", len(items)),
		)
	} else {
		span.SetStatus(codes.Error, result.Kind.String())
		c.logger.WarnContext(ctx, "Checkout session failed",
			slog.String("result", result.Kind.String()),
			slog.Int("status_code", result.StatusCode),
			slog.String("detail", result.Detail),
		)
	}
	return result
}

func (c *Client) createSession(ctx context.Context, items []domain.CheckoutItem, idempotencyKey string) domain.CheckoutResult {
	body, err := json.Marshal(sessionRequest{Items: items})
	if err != nil {
		return domain.CheckoutResult{Kind: domain.CheckoutTransport, Detail: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sessionPath, bytes.NewReader(body))
	if err != nil {
		return domain.CheckoutResult{Kind: domain.CheckoutTransport, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return domain.CheckoutResult{Kind: domain.CheckoutTransport, Detail: err.Error()}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return domain.CheckoutResult{Kind: domain.CheckoutTransport, Detail: err.Error()}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return domain.CheckoutResult{
			Kind:       domain.CheckoutStatus,
			StatusCode: res.StatusCode,
			Detail:     snippet(raw),
		}
	}

	var decoded sessionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.CheckoutResult{Kind: domain.CheckoutDecode, Detail: err.Error()}
	}
	if strings.TrimSpace(decoded.URL) == "" {
		return domain.CheckoutResult{Kind: domain.CheckoutMissingURL}
	}

	return domain.CheckoutResult{Kind: domain.CheckoutSuccess, URL: decoded.URL}
}

// snippet trims an error body to something safe to show, cutting on a rune
// boundary.
func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "API error"
	}
	if len(s) <= snippetLimit {
		return s
	}
	cut := snippetLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return fmt.Sprintf("%s…", s[:cut])
}
