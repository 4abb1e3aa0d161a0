package handler

import (
	"log/slog"
	"net/http"

	"github.com/mrops-br/simple-shop/internal/app/dto"
	"github.com/mrops-br/simple-shop/internal/app/service"
	"github.com/mrops-br/simple-shop/internal/domain"
	"github.com/mrops-br/simple-shop/internal/infrastructure/http/response"
)

// CheckoutHandler exposes checkout over the JSON API
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger,
	}
}

// Checkout handles POST /api/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	result := h.service.Checkout(r.Context())
	if result.OK() {
		response.JSON(w, http.StatusOK, dto.CheckoutResponse{URL: result.URL})
		return
	}
	response.Message(w, checkoutStatus(result), result.Message())
}

// checkoutStatus maps a failed checkout to the status returned to clients
func checkoutStatus(result domain.CheckoutResult) int {
	if result.Kind == domain.CheckoutEmptyCart {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}
