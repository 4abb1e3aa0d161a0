package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/simple-shop/internal/app/dto"
	"github.com/mrops-br/simple-shop/internal/app/service"
	"github.com/mrops-br/simple-shop/internal/domain"
	"github.com/mrops-br/simple-shop/internal/infrastructure/http/response"
)

// CartHandler handles the JSON cart API
type CartHandler struct {
	cart    *service.CartService
	pricing *service.PricingService
	catalog *domain.Catalog
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(
	cart *service.CartService,
	pricing *service.PricingService,
	settings domain.Settings,
	logger *slog.Logger,
) *CartHandler {
	return &CartHandler{
		cart:    cart,
		pricing: pricing,
		catalog: settings.Catalog,
		logger:  logger,
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart := h.cart.Load(r.Context())
	response.JSON(w, http.StatusOK, dto.ToCartResponse(h.pricing.Summarize(cart)))
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	// Only catalog products can be added; stale ids already in storage
	// are tolerated elsewhere.
	if req.ID != "" && !h.catalog.Has(req.ID) {
		response.Error(w, http.StatusNotFound, domain.ErrProductNotFound)
		return
	}

	cart, err := h.cart.Add(r.Context(), req.ID)
	h.respond(w, r, cart, err)
}

// ChangeQuantity handles PATCH /api/cart/items/{id}
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	cart, err := h.cart.ChangeQuantity(r.Context(), chi.URLParam(r, "id"), req.Delta)
	h.respond(w, r, cart, err)
}

// RemoveItem handles DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.Remove(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, r, cart, err)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.Clear(r.Context())
	h.respond(w, r, cart, err)
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, cart domain.Cart, err error) {
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidProductID):
			response.Error(w, http.StatusBadRequest, err)
		default:
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}
	response.JSON(w, http.StatusOK, dto.ToCartResponse(h.pricing.Summarize(cart)))
}
