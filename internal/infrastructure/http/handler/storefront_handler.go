package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/simple-shop/internal/app/service"
	"github.com/mrops-br/simple-shop/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var storefrontTemplate = template.Must(
	template.New("storefront.html").
		Funcs(template.FuncMap{"yen": domain.FormatYen}).
		ParseFS(templateFS, "templates/storefront.html"),
)

type sortOption struct {
	Value    domain.SortMode
	Label    string
	Selected bool
}

type storefrontPage struct {
	Query       string
	Sort        domain.SortMode
	SortOptions []sortOption
	Products    []domain.Product
	Cart        domain.Summary
	Message     string
}

// StorefrontHandler renders the HTML shop and handles its form actions.
// Every action redirects back to the page so a reload never repeats it.
type StorefrontHandler struct {
	cart     *service.CartService
	pricing  *service.PricingService
	checkout *service.CheckoutService
	catalog  *domain.Catalog
	logger   *slog.Logger
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(
	cart *service.CartService,
	pricing *service.PricingService,
	checkout *service.CheckoutService,
	settings domain.Settings,
	logger *slog.Logger,
) *StorefrontHandler {
	return &StorefrontHandler{
		cart:     cart,
		pricing:  pricing,
		checkout: checkout,
		catalog:  settings.Catalog,
		logger:   logger,
	}
}

// Index handles GET /
func (h *StorefrontHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := domain.ParseSortMode(q.Get("sort"))

	page := storefrontPage{
		Query:       q.Get("q"),
		Sort:        mode,
		SortOptions: sortOptions(mode),
		Products:    h.catalog.Query(q.Get("q"), mode),
		Cart:        h.pricing.Summarize(h.cart.Load(r.Context())),
		Message:     q.Get("msg"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := storefrontTemplate.Execute(w, page); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render storefront",
			slog.String("error", err.Error()),
		)
	}
}

// Add handles POST /cart/add/{id}
func (h *StorefrontHandler) Add(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.catalog.Has(id) {
		h.back(w, r, domain.ErrProductNotFound.Error())
		return
	}
	_, err := h.cart.Add(r.Context(), id)
	h.after(w, r, err)
}

// Increment handles POST /cart/inc/{id}
func (h *StorefrontHandler) Increment(w http.ResponseWriter, r *http.Request) {
	_, err := h.cart.ChangeQuantity(r.Context(), chi.URLParam(r, "id"), 1)
	h.after(w, r, err)
}

// Decrement handles POST /cart/dec/{id}
func (h *StorefrontHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	_, err := h.cart.ChangeQuantity(r.Context(), chi.URLParam(r, "id"), -1)
	h.after(w, r, err)
}

// Remove handles POST /cart/remove/{id}
func (h *StorefrontHandler) Remove(w http.ResponseWriter, r *http.Request) {
	_, err := h.cart.Remove(r.Context(), chi.URLParam(r, "id"))
	h.after(w, r, err)
}

// Clear handles POST /cart/clear
func (h *StorefrontHandler) Clear(w http.ResponseWriter, r *http.Request) {
	_, err := h.cart.Clear(r.Context())
	h.after(w, r, err)
}

// Checkout handles POST /checkout. On success the browser is sent to the
// payment session; otherwise it returns to the shop with the failure message.
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	result := h.checkout.Checkout(r.Context())
	if result.OK() {
		http.Redirect(w, r, result.URL, http.StatusSeeOther)
		return
	}
	h.back(w, r, result.Message())
}

func (h *StorefrontHandler) after(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		h.back(w, r, err.Error())
		return
	}
	h.back(w, r, "")
}

// back redirects to the shop page, keeping the search and sort state.
func (h *StorefrontHandler) back(w http.ResponseWriter, r *http.Request, message string) {
	params := url.Values{}
	if q := r.FormValue("q"); q != "" {
		params.Set("q", q)
	}
	if sort := r.FormValue("sort"); sort != "" && sort != string(domain.SortFeatured) {
		params.Set("sort", sort)
	}
	if message != "" {
		params.Set("msg", message)
	}

	target := "/"
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func sortOptions(selected domain.SortMode) []sortOption {
	options := []sortOption{
		{Value: domain.SortFeatured, Label: "おすすめ順"},
		{Value: domain.SortPriceAsc, Label: "価格の安い順"},
		{Value: domain.SortPriceDesc, Label: "価格の高い順"},
		{Value: domain.SortNameAsc, Label: "名前順"},
	}
	for i := range options {
		options[i].Selected = options[i].Value == selected
	}
	return options
}
