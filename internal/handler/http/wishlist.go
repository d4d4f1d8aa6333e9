package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
	"github.com/nobih83-prog/Nashwa01/internal/service"
	"github.com/nobih83-prog/Nashwa01/pkg/httputil"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	sessions *service.Sessions
	catalog  *service.CatalogService
	logger   *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(sessions *service.Sessions, cat *service.CatalogService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{sessions: sessions, catalog: cat, logger: logger}
}

// WishlistResponse lists the wishlisted products.
type WishlistResponse struct {
	Items []domain.Product `json:"items"`
	Total int              `json:"total"`
}

// ToggleResponse reports a product's membership after a toggle.
type ToggleResponse struct {
	ProductID  string `json:"product_id"`
	InWishlist bool   `json:"in_wishlist"`
}

// List handles GET /api/v1/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	engine, err := openEngine(h.sessions, r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, err := h.catalog.Wishlist(engine.Wishlist(), r.URL.Query().Get("sort"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, WishlistResponse{Items: products, Total: len(products)})
}

// Toggle handles POST /api/v1/wishlist/{productId}/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if _, err := h.catalog.GetProduct(productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	engine, err := openEngine(h.sessions, r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	in, err := engine.ToggleWishlist(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, ToggleResponse{ProductID: productID, InWishlist: in})
}
