package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
	"github.com/nobih83-prog/Nashwa01/internal/service"
	"github.com/nobih83-prog/Nashwa01/pkg/httputil"
	"github.com/nobih83-prog/Nashwa01/pkg/logger"
)

// openEngine rehydrates the state engine of the request's session.
func openEngine(sessions *service.Sessions, r *http.Request) (*service.Engine, error) {
	return sessions.Open(r.Context(), logger.SessionIDFromContext(r.Context()))
}

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	sessions *service.Sessions
	catalog  *service.CatalogService
	logger   *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(sessions *service.Sessions, cat *service.CatalogService, logger *slog.Logger) *CartHandler {
	return &CartHandler{sessions: sessions, catalog: cat, logger: logger}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding an item to the cart.
// A zero quantity adds one unit.
type AddItemRequest struct {
	ProductID       string                 `json:"product_id" validate:"required,max=64"`
	Quantity        int                    `json:"quantity" validate:"gte=0,lte=99"`
	SelectedOptions domain.SelectedOptions `json:"selected_options"`
}

// UpdateQuantityRequest is the JSON request body for adjusting a line.
type UpdateQuantityRequest struct {
	Delta           int                    `json:"delta" validate:"required,gte=-99,lte=99"`
	SelectedOptions domain.SelectedOptions `json:"selected_options"`
}

// RemoveItemRequest is the optional JSON body identifying the line to remove.
type RemoveItemRequest struct {
	SelectedOptions domain.SelectedOptions `json:"selected_options"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	engine, err := openEngine(h.sessions, r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, engine.Cart())
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.catalog.GetProduct(req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	engine, err := openEngine(h.sessions, r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := engine.Add(r.Context(), *product, req.Quantity, req.SelectedOptions); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, engine.Cart())
}

// UpdateItemQuantity handles PATCH /api/v1/cart/items/{productId}
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	engine, err := openEngine(h.sessions, r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := engine.UpdateQuantity(r.Context(), chi.URLParam(r, "productId"), req.Delta, req.SelectedOptions); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, engine.Cart())
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req RemoveItemRequest
	if err := httputil.DecodeJSON(r, &req, true); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	engine, err := openEngine(h.sessions, r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := engine.Remove(r.Context(), chi.URLParam(r, "productId"), req.SelectedOptions); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, engine.Cart())
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	engine, err := openEngine(h.sessions, r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := engine.Clear(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, engine.Cart())
}
