package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nobih83-prog/Nashwa01/internal/service"
	"github.com/nobih83-prog/Nashwa01/pkg/httputil"
)

// RecentlyViewedHandler handles HTTP requests for the recently viewed list.
type RecentlyViewedHandler struct {
	sessions *service.Sessions
	catalog  *service.CatalogService
	logger   *slog.Logger
}

// NewRecentlyViewedHandler creates a new recently viewed HTTP handler.
func NewRecentlyViewedHandler(sessions *service.Sessions, cat *service.CatalogService, logger *slog.Logger) *RecentlyViewedHandler {
	return &RecentlyViewedHandler{sessions: sessions, catalog: cat, logger: logger}
}

// List handles GET /api/v1/recently-viewed
func (h *RecentlyViewedHandler) List(w http.ResponseWriter, r *http.Request) {
	engine, err := openEngine(h.sessions, r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, engine.RecentlyViewed())
}

// Add handles POST /api/v1/recently-viewed/{productId}
func (h *RecentlyViewedHandler) Add(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	engine, err := openEngine(h.sessions, r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := engine.AddToRecentlyViewed(r.Context(), *product); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, engine.RecentlyViewed())
}

// Clear handles DELETE /api/v1/recently-viewed
func (h *RecentlyViewedHandler) Clear(w http.ResponseWriter, r *http.Request) {
	engine, err := openEngine(h.sessions, r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := engine.ClearRecentlyViewed(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
