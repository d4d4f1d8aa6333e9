package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nobih83-prog/Nashwa01/internal/catalog"
	"github.com/nobih83-prog/Nashwa01/internal/service"
	"github.com/nobih83-prog/Nashwa01/pkg/httputil"
)

// CatalogHandler handles HTTP requests for product browsing.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{service: svc, logger: logger}
}

// Shop handles GET /api/v1/products
func (h *CatalogHandler) Shop(w http.ResponseWriter, r *http.Request) {
	maxPrice, err := httputil.QueryInt64(r, "max_price", catalog.DefaultMaxPrice)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	q := r.URL.Query()
	products, err := h.service.Shop(catalog.Filter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
		MaxPrice: maxPrice,
		Sort:     q.Get("sort"),
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, products)
}

// Categories handles GET /api/v1/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Categories())
}

// Featured handles GET /api/v1/products/featured
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Featured())
}

// Search handles GET /api/v1/products/search
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Search(r.URL.Query().Get("q")))
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, product)
}

// Related handles GET /api/v1/products/{id}/related
func (h *CatalogHandler) Related(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Related(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, products)
}
