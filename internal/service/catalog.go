package service

import (
	"fmt"

	"github.com/nobih83-prog/Nashwa01/internal/catalog"
	"github.com/nobih83-prog/Nashwa01/internal/domain"
	apperrors "github.com/nobih83-prog/Nashwa01/pkg/errors"
)

// CatalogService answers product browsing queries.
type CatalogService struct {
	catalog *catalog.Catalog
}

// NewCatalogService creates a catalog service.
func NewCatalogService(cat *catalog.Catalog) *CatalogService {
	return &CatalogService{catalog: cat}
}

// Shop lists products matching f.
func (s *CatalogService) Shop(f catalog.Filter) ([]domain.Product, error) {
	if f.Category != "" && f.Category != catalog.CategoryAll && !domain.IsValidCategory(f.Category) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown category %q", f.Category))
	}
	if !catalog.IsValidSort(f.Sort) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown sort %q", f.Sort))
	}
	if f.MaxPrice < 0 {
		return nil, apperrors.InvalidInput("max_price must not be negative")
	}
	return s.catalog.Shop(f), nil
}

// Categories returns the shop filter choices, starting with "All".
func (s *CatalogService) Categories() []string {
	return append([]string{catalog.CategoryAll}, domain.Categories()...)
}

// Featured returns the home page selection.
func (s *CatalogService) Featured() []domain.Product {
	return s.catalog.Featured()
}

// Search runs the header quick search.
func (s *CatalogService) Search(q string) []domain.Product {
	return s.catalog.QuickSearch(q)
}

// GetProduct retrieves a product by id.
func (s *CatalogService) GetProduct(id string) (*domain.Product, error) {
	p, ok := s.catalog.Get(id)
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return &p, nil
}

// Related returns products from the same category as id.
func (s *CatalogService) Related(id string) ([]domain.Product, error) {
	if _, ok := s.catalog.Get(id); !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return s.catalog.Related(id), nil
}

// Wishlist resolves wishlisted ids into products in the requested order.
func (s *CatalogService) Wishlist(ids []string, sortBy string) ([]domain.Product, error) {
	if !catalog.IsValidWishlistSort(sortBy) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown sort %q", sortBy))
	}
	return s.catalog.ResolveWishlist(ids, sortBy), nil
}
