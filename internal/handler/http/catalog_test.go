package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
)

func TestShop_Filters(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products?category=Jewelry&sort=price_desc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))

	var products []domain.Product
	decodeData(t, rec, &products)
	require.Len(t, products, 2)
	assert.Equal(t, "5", products[0].ID)
	assert.Equal(t, "2", products[1].ID)
}

func TestShop_MaxPrice(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products?max_price=1500", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	decodeData(t, rec, &products)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.LessOrEqual(t, p.Price, int64(1500))
	}
}

func TestShop_InvalidQuery(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		path string
	}{
		{"non-numeric max price", "/api/v1/products?max_price=cheap"},
		{"unknown sort", "/api/v1/products?sort=popular"},
		{"unknown category", "/api/v1/products?category=Furniture"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "INVALID_INPUT", decodeError(t, rec).Code)
		})
	}
}

func TestFeaturedAndSearch(t *testing.T) {
	env := newTestEnv(t)

	var featured []domain.Product
	rec := env.do(t, http.MethodGet, "/api/v1/products/featured", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &featured)
	assert.Len(t, featured, 4)

	var found []domain.Product
	rec = env.do(t, http.MethodGet, "/api/v1/products/search?q=saree", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &found)
	require.Len(t, found, 1)
	assert.Equal(t, "1", found[0].ID)

	rec = env.do(t, http.MethodGet, "/api/v1/products/search?q=s", "")
	decodeData(t, rec, &found)
	assert.Empty(t, found)
}

func TestGetProductAndRelated(t *testing.T) {
	env := newTestEnv(t)

	var p domain.Product
	rec := env.do(t, http.MethodGet, "/api/v1/products/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &p)
	assert.Equal(t, "Luxury Designer Bag", p.Name)

	var related []domain.Product
	rec = env.do(t, http.MethodGet, "/api/v1/products/3/related", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &related)
	require.Len(t, related, 2)
	for _, r := range related {
		assert.Equal(t, domain.CategoryAccessories, r.Category)
		assert.NotEqual(t, "3", r.ID)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/products/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)

	rec = env.do(t, http.MethodGet, "/api/v1/products/42/related", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategories(t *testing.T) {
	env := newTestEnv(t)

	var categories []string
	rec := env.do(t, http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &categories)
	assert.Equal(t, []string{"All", "Clothing", "Accessories", "Jewelry", "Shoes"}, categories)
}
