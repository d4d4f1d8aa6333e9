package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobih83-prog/Nashwa01/internal/catalog"
	apperrors "github.com/nobih83-prog/Nashwa01/pkg/errors"
)

func TestCatalogService(t *testing.T) {
	svc := NewCatalogService(catalog.New())

	t.Run("shop validates filters", func(t *testing.T) {
		_, err := svc.Shop(catalog.Filter{Category: "Furniture"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		_, err = svc.Shop(catalog.Filter{Sort: "cheapest"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		_, err = svc.Shop(catalog.Filter{MaxPrice: -1})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

		got, err := svc.Shop(catalog.Filter{Category: catalog.CategoryAll, Sort: catalog.SortPriceAsc})
		require.NoError(t, err)
		require.Len(t, got, 8)
		assert.Equal(t, "7", got[0].ID)
	})

	t.Run("get product", func(t *testing.T) {
		p, err := svc.GetProduct("6")
		require.NoError(t, err)
		assert.Equal(t, "Stiletto Heels", p.Name)

		_, err = svc.GetProduct("0")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("related", func(t *testing.T) {
		got, err := svc.Related("2")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "5", got[0].ID)

		_, err = svc.Related("0")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("wishlist", func(t *testing.T) {
		got, err := svc.Wishlist([]string{"1", "2"}, "")
		require.NoError(t, err)
		assert.Equal(t, "2", got[0].ID)

		_, err = svc.Wishlist(nil, "random")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	assert.Len(t, svc.Featured(), 4)
	assert.Len(t, svc.Search("bag"), 2)
}
