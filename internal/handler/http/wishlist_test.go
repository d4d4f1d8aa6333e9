package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
)

func TestWishlist_ToggleAndList(t *testing.T) {
	env := newTestEnv(t)
	s := withSession(testSession)

	var toggled ToggleResponse
	rec := env.do(t, http.MethodPost, "/api/v1/wishlist/2/toggle", "", s)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &toggled)
	assert.True(t, toggled.InWishlist)

	env.do(t, http.MethodPost, "/api/v1/wishlist/6/toggle", "", s)
	env.do(t, http.MethodPost, "/api/v1/wishlist/8/toggle", "", s)

	var list WishlistResponse
	rec = env.do(t, http.MethodGet, "/api/v1/wishlist", "", s)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &list)
	require.Equal(t, 3, list.Total)
	assert.Equal(t, []string{"8", "6", "2"}, ids(list.Items))

	rec = env.do(t, http.MethodGet, "/api/v1/wishlist?sort=price_asc", "", s)
	decodeData(t, rec, &list)
	assert.Equal(t, []string{"2", "8", "6"}, ids(list.Items))

	rec = env.do(t, http.MethodPost, "/api/v1/wishlist/2/toggle", "", s)
	decodeData(t, rec, &toggled)
	assert.False(t, toggled.InWishlist)

	rec = env.do(t, http.MethodGet, "/api/v1/wishlist?sort=oldest", "", s)
	decodeData(t, rec, &list)
	assert.Equal(t, []string{"6", "8"}, ids(list.Items))
}

func TestWishlist_Errors(t *testing.T) {
	env := newTestEnv(t)
	s := withSession(testSession)

	rec := env.do(t, http.MethodPost, "/api/v1/wishlist/99/toggle", "", s)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/wishlist?sort=featured", "", s)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecentlyViewed(t *testing.T) {
	env := newTestEnv(t)
	s := withSession(testSession)

	for _, id := range []string{"1", "2", "1"} {
		rec := env.do(t, http.MethodPost, "/api/v1/recently-viewed/"+id, "", s)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var recent []domain.Product
	rec := env.do(t, http.MethodGet, "/api/v1/recently-viewed", "", s)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &recent)
	assert.Equal(t, []string{"1", "2"}, ids(recent))

	rec = env.do(t, http.MethodPost, "/api/v1/recently-viewed/77", "", s)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/recently-viewed", "", s)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/recently-viewed", "", s)
	decodeData(t, rec, &recent)
	assert.Empty(t, recent)
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
