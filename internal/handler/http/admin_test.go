package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
	"github.com/nobih83-prog/Nashwa01/pkg/pagination"
)

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := e.jwt.Generate(testAdminEmail, domain.RoleAdmin)
	require.NoError(t, err)
	return token
}

func (e *testEnv) placeOrder(t *testing.T, session string) domain.Order {
	t.Helper()
	s := withSession(session)
	rec := e.do(t, http.MethodPost, "/api/v1/cart/items", `{"product_id":"3"}`, s)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody, s)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order domain.Order
	decodeData(t, rec, &order)
	return order
}

func TestAdmin_RequiresAdminToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/orders", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/orders", "", withBearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	customer, _, err := env.jwt.Generate("rima@example.com", domain.RoleCustomer)
	require.NoError(t, err)
	rec = env.do(t, http.MethodGet, "/api/v1/admin/orders", "", withBearer(customer))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdmin_OrdersAndStatus(t *testing.T) {
	env := newTestEnv(t)
	bearer := withBearer(env.adminToken(t))

	first := env.placeOrder(t, "shopper-a")
	second := env.placeOrder(t, "shopper-b")

	var list pagination.Page[domain.Order]
	rec := env.do(t, http.MethodGet, "/api/v1/admin/orders", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	decodeData(t, rec, &list)
	require.Equal(t, 2, list.TotalCount)
	assert.Equal(t, second.ID, list.Items[0].ID)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/orders?q="+first.ID, "", bearer)
	decodeData(t, rec, &list)
	require.Equal(t, 1, list.TotalCount)
	assert.Equal(t, first.ID, list.Items[0].ID)

	var updated domain.Order
	rec = env.do(t, http.MethodPatch, "/api/v1/admin/orders/"+first.ID+"/status", `{"status":"Shipped"}`, bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &updated)
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/orders?page=2&per_page=1", "", bearer)
	decodeData(t, rec, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, first.ID, list.Items[0].ID)
	assert.Equal(t, 2, list.TotalPages)
	assert.True(t, list.HasPrev)

	var got domain.Order
	rec = env.do(t, http.MethodGet, "/api/v1/admin/orders/"+first.ID, "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	assert.Equal(t, domain.OrderStatusShipped, got.Status)

	rec = env.do(t, http.MethodPatch, "/api/v1/admin/orders/"+first.ID+"/status", `{"status":"Lost"}`, bearer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/v1/admin/orders/RD-NOPE00/status", `{"status":"Delivered"}`, bearer)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/orders/RD-NOPE00", "", bearer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_AnalyticsAndInventory(t *testing.T) {
	env := newTestEnv(t)
	bearer := withBearer(env.adminToken(t))

	env.placeOrder(t, "shopper-a")
	env.placeOrder(t, "shopper-b")

	var analytics domain.Analytics
	rec := env.do(t, http.MethodGet, "/api/v1/admin/analytics", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &analytics)
	assert.Equal(t, int64(2*5500), analytics.Revenue)
	assert.Equal(t, 2, analytics.OrderCount)
	assert.Equal(t, 1, analytics.CustomerCount)
	assert.Equal(t, 2, analytics.StatusBreakdown[domain.OrderStatusPending])

	var inventory []domain.Product
	rec = env.do(t, http.MethodGet, "/api/v1/admin/inventory", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &inventory)
	require.Len(t, inventory, 8)
	for _, p := range inventory {
		require.NotNil(t, p.Stock, p.ID)
		assert.Regexp(t, `^NSW-[0-9A-Z]{6}$`, p.SKU)
	}
}
