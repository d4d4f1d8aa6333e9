package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
	"github.com/nobih83-prog/Nashwa01/internal/service"
)

const checkoutBody = `{
	"customer": {
		"full_name": "Farhana Akter",
		"phone": "01711-000222",
		"address": "House 4, Road 7, Dhanmondi"
	},
	"payment_method": "Nagad"
}`

func TestCheckout_PlacesOrder(t *testing.T) {
	env := newTestEnv(t)
	s := withSession(testSession)
	ctx := context.Background()

	before, err := env.orders.Inventory(ctx)
	require.NoError(t, err)
	stockOf := func(products []domain.Product, id string) int {
		for _, p := range products {
			if p.ID == id {
				return p.StockLevel()
			}
		}
		return -1
	}

	env.do(t, http.MethodPost, "/api/v1/cart/items", `{"product_id":"2","quantity":2}`, s)
	env.do(t, http.MethodPost, "/api/v1/cart/items", `{"product_id":"5","quantity":1}`, s)

	rec := env.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody, s)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order domain.Order
	decodeData(t, rec, &order)
	assert.Regexp(t, `^RD-[0-9A-Z]{6}$`, order.ID)
	assert.Equal(t, int64(2*1200+1800), order.Subtotal)
	assert.Equal(t, int64(120), order.DeliveryFee)
	assert.Equal(t, int64(4320), order.Total)
	assert.Equal(t, domain.PaymentNagad, order.PaymentMethod)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.DefaultCity, order.Customer.City)

	after, err := env.orders.Inventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, max(stockOf(before, "2")-2, 0), stockOf(after, "2"))
	assert.Equal(t, max(stockOf(before, "5")-1, 0), stockOf(after, "5"))

	var view service.CartView
	rec = env.do(t, http.MethodGet, "/api/v1/cart", "", s)
	decodeData(t, rec, &view)
	assert.Empty(t, view.Items)

	stored, err := env.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Farhana Akter", stored.Customer.FullName)
}

func TestCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody, withSession(testSession))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decodeError(t, rec).Code)

	orders, err := env.orders.ListOrders(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_ValidatesCustomer(t *testing.T) {
	env := newTestEnv(t)
	s := withSession(testSession)
	env.do(t, http.MethodPost, "/api/v1/cart/items", `{"product_id":"7"}`, s)

	body := `{"customer":{"full_name":"","phone":"call me","address":"x"},"payment_method":"Cheque"}`
	rec := env.do(t, http.MethodPost, "/api/v1/checkout", body, s)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errResp := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
	assert.Contains(t, errResp.Fields, "full_name")
	assert.Contains(t, errResp.Fields, "phone")
	assert.Contains(t, errResp.Fields, "payment_method")

	var view service.CartView
	rec = env.do(t, http.MethodGet, "/api/v1/cart", "", s)
	decodeData(t, rec, &view)
	assert.Len(t, view.Items, 1)
}
