package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
	"github.com/nobih83-prog/Nashwa01/internal/event"
	"github.com/nobih83-prog/Nashwa01/internal/storage"
	apperrors "github.com/nobih83-prog/Nashwa01/pkg/errors"
	"github.com/nobih83-prog/Nashwa01/pkg/logger"
)

func newCheckout(f *orderFixture, latency time.Duration) *CheckoutService {
	return NewCheckoutService(f.svc, event.NewProducer(f.pub, logger.Discard()), logger.Discard(), latency)
}

func validInput() CheckoutInput {
	return CheckoutInput{
		Customer: CustomerInput{
			FullName: " Nadia Hossain ",
			Phone:    "01718952852",
			Address:  "Road 11, Banani",
		},
		PaymentMethod: domain.PaymentBKash,
	}
}

func TestNewOrderID(t *testing.T) {
	pattern := regexp.MustCompile(`^RD-[0-9A-F]{6}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := NewOrderID()
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestCheckout_PlaceOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	_, err := f.svc.EnsureSeeded(ctx)
	require.NoError(t, err)
	f.setStock(t, map[string]int{"1": 20, "2": 20, "7": 20})
	f.pub.On("Publish", mock.Anything, event.TopicOrderCreated, mock.Anything).Return(nil).Once()
	f.pub.On("Publish", mock.Anything, event.TopicCartCheckedOut, mock.Anything).Return(nil).Once()

	engine := NewEngine(storage.NewMemoryStore())
	require.NoError(t, engine.Add(ctx, product(t, "1"), 1, domain.SelectedOptions{"Size": "Plus Size"}))
	require.NoError(t, engine.Add(ctx, product(t, "2"), 2, nil))
	require.NoError(t, engine.Add(ctx, product(t, "7"), 3, nil))
	before := engine.Cart()

	checkout := newCheckout(f, 0)
	fixed := time.Date(2026, 4, 1, 15, 4, 5, 0, time.FixedZone("BST", 6*3600))
	checkout.now = func() time.Time { return fixed }

	order, err := checkout.PlaceOrder(ctx, "sess-1", engine, validInput())
	require.NoError(t, err)

	assert.Regexp(t, `^RD-[0-9A-Z]{6}$`, order.ID)
	assert.Equal(t, before.Total, order.Total)
	assert.Equal(t, int64(5000+2400+2550), order.Subtotal)
	assert.Equal(t, int64(0), order.DeliveryFee)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentBKash, order.PaymentMethod)
	assert.Equal(t, "Nadia Hossain", order.Customer.FullName)
	assert.Equal(t, domain.DefaultCity, order.Customer.City)
	assert.Equal(t, time.UTC, order.CreatedAt.Location())
	assert.True(t, fixed.Equal(order.CreatedAt))

	assert.Equal(t, 19, f.stock(t, "1"))
	assert.Equal(t, 18, f.stock(t, "2"))
	assert.Equal(t, 17, f.stock(t, "7"))
	assert.Empty(t, engine.Cart().Items)

	stored, err := f.svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 3)
	f.pub.AssertExpectations(t)
}

func TestCheckout_PlaceOrder_KeepsLinesAddedMeanwhile(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	f.pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	kv := storage.NewMemoryStore()
	engine := NewEngine(kv)
	require.NoError(t, engine.Add(ctx, product(t, "5"), 1, nil))
	require.NoError(t, engine.Add(ctx, product(t, "7"), 1, nil))

	// Another request on the same session adds to the cart after this one
	// loaded it.
	other := NewEngine(kv)
	require.NoError(t, other.Load(ctx))
	require.NoError(t, other.Add(ctx, product(t, "7"), 2, nil))
	require.NoError(t, other.Add(ctx, product(t, "4"), 1, nil))

	order, err := newCheckout(f, 0).PlaceOrder(ctx, "sess-3", engine, validInput())
	require.NoError(t, err)
	require.Len(t, order.Items, 2)

	reloaded := NewEngine(kv)
	require.NoError(t, reloaded.Load(ctx))
	items := reloaded.Cart().Items
	require.Len(t, items, 2)
	assert.Equal(t, "7", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "4", items[1].ID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestCheckout_DefaultsToCashOnDelivery(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	f.pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	engine := NewEngine(storage.NewMemoryStore())
	require.NoError(t, engine.Add(ctx, product(t, "5"), 1, nil))

	input := validInput()
	input.PaymentMethod = ""
	order, err := newCheckout(f, 0).PlaceOrder(ctx, "sess-2", engine, input)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCOD, order.PaymentMethod)
	assert.Equal(t, int64(1920), order.Total)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newOrderFixture(t)
	_, err := newCheckout(f, 0).PlaceOrder(context.Background(), "sess-3", NewEngine(storage.NewMemoryStore()), validInput())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	orders, err := f.svc.ListOrders(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_UnsupportedPaymentMethod(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	engine := NewEngine(storage.NewMemoryStore())
	require.NoError(t, engine.Add(ctx, product(t, "5"), 1, nil))

	input := validInput()
	input.PaymentMethod = "Visa"
	_, err := newCheckout(f, 0).PlaceOrder(ctx, "sess-4", engine, input)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Len(t, engine.Cart().Items, 1)
}

func TestCheckout_CancelledDuringLatency(t *testing.T) {
	f := newOrderFixture(t)
	engine := NewEngine(storage.NewMemoryStore())
	require.NoError(t, engine.Add(context.Background(), product(t, "5"), 1, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := newCheckout(f, time.Minute).PlaceOrder(ctx, "sess-5", engine, validInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)

	assert.Len(t, engine.Cart().Items, 1, "cart untouched")
	orders, err := f.svc.ListOrders(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_WaitsLatency(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	f.pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	engine := NewEngine(storage.NewMemoryStore())
	require.NoError(t, engine.Add(ctx, product(t, "7"), 1, nil))

	start := time.Now()
	_, err := newCheckout(f, 30*time.Millisecond).PlaceOrder(ctx, "sess-6", engine, validInput())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
