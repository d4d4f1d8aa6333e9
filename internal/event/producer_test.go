package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
	pkgkafka "github.com/nobih83-prog/Nashwa01/pkg/kafka"
	"github.com/nobih83-prog/Nashwa01/pkg/logger"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, event *pkgkafka.Event) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:       "RD-4B2E9F",
		Customer: domain.CustomerDetails{FullName: "Sadia Islam", Phone: "01911223344", City: "Sylhet"},
		Items: []domain.CartItem{
			{Product: domain.Product{ID: "2", Name: "Gold Plated Jhumka", Price: 3000}, Quantity: 1,
				SelectedOptions: domain.SelectedOptions{"Material": "Pure Silver"}},
			{Product: domain.Product{ID: "7", Name: "Silk Evening Scarf", Price: 850}, Quantity: 2},
		},
		Subtotal:      4700,
		DeliveryFee:   120,
		Total:         4820,
		Status:        domain.OrderStatusPending,
		PaymentMethod: domain.PaymentCOD,
	}
}

func TestPublishOrderCreated(t *testing.T) {
	pub := new(mockPublisher)
	p := NewProducer(pub, logger.Discard())

	ctx := logger.WithCorrelationID(context.Background(), "corr-1")
	ctx = logger.WithSessionID(ctx, "sess-1")

	var captured *pkgkafka.Event
	pub.On("Publish", mock.Anything, "nashwa.order.created", mock.AnythingOfType("*kafka.Event")).
		Run(func(args mock.Arguments) { captured = args.Get(2).(*pkgkafka.Event) }).
		Return(nil).Once()

	require.NoError(t, p.PublishOrderCreated(ctx, sampleOrder()))
	pub.AssertExpectations(t)

	require.NotNil(t, captured)
	assert.Equal(t, TypeOrderCreated, captured.EventType)
	assert.Equal(t, "RD-4B2E9F", captured.AggregateID)
	assert.Equal(t, SourceStorefront, captured.Source)
	assert.Equal(t, "corr-1", captured.CorrelationID)
	assert.Equal(t, "sess-1", captured.Metadata["session_id"])

	var data OrderCreatedData
	require.NoError(t, captured.UnmarshalData(&data))
	assert.Equal(t, int64(4820), data.Total)
	require.Len(t, data.Items, 2)
	assert.Equal(t, "Pure Silver", data.Items[0].SelectedOptions["Material"])
}

func TestPublishOrderStatusUpdated(t *testing.T) {
	pub := new(mockPublisher)
	p := NewProducer(pub, logger.Discard())

	pub.On("Publish", mock.Anything, TopicOrderStatusUpdated, mock.MatchedBy(func(e *pkgkafka.Event) bool {
		var data OrderStatusUpdatedData
		return e.UnmarshalData(&data) == nil &&
			data.PreviousStatus == domain.OrderStatusPending &&
			data.Status == domain.OrderStatusShipped
	})).Return(nil).Once()

	require.NoError(t, p.PublishOrderStatusUpdated(context.Background(), "RD-4B2E9F", domain.OrderStatusPending, domain.OrderStatusShipped))
	pub.AssertExpectations(t)
}

func TestPublishCartCheckedOut(t *testing.T) {
	pub := new(mockPublisher)
	p := NewProducer(pub, logger.Discard())

	pub.On("Publish", mock.Anything, "nashwa.cart.checked_out", mock.MatchedBy(func(e *pkgkafka.Event) bool {
		var data CartCheckedOutData
		return e.AggregateID == "sess-9" && e.UnmarshalData(&data) == nil && data.ItemCount == 3
	})).Return(nil).Once()

	require.NoError(t, p.PublishCartCheckedOut(context.Background(), "sess-9", sampleOrder()))
	pub.AssertExpectations(t)
}

func TestPublish_WrapsTransportError(t *testing.T) {
	pub := new(mockPublisher)
	p := NewProducer(pub, logger.Discard())
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	err := p.PublishOrderCreated(context.Background(), sampleOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish order.created event")
}

func TestPublish_NilPublisherIsNoop(t *testing.T) {
	p := NewProducer(nil, logger.Discard())
	assert.NoError(t, p.PublishOrderCreated(context.Background(), sampleOrder()))
}
