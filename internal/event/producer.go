package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
	pkgkafka "github.com/nobih83-prog/Nashwa01/pkg/kafka"
	"github.com/nobih83-prog/Nashwa01/pkg/logger"
)

// Event types, also used to build topic names.
const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusUpdated = "order.status_updated"
	TypeCartCheckedOut     = "cart.checked_out"
)

// Kafka topics for storefront domain events.
var (
	TopicOrderCreated       = pkgkafka.Topic("order", "created")
	TopicOrderStatusUpdated = pkgkafka.Topic("order", "status_updated")
	TopicCartCheckedOut     = pkgkafka.Topic("cart", "checked_out")
)

// Aggregate types.
const (
	AggregateTypeOrder = "order"
	AggregateTypeCart  = "cart"
)

// SourceStorefront identifies events originating from this service.
const SourceStorefront = "storefront"

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	OrderID       string          `json:"order_id"`
	CustomerPhone string          `json:"customer_phone"`
	City          string          `json:"city"`
	Items         []OrderItemData `json:"items"`
	Subtotal      int64           `json:"subtotal"`
	DeliveryFee   int64           `json:"delivery_fee"`
	Total         int64           `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
}

// OrderItemData is the line payload within order events.
type OrderItemData struct {
	ProductID       string            `json:"product_id"`
	Name            string            `json:"name"`
	UnitPrice       int64             `json:"unit_price"`
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selected_options,omitempty"`
}

// OrderStatusUpdatedData is the payload for an order.status_updated event.
type OrderStatusUpdatedData struct {
	OrderID        string `json:"order_id"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
}

// CartCheckedOutData is the payload for a cart.checked_out event.
type CartCheckedOutData struct {
	SessionID string `json:"session_id"`
	OrderID   string `json:"order_id"`
	ItemCount int    `json:"item_count"`
	Total     int64  `json:"total"`
}

// Publisher is the transport a Producer writes to. *pkgkafka.Producer
// satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes storefront domain events.
type Producer struct {
	pub    Publisher
	logger *slog.Logger
}

// NewProducer creates an event producer. A nil publisher turns every publish
// into a debug log line, for deployments without Kafka.
func NewProducer(pub Publisher, logger *slog.Logger) *Producer {
	return &Producer{pub: pub, logger: logger}
}

// PublishOrderCreated publishes an order.created event.
func (p *Producer) PublishOrderCreated(ctx context.Context, o *domain.Order) error {
	items := make([]OrderItemData, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemData{
			ProductID:       item.ID,
			Name:            item.Name,
			UnitPrice:       item.Price,
			Quantity:        item.Quantity,
			SelectedOptions: item.SelectedOptions,
		}
	}
	data := OrderCreatedData{
		OrderID:       o.ID,
		CustomerPhone: o.Customer.Phone,
		City:          o.Customer.City,
		Items:         items,
		Subtotal:      o.Subtotal,
		DeliveryFee:   o.DeliveryFee,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
	}
	return p.publish(ctx, TopicOrderCreated, TypeOrderCreated, o.ID, AggregateTypeOrder, data)
}

// PublishOrderStatusUpdated publishes an order.status_updated event.
func (p *Producer) PublishOrderStatusUpdated(ctx context.Context, orderID, previous, status string) error {
	data := OrderStatusUpdatedData{OrderID: orderID, PreviousStatus: previous, Status: status}
	return p.publish(ctx, TopicOrderStatusUpdated, TypeOrderStatusUpdated, orderID, AggregateTypeOrder, data)
}

// PublishCartCheckedOut publishes a cart.checked_out event.
func (p *Producer) PublishCartCheckedOut(ctx context.Context, sessionID string, o *domain.Order) error {
	itemCount := 0
	for _, item := range o.Items {
		itemCount += item.Quantity
	}
	data := CartCheckedOutData{SessionID: sessionID, OrderID: o.ID, ItemCount: itemCount, Total: o.Total}
	return p.publish(ctx, TopicCartCheckedOut, TypeCartCheckedOut, sessionID, AggregateTypeCart, data)
}

func (p *Producer) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) error {
	if p.pub == nil {
		p.logger.DebugContext(ctx, "event publishing disabled, dropping event",
			slog.String("event_type", eventType),
			slog.String("aggregate_id", aggregateID),
		)
		return nil
	}

	evt, err := pkgkafka.NewEvent(eventType, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	evt.WithCorrelationID(logger.CorrelationIDFromContext(ctx)).
		WithMetadata("session_id", logger.SessionIDFromContext(ctx))

	if err := p.pub.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("event_type", eventType),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}
