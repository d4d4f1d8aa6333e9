package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
	"github.com/nobih83-prog/Nashwa01/internal/event"
	apperrors "github.com/nobih83-prog/Nashwa01/pkg/errors"
	"github.com/nobih83-prog/Nashwa01/pkg/tracing"
)

// DefaultCheckoutLatency mimics payment processing before an order is placed.
const DefaultCheckoutLatency = 1500 * time.Millisecond

const orderIDSuffixLen = 6

// CustomerInput is the delivery form submitted at checkout.
type CustomerInput struct {
	FullName string `json:"full_name" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"required,phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Address  string `json:"address" validate:"required,max=500"`
	City     string `json:"city" validate:"omitempty,max=80"`
}

// CheckoutInput holds the parameters for placing an order.
type CheckoutInput struct {
	Customer      CustomerInput `json:"customer"`
	PaymentMethod string        `json:"payment_method" validate:"omitempty,oneof=COD bKash Nagad Rocket"`
}

// CheckoutService turns a shopper's cart into an order.
type CheckoutService struct {
	orders   *OrderService
	producer *event.Producer
	logger   *slog.Logger
	latency  time.Duration
	now      func() time.Time
	newID    func() string
}

// NewCheckoutService creates a checkout service. latency is the simulated
// processing delay; zero disables it.
func NewCheckoutService(orders *OrderService, producer *event.Producer, logger *slog.Logger, latency time.Duration) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		producer: producer,
		logger:   logger,
		latency:  latency,
		now:      time.Now,
		newID:    NewOrderID,
	}
}

// NewOrderID returns "RD-" followed by six random uppercase characters.
func NewOrderID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return domain.OrderIDPrefix + strings.ToUpper(hex[:orderIDSuffixLen])
}

// PlaceOrder waits out the simulated processing delay, records the order
// with its stock decrements and takes the ordered lines out of the cart.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, engine *Engine, input CheckoutInput) (_ *domain.Order, err error) {
	ctx, span := tracing.StartSpan(ctx, "checkout", "place_order")
	defer func() { tracing.End(span, err) }()
	start := time.Now()

	view := engine.Cart()
	if len(view.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PaymentCOD
	}
	if !domain.IsValidPaymentMethod(paymentMethod) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unsupported payment method %q", paymentMethod))
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	c := input.Customer
	order := &domain.Order{
		ID: s.newID(),
		Customer: domain.CustomerDetails{
			FullName: c.FullName,
			Phone:    c.Phone,
			Email:    c.Email,
			Address:  c.Address,
			City:     c.City,
		}.Normalize(),
		Items:         view.Items,
		Subtotal:      view.Subtotal,
		DeliveryFee:   view.DeliveryFee,
		Total:         view.Total,
		CreatedAt:     s.now().UTC(),
		Status:        domain.OrderStatusPending,
		PaymentMethod: paymentMethod,
	}

	if _, err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := engine.DeductOrdered(ctx, order.Items); err != nil {
		s.logger.ErrorContext(ctx, "order placed but cart not cleared",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("clear cart after order %s: %w", order.ID, err)
	}

	checkoutDuration.Observe(time.Since(start).Seconds())
	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("order_id", order.ID),
		slog.Int64("total", order.Total),
	)

	if err := s.producer.PublishCartCheckedOut(ctx, sessionID, order); err != nil {
		eventPublishFailuresTotal.WithLabelValues(event.TypeCartCheckedOut).Inc()
		s.logger.ErrorContext(ctx, "failed to publish cart.checked_out event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	return order, nil
}

func (s *CheckoutService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("checkout interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
