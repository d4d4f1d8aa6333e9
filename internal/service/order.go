package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/nobih83-prog/Nashwa01/internal/catalog"
	"github.com/nobih83-prog/Nashwa01/internal/domain"
	"github.com/nobih83-prog/Nashwa01/internal/event"
	"github.com/nobih83-prog/Nashwa01/internal/repository"
	apperrors "github.com/nobih83-prog/Nashwa01/pkg/errors"
	"github.com/nobih83-prog/Nashwa01/pkg/tracing"
)

// UpdateStatusInput holds the parameters for changing an order's status.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,oneof=Pending Processing Shipped Delivered"`
}

// OrderService is the inventory and order book behind checkout and the
// admin dashboard.
type OrderService struct {
	store    repository.Store
	catalog  *catalog.Catalog
	producer *event.Producer
	logger   *slog.Logger

	strictTransitions bool
	rng               *rand.Rand
}

// OrderOption configures an OrderService.
type OrderOption func(*OrderService)

// WithStrictTransitions only allows status moves forward along the
// Pending, Processing, Shipped, Delivered lifecycle.
func WithStrictTransitions(strict bool) OrderOption {
	return func(s *OrderService) { s.strictTransitions = strict }
}

// WithSeedRand fixes the random source used when seeding inventory.
func WithSeedRand(r *rand.Rand) OrderOption {
	return func(s *OrderService) { s.rng = r }
}

// NewOrderService creates a new order service.
func NewOrderService(store repository.Store, cat *catalog.Catalog, producer *event.Producer, logger *slog.Logger, opts ...OrderOption) *OrderService {
	s := &OrderService{
		store:    store,
		catalog:  cat,
		producer: producer,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureSeeded fills an empty product table from the catalog with random
// stock levels and SKUs. It reports whether seeding happened; of several
// instances starting together only one seeds.
func (s *OrderService) EnsureSeeded(ctx context.Context) (bool, error) {
	var seeded []domain.Product
	var done bool
	err := s.store.WithinTx(ctx, func(ctx context.Context, products repository.ProductRepository, _ repository.OrderRepository) error {
		existing, err := products.List(ctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		if len(existing) > 0 {
			done = false
			return nil
		}
		if seeded == nil {
			seeded = catalog.SeedInventory(s.catalog.All(), s.rng)
		}
		done, err = products.SeedIfEmpty(ctx, seeded)
		if err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if !done {
		return false, nil
	}

	s.logger.InfoContext(ctx, "inventory seeded", slog.Int("products", len(seeded)))
	return true, nil
}

// CreateOrder stores the order ahead of existing ones and decrements stock
// for each line, all in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, order *domain.Order) (_ *domain.Order, err error) {
	ctx, span := tracing.StartSpan(ctx, "order", "create")
	defer func() { tracing.End(span, err) }()

	if order.ID == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, products repository.ProductRepository, orders repository.OrderRepository) error {
		if err := orders.Prepend(ctx, order); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := products.DecrementStock(ctx, item.ID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	ordersCreatedTotal.WithLabelValues(order.PaymentMethod).Inc()
	orderRevenueTotal.Add(float64(order.Total))

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.Int64("total", order.Total),
		slog.Int("lines", len(order.Items)),
		slog.String("payment_method", order.PaymentMethod),
	)

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		eventPublishFailuresTotal.WithLabelValues(event.TypeOrderCreated).Inc()
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	return order, nil
}

// UpdateOrderStatus replaces the status of an order. The read, the
// transition check and the write share one transaction.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	if !domain.IsValidStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid order status %q", status))
	}

	var (
		previous string
		updated  *domain.Order
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, _ repository.ProductRepository, orders repository.OrderRepository) error {
		current, err := orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		previous = current.Status
		if previous == status {
			updated = current
			return nil
		}
		if s.strictTransitions && !domain.IsForwardTransition(previous, status) {
			return apperrors.Conflict(fmt.Sprintf("cannot move order from %s to %s", previous, status))
		}
		updated, err = orders.UpdateStatus(ctx, orderID, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	if previous == status {
		return updated, nil
	}

	orderStatusUpdatesTotal.WithLabelValues(status).Inc()
	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", orderID),
		slog.String("from", previous),
		slog.String("to", status),
	)

	if err := s.producer.PublishOrderStatusUpdated(ctx, orderID, previous, status); err != nil {
		eventPublishFailuresTotal.WithLabelValues(event.TypeOrderStatusUpdated).Inc()
		s.logger.ErrorContext(ctx, "failed to publish order.status_updated event",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	return updated, nil
}

// ListOrders returns orders newest first, filtered by an optional search
// over customer name, phone and order id.
func (s *OrderService) ListOrders(ctx context.Context, query string) ([]domain.Order, error) {
	orders, err := s.store.Orders().List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return orders, nil
	}
	filtered := make([]domain.Order, 0, len(orders))
	for i := range orders {
		if orders[i].MatchesQuery(query) {
			filtered = append(filtered, orders[i])
		}
	}
	return filtered, nil
}

// GetOrder retrieves one order.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.store.Orders().GetByID(ctx, orderID)
}

// Inventory returns products with their stock levels and SKUs.
func (s *OrderService) Inventory(ctx context.Context) ([]domain.Product, error) {
	return s.store.Products().List(ctx)
}

// Analytics computes the dashboard figures from the current orders and
// inventory.
func (s *OrderService) Analytics(ctx context.Context) (*domain.Analytics, error) {
	orders, err := s.store.Orders().List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, err
	}
	a := domain.ComputeAnalytics(orders, products)
	return &a, nil
}

// Ping checks the order backend.
func (s *OrderService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
