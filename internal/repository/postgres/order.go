package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
	"github.com/nobih83-prog/Nashwa01/pkg/database"
	apperrors "github.com/nobih83-prog/Nashwa01/pkg/errors"
)

const orderColumns = `id, customer, items, subtotal, delivery_fee, total, status, payment_method, created_at`

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	db database.DBTX
	// lockRows makes GetByID take a row lock; set for transaction-bound
	// repositories.
	lockRows bool
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(db database.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// Prepend inserts the order. The serial seq column keeps insertion order.
func (r *OrderRepository) Prepend(ctx context.Context, o *domain.Order) (err error) {
	query := `
		INSERT INTO orders (id, customer, items, subtotal, delivery_fee, total, status, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	ctx, end := database.TraceQuery(ctx, "InsertOrder", query)
	defer func() { end(err) }()

	customerJSON, err := json.Marshal(o.Customer)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	itemsJSON, err := json.Marshal(nonNil(o.Items))
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	_, err = r.db.Exec(ctx, query,
		o.ID,
		customerJSON,
		itemsJSON,
		o.Subtotal,
		o.DeliveryFee,
		o.Total,
		o.Status,
		o.PaymentMethod,
		o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// List returns every order, most recently inserted first.
func (r *OrderRepository) List(ctx context.Context) (_ []domain.Order, err error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY seq DESC`
	ctx, end := database.TraceQuery(ctx, "ListOrders", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (_ *domain.Order, err error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if r.lockRows {
		query += ` FOR UPDATE`
	}
	ctx, end := database.TraceQuery(ctx, "GetOrder", query)
	defer func() { end(err) }()

	o, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, err
	}
	return o, nil
}

// UpdateStatus sets the order status and returns the updated order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) (_ *domain.Order, err error) {
	query := `UPDATE orders SET status = $2 WHERE id = $1 RETURNING ` + orderColumns
	ctx, end := database.TraceQuery(ctx, "UpdateOrderStatus", query)
	defer func() { end(err) }()

	o, err := scanOrder(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o            domain.Order
		customerJSON []byte
		itemsJSON    []byte
	)
	if err := row.Scan(
		&o.ID, &customerJSON, &itemsJSON, &o.Subtotal, &o.DeliveryFee, &o.Total,
		&o.Status, &o.PaymentMethod, &o.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if err := json.Unmarshal(customerJSON, &o.Customer); err != nil {
		return nil, fmt.Errorf("unmarshal customer: %w", err)
	}
	if err := unmarshalOptional(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	o.CreatedAt = o.CreatedAt.UTC()
	return &o, nil
}
