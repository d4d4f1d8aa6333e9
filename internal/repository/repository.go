package repository

import (
	"context"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
)

// ProductRepository defines persistence for the inventory view of products.
type ProductRepository interface {
	// List returns every product in catalog order.
	List(ctx context.Context) ([]domain.Product, error)

	// GetByID retrieves a product by its ID.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// DecrementStock lowers the product's stock by qty, never below zero.
	// Unknown ids and products without tracked stock are left alone.
	DecrementStock(ctx context.Context, id string, qty int) error

	// SaveAll replaces the product table with products.
	SaveAll(ctx context.Context, products []domain.Product) error

	// SeedIfEmpty stores products only when no product is stored yet and
	// reports whether it did.
	SeedIfEmpty(ctx context.Context, products []domain.Product) (bool, error)
}

// OrderRepository defines persistence for orders.
type OrderRepository interface {
	// Prepend stores a new order ahead of all existing ones.
	Prepend(ctx context.Context, order *domain.Order) error

	// List returns all orders, newest first.
	List(ctx context.Context) ([]domain.Order, error)

	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// UpdateStatus replaces the status of the order and returns it.
	// An unknown id yields a NOT_FOUND error and changes nothing.
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}

// Store groups the repositories and runs work across them atomically.
type Store interface {
	Products() ProductRepository
	Orders() OrderRepository

	// WithinTx runs fn with repositories bound to a single transaction. The
	// work is committed when fn returns nil and rolled back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, products ProductRepository, orders OrderRepository) error) error

	Ping(ctx context.Context) error
}
