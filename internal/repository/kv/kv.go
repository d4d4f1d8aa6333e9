// Package kv stores products and orders as two JSON documents in a
// storage.Store, mirroring the browser-storage layout of the storefront.
package kv

import (
	"context"
	"fmt"
	"slices"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
	"github.com/nobih83-prog/Nashwa01/internal/repository"
	"github.com/nobih83-prog/Nashwa01/internal/storage"
	apperrors "github.com/nobih83-prog/Nashwa01/pkg/errors"
)

// Shared storage keys.
const (
	ProductsKey = "retailpro_products"
	OrdersKey   = "retailpro_orders"
)

// Store implements repository.Store over a storage.Store.
type Store struct {
	store storage.Store
}

// NewStore creates a key-value backed repository store.
func NewStore(s storage.Store) *Store {
	return &Store{store: s}
}

func (s *Store) Products() repository.ProductRepository {
	return &ProductRepository{kv: s.store}
}

func (s *Store) Orders() repository.OrderRepository {
	return &OrderRepository{kv: s.store}
}

// WithinTx runs fn inside a storage update covering both documents.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, products repository.ProductRepository, orders repository.OrderRepository) error) error {
	return s.store.Update(ctx, []string{ProductsKey, OrdersKey}, func(ctx context.Context, tx storage.KV) error {
		return fn(ctx, &ProductRepository{kv: tx}, &OrderRepository{kv: tx})
	})
}

func (s *Store) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// ProductRepository implements repository.ProductRepository.
type ProductRepository struct {
	kv storage.KV
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if _, err := r.kv.Load(ctx, ProductsKey, &products); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(products, func(p domain.Product) bool { return p.ID == id })
	if idx < 0 {
		return nil, apperrors.NotFound("product", id)
	}
	return &products[idx], nil
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) error {
	products, err := r.List(ctx)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(products, func(p domain.Product) bool { return p.ID == id })
	if idx < 0 || products[idx].Stock == nil {
		return nil
	}
	products[idx].Stock = domain.IntPtr(max(0, *products[idx].Stock-qty))
	return r.SaveAll(ctx, products)
}

func (r *ProductRepository) SaveAll(ctx context.Context, products []domain.Product) error {
	if err := r.kv.Save(ctx, ProductsKey, products); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	return nil
}

// SeedIfEmpty is only atomic when r is bound to an update through
// Store.WithinTx.
func (r *ProductRepository) SeedIfEmpty(ctx context.Context, products []domain.Product) (bool, error) {
	existing, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if err := r.SaveAll(ctx, products); err != nil {
		return false, err
	}
	return true, nil
}

// OrderRepository implements repository.OrderRepository.
type OrderRepository struct {
	kv storage.KV
}

func (r *OrderRepository) Prepend(ctx context.Context, order *domain.Order) error {
	orders, err := r.List(ctx)
	if err != nil {
		return err
	}
	orders = slices.Insert(orders, 0, *order)
	return r.save(ctx, orders)
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if _, err := r.kv.Load(ctx, OrdersKey, &orders); err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(orders, func(o domain.Order) bool { return o.ID == id })
	if idx < 0 {
		return nil, apperrors.NotFound("order", id)
	}
	return &orders[idx], nil
}

// UpdateStatus rewrites the whole orders document; callers that race with
// order creation go through Store.WithinTx.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(orders, func(o domain.Order) bool { return o.ID == id })
	if idx < 0 {
		return nil, apperrors.NotFound("order", id)
	}
	orders[idx].Status = status
	if err := r.save(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[idx], nil
}

func (r *OrderRepository) save(ctx context.Context, orders []domain.Order) error {
	if err := r.kv.Save(ctx, OrdersKey, orders); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	return nil
}
