package postgres

import (
	"context"
	"fmt"

	"github.com/nobih83-prog/Nashwa01/internal/repository"
	"github.com/nobih83-prog/Nashwa01/pkg/database"
)

// Store implements repository.Store using PostgreSQL.
type Store struct {
	db database.DBTX
}

// NewStore creates a PostgreSQL-backed repository store.
func NewStore(db database.DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) Products() repository.ProductRepository {
	return NewProductRepository(s.db)
}

func (s *Store) Orders() repository.OrderRepository {
	return NewOrderRepository(s.db)
}

// WithinTx runs fn against repositories bound to one transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, products repository.ProductRepository, orders repository.OrderRepository) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orders := &OrderRepository{db: tx, lockRows: true}
	if err := fn(ctx, NewProductRepository(tx), orders); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, "SELECT 1"); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}
