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

// untracked stands in for a NULL stock column.
const untracked = -1

const productColumns = `id, name, price, category, image, images, description, variations,
		is_new, is_bestseller, COALESCE(stock, -1), sku`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns all products in catalog order.
func (r *ProductRepository) List(ctx context.Context) (_ []domain.Product, err error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY position`
	ctx, end := database.TraceQuery(ctx, "ListProducts", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (_ *domain.Product, err error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, end := database.TraceQuery(ctx, "GetProduct", query)
	defer func() { end(err) }()

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, err
	}
	return p, nil
}

// DecrementStock lowers stock by qty, floored at zero. Rows with NULL stock
// are untouched.
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) (err error) {
	query := `UPDATE products SET stock = GREATEST(stock - $2, 0) WHERE id = $1 AND stock IS NOT NULL`
	ctx, end := database.TraceQuery(ctx, "DecrementStock", query)
	defer func() { end(err) }()

	if _, err = r.db.Exec(ctx, query, id, qty); err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	return nil
}

const insertProduct = `
		INSERT INTO products (id, position, name, price, category, image, images, description, variations,
			is_new, is_bestseller, stock, sku)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// SaveAll replaces the product table in one transaction.
func (r *ProductRepository) SaveAll(ctx context.Context, products []domain.Product) (err error) {
	ctx, end := database.TraceQuery(ctx, "SaveProducts", insertProduct)
	defer func() { end(err) }()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	if err = insertProducts(ctx, tx, products); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// SeedIfEmpty inserts products only when the table has no rows. The table
// lock serializes concurrent seeders, so a later one sees the first one's
// rows and leaves them alone.
func (r *ProductRepository) SeedIfEmpty(ctx context.Context, products []domain.Product) (_ bool, err error) {
	ctx, end := database.TraceQuery(ctx, "SeedProducts", insertProduct)
	defer func() { end(err) }()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `LOCK TABLE products IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return false, fmt.Errorf("lock products: %w", err)
	}

	var exists bool
	if err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products)`).Scan(&exists); err != nil {
		return false, fmt.Errorf("check products: %w", err)
	}
	if exists {
		return false, nil
	}

	if err = insertProducts(ctx, tx, products); err != nil {
		return false, err
	}
	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}
	return true, nil
}

func insertProducts(ctx context.Context, tx pgx.Tx, products []domain.Product) error {
	for i := range products {
		p := &products[i]
		images, err := json.Marshal(nonNil(p.Images))
		if err != nil {
			return fmt.Errorf("marshal images: %w", err)
		}
		variations, err := json.Marshal(nonNil(p.Variations))
		if err != nil {
			return fmt.Errorf("marshal variations: %w", err)
		}
		if _, err = tx.Exec(ctx, insertProduct,
			p.ID, i, p.Name, p.Price, p.Category, p.Image, images, p.Description, variations,
			p.IsNew, p.IsBestSeller, p.Stock, p.SKU,
		); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p              domain.Product
		imagesJSON     []byte
		variationsJSON []byte
		stock          int
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Category, &p.Image, &imagesJSON, &p.Description, &variationsJSON,
		&p.IsNew, &p.IsBestSeller, &stock, &p.SKU,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if err := unmarshalOptional(imagesJSON, &p.Images); err != nil {
		return nil, fmt.Errorf("unmarshal images: %w", err)
	}
	if err := unmarshalOptional(variationsJSON, &p.Variations); err != nil {
		return nil, fmt.Errorf("unmarshal variations: %w", err)
	}
	if len(p.Images) == 0 {
		p.Images = nil
	}
	if len(p.Variations) == 0 {
		p.Variations = nil
	}
	if stock != untracked {
		p.Stock = domain.IntPtr(stock)
	}
	return &p, nil
}

func unmarshalOptional(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
