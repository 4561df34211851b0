package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

// Stock is visible only while both the record and its product are not deleted;
// every query below joins products for that reason.
const stockColumns = `s.id, s.product_id, s.quantity, s.location, s.created_at, s.updated_at`

var stockSort = map[string]string{
	"id":         "s.id",
	"quantity":   "s.quantity",
	"location":   "s.location",
	"created_at": "s.created_at",
}

// StockRepository implements ports.StockRepository.
type StockRepository struct{ db *DB }

func NewStockRepository(db *DB) *StockRepository { return &StockRepository{db: db} }

var _ ports.StockRepository = (*StockRepository)(nil)

func scanStock(row pgx.Row) (*domain.Stock, error) {
	var s domain.Stock
	if err := row.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.Location, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateStock inserts a record only under a visible product.
func (r *StockRepository) CreateStock(ctx context.Context, s *domain.Stock) error {
	const q = `
INSERT INTO stock (product_id, quantity, location)
SELECT id, $2, $3 FROM products WHERE id = $1 AND NOT deleted
RETURNING id, created_at, updated_at`
	err := r.db.Pool.QueryRow(ctx, q, s.ProductID, s.Quantity, s.Location).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrProductNotFound
	}
	if err != nil {
		return writeErr("create stock", err)
	}
	return nil
}

func (r *StockRepository) FindVisibleStock(ctx context.Context, id int64) (*domain.Stock, error) {
	const q = `
SELECT ` + stockColumns + `
FROM stock s JOIN products p ON p.id = s.product_id
WHERE s.id = $1 AND NOT s.deleted AND NOT p.deleted`
	s, err := scanStock(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStockNotFound
		}
		return nil, fmt.Errorf("find stock: %w", err)
	}
	return s, nil
}

func (r *StockRepository) FindVisibleStocks(ctx context.Context, f ports.ListFilter) ([]*domain.Stock, int64, error) {
	const where = `
FROM stock s JOIN products p ON p.id = s.product_id
WHERE NOT s.deleted AND NOT p.deleted
  AND ($1 = '' OR s.location ILIKE '%' || $1 || '%')`

	var total int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT count(*)`+where, f.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock: %w", err)
	}
	if total == 0 {
		return []*domain.Stock{}, 0, nil
	}

	q := `SELECT ` + stockColumns + where + "\n" + orderBy(f.Sort, stockSort, "s.id") + `
LIMIT $2 OFFSET $3`
	rows, err := r.db.Pool.Query(ctx, q, f.Search, f.Limit, f.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Stock, 0, f.Limit)
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list stock: %w", err)
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r *StockRepository) FindVisibleStocksByProduct(ctx context.Context, productID int64) ([]*domain.Stock, error) {
	const q = `
SELECT ` + stockColumns + `
FROM stock s JOIN products p ON p.id = s.product_id
WHERE s.product_id = $1 AND NOT s.deleted AND NOT p.deleted
ORDER BY s.id`
	rows, err := r.db.Pool.Query(ctx, q, productID)
	if err != nil {
		return nil, fmt.Errorf("list product stock: %w", err)
	}
	defer rows.Close()

	out := []*domain.Stock{}
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("list product stock: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *StockRepository) UpdateStock(ctx context.Context, s *domain.Stock) error {
	const q = `
UPDATE stock SET quantity = $2, location = $3, updated_at = now()
WHERE id = $1 AND NOT deleted
  AND EXISTS (SELECT 1 FROM products p WHERE p.id = stock.product_id AND NOT p.deleted)
RETURNING product_id, created_at, updated_at`
	err := r.db.Pool.QueryRow(ctx, q, s.ID, s.Quantity, s.Location).
		Scan(&s.ProductID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrStockNotFound
	}
	if err != nil {
		return writeErr("update stock", err)
	}
	return nil
}

func (r *StockRepository) SoftDeleteStock(ctx context.Context, id int64) error {
	const q = `
UPDATE stock SET deleted = true, updated_at = now()
WHERE id = $1 AND NOT deleted
  AND EXISTS (SELECT 1 FROM products p WHERE p.id = stock.product_id AND NOT p.deleted)`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStockNotFound
	}
	return nil
}
