package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

const productColumns = `id, name, description, category, price_cents, created_at, updated_at`

var productSort = map[string]string{
	"id":          "id",
	"name":        "name",
	"price_cents": "price_cents",
	"created_at":  "created_at",
}

// ProductRepository implements ports.ProductRepository.
type ProductRepository struct{ db *DB }

func NewProductRepository(db *DB) *ProductRepository { return &ProductRepository{db: db} }

var _ ports.ProductRepository = (*ProductRepository)(nil)

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	const q = `
INSERT INTO products (name, description, category, price_cents)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`
	err := r.db.Pool.QueryRow(ctx, q, p.Name, p.Description, p.Category, p.PriceCents).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return writeErr("create product", err)
	}
	return nil
}

func (r *ProductRepository) FindVisibleProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products WHERE id = $1 AND NOT deleted`
	p, err := scanProduct(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) FindVisibleProducts(ctx context.Context, f ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	const where = `
FROM products
WHERE NOT deleted
  AND ($1 = '' OR category = $1)
  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')`

	var total int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT count(*)`+where, f.Category, f.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	if total == 0 {
		return []*domain.Product{}, 0, nil
	}

	q := `SELECT ` + productColumns + where + "\n" + orderBy(f.Sort, productSort, "id") + `
LIMIT $3 OFFSET $4`
	rows, err := r.db.Pool.Query(ctx, q, f.Category, f.Search, f.Limit, f.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Product, 0, f.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list products: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// FindVisibleProductsByIDs returns the visible products among ids in the
// order the ids were given.
func (r *ProductRepository) FindVisibleProductsByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}

	const q = `
SELECT ` + productColumns + `
FROM products WHERE id = ANY($1) AND NOT deleted`
	rows, err := r.db.Pool.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*domain.Product, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("find products by ids: %w", err)
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*domain.Product, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
			delete(byID, id)
		}
	}
	return out, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	const q = `
UPDATE products SET name = $2, description = $3, category = $4, price_cents = $5, updated_at = now()
WHERE id = $1 AND NOT deleted
RETURNING created_at, updated_at`
	err := r.db.Pool.QueryRow(ctx, q, p.ID, p.Name, p.Description, p.Category, p.PriceCents).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrProductNotFound
	}
	if err != nil {
		return writeErr("update product", err)
	}
	return nil
}

// SoftDeleteProduct marks a product deleted. Its stock rows stay untouched but
// stop being visible through the product join.
func (r *ProductRepository) SoftDeleteProduct(ctx context.Context, id int64) error {
	const q = `UPDATE products SET deleted = true, updated_at = now() WHERE id = $1 AND NOT deleted`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
