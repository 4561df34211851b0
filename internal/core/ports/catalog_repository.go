package ports

import (
	"context"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

// ListProductsFilter narrows FindVisibleProducts.
type ListProductsFilter struct {
	ListFilter
	Category string // optional
}

// ProductRepository persists catalog items. Reads never return deleted rows.
type ProductRepository interface {
	CreateProduct(ctx context.Context, p *domain.Product) error
	FindVisibleProduct(ctx context.Context, id int64) (*domain.Product, error)
	FindVisibleProducts(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	// FindVisibleProductsByIDs returns the visible subset of ids, preserving order.
	FindVisibleProductsByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	SoftDeleteProduct(ctx context.Context, id int64) error
}

// StockRepository persists inventory records. A record is visible only while
// neither it nor its product is deleted.
type StockRepository interface {
	// CreateStock fails with domain.ErrProductNotFound when the product is not visible.
	CreateStock(ctx context.Context, s *domain.Stock) error
	FindVisibleStock(ctx context.Context, id int64) (*domain.Stock, error)
	FindVisibleStocks(ctx context.Context, filter ListFilter) ([]*domain.Stock, int64, error)
	FindVisibleStocksByProduct(ctx context.Context, productID int64) ([]*domain.Stock, error)
	// UpdateStock writes quantity and location and fills ProductID and timestamps.
	UpdateStock(ctx context.Context, s *domain.Stock) error
	SoftDeleteStock(ctx context.Context, id int64) error
}

// ProductIndex is a full-text index of visible products. It is advisory:
// hits are always re-read through ProductRepository.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p *domain.Product) error
	RemoveProduct(ctx context.Context, id int64) error
	SearchProducts(ctx context.Context, query string, filter ListFilter) (ids []int64, total int64, err error)
}
