package ports

import (
	"context"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	PriceCents  int64
}

// StockInput carries the fields of a new stock record.
type StockInput struct {
	ProductID int64
	Quantity  int
	Location  string
}

// StockUpdateInput carries the mutable stock fields. A record never moves to
// another product.
type StockUpdateInput struct {
	Quantity int
	Location string
}

type ProductService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ListProductsFilter) (*Page[*domain.Product], error)
	SearchProducts(ctx context.Context, query string, filter ListFilter) (*Page[*domain.Product], error)
	UpdateProduct(ctx context.Context, id int64, in ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actor *domain.Claims, id int64) error
}

type StockService interface {
	CreateStock(ctx context.Context, in StockInput) (*domain.Stock, error)
	GetStock(ctx context.Context, id int64) (*domain.Stock, error)
	ListStock(ctx context.Context, filter ListFilter) (*Page[*domain.Stock], error)
	ListProductStock(ctx context.Context, productID int64) ([]*domain.Stock, error)
	UpdateStock(ctx context.Context, id int64, in StockUpdateInput) (*domain.Stock, error)
	DeleteStock(ctx context.Context, actor *domain.Claims, id int64) error
}
