package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

type StockService struct {
	repo     ports.StockRepository
	products ports.ProductRepository
	audit    ports.AuditRecorder
	logger   zerolog.Logger
}

// NewStockService returns a StockService. Pass a nil interface, not a nil
// pointer, to run without an audit recorder.
func NewStockService(repo ports.StockRepository, products ports.ProductRepository, audit ports.AuditRecorder, logger zerolog.Logger) *StockService {
	if audit == nil {
		audit = nopAudit{}
	}
	return &StockService{repo: repo, products: products, audit: audit, logger: logger}
}

func (s *StockService) CreateStock(ctx context.Context, in ports.StockInput) (*domain.Stock, error) {
	st, err := newStock(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateStock(ctx, st); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("stock_id", st.ID).Int64("product_id", st.ProductID).Msg("stock created")
	return st, nil
}

func (s *StockService) GetStock(ctx context.Context, id int64) (*domain.Stock, error) {
	return s.repo.FindVisibleStock(ctx, id)
}

func (s *StockService) ListStock(ctx context.Context, filter ports.ListFilter) (*ports.Page[*domain.Stock], error) {
	filter = filter.Normalize()
	items, total, err := s.repo.FindVisibleStocks(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ports.NewPage(items, total, filter), nil
}

// ListProductStock returns the visible stock of a visible product. A deleted
// product reports domain.ErrProductNotFound rather than an empty list.
func (s *StockService) ListProductStock(ctx context.Context, productID int64) ([]*domain.Stock, error) {
	if _, err := s.products.FindVisibleProduct(ctx, productID); err != nil {
		return nil, err
	}
	items, err := s.repo.FindVisibleStocksByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Stock{}
	}
	return items, nil
}

func (s *StockService) UpdateStock(ctx context.Context, id int64, in ports.StockUpdateInput) (*domain.Stock, error) {
	if in.Quantity < 0 {
		return nil, domain.Validationf("quantity must not be negative")
	}
	st := &domain.Stock{ID: id, Quantity: in.Quantity, Location: strings.TrimSpace(in.Location)}

	if err := s.repo.UpdateStock(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StockService) DeleteStock(ctx context.Context, actor *domain.Claims, id int64) error {
	if err := s.repo.SoftDeleteStock(ctx, id); err != nil {
		return err
	}

	entry := domain.AuditEntry{
		Action:     domain.AuditStockDeleted,
		TargetType: "stock",
		TargetID:   id,
		At:         time.Now().UTC(),
	}
	if actor != nil {
		entry.ActorID = actor.ID
	}
	s.audit.Record(entry)
	return nil
}

func newStock(in ports.StockInput) (*domain.Stock, error) {
	if in.ProductID <= 0 {
		return nil, domain.Validationf("product_id is required")
	}
	if in.Quantity < 0 {
		return nil, domain.Validationf("quantity must not be negative")
	}
	return &domain.Stock{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Location:  strings.TrimSpace(in.Location),
	}, nil
}
