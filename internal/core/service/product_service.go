package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

type ProductService struct {
	repo   ports.ProductRepository
	index  ports.ProductIndex
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

// NewProductService returns a ProductService. index may be nil, in which case
// search runs against the repository. index and audit are only treated as
// absent when the interface itself is nil, not when it wraps a nil pointer.
func NewProductService(repo ports.ProductRepository, index ports.ProductIndex, audit ports.AuditRecorder, logger zerolog.Logger) *ProductService {
	if audit == nil {
		audit = nopAudit{}
	}
	return &ProductService{repo: repo, index: index, audit: audit, logger: logger}
}

func (s *ProductService) CreateProduct(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	p, err := newProduct(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.reindex(ctx, p)

	s.logger.Info().Int64("product_id", p.ID).Msg("product created")
	return p, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.FindVisibleProduct(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context, filter ports.ListProductsFilter) (*ports.Page[*domain.Product], error) {
	filter.ListFilter = filter.ListFilter.Normalize()
	items, total, err := s.repo.FindVisibleProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ports.NewPage(items, total, filter.ListFilter), nil
}

// SearchProducts runs a full-text search. Index hits are re-read from the
// repository so deleted products never surface even when the index is stale.
func (s *ProductService) SearchProducts(ctx context.Context, query string, filter ports.ListFilter) (*ports.Page[*domain.Product], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.Validationf("q is required")
	}
	filter = filter.Normalize()

	if s.index != nil {
		ids, total, err := s.index.SearchProducts(ctx, query, filter)
		if err == nil {
			items, err := s.repo.FindVisibleProductsByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			total -= int64(len(ids) - len(items))
			return ports.NewPage(items, total, filter), nil
		}
		s.logger.Warn().Err(err).Str("query", query).Msg("product index search failed, falling back to database")
	}

	filter.Search = query
	return s.ListProducts(ctx, ports.ListProductsFilter{ListFilter: filter})
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int64, in ports.ProductInput) (*domain.Product, error) {
	p, err := newProduct(in)
	if err != nil {
		return nil, err
	}
	p.ID = id

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.reindex(ctx, p)
	return p, nil
}

// DeleteProduct soft-deletes a product; its stock becomes invisible with it.
func (s *ProductService) DeleteProduct(ctx context.Context, actor *domain.Claims, id int64) error {
	if err := s.repo.SoftDeleteProduct(ctx, id); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.RemoveProduct(ctx, id); err != nil {
			s.logger.Warn().Err(err).Int64("product_id", id).Msg("failed to remove product from index")
		}
	}

	entry := domain.AuditEntry{
		Action:     domain.AuditProductDeleted,
		TargetType: "product",
		TargetID:   id,
		At:         time.Now().UTC(),
	}
	if actor != nil {
		entry.ActorID = actor.ID
	}
	s.audit.Record(entry)
	return nil
}

func (s *ProductService) reindex(ctx context.Context, p *domain.Product) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexProduct(ctx, p); err != nil {
		s.logger.Warn().Err(err).Int64("product_id", p.ID).Msg("failed to index product")
	}
}

func newProduct(in ports.ProductInput) (*domain.Product, error) {
	p := &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		PriceCents:  in.PriceCents,
	}
	if p.Name == "" {
		return nil, domain.Validationf("name is required")
	}
	if p.PriceCents < 0 {
		return nil, domain.Validationf("price_cents must not be negative")
	}
	return p, nil
}
