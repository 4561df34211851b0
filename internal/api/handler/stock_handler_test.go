package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

type stubStockService struct {
	ports.StockService
	updateFn    func(ctx context.Context, id int64, in ports.StockUpdateInput) (*domain.Stock, error)
	byProductFn func(ctx context.Context, productID int64) ([]*domain.Stock, error)
}

func (s *stubStockService) UpdateStock(ctx context.Context, id int64, in ports.StockUpdateInput) (*domain.Stock, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubStockService) ListProductStock(ctx context.Context, productID int64) ([]*domain.Stock, error) {
	return s.byProductFn(ctx, productID)
}

func TestStockHandler_Update(t *testing.T) {
	handler := NewStockHandler(&stubStockService{
		updateFn: func(_ context.Context, id int64, in ports.StockUpdateInput) (*domain.Stock, error) {
			if id != 11 || in.Quantity != 4 || in.Location != "B2" {
				t.Fatalf("unexpected args: %d %+v", id, in)
			}
			return &domain.Stock{ID: 11, ProductID: 3, Quantity: 4, Location: "B2"}, nil
		},
	})

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/stock/11", `{"quantity":4,"location":"B2"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("11")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestStockHandler_Update_NegativeQuantity(t *testing.T) {
	handler := NewStockHandler(&stubStockService{})

	e := newTestEcho()
	c := e.NewContext(jsonRequest(http.MethodPut, "/stock/11", `{"quantity":-1}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("11")

	if err := handler.Update(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestStockHandler_ListByProduct_DeletedProduct(t *testing.T) {
	handler := NewStockHandler(&stubStockService{
		byProductFn: func(context.Context, int64) ([]*domain.Stock, error) {
			return nil, domain.ErrProductNotFound
		},
	})

	e := newTestEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/products/3/stock", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.ListByProduct(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStockHandler_BadID(t *testing.T) {
	handler := NewStockHandler(&stubStockService{})

	e := newTestEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/stock/abc", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.Get(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
