package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api/metrics"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api/middleware"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

type StockHandler struct {
	service ports.StockService
}

func NewStockHandler(service ports.StockService) *StockHandler {
	return &StockHandler{service: service}
}

// Create handles POST /stock.
//
// @Summary      Create a stock record
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      stockRequest  true  "Stock details"
// @Success      201   {object}  domain.Stock
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /stock [post]
func (h *StockHandler) Create(c echo.Context) error {
	var req stockRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	st, err := h.service.CreateStock(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, st)
}

// List handles GET /stock.
//
// @Summary      List stock
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Partial match on location"
// @Param        sort    query     string  false  "id, quantity, location, created_at; prefix - for descending"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  pageResponse[domain.Stock]
// @Router       /stock [get]
func (h *StockHandler) List(c echo.Context) error {
	f, err := listFilter(c)
	if err != nil {
		return err
	}
	page, err := h.service.ListStock(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// ListByProduct handles GET /products/:id/stock.
//
// @Summary      List stock of a product
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product ID"
// @Success      200  {array}   domain.Stock
// @Failure      404  {object}  errorResponse
// @Router       /products/{id}/stock [get]
func (h *StockHandler) ListByProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.service.ListProductStock(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /stock/:id.
//
// @Summary      Get a stock record
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Stock ID"
// @Success      200  {object}  domain.Stock
// @Failure      404  {object}  errorResponse
// @Router       /stock/{id} [get]
func (h *StockHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	st, err := h.service.GetStock(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// Update handles PUT /stock/:id.
//
// @Summary      Update a stock record
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Stock ID"
// @Param        body  body      updateStockRequest  true  "Quantity and location"
// @Success      200   {object}  domain.Stock
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /stock/{id} [put]
func (h *StockHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateStockRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	st, err := h.service.UpdateStock(c.Request().Context(), id, ports.StockUpdateInput{
		Quantity: req.Quantity,
		Location: req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// Delete handles DELETE /stock/:id.
//
// @Summary      Delete a stock record
// @Tags         stock
// @Security     BearerAuth
// @Param        id   path  int  true  "Stock ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /stock/{id} [delete]
func (h *StockHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteStock(c.Request().Context(), middleware.ClaimsFrom(c), id); err != nil {
		return err
	}
	metrics.SoftDeletesTotal.WithLabelValues("stock").Inc()
	return c.NoContent(http.StatusNoContent)
}
