package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api/metrics"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api/middleware"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.service.CreateProduct(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        search    query     string  false  "Partial match on name or description"
// @Param        category  query     string  false  "Exact category"
// @Param        sort      query     string  false  "id, name, price_cents, created_at; prefix - for descending"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  pageResponse[domain.Product]
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	f, err := listFilter(c)
	if err != nil {
		return err
	}
	page, err := h.service.ListProducts(c.Request().Context(), ports.ListProductsFilter{
		ListFilter: f,
		Category:   c.QueryParam("category"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// Search handles GET /products/search.
//
// @Summary      Full-text product search
// @Tags         products
// @Produce      json
// @Param        q      query     string  true   "Search terms"
// @Param        page   query     int     false  "Page number (1-based)"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  pageResponse[domain.Product]
// @Failure      400    {object}  errorResponse
// @Router       /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	f, err := listFilter(c)
	if err != nil {
		return err
	}
	page, err := h.service.SearchProducts(c.Request().Context(), c.QueryParam("q"), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// Get handles GET /products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.service.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product ID"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.service.UpdateProduct(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id   path  int  true  "Product ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteProduct(c.Request().Context(), middleware.ClaimsFrom(c), id); err != nil {
		return err
	}
	metrics.SoftDeletesTotal.WithLabelValues("product").Inc()
	return c.NoContent(http.StatusNoContent)
}
