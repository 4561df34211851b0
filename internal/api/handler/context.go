package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api/middleware"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

// ctxClaims returns the claims injected by the Auth middleware. Reaching a
// handler without them means the route was registered without Auth.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return nil, domain.ErrMissingToken
	}
	return claims, nil
}

// bindAndValidate decodes the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Validationf("invalid payload")
	}
	return c.Validate(req)
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("%s must be a positive integer", name)
	}
	return id, nil
}

// listFilter reads the shared search/sort/page/limit query parameters.
func listFilter(c echo.Context) (ports.ListFilter, error) {
	var f ports.ListFilter
	err := echo.QueryParamsBinder(c).
		String("search", &f.Search).
		String("sort", &f.Sort).
		Int("page", &f.Page).
		Int("limit", &f.Limit).
		BindError()
	if err != nil {
		return f, domain.Validationf("page and limit must be integers")
	}
	if f.Page > ports.MaxPage {
		return f, domain.Validationf("page must not exceed %d", ports.MaxPage)
	}
	return f, nil
}
