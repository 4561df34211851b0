package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api/metrics"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

// RequireRole lets the request through only when the authenticated claims
// carry role. It must run after Auth.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := domain.Authorize(ClaimsFrom(c), role); err != nil {
				metrics.AuthorizationDeniedTotal.WithLabelValues(role).Inc()
				return err
			}
			return next(c)
		}
	}
}
