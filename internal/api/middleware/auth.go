package middleware

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api/metrics"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

const (
	bearerPrefix = "Bearer "
	claimsKey    = "auth.claims"
)

// Auth verifies the bearer token and injects the claims into the context.
// A missing header, a header without the exact "Bearer " prefix, or a token
// padded with extra whitespace yields domain.ErrMissingToken; any
// verification failure yields domain.ErrInvalidToken.
func Auth(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || raw == "" || raw != strings.TrimSpace(raw) {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.ErrMissingToken
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				reason := rejectionReason(err)
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				log.Debug().Err(err).Str("reason", reason).Str("path", c.Path()).Msg("token rejected")
				if !errors.Is(err, domain.ErrInvalidToken) {
					err = domain.ErrInvalidToken
				}
				return err
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth, or nil when the request was
// not authenticated.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(claimsKey).(*domain.Claims)
	return claims
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return "signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}
