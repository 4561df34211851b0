package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rec.Body.String())
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.Validationf("name is required"), http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrMissingToken, http.StatusUnauthorized},
		{fmt.Errorf("%w: token is expired", domain.ErrInvalidToken), http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrStockNotFound, http.StatusNotFound},
		{domain.ErrLoginTaken, http.StatusConflict},
		{domain.ErrRateLimited, http.StatusTooManyRequests},
		{echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if code, _ := render(t, tc.err); code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
	}
}

func TestHTTPErrorHandler_Messages(t *testing.T) {
	if _, msg := render(t, domain.ErrMissingToken); msg != "unauthenticated" {
		t.Fatalf("missing token message: %q", msg)
	}
	if _, msg := render(t, fmt.Errorf("%w: signature is invalid", domain.ErrInvalidToken)); msg != "unauthenticated" {
		t.Fatalf("invalid token message should not leak the cause: %q", msg)
	}
	if _, msg := render(t, domain.ErrLoginTaken); msg != "login already in use" {
		t.Fatalf("conflict message: %q", msg)
	}
	if _, msg := render(t, errors.New("pq: password authentication failed")); msg != "internal server error" {
		t.Fatalf("internal error leaked: %q", msg)
	}
}
