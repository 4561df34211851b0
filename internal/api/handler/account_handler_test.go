package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api/middleware"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

// ----- Stubs -----

type stubAccountService struct {
	getFn    func(ctx context.Context, actor *domain.Claims, id int64) (*domain.AccountWithProfile, error)
	listFn   func(ctx context.Context, actor *domain.Claims, f ports.ListAccountsFilter) (*ports.Page[*domain.Account], error)
	deleteFn func(ctx context.Context, actor *domain.Claims, id int64) error
	pwFn     func(ctx context.Context, actor *domain.Claims, id int64, in ports.ChangePasswordInput) error
}

func (s *stubAccountService) CreateAccount(context.Context, *domain.Claims, ports.CreateAccountInput) (*domain.Account, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAccountService) GetAccount(ctx context.Context, actor *domain.Claims, id int64) (*domain.AccountWithProfile, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubAccountService) ListAccounts(ctx context.Context, actor *domain.Claims, f ports.ListAccountsFilter) (*ports.Page[*domain.Account], error) {
	return s.listFn(ctx, actor, f)
}

func (s *stubAccountService) UpdateAccount(context.Context, *domain.Claims, int64, ports.UpdateAccountInput) (*domain.Account, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAccountService) UpdateProfile(context.Context, *domain.Claims, int64, ports.ProfileInput) (*domain.Profile, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAccountService) ChangePassword(ctx context.Context, actor *domain.Claims, id int64, in ports.ChangePasswordInput) error {
	return s.pwFn(ctx, actor, id, in)
}

func (s *stubAccountService) DeleteAccount(ctx context.Context, actor *domain.Claims, id int64) error {
	return s.deleteFn(ctx, actor, id)
}

type staticVerifier struct{ claims *domain.Claims }

func (v staticVerifier) Verify(raw string) (*domain.Claims, error) {
	if raw != "good" {
		return nil, domain.ErrInvalidToken
	}
	return v.claims, nil
}

// serve routes req through Auth so handlers see real claims.
func serve(t *testing.T, claims *domain.Claims, method, path, target string, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := newTestEcho()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrValidation):
			code = http.StatusBadRequest
		case errors.Is(err, domain.ErrMissingToken), errors.Is(err, domain.ErrInvalidToken):
			code = http.StatusUnauthorized
		case errors.Is(err, domain.ErrForbidden):
			code = http.StatusForbidden
		case errors.Is(err, domain.ErrNotFound):
			code = http.StatusNotFound
		}
		_ = c.NoContent(code)
	}
	e.Add(method, path, h, middleware.Auth(staticVerifier{claims: claims}, zerolog.Nop()))

	req := jsonRequest(method, target, body)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// ----- Tests -----

func TestAccountHandler_Me(t *testing.T) {
	me := &domain.Claims{ID: 7, Login: "alice", Role: domain.RoleCustomer}
	handler := NewAccountHandler(&stubAccountService{
		getFn: func(_ context.Context, actor *domain.Claims, id int64) (*domain.AccountWithProfile, error) {
			if actor != me || id != 7 {
				t.Fatalf("unexpected args: %+v %d", actor, id)
			}
			return &domain.AccountWithProfile{Account: domain.Account{ID: 7, Login: "alice"}}, nil
		},
	})

	rec := serve(t, me, http.MethodGet, "/me", "/me", handler.Me, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFoundAndBadID(t *testing.T) {
	admin := &domain.Claims{ID: 1, Login: "root", Role: domain.RoleAdmin}
	handler := NewAccountHandler(&stubAccountService{
		getFn: func(context.Context, *domain.Claims, int64) (*domain.AccountWithProfile, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	if rec := serve(t, admin, http.MethodGet, "/accounts/:id", "/accounts/7", handler.Get, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := serve(t, admin, http.MethodGet, "/accounts/:id", "/accounts/abc", handler.Get, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_List(t *testing.T) {
	admin := &domain.Claims{ID: 1, Login: "root", Role: domain.RoleAdmin}
	handler := NewAccountHandler(&stubAccountService{
		listFn: func(_ context.Context, _ *domain.Claims, f ports.ListAccountsFilter) (*ports.Page[*domain.Account], error) {
			if f.Search != "ali" || f.Role != "customer" || f.Page != 2 || f.Limit != 5 {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return ports.NewPage([]*domain.Account{{ID: 7, Login: "alice"}}, 6, f.ListFilter), nil
		},
	})

	rec := serve(t, admin, http.MethodGet, "/accounts", "/accounts?search=ali&role=customer&page=2&limit=5", handler.List, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(6) || resp["total_pages"] != float64(2) {
		t.Fatalf("unexpected page: %+v", resp)
	}

	if rec := serve(t, admin, http.MethodGet, "/accounts", "/accounts?page=x", handler.List, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-integer page, got %d", rec.Code)
	}
}

func TestAccountHandler_Delete(t *testing.T) {
	admin := &domain.Claims{ID: 1, Login: "root", Role: domain.RoleAdmin}
	deleted := map[int64]bool{}
	handler := NewAccountHandler(&stubAccountService{
		deleteFn: func(_ context.Context, _ *domain.Claims, id int64) error {
			if deleted[id] {
				return domain.ErrAccountNotFound
			}
			deleted[id] = true
			return nil
		},
	})

	if rec := serve(t, admin, http.MethodDelete, "/accounts/:id", "/accounts/7", handler.Delete, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := serve(t, admin, http.MethodDelete, "/accounts/:id", "/accounts/7", handler.Delete, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestAccountHandler_ChangeMyPassword(t *testing.T) {
	me := &domain.Claims{ID: 7, Login: "alice", Role: domain.RoleCustomer}
	handler := NewAccountHandler(&stubAccountService{
		pwFn: func(_ context.Context, _ *domain.Claims, id int64, in ports.ChangePasswordInput) error {
			if id != 7 || in.Current != "wonderland" || in.New != "new-password" {
				t.Fatalf("unexpected args: %d %+v", id, in)
			}
			return nil
		},
	})

	rec := serve(t, me, http.MethodPut, "/me/password", "/me/password", handler.ChangeMyPassword,
		`{"current_password":"wonderland","new_password":"new-password"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = serve(t, me, http.MethodPut, "/me/password", "/me/password", handler.ChangeMyPassword, `{"new_password":"short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", rec.Code)
	}
}

func TestAccountHandler_WithoutClaims(t *testing.T) {
	handler := NewAccountHandler(&stubAccountService{})
	e := newTestEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/me", nil), httptest.NewRecorder())

	if err := handler.Me(c); err != domain.ErrMissingToken {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}
