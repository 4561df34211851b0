package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

type fixedVerifier map[string]*domain.Claims

func (v fixedVerifier) Verify(token string) (*domain.Claims, error) {
	if c, ok := v[token]; ok {
		return c, nil
	}
	return nil, domain.ErrInvalidToken
}

// Service stubs are nil interfaces: these routes must be rejected before a
// handler runs.
func TestRouter_AccessControl(t *testing.T) {
	e := NewRouter(Dependencies{
		Tokens: fixedVerifier{
			"customer-token": {ID: 7, Login: "alice", Role: domain.RoleCustomer},
		},
		Logger: zerolog.Nop(),
	})

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"liveness is public", http.MethodGet, "/health", "", http.StatusOK},
		{"readiness with no checks", http.MethodGet, "/health/ready", "", http.StatusOK},
		{"metrics are public", http.MethodGet, "/metrics", "", http.StatusOK},
		{"me requires a token", http.MethodGet, "/me", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/me", "forged", http.StatusUnauthorized},
		{"customer cannot list accounts", http.MethodGet, "/accounts", "customer-token", http.StatusForbidden},
		{"customer cannot delete accounts", http.MethodDelete, "/accounts/8", "customer-token", http.StatusForbidden},
		{"customer cannot reset passwords", http.MethodPut, "/accounts/8/password", "customer-token", http.StatusForbidden},
		{"customer cannot read audit", http.MethodGet, "/admin/audit", "customer-token", http.StatusForbidden},
		{"product writes need a token", http.MethodPost, "/products", "", http.StatusUnauthorized},
		{"customer cannot create products", http.MethodPost, "/products", "customer-token", http.StatusForbidden},
		{"stock reads need a token", http.MethodGet, "/stock", "", http.StatusUnauthorized},
		{"customer cannot delete stock", http.MethodDelete, "/stock/3", "customer-token", http.StatusForbidden},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("%s %s = %d, want %d (body %s)", tt.method, tt.path, rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}
