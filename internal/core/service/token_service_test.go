package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("s1", time.Hour)
	in := domain.Claims{ID: 42, Login: "alice", Role: domain.RoleAdmin}

	token, exp, err := svc.Issue(in)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if exp.Sub(time.Now()) > time.Hour || exp.Before(time.Now()) {
		t.Fatalf("unexpected expiry %v", exp)
	}

	out, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if *out != in {
		t.Fatalf("got %+v, want %+v", *out, in)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService("s1", 0)
	if svc.ttl != 24*time.Hour {
		t.Fatalf("expected 24h default, got %v", svc.ttl)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, _, err := NewTokenService("s1", time.Hour).Issue(domain.Claims{ID: 1, Login: "a", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewTokenService("s2", time.Hour).Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("s1", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.Issue(domain.Claims{ID: 1, Login: "a", Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = time.Now
	_, err = svc.Verify(token)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected the cause to be kept for logging, got %v", err)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.MapClaims{"id": 1, "login": "a", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s1"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	svc := NewTokenService("s1", time.Hour)
	for _, tok := range []string{hs512, none} {
		if _, err := svc.Verify(tok); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	}
}

func TestTokenService_RejectsMalformedAndIncomplete(t *testing.T) {
	svc := NewTokenService("s1", time.Hour)

	if _, err := svc.Verify("not.a.token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed, got %v", err)
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 1, "login": "a", "role": "admin"}).SignedString([]byte("s1"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Verify(noExp); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken without exp, got %v", err)
	}

	badRole, _, err := svc.Issue(domain.Claims{ID: 1, Login: "a", Role: "root"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(badRole); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown role, got %v", err)
	}

	tampered := badRole[:len(badRole)-2] + "xx"
	if strings.HasSuffix(badRole, "xx") {
		tampered = badRole[:len(badRole)-2] + "yy"
	}
	if _, err := svc.Verify(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
}
