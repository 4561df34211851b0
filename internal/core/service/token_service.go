package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

const DefaultTokenTTL = 24 * time.Hour

// tokenClaims is the JWT payload: the identity claims plus exp/iat.
type tokenClaims struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens with one secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs claims into a token that expires after the configured TTL.
func (s *TokenService) Issue(c domain.Claims) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		ID:    c.ID,
		Login: c.Login,
		Role:  c.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature, algorithm and expiry. The returned error always
// matches domain.ErrInvalidToken; the wrapped cause is for logs only.
func (s *TokenService) Verify(raw string) (*domain.Claims, error) {
	var tc tokenClaims
	_, err := jwt.ParseWithClaims(raw, &tc, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if tc.ID <= 0 || tc.Login == "" || !domain.ValidRole(tc.Role) {
		return nil, fmt.Errorf("%w: incomplete claims", domain.ErrInvalidToken)
	}

	return &domain.Claims{ID: tc.ID, Login: tc.Login, Role: tc.Role}, nil
}
