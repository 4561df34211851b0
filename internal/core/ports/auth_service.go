package ports

import (
	"context"
	"time"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

// LoginInput is what a client submits to authenticate.
type LoginInput struct {
	Login    string
	Password string
	IP       string // used for throttling only
}

// AuthResult is the outcome of a successful authentication.
type AuthResult struct {
	Account   *domain.Account
	Token     string
	ExpiresAt time.Time
}

// ProfileInput carries the customer profile fields.
type ProfileInput struct {
	Document   string
	Phone      string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	ZipCode    string
}

// RegisterCustomerInput carries a self-service customer sign-up.
type RegisterCustomerInput struct {
	Name     string
	Mail     string
	Login    string
	Password string
	Profile  ProfileInput
}

type AuthService interface {
	Authenticate(ctx context.Context, in LoginInput) (*AuthResult, error)
	RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (*domain.AccountWithProfile, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(claims domain.Claims) (token string, expiresAt time.Time, err error)
}

// TokenVerifier checks a session token and returns its claims. Every failure
// is reported as domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// LoginLimiter throttles repeated failed logins per (login, ip).
type LoginLimiter interface {
	Allow(ctx context.Context, login, ip string) (bool, time.Duration, error)
	Failure(ctx context.Context, login, ip string) error
	Success(ctx context.Context, login, ip string) error
}
