package ports

import (
	"context"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

// CreateAccountInput is used by administrators to create accounts of any role.
type CreateAccountInput struct {
	Name     string
	Mail     string
	Login    string
	Password string
	Role     string
}

// UpdateAccountInput replaces the mutable identity fields of an account.
type UpdateAccountInput struct {
	Name  string
	Mail  string
	Login string
}

// ChangePasswordInput carries a password change. Current is required when
// the caller changes their own password.
type ChangePasswordInput struct {
	Current string
	New     string
}

// AccountService exposes account management. The actor is the authenticated
// caller; ownership and role rules are enforced against it.
type AccountService interface {
	CreateAccount(ctx context.Context, actor *domain.Claims, in CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, actor *domain.Claims, id int64) (*domain.AccountWithProfile, error)
	ListAccounts(ctx context.Context, actor *domain.Claims, filter ListAccountsFilter) (*Page[*domain.Account], error)
	UpdateAccount(ctx context.Context, actor *domain.Claims, id int64, in UpdateAccountInput) (*domain.Account, error)
	UpdateProfile(ctx context.Context, actor *domain.Claims, id int64, in ProfileInput) (*domain.Profile, error)
	ChangePassword(ctx context.Context, actor *domain.Claims, id int64, in ChangePasswordInput) error
	DeleteAccount(ctx context.Context, actor *domain.Claims, id int64) error
}
