package ports

import (
	"context"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

// ListAccountsFilter narrows FindVisibleAccounts.
type ListAccountsFilter struct {
	ListFilter
	Role string // optional
}

// AccountRepository persists accounts and their profiles. Every method only
// sees rows with deleted = false.
type AccountRepository interface {
	FindVisibleAccountByLogin(ctx context.Context, login string) (*domain.Account, error)
	FindVisibleAccount(ctx context.Context, id int64) (*domain.Account, error)
	FindAccountWithProfile(ctx context.Context, id int64) (*domain.AccountWithProfile, error)
	// FindVisibleAccounts returns one page of accounts and the total match count.
	FindVisibleAccounts(ctx context.Context, filter ListAccountsFilter) ([]*domain.Account, int64, error)

	// CreateAccount inserts a and fills its ID and timestamps.
	CreateAccount(ctx context.Context, a *domain.Account) error
	// CreateCustomer inserts the account and its profile in one transaction.
	CreateCustomer(ctx context.Context, a *domain.Account, p *domain.Profile) error

	UpdateAccount(ctx context.Context, a *domain.Account) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	// SaveProfile inserts or replaces the profile of a visible account.
	SaveProfile(ctx context.Context, p *domain.Profile) error

	// SoftDeleteAccount marks the account and its profile deleted.
	SoftDeleteAccount(ctx context.Context, id int64) error
}
