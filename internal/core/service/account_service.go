package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

type AccountService struct {
	repo   ports.AccountRepository
	audit  ports.AuditRecorder
	cost   int
	logger zerolog.Logger
}

// NewAccountService returns an AccountService. A nil audit interface value
// disables auditing; a typed nil pointer is not detected and will panic on
// the first audited change.
func NewAccountService(repo ports.AccountRepository, audit ports.AuditRecorder, bcryptCost int, logger zerolog.Logger) *AccountService {
	if audit == nil {
		audit = nopAudit{}
	}
	return &AccountService{repo: repo, audit: audit, cost: normalizeCost(bcryptCost), logger: logger}
}

// CreateAccount is the administrative create; it does not attach a profile.
func (s *AccountService) CreateAccount(ctx context.Context, actor *domain.Claims, in ports.CreateAccountInput) (*domain.Account, error) {
	if err := domain.Authorize(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	account, err := newAccount(in.Name, in.Mail, in.Login, in.Role)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}
	account.PasswordHash, err = hashPassword(in.Password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		Action:     domain.AuditAccountCreated,
		ActorID:    actor.ID,
		TargetType: "account",
		TargetID:   account.ID,
		Meta:       map[string]string{"role": account.Role},
		At:         time.Now().UTC(),
	})
	s.logger.Info().Int64("account_id", account.ID).Int64("actor_id", actor.ID).Msg("account created")
	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, actor *domain.Claims, id int64) (*domain.AccountWithProfile, error) {
	if err := domain.AuthorizeSelf(actor, id); err != nil {
		return nil, err
	}
	return s.repo.FindAccountWithProfile(ctx, id)
}

func (s *AccountService) ListAccounts(ctx context.Context, actor *domain.Claims, filter ports.ListAccountsFilter) (*ports.Page[*domain.Account], error) {
	if err := domain.Authorize(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if filter.Role != "" && !domain.ValidRole(filter.Role) {
		return nil, domain.Validationf("role must be one of: %s %s", domain.RoleAdmin, domain.RoleCustomer)
	}

	filter.ListFilter = filter.ListFilter.Normalize()
	items, total, err := s.repo.FindVisibleAccounts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ports.NewPage(items, total, filter.ListFilter), nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, actor *domain.Claims, id int64, in ports.UpdateAccountInput) (*domain.Account, error) {
	if err := domain.AuthorizeSelf(actor, id); err != nil {
		return nil, err
	}

	current, err := s.repo.FindVisibleAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := newAccount(in.Name, in.Mail, in.Login, current.Role)
	if err != nil {
		return nil, err
	}
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt

	if err := s.repo.UpdateAccount(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateProfile creates or replaces the profile of a customer account.
func (s *AccountService) UpdateProfile(ctx context.Context, actor *domain.Claims, id int64, in ports.ProfileInput) (*domain.Profile, error) {
	if err := domain.AuthorizeSelf(actor, id); err != nil {
		return nil, err
	}

	account, err := s.repo.FindVisibleAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.Role != domain.RoleCustomer {
		return nil, domain.Validationf("only customer accounts have a profile")
	}

	profile, err := newProfile(in)
	if err != nil {
		return nil, err
	}
	profile.AccountID = id

	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ChangePassword lets an account holder change their own password (current
// password required) and lets an admin reset anyone else's.
func (s *AccountService) ChangePassword(ctx context.Context, actor *domain.Claims, id int64, in ports.ChangePasswordInput) error {
	if err := domain.AuthorizeSelf(actor, id); err != nil {
		return err
	}
	if err := checkPassword(in.New); err != nil {
		return err
	}

	account, err := s.repo.FindVisibleAccount(ctx, id)
	if err != nil {
		return err
	}

	if actor.ID == id {
		if in.Current == "" {
			return domain.Validationf("current password is required")
		}
		if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Current)) != nil {
			return domain.Validationf("current password is incorrect")
		}
	}

	hash, err := hashPassword(in.New, s.cost)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEntry{
		Action:     domain.AuditPasswordChanged,
		ActorID:    actor.ID,
		TargetType: "account",
		TargetID:   id,
		At:         time.Now().UTC(),
	})
	return nil
}

// DeleteAccount soft-deletes an account. Deleting an already deleted account
// reports domain.ErrAccountNotFound.
func (s *AccountService) DeleteAccount(ctx context.Context, actor *domain.Claims, id int64) error {
	if err := domain.Authorize(actor, domain.RoleAdmin); err != nil {
		return err
	}
	if actor.ID == id {
		return domain.Validationf("administrators cannot delete their own account")
	}

	if err := s.repo.SoftDeleteAccount(ctx, id); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEntry{
		Action:     domain.AuditAccountDeleted,
		ActorID:    actor.ID,
		TargetType: "account",
		TargetID:   id,
		At:         time.Now().UTC(),
	})
	s.logger.Info().Int64("account_id", id).Int64("actor_id", actor.ID).Msg("account deleted")
	return nil
}
