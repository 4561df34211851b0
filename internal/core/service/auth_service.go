package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

// AuthService implements credential verification and customer sign-up.
type AuthService struct {
	accounts  ports.AccountRepository
	tokens    ports.TokenIssuer
	limiter   ports.LoginLimiter
	audit     ports.AuditRecorder
	cost      int
	dummyHash []byte
	logger    zerolog.Logger
}

// NewAuthService wires the verifier. limiter and audit may be nil interface
// values; a typed nil pointer wrapped in either interface is not treated as
// absent.
func NewAuthService(
	accounts ports.AccountRepository,
	tokens ports.TokenIssuer,
	limiter ports.LoginLimiter,
	audit ports.AuditRecorder,
	bcryptCost int,
	logger zerolog.Logger,
) *AuthService {
	if limiter == nil {
		limiter = nopLimiter{}
	}
	if audit == nil {
		audit = nopAudit{}
	}
	cost := normalizeCost(bcryptCost)

	// Compared against on unknown logins so both failure paths cost one bcrypt run.
	dummy, err := bcrypt.GenerateFromPassword([]byte("unknown-login-placeholder"), cost)
	if err != nil {
		panic(fmt.Sprintf("auth service: dummy hash: %v", err))
	}

	return &AuthService{
		accounts:  accounts,
		tokens:    tokens,
		limiter:   limiter,
		audit:     audit,
		cost:      cost,
		dummyHash: dummy,
		logger:    logger,
	}
}

// Authenticate verifies a login/password pair against visible accounts and
// issues a session token. Unknown login and wrong password return the same
// domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	login := strings.TrimSpace(in.Login)
	if login == "" || in.Password == "" {
		return nil, domain.Validationf("login and password are required")
	}

	allowed, retryAfter, err := s.limiter.Allow(ctx, login, in.IP)
	if err != nil {
		s.logger.Warn().Err(err).Str("login", login).Msg("login limiter unavailable, allowing attempt")
	} else if !allowed {
		s.audit.Record(domain.AuditEntry{
			Action: domain.AuditLoginThrottled,
			Login:  login,
			Meta:   map[string]string{"retry_after": retryAfter.String()},
			At:     time.Now().UTC(),
		})
		return nil, domain.ErrRateLimited
	}

	account, err := s.accounts.FindVisibleAccountByLogin(ctx, login)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
		return nil, s.failed(ctx, login, in.IP)
	case err != nil:
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)) != nil {
		return nil, s.failed(ctx, login, in.IP)
	}

	if err := s.limiter.Success(ctx, login, in.IP); err != nil {
		s.logger.Warn().Err(err).Str("login", login).Msg("failed to reset login limiter")
	}

	token, expiresAt, err := s.tokens.Issue(domain.ClaimsFor(account))
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	s.audit.Record(domain.AuditEntry{
		Action:     domain.AuditLoginSucceeded,
		ActorID:    account.ID,
		Login:      account.Login,
		TargetType: "account",
		TargetID:   account.ID,
		At:         time.Now().UTC(),
	})
	s.logger.Info().Int64("account_id", account.ID).Str("role", account.Role).Msg("login succeeded")

	return &ports.AuthResult{Account: account, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) failed(ctx context.Context, login, ip string) error {
	if err := s.limiter.Failure(ctx, login, ip); err != nil {
		s.logger.Warn().Err(err).Str("login", login).Msg("failed to record login failure")
	}
	s.audit.Record(domain.AuditEntry{
		Action: domain.AuditLoginFailed,
		Login:  login,
		At:     time.Now().UTC(),
	})
	return domain.ErrInvalidCredentials
}

// RegisterCustomer creates a customer account and its profile atomically.
func (s *AuthService) RegisterCustomer(ctx context.Context, in ports.RegisterCustomerInput) (*domain.AccountWithProfile, error) {
	account, err := newAccount(in.Name, in.Mail, in.Login, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	profile, err := newProfile(in.Profile)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}

	account.PasswordHash, err = hashPassword(in.Password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("register customer: %w", err)
	}

	if err := s.accounts.CreateCustomer(ctx, account, profile); err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		Action:     domain.AuditCustomerRegister,
		ActorID:    account.ID,
		Login:      account.Login,
		TargetType: "account",
		TargetID:   account.ID,
		At:         time.Now().UTC(),
	})
	s.logger.Info().Int64("account_id", account.ID).Str("login", account.Login).Msg("customer registered")

	return &domain.AccountWithProfile{Account: *account, Profile: profile}, nil
}

// newAccount trims and checks the identity fields shared by every account.
func newAccount(name, mail, login, role string) (*domain.Account, error) {
	a := &domain.Account{
		Name:  strings.TrimSpace(name),
		Mail:  strings.ToLower(strings.TrimSpace(mail)),
		Login: strings.TrimSpace(login),
		Role:  role,
	}
	if a.Name == "" || a.Mail == "" || a.Login == "" {
		return nil, domain.Validationf("name, mail and login are required")
	}
	if !strings.Contains(a.Mail, "@") {
		return nil, domain.Validationf("mail must be a valid address")
	}
	if !domain.ValidRole(role) {
		return nil, domain.Validationf("role must be one of: %s %s", domain.RoleAdmin, domain.RoleCustomer)
	}
	return a, nil
}

func newProfile(in ports.ProfileInput) (*domain.Profile, error) {
	p := &domain.Profile{
		Document:   strings.TrimSpace(in.Document),
		Phone:      strings.TrimSpace(in.Phone),
		Street:     strings.TrimSpace(in.Street),
		Number:     strings.TrimSpace(in.Number),
		Complement: strings.TrimSpace(in.Complement),
		District:   strings.TrimSpace(in.District),
		City:       strings.TrimSpace(in.City),
		State:      strings.TrimSpace(in.State),
		ZipCode:    strings.TrimSpace(in.ZipCode),
	}
	if p.Document == "" {
		return nil, domain.Validationf("profile document is required")
	}
	return p, nil
}
