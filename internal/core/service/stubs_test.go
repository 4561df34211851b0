package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Account repository: in-memory, honours deleted flags the way the SQL does.
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	nextID   int64
	accounts map[int64]*domain.Account
	profiles map[int64]*domain.Profile

	createCustomerErr error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{
		accounts: make(map[int64]*domain.Account),
		profiles: make(map[int64]*domain.Profile),
	}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) visible(id int64) (*domain.Account, bool) {
	a, ok := r.accounts[id]
	if !ok || a.Deleted {
		return nil, false
	}
	return a, true
}

func (r *stubAccountRepo) conflict(a *domain.Account) error {
	for _, other := range r.accounts {
		if other.Deleted || other.ID == a.ID {
			continue
		}
		if other.Login == a.Login {
			return domain.ErrLoginTaken
		}
		if other.Mail == a.Mail {
			return domain.ErrMailTaken
		}
	}
	return nil
}

func (r *stubAccountRepo) documentConflict(p *domain.Profile) error {
	for id, other := range r.profiles {
		if other.Deleted || id == p.AccountID {
			continue
		}
		if other.Document == p.Document {
			return domain.ErrDocumentTaken
		}
	}
	return nil
}

func (r *stubAccountRepo) insert(a *domain.Account) {
	r.nextID++
	now := time.Now().UTC()
	a.ID = r.nextID
	a.CreatedAt, a.UpdatedAt = now, now
	r.accounts[a.ID] = cloneAccount(a)
}

func (r *stubAccountRepo) FindVisibleAccountByLogin(_ context.Context, login string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if !a.Deleted && a.Login == login {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindVisibleAccount(_ context.Context, id int64) (*domain.Account, error) {
	a, ok := r.visible(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindAccountWithProfile(_ context.Context, id int64) (*domain.AccountWithProfile, error) {
	a, ok := r.visible(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	out := &domain.AccountWithProfile{Account: *a}
	if p, ok := r.profiles[id]; ok && !p.Deleted {
		clone := *p
		out.Profile = &clone
	}
	return out, nil
}

func (r *stubAccountRepo) FindVisibleAccounts(_ context.Context, f ports.ListAccountsFilter) ([]*domain.Account, int64, error) {
	var all []*domain.Account
	for _, a := range r.accounts {
		if a.Deleted {
			continue
		}
		if f.Role != "" && a.Role != f.Role {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(a.Name+" "+a.Login+" "+a.Mail), strings.ToLower(f.Search)) {
			continue
		}
		all = append(all, cloneAccount(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := f.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubAccountRepo) CreateAccount(_ context.Context, a *domain.Account) error {
	if err := r.conflict(a); err != nil {
		return err
	}
	r.insert(a)
	return nil
}

func (r *stubAccountRepo) CreateCustomer(_ context.Context, a *domain.Account, p *domain.Profile) error {
	if r.createCustomerErr != nil {
		return r.createCustomerErr
	}
	if err := r.conflict(a); err != nil {
		return err
	}
	if err := r.documentConflict(p); err != nil {
		return err
	}
	r.insert(a)
	p.AccountID = a.ID
	p.CreatedAt, p.UpdatedAt = a.CreatedAt, a.UpdatedAt
	clone := *p
	r.profiles[a.ID] = &clone
	return nil
}

func (r *stubAccountRepo) UpdateAccount(_ context.Context, a *domain.Account) error {
	current, ok := r.visible(a.ID)
	if !ok {
		return domain.ErrAccountNotFound
	}
	if err := r.conflict(a); err != nil {
		return err
	}
	current.Name, current.Mail, current.Login = a.Name, a.Mail, a.Login
	current.UpdatedAt = time.Now().UTC()
	a.UpdatedAt = current.UpdatedAt
	return nil
}

func (r *stubAccountRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	current, ok := r.visible(id)
	if !ok {
		return domain.ErrAccountNotFound
	}
	current.PasswordHash = hash
	return nil
}

func (r *stubAccountRepo) SaveProfile(_ context.Context, p *domain.Profile) error {
	if _, ok := r.visible(p.AccountID); !ok {
		return domain.ErrProfileNotFound
	}
	if err := r.documentConflict(p); err != nil {
		return err
	}
	clone := *p
	r.profiles[p.AccountID] = &clone
	return nil
}

func (r *stubAccountRepo) SoftDeleteAccount(_ context.Context, id int64) error {
	a, ok := r.visible(id)
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Deleted = true
	if p, ok := r.profiles[id]; ok {
		p.Deleted = true
	}
	return nil
}

// ---------------------------------------------------------------------------
// Audit and limiter stubs
// ---------------------------------------------------------------------------

type stubAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *stubAudit) Record(e domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *stubAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}

type stubLimiter struct {
	allow    bool
	allowErr error
	failures int
	success  int
}

func (l *stubLimiter) Allow(context.Context, string, string) (bool, time.Duration, error) {
	return l.allow, time.Minute, l.allowErr
}

func (l *stubLimiter) Failure(context.Context, string, string) error {
	l.failures++
	return nil
}

func (l *stubLimiter) Success(context.Context, string, string) error {
	l.success++
	return nil
}
