package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

const accountColumns = `id, name, mail, login, password_hash, role, created_at, updated_at`

var accountSort = map[string]string{
	"id":         "id",
	"name":       "name",
	"login":      "login",
	"mail":       "mail",
	"created_at": "created_at",
}

// AccountRepository implements ports.AccountRepository.
type AccountRepository struct{ db *DB }

func NewAccountRepository(db *DB) *AccountRepository { return &AccountRepository{db: db} }

var _ ports.AccountRepository = (*AccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Mail, &a.Login, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) FindVisibleAccountByLogin(ctx context.Context, login string) (*domain.Account, error) {
	const q = `
SELECT ` + accountColumns + `
FROM accounts WHERE login = $1 AND NOT deleted`
	a, err := scanAccount(r.db.Pool.QueryRow(ctx, q, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by login: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) FindVisibleAccount(ctx context.Context, id int64) (*domain.Account, error) {
	const q = `
SELECT ` + accountColumns + `
FROM accounts WHERE id = $1 AND NOT deleted`
	a, err := scanAccount(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return a, nil
}

// FindAccountWithProfile returns a visible account and, when present, its
// visible profile.
func (r *AccountRepository) FindAccountWithProfile(ctx context.Context, id int64) (*domain.AccountWithProfile, error) {
	a, err := r.FindVisibleAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	const q = `
SELECT account_id, document, phone, street, number, complement, district, city, state, zip_code, created_at, updated_at
FROM profiles WHERE account_id = $1 AND NOT deleted`
	var p domain.Profile
	err = r.db.Pool.QueryRow(ctx, q, id).Scan(
		&p.AccountID, &p.Document, &p.Phone, &p.Street, &p.Number, &p.Complement,
		&p.District, &p.City, &p.State, &p.ZipCode, &p.CreatedAt, &p.UpdatedAt,
	)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return &domain.AccountWithProfile{Account: *a}, nil
	case err != nil:
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &domain.AccountWithProfile{Account: *a, Profile: &p}, nil
}

func (r *AccountRepository) FindVisibleAccounts(ctx context.Context, f ports.ListAccountsFilter) ([]*domain.Account, int64, error) {
	const where = `
FROM accounts
WHERE NOT deleted
  AND ($1 = '' OR role = $1)
  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR login ILIKE '%' || $2 || '%' OR mail ILIKE '%' || $2 || '%')`

	var total int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT count(*)`+where, f.Role, f.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}
	if total == 0 {
		return []*domain.Account{}, 0, nil
	}

	q := `SELECT ` + accountColumns + where + "\n" + orderBy(f.Sort, accountSort, "id") + `
LIMIT $3 OFFSET $4`
	rows, err := r.db.Pool.Query(ctx, q, f.Role, f.Search, f.Limit, f.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Account, 0, f.Limit)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list accounts: %w", err)
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *AccountRepository) CreateAccount(ctx context.Context, a *domain.Account) error {
	const q = `
INSERT INTO accounts (name, mail, login, password_hash, role)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`
	err := r.db.Pool.QueryRow(ctx, q, a.Name, a.Mail, a.Login, a.PasswordHash, a.Role).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return writeErr("create account", err)
	}
	return nil
}

const insertProfile = `
INSERT INTO profiles (account_id, document, phone, street, number, complement, district, city, state, zip_code)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING created_at, updated_at`

// CreateCustomer inserts the account and its profile in one transaction.
func (r *AccountRepository) CreateCustomer(ctx context.Context, a *domain.Account, p *domain.Profile) error {
	const insertAccount = `
INSERT INTO accounts (name, mail, login, password_hash, role)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`

	return r.db.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertAccount, a.Name, a.Mail, a.Login, a.PasswordHash, a.Role).
			Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return writeErr("create customer account", err)
		}

		p.AccountID = a.ID
		err = tx.QueryRow(ctx, insertProfile,
			p.AccountID, p.Document, p.Phone, p.Street, p.Number, p.Complement,
			p.District, p.City, p.State, p.ZipCode,
		).Scan(&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return writeErr("create customer profile", err)
		}
		return nil
	})
}

func (r *AccountRepository) UpdateAccount(ctx context.Context, a *domain.Account) error {
	const q = `
UPDATE accounts SET name = $2, mail = $3, login = $4, updated_at = now()
WHERE id = $1 AND NOT deleted
RETURNING updated_at`
	err := r.db.Pool.QueryRow(ctx, q, a.ID, a.Name, a.Mail, a.Login).Scan(&a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrAccountNotFound
	}
	if err != nil {
		return writeErr("update account", err)
	}
	return nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	const q = `
UPDATE accounts SET password_hash = $2, updated_at = now()
WHERE id = $1 AND NOT deleted`
	tag, err := r.db.Pool.Exec(ctx, q, id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// SaveProfile creates or replaces the profile of a visible account.
func (r *AccountRepository) SaveProfile(ctx context.Context, p *domain.Profile) error {
	const q = `
INSERT INTO profiles (account_id, document, phone, street, number, complement, district, city, state, zip_code)
SELECT id, $2, $3, $4, $5, $6, $7, $8, $9, $10 FROM accounts WHERE id = $1 AND NOT deleted
ON CONFLICT (account_id) DO UPDATE SET
    document = EXCLUDED.document, phone = EXCLUDED.phone, street = EXCLUDED.street,
    number = EXCLUDED.number, complement = EXCLUDED.complement, district = EXCLUDED.district,
    city = EXCLUDED.city, state = EXCLUDED.state, zip_code = EXCLUDED.zip_code, updated_at = now()
WHERE NOT profiles.deleted
RETURNING created_at, updated_at`
	err := r.db.Pool.QueryRow(ctx, q,
		p.AccountID, p.Document, p.Phone, p.Street, p.Number, p.Complement,
		p.District, p.City, p.State, p.ZipCode,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	if err != nil {
		return writeErr("save profile", err)
	}
	return nil
}

// SoftDeleteAccount marks the account and its profile deleted together.
// An account that is already deleted reports domain.ErrAccountNotFound.
func (r *AccountRepository) SoftDeleteAccount(ctx context.Context, id int64) error {
	const delAccount = `UPDATE accounts SET deleted = true, updated_at = now() WHERE id = $1 AND NOT deleted`
	const delProfile = `UPDATE profiles SET deleted = true, updated_at = now() WHERE account_id = $1 AND NOT deleted`

	return r.db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, delAccount, id)
		if err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrAccountNotFound
		}
		if _, err := tx.Exec(ctx, delProfile, id); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		return nil
	})
}
