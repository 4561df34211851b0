package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

var accountCols = []string{"id", "name", "mail", "login", "password_hash", "role", "created_at", "updated_at"}

func TestAccountRepo_FindVisibleAccountByLogin(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`FROM accounts WHERE login = \$1 AND NOT deleted`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(accountCols).
			AddRow(int64(7), "Alice", "a@x.com", "alice", "$2a$10$hash", "customer", now, now))
	a, err := r.FindVisibleAccountByLogin(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(7), a.ID)
	require.Equal(t, domain.RoleCustomer, a.Role)

	mock.ExpectQuery(`FROM accounts WHERE login = \$1 AND NOT deleted`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.FindVisibleAccountByLogin(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_FindAccountWithProfile(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`FROM accounts WHERE id = \$1 AND NOT deleted`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(accountCols).
			AddRow(int64(7), "Alice", "a@x.com", "alice", "h", "customer", now, now))
	mock.ExpectQuery(`FROM profiles WHERE account_id = \$1 AND NOT deleted`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"account_id", "document", "phone", "street", "number", "complement", "district", "city", "state", "zip_code", "created_at", "updated_at"}).
			AddRow(int64(7), "123", "", "", "", "", "", "Recife", "PE", "", now, now))
	got, err := r.FindAccountWithProfile(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	require.Equal(t, "Recife", got.Profile.City)

	// Admin accounts have no profile row.
	mock.ExpectQuery(`FROM accounts WHERE id = \$1 AND NOT deleted`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(accountCols).
			AddRow(int64(1), "Root", "r@x.com", "root", "h", "admin", now, now))
	mock.ExpectQuery(`FROM profiles WHERE account_id = \$1 AND NOT deleted`).
		WithArgs(int64(1)).
		WillReturnError(pgx.ErrNoRows)
	got, err = r.FindAccountWithProfile(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, got.Profile)

	// A deleted account short-circuits before the profile lookup.
	mock.ExpectQuery(`FROM accounts WHERE id = \$1 AND NOT deleted`).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.FindAccountWithProfile(ctx, 9)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_FindVisibleAccounts(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepository(db)
	ctx := context.Background()
	now := time.Now()
	f := ports.ListAccountsFilter{ListFilter: ports.ListFilter{Search: "ali", Sort: "-name", Page: 2, Limit: 10}, Role: "customer"}

	mock.ExpectQuery(`SELECT count\(\*\) FROM accounts WHERE NOT deleted`).
		WithArgs("customer", "ali").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(11)))
	mock.ExpectQuery(`WHERE NOT deleted .* ORDER BY name DESC, id DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("customer", "ali", 10, 10).
		WillReturnRows(pgxmock.NewRows(accountCols).
			AddRow(int64(42), "Alicia", "al@x.com", "alicia", "h", "customer", now, now))

	items, total, err := r.FindVisibleAccounts(ctx, f)
	require.NoError(t, err)
	require.Equal(t, int64(11), total)
	require.Len(t, items, 1)
	require.Equal(t, "alicia", items[0].Login)

	// No visible rows: the page query is skipped.
	mock.ExpectQuery(`SELECT count\(\*\) FROM accounts WHERE NOT deleted`).
		WithArgs("", "").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	items, total, err = r.FindVisibleAccounts(ctx, ports.ListAccountsFilter{ListFilter: ports.ListFilter{Page: 1, Limit: 20}})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, items)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_CreateAccount_UniqueViolation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepository(db)
	ctx := context.Background()
	a := &domain.Account{Name: "Alice", Mail: "a@x.com", Login: "alice", PasswordHash: "h", Role: "customer"}

	mock.ExpectQuery(`INSERT INTO accounts \(name, mail, login, password_hash, role\)`).
		WithArgs(a.Name, a.Mail, a.Login, a.PasswordHash, a.Role).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), time.Now(), time.Now()))
	require.NoError(t, r.CreateAccount(ctx, a))
	require.Equal(t, int64(1), a.ID)

	mock.ExpectQuery(`INSERT INTO accounts \(name, mail, login, password_hash, role\)`).
		WithArgs(a.Name, a.Mail, a.Login, a.PasswordHash, a.Role).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_login_visible_key"})
	err := r.CreateAccount(ctx, a)
	require.ErrorIs(t, err, domain.ErrLoginTaken)
	require.ErrorIs(t, err, domain.ErrConflict)

	mock.ExpectQuery(`INSERT INTO accounts \(name, mail, login, password_hash, role\)`).
		WithArgs(a.Name, a.Mail, a.Login, a.PasswordHash, a.Role).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_mail_visible_key"})
	require.ErrorIs(t, r.CreateAccount(ctx, a), domain.ErrMailTaken)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_CreateCustomer_Commit(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepository(db)
	ctx := context.Background()
	now := time.Now()
	a := &domain.Account{Name: "Alice", Mail: "a@x.com", Login: "alice", PasswordHash: "h", Role: "customer"}
	p := &domain.Profile{Document: "123", City: "Recife"}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs(a.Name, a.Mail, a.Login, a.PasswordHash, a.Role).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))
	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs(int64(5), "123", "", "", "", "", "", "Recife", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()

	require.NoError(t, r.CreateCustomer(ctx, a, p))
	require.Equal(t, int64(5), a.ID)
	require.Equal(t, int64(5), p.AccountID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_CreateCustomer_RollbackOnProfileConflict(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepository(db)
	ctx := context.Background()
	now := time.Now()
	a := &domain.Account{Name: "Alice", Mail: "a@x.com", Login: "alice", PasswordHash: "h", Role: "customer"}
	p := &domain.Profile{Document: "123"}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs(a.Name, a.Mail, a.Login, a.PasswordHash, a.Role).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))
	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs(int64(5), "123", "", "", "", "", "", "", "", "").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "profiles_document_visible_key"})
	mock.ExpectRollback()

	err := r.CreateCustomer(ctx, a, p)
	require.ErrorIs(t, err, domain.ErrDocumentTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_UpdateAccount(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepository(db)
	ctx := context.Background()
	a := &domain.Account{ID: 7, Name: "Alice", Mail: "a@x.com", Login: "alice"}

	mock.ExpectQuery(`UPDATE accounts SET name = \$2, mail = \$3, login = \$4, updated_at = now\(\) WHERE id = \$1 AND NOT deleted`).
		WithArgs(a.ID, a.Name, a.Mail, a.Login).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
	require.NoError(t, r.UpdateAccount(ctx, a))

	mock.ExpectQuery(`UPDATE accounts SET name = \$2`).
		WithArgs(a.ID, a.Name, a.Mail, a.Login).
		WillReturnError(pgx.ErrNoRows)
	require.ErrorIs(t, r.UpdateAccount(ctx, a), domain.ErrAccountNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_UpdatePassword(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE accounts SET password_hash = \$2, updated_at = now\(\) WHERE id = \$1 AND NOT deleted`).
		WithArgs(int64(7), "newhash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.UpdatePassword(ctx, 7, "newhash"))

	mock.ExpectExec(`UPDATE accounts SET password_hash = \$2`).
		WithArgs(int64(8), "newhash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.UpdatePassword(ctx, 8, "newhash"), domain.ErrAccountNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_SoftDeleteAccount(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE accounts SET deleted = true, updated_at = now\(\) WHERE id = \$1 AND NOT deleted`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE profiles SET deleted = true, updated_at = now\(\) WHERE account_id = \$1 AND NOT deleted`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	require.NoError(t, r.SoftDeleteAccount(ctx, 7))

	// Deleting again touches no row and rolls back.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE accounts SET deleted = true`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()
	require.ErrorIs(t, r.SoftDeleteAccount(ctx, 7), domain.ErrAccountNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_SaveProfile(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepository(db)
	ctx := context.Background()
	p := &domain.Profile{AccountID: 7, Document: "123"}

	mock.ExpectQuery(`INSERT INTO profiles .* FROM accounts WHERE id = \$1 AND NOT deleted ON CONFLICT \(account_id\) DO UPDATE`).
		WithArgs(int64(7), "123", "", "", "", "", "", "", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))
	require.NoError(t, r.SaveProfile(ctx, p))

	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs(int64(7), "123", "", "", "", "", "", "", "", "").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "profiles_document_visible_key"})
	require.ErrorIs(t, r.SaveProfile(ctx, p), domain.ErrDocumentTaken)

	require.NoError(t, mock.ExpectationsWereMet())
}
