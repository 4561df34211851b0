// Package postgres contains the PostgreSQL implementations of the repository
// ports. Every read filters out soft-deleted rows.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

// PgxPool is the subset of *pgxpool.Pool the repositories use. It is also
// satisfied by pgxmock.PgxPoolIface.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// DB wraps the pool so repositories can be constructed over a mock in tests.
type DB struct{ Pool PgxPool }

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	Timeout         time.Duration
}

// Connect opens a pool and verifies it with a ping.
func Connect(ctx context.Context, cfg Config) (*DB, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pcfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &DB{Pool: pool}, nil
}

func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func (db *DB) Close() { db.Pool.Close() }

// inTx runs fn inside a transaction, committing on success and rolling back
// on any error.
func (db *DB) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()
	return fn(tx)
}

// visibleKeys maps the partial unique indexes to the conflict they signal.
var visibleKeys = map[string]error{
	"accounts_login_visible_key":    domain.ErrLoginTaken,
	"accounts_mail_visible_key":     domain.ErrMailTaken,
	"profiles_document_visible_key": domain.ErrDocumentTaken,
}

// uniqueViolation translates a unique constraint violation into its domain
// conflict. It returns nil for any other error.
func uniqueViolation(err error) error {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) || pg.Code != "23505" {
		return nil
	}
	if mapped, ok := visibleKeys[pg.ConstraintName]; ok {
		return mapped
	}
	return fmt.Errorf("%w: %s", domain.ErrConflict, pg.ConstraintName)
}

// writeErr maps a driver error from an INSERT/UPDATE.
func writeErr(op string, err error) error {
	if conflict := uniqueViolation(err); conflict != nil {
		return conflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

// orderBy builds an ORDER BY clause from a whitelisted sort key. A leading
// "-" sorts descending. Unknown keys fall back to the id column.
func orderBy(sort string, columns map[string]string, idColumn string) string {
	dir := "ASC"
	if strings.HasPrefix(sort, "-") {
		dir = "DESC"
		sort = sort[1:]
	}
	col, ok := columns[sort]
	if !ok {
		return "ORDER BY " + idColumn + " " + dir
	}
	return "ORDER BY " + col + " " + dir + ", " + idColumn + " " + dir
}
