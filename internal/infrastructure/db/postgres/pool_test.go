package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

func TestUniqueViolation(t *testing.T) {
	require.Nil(t, uniqueViolation(errors.New("boom")))
	require.Nil(t, uniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.ErrorIs(t, uniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_login_visible_key"}), domain.ErrLoginTaken)
	require.ErrorIs(t, uniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "something_else"}), domain.ErrConflict)
}

func TestOrderBy(t *testing.T) {
	cols := map[string]string{"name": "name"}
	require.Equal(t, "ORDER BY name ASC, id ASC", orderBy("name", cols, "id"))
	require.Equal(t, "ORDER BY name DESC, id DESC", orderBy("-name", cols, "id"))
	require.Equal(t, "ORDER BY id ASC", orderBy("", cols, "id"))
	require.Equal(t, "ORDER BY id DESC", orderBy("-bogus", cols, "id"))
}
