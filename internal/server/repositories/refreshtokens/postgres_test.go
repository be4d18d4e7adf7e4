package refreshtokens

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/memorylane/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	createQ = `(?s)^INSERT\s+INTO\s+refresh_tokens\s*\(user_id,\s*token,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*$`
	findQ   = `(?s)^SELECT\s+user_id,\s*expires_at\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1\s*$`
	deleteQ = `(?s)^DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1\s*$`
)

func setup(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

// expiresWithin matches a timestamp between now+validity-slack and now+validity.
type expiresWithin struct {
	validity time.Duration
}

func (e expiresWithin) Match(v driver.Value) bool {
	ts, ok := v.(time.Time)
	if !ok {
		return false
	}
	d := time.Until(ts)
	return d <= e.validity && d > e.validity-time.Minute
}

func TestCreate(t *testing.T) {
	repo, mock := setup(t)

	mock.ExpectExec(createQ).
		WithArgs("7c9e6679-7425-40de-944b-e07fc1f90ae7", "9f86d081884c7d65", expiresWithin{24 * time.Hour}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(createQ).
		WithArgs("u2", "dead", sqlmock.AnyArg()).
		WillReturnError(errors.New("unique violation"))

	require.NoError(t, repo.Create(context.Background(), "7c9e6679-7425-40de-944b-e07fc1f90ae7", "9f86d081884c7d65", 24*time.Hour))

	err := repo.Create(context.Background(), "u2", "dead", time.Hour)
	require.ErrorContains(t, err, "db error: unique violation")
}

func TestFind(t *testing.T) {
	expires := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectQuery(findQ).WithArgs("abc").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at"}).AddRow("u1", expires))

		got, err := repo.Find(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, "abc", got.Token)
		assert.Equal(t, "u1", got.UserID)
		assert.True(t, got.Expires.Equal(expires))
	})

	t.Run("unknown token", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectQuery(findQ).WithArgs("gone").WillReturnError(sql.ErrNoRows)

		_, err := repo.Find(context.Background(), "gone")
		require.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("query fails", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectQuery(findQ).WithArgs("abc").WillReturnError(errors.New("conn reset"))

		_, err := repo.Find(context.Background(), "abc")
		require.ErrorContains(t, err, "db error: conn reset")
		require.NotErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestDelete(t *testing.T) {
	repo, mock := setup(t)

	mock.ExpectExec(deleteQ).WithArgs("abc").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteQ).WithArgs("never-issued").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(deleteQ).WithArgs("abc").WillReturnError(errors.New("read only"))

	require.NoError(t, repo.Delete(context.Background(), "abc"))
	require.NoError(t, repo.Delete(context.Background(), "never-issued"))
	require.ErrorContains(t, repo.Delete(context.Background(), "abc"), "db error: read only")
}
