// Package refreshtokens stores the opaque refresh tokens handed out at
// sign-in, one row per live session.
package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/memorylane/internal/common"
	"github.com/dmitrijs2005/memorylane/internal/dbx"
	"github.com/dmitrijs2005/memorylane/internal/server/models"
)

const (
	insertToken = `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)`
	selectToken = `
		SELECT user_id, expires_at
		FROM refresh_tokens
		WHERE token = $1`
	deleteToken = `
		DELETE FROM refresh_tokens
		WHERE token = $1`
)

// PostgresRepository works on either a pool or a transaction.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	expiresAt := time.Now().Add(validity)
	if _, err := r.db.ExecContext(ctx, insertToken, userID, token, expiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Find returns common.ErrorNotFound for tokens that were never issued or already revoked.
func (r *PostgresRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt := models.RefreshToken{Token: token}
	err := r.db.QueryRowContext(ctx, selectToken, token).Scan(&rt.UserID, &rt.Expires)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, common.ErrorNotFound
	case err != nil:
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &rt, nil
}

// Delete is idempotent.
func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, deleteToken, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
