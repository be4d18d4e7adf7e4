// Package memories provides the PostgreSQL-backed memories table access.
// Attachments are kept as an ordered JSONB array on the row.
package memories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/memorylane/internal/common"
	"github.com/dmitrijs2005/memorylane/internal/dbx"
	"github.com/dmitrijs2005/memorylane/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Memory, error) {
	query :=
		`SELECT id, user_id, title, date, description, attachments, created_at
		 FROM memories
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Memory{}
	for rows.Next() {
		m := &models.Memory{}
		var raw []byte
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Date, &m.Description, &raw, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(raw, &m.Attachments); err != nil {
			return nil, fmt.Errorf("decode attachments of %s: %w", m.ID, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Memory) (*models.Memory, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Attachments == nil {
		m.Attachments = []models.Attachment{}
	}

	raw, err := json.Marshal(m.Attachments)
	if err != nil {
		return nil, fmt.Errorf("encode attachments: %w", err)
	}

	query :=
		`INSERT INTO memories (id, user_id, title, date, description, attachments)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	if err := r.db.QueryRowContext(ctx, query,
		m.ID, m.UserID, m.Title, m.Date, m.Description, raw).Scan(&m.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) error {
	query :=
		`DELETE FROM memories
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if err := dbx.ExpectOneRow(res); err != nil {
		if errors.Is(err, dbx.ErrNoRowsAffected) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
