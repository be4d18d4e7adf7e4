package memories

import (
	"context"

	"github.com/dmitrijs2005/memorylane/internal/server/models"
)

// Repository is the relational store for memories.
type Repository interface {
	// ListByUser returns the user's memories, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Memory, error)
	// Create inserts m, assigning ID when empty and CreatedAt from the database.
	Create(ctx context.Context, m *models.Memory) (*models.Memory, error)
	// Delete removes one memory owned by userID; common.ErrorNotFound when
	// no such row exists for that owner.
	Delete(ctx context.Context, id string, userID string) error
}
