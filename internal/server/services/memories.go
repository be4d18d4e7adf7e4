package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/memorylane/internal/common"
	"github.com/dmitrijs2005/memorylane/internal/server/models"
	"github.com/dmitrijs2005/memorylane/internal/server/repositories/repomanager"
)

// MemoryService enforces row ownership in front of the memories table.
type MemoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMemoryService(db *sql.DB, m repomanager.RepositoryManager) *MemoryService {
	return &MemoryService{db: db, repomanager: m}
}

// List returns the memories owned by userID, newest first. Callers may only
// list their own rows.
func (s *MemoryService) List(ctx context.Context, callerID, userID string) ([]*models.Memory, error) {
	if userID == "" {
		userID = callerID
	}
	if userID != callerID {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Memories(s.db).ListByUser(ctx, userID)
}

// Insert stores m for callerID. The attachment order is kept as given.
func (s *MemoryService) Insert(ctx context.Context, callerID string, m *models.Memory) (*models.Memory, error) {
	if m.UserID != "" && m.UserID != callerID {
		return nil, common.ErrorForbidden
	}
	if err := validateMemory(m); err != nil {
		return nil, err
	}
	m.UserID = callerID
	m.ID = ""
	return s.repomanager.Memories(s.db).Create(ctx, m)
}

// Delete removes one of callerID's memories.
func (s *MemoryService) Delete(ctx context.Context, callerID, id string) error {
	if id == "" {
		return fmt.Errorf("%w: memory id is required", common.ErrorValidation)
	}
	return s.repomanager.Memories(s.db).Delete(ctx, id, callerID)
}

func validateMemory(m *models.Memory) error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if len(m.Attachments) == 0 {
		return fmt.Errorf("%w: at least one attachment is required", common.ErrorValidation)
	}
	for i, a := range m.Attachments {
		if a.URL == "" {
			return fmt.Errorf("%w: attachment %d has no url", common.ErrorValidation, i)
		}
		if !a.Kind.Valid() {
			return fmt.Errorf("%w: attachment %d has unknown type %q", common.ErrorValidation, i, a.Kind)
		}
	}
	return nil
}
