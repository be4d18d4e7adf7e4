package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/memorylane/internal/client/models"
)

type SessionSource interface {
	GetSession(ctx context.Context) (*models.Session, error)
}

type MemoryStore interface {
	ListMemories(ctx context.Context, userID string) ([]*models.Memory, error)
	DeleteMemory(ctx context.Context, id string) error
}

// Loader owns the in-memory list of the signed-in user's memories. The owning
// screen calls Refresh each time it is shown.
type Loader struct {
	store    MemoryStore
	sessions SessionSource

	mu      sync.RWMutex
	items   []*models.Memory
	loading bool
}

func NewLoader(store MemoryStore, sessions SessionSource) *Loader {
	return &Loader{store: store, sessions: sessions}
}

func currentUserID(ctx context.Context, sessions SessionSource) (string, error) {
	sess, err := sessions.GetSession(ctx)
	if err != nil || sess == nil || sess.User.ID == "" {
		return "", ErrNotSignedIn
	}
	return sess.User.ID, nil
}

// Refresh fetches the user's memories, newest first. On failure the
// previous list is kept and the error is returned for display.
func (l *Loader) Refresh(ctx context.Context) ([]*models.Memory, error) {
	userID, err := currentUserID(ctx, l.sessions)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()

	items, err := l.store.ListMemories(ctx, userID)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false

	if err != nil {
		return l.snapshot(), fmt.Errorf("load memories: %w", err)
	}

	l.items = items
	return l.snapshot(), nil
}

func (l *Loader) snapshot() []*models.Memory {
	out := make([]*models.Memory, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Loader) Items() []*models.Memory {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot()
}

func (l *Loader) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

// Find returns the loaded memory whose id starts with prefix. Ambiguous or
// missing prefixes return nil.
func (l *Loader) Find(prefix string) *models.Memory {
	if prefix == "" {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var found *models.Memory
	for _, m := range l.items {
		if strings.HasPrefix(m.ID, prefix) {
			if found != nil {
				return nil
			}
			found = m
		}
	}
	return found
}

// Delete removes one memory on the server. The list is not refreshed.
func (l *Loader) Delete(ctx context.Context, id string) error {
	if _, err := currentUserID(ctx, l.sessions); err != nil {
		return err
	}
	if err := l.store.DeleteMemory(ctx, id); err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}
	return nil
}

// Reset drops the loaded list, e.g. after sign-out.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
}
