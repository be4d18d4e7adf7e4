package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/memorylane/internal/client/models"
)

// TokenListener is told about every token pair the client starts using
// because of a transparent refresh.
type TokenListener func(accessToken, refreshToken string, expiresAt time.Time)

type Client interface {
	Close() error
	Ping(ctx context.Context) error

	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	GetUser(ctx context.Context) (*models.User, error)
	UseSession(s *models.Session)
	OnTokens(fn TokenListener)

	ListMemories(ctx context.Context, userID string) ([]*models.Memory, error)
	InsertMemory(ctx context.Context, m *models.Memory) (*models.Memory, error)
	DeleteMemory(ctx context.Context, id string) error

	CreateUploadURL(ctx context.Context, key, contentType string) (string, error)
	GetPublicURL(ctx context.Context, key string) (string, error)
}
