package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/memorylane/internal/client/client"
	"github.com/dmitrijs2005/memorylane/internal/client/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements client.Client for the service tests.
type fakeClient struct {
	mu sync.Mutex

	signInSess *models.Session
	signInErr  error
	signOutErr error
	user       *models.User
	userErr    error
	pingErr    error

	memories []*models.Memory
	listErr  error
	listFor  []string
	deleted  []string
	delErr   error

	used     *models.Session
	onTokens client.TokenListener
	closed   bool
	signOuts int
}

func (f *fakeClient) Close() error                 { f.closed = true; return nil }
func (f *fakeClient) Ping(context.Context) error   { return f.pingErr }
func (f *fakeClient) UseSession(s *models.Session) { f.used = s }
func (f *fakeClient) OnTokens(fn client.TokenListener) {
	f.onTokens = fn
}

func (f *fakeClient) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	return f.SignIn(ctx, email, password)
}

func (f *fakeClient) SignIn(context.Context, string, string) (*models.Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	s := *f.signInSess
	return &s, nil
}

func (f *fakeClient) SignOut(context.Context) error {
	f.signOuts++
	return f.signOutErr
}

func (f *fakeClient) GetUser(context.Context) (*models.User, error) {
	return f.user, f.userErr
}

func (f *fakeClient) ListMemories(_ context.Context, userID string) ([]*models.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listFor = append(f.listFor, userID)
	return f.memories, f.listErr
}

func (f *fakeClient) InsertMemory(context.Context, *models.Memory) (*models.Memory, error) {
	panic("not used")
}

func (f *fakeClient) DeleteMemory(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.delErr
}

func (f *fakeClient) CreateUploadURL(context.Context, string, string) (string, error) {
	panic("not used")
}

func (f *fakeClient) GetPublicURL(context.Context, string) (string, error) {
	panic("not used")
}

type staticSessions struct {
	sess *models.Session
	err  error
}

func (s staticSessions) GetSession(context.Context) (*models.Session, error) {
	return s.sess, s.err
}

func signedIn(userID string) staticSessions {
	return staticSessions{sess: &models.Session{AccessToken: "A", User: models.User{ID: userID}}}
}
