// Package services contains application services for the Memory Lane client.
// This file defines the authentication service: sign-in, sign-up, sign-out,
// session persistence and session-change notifications.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/memorylane/internal/client/client"
	"github.com/dmitrijs2005/memorylane/internal/client/models"
	"github.com/dmitrijs2005/memorylane/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/memorylane/internal/dbx"
	"github.com/dmitrijs2005/memorylane/internal/logging"
)

type EventType string

const (
	EventSignedIn       EventType = "signed_in"
	EventSignedOut      EventType = "signed_out"
	EventTokenRefreshed EventType = "token_refreshed"
)

// SessionEvent describes a session transition. Session is nil for EventSignedOut.
type SessionEvent struct {
	Type    EventType
	Session *models.Session
}

// AuthService defines authentication operations for the CLI.
//
// GetSession returns (nil, nil) when nobody is signed in. Subscribe registers
// fn for every future transition and returns a function that removes it.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*models.Session, error)
	GetUser(ctx context.Context) (*models.User, error)
	Subscribe(fn func(SessionEvent)) (unsubscribe func())
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

const (
	keyAccessToken  = "session.access_token"
	keyRefreshToken = "session.refresh_token"
	keyExpiresAt    = "session.expires_at"
	keyUserID       = "session.user_id"
	keyEmail        = "session.email"
)

var sessionKeys = []string{keyAccessToken, keyRefreshToken, keyExpiresAt, keyUserID, keyEmail}

type authService struct {
	client client.Client
	db     *sql.DB
	logger logging.Logger

	// storeMu orders writes of the persisted session; taken before mu.
	storeMu sync.Mutex

	mu      sync.Mutex
	session *models.Session
	loaded  bool
	subs    map[int]func(SessionEvent)
	nextSub int
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(c client.Client, db *sql.DB, logger logging.Logger) AuthService {
	a := &authService{
		client: c,
		db:     db,
		logger: logger.With("module", "auth_service"),
		subs:   make(map[int]func(SessionEvent)),
	}
	c.OnTokens(a.onTokensRefreshed)
	return a
}

func (a *authService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	sess, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return sess, a.establish(ctx, sess)
}

func (a *authService) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	sess, err := a.client.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return sess, a.establish(ctx, sess)
}

func (a *authService) establish(ctx context.Context, sess *models.Session) error {
	a.storeMu.Lock()
	if err := a.persist(ctx, sess); err != nil {
		a.storeMu.Unlock()
		return fmt.Errorf("session saving error: %w", err)
	}

	a.mu.Lock()
	a.session = sess
	a.loaded = true
	a.mu.Unlock()
	a.storeMu.Unlock()

	a.emit(SessionEvent{Type: EventSignedIn, Session: sess})
	return nil
}

// SignOut clears the local session. A failed server-side revocation is logged only.
func (a *authService) SignOut(ctx context.Context) error {
	if err := a.client.SignOut(ctx); err != nil {
		a.logger.Warn(ctx, "sign out request failed", "error", err)
	}

	a.storeMu.Lock()
	if err := metadata.NewSQLiteRepository(a.db).Delete(ctx, sessionKeys...); err != nil {
		a.storeMu.Unlock()
		return err
	}

	a.mu.Lock()
	a.session = nil
	a.loaded = true
	a.mu.Unlock()
	a.storeMu.Unlock()

	a.emit(SessionEvent{Type: EventSignedOut})
	return nil
}

func (a *authService) GetSession(ctx context.Context) (*models.Session, error) {
	a.mu.Lock()
	if a.loaded {
		s := a.session
		a.mu.Unlock()
		return s, nil
	}
	a.mu.Unlock()

	sess, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.loaded {
		a.session = sess
		a.loaded = true
		a.client.UseSession(sess)
	}
	return a.session, nil
}

// GetUser asks the server who the current session belongs to.
func (a *authService) GetUser(ctx context.Context) (*models.User, error) {
	sess, err := a.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotSignedIn
	}

	u, err := a.client.GetUser(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	if a.session != nil {
		a.session.User = *u
	}
	a.mu.Unlock()

	return u, nil
}

func (a *authService) Subscribe(fn func(SessionEvent)) func() {
	a.mu.Lock()
	id := a.nextSub
	a.nextSub++
	a.subs[id] = fn
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.subs, id)
			a.mu.Unlock()
		})
	}
}

func (a *authService) emit(ev SessionEvent) {
	a.mu.Lock()
	fns := make([]func(SessionEvent), 0, len(a.subs))
	for _, id := range slices.Sorted(maps.Keys(a.subs)) {
		fns = append(fns, a.subs[id])
	}
	a.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// onTokensRefreshed persists the new pair unless a sign-out got there first.
func (a *authService) onTokensRefreshed(access, refresh string, expiresAt time.Time) {
	a.storeMu.Lock()
	a.mu.Lock()
	if a.session == nil {
		a.mu.Unlock()
		a.storeMu.Unlock()
		return
	}
	updated := *a.session
	updated.AccessToken = access
	updated.RefreshToken = refresh
	updated.ExpiresAt = expiresAt
	a.session = &updated
	a.mu.Unlock()

	ctx := context.Background()
	if err := a.persist(ctx, &updated); err != nil {
		a.logger.Error(ctx, "persist refreshed session", "error", err)
	}
	a.storeMu.Unlock()

	a.emit(SessionEvent{Type: EventTokenRefreshed, Session: &updated})
}

func (a *authService) persist(ctx context.Context, s *models.Session) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		values := map[string]string{
			keyAccessToken:  s.AccessToken,
			keyRefreshToken: s.RefreshToken,
			keyExpiresAt:    s.ExpiresAt.UTC().Format(time.RFC3339),
			keyUserID:       s.User.ID,
			keyEmail:        s.User.Email,
		}
		for _, k := range sessionKeys {
			if err := repo.Set(ctx, k, []byte(values[k])); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *authService) load(ctx context.Context) (*models.Session, error) {
	values, err := metadata.NewSQLiteRepository(a.db).List(ctx, "session.")
	if err != nil {
		return nil, err
	}

	access := string(values[keyAccessToken])
	userID := string(values[keyUserID])
	if access == "" || userID == "" {
		return nil, nil
	}

	expiresAt, _ := time.Parse(time.RFC3339, string(values[keyExpiresAt]))

	return &models.Session{
		AccessToken:  access,
		RefreshToken: string(values[keyRefreshToken]),
		ExpiresAt:    expiresAt,
		User:         models.User{ID: userID, Email: string(values[keyEmail])},
	}, nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
