// Package session decides which screen the CLI may show: the authentication
// screen while nobody is signed in, the main screen otherwise.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/memorylane/internal/client/models"
	"github.com/dmitrijs2005/memorylane/internal/client/services"
)

type Screen string

const (
	ScreenAuth Screen = "auth"
	ScreenMain Screen = "main"
)

type Authenticator interface {
	GetSession(ctx context.Context) (*models.Session, error)
	Subscribe(fn func(services.SessionEvent)) (unsubscribe func())
}

type Gate struct {
	auth Authenticator

	mu       sync.RWMutex
	session  *models.Session
	mounted  bool
	eventGen int
	watchers []func(Screen)
	unsub    func()
}

func NewGate(auth Authenticator) *Gate {
	return &Gate{auth: auth}
}

// Mount fetches the current session once and follows every later transition
// until Close. A failed fetch counts as no session.
func (g *Gate) Mount(ctx context.Context) {
	g.mu.Lock()
	if g.mounted {
		g.mu.Unlock()
		return
	}
	g.mounted = true
	gen := g.eventGen
	g.mu.Unlock()

	unsub := g.auth.Subscribe(g.handle)

	sess, err := g.auth.GetSession(ctx)
	if err != nil {
		sess = nil
	}

	g.mu.Lock()
	g.unsub = unsub
	before := g.screenLocked()
	// an event that arrived meanwhile is newer than the fetch
	if g.eventGen == gen {
		g.session = sess
	}
	after := g.screenLocked()
	watchers := append([]func(Screen){}, g.watchers...)
	g.mu.Unlock()

	if before != after {
		notify(watchers, after)
	}
}

func (g *Gate) handle(ev services.SessionEvent) {
	g.mu.Lock()
	g.eventGen++
	before := g.screenLocked()
	switch ev.Type {
	case services.EventSignedIn:
		g.session = ev.Session
	case services.EventTokenRefreshed:
		// a late refresh must not undo a sign-out
		if g.session != nil {
			g.session = ev.Session
		}
	case services.EventSignedOut:
		g.session = nil
	}
	after := g.screenLocked()
	watchers := append([]func(Screen){}, g.watchers...)
	g.mu.Unlock()

	if before != after {
		notify(watchers, after)
	}
}

func notify(watchers []func(Screen), s Screen) {
	for _, fn := range watchers {
		fn(s)
	}
}

func (g *Gate) screenLocked() Screen {
	if g.session != nil && g.session.User.ID != "" {
		return ScreenMain
	}
	return ScreenAuth
}

func (g *Gate) Screen() Screen {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.screenLocked()
}

func (g *Gate) SignedIn() bool {
	return g.Screen() == ScreenMain
}

// User returns the signed-in user, or nil.
func (g *Gate) User() *models.User {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.screenLocked() != ScreenMain {
		return nil
	}
	u := g.session.User
	return &u
}

// Watch registers fn to be called with the new screen on every change.
func (g *Gate) Watch(fn func(Screen)) {
	g.mu.Lock()
	g.watchers = append(g.watchers, fn)
	g.mu.Unlock()
}

func (g *Gate) Close() {
	g.mu.Lock()
	unsub := g.unsub
	g.unsub = nil
	g.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
