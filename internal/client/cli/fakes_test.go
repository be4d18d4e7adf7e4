package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/memorylane/internal/client/config"
	"github.com/dmitrijs2005/memorylane/internal/client/models"
	"github.com/dmitrijs2005/memorylane/internal/client/picker"
	"github.com/dmitrijs2005/memorylane/internal/client/services"
	"github.com/dmitrijs2005/memorylane/internal/client/session"
	"github.com/dmitrijs2005/memorylane/internal/logging"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type fakeAuth struct {
	signInEmail, signInPass string
	signInErr               error
	signUpEmail, signUpPass string
	signUpErr               error
	signOutCalls            int
	signOutErr              error
	pingErr                 error
	pings                   int
	user                    *models.User
	userErr                 error
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (*models.Session, error) {
	f.signInEmail, f.signInPass = email, password
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &models.Session{User: models.User{ID: "u1", Email: email}}, nil
}

func (f *fakeAuth) SignUp(_ context.Context, email, password string) (*models.Session, error) {
	f.signUpEmail, f.signUpPass = email, password
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &models.Session{User: models.User{ID: "u1", Email: email}}, nil
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.signOutCalls++
	return f.signOutErr
}

func (f *fakeAuth) GetSession(context.Context) (*models.Session, error) { return nil, nil }
func (f *fakeAuth) Subscribe(func(services.SessionEvent)) func()        { return func() {} }
func (f *fakeAuth) Close(context.Context) error                         { return nil }

func (f *fakeAuth) GetUser(context.Context) (*models.User, error) {
	return f.user, f.userErr
}

func (f *fakeAuth) Ping(context.Context) error {
	f.pings++
	return f.pingErr
}

type fakeGate struct {
	screen   session.Screen
	user     *models.User
	watchers []func(session.Screen)
	mounted  bool
	closed   bool
}

func (g *fakeGate) Mount(context.Context)         { g.mounted = true }
func (g *fakeGate) Screen() session.Screen        { return g.screen }
func (g *fakeGate) User() *models.User            { return g.user }
func (g *fakeGate) Watch(fn func(session.Screen)) { g.watchers = append(g.watchers, fn) }
func (g *fakeGate) Close()                        { g.closed = true }

type fakeLoader struct {
	items      []*models.Memory
	refreshErr error
	refreshes  int
	deleted    []string
	deleteErr  error
	resets     int
}

func (l *fakeLoader) Refresh(context.Context) ([]*models.Memory, error) {
	l.refreshes++
	return l.items, l.refreshErr
}

func (l *fakeLoader) Items() []*models.Memory { return l.items }

func (l *fakeLoader) Find(prefix string) *models.Memory {
	for _, m := range l.items {
		if strings.HasPrefix(m.ID, prefix) {
			return m
		}
	}
	return nil
}

func (l *fakeLoader) Delete(_ context.Context, id string) error {
	l.deleted = append(l.deleted, id)
	return l.deleteErr
}

func (l *fakeLoader) Reset() { l.resets++ }

type fakeSaver struct {
	draft  services.Draft
	states []services.State
	err    error
}

func (s *fakeSaver) Save(_ context.Context, d services.Draft, onState func(services.State)) (*models.Memory, error) {
	s.draft = d
	for _, st := range []services.State{services.StateValidating, services.StateUploading, services.StateInserting} {
		s.states = append(s.states, st)
		onState(st)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &models.Memory{ID: "m-new", Title: d.Title}, nil
}

type fakePicker struct {
	batches [][]models.PickedMedia
	errs    []error
	opts    []picker.Options
}

func (p *fakePicker) Pick(_ context.Context, opts picker.Options) ([]models.PickedMedia, error) {
	p.opts = append(p.opts, opts)
	if len(p.batches) == 0 {
		return nil, picker.ErrCanceled
	}
	b := p.batches[0]
	p.batches = p.batches[1:]
	var err error
	if len(p.errs) > 0 {
		err, p.errs = p.errs[0], p.errs[1:]
	}
	return b, err
}

type testApp struct {
	*App
	out    *bytes.Buffer
	auth   *fakeAuth
	gate   *fakeGate
	loader *fakeLoader
	saver  *fakeSaver
	picker *fakePicker
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	ta := &testApp{
		out:    &bytes.Buffer{},
		auth:   &fakeAuth{},
		gate:   &fakeGate{screen: session.ScreenMain, user: &models.User{ID: "u1", Email: "ann@example.com"}},
		loader: &fakeLoader{},
		saver:  &fakeSaver{},
		picker: &fakePicker{},
	}
	cfg := &config.Config{}
	cfg.LoadDefaults()

	ta.App = &App{
		config:   cfg,
		auth:     ta.auth,
		gate:     ta.gate,
		memories: ta.loader,
		saver:    ta.saver,
		picker:   ta.picker,
		logger:   logging.Nop(),
		reader:   bufio.NewReader(strings.NewReader(input)),
		out:      ta.out,
		mode:     ModeOffline,
	}
	return ta
}

func stubPassword(t *testing.T, pw string) *[]byte {
	t.Helper()
	var got []byte
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) {
		got = []byte(pw)
		return got, nil
	}
	t.Cleanup(func() { getPassword = orig })
	return &got
}
