package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/memorylane/internal/client/client"
	"github.com/dmitrijs2005/memorylane/internal/client/config"
	"github.com/dmitrijs2005/memorylane/internal/client/models"
	"github.com/dmitrijs2005/memorylane/internal/client/picker"
	"github.com/dmitrijs2005/memorylane/internal/client/services"
	"github.com/dmitrijs2005/memorylane/internal/client/session"
	"github.com/dmitrijs2005/memorylane/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// gate is the part of session.Gate the screens depend on.
type gate interface {
	Mount(ctx context.Context)
	Screen() session.Screen
	User() *models.User
	Watch(fn func(session.Screen))
	Close()
}

type memoryList interface {
	Refresh(ctx context.Context) ([]*models.Memory, error)
	Items() []*models.Memory
	Find(prefix string) *models.Memory
	Delete(ctx context.Context, id string) error
	Reset()
}

type memorySaver interface {
	Save(ctx context.Context, d services.Draft, onState func(services.State)) (*models.Memory, error)
}

type mediaPicker interface {
	Pick(ctx context.Context, opts picker.Options) ([]models.PickedMedia, error)
}

type App struct {
	config   *config.Config
	auth     services.AuthService
	gate     gate
	memories memoryList
	saver    memorySaver
	picker   mediaPicker
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	db       io.Closer

	mu   sync.Mutex
	mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.New(os.Stderr, logging.FormatText, logging.ParseLevel(c.LogLevel))

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewMemoryLaneClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	auth := services.NewAuthService(apiClient, db, logger)
	uploader := services.NewUploader(
		services.NewPresignedStore(apiClient),
		apiClient,
		auth,
		services.WithConcurrency(c.UploadConcurrency),
		services.WithOrdering(uploadOrdering(c.UploadOrder)),
		services.WithLogger(logger),
	)

	a := &App{
		config:   c,
		auth:     auth,
		gate:     session.NewGate(auth),
		memories: services.NewLoader(apiClient, auth),
		saver:    uploader,
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		db:       db,
		mode:     ModeOffline,
	}
	a.picker = picker.New(func(prompt string) (string, error) {
		return getSimpleText(a.reader, prompt, a.out)
	})

	return a, nil
}

func uploadOrdering(order string) services.Ordering {
	if order == config.OrderPick {
		return services.OrderPickOrder
	}
	return services.OrderCoverFirst
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connection mode changed", "mode", mode)
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// onScreen follows the session gate: entering the main screen reloads the list.
func (a *App) onScreen(ctx context.Context) func(session.Screen) {
	return func(s session.Screen) {
		switch s {
		case session.ScreenMain:
			if u := a.gate.User(); u != nil {
				success(a.out, "Signed in as %s", u.Email)
			}
			_ = a.List(ctx)
		case session.ScreenAuth:
			a.memories.Reset()
			faintText.Fprintln(a.out, "Signed out. Use 'login' or 'register'.")
		}
	}
}

func (a *App) status() string {
	mode := a.currentMode()
	if u := a.gate.User(); u != nil {
		return fmt.Sprintf("%s, %s", u.Email, mode)
	}
	return string(mode)
}

func (a *App) screen() session.Screen {
	return a.gate.Screen()
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.auth.Close(ctx); err != nil {
			a.logger.Warn(ctx, "close error", "error", err)
		}
		if a.db != nil {
			if err := a.db.Close(); err != nil {
				a.logger.Warn(ctx, "db close error", "error", err)
			}
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.gate.Watch(a.onScreen(ctx))
	a.gate.Mount(ctx)
	defer a.gate.Close()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.status, a.reader, a.out)
}
