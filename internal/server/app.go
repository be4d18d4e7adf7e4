// Package server wires the Memory Lane gateway: it opens the database, applies
// migrations, builds the services and runs the gRPC and HTTP servers until a
// termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/memorylane/internal/logging"
	"github.com/dmitrijs2005/memorylane/internal/server/config"
	"github.com/dmitrijs2005/memorylane/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/memorylane/internal/server/services"

	gs "github.com/dmitrijs2005/memorylane/internal/server/grpc"
	hs "github.com/dmitrijs2005/memorylane/internal/server/http"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	servers map[string]runner
}

var openDB = repomanager.OpenDB

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(os.Stdout, logging.FormatJSON, logging.ParseLevel(c.LogLevel))

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return newApp(c, logger, db, rm), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	us := services.NewUserService(db, rm, c)
	ms := services.NewMemoryService(db, rm)
	ss := services.NewStorageService(c)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		servers: map[string]runner{
			"grpc": gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, ms, ss, c.SecretKey),
			"http": hs.New(c.EndpointAddrHTTP, logger, ss),
		},
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until every server has stopped. A server that fails stops the others.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	for name, srv := range app.servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil {
				app.logger.Error(ctx, "server stopped", "server", name, "error", err)
				cancelFunc()
			}
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
