// Package server wires the reference backend: storage, the JSON API and the
// gRPC health service, with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/logging"
	"github.com/AHx92/my-workout-tracker/internal/server/config"
	"github.com/AHx92/my-workout-tracker/internal/server/httpapi"
	"github.com/AHx92/my-workout-tracker/internal/server/repositories/repomanager"
	"github.com/AHx92/my-workout-tracker/internal/server/services"

	gs "github.com/AHx92/my-workout-tracker/internal/server/grpc"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	healthInterval  = 5 * time.Second
)

type App struct {
	config *config.Config
	logger logging.Logger

	db      *sql.DB
	manager repomanager.RepositoryManager

	workoutService *services.WorkoutService
	catalogService *services.CatalogService
	accessService  *services.AccessService

	health *gs.HealthServer

	mu       sync.Mutex
	httpAddr net.Addr
	ready    chan struct{}
}

// NewApp connects storage and builds the services. Without a DSN the
// backend keeps everything in memory.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	app := &App{
		config: c,
		logger: logger.With("module", "server"),
		ready:  make(chan struct{}),
	}

	if c.DatabaseDSN == "" {
		app.logger.Warn(ctx, "no database configured, data is kept in memory")
		app.manager = repomanager.NewInMemoryRepositoryManager()
	} else {
		db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		m := repomanager.NewPostgresRepositoryManager()
		if err := m.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.db = db
		app.manager = m
	}

	app.workoutService = services.NewWorkoutService(app.db, app.manager, logger)
	app.catalogService = services.NewCatalogService(app.db, app.manager)
	app.accessService = services.NewAccessService(c)
	app.health = gs.NewHealthServer(c.HealthAddr, logger)

	return app, nil
}

// IssueToken signs a development token for email with the configured secret.
func (app *App) IssueToken(email string) (string, error) {
	return app.accessService.IssueToken(email)
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context) error {
	lis, err := net.Listen("tcp", app.config.HTTPAddr)
	if err != nil {
		return err
	}

	h := httpapi.NewHandler(app.workoutService, app.catalogService, app.accessService, app.logger)
	srv := &http.Server{
		Handler:      h.Router(requestTimeout),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	app.mu.Lock()
	app.httpAddr = lis.Addr()
	app.mu.Unlock()
	close(app.ready)

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			app.logger.Error(ctx, "http shutdown", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Ready is closed once the HTTP listener is bound.
func (app *App) Ready() <-chan struct{} {
	return app.ready
}

// HTTPAddr is the bound HTTP address, nil before Ready.
func (app *App) HTTPAddr() net.Addr {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.httpAddr
}

// Run serves until ctx is cancelled, a termination signal arrives or a
// server fails. The first server error is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		app.logger.Error(ctx, err.Error())
		errOnce.Do(func() { firstErr = err })
		cancelFunc()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := app.startHTTPServer(ctx); err != nil {
			fail(fmt.Errorf("http server: %w", err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := app.health.Run(ctx); err != nil {
			fail(fmt.Errorf("health server: %w", err))
		}
	}()

	if app.db != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.health.Watch(ctx, app.db.PingContext, healthInterval)
		}()
	}

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return firstErr
}

func (app *App) Close() error {
	if app.db != nil {
		return app.db.Close()
	}
	return nil
}
