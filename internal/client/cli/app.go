package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"

	"github.com/AHx92/my-workout-tracker/internal/client/client"
	"github.com/AHx92/my-workout-tracker/internal/client/config"
	"github.com/AHx92/my-workout-tracker/internal/client/netstatus"
	"github.com/AHx92/my-workout-tracker/internal/client/services"
	"github.com/AHx92/my-workout-tracker/internal/client/storage"
	"github.com/AHx92/my-workout-tracker/internal/client/trigger"
	"github.com/AHx92/my-workout-tracker/internal/filex"
	"github.com/AHx92/my-workout-tracker/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger

	store    services.Store
	degraded bool
	closers  []io.Closer

	monitor  *netstatus.Monitor
	watcher  *netstatus.Watcher
	triggers *trigger.Channel
	api      *client.HTTPClient

	syncService    *services.SyncService
	catalogService *services.CatalogService
	accessService  *services.AccessService

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the client. A local store that cannot be opened is not fatal:
// the app runs without persistence and online saves still reach the backend.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.APIURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:   c,
		logger:   logger.With("module", "cli"),
		monitor:  netstatus.NewMonitor(false),
		triggers: trigger.New(),
		api:      apiClient,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	st, err := openStore(ctx, c.DatabasePath, logger)
	if err != nil {
		a.logger.Error(ctx, "local store unavailable, running without persistence", "path", c.DatabasePath, "error", err)
		a.store = storage.Unavailable{Cause: err}
		a.degraded = true
	} else {
		a.store = st
		a.closers = append(a.closers, st)
	}

	probe, err := a.newProbe()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.watcher = netstatus.NewWatcher(a.monitor, probe, c.OnlineCheckInterval, c.RequestTimeout, logger)

	a.syncService = services.NewSyncService(a.store, apiClient, a.monitor, a.triggers,
		services.WithLogger(logger),
		services.WithNotifier(a.notifier()),
		services.WithRetryBackoff(c.RetryBaseDelay, c.RetryMaxDelay, c.RetryMaxAttempts),
	)
	a.catalogService = services.NewCatalogService(a.store, apiClient, a.monitor, logger)
	a.accessService = services.NewAccessService(a.store, apiClient, a.monitor, apiClient, logger)

	if c.AccessToken != "" {
		apiClient.SetToken(c.AccessToken)
	} else if _, err := a.accessService.RestoreToken(ctx); err != nil && !a.degraded {
		a.logger.Warn(ctx, "failed to restore saved token", "error", err)
	}

	return a, nil
}

func openStore(ctx context.Context, path string, logger logging.Logger) (*storage.Store, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}
	return storage.Open(ctx, path, logger)
}

func (a *App) newProbe() (netstatus.Probe, error) {
	if a.config.ProbeMode == config.ProbeGRPC {
		p, err := netstatus.NewGRPCHealthProbe(a.config.HealthAddr, "")
		if err != nil {
			return nil, fmt.Errorf("health probe: %w", err)
		}
		a.closers = append(a.closers, p)
		return p, nil
	}
	return netstatus.HTTPProbe{URL: a.config.APIURL}, nil
}

// notifier prints sync notifications. They arrive from background goroutines,
// so writes are serialised.
func (a *App) notifier() services.Notifier {
	var mu sync.Mutex
	return services.NotifierFunc(func(ctx context.Context, n services.Notification) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(a.out, "[%s] %s\n", n.Level, n.Message)
	})
}

// Run probes connectivity, starts background work and blocks in the REPL
// until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.watcher.CheckNow(ctx)

	if err := a.syncService.Start(ctx); err != nil {
		return err
	}
	defer a.syncService.Stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.watcher.Run(ctx)
	}()
	defer wg.Wait()
	defer cancel()

	trigger.NotifyOnSignal(ctx, a.triggers, syscall.SIGUSR1)

	if _, err := a.catalogService.Refresh(ctx); err != nil {
		a.logger.Debug(ctx, "catalog not refreshed", "error", err)
	}

	printlnFn(fmt.Sprintf("Workout tracker (pid %d). Type 'help' for commands.", os.Getpid()))
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
	return nil
}

func (a *App) status() string {
	s := "offline"
	if a.monitor.IsOnline() {
		s = "online"
	}
	if a.degraded {
		s += ", no local store"
	}
	return s
}

// Close releases the store and the probe connection.
func (a *App) Close() error {
	a.triggers.Close()

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
