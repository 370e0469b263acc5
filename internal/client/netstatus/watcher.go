package netstatus

import (
	"context"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/logging"
)

// Probe reports nil when the backend can be reached.
type Probe interface {
	Probe(ctx context.Context) error
}

type ProbeFunc func(ctx context.Context) error

func (f ProbeFunc) Probe(ctx context.Context) error { return f(ctx) }

// Watcher is the connectivity source of a Monitor: it runs a Probe on an
// interval and feeds every result into Monitor.Update.
type Watcher struct {
	monitor  *Monitor
	probe    Probe
	interval time.Duration
	timeout  time.Duration
	logger   logging.Logger
}

// DefaultInterval replaces a non-positive probe interval.
const DefaultInterval = 3 * time.Second

// NewWatcher builds a Watcher. A timeout <= 0 leaves each probe bounded only
// by the caller's context.
func NewWatcher(m *Monitor, p Probe, interval, timeout time.Duration, logger logging.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		monitor:  m,
		probe:    p,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("module", "netstatus"),
	}
}

// CheckNow probes once and reports the result to the monitor.
func (w *Watcher) CheckNow(ctx context.Context) bool {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	err := w.probe.Probe(ctx)
	online := err == nil

	if online != w.monitor.IsOnline() {
		w.logger.Info(ctx, "connectivity changed", "online", online, "error", err)
	}
	w.monitor.Update(online)
	return online
}

// Run probes immediately and then every interval until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	w.CheckNow(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.CheckNow(ctx)
		case <-ctx.Done():
			return
		}
	}
}
