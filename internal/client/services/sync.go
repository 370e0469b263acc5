package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/client/client"
	"github.com/AHx92/my-workout-tracker/internal/client/models"
	"github.com/AHx92/my-workout-tracker/internal/client/netstatus"
	"github.com/AHx92/my-workout-tracker/internal/client/repositories/metadata"
	"github.com/AHx92/my-workout-tracker/internal/client/trigger"
	"github.com/AHx92/my-workout-tracker/internal/logging"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var ErrAlreadyStarted = errors.New("sync service already started")

type SaveResult int

const (
	// SaveFailed means the workout is neither at the backend nor stored.
	SaveFailed SaveResult = iota
	// SaveSynced means the backend accepted the workout.
	SaveSynced
	// SaveOffline means the workout was stored for a later pass without
	// contacting the backend.
	SaveOffline
	// SaveDeferred means the backend rejected or could not be reached and the
	// workout was stored for a later pass.
	SaveDeferred
)

func (r SaveResult) String() string {
	switch r {
	case SaveSynced:
		return "synced"
	case SaveOffline:
		return "offline"
	case SaveDeferred:
		return "deferred"
	default:
		return "failed"
	}
}

// PassResult summarises one sync pass. Skipped is set when the pass did not
// run because the client was offline.
type PassResult struct {
	Skipped bool
	Synced  int
	Failed  int
}

const (
	sourceStartup   = "startup"
	sourceReconnect = "reconnect"
	sourceRetry     = "retry"

	passKey = "sync"
)

type SyncOption func(*SyncService)

func WithLogger(l logging.Logger) SyncOption {
	return func(s *SyncService) { s.logger = l.With("module", "sync") }
}

func WithNotifier(n Notifier) SyncOption {
	return func(s *SyncService) { s.notifier = n }
}

func WithClock(now func() time.Time) SyncOption {
	return func(s *SyncService) { s.now = now }
}

// WithRetryBackoff configures the delay before an automatic pass that follows
// a pass with failures: exponential from base, capped at max, at most
// attempts times in a row. attempts == 0 disables automatic retries.
func WithRetryBackoff(base, max time.Duration, attempts uint64) SyncOption {
	return func(s *SyncService) {
		s.retryBase = base
		s.retryMax = max
		s.retryAttempts = attempts
	}
}

// SyncService keeps the local store and the backend in step. Save decides per
// workout whether to submit now or store for later; sync passes replay
// unsynced records one at a time. At most one pass runs at any moment.
type SyncService struct {
	store    Store
	client   client.Client
	monitor  *netstatus.Monitor
	triggers *trigger.Channel
	logger   logging.Logger
	notifier Notifier
	now      func() time.Time

	retryBase     time.Duration
	retryMax      time.Duration
	retryAttempts uint64

	group singleflight.Group

	mu             sync.Mutex
	running        bool
	observedOnline bool
	backoff        retry.Backoff
	retryTimer     *time.Timer
	retryGen       uint64

	lifecycleMu sync.Mutex
	cancel      context.CancelFunc
	unsubscribe func()
	eg          *errgroup.Group
}

func NewSyncService(store Store, c client.Client, monitor *netstatus.Monitor, triggers *trigger.Channel, opts ...SyncOption) *SyncService {
	s := &SyncService{
		store:         store,
		client:        c,
		monitor:       monitor,
		triggers:      triggers,
		logger:        logging.Discard().With("module", "sync"),
		notifier:      nopNotifier{},
		now:           time.Now,
		retryBase:     2 * time.Second,
		retryMax:      2 * time.Minute,
		retryAttempts: 5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start subscribes to connectivity changes and starts the loop that runs a
// pass for every sync request. When the client is already online a startup
// pass is requested right away.
func (s *SyncService) Start(ctx context.Context) error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	online := s.monitor.IsOnline()
	s.mu.Lock()
	s.running = true
	s.observedOnline = online
	s.mu.Unlock()

	s.unsubscribe = s.monitor.Subscribe(s.onConnectivity)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.loop(gctx)
		return nil
	})
	s.eg = g

	s.logger.Info(ctx, "sync service started", "online", online)

	if online {
		s.triggers.RequestSync(sourceStartup)
	}
	return nil
}

// Stop cancels the loop and waits for it. A pass in flight sees its context
// cancelled. Stop is a no-op on a service that is not running.
func (s *SyncService) Stop() {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if s.cancel == nil {
		return
	}

	s.unsubscribe()
	s.cancel()
	_ = s.eg.Wait()

	s.mu.Lock()
	s.running = false
	s.stopRetryLocked()
	s.mu.Unlock()

	s.cancel = nil
	s.unsubscribe = nil
	s.eg = nil
}

func (s *SyncService) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-s.triggers.Messages():
			if !ok {
				return
			}
			if msg.Type != trigger.MessageSyncRequested {
				s.logger.Debug(ctx, "ignoring message", "type", msg.Type)
				continue
			}

			s.logger.Debug(ctx, "sync requested", "source", msg.Source)
			res, err := s.SyncNow(ctx)
			if ctx.Err() != nil {
				return
			}
			s.scheduleRetry(ctx, res, err)
		}
	}
}

// onConnectivity requests a pass only when the observed state moves from
// offline to online. Repeated "online" events are ignored.
func (s *SyncService) onConnectivity(ev netstatus.Event) {
	online := ev.Kind == netstatus.WentOnline

	s.mu.Lock()
	wasOnline := s.observedOnline
	s.observedOnline = online
	if !online {
		s.stopRetryLocked()
	}
	s.mu.Unlock()

	ctx := context.Background()

	switch {
	case online && !wasOnline:
		s.logger.Info(ctx, "back online, requesting sync")
		s.notify(ctx, LevelInfo, "Back online, syncing")
		s.triggers.RequestSync(sourceReconnect)
	case !online && wasOnline:
		s.logger.Info(ctx, "went offline")
		s.notify(ctx, LevelWarning, "Offline: workouts will be saved locally")
	}
}

// Save records one workout. Offline it is stored unsynced without touching
// the network. Online it is submitted first and stored as synced after the
// backend accepts it, or stored unsynced when the submission fails. Network
// failures never surface as errors; only a store failure for a workout that
// did not reach the backend does.
func (s *SyncService) Save(ctx context.Context, w models.Workout) (SaveResult, error) {
	if err := w.Validate(); err != nil {
		return SaveFailed, err
	}

	rec := models.NewRecord(w, s.now())

	if !s.monitor.IsOnline() {
		if err := s.insert(ctx, rec); err != nil {
			return SaveFailed, fmt.Errorf("save workout offline: %w", err)
		}
		s.notify(ctx, LevelInfo, "Workout saved offline, pending sync")
		return SaveOffline, nil
	}

	if _, err := s.client.Submit(ctx, rec); err != nil {
		s.logger.Warn(ctx, "submission failed, keeping workout for later", "error", err)

		if err := s.insert(ctx, rec); err != nil {
			return SaveFailed, fmt.Errorf("save workout after failed submission: %w", err)
		}
		s.notify(ctx, LevelWarning, "Saved locally, will sync later")
		s.scheduleRetry(ctx, PassResult{Failed: 1}, nil)
		return SaveDeferred, nil
	}

	rec.Synced = true
	if err := s.insert(ctx, rec); err != nil {
		s.logger.Warn(ctx, "workout synced but local copy not stored", "error", err)
	}
	s.notify(ctx, LevelSuccess, "Workout synced")
	return SaveSynced, nil
}

func (s *SyncService) insert(ctx context.Context, rec *models.Record) error {
	id, err := s.store.Insert(ctx, rec)
	if err != nil {
		return err
	}
	rec.ID = id
	return nil
}

// SyncNow runs a sync pass, or joins the one already in flight.
func (s *SyncService) SyncNow(ctx context.Context) (PassResult, error) {
	v, err, shared := s.group.Do(passKey, func() (any, error) {
		return s.runPass(ctx)
	})
	if shared {
		s.logger.Debug(ctx, "joined sync pass in flight")
	}

	res, _ := v.(PassResult)
	return res, err
}

func (s *SyncService) runPass(ctx context.Context) (PassResult, error) {
	if !s.monitor.IsOnline() {
		s.logger.Debug(ctx, "offline, sync pass skipped")
		return PassResult{Skipped: true}, nil
	}

	pending, err := s.store.GetUnsynced(ctx)
	if err != nil {
		s.notify(ctx, LevelError, "Sync failed: local store unavailable")
		return PassResult{}, fmt.Errorf("load unsynced records: %w", err)
	}

	if len(pending) == 0 {
		s.logger.Debug(ctx, "nothing to sync")
		s.notify(ctx, LevelInfo, "All workouts synced")
		s.touchLastSync(ctx)
		return PassResult{}, nil
	}

	s.logger.Info(ctx, "sync pass started", "pending", len(pending))

	var res PassResult
	for _, rec := range pending {
		if _, err := s.client.Submit(ctx, rec); err != nil {
			res.Failed++
			s.logger.Warn(ctx, "record not synced", "id", rec.ID, "error", err)
			continue
		}
		if err := s.store.MarkSynced(ctx, rec.ID); err != nil {
			res.Failed++
			s.logger.Error(ctx, "record submitted but not marked synced", "id", rec.ID, "error", err)
			continue
		}
		res.Synced++
	}

	s.logger.Info(ctx, "sync pass finished", "synced", res.Synced, "failed", res.Failed)

	if res.Failed == 0 {
		s.notify(ctx, LevelSuccess, fmt.Sprintf("Synced %d workout(s)", res.Synced))
		s.touchLastSync(ctx)
	} else {
		s.notify(ctx, LevelWarning, fmt.Sprintf("Sync finished: synced=%d failed=%d", res.Synced, res.Failed))
		if res.Synced > 0 {
			s.touchLastSync(ctx)
		}
	}

	return res, nil
}

func (s *SyncService) touchLastSync(ctx context.Context) {
	if err := metadata.SetTime(ctx, s.store.Metadata(), metadata.KeyLastSyncAt, s.now()); err != nil {
		s.logger.Warn(ctx, "failed to record last sync time", "error", err)
	}
}

// LastSyncAt returns the time of the last pass that synced anything or found
// nothing to sync. The zero time means never.
func (s *SyncService) LastSyncAt(ctx context.Context) (time.Time, error) {
	return metadata.GetTime(ctx, s.store.Metadata(), metadata.KeyLastSyncAt)
}

func (s *SyncService) Pending(ctx context.Context) ([]*models.Record, error) {
	return s.store.GetUnsynced(ctx)
}

// History returns every stored record, synced or not, oldest first.
func (s *SyncService) History(ctx context.Context) ([]*models.Record, error) {
	return s.store.Records(ctx)
}

// scheduleRetry arms a delayed sync request after a pass with failures, and
// resets the backoff after a clean one.
func (s *SyncService) scheduleRetry(ctx context.Context, res PassResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.Skipped || (err == nil && res.Failed == 0) {
		s.backoff = nil
		s.stopRetryLocked()
		return
	}

	if !s.running || s.retryAttempts == 0 || s.retryBase <= 0 || !s.observedOnline || s.retryTimer != nil {
		return
	}

	if s.backoff == nil {
		s.backoff = s.newBackoff()
	}

	delay, stop := s.backoff.Next()
	if stop {
		s.logger.Warn(ctx, "automatic sync retries exhausted")
		s.backoff = nil
		return
	}

	s.logger.Debug(ctx, "sync retry scheduled", "in", delay)
	s.retryGen++
	gen := s.retryGen
	s.retryTimer = time.AfterFunc(delay, func() { s.retryFired(gen) })
}

// retryFired posts the retry request of timer gen unless that timer was
// stopped or replaced in the meantime.
func (s *SyncService) retryFired(gen uint64) {
	s.mu.Lock()
	current := s.retryTimer != nil && s.retryGen == gen
	if current {
		s.retryTimer = nil
	}
	s.mu.Unlock()

	if current {
		s.triggers.RequestSync(sourceRetry)
	}
}

func (s *SyncService) newBackoff() retry.Backoff {
	b := retry.NewExponential(s.retryBase)
	if s.retryMax > 0 {
		b = retry.WithCappedDuration(s.retryMax, b)
	}
	return retry.WithMaxRetries(s.retryAttempts, b)
}

func (s *SyncService) stopRetryLocked() {
	if s.retryTimer != nil {
		s.retryTimer.Stop()
		s.retryTimer = nil
	}
}

func (s *SyncService) notify(ctx context.Context, level Level, msg string) {
	s.notifier.Notify(ctx, Notification{Level: level, Message: msg, At: s.now()})
}
