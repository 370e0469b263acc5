package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/AHx92/my-workout-tracker/internal/client/client"
	"github.com/AHx92/my-workout-tracker/internal/client/models"
	"github.com/AHx92/my-workout-tracker/internal/client/storage"
	"github.com/AHx92/my-workout-tracker/internal/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

/*************
 * Fake backend client
 *************/

type fakeClient struct {
	mu sync.Mutex

	submitCalls int
	submitted   []string
	// submitFn decides the outcome of the n-th submission (1-based).
	submitFn func(n int, r *models.Record) error

	catalog      []string
	catalogErr   error
	catalogCalls int

	access      *client.AccessInfo
	accessErr   error
	accessCalls int
}

func (f *fakeClient) Submit(ctx context.Context, r *models.Record) (*client.Ack, error) {
	f.mu.Lock()
	f.submitCalls++
	n := f.submitCalls
	fn := f.submitFn
	f.mu.Unlock()

	if fn != nil {
		if err := fn(n, r); err != nil {
			return nil, err
		}
	}

	f.mu.Lock()
	f.submitted = append(f.submitted, r.Payload.Name)
	f.mu.Unlock()
	return &client.Ack{Status: "ok"}, nil
}

func (f *fakeClient) FetchCatalog(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalogCalls++
	return f.catalog, f.catalogErr
}

func (f *fakeClient) CheckAccess(ctx context.Context) (*client.AccessInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accessCalls++
	return f.access, f.accessErr
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitCalls
}

func (f *fakeClient) accepted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.submitted...)
}

func submissionFailed() error {
	return &client.SubmissionError{Action: client.ActionSubmitWorkout, StatusCode: 500}
}

/*************
 * Store helpers
 *************/

// countingStore counts sync passes that reached the store.
type countingStore struct {
	Store
	unsyncedReads atomic.Int32
}

func (c *countingStore) GetUnsynced(ctx context.Context) ([]*models.Record, error) {
	c.unsyncedReads.Add(1)
	return c.Store.GetUnsynced(ctx)
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	s, _ := openStoreAt(t)
	return s
}

func openStoreAt(t *testing.T) (*storage.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workouts.db")
	s, err := storage.Open(context.Background(), path, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

// insertRawPayload writes a record row behind the store's back.
func insertRawPayload(t *testing.T, path, payload string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`INSERT INTO records (payload, timestamp, synced) VALUES (?, ?, 0)`, payload, "2026-10-01T10:00:00Z")
	require.NoError(t, err)
}

func workout(name string) models.Workout {
	return models.Workout{
		Name:      name,
		Date:      "2026-10-01",
		Exercises: []models.Exercise{{Name: "Squat", Sets: []models.Set{{Reps: 5, Weight: 100}}}},
	}
}

// seedPending stores unsynced records directly, bypassing the service.
func seedPending(t *testing.T, s Store, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := s.Insert(context.Background(), &models.Record{Payload: workout(name), Timestamp: "2026-10-01T10:00:00Z"})
		require.NoError(t, err)
	}
}

func pendingNames(t *testing.T, s Store) []string {
	t.Helper()
	recs, err := s.GetUnsynced(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r.Payload.Name)
	}
	return names
}

type recordingNotifier struct {
	mu   sync.Mutex
	seen []Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, n Notification) {
	r.mu.Lock()
	r.seen = append(r.seen, n)
	r.mu.Unlock()
}

func (r *recordingNotifier) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.seen))
	for _, n := range r.seen {
		out = append(out, n.Message)
	}
	return out
}

// verifyNoLeaks ignores the connection opener of databases that t.Cleanup
// closes after the test body returns.
func verifyNoLeaks(t *testing.T) {
	goleak.VerifyNone(t, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}
