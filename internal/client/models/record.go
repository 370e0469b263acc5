package models

import "time"

// Record is one workout as persisted in the local store. ID is assigned by
// the store; Synced only ever moves from false to true.
type Record struct {
	ID        int64
	Payload   Workout
	Timestamp string
	Synced    bool
}

// NewRecord wraps a workout in an unsaved, unsynced record stamped with now
// (UTC, RFC 3339).
func NewRecord(w Workout, now time.Time) *Record {
	return &Record{
		Payload:   w,
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

// CatalogExercises is the catalog name under which the exercise list is cached.
const CatalogExercises = "exercises"

// CatalogEntry is a named list cached from the backend, replaced wholesale on
// every refresh.
type CatalogEntry struct {
	Name     string
	Items    []string
	CachedAt time.Time
}
