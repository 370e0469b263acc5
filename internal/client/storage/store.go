// Package storage is the durable local store of the client: workout records
// with their synced flag, cached catalogs and key/value metadata, kept in a
// single SQLite database that survives restarts.
//
// Every failure of the underlying database is reported wrapped in
// ErrStoreUnavailable so callers can fall back to running without
// persistence instead of crashing.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/client/migrations"
	"github.com/AHx92/my-workout-tracker/internal/client/models"
	"github.com/AHx92/my-workout-tracker/internal/client/repositories/catalog"
	"github.com/AHx92/my-workout-tracker/internal/client/repositories/metadata"
	"github.com/AHx92/my-workout-tracker/internal/client/repositories/records"
	"github.com/AHx92/my-workout-tracker/internal/common"
	"github.com/AHx92/my-workout-tracker/internal/dbx"
	"github.com/AHx92/my-workout-tracker/internal/logging"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

var ErrStoreUnavailable = errors.New("local store unavailable")

// goose keeps its base FS and dialect in package globals.
var migrateMu sync.Mutex

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// RunMigrations applies the embedded schema. It is idempotent: goose records
// applied versions, so the schema is created once per database file.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

type Store struct {
	db       *sql.DB
	records  *records.SQLiteRepository
	metadata *metadata.SQLiteRepository
	logger   logging.Logger
	now      func() time.Time
}

// Open opens (creating if needed) the database at dsn and migrates it.
// Opening the same file again is safe.
func Open(ctx context.Context, dsn string, logger logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, unavailable(err)
	}
	// One connection serialises writers and keeps ":memory:" databases alive.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, unavailable(err)
	}

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, unavailable(err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, unavailable(fmt.Errorf("migrations: %w", err))
	}

	st := &Store{
		db:       db,
		records:  records.NewSQLiteRepository(db),
		metadata: metadata.NewSQLiteRepository(db),
		logger:   logger.With("module", "storage"),
		now:      time.Now,
	}
	st.records.OnMalformed(func(id int64, err error) {
		st.logger.Warn(context.Background(), "skipping unreadable record", "id", id, "error", err)
	})
	return st, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Insert persists r and returns its store-assigned ID.
func (s *Store) Insert(ctx context.Context, r *models.Record) (int64, error) {
	id, err := s.records.Insert(ctx, r)
	if err != nil {
		return 0, unavailable(err)
	}
	return id, nil
}

func (s *Store) GetUnsynced(ctx context.Context) ([]*models.Record, error) {
	recs, err := s.records.GetUnsynced(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	return recs, nil
}

// MarkSynced is a no-op for IDs that do not exist.
func (s *Store) MarkSynced(ctx context.Context, id int64) error {
	if err := s.records.MarkSynced(ctx, id); err != nil {
		return unavailable(err)
	}
	return nil
}

// Records returns the whole audit trail, synced or not.
func (s *Store) Records(ctx context.Context) ([]*models.Record, error) {
	recs, err := s.records.GetAll(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	return recs, nil
}

// ReplaceCatalog clears the named catalog and stores items in its place,
// atomically. Items are never merged with the previous list.
func (s *Store) ReplaceCatalog(ctx context.Context, name string, items []string) error {
	entry := &models.CatalogEntry{Name: name, Items: items, CachedAt: s.now()}

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := catalog.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, name); err != nil {
			return err
		}
		return repo.Insert(ctx, entry)
	})
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// GetCatalog returns the cached items, or an empty list when nothing is
// cached or the store cannot be read.
func (s *Store) GetCatalog(ctx context.Context, name string) []string {
	entry, err := s.CatalogEntry(ctx, name)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "catalog read failed", "catalog", name, "error", err)
		}
		return []string{}
	}
	return entry.Items
}

// CatalogEntry returns the cached entry including its cache time, or
// common.ErrorNotFound.
func (s *Store) CatalogEntry(ctx context.Context, name string) (*models.CatalogEntry, error) {
	entry, err := catalog.NewSQLiteRepository(s.db).Get(ctx, name)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return entry, nil
}

func (s *Store) Metadata() metadata.Repository {
	return s.metadata
}
