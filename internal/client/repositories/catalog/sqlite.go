package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/client/models"
	"github.com/AHx92/my-workout-tracker/internal/common"
	"github.com/AHx92/my-workout-tracker/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (*models.CatalogEntry, error) {
	var data, ts string
	err := r.db.QueryRowContext(ctx, `SELECT data, timestamp FROM catalog WHERE name = ?`, name).Scan(&data, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog[%s]: %w", name, err)
	}

	entry := &models.CatalogEntry{Name: name}
	if err := json.Unmarshal([]byte(data), &entry.Items); err != nil {
		return nil, fmt.Errorf("catalog[%s] has malformed data: %w", name, err)
	}
	if entry.CachedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
		return nil, fmt.Errorf("catalog[%s] has malformed timestamp: %w", name, err)
	}
	return entry, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM catalog WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete catalog[%s]: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, entry *models.CatalogEntry) error {
	items := entry.Items
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode catalog[%s]: %w", entry.Name, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO catalog (name, data, timestamp) VALUES (?, ?, ?)`,
		entry.Name, string(data), entry.CachedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert catalog[%s]: %w", entry.Name, err)
	}
	return nil
}
