package services

import (
	"context"

	"github.com/AHx92/my-workout-tracker/internal/client/models"
	"github.com/AHx92/my-workout-tracker/internal/client/repositories/metadata"
)

// Store is the durable local store as seen by the services. Both
// *storage.Store and storage.Unavailable satisfy it.
type Store interface {
	Insert(ctx context.Context, r *models.Record) (int64, error)
	GetUnsynced(ctx context.Context) ([]*models.Record, error)
	MarkSynced(ctx context.Context, id int64) error
	Records(ctx context.Context) ([]*models.Record, error)
	ReplaceCatalog(ctx context.Context, name string, items []string) error
	GetCatalog(ctx context.Context, name string) []string
	CatalogEntry(ctx context.Context, name string) (*models.CatalogEntry, error)
	Metadata() metadata.Repository
}
