// Package catalog persists cached reference lists (e.g. the exercise names)
// fetched from the backend.
package catalog

import (
	"context"

	"github.com/AHx92/my-workout-tracker/internal/client/models"
)

// Repository stores at most one entry per catalog name.
type Repository interface {
	// Get returns common.ErrorNotFound when no entry is cached under name.
	Get(ctx context.Context, name string) (*models.CatalogEntry, error)
	Delete(ctx context.Context, name string) error
	Insert(ctx context.Context, entry *models.CatalogEntry) error
}
