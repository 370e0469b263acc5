package records

import (
	"context"

	"github.com/AHx92/my-workout-tracker/internal/client/models"
)

// Repository persists workout records. Records are append-only: the only
// mutation after Insert is MarkSynced.
type Repository interface {
	// Insert stores r, assigns r.ID and returns it.
	Insert(ctx context.Context, r *models.Record) (int64, error)

	// GetUnsynced returns every record with synced=false in ascending ID order.
	// Rows whose payload does not decode are left out.
	GetUnsynced(ctx context.Context) ([]*models.Record, error)

	// MarkSynced flips synced to true. Unknown IDs are ignored.
	MarkSynced(ctx context.Context, id int64) error

	// GetAll returns the full audit trail in ascending ID order.
	GetAll(ctx context.Context) ([]*models.Record, error)

	// GetByID returns common.ErrorNotFound for unknown IDs.
	GetByID(ctx context.Context, id int64) (*models.Record, error)
}
