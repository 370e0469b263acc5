package storage

import (
	"context"

	"github.com/AHx92/my-workout-tracker/internal/client/models"
	"github.com/AHx92/my-workout-tracker/internal/client/repositories/metadata"
)

// Unavailable stands in for a Store that could not be opened. Every write and
// read fails with ErrStoreUnavailable (wrapping Cause), except GetCatalog,
// which returns an empty list.
type Unavailable struct {
	Cause error
}

func (u Unavailable) err() error {
	if u.Cause == nil {
		return ErrStoreUnavailable
	}
	return unavailable(u.Cause)
}

func (u Unavailable) Insert(context.Context, *models.Record) (int64, error) { return 0, u.err() }
func (u Unavailable) GetUnsynced(context.Context) ([]*models.Record, error) { return nil, u.err() }
func (u Unavailable) MarkSynced(context.Context, int64) error               { return u.err() }
func (u Unavailable) Records(context.Context) ([]*models.Record, error)     { return nil, u.err() }
func (u Unavailable) ReplaceCatalog(context.Context, string, []string) error {
	return u.err()
}
func (u Unavailable) GetCatalog(context.Context, string) []string { return []string{} }
func (u Unavailable) CatalogEntry(context.Context, string) (*models.CatalogEntry, error) {
	return nil, u.err()
}
func (u Unavailable) Metadata() metadata.Repository { return unavailableMetadata(u) }
func (u Unavailable) Close() error                  { return nil }

type unavailableMetadata Unavailable

func (m unavailableMetadata) Get(context.Context, string) ([]byte, error) {
	return nil, Unavailable(m).err()
}
func (m unavailableMetadata) Set(context.Context, string, []byte) error {
	return Unavailable(m).err()
}
func (m unavailableMetadata) Delete(context.Context, string) error {
	return Unavailable(m).err()
}
func (m unavailableMetadata) List(context.Context) (map[string][]byte, error) {
	return nil, Unavailable(m).err()
}
