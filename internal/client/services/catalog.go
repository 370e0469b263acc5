package services

import (
	"context"
	"fmt"

	"github.com/AHx92/my-workout-tracker/internal/client/client"
	"github.com/AHx92/my-workout-tracker/internal/client/models"
	"github.com/AHx92/my-workout-tracker/internal/client/netstatus"
	"github.com/AHx92/my-workout-tracker/internal/logging"
)

// CatalogService keeps the cached exercise list fresh. Reads always come from
// the cache, so they work offline.
type CatalogService struct {
	store   Store
	client  client.Client
	monitor *netstatus.Monitor
	logger  logging.Logger
}

func NewCatalogService(store Store, c client.Client, monitor *netstatus.Monitor, logger logging.Logger) *CatalogService {
	return &CatalogService{store: store, client: c, monitor: monitor, logger: logger.With("module", "catalog")}
}

// Refresh replaces the cached exercise list with the backend's. It reports
// false when nothing was refreshed; the cache is then left as it was.
func (s *CatalogService) Refresh(ctx context.Context) (bool, error) {
	if !s.monitor.IsOnline() {
		return false, nil
	}

	items, err := s.client.FetchCatalog(ctx)
	if err != nil {
		s.logger.Warn(ctx, "catalog fetch failed, keeping cache", "error", err)
		return false, fmt.Errorf("fetch exercises: %w", err)
	}

	if err := s.store.ReplaceCatalog(ctx, models.CatalogExercises, items); err != nil {
		return false, fmt.Errorf("cache exercises: %w", err)
	}

	s.logger.Debug(ctx, "catalog refreshed", "items", len(items))
	return true, nil
}

func (s *CatalogService) Exercises(ctx context.Context) []string {
	return s.store.GetCatalog(ctx, models.CatalogExercises)
}
