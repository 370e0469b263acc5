package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AHx92/my-workout-tracker/internal/server/repositories/repomanager"
)

type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m}
}

// ExerciseNames returns the names of the exercise database, sorted.
func (s *CatalogService) ExerciseNames(ctx context.Context) ([]string, error) {
	items, err := s.repomanager.Exercises(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	names := make([]string, 0, len(items))
	for _, e := range items {
		names = append(names, e.Name)
	}
	return names, nil
}
