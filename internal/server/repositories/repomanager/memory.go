package repomanager

import (
	"context"
	"database/sql"

	"github.com/AHx92/my-workout-tracker/internal/dbx"
	"github.com/AHx92/my-workout-tracker/internal/server/repositories/exercises"
	"github.com/AHx92/my-workout-tracker/internal/server/repositories/workouts"
)

// InMemoryRepositoryManager hands out the same process-local repositories on
// every call. The db argument is ignored.
type InMemoryRepositoryManager struct {
	workouts  *workouts.MemoryRepository
	exercises *exercises.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		workouts:  workouts.NewMemoryRepository(),
		exercises: exercises.NewMemoryRepository(nil),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Workouts(db dbx.DBTX) workouts.Repository {
	return m.workouts
}

func (m *InMemoryRepositoryManager) Exercises(db dbx.DBTX) exercises.Repository {
	return m.exercises
}
