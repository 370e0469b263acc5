// Package repomanager picks the storage backend of the reference backend:
// PostgreSQL when a DSN is configured, process memory otherwise.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/AHx92/my-workout-tracker/internal/dbx"
	"github.com/AHx92/my-workout-tracker/internal/server/repositories/exercises"
	"github.com/AHx92/my-workout-tracker/internal/server/repositories/workouts"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Workouts(db dbx.DBTX) workouts.Repository
	Exercises(db dbx.DBTX) exercises.Repository
}
