package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AHx92/my-workout-tracker/internal/dbx"
	"github.com/AHx92/my-workout-tracker/internal/server/migrations"
	"github.com/AHx92/my-workout-tracker/internal/server/repositories/exercises"
	"github.com/AHx92/my-workout-tracker/internal/server/repositories/workouts"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories and runs the
// embedded migrations.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Workouts(db dbx.DBTX) workouts.Repository {
	return workouts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Exercises(db dbx.DBTX) exercises.Repository {
	return exercises.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// OpenPostgres connects to dsn through the pgx stdlib driver and checks the
// connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}
