// Package exercises serves the exercise database.
package exercises

import (
	"context"
	"fmt"

	"github.com/AHx92/my-workout-tracker/internal/dbx"
	"github.com/AHx92/my-workout-tracker/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the catalog ordered by name. The table is seeded by migrations.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.CatalogExercise, error) {
	query :=
		`SELECT name, muscle_group FROM exercises
		 ORDER BY name
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.CatalogExercise{}
	for rows.Next() {
		e := &models.CatalogExercise{}
		if err := rows.Scan(&e.Name, &e.MuscleGroup); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
