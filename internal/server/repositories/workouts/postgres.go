// Package workouts stores accepted workout submissions.
package workouts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AHx92/my-workout-tracker/internal/dbx"
	"github.com/AHx92/my-workout-tracker/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores w. The exercises are kept as one JSONB document.
func (r *PostgresRepository) Insert(ctx context.Context, w *models.Workout) error {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	query :=
		`INSERT INTO workouts (id, email, name, date, exercises, notes, timestamp, received_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	if _, err := r.db.ExecContext(ctx, query,
		w.ID, w.Email, w.Name, w.Date, exercises, w.Notes, w.Timestamp, w.ReceivedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// List returns the workouts submitted by email in arrival order. An empty
// email lists every workout.
func (r *PostgresRepository) List(ctx context.Context, email string) ([]*models.Workout, error) {
	query :=
		`SELECT id, email, name, to_char(date, 'YYYY-MM-DD'), exercises, notes, timestamp, received_at
		 FROM workouts
		 WHERE $1 = '' OR email = $1
		 ORDER BY received_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Workout{}

	for rows.Next() {
		w := &models.Workout{}
		var exercises []byte
		if err := rows.Scan(&w.ID, &w.Email, &w.Name, &w.Date, &exercises, &w.Notes, &w.Timestamp, &w.ReceivedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(exercises, &w.Exercises); err != nil {
			return nil, fmt.Errorf("decode exercises of %s: %w", w.ID, err)
		}
		result = append(result, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM workouts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
