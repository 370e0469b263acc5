package workouts

import (
	"context"

	"github.com/AHx92/my-workout-tracker/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, w *models.Workout) error
	List(ctx context.Context, email string) ([]*models.Workout, error)
	Count(ctx context.Context) (int64, error)
}
