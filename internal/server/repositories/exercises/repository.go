package exercises

import (
	"context"

	"github.com/AHx92/my-workout-tracker/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.CatalogExercise, error)
}
