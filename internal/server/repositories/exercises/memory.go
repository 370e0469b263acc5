package exercises

import (
	"context"
	"sort"

	"github.com/AHx92/my-workout-tracker/internal/server/models"
)

// DefaultCatalog is served by MemoryRepository. It matches the rows seeded by
// the Postgres migrations.
var DefaultCatalog = []models.CatalogExercise{
	{Name: "Bench Press", MuscleGroup: "chest"},
	{Name: "Incline Dumbbell Press", MuscleGroup: "chest"},
	{Name: "Push-up", MuscleGroup: "chest"},
	{Name: "Deadlift", MuscleGroup: "back"},
	{Name: "Pull-up", MuscleGroup: "back"},
	{Name: "Barbell Row", MuscleGroup: "back"},
	{Name: "Squat", MuscleGroup: "legs"},
	{Name: "Lunge", MuscleGroup: "legs"},
	{Name: "Leg Press", MuscleGroup: "legs"},
	{Name: "Romanian Deadlift", MuscleGroup: "legs"},
	{Name: "Overhead Press", MuscleGroup: "shoulders"},
	{Name: "Lateral Raise", MuscleGroup: "shoulders"},
	{Name: "Barbell Curl", MuscleGroup: "arms"},
	{Name: "Triceps Dip", MuscleGroup: "arms"},
	{Name: "Plank", MuscleGroup: "core"},
}

type MemoryRepository struct {
	items []models.CatalogExercise
}

// NewMemoryRepository serves items, or DefaultCatalog when items is nil.
func NewMemoryRepository(items []models.CatalogExercise) *MemoryRepository {
	if items == nil {
		items = DefaultCatalog
	}
	sorted := append([]models.CatalogExercise(nil), items...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &MemoryRepository{items: sorted}
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.CatalogExercise, error) {
	result := make([]*models.CatalogExercise, 0, len(r.items))
	for i := range r.items {
		e := r.items[i]
		result = append(result, &e)
	}
	return result, nil
}
