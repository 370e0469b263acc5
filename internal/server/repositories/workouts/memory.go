package workouts

import (
	"context"
	"sync"

	"github.com/AHx92/my-workout-tracker/internal/server/models"
)

// MemoryRepository keeps workouts in process memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	data []models.Workout
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Insert(ctx context.Context, w *models.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *w
	c.Exercises = append([]models.Exercise(nil), w.Exercises...)
	r.data = append(r.data, c)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context, email string) ([]*models.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.Workout{}
	for i := range r.data {
		if email != "" && r.data[i].Email != email {
			continue
		}
		c := r.data[i]
		result = append(result, &c)
	}
	return result, nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.data)), nil
}
