// Package services contains the business logic of the reference backend.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/logging"
	"github.com/AHx92/my-workout-tracker/internal/server/models"
	"github.com/AHx92/my-workout-tracker/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// WorkoutService accepts and lists workout submissions.
type WorkoutService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

// NewWorkoutService builds the service. db may be nil for the in-memory manager.
func NewWorkoutService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *WorkoutService {
	return &WorkoutService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "workouts"),
		now:         time.Now,
	}
}

// Submit validates w, assigns it an ID and stores it on behalf of email.
// Validation failures wrap common.ErrorValidation. The backend keeps no
// idempotency key, so a resubmitted workout is stored again.
func (s *WorkoutService) Submit(ctx context.Context, email string, w *models.Workout) (string, error) {
	if err := w.Validate(); err != nil {
		return "", err
	}

	w.ID = uuid.NewString()
	w.Email = strings.ToLower(email)
	w.ReceivedAt = s.now().UTC()

	if err := s.repomanager.Workouts(s.db).Insert(ctx, w); err != nil {
		return "", fmt.Errorf("store workout: %w", err)
	}

	s.logger.Info(ctx, "workout accepted", "id", w.ID, "name", w.Name, "date", w.Date, "exercises", len(w.Exercises))
	return w.ID, nil
}

func (s *WorkoutService) List(ctx context.Context, email string) ([]*models.Workout, error) {
	return s.repomanager.Workouts(s.db).List(ctx, strings.ToLower(email))
}
