// Package models defines the records the reference backend stores.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/common"
)

type Set struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type Exercise struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup,omitempty"`
	Sets        []Set  `json:"sets"`
}

// Workout is a submission accepted by submitWorkout. ID and ReceivedAt are
// assigned by the backend; Timestamp is the client's creation time.
type Workout struct {
	ID         string     `json:"id"`
	Email      string     `json:"email,omitempty"`
	Name       string     `json:"name"`
	Date       string     `json:"date"`
	Exercises  []Exercise `json:"exercises"`
	Notes      string     `json:"notes,omitempty"`
	Timestamp  string     `json:"timestamp"`
	ReceivedAt time.Time  `json:"receivedAt"`
}

// Validate reports missing or malformed fields. Errors wrap
// common.ErrorValidation.
func (w *Workout) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if _, err := time.Parse(time.DateOnly, w.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", common.ErrorValidation, w.Date)
	}
	if w.Timestamp != "" {
		if _, err := time.Parse(time.RFC3339, w.Timestamp); err != nil {
			return fmt.Errorf("%w: timestamp %q is not RFC 3339", common.ErrorValidation, w.Timestamp)
		}
	}
	if len(w.Exercises) == 0 {
		return fmt.Errorf("%w: at least one exercise is required", common.ErrorValidation)
	}
	for i, ex := range w.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			return fmt.Errorf("%w: exercise #%d has no name", common.ErrorValidation, i+1)
		}
		for _, s := range ex.Sets {
			if s.Reps <= 0 || s.Weight < 0 {
				return fmt.Errorf("%w: %s has an invalid set", common.ErrorValidation, ex.Name)
			}
		}
	}
	return nil
}

// CatalogExercise is one entry of the exercise database.
type CatalogExercise struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
}
