// Package models defines the client-side data model: workout payloads, the
// locally persisted Record that wraps them, and cached catalogs.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of Workout.Date.
const DateLayout = "2006-01-02"

var (
	ErrInvalidWorkout   = errors.New("invalid workout")
	ErrIncorrectSetSpec = errors.New("set must be REPSxWEIGHT, e.g. 8x60")
)

// Set is one series of an exercise.
type Set struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type Exercise struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup,omitempty"`
	Sets        []Set  `json:"sets"`
}

// Workout is the user-entered payload of a Record.
type Workout struct {
	Name      string     `json:"name"`
	Date      string     `json:"date"`
	Exercises []Exercise `json:"exercises"`
	Notes     string     `json:"notes,omitempty"`
}

// Validate checks the fields a backend needs to accept the workout.
// Errors wrap ErrInvalidWorkout.
func (w Workout) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidWorkout)
	}
	if _, err := time.Parse(DateLayout, w.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidWorkout, w.Date)
	}
	if len(w.Exercises) == 0 {
		return fmt.Errorf("%w: at least one exercise is required", ErrInvalidWorkout)
	}
	for i, ex := range w.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			return fmt.Errorf("%w: exercise #%d has no name", ErrInvalidWorkout, i+1)
		}
		for j, s := range ex.Sets {
			if s.Reps <= 0 {
				return fmt.Errorf("%w: %s set #%d: reps must be positive", ErrInvalidWorkout, ex.Name, j+1)
			}
			if s.Weight < 0 {
				return fmt.Errorf("%w: %s set #%d: weight must not be negative", ErrInvalidWorkout, ex.Name, j+1)
			}
		}
	}
	return nil
}

// ParseSets turns shell input such as ["8x60", "10x52.5", "12"] into sets.
// A bare number is a bodyweight set (weight 0).
func ParseSets(specs []string) ([]Set, error) {
	sets := make([]Set, 0, len(specs))
	for _, spec := range specs {
		spec = strings.ToLower(strings.TrimSpace(spec))
		if spec == "" {
			continue
		}

		repsPart, weightPart, hasWeight := strings.Cut(spec, "x")

		reps, err := strconv.Atoi(strings.TrimSpace(repsPart))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrIncorrectSetSpec, spec)
		}

		var weight float64
		if hasWeight {
			weight, err = strconv.ParseFloat(strings.TrimSpace(weightPart), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrIncorrectSetSpec, spec)
			}
		}

		sets = append(sets, Set{Reps: reps, Weight: weight})
	}
	return sets, nil
}
