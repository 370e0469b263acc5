package models

import (
	"testing"

	"github.com/AHx92/my-workout-tracker/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid() *Workout {
	return &Workout{
		Name:      "Leg day",
		Date:      "2026-10-01",
		Timestamp: "2026-10-01T10:00:00Z",
		Exercises: []Exercise{{Name: "Squat", Sets: []Set{{Reps: 5, Weight: 100}}}},
	}
}

func TestWorkoutValidate(t *testing.T) {
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(w *Workout)
	}{
		{"blank name", func(w *Workout) { w.Name = "  " }},
		{"bad date", func(w *Workout) { w.Date = "01.10.2026" }},
		{"bad timestamp", func(w *Workout) { w.Timestamp = "yesterday" }},
		{"no exercises", func(w *Workout) { w.Exercises = nil }},
		{"unnamed exercise", func(w *Workout) { w.Exercises[0].Name = "" }},
		{"zero reps", func(w *Workout) { w.Exercises[0].Sets[0].Reps = 0 }},
		{"negative weight", func(w *Workout) { w.Exercises[0].Sets[0].Weight = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := valid()
			tt.mutate(w)
			assert.ErrorIs(t, w.Validate(), common.ErrorValidation)
		})
	}
}

func TestWorkoutValidate_TimestampOptional(t *testing.T) {
	w := valid()
	w.Timestamp = ""
	assert.NoError(t, w.Validate())
}
