package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AHx92/my-workout-tracker/internal/common"
	"github.com/AHx92/my-workout-tracker/internal/server/models"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SubmitResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

type ExercisesResponse struct {
	Exercises []string `json:"exercises"`
}

type AccessResponse struct {
	Approved bool   `json:"approved"`
	Email    string `json:"email"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err string, message string) {
	writeJSON(w, status, ErrorResponse{Error: err, Message: message})
}

func (h *Handler) submitWorkout(w http.ResponseWriter, r *http.Request) {
	var workout models.Workout
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&workout); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	id, err := h.workouts.Submit(r.Context(), emailFrom(r.Context()), &workout)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		h.logger.Error(r.Context(), "submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	writeJSON(w, http.StatusOK, SubmitResponse{Status: "ok", ID: id})
}

func (h *Handler) getExerciseDatabase(w http.ResponseWriter, r *http.Request) {
	names, err := h.catalog.ExerciseNames(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "catalog failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	writeJSON(w, http.StatusOK, ExercisesResponse{Exercises: names})
}

func (h *Handler) checkUserAccess(w http.ResponseWriter, r *http.Request) {
	a := h.access.Check(r.Context(), emailFrom(r.Context()))
	writeJSON(w, http.StatusOK, AccessResponse{Approved: a.Approved, Email: a.Email})
}
