// Package httpapi exposes the reference backend as a single JSON endpoint
// dispatching on the action query parameter.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/logging"
	"github.com/AHx92/my-workout-tracker/internal/server/models"
	"github.com/AHx92/my-workout-tracker/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	ActionSubmitWorkout       = "submitWorkout"
	ActionGetExerciseDatabase = "getExerciseDatabase"
	ActionCheckUserAccess     = "checkUserAccess"
)

// maxBodyBytes bounds a submitted workout.
const maxBodyBytes = 1 << 20

type WorkoutSubmitter interface {
	Submit(ctx context.Context, email string, w *models.Workout) (string, error)
}

type ExerciseLister interface {
	ExerciseNames(ctx context.Context) ([]string, error)
}

type AccessChecker interface {
	Authenticate(ctx context.Context, token string) (string, error)
	Check(ctx context.Context, email string) *services.Access
}

type Handler struct {
	workouts WorkoutSubmitter
	catalog  ExerciseLister
	access   AccessChecker
	logger   logging.Logger
}

func NewHandler(w WorkoutSubmitter, c ExerciseLister, a AccessChecker, logger logging.Logger) *Handler {
	return &Handler{
		workouts: w,
		catalog:  c,
		access:   a,
		logger:   logger.With("module", "httpapi"),
	}
}

// Router mounts the API under /api. HEAD and GET answer 200 so clients can
// use the endpoint as a reachability probe.
func (h *Handler) Router(timeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Route("/api", func(r chi.Router) {
		r.Head("/", h.ping)
		r.Get("/", h.ping)

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)
			r.Post("/", h.dispatch)
		})
	})

	return r
}

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) {
	switch action := r.URL.Query().Get("action"); action {
	case ActionSubmitWorkout:
		h.submitWorkout(w, r)
	case ActionGetExerciseDatabase:
		h.getExerciseDatabase(w, r)
	case ActionCheckUserAccess:
		h.checkUserAccess(w, r)
	default:
		writeError(w, http.StatusBadRequest, "unknown_action", "unknown action "+action)
	}
}
