package client

import (
	"context"

	"github.com/AHx92/my-workout-tracker/internal/client/models"
)

// Ack is the backend's confirmation of an accepted workout.
type Ack struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
}

type AccessInfo struct {
	Approved bool   `json:"approved"`
	Email    string `json:"email"`
}

type Client interface {
	Submit(ctx context.Context, r *models.Record) (*Ack, error)
	FetchCatalog(ctx context.Context) ([]string, error)
	CheckAccess(ctx context.Context) (*AccessInfo, error)
}
