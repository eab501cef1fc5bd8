package ports

import (
	"context"
	"time"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
)

// CreateTripInput carries all data needed to create a trip.
type CreateTripInput struct {
	OwnerID     string
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Notes       string
}

// TripService defines trip use-cases. Authorization happens before these are
// invoked; the service trusts the caller identity it is handed.
type TripService interface {
	Create(ctx context.Context, input CreateTripInput) (*domain.Trip, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Trip, error)
	Delete(ctx context.Context, id string) error
}
