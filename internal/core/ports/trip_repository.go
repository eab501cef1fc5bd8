package ports

import (
	"context"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
)

// TripRepository defines persistence for trips.
type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) (*domain.Trip, error)
	FindByID(ctx context.Context, id string) (*domain.Trip, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Trip, error)
	Delete(ctx context.Context, id string) error
	// DeleteByOwner removes every trip owned by the account.
	DeleteByOwner(ctx context.Context, ownerID string) error
}

// ResourceFinder is the narrow contract the ownership middleware needs from
// any resource-owning module: load by id, report the owner.
type ResourceFinder interface {
	FindResource(ctx context.Context, id string) (*domain.Resource, error)
}
