package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
	"github.com/globetrotter/trip-planner-api/internal/core/ports"
)

// TripService implements the slim trip use-cases this service exposes. It is
// deliberately thin: role and ownership decisions are made by the policy
// middleware before these methods run.
type TripService struct {
	trips  ports.TripRepository
	logger zerolog.Logger
}

func NewTripService(trips ports.TripRepository, logger zerolog.Logger) *TripService {
	return &TripService{trips: trips, logger: logger}
}

func (s *TripService) Create(ctx context.Context, input ports.CreateTripInput) (*domain.Trip, error) {
	now := time.Now().UTC()
	trip := &domain.Trip{
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Destination: input.Destination,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("trip_id", created.ID).Str("owner_id", created.OwnerID).Msg("trip created")
	return created, nil
}

func (s *TripService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Trip, error) {
	return s.trips.ListByOwner(ctx, ownerID)
}

func (s *TripService) Delete(ctx context.Context, id string) error {
	return s.trips.Delete(ctx, id)
}
