package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
	"github.com/globetrotter/trip-planner-api/internal/core/ports"
)

// UserService implements account-management use-cases.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// ChangeRole updates the target account's role. An admin acting on their own
// account may not give up the admin role; this prevents accidental lock-out
// of the last administrator.
func (s *UserService) ChangeRole(ctx context.Context, caller *domain.User, targetID, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if caller != nil && caller.ID == targetID && caller.Role == domain.RoleAdmin && role != domain.RoleAdmin {
		return nil, domain.ErrSelfDemotion
	}

	if err := s.users.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", targetID).Str("role", role).Msg("role changed")
	return s.users.FindByID(ctx, targetID)
}
