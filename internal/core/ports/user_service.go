package ports

import (
	"context"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
)

// UserService defines account-management use-cases layered on top of the
// credential store.
type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// ChangeRole updates the target account's role. An admin may not demote
	// their own account.
	ChangeRole(ctx context.Context, caller *domain.User, targetID, role string) (*domain.User, error)
}
