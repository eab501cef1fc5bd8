package ports

import (
	"context"
	"time"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
)

// UserRepository defines persistence for accounts. The default Find variants
// return users with every secret field stripped by projection; the WithSecret
// and WithSession variants exist for the two call sites that verify a password
// or a refresh token and must never leak into handler code.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailWithSecret includes the password hash for credential checks.
	FindByEmailWithSecret(ctx context.Context, email string) (*domain.User, error)
	// FindByIDWithSession includes the stored refresh-token fingerprint.
	FindByIDWithSession(ctx context.Context, id string) (*domain.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	// FindByResetTokenHash matches a pending reset whose expiry is after now.
	FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*domain.User, error)

	// MarkVerified flips the account to verified and discards the
	// verification token, making it permanently invalid.
	MarkVerified(ctx context.Context, id string) error
	// StoreSession overwrites the refresh-token fingerprint and records the
	// login time. Any previously stored session is implicitly revoked.
	StoreSession(ctx context.Context, id, refreshHash string, loginAt time.Time) error
	// ClearSession removes the stored session fingerprint. Clearing an
	// already-clear session is a no-op.
	ClearSession(ctx context.Context, id string) error

	SetResetToken(ctx context.Context, id, hash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id string) error
	// ResetPassword installs a new password hash and clears the pending reset
	// fields and the stored session in the same write.
	ResetPassword(ctx context.Context, id, passwordHash string) error

	UpdateRole(ctx context.Context, id, role string) error
}
