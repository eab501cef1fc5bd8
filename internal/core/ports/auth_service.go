package ports

import (
	"context"
	"time"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
)

// RegisterInput carries all data needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Country  string
	City     string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// LogoutInput identifies the session to terminate. JTI and ExpiresAt come
// from the access token presented with the request and feed the revocation
// denylist; both may be zero when the token carried no usable claims.
type LogoutInput struct {
	UserID    string
	JTI       string
	ExpiresAt time.Time
}

// AuthService defines the credential and session lifecycle use-cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Refresh validates a presented refresh token against the stored session
	// and mints a new access token. The refresh token is not rotated.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, input LogoutInput) error
	// ForgotPassword reports success whether or not the email exists.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}
