package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
	"github.com/globetrotter/trip-planner-api/internal/core/ports"
)

const (
	minPasswordLen = 8
	resetTokenTTL  = 10 * time.Minute
)

// AuthService implements the credential and session lifecycle: registration
// with email verification, login with dual-token issuance, refresh, logout,
// and the password-reset flow. At most one live session per account: every
// login overwrites the stored refresh fingerprint.
type AuthService struct {
	users      ports.UserRepository
	tokens     *TokenManager
	mailer     ports.Mailer
	denylist   ports.TokenDenylist
	bcryptCost int
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *TokenManager, mailer ports.Mailer, denylist ports.TokenDenylist, bcryptCost int, logger zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		mailer:     mailer,
		denylist:   denylist,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an unverified account and triggers the verification email.
// A failed send is logged but does not fail registration; the account simply
// stays unverified until the token is redelivered.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if len(input.Password) < minPasswordLen {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	verifyToken, err := randomToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:              strings.TrimSpace(input.Name),
		Email:             email,
		Phone:             input.Phone,
		Country:           input.Country,
		City:              input.City,
		PasswordHash:      string(hash),
		Role:              domain.RoleUser,
		IsVerified:        false,
		VerificationToken: verifyToken,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationEmail(ctx, email, created.Name, verifyToken); err != nil {
		s.logger.Warn().Err(err).Str("user_id", created.ID).Msg("verification email not sent")
	}

	s.logger.Info().Str("user_id", created.ID).Msg("account registered")
	return created.Sanitized(), nil
}

// VerifyEmail consumes a verification token exactly once. The lookup clears
// the token, so a second presentation of the same value no longer matches.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrInvalidVerifyToken
	}

	user, err := s.users.FindByVerificationToken(ctx, token)
	if err != nil {
		return domain.ErrInvalidVerifyToken
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("email verified")
	return nil
}

// Login validates credentials and issues an access+refresh token pair. The
// stored session fingerprint is overwritten, revoking any earlier session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByEmailWithSecret(ctx, normalizeEmail(email))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, domain.ErrEmailNotVerified
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.users.StoreSession(ctx, user.ID, fingerprint(refreshToken), now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	s.logger.Info().Str("user_id", user.ID).Msg("login")
	return &ports.LoginResult{
		User:         user.Sanitized(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh mints a new access token for a valid refresh token. The token must
// verify against the refresh secret and its fingerprint must match the one
// stored on the account: server-side storage is the source of truth that
// makes a stateless-signed refresh token revocable.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrInvalidSession
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", domain.ErrInvalidSession
	}

	user, err := s.users.FindByIDWithSession(ctx, claims.UserID)
	if err != nil {
		return "", domain.ErrInvalidSession
	}
	if user.RefreshTokenHash == "" || user.RefreshTokenHash != fingerprint(refreshToken) {
		return "", domain.ErrInvalidSession
	}
	if !user.IsVerified {
		return "", domain.ErrEmailNotVerified
	}

	return s.tokens.IssueAccessToken(user.ID)
}

// Logout clears the stored session and denylists the presented access token
// for its residual lifetime. Logging out an already-logged-out account
// succeeds silently.
func (s *AuthService) Logout(ctx context.Context, input ports.LogoutInput) error {
	if err := s.users.ClearSession(ctx, input.UserID); err != nil {
		return err
	}

	if s.denylist != nil && input.JTI != "" {
		ttl := time.Until(input.ExpiresAt)
		if ttl > 0 {
			if err := s.denylist.Revoke(ctx, input.JTI, ttl); err != nil {
				return err
			}
		}
	}

	s.logger.Info().Str("user_id", input.UserID).Msg("logout")
	return nil
}

// ForgotPassword issues a time-boxed single-use reset token. The response is
// uniform whether or not the account exists. Issuance is all-or-nothing: if
// the reset email cannot be sent, the pending reset fields are rolled back.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Unknown address gets the same acknowledgement as a known one.
		return nil
	}

	rawToken, err := randomToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().UTC().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, fingerprint(rawToken), expiresAt); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.Name, rawToken); err != nil {
		if clearErr := s.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.logger.Error().Err(clearErr).Str("user_id", user.ID).Msg("reset rollback failed")
		}
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset issued")
	return nil
}

// ResetPassword consumes a reset token exactly once: the new password is
// installed, the reset fields are cleared, and the stored session is revoked
// so every device must re-authenticate.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrInvalidResetToken
	}
	if len(newPassword) < minPasswordLen {
		return domain.ErrWeakPassword
	}

	user, err := s.users.FindByResetTokenHash(ctx, fingerprint(token), time.Now().UTC())
	if err != nil {
		return domain.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}

	if err := s.users.ResetPassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
