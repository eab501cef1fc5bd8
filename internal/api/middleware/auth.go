package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
	"github.com/globetrotter/trip-planner-api/internal/core/ports"
	"github.com/globetrotter/trip-planner-api/internal/core/service"
)

// UserLoader is the subset of the user repository the middleware needs.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Context keys populated by Auth.
const (
	ContextUserKey     = "auth_user"
	ContextTokenJTIKey = "auth_token_jti"
	ContextTokenExpKey = "auth_token_exp"
)

// Auth validates the bearer access token, rejects revoked tokens, loads the
// account (secret fields excluded) and injects it into the request context.
// Accounts that no longer exist or are still unverified are rejected. The
// failure message is identical for forged, expired, and orphaned tokens.
func Auth(tokens *service.TokenManager, users UserLoader, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.VerifyAccess(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if denylist != nil {
				revoked, err := denylist.IsRevoked(c.Request().Context(), claims.JTI)
				if err != nil {
					return err
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if !user.IsVerified {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrEmailNotVerified.Error())
			}

			c.Set(ContextUserKey, user)
			c.Set(ContextTokenJTIKey, claims.JTI)
			c.Set(ContextTokenExpKey, claims.ExpiresAt)

			return next(c)
		}
	}
}

// Caller returns the authenticated account injected by Auth, or nil when the
// middleware did not run.
func Caller(c echo.Context) *domain.User {
	user, _ := c.Get(ContextUserKey).(*domain.User)
	return user
}

// TokenJTI returns the JTI of the presented access token.
func TokenJTI(c echo.Context) string {
	jti, _ := c.Get(ContextTokenJTIKey).(string)
	return jti
}

// TokenExpiry returns the expiry of the presented access token.
func TokenExpiry(c echo.Context) time.Time {
	exp, _ := c.Get(ContextTokenExpKey).(time.Time)
	return exp
}
