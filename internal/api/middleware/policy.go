package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
	"github.com/globetrotter/trip-planner-api/internal/core/ports"
)

// ContextResourceKey holds the resource loaded by Ownership so downstream
// handlers can reuse it without a second fetch.
const ContextResourceKey = "auth_resource"

// RequireRole allows only callers whose role is in the given set.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	policy := domain.RoleIn(roles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !policy.Allows(Caller(c), nil) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequireSelfOrAdmin allows the caller to act on their own account (matched
// against the given path parameter) or requires the admin role.
func RequireSelfOrAdmin(idParam string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			target := &domain.Resource{ID: c.Param(idParam)}
			if !domain.SelfOrAdmin.Allows(Caller(c), target) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// Ownership loads the resource named by the path parameter through the given
// finder and allows the request when the caller owns it or is an admin. The
// loaded resource is attached to the context for the handler to reuse.
func Ownership(finder ports.ResourceFinder, idParam string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Param(idParam)
			if id == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "missing resource id")
			}

			res, err := finder.FindResource(c.Request().Context(), id)
			if err != nil {
				return err
			}
			if !domain.AdminOrOwner.Allows(Caller(c), res) {
				return domain.ErrForbidden
			}

			c.Set(ContextResourceKey, res)
			return next(c)
		}
	}
}

// Resource returns the resource attached by Ownership, or nil.
func Resource(c echo.Context) *domain.Resource {
	res, _ := c.Get(ContextResourceKey).(*domain.Resource)
	return res
}
