package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/globetrotter/trip-planner-api/internal/api/middleware"
	"github.com/globetrotter/trip-planner-api/internal/core/domain"
)

// currentUser extracts the account injected by the Auth middleware and
// fast-fails before any service call when it is absent.
func currentUser(c echo.Context) (*domain.User, error) {
	user := middleware.Caller(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
