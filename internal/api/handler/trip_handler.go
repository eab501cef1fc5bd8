package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/globetrotter/trip-planner-api/internal/api/middleware"
	"github.com/globetrotter/trip-planner-api/internal/core/domain"
	"github.com/globetrotter/trip-planner-api/internal/core/ports"
)

// TripHandler handles the slim trips surface. Ownership decisions are made by
// the policy middleware before these handlers run.
type TripHandler struct {
	service ports.TripService
}

func NewTripHandler(service ports.TripService) *TripHandler {
	return &TripHandler{service: service}
}

type createTripRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Destination string    `json:"destination" validate:"required"`
	StartDate   time.Time `json:"start_date"  validate:"required"`
	EndDate     time.Time `json:"end_date"    validate:"required"`
	Notes       string    `json:"notes,omitempty"`
}

type tripResponse struct {
	Trip *domain.Trip `json:"trip"`
}

type listTripsResponse struct {
	Trips []*domain.Trip `json:"trips"`
}

// Create registers a trip owned by the caller.
//
// @Summary      Create a trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTripRequest  true  "Trip details"
// @Success      201   {object}  tripResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/trips [post]
func (h *TripHandler) Create(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	trip, err := h.service.Create(c.Request().Context(), ports.CreateTripInput{
		OwnerID:     caller.ID,
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tripResponse{Trip: trip})
}

// List returns the caller's trips.
//
// @Summary      List own trips
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listTripsResponse
// @Router       /v1/trips [get]
func (h *TripHandler) List(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	trips, err := h.service.ListByOwner(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listTripsResponse{Trips: trips})
}

// Get returns a single trip. The Ownership middleware has already loaded and
// authorized it, so the attached entity is reused instead of re-fetching.
//
// @Summary      Get a trip
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Trip id"
// @Success      200  {object}  tripResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/trips/{id} [get]
func (h *TripHandler) Get(c echo.Context) error {
	res := middleware.Resource(c)
	if res == nil {
		return domain.ErrTripNotFound
	}
	trip, ok := res.Entity.(*domain.Trip)
	if !ok {
		return domain.ErrTripNotFound
	}
	return c.JSON(http.StatusOK, tripResponse{Trip: trip})
}

// Delete removes a trip. Routed behind the Ownership middleware.
//
// @Summary      Delete a trip
// @Tags         trips
// @Security     BearerAuth
// @Param        id  path  string  true  "Trip id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/trips/{id} [delete]
func (h *TripHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
