// Package handler exposes the HTTP handlers for the public browsing
// API and the authenticated room, booking and profile endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RoiCoDA/AbsoluteCinema/internal/repository"
	"github.com/RoiCoDA/AbsoluteCinema/internal/service"
)

// currentUserID reads the authenticated user's ID that JWTAuth stored
// in the request context. Empty means the middleware did not run.
func currentUserID(c echo.Context) string {
	if s, ok := c.Get("user_id").(string); ok {
		return s
	}
	return ""
}

// writeErr translates a service or repository error into the HTTP
// response for it. All handlers funnel their failures through here so
// the status mapping lives in exactly one place.
func writeErr(c echo.Context, err error) error {
	var seats *repository.SeatsUnavailableError
	if errors.As(err, &seats) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "seats unavailable",
			"seats": seats.Seats,
		})
	}

	switch {
	case errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrCityNotFound),
		errors.Is(err, repository.ErrLocationNotFound),
		errors.Is(err, repository.ErrCompanyNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrUsernameTaken),
		errors.Is(err, repository.ErrProposalConverted):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrSelfVote),
		errors.Is(err, repository.ErrUserBanned):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrBadCode):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
