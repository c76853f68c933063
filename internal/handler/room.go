package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RoiCoDA/AbsoluteCinema/internal/service"
)

// RoomHandler serves the room lifecycle: creating proposals, voting,
// promotion and context reads.
type RoomHandler struct {
	Rooms *service.RoomService
}

type createProposalReq struct {
	MovieID    string `json:"movie_id"`
	CityID     string `json:"city_id"`
	LocationID string `json:"location_id"`
}

// Create handles POST /v1/rooms. The new proposal opens with the
// creator's own vote already counted.
func (h *RoomHandler) Create(c echo.Context) error {
	var req createProposalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	p, err := h.Rooms.CreateProposal(c.Request().Context(), req.MovieID, req.CityID, req.LocationID, currentUserID(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"room": p})
}

// Get handles GET /v1/rooms/:id, returning the room joined with its
// reference data. The identifier may name either variant.
func (h *RoomHandler) Get(c echo.Context) error {
	out, err := h.Rooms.Context(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Vote handles POST /v1/rooms/:id/votes. A repeat vote from the same
// user answers 200 with the unchanged count.
func (h *RoomHandler) Vote(c echo.Context) error {
	count, err := h.Rooms.Vote(c.Request().Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"vote_count": count})
}

// Promote handles POST /v1/rooms/:id/promote (admin only; the role
// gate sits in the route registration).
func (h *RoomHandler) Promote(c echo.Context) error {
	sc, err := h.Rooms.Promote(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"room": sc})
}
