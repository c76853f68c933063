package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RoiCoDA/AbsoluteCinema/internal/service"
)

// BookingHandler serves seat availability and reservation.
type BookingHandler struct {
	Bookings *service.BookingService
}

// Seats handles GET /v1/rooms/:id/seats. The response is the full
// 108-seat map with live statuses; clients render it as the hall.
func (h *BookingHandler) Seats(c echo.Context) error {
	seats, err := h.Bookings.Availability(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": seats})
}

type reserveReq struct {
	SeatIDs []string `json:"seat_ids"`
}

// Reserve handles POST /v1/rooms/:id/bookings. Reservation is all or
// nothing; a conflict answers 409 naming every contested seat.
func (h *BookingHandler) Reserve(c echo.Context) error {
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.Bookings.Reserve(c.Request().Context(), c.Param("id"), currentUserID(c), req.SeatIDs)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}
