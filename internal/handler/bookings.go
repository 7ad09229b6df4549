package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightbooking/internal/view"
)

const msgCancelled = "Booking cancelled successfully"

func (h *UIHandler) MyBookings(c echo.Context) error {
	ctx := c.Request().Context()
	if !h.account.RequireAuth(ctx) {
		return h.respond(c, nil)
	}

	bookings, err := h.client.MyBookings(ctx)
	if err != nil {
		h.recorder.Error(err.Error())
		return h.respond(c, err)
	}

	v := view.BookingsView{Bookings: make([]view.BookingSummary, 0, len(bookings))}
	for _, b := range bookings {
		v.Bookings = append(v.Bookings, view.NewBookingSummary(b))
	}
	h.recorder.Render(v)
	return h.respond(c, nil)
}

func (h *UIHandler) GetBooking(c echo.Context) error {
	ctx := c.Request().Context()
	if !h.account.RequireAuth(ctx) {
		return h.respond(c, nil)
	}

	b, err := h.client.GetBooking(ctx, c.Param("pnr"))
	if err != nil {
		h.recorder.Error(err.Error())
		return h.respond(c, err)
	}
	h.recorder.Render(view.NewBookingSummary(b))
	return h.respond(c, nil)
}

func (h *UIHandler) CancelBooking(c echo.Context) error {
	ctx := c.Request().Context()
	if !h.account.RequireAuth(ctx) {
		return h.respond(c, nil)
	}

	result, err := h.client.CancelBooking(ctx, c.Param("pnr"))
	if err != nil {
		h.recorder.Error(err.Error())
		return h.respond(c, err)
	}

	msg := msgCancelled
	if m, ok := result["message"].(string); ok && m != "" {
		msg = m
	}
	h.recorder.Success(msg)
	return h.respond(c, nil)
}
