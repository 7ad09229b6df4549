package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightbooking/internal/booking"
	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/internal/view"
)

type submitBookingRequest struct {
	Passengers    []models.Passenger `json:"passengers"`
	Contact       view.Contact       `json:"contact"`
	TermsAccepted bool               `json:"terms_accepted"`
}

func (h *UIHandler) LoadBooking(c echo.Context) error {
	flow := booking.New(h.client, h.session, h.recorder, h.sched, h.log)
	err := flow.Load(c.Request().Context())

	h.mu.Lock()
	if err == nil {
		h.booking = flow
	} else {
		h.booking = nil
	}
	h.mu.Unlock()

	return h.respond(c, err)
}

func (h *UIHandler) currentBooking() (*booking.Flow, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.booking == nil {
		return nil, booking.ErrNotLoaded
	}
	return h.booking, nil
}

func (h *UIHandler) AddPassenger(c echo.Context) error {
	flow, err := h.currentBooking()
	if err != nil {
		return h.respond(c, err)
	}
	return h.respond(c, flow.AddPassenger())
}

func (h *UIHandler) RemovePassenger(c echo.Context) error {
	flow, err := h.currentBooking()
	if err != nil {
		return h.respond(c, err)
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return h.respond(c, models.ValidationError("invalid passenger id"))
	}
	return h.respond(c, flow.RemovePassenger(id))
}

func (h *UIHandler) SubmitBooking(c echo.Context) error {
	flow, err := h.currentBooking()
	if err != nil {
		return h.respond(c, err)
	}

	var req submitBookingRequest
	if err := c.Bind(&req); err != nil {
		return h.respond(c, invalidInput(err))
	}
	if req.Passengers != nil {
		if err := flow.SetPassengers(req.Passengers); err != nil {
			return h.respond(c, err)
		}
	}

	_, err = flow.Submit(c.Request().Context(), req.Contact, req.TermsAccepted)
	return h.respond(c, err)
}
