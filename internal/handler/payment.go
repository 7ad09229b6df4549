package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightbooking/internal/payment"
)

// LoadPayment replaces any previous payment page and starts a new
// countdown that outlives the request.
func (h *UIHandler) LoadPayment(c echo.Context) error {
	h.Close()

	flow := payment.New(h.client, h.session, h.recorder, h.sched, h.log, h.paymentOpts...)
	if err := flow.Load(h.ctx); err != nil {
		flow.Close()
		return h.respond(c, err)
	}

	h.mu.Lock()
	h.payment = flow
	h.mu.Unlock()

	return h.respond(c, nil)
}

func (h *UIHandler) SubmitPayment(c echo.Context) error {
	h.mu.Lock()
	flow := h.payment
	h.mu.Unlock()
	if flow == nil {
		return h.respond(c, payment.ErrNotLoaded)
	}

	var d payment.Details
	if err := c.Bind(&d); err != nil {
		return h.respond(c, invalidInput(err))
	}
	d.CardNumber = payment.FormatCardNumber(d.CardNumber)
	d.CardExpiry = payment.FormatCardExpiry(d.CardExpiry)

	_, err := flow.Submit(c.Request().Context(), d)
	return h.respond(c, err)
}
