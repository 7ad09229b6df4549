package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/internal/ratelimit"
)

func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	var booking models.Booking
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/bookings/create",
		group:  ratelimit.GroupBookings,
		body:   req,
	}, &booking)
	return booking, err
}

// ConfirmBooking marks a pending booking as paid. The remote API reads the
// payment method from the query string, so it is sent there and in the body.
func (c *Client) ConfirmBooking(ctx context.Context, pnr, paymentMethod string) (models.Confirmation, error) {
	var out models.Confirmation
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/bookings/" + url.PathEscape(strings.ToUpper(pnr)) + "/confirm",
		group:  ratelimit.GroupBookings,
		query:  url.Values{"payment_method": {paymentMethod}},
		body:   models.ConfirmRequest{PaymentMethod: paymentMethod},
	}, &out)
	return out, err
}

func (c *Client) MyBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/bookings/my-bookings",
		group:  ratelimit.GroupBookings,
	}, &bookings)
	return bookings, err
}

func (c *Client) GetBooking(ctx context.Context, pnr string) (models.Booking, error) {
	var booking models.Booking
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/bookings/" + url.PathEscape(strings.ToUpper(pnr)),
		group:  ratelimit.GroupBookings,
	}, &booking)
	return booking, err
}

func (c *Client) CancelBooking(ctx context.Context, pnr string) (models.CancelResult, error) {
	var out models.CancelResult
	err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/bookings/" + url.PathEscape(strings.ToUpper(pnr)) + "/cancel",
		group:  ratelimit.GroupBookings,
	}, &out)
	return out, err
}
