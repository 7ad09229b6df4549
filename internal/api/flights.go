package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/internal/ratelimit"
)

func (c *Client) SearchFlights(ctx context.Context, req models.SearchRequest) ([]models.Flight, error) {
	var flights []models.Flight
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/flights/search",
		group:  ratelimit.GroupFlights,
		body:   req,
	}, &flights)
	return flights, err
}

func (c *Client) GetFlight(ctx context.Context, id int64) (models.FlightDetail, error) {
	var flight models.FlightDetail
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/flights/" + strconv.FormatInt(id, 10),
		group:  ratelimit.GroupFlights,
	}, &flight)
	return flight, err
}

func (c *Client) ListAirlines(ctx context.Context) ([]models.Airline, error) {
	var airlines []models.Airline
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/flights/airlines/list",
		group:  ratelimit.GroupFlights,
	}, &airlines)
	return airlines, err
}

func (c *Client) ListAirports(ctx context.Context) ([]models.Airport, error) {
	var list []models.Airport
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/flights/airports/list",
		group:  ratelimit.GroupFlights,
	}, &list)
	return list, err
}

func (c *Client) PriceHistory(ctx context.Context, flightID int64, seatClass string, days int) ([]models.PriceHistory, error) {
	q := url.Values{}
	if seatClass != "" {
		q.Set("seat_class", seatClass)
	}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}

	var history []models.PriceHistory
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/price-history/" + strconv.FormatInt(flightID, 10),
		group:  ratelimit.GroupPricing,
		query:  q,
	}, &history)
	return history, err
}

func (c *Client) FetchExternalFlights(ctx context.Context, airlineCode, origin, destination, date string) (models.ExternalSchedules, error) {
	q := url.Values{}
	q.Set("airline_code", strings.ToUpper(airlineCode))
	q.Set("origin", strings.ToUpper(origin))
	q.Set("destination", strings.ToUpper(destination))
	q.Set("date", date)

	var out models.ExternalSchedules
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/external/flights/fetch",
		group:  ratelimit.GroupExternal,
		query:  q,
	}, &out)
	return out, err
}
