package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightbooking/internal/airports"
	"github.com/dharmasatrya/flightbooking/internal/filter"
	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/pkg/format"
)

func (h *UIHandler) SearchOptions(c echo.Context) error {
	now := time.Now()
	h.recorder.Render(map[string]interface{}{
		"airports": airports.All(),
		"min_date": format.MinDate(now),
		"max_date": format.MaxDate(now),
	})
	return h.respond(c, nil)
}

func (h *UIHandler) Search(c echo.Context) error {
	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return h.respond(c, invalidInput(err))
	}
	_, err := h.results.Search(c.Request().Context(), req)
	return h.respond(c, err)
}

// Results applies the filters in the query string. The stored search is run
// again when nothing is loaded or reload=true.
func (h *UIHandler) Results(c echo.Context) error {
	if _, ok := h.results.Current(); !ok || c.QueryParam("reload") == "true" {
		_, err := h.results.Load(c.Request().Context())
		return h.respond(c, err)
	}

	f, err := filtersFromQuery(c)
	if err != nil {
		return h.respond(c, err)
	}
	_, err = h.results.Apply(f)
	return h.respond(c, err)
}

func filtersFromQuery(c echo.Context) (filter.Filters, error) {
	f := filter.Default()
	q := c.QueryParams()

	f.Airlines = splitList(q["airline"])
	f.TimeBuckets = splitList(q["time"])
	if v := q.Get("sort_by"); v != "" {
		f.SortBy = v
	}
	if v := q.Get("max_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, invalidInput(err)
		}
		f.MaxPrice = price
	}
	return f, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (h *UIHandler) ResetFilters(c echo.Context) error {
	_, err := h.results.Reset()
	return h.respond(c, err)
}

func (h *UIHandler) SelectFlight(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.respond(c, err)
	}
	return h.respond(c, h.results.SelectFlight(c.Request().Context(), id))
}

func (h *UIHandler) BookFlight(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.respond(c, err)
	}
	return h.respond(c, h.results.BookFlight(c.Request().Context(), id))
}

func (h *UIHandler) FlightDetails(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.respond(c, err)
	}
	_, err = h.results.FlightDetails(c.Request().Context(), id, c.QueryParam("seat_class"))
	return h.respond(c, err)
}

func (h *UIHandler) Reference(c echo.Context) error {
	ref, err := h.results.LoadReferenceData(c.Request().Context())
	if err == nil {
		h.recorder.Render(ref)
	}
	return h.respond(c, err)
}

func (h *UIHandler) ExternalSchedules(c echo.Context) error {
	q := c.QueryParams()
	if q.Get("airline_code") == "" || q.Get("origin") == "" || q.Get("destination") == "" || q.Get("date") == "" {
		return h.respond(c, models.ValidationError("airline_code, origin, destination and date are required"))
	}
	out, err := h.client.FetchExternalFlights(c.Request().Context(),
		q.Get("airline_code"), q.Get("origin"), q.Get("destination"), q.Get("date"))
	if err == nil {
		h.recorder.Render(out)
	} else {
		h.recorder.Error(err.Error())
	}
	return h.respond(c, err)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, models.ValidationError("invalid flight id")
	}
	return id, nil
}
