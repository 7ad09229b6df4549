package view

import (
	"fmt"
	"strings"

	"github.com/dharmasatrya/flightbooking/internal/airports"
	"github.com/dharmasatrya/flightbooking/internal/filter"
	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/pkg/currency"
	"github.com/dharmasatrya/flightbooking/pkg/format"
)

const (
	LowSeatThreshold = 10
	NoFlightsFound   = "No flights found"
)

type FlightCard struct {
	ID              int64  `json:"id"`
	AirlineCode     string `json:"airline_code"`
	AirlineName     string `json:"airline_name"`
	FlightNumber    string `json:"flight_number"`
	SeatClass       string `json:"seat_class"`
	DepartureTime   string `json:"departure_time"`
	ArrivalTime     string `json:"arrival_time"`
	OriginCode      string `json:"origin_code"`
	OriginCity      string `json:"origin_city"`
	DestinationCode string `json:"destination_code"`
	DestinationCity string `json:"destination_city"`
	Duration        string `json:"duration"`
	Stops           string `json:"stops"`
	Seats           string `json:"seats"`
	LowSeats        bool   `json:"low_seats"`
	BasePrice       string `json:"base_price,omitempty"`
	Price           string `json:"price"`
	DiscountBadge   string `json:"discount_badge,omitempty"`
}

func NewFlightCard(f models.Flight) FlightCard {
	card := FlightCard{
		ID:              f.ID,
		AirlineCode:     f.AirlineCode,
		AirlineName:     f.AirlineName,
		FlightNumber:    f.FlightNumber,
		SeatClass:       f.SeatClass,
		DepartureTime:   format.Time(airports.ConvertToTimezone(f.DepartureTime.Time, f.OriginCode)),
		ArrivalTime:     format.Time(airports.ConvertToTimezone(f.ArrivalTime.Time, f.DestinationCode)),
		OriginCode:      f.OriginCode,
		OriginCity:      f.OriginCity,
		DestinationCode: f.DestinationCode,
		DestinationCity: f.DestinationCity,
		Duration:        format.Duration(f.Duration),
		Stops:           "Non-stop",
		Price:           currency.FormatINR(f.DynamicPrice),
	}

	card.Seats = SeatsLabel(f.SeatsAvailable)
	card.LowSeats = f.SeatsAvailable < LowSeatThreshold

	if f.HasDiscount() {
		card.BasePrice = currency.FormatINR(f.BasePrice)
		card.DiscountBadge = fmt.Sprintf("%d%% OFF", f.DiscountPercent())
	}
	return card
}

func SeatsLabel(seats int) string {
	if seats < LowSeatThreshold {
		return fmt.Sprintf("Only %d seats left!", seats)
	}
	return fmt.Sprintf("%d seats available", seats)
}

type SearchSummary struct {
	Route   string `json:"route"`
	Details string `json:"details"`
}

func NewSearchSummary(r models.SearchRequest) SearchSummary {
	return SearchSummary{
		Route:   airports.City(r.Origin) + " → " + airports.City(r.Destination),
		Details: fmt.Sprintf("%s • %d Passenger(s) • %s", r.DepartureDate, r.Passengers, r.SeatClass),
	}
}

type AirlineOption struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

type ResultsView struct {
	State    string          `json:"state"`
	Count    string          `json:"count"`
	Summary  SearchSummary   `json:"summary"`
	Flights  []FlightCard    `json:"flights"`
	Airlines []AirlineOption `json:"airlines"`
	Filters  filter.Filters  `json:"filters"`
	MaxPrice string          `json:"max_price"`
}

// NewResultsView renders the visible flights. An empty list shows the
// no-results message whatever the state.
func NewResultsView(state string, summary SearchSummary, visible []models.Flight, options []string, f filter.Filters) ResultsView {
	v := ResultsView{
		State:    state,
		Summary:  summary,
		Flights:  make([]FlightCard, 0, len(visible)),
		Airlines: make([]AirlineOption, 0, len(options)),
		Filters:  f,
		MaxPrice: currency.FormatINR(f.MaxPrice),
	}

	for _, fl := range visible {
		v.Flights = append(v.Flights, NewFlightCard(fl))
	}

	for _, name := range options {
		v.Airlines = append(v.Airlines, AirlineOption{Name: name, Checked: checked(name, f.Airlines)})
	}

	if len(visible) == 0 {
		v.Count = NoFlightsFound
	} else {
		v.Count = fmt.Sprintf("%d Flight(s) Found", len(visible))
	}
	return v
}

func checked(name string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}
