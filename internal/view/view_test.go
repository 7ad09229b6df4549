package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightbooking/internal/airports"
	"github.com/dharmasatrya/flightbooking/internal/filter"
	"github.com/dharmasatrya/flightbooking/internal/models"
)

func testFlight() models.Flight {
	loc := airports.GetLocationByAirport("DEL")
	return models.Flight{
		ID:              42,
		FlightNumber:    "6E-201",
		AirlineName:     "IndiGo",
		AirlineCode:     "6E",
		OriginCity:      "New Delhi",
		OriginCode:      "DEL",
		DestinationCity: "Mumbai",
		DestinationCode: "BOM",
		DepartureTime:   models.Timestamp{Time: time.Date(2025, 1, 15, 6, 30, 0, 0, loc)},
		ArrivalTime:     models.Timestamp{Time: time.Date(2025, 1, 15, 8, 45, 0, 0, loc)},
		Duration:        135,
		BasePrice:       5000,
		DynamicPrice:    4500,
		SeatsAvailable:  7,
		SeatClass:       "economy",
	}
}

func TestNewFlightCard(t *testing.T) {
	card := NewFlightCard(testFlight())

	assert.Equal(t, "06:30 am", card.DepartureTime)
	assert.Equal(t, "08:45 am", card.ArrivalTime)
	assert.Equal(t, "2h 15m", card.Duration)
	assert.Equal(t, "₹4,500", card.Price)
	assert.Equal(t, "₹5,000", card.BasePrice)
	assert.Equal(t, "10% OFF", card.DiscountBadge)
	assert.Equal(t, "Only 7 seats left!", card.Seats)
	assert.True(t, card.LowSeats)
}

func TestNewFlightCardNoDiscount(t *testing.T) {
	f := testFlight()
	f.DynamicPrice = 5500
	f.SeatsAvailable = 10

	card := NewFlightCard(f)
	assert.Empty(t, card.BasePrice)
	assert.Empty(t, card.DiscountBadge)
	assert.Equal(t, "10 seats available", card.Seats)
	assert.False(t, card.LowSeats)
}

func TestNewSearchSummary(t *testing.T) {
	s := NewSearchSummary(models.SearchRequest{Origin: "DEL", Destination: "BOM", DepartureDate: "2025-01-15", Passengers: 2, SeatClass: "economy"})
	assert.Equal(t, "New Delhi → Mumbai", s.Route)
	assert.Equal(t, "2025-01-15 • 2 Passenger(s) • economy", s.Details)
}

func TestNewResultsViewEmpty(t *testing.T) {
	v := NewResultsView("empty", SearchSummary{}, nil, nil, filter.Default())
	assert.Equal(t, NoFlightsFound, v.Count)
	assert.Empty(t, v.Flights)
	assert.Equal(t, "₹20,000", v.MaxPrice)
}

func TestNewResultsViewAirlines(t *testing.T) {
	f := filter.Default()
	f.Airlines = []string{"IndiGo"}
	v := NewResultsView("ready", SearchSummary{}, []models.Flight{testFlight()}, []string{"IndiGo", "Vistara"}, f)

	assert.Equal(t, "1 Flight(s) Found", v.Count)
	assert.Equal(t, []AirlineOption{{"IndiGo", true}, {"Vistara", false}}, v.Airlines)
}

func TestNewFareSummary(t *testing.T) {
	pb := &models.PriceBreakdown{SeatFactor: 0.125, TimeFactor: -0.05}
	s := NewFareSummary(2, 9000, 1000, 450, 9450, pb)

	assert.Equal(t, "2 Passenger(s)", s.Passengers)
	assert.Equal(t, "₹9,000", s.BaseFare)
	assert.Equal(t, "-₹1,000", s.Discount)
	assert.Equal(t, "₹450", s.Taxes)
	assert.Equal(t, "₹9,450", s.Total)
	require.Len(t, s.Breakdown, 6)
	assert.Equal(t, BreakdownLine{"Seat Availability Factor", "+12.5%"}, s.Breakdown[0])
	assert.Equal(t, BreakdownLine{"Time to Departure", "-5.0%"}, s.Breakdown[1])
	assert.Equal(t, BreakdownLine{"Demand Factor", "0.0%"}, s.Breakdown[2])

	s = NewFareSummary(1, 5500, -500, 275, 5775, nil)
	assert.Empty(t, s.Discount)
	assert.Nil(t, s.Breakdown)
}

func TestNewBookingSummary(t *testing.T) {
	b := models.Booking{
		PNR:           "ABC123",
		FlightDetails: models.FlightSummary{FlightNumber: "6E-201", Origin: "DEL", Destination: "BOM"},
		SeatClass:     "economy",
		NumPassengers: 2,
		TotalPrice:    9450,
	}
	s := NewBookingSummary(b)
	assert.Equal(t, "DEL → BOM", s.Route)
	assert.Equal(t, "ECONOMY", s.Class)
	assert.Equal(t, "₹9,450", s.Total)
	assert.Empty(t, s.Date)
}
