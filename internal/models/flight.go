package models

import (
	"math"
	"strings"
	"time"

	"github.com/dharmasatrya/flightbooking/internal/airports"
)

// Timestamp is an API datetime. The booking API sends naive ISO datetimes
// that are local to the airport (IST), so they are read in that zone.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := airports.ParseTimeWithOffset(s, airports.DefaultZone)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Time.Format(time.RFC3339) + `"`), nil
}

type PriceBreakdown struct {
	SeatFactor     float64 `json:"seat_factor"`
	TimeFactor     float64 `json:"time_factor"`
	DemandFactor   float64 `json:"demand_factor"`
	SeasonalFactor float64 `json:"seasonal_factor"`
	WeekendFactor  float64 `json:"weekend_factor"`
	PeakHourFactor float64 `json:"peak_hour_factor"`
}

type Flight struct {
	ID              int64           `json:"FlightID"`
	FlightNumber    string          `json:"Flight_Number"`
	AirlineName     string          `json:"airline_name"`
	AirlineCode     string          `json:"airline_code"`
	OriginCity      string          `json:"origin_city"`
	OriginCode      string          `json:"origin_code"`
	DestinationCity string          `json:"destination_city"`
	DestinationCode string          `json:"destination_code"`
	DepartureTime   Timestamp       `json:"Departure_Time"`
	ArrivalTime     Timestamp       `json:"Arrival_Time"`
	Duration        int             `json:"Duration"`
	BasePrice       float64         `json:"base_price"`
	DynamicPrice    float64         `json:"dynamic_price"`
	PriceBreakdown  *PriceBreakdown `json:"price_breakdown,omitempty"`
	SeatsAvailable  int             `json:"seats_available"`
	SeatClass       string          `json:"seat_class"`
}

func (f Flight) DiscountPercent() int {
	if f.BasePrice <= 0 {
		return 0
	}
	return int(math.Round((f.BasePrice - f.DynamicPrice) / f.BasePrice * 100))
}

func (f Flight) HasDiscount() bool {
	return f.DiscountPercent() > 0
}

func (f Flight) DepartureHour() int {
	return airports.ConvertToTimezone(f.DepartureTime.Time, f.OriginCode).Hour()
}

type Airline struct {
	ID      int64  `json:"AirlineID"`
	Name    string `json:"Airline_Name"`
	Code    string `json:"Airline_Code"`
	Country string `json:"Country,omitempty"`
}

type Airport struct {
	ID       int64  `json:"AirportID"`
	Name     string `json:"Airport_Name"`
	Code     string `json:"Airport_Code"`
	City     string `json:"City"`
	Country  string `json:"Country"`
	Timezone string `json:"Timezone,omitempty"`
}

type FlightDetail struct {
	ID               int64                    `json:"FlightID"`
	FlightNumber     string                   `json:"Flight_Number"`
	Airline          Airline                  `json:"airline"`
	DepartureAirport Airport                  `json:"departure_airport"`
	ArrivalAirport   Airport                  `json:"arrival_airport"`
	DepartureTime    Timestamp                `json:"Departure_Time"`
	ArrivalTime      Timestamp                `json:"Arrival_Time"`
	Duration         int                      `json:"Duration"`
	BasePrice        float64                  `json:"base_price"`
	DynamicPrice     float64                  `json:"dynamic_price"`
	SeatsAvailable   int                      `json:"Seats_Available"`
	Status           string                   `json:"Flight_status"`
	SeatInventory    []map[string]interface{} `json:"seat_inventory"`
}

type PriceHistory struct {
	ID              int64     `json:"HistoryID"`
	FlightID        int64     `json:"FlightID"`
	SeatClass       string    `json:"Seat_class"`
	CalculatedPrice float64   `json:"Calculated_price"`
	AvailableSeats  int       `json:"Available_seats"`
	DaysToDeparture int       `json:"Days_to_departure"`
	RecordedAt      Timestamp `json:"Recorded_at"`
}

type ExternalSchedules struct {
	Source       string                   `json:"source"`
	Airline      string                   `json:"airline"`
	Route        string                   `json:"route"`
	Date         string                   `json:"date"`
	FlightsFound int                      `json:"flights_found"`
	Schedules    []map[string]interface{} `json:"schedules"`
}
