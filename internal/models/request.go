package models

import (
	"strings"
	"time"
)

const (
	MinPassengers = 1
	MaxPassengers = 9

	SeatClassEconomy  = "economy"
	SeatClassBusiness = "business"
	SeatClassFirst    = "first"

	SortByPrice         = "price"
	SortByDuration      = "duration"
	SortByDepartureTime = "departure_time"
)

type SearchRequest struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departure_date"`
	Passengers    int      `json:"passengers"`
	SeatClass     string   `json:"seat_class"`
	MaxPrice      *float64 `json:"max_price,omitempty"`
	SortBy        string   `json:"sort_by,omitempty"`
}

func (r *SearchRequest) Validate() error {
	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))

	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.Origin == r.Destination {
		return ErrSameOriginDestination
	}
	if r.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if _, err := time.Parse("2006-01-02", r.DepartureDate); err != nil {
		return ErrInvalidDepartureDate
	}
	if r.Passengers == 0 {
		r.Passengers = MinPassengers
	}
	if r.Passengers < MinPassengers || r.Passengers > MaxPassengers {
		return ErrPassengerCount
	}
	if r.SeatClass == "" {
		r.SeatClass = SeatClassEconomy
	}
	switch r.SeatClass {
	case SeatClassEconomy, SeatClassBusiness, SeatClassFirst:
	default:
		return ErrInvalidSeatClass
	}
	if r.SortBy == "" {
		r.SortBy = SortByPrice
	}
	return nil
}

// ValidationError is a local input error. It never reaches the network.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin         ValidationError = "origin is required"
	ErrMissingDestination    ValidationError = "destination is required"
	ErrSameOriginDestination ValidationError = "origin and destination must differ"
	ErrMissingDepartureDate  ValidationError = "departure_date is required"
	ErrInvalidDepartureDate  ValidationError = "departure_date must be YYYY-MM-DD"
	ErrPassengerCount        ValidationError = "passengers must be between 1 and 9"
	ErrInvalidSeatClass      ValidationError = "seat_class must be economy, business or first"
)
