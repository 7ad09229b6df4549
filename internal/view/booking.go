package view

import (
	"fmt"
	"strings"

	"github.com/dharmasatrya/flightbooking/internal/airports"
	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/pkg/currency"
	"github.com/dharmasatrya/flightbooking/pkg/format"
)

type FlightSummary struct {
	OriginCode      string `json:"origin_code"`
	OriginCity      string `json:"origin_city"`
	DestinationCode string `json:"destination_code"`
	DestinationCity string `json:"destination_city"`
	AirlineName     string `json:"airline_name"`
	FlightNumber    string `json:"flight_number"`
	Departure       string `json:"departure"`
	Duration        string `json:"duration"`
	SeatClass       string `json:"seat_class"`
}

func NewFlightSummary(f models.Flight) FlightSummary {
	return FlightSummary{
		OriginCode:      f.OriginCode,
		OriginCity:      f.OriginCity,
		DestinationCode: f.DestinationCode,
		DestinationCity: f.DestinationCity,
		AirlineName:     f.AirlineName,
		FlightNumber:    f.FlightNumber,
		Departure:       format.DateTime(airports.ConvertToTimezone(f.DepartureTime.Time, f.OriginCode)),
		Duration:        format.Duration(f.Duration),
		SeatClass:       strings.ToUpper(f.SeatClass),
	}
}

type BreakdownLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func Breakdown(pb *models.PriceBreakdown) []BreakdownLine {
	if pb == nil {
		return nil
	}
	return []BreakdownLine{
		{"Seat Availability Factor", format.Percent(pb.SeatFactor)},
		{"Time to Departure", format.Percent(pb.TimeFactor)},
		{"Demand Factor", format.Percent(pb.DemandFactor)},
		{"Seasonal Factor", format.Percent(pb.SeasonalFactor)},
		{"Weekend Premium", format.Percent(pb.WeekendFactor)},
		{"Peak Hour Factor", format.Percent(pb.PeakHourFactor)},
	}
}

type FareSummary struct {
	Passengers string          `json:"passengers"`
	BaseFare   string          `json:"base_fare"`
	Discount   string          `json:"discount,omitempty"`
	Taxes      string          `json:"taxes"`
	Total      string          `json:"total"`
	Breakdown  []BreakdownLine `json:"breakdown,omitempty"`
}

func NewFareSummary(passengers int, totalBase, discount, taxes, total float64, pb *models.PriceBreakdown) FareSummary {
	s := FareSummary{
		Passengers: fmt.Sprintf("%d Passenger(s)", passengers),
		BaseFare:   currency.FormatINR(totalBase),
		Taxes:      currency.FormatINR(taxes),
		Total:      currency.FormatINR(total),
		Breakdown:  Breakdown(pb),
	}
	if discount > 0 {
		s.Discount = currency.FormatDiscount(discount)
	}
	return s
}

type PassengerForm struct {
	ID        int              `json:"id"`
	Label     string           `json:"label"`
	Removable bool             `json:"removable"`
	Passenger models.Passenger `json:"passenger"`
}

type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type BookingView struct {
	Flight     FlightSummary   `json:"flight"`
	Passengers []PassengerForm `json:"passengers"`
	CanAdd     bool            `json:"can_add"`
	Fares      FareSummary     `json:"fares"`
	Contact    Contact         `json:"contact"`
	MaxDOB     string          `json:"max_dob"`
	Submitting bool            `json:"submitting"`
}
