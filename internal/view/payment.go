package view

import (
	"strconv"
	"strings"

	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/pkg/currency"
	"github.com/dharmasatrya/flightbooking/pkg/format"
)

type BookingSummary struct {
	PNR        string `json:"pnr"`
	Flight     string `json:"flight"`
	Route      string `json:"route"`
	Date       string `json:"date"`
	Passengers string `json:"passengers"`
	Class      string `json:"class"`
	Total      string `json:"total"`
	Status     string `json:"status,omitempty"`
}

func NewBookingSummary(b models.Booking) BookingSummary {
	s := BookingSummary{
		PNR:        b.PNR,
		Flight:     b.FlightDetails.FlightNumber,
		Route:      b.FlightDetails.Origin + " → " + b.FlightDetails.Destination,
		Passengers: strconv.Itoa(b.NumPassengers),
		Class:      strings.ToUpper(b.SeatClass),
		Total:      currency.FormatINR(b.TotalPrice),
		Status:     b.Status,
	}
	if !b.FlightDetails.Departure.IsZero() {
		s.Date = format.Date(b.FlightDetails.Departure.Time)
	}
	return s
}

type PaymentView struct {
	Booking BookingSummary `json:"booking"`
	Amount  string         `json:"amount"`
	Timer   string         `json:"timer"`
	Urgent  bool           `json:"urgent"`
	State   string         `json:"state"`
}

type BookingsView struct {
	Bookings []BookingSummary `json:"bookings"`
}
