package view

import (
	"github.com/dharmasatrya/flightbooking/internal/airports"
	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/pkg/currency"
	"github.com/dharmasatrya/flightbooking/pkg/format"
)

type PricePoint struct {
	RecordedAt string `json:"recorded_at"`
	Price      string `json:"price"`
	Seats      int    `json:"seats"`
}

type FlightDetailsView struct {
	ID           int64        `json:"id"`
	FlightNumber string       `json:"flight_number"`
	Airline      string       `json:"airline"`
	From         string       `json:"from"`
	To           string       `json:"to"`
	Departure    string       `json:"departure"`
	Arrival      string       `json:"arrival"`
	Duration     string       `json:"duration"`
	Price        string       `json:"price"`
	Seats        string       `json:"seats"`
	Status       string       `json:"status"`
	History      []PricePoint `json:"history"`
}

func NewFlightDetailsView(d models.FlightDetail, history []models.PriceHistory) FlightDetailsView {
	v := FlightDetailsView{
		ID:           d.ID,
		FlightNumber: d.FlightNumber,
		Airline:      d.Airline.Name,
		From:         d.DepartureAirport.City + " (" + d.DepartureAirport.Code + ")",
		To:           d.ArrivalAirport.City + " (" + d.ArrivalAirport.Code + ")",
		Departure:    format.DateTime(airports.ConvertToTimezone(d.DepartureTime.Time, d.DepartureAirport.Code)),
		Arrival:      format.DateTime(airports.ConvertToTimezone(d.ArrivalTime.Time, d.ArrivalAirport.Code)),
		Duration:     format.Duration(d.Duration),
		Price:        currency.FormatINR(d.DynamicPrice),
		Seats:        SeatsLabel(d.SeatsAvailable),
		Status:       d.Status,
		History:      make([]PricePoint, 0, len(history)),
	}
	for _, h := range history {
		v.History = append(v.History, PricePoint{
			RecordedAt: format.DateTime(h.RecordedAt.Time),
			Price:      currency.FormatINR(h.CalculatedPrice),
			Seats:      h.AvailableSeats,
		})
	}
	return v
}
