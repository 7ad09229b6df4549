package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flightJSON = `{
	"FlightID": 42,
	"Flight_Number": "AI-101",
	"airline_name": "Air India",
	"airline_code": "AI",
	"origin_city": "New Delhi",
	"origin_code": "DEL",
	"destination_city": "Mumbai",
	"destination_code": "BOM",
	"Departure_Time": "2025-01-15T06:30:00",
	"Arrival_Time": "2025-01-15T08:45:00",
	"Duration": 135,
	"base_price": 5000,
	"dynamic_price": 4500,
	"price_breakdown": {"seat_factor": 0.1, "time_factor": -0.05, "demand_factor": 0, "seasonal_factor": 0.02, "weekend_factor": 0, "peak_hour_factor": 0.08},
	"seats_available": 7,
	"seat_class": "economy"
}`

func TestFlightUnmarshal(t *testing.T) {
	var f Flight
	require.NoError(t, json.Unmarshal([]byte(flightJSON), &f))

	assert.Equal(t, int64(42), f.ID)
	assert.Equal(t, "AI-101", f.FlightNumber)
	assert.Equal(t, 6, f.DepartureHour())
	assert.Equal(t, 135, f.Duration)
	require.NotNil(t, f.PriceBreakdown)
	assert.Equal(t, 0.08, f.PriceBreakdown.PeakHourFactor)
	assert.Equal(t, 10, f.DiscountPercent())
	assert.True(t, f.HasDiscount())
}

func TestFlightRoundTrip(t *testing.T) {
	var f Flight
	require.NoError(t, json.Unmarshal([]byte(flightJSON), &f))

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var back Flight
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, f.DepartureTime.Equal(back.DepartureTime.Time))
	assert.Equal(t, 6, back.DepartureHour())
}

func TestFlightNoDiscount(t *testing.T) {
	f := Flight{BasePrice: 4000, DynamicPrice: 4400}
	assert.False(t, f.HasDiscount())
	assert.Equal(t, 0, Flight{}.DiscountPercent())
}

func TestSearchRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  SearchRequest
		err  error
	}{
		{"valid", SearchRequest{Origin: "del", Destination: "BOM", DepartureDate: "2025-01-15", Passengers: 2}, nil},
		{"missing origin", SearchRequest{Destination: "BOM", DepartureDate: "2025-01-15"}, ErrMissingOrigin},
		{"missing destination", SearchRequest{Origin: "DEL", DepartureDate: "2025-01-15"}, ErrMissingDestination},
		{"same airports", SearchRequest{Origin: "DEL", Destination: "del", DepartureDate: "2025-01-15"}, ErrSameOriginDestination},
		{"missing date", SearchRequest{Origin: "DEL", Destination: "BOM"}, ErrMissingDepartureDate},
		{"bad date", SearchRequest{Origin: "DEL", Destination: "BOM", DepartureDate: "15/01/2025"}, ErrInvalidDepartureDate},
		{"too many", SearchRequest{Origin: "DEL", Destination: "BOM", DepartureDate: "2025-01-15", Passengers: 10}, ErrPassengerCount},
		{"negative", SearchRequest{Origin: "DEL", Destination: "BOM", DepartureDate: "2025-01-15", Passengers: -1}, ErrPassengerCount},
		{"bad class", SearchRequest{Origin: "DEL", Destination: "BOM", DepartureDate: "2025-01-15", SeatClass: "premium"}, ErrInvalidSeatClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := req.Validate()
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tt.err, err)
		})
	}
}

func TestSearchRequestDefaults(t *testing.T) {
	req := SearchRequest{Origin: "del", Destination: "bom", DepartureDate: "2025-01-15"}
	require.NoError(t, req.Validate())

	assert.Equal(t, "DEL", req.Origin)
	assert.Equal(t, 1, req.Passengers)
	assert.Equal(t, SeatClassEconomy, req.SeatClass)
	assert.Equal(t, SortByPrice, req.SortBy)
}

func TestErrorResponseMessage(t *testing.T) {
	var e ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(`{"detail":"Flight not found"}`), &e))
	assert.Equal(t, "Flight not found", e.Message())

	require.NoError(t, json.Unmarshal([]byte(`{"detail":[{"loc":["body"],"msg":"field required"}]}`), &e))
	assert.Equal(t, "", e.Message())
}
