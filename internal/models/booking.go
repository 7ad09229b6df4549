package models

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"

	DefaultNationality = "India"
)

type Passenger struct {
	FirstName      string  `json:"First_name" validate:"required"`
	LastName       string  `json:"Last_name" validate:"required"`
	DateOfBirth    string  `json:"Date_of_birth" validate:"required"`
	Gender         string  `json:"Gender" validate:"required"`
	Nationality    string  `json:"Nationality"`
	PassportNumber *string `json:"Passport_number"`
	Email          string  `json:"Email" validate:"required,pnemail"`
	Phone          string  `json:"Phone" validate:"required,pnphone"`
}

type BookingRequest struct {
	FlightID   int64       `json:"FlightID"`
	SeatClass  string      `json:"Seat_class"`
	Passengers []Passenger `json:"passengers"`
}

type FlightSummary struct {
	FlightNumber string    `json:"flight_number"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	Departure    Timestamp `json:"departure"`
}

type Booking struct {
	ID            int64         `json:"BookingID"`
	PNR           string        `json:"pnr"`
	FlightID      int64         `json:"FlightID"`
	FlightDetails FlightSummary `json:"flight_details"`
	SeatClass     string        `json:"Seat_class"`
	NumPassengers int           `json:"Num_passengers"`
	TotalPrice    float64       `json:"Total_price"`
	Status        string        `json:"Booking_status"`
	PaymentStatus string        `json:"Payment_status"`
	BookingDate   Timestamp     `json:"Booking_Date"`
	ExpiryTime    *Timestamp    `json:"Expiry_time,omitempty"`
	Passengers    []Passenger   `json:"passengers"`
}

type ConfirmRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type Confirmation struct {
	Message       string  `json:"message"`
	PNR           string  `json:"pnr"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	TotalAmount   float64 `json:"total_amount"`
}

type CancelResult map[string]interface{}
