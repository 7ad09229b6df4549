package models

import "encoding/json"

// ErrorResponse is the error body of the booking API. Detail is a string
// for handled errors and a list for request validation failures.
type ErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

func (e ErrorResponse) Message() string {
	var s string
	if err := json.Unmarshal(e.Detail, &s); err != nil {
		return ""
	}
	return s
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type User struct {
	ID        int64  `json:"UserID"`
	Email     string `json:"Email"`
	FirstName string `json:"First_name"`
	LastName  string `json:"Last_name"`
	Phone     string `json:"Phone,omitempty"`
}

type RegisterRequest struct {
	Email     string `json:"Email" validate:"required,pnemail"`
	Password  string `json:"Password" validate:"required,min=8"`
	FirstName string `json:"First_name" validate:"required"`
	LastName  string `json:"Last_name" validate:"required"`
	Phone     string `json:"Phone" validate:"required,pnphone"`
}
