package api

import (
	"errors"

	"github.com/dharmasatrya/flightbooking/internal/models"
)

// ErrSessionExpired is returned after a 401 has cleared the stored credentials.
var ErrSessionExpired = errors.New("Session expired. Please login again.")

const (
	defaultRequestMessage = "Request failed"
	defaultLoginMessage   = "Login failed"
)

type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func NewRequestError(status int, message string) *RequestError {
	return &RequestError{Status: status, Message: message}
}

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindSessionExpired
	KindRequestFailed
	KindValidationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindSessionExpired:
		return "session_expired"
	case KindRequestFailed:
		return "request_failed"
	case KindValidationFailed:
		return "validation_failed"
	default:
		return "unknown"
	}
}

func Kind(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, ErrSessionExpired) {
		return KindSessionExpired
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return KindRequestFailed
	}
	var valErr models.ValidationError
	if errors.As(err, &valErr) {
		return KindValidationFailed
	}
	return KindUnknown
}
