package session

import (
	"context"
	"errors"
)

type Key string

const (
	KeyAuthToken      Key = "auth_token"
	KeyUserData       Key = "user_data"
	KeySearchParams   Key = "search_params"
	KeySelectedFlight Key = "selected_flight"
	KeyBookingData    Key = "booking_data"
)

var (
	ErrAbsent     = errors.New("session: key not set")
	ErrUnknownKey = errors.New("session: unknown key")
)

func Keys() []Key {
	return []Key{KeyAuthToken, KeyUserData, KeySearchParams, KeySelectedFlight, KeyBookingData}
}

func (k Key) valid() bool {
	switch k {
	case KeyAuthToken, KeyUserData, KeySearchParams, KeySelectedFlight, KeyBookingData:
		return true
	}
	return false
}

// Store is a flat string key-value store. Clear on a missing key is a no-op.
type Store interface {
	Get(ctx context.Context, key Key) (string, error)
	Put(ctx context.Context, key Key, value string) error
	Clear(ctx context.Context, key Key) error
	Close() error
}
