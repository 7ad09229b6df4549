package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dharmasatrya/flightbooking/internal/models"
)

// Session is the typed view over a Store. Missing values return ok=false
// with a nil error.
type Session struct {
	store Store
}

func New(store Store) *Session {
	return &Session{store: store}
}

func (s *Session) Store() Store {
	return s.store
}

func (s *Session) Token(ctx context.Context) (string, bool, error) {
	v, err := s.store.Get(ctx, KeyAuthToken)
	if errors.Is(err, ErrAbsent) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, v != "", nil
}

func (s *Session) SetToken(ctx context.Context, token string) error {
	return s.store.Put(ctx, KeyAuthToken, token)
}

func (s *Session) IsLoggedIn(ctx context.Context) bool {
	_, ok, err := s.Token(ctx)
	return err == nil && ok
}

func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx, KeyAuthToken); err != nil {
		return err
	}
	return s.store.Clear(ctx, KeyUserData)
}

func (s *Session) User(ctx context.Context) (models.User, bool, error) {
	var u models.User
	ok, err := s.getJSON(ctx, KeyUserData, &u)
	return u, ok, err
}

func (s *Session) SetUser(ctx context.Context, u models.User) error {
	return s.putJSON(ctx, KeyUserData, u)
}

func (s *Session) SearchParams(ctx context.Context) (models.SearchRequest, bool, error) {
	var r models.SearchRequest
	ok, err := s.getJSON(ctx, KeySearchParams, &r)
	return r, ok, err
}

func (s *Session) SetSearchParams(ctx context.Context, r models.SearchRequest) error {
	return s.putJSON(ctx, KeySearchParams, r)
}

func (s *Session) SelectedFlight(ctx context.Context) (models.Flight, bool, error) {
	var f models.Flight
	ok, err := s.getJSON(ctx, KeySelectedFlight, &f)
	return f, ok, err
}

func (s *Session) SetSelectedFlight(ctx context.Context, f models.Flight) error {
	return s.putJSON(ctx, KeySelectedFlight, f)
}

func (s *Session) BookingData(ctx context.Context) (models.Booking, bool, error) {
	var b models.Booking
	ok, err := s.getJSON(ctx, KeyBookingData, &b)
	return b, ok, err
}

func (s *Session) SetBookingData(ctx context.Context, b models.Booking) error {
	return s.putJSON(ctx, KeyBookingData, b)
}

func (s *Session) getJSON(ctx context.Context, key Key, dst interface{}) (bool, error) {
	v, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrAbsent) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Session) putJSON(ctx context.Context, key Key, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.store.Put(ctx, key, string(data))
}
