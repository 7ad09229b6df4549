package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/internal/ratelimit"
	"github.com/dharmasatrya/flightbooking/internal/session"
	"github.com/dharmasatrya/flightbooking/internal/ui"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *session.Session, *ui.Recorder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	sess := session.New(session.NewMemoryStore())
	rec := ui.NewRecorder(ui.Immediate)
	cfg := Config{BaseURL: srv.URL, Prefix: "/api/v1", Timeout: 2 * time.Second}
	c := NewClient(cfg, sess, nil, WithNavigator(rec), WithLimiter(ratelimit.NewEndpointLimiterWithDefaults()))
	return c, sess, rec
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginThenProfileUsesBearer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "a@b.co", r.PostForm.Get("username"))
		assert.Equal(t, "secret12", r.PostForm.Get("password"))
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "T", "token_type": "bearer"})
	})
	mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer T", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		writeJSON(w, http.StatusOK, map[string]interface{}{"UserID": 1, "Email": "a@b.co", "First_name": "Asha"})
	})

	c, sess, _ := newTestClient(t, mux)
	ctx := context.Background()

	tok, err := c.Login(ctx, "a@b.co", "secret12")
	require.NoError(t, err)
	assert.Equal(t, "T", tok.AccessToken)

	stored, ok, err := sess.Token(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "T", stored)

	user, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.FirstName)
}

func TestLoginRejected(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
		want string
	}{
		{"detail", map[string]string{"detail": "Incorrect email or password"}, "Incorrect email or password"},
		{"no detail", map[string]string{}, "Login failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, sess, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, tt.body)
			}))

			_, err := c.Login(context.Background(), "a@b.co", "wrong")
			require.Error(t, err)
			assert.Equal(t, KindRequestFailed, Kind(err))
			assert.Equal(t, tt.want, err.Error())
			assert.False(t, sess.IsLoggedIn(context.Background()))
			assert.Empty(t, rec.Navigations())
		})
	}
}

func TestUnauthorizedClearsSession(t *testing.T) {
	c, sess, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
	}))
	ctx := context.Background()
	require.NoError(t, sess.SetToken(ctx, "stale"))
	require.NoError(t, sess.SetUser(ctx, models.User{ID: 1}))

	_, err := c.MyBookings(ctx)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, KindSessionExpired, Kind(err))

	assert.False(t, sess.IsLoggedIn(ctx))
	_, ok, _ := sess.User(ctx)
	assert.False(t, ok)

	navs := rec.Navigations()
	require.Len(t, navs, 1)
	assert.Equal(t, ui.PageLogin, navs[0].Page)
}

func TestRequestErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"string detail", 404, `{"detail":"Flight not found"}`, "Flight not found"},
		{"list detail", 422, `{"detail":[{"msg":"field required"}]}`, "Request failed"},
		{"not json", 500, `oops`, "Request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))

			_, err := c.GetFlight(context.Background(), 9)
			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tt.status, reqErr.Status)
			assert.Equal(t, tt.want, reqErr.Message)
		})
	}
}

func TestSearchFlightsEmpty(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/flights/search", r.URL.Path)
		var req models.SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "DEL", req.Origin)
		writeJSON(w, http.StatusOK, []models.Flight{})
	}))

	flights, err := c.SearchFlights(context.Background(), models.SearchRequest{Origin: "DEL", Destination: "BOM", DepartureDate: "2025-01-15", Passengers: 1, SeatClass: "economy"})
	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestEndpointRoutes(t *testing.T) {
	type call struct {
		method string
		path   string
		query  string
	}
	var got []call
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, call{r.Method, r.URL.Path, r.URL.RawQuery})
		switch r.URL.Path {
		case "/api/v1/bookings/my-bookings", "/api/v1/flights/airlines/list", "/api/v1/flights/airports/list", "/api/v1/price-history/5":
			writeJSON(w, http.StatusOK, []interface{}{})
		default:
			writeJSON(w, http.StatusOK, map[string]interface{}{})
		}
	}))
	ctx := context.Background()

	_, err := c.ConfirmBooking(ctx, "abc123", "upi")
	require.NoError(t, err)
	_, err = c.CancelBooking(ctx, "ABC123")
	require.NoError(t, err)
	_, err = c.GetBooking(ctx, "ABC123")
	require.NoError(t, err)
	_, err = c.MyBookings(ctx)
	require.NoError(t, err)
	_, err = c.ListAirlines(ctx)
	require.NoError(t, err)
	_, err = c.ListAirports(ctx)
	require.NoError(t, err)
	_, err = c.PriceHistory(ctx, 5, "business", 7)
	require.NoError(t, err)
	_, err = c.FetchExternalFlights(ctx, "ai", "del", "bom", "2025-01-15")
	require.NoError(t, err)

	assert.Equal(t, []call{
		{"POST", "/api/v1/bookings/ABC123/confirm", "payment_method=upi"},
		{"DELETE", "/api/v1/bookings/ABC123/cancel", ""},
		{"GET", "/api/v1/bookings/ABC123", ""},
		{"GET", "/api/v1/bookings/my-bookings", ""},
		{"GET", "/api/v1/flights/airlines/list", ""},
		{"GET", "/api/v1/flights/airports/list", ""},
		{"GET", "/api/v1/price-history/5", "days=7&seat_class=business"},
		{"GET", "/api/v1/external/flights/fetch", "airline_code=AI&date=2025-01-15&destination=BOM&origin=DEL"},
	}, got)
}

func TestTimeoutBoundsAttempt(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	c := NewClient(Config{BaseURL: srv.URL, Prefix: "/api/v1", Timeout: 50 * time.Millisecond}, session.New(session.NewMemoryStore()), nil)
	_, err := c.ListAirlines(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, KindUnknown, Kind(err))
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindUnknown, Kind(nil))
	assert.Equal(t, KindValidationFailed, Kind(fmt.Errorf("search: %w", models.ErrMissingOrigin)))
	assert.Equal(t, KindRequestFailed, Kind(fmt.Errorf("wrap: %w", NewRequestError(400, "bad"))))
	assert.Equal(t, KindSessionExpired, Kind(fmt.Errorf("wrap: %w", ErrSessionExpired)))
	assert.Equal(t, "session_expired", KindSessionExpired.String())
}

func TestPacingPastTimeoutNeverSends(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusOK, []interface{}{})
	}))
	t.Cleanup(srv.Close)

	limiter := ratelimit.NewEndpointLimiter(ratelimit.Config{
		Default: ratelimit.Limit{RPS: 10, Burst: 10},
		Groups:  map[string]ratelimit.Limit{ratelimit.GroupFlights: {RPS: 0.001, Burst: 1}},
	})
	sess := session.New(session.NewMemoryStore())
	c := NewClient(Config{BaseURL: srv.URL, Prefix: "/api/v1", Timeout: time.Second}, sess, nil, WithLimiter(limiter))

	req := models.SearchRequest{Origin: "DEL", Destination: "BOM", DepartureDate: "2025-01-15"}
	_, err := c.SearchFlights(context.Background(), req)
	require.NoError(t, err)

	_, err = c.SearchFlights(context.Background(), req)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), hits.Load())

	_, err = c.MyBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}
