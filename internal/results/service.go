package results

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dharmasatrya/flightbooking/internal/filter"
	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/internal/session"
	"github.com/dharmasatrya/flightbooking/internal/ui"
	"github.com/dharmasatrya/flightbooking/internal/view"
)

const (
	loginRedirectDelay = 1500 * time.Millisecond
	msgLoginToBook     = "Please login to book flights"
	msgSelectFailed    = "Could not save the selected flight"
	defaultHistoryDays = 7
)

var ErrNoResults = errors.New("no search results")

type API interface {
	SearchFlights(ctx context.Context, req models.SearchRequest) ([]models.Flight, error)
	GetFlight(ctx context.Context, id int64) (models.FlightDetail, error)
	PriceHistory(ctx context.Context, flightID int64, seatClass string, days int) ([]models.PriceHistory, error)
	ListAirlines(ctx context.Context) ([]models.Airline, error)
	ListAirports(ctx context.Context) ([]models.Airport, error)
}

type Service struct {
	api     API
	session *session.Session
	surface ui.Surface
	sched   ui.Scheduler
	log     *zap.Logger

	mu      sync.RWMutex
	current *Results
}

func NewService(api API, sess *session.Session, surface ui.Surface, sched ui.Scheduler, log *zap.Logger) *Service {
	if sched == nil {
		sched = ui.AfterFunc
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		api:     api,
		session: sess,
		surface: surface,
		sched:   sched,
		log:     log.With(zap.String("component", "results")),
	}
}

// Search validates and stores the criteria, then issues one search call.
// An empty answer is StateEmpty, not an error.
func (s *Service) Search(ctx context.Context, criteria models.SearchRequest) (*Results, error) {
	if err := criteria.Validate(); err != nil {
		s.surface.Error(err.Error())
		return nil, err
	}

	if err := s.session.SetSearchParams(ctx, criteria); err != nil {
		s.log.Error("failed to store search params", zap.Error(err))
		s.surface.Error("Failed to fetch flights")
		return nil, fmt.Errorf("store search params: %w", err)
	}

	start := time.Now()
	flights, err := s.api.SearchFlights(ctx, criteria)
	if err != nil {
		s.log.Warn("search failed",
			zap.String("origin", criteria.Origin),
			zap.String("destination", criteria.Destination),
			zap.Error(err),
		)
		res := newResults(criteria, StateFailed, nil)
		s.setCurrent(res)
		s.surface.Error(err.Error())
		s.render(res)
		return res, fmt.Errorf("search flights: %w", err)
	}

	state := StateReady
	if len(flights) == 0 {
		state = StateEmpty
	}
	res := newResults(criteria, state, flights)
	s.setCurrent(res)

	s.log.Info("search completed",
		zap.String("origin", criteria.Origin),
		zap.String("destination", criteria.Destination),
		zap.Int("flights", len(flights)),
		zap.Duration("duration", time.Since(start)),
	)

	s.render(res)
	return res, nil
}

func (s *Service) Load(ctx context.Context) (*Results, error) {
	params, ok, err := s.session.SearchParams(ctx)
	if err != nil {
		s.log.Error("failed to read search params", zap.Error(err))
	}
	if !ok || err != nil {
		s.surface.Navigate(ui.PageIndex, nil)
		return nil, ErrNoResults
	}
	return s.Search(ctx, params)
}

func (s *Service) Current() (*Results, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

func (s *Service) setCurrent(r *Results) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = r
}

func (s *Service) Apply(f filter.Filters) ([]models.Flight, error) {
	res, ok := s.Current()
	if !ok {
		return nil, ErrNoResults
	}
	visible := res.Apply(f)
	s.render(res)
	return visible, nil
}

func (s *Service) Reset() ([]models.Flight, error) {
	return s.Apply(filter.Default())
}

func (s *Service) AirlineOptions() []string {
	res, ok := s.Current()
	if !ok {
		return nil
	}
	return res.AirlineOptions()
}

func (s *Service) Summary() (view.SearchSummary, bool) {
	res, ok := s.Current()
	if !ok {
		return view.SearchSummary{}, false
	}
	return view.NewSearchSummary(res.Criteria()), true
}

// SelectFlight stores the flight and opens its details page. Unknown ids
// are ignored.
func (s *Service) SelectFlight(ctx context.Context, id int64) error {
	flight, ok := s.find(id)
	if !ok {
		return nil
	}
	if err := s.session.SetSelectedFlight(ctx, flight); err != nil {
		s.log.Error("failed to store selected flight", zap.Int64("flight_id", id), zap.Error(err))
		s.surface.Error(msgSelectFailed)
		return fmt.Errorf("store selected flight: %w", err)
	}
	s.surface.Navigate(ui.PageFlightDetails, url.Values{"id": {strconv.FormatInt(id, 10)}})
	return nil
}

// BookFlight stores the flight and opens the booking page. Anonymous users
// are sent to login first.
func (s *Service) BookFlight(ctx context.Context, id int64) error {
	if !s.session.IsLoggedIn(ctx) {
		s.surface.Error(msgLoginToBook)
		ui.NavigateAfter(s.sched, s.surface, loginRedirectDelay, ui.PageLogin,
			url.Values{"redirect": {string(ui.PageResults)}})
		return nil
	}

	flight, ok := s.find(id)
	if !ok {
		return nil
	}
	if err := s.session.SetSelectedFlight(ctx, flight); err != nil {
		s.log.Error("failed to store selected flight", zap.Int64("flight_id", id), zap.Error(err))
		s.surface.Error(msgSelectFailed)
		return fmt.Errorf("store selected flight: %w", err)
	}
	s.surface.Navigate(ui.PageBooking, nil)
	return nil
}

func (s *Service) find(id int64) (models.Flight, bool) {
	res, ok := s.Current()
	if !ok {
		return models.Flight{}, false
	}
	return res.Find(id)
}

// FlightDetails loads a flight and its recent price history. A failed
// history lookup still renders the flight.
func (s *Service) FlightDetails(ctx context.Context, id int64, seatClass string) (view.FlightDetailsView, error) {
	detail, err := s.api.GetFlight(ctx, id)
	if err != nil {
		s.surface.Error(err.Error())
		return view.FlightDetailsView{}, fmt.Errorf("get flight %d: %w", id, err)
	}

	if seatClass == "" {
		seatClass = models.SeatClassEconomy
	}
	history, err := s.api.PriceHistory(ctx, id, seatClass, defaultHistoryDays)
	if err != nil {
		s.log.Warn("price history unavailable", zap.Int64("flight_id", id), zap.Error(err))
		history = nil
	}

	v := view.NewFlightDetailsView(detail, history)
	s.surface.Render(v)
	return v, nil
}

func (s *Service) PriceHistory(ctx context.Context, id int64, seatClass string, days int) ([]models.PriceHistory, error) {
	history, err := s.api.PriceHistory(ctx, id, seatClass, days)
	if err != nil {
		return nil, fmt.Errorf("price history %d: %w", id, err)
	}
	return history, nil
}

type Reference struct {
	Airlines []models.Airline `json:"airlines"`
	Airports []models.Airport `json:"airports"`
}

func (s *Service) LoadReferenceData(ctx context.Context) (Reference, error) {
	airlines, err := s.api.ListAirlines(ctx)
	if err != nil {
		s.surface.Error(err.Error())
		return Reference{}, fmt.Errorf("list airlines: %w", err)
	}
	list, err := s.api.ListAirports(ctx)
	if err != nil {
		s.surface.Error(err.Error())
		return Reference{}, fmt.Errorf("list airports: %w", err)
	}
	return Reference{Airlines: airlines, Airports: list}, nil
}

func (s *Service) render(res *Results) {
	s.surface.Render(view.NewResultsView(
		string(res.State()),
		view.NewSearchSummary(res.Criteria()),
		res.Visible(),
		res.AirlineOptions(),
		res.Filters(),
	))
}
