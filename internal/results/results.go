package results

import (
	"sync"

	"github.com/dharmasatrya/flightbooking/internal/filter"
	"github.com/dharmasatrya/flightbooking/internal/models"
)

type State string

const (
	StateReady  State = "ready"
	StateEmpty  State = "empty"
	StateFailed State = "failed"
)

// Results is one search outcome. The full flight list never changes after
// the search; the visible list is recomputed from it on every Apply.
type Results struct {
	mu       sync.RWMutex
	criteria models.SearchRequest
	state    State
	all      []models.Flight
	filters  filter.Filters
	visible  []models.Flight
}

func newResults(criteria models.SearchRequest, state State, flights []models.Flight) *Results {
	r := &Results{
		criteria: criteria,
		state:    state,
		all:      flights,
		filters:  filter.Default(),
	}
	r.visible = filter.Apply(r.all, r.filters)
	return r
}

func (r *Results) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *Results) Criteria() models.SearchRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.criteria
}

func (r *Results) All() []models.Flight {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Flight(nil), r.all...)
}

func (r *Results) Visible() []models.Flight {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Flight(nil), r.visible...)
}

func (r *Results) Filters() filter.Filters {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filters
}

func (r *Results) Apply(f filter.Filters) []models.Flight {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.filters = f
	r.visible = filter.Apply(r.all, f)
	return append([]models.Flight(nil), r.visible...)
}

func (r *Results) Reset() []models.Flight {
	return r.Apply(filter.Default())
}

func (r *Results) AirlineOptions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter.AirlineOptions(r.all)
}

func (r *Results) Find(id int64) (models.Flight, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.all {
		if f.ID == id {
			return f, true
		}
	}
	return models.Flight{}, false
}
