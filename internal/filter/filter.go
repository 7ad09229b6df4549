package filter

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/flightbooking/internal/models"
)

const DefaultMaxPrice = 20000

const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
)

type Filters struct {
	Airlines    []string `json:"airlines,omitempty"`
	MaxPrice    float64  `json:"max_price"`
	TimeBuckets []string `json:"time_buckets,omitempty"`
	SortBy      string   `json:"sort_by"`
}

func Default() Filters {
	return Filters{
		MaxPrice: DefaultMaxPrice,
		SortBy:   models.SortByPrice,
	}
}

// Apply returns a new slice of the flights in all that pass f, sorted. all
// is never modified, so repeated calls always start from the full set.
func Apply(all []models.Flight, f Filters) []models.Flight {
	result := make([]models.Flight, 0, len(all))
	for _, fl := range all {
		if matches(fl, f) {
			result = append(result, fl)
		}
	}
	applySort(result, f.SortBy)
	return result
}

func matches(fl models.Flight, f Filters) bool {
	if fl.DynamicPrice > f.MaxPrice {
		return false
	}

	if len(f.Airlines) > 0 {
		found := false
		for _, name := range f.Airlines {
			if fl.AirlineName == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.TimeBuckets) > 0 {
		hour := fl.DepartureHour()
		found := false
		for _, b := range f.TimeBuckets {
			if inBucket(hour, b) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func inBucket(hour int, bucket string) bool {
	switch strings.ToLower(bucket) {
	case Morning:
		return hour >= 6 && hour < 12
	case Afternoon:
		return hour >= 12 && hour < 18
	case Evening:
		return hour >= 18 && hour < 24
	}
	return false
}

func applySort(flights []models.Flight, sortBy string) {
	if len(flights) == 0 {
		return
	}

	switch strings.ToLower(sortBy) {
	case models.SortByDuration:
		sort.SliceStable(flights, func(i, j int) bool {
			return flights[i].Duration < flights[j].Duration
		})

	case models.SortByDepartureTime:
		sort.SliceStable(flights, func(i, j int) bool {
			return flights[i].DepartureTime.Before(flights[j].DepartureTime.Time)
		})

	default:
		sort.SliceStable(flights, func(i, j int) bool {
			return flights[i].DynamicPrice < flights[j].DynamicPrice
		})
	}
}

func AirlineOptions(flights []models.Flight) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range flights {
		if f.AirlineName == "" || seen[f.AirlineName] {
			continue
		}
		seen[f.AirlineName] = true
		out = append(out, f.AirlineName)
	}
	return out
}
