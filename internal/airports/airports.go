package airports

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultZone = "IST"

//go:embed airports.yaml
var airportsYAML []byte

type Airport struct {
	Code string `yaml:"code" json:"code"`
	City string `yaml:"city" json:"city"`
	Name string `yaml:"name" json:"name"`
	Zone string `yaml:"zone" json:"zone"`
}

type table struct {
	Zones    map[string]int `yaml:"zones"`
	Airports []Airport      `yaml:"airports"`
}

var (
	airportList []Airport
	byCode      map[string]Airport
	zones       map[string]*time.Location
)

func init() {
	if err := load(airportsYAML); err != nil {
		panic(fmt.Sprintf("airports: %v", err))
	}
}

func load(data []byte) error {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return err
	}

	zones = make(map[string]*time.Location, len(t.Zones))
	for name, offset := range t.Zones {
		zones[strings.ToUpper(name)] = time.FixedZone(name, offset)
	}
	if _, ok := zones[DefaultZone]; !ok {
		return fmt.Errorf("default zone %s missing", DefaultZone)
	}

	airportList = t.Airports
	byCode = make(map[string]Airport, len(t.Airports))
	for _, a := range t.Airports {
		if _, ok := zones[strings.ToUpper(a.Zone)]; !ok {
			return fmt.Errorf("airport %s: unknown zone %q", a.Code, a.Zone)
		}
		byCode[strings.ToUpper(a.Code)] = a
	}
	return nil
}

func All() []Airport {
	out := make([]Airport, len(airportList))
	copy(out, airportList)
	return out
}

func Lookup(code string) (Airport, bool) {
	a, ok := byCode[strings.ToUpper(code)]
	return a, ok
}

func City(code string) string {
	if a, ok := Lookup(code); ok {
		return a.City
	}
	return code
}

func GetTimezoneByAirport(code string) string {
	if a, ok := Lookup(code); ok {
		return strings.ToUpper(a.Zone)
	}
	return DefaultZone
}

func GetLocationByAirport(code string) *time.Location {
	return zones[GetTimezoneByAirport(code)]
}

func GetLocationByName(name string) *time.Location {
	if loc, ok := zones[strings.ToUpper(name)]; ok {
		return loc
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return zones[DefaultZone]
}

// ParseTimeWithOffset parses API timestamps. Strings carrying an offset keep
// it; naive ones are read in the named zone.
func ParseTimeWithOffset(timeStr string, tzName string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05-0700",
		"2006-01-02T15:04:05Z",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, nil
		}
	}

	loc := GetLocationByName(tzName)
	simpleFormats := []string{
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, format := range simpleFormats {
		if t, err := time.ParseInLocation(format, timeStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   timeStr,
		Message: "unable to parse time string",
	}
}

func ConvertToTimezone(t time.Time, airportCode string) time.Time {
	return t.In(GetLocationByAirport(airportCode))
}
