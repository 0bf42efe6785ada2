package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Unknown is the placeholder for fields the results page did not expose.
// The site renders listings with missing airline names or durations often
// enough that a partial row is still worth reporting.
const Unknown = "Unknown"

// Route is one search to perform: origin, destination and travel dates.
// A zero Return means a one-way search.
type Route struct {
	Origin      string
	Destination string
	Departure   time.Time
	Return      time.Time
}

func (r Route) String() string {
	return fmt.Sprintf("%s to %s", r.Origin, r.Destination)
}

// Slug returns a filesystem-safe identifier for the route, used to name
// failure artifacts.
func (r Route) Slug() string {
	clean := func(s string) string {
		var b strings.Builder
		for _, ch := range s {
			switch {
			case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
				b.WriteRune(ch)
			default:
				b.WriteRune('-')
			}
		}
		return b.String()
	}
	return fmt.Sprintf("%s_to_%s", clean(r.Origin), clean(r.Destination))
}

// Flight is one extracted result row. Price and Duration hold the raw
// page text; either may be Unknown when the row rendered without it.
type Flight struct {
	Route    Route
	Airline  string
	Price    string
	Duration string
}

// PriceValue parses the scraped price text into a number. Currency
// symbols, grouping commas and whitespace are stripped first. Returns
// ok=false for Unknown or anything that still fails to parse.
func (f Flight) PriceValue() (float64, bool) {
	if f.Price == "" || f.Price == Unknown {
		return 0, false
	}

	var b strings.Builder
	for _, ch := range f.Price {
		if (ch >= '0' && ch <= '9') || ch == '.' {
			b.WriteRune(ch)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
