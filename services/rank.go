package services

import (
	"sort"

	"github.com/sabbir-hossain/flight-scraper/models"
)

// Rank stable-sorts flights by ascending price and returns the first n.
// Rows whose price did not parse keep their relative order after every
// priced row; they are reported, not dropped.
func Rank(flights []models.Flight, n int) []models.Flight {
	ranked := make([]models.Flight, len(flights))
	copy(ranked, flights)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, iKnown := ranked[i].PriceValue()
		pj, jKnown := ranked[j].PriceValue()

		if iKnown != jKnown {
			return iKnown
		}

		if !iKnown {
			return false
		}

		return pi < pj
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}
