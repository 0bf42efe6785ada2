package services

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabbir-hossain/flight-scraper/models"
)

func TestReportEmptyRoute(t *testing.T) {
	var buf strings.Builder
	rep := NewTableReporter(&buf)

	rep.Report(models.Route{Origin: "BLR", Destination: "DEL"}, nil)

	assert.Contains(t, buf.String(), "No flights found for BLR to DEL")
	assert.NotContains(t, buf.String(), "+--")
}

func TestReportRendersTable(t *testing.T) {
	var buf strings.Builder
	rep := NewTableReporter(&buf)

	rt := models.Route{
		Origin:      "BLR",
		Destination: "DEL",
		Departure:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	flights := []models.Flight{
		{Route: rt, Airline: "IndiGo", Price: "₹4,520", Duration: "2h 45m"},
		{Route: rt, Airline: "Air India", Price: "₹5,980", Duration: "2h 40m"},
		{Route: rt, Airline: models.Unknown, Price: models.Unknown, Duration: models.Unknown},
	}

	rep.Report(rt, flights)
	out := buf.String()

	assert.Contains(t, out, "Top 3 cheapest flights from BLR to DEL on Mon, 31 Aug 2026")
	assert.Contains(t, out, "IndiGo")
	assert.Contains(t, out, "₹4,520")
	assert.Contains(t, out, "Unknown")
	assert.Contains(t, out, "| Airline")
}

func TestRenderGridAlignment(t *testing.T) {
	out := renderGrid(
		[]string{"Airline", "Price", "Duration"},
		[][]string{
			{"IndiGo", "₹4,520", "2h 45m"},
			{"Air India Express", "₹12,300", "4h"},
			{"Unknown", "Unknown", "Unknown"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 6)

	// Every border and row must line up to the same display width.
	want := runewidth.StringWidth(lines[0])
	for _, line := range lines {
		assert.Equal(t, want, runewidth.StringWidth(line), "misaligned line: %q", line)
		assert.True(t, strings.HasPrefix(line, "+") || strings.HasPrefix(line, "|"))
	}
}
