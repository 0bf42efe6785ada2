package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/sabbir-hossain/flight-scraper/models"
)

// Reporter renders the ranked flights for one route.
type Reporter interface {
	Report(route models.Route, flights []models.Flight)
}

// TableReporter prints one grid table per route.
type TableReporter struct {
	w io.Writer
}

func NewTableReporter(w io.Writer) *TableReporter {
	return &TableReporter{w: w}
}

func (t *TableReporter) Report(rt models.Route, flights []models.Flight) {
	if len(flights) == 0 {
		fmt.Fprintf(t.w, "\nNo flights found for %s\n", rt)

		return
	}

	fmt.Fprintf(t.w, "\nTop %d cheapest flights from %s to %s on %s:\n",
		len(flights), rt.Origin, rt.Destination, rt.Departure.Format("Mon, 02 Jan 2006"))

	rows := make([][]string, 0, len(flights))
	for _, f := range flights {
		rows = append(rows, []string{f.Airline, f.Price, f.Duration})
	}

	fmt.Fprint(t.w, renderGrid([]string{"Airline", "Price", "Duration"}, rows))
}

// renderGrid draws an aligned grid table. Column widths use display
// width rather than byte length so currency symbols and other wide runes
// keep the borders straight.
func renderGrid(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	var b strings.Builder

	border := func() {
		for _, w := range widths {
			b.WriteByte('+')
			b.WriteString(strings.Repeat("-", w+2))
		}
		b.WriteString("+\n")
	}

	line := func(cells []string) {
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString("| ")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", w-runewidth.StringWidth(cell)+1))
		}
		b.WriteString("|\n")
	}

	border()
	line(headers)
	border()
	for _, row := range rows {
		line(row)
	}
	border()

	return b.String()
}
