package scraper

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sabbir-hossain/flight-scraper/config"
	"github.com/sabbir-hossain/flight-scraper/models"
)

// popupWait bounds the best-effort check for the login overlay. Short on
// purpose: most page loads have no popup.
const popupWait = 2 * time.Second

// Scraper drives the search site through a Chrome session.
type Scraper struct {
	cfg *config.Config
	log *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Scraper {
	return &Scraper{cfg: cfg, log: log}
}

// Open loads the search page and waits for the form to render.
func (s *Scraper) Open(ctx context.Context) error {
	s.log.Debug("loading search page", zap.String("url", s.cfg.Search.URL))

	nav, cancel := context.WithTimeout(ctx, s.cfg.Browser.PageTimeout())
	defer cancel()

	if err := chromedp.Run(nav, chromedp.Navigate(s.cfg.Search.URL)); err != nil {
		return eris.Wrapf(ErrNavigation, "opening %s: %v", s.cfg.Search.URL, err)
	}

	if err := originInput.WaitVisible(ctx, s.cfg.Browser.PageTimeout()); err != nil {
		return eris.Wrapf(ErrNavigation, "search form did not render: %v", err)
	}

	s.DismissPopup(ctx)

	return nil
}

// DismissPopup closes the login overlay if one is up. Best-effort: the
// popup only appears sometimes and its absence is not an error.
func (s *Scraper) DismissPopup(ctx context.Context) {
	if err := popupClose.Click(ctx, popupWait); err != nil {
		s.log.Debug("no login popup to dismiss")

		return
	}

	s.log.Info("login popup dismissed")
}

// FillSearch enters the route into the form, submits it and waits for
// the results page.
func (s *Scraper) FillSearch(ctx context.Context, rt models.Route) error {
	s.DismissPopup(ctx)

	if err := s.fillCity(ctx, originInput, rt.Origin); err != nil {
		return err
	}

	if err := s.fillCity(ctx, destinationInput, rt.Destination); err != nil {
		return err
	}

	if err := s.selectDate(ctx, departureDateField, rt.Departure); err != nil {
		return err
	}

	if !rt.Return.IsZero() {
		if err := s.selectDate(ctx, returnDateField, rt.Return); err != nil {
			return err
		}
	}

	if err := searchButton.Click(ctx, s.cfg.Browser.WaitTimeout()); err != nil {
		return err
	}

	s.log.Info("search submitted",
		zap.String("route", rt.String()),
		zap.String("departure", rt.Departure.Format("2006-01-02")))

	if err := resultsMarker.WaitVisible(ctx, s.cfg.Browser.ResultsTimeout()); err != nil {
		return eris.Wrapf(ErrWaitTimeout, "results page for %s: %v", rt, err)
	}

	return nil
}

// fillCity types an airport code and confirms it through the suggestion
// list. One repeat pass: the list occasionally swallows the first burst
// of keystrokes while the page is still hydrating.
func (s *Scraper) fillCity(ctx context.Context, input Locator, city string) error {
	wait := s.cfg.Browser.WaitTimeout()

	if err := input.Type(ctx, wait, city); err != nil {
		return err
	}

	if err := citySuggestion(city).Click(ctx, wait); err == nil {
		return nil
	}

	if err := input.Type(ctx, wait, city); err != nil {
		return err
	}

	return citySuggestion(city).Click(ctx, wait)
}

// selectDate opens the date picker and clicks the day cell. When the
// exact day is disabled or missing, the following day is tried before
// giving up.
func (s *Scraper) selectDate(ctx context.Context, field Locator, day time.Time) error {
	wait := s.cfg.Browser.WaitTimeout()

	if err := field.Click(ctx, wait); err != nil {
		return err
	}

	if err := calendar.WaitVisible(ctx, wait); err != nil {
		return err
	}

	if err := calendarDay(day).Click(ctx, wait); err == nil {
		return nil
	}

	s.log.Warn("date cell unavailable, trying next day",
		zap.String("field", field.Name),
		zap.String("date", day.Format("2006-01-02")))

	return calendarDay(day.AddDate(0, 0, 1)).Click(ctx, wait)
}

// ResetForm clears both city inputs for the next route. On failure the
// caller should reload the page rather than retry the reset.
func (s *Scraper) ResetForm(ctx context.Context) error {
	wait := s.cfg.Browser.WaitTimeout()

	if err := originInput.Clear(ctx, wait); err != nil {
		return err
	}

	return destinationInput.Clear(ctx, wait)
}

// resultRow is the shape the extraction script returns per listing.
type resultRow struct {
	Airline  string `json:"airline"`
	Price    string `json:"price"`
	Duration string `json:"duration"`
}

func (r resultRow) toFlight(rt models.Route) models.Flight {
	orUnknown := func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return models.Unknown
		}

		return v
	}

	return models.Flight{
		Route:    rt,
		Airline:  orUnknown(r.Airline),
		Price:    orUnknown(r.Price),
		Duration: orUnknown(r.Duration),
	}
}

// ScrapeResults extracts the rendered listings for the current search.
// An empty slice with a nil error means the site found no flights, which
// is a valid outcome.
func (s *Scraper) ScrapeResults(ctx context.Context, rt models.Route) ([]models.Flight, error) {
	if err := noFlightsMarker.WaitVisible(ctx, popupWait); err == nil {
		s.log.Warn("site reports no flights", zap.String("route", rt.String()))

		return nil, nil
	}

	if err := resultsMarker.WaitVisible(ctx, s.cfg.Browser.ResultsTimeout()); err != nil {
		if errors.Is(err, ErrElementNotFound) {
			// Nothing rendered within the wait. Treated as an empty
			// result rather than a failure.
			return nil, nil
		}

		return nil, err
	}

	var rows []resultRow

	eval, cancel := context.WithTimeout(ctx, s.cfg.Browser.ResultsTimeout())
	defer cancel()

	if err := chromedp.Run(eval, chromedp.Evaluate(extractionScript(), &rows)); err != nil {
		return nil, eris.Wrapf(ErrWaitTimeout, "extracting result rows for %s: %v", rt, err)
	}

	flights := make([]models.Flight, 0, len(rows))
	for _, row := range rows {
		flights = append(flights, row.toFlight(rt))
	}

	s.log.Info("extracted result rows",
		zap.String("route", rt.String()),
		zap.Int("rows", len(flights)))

	return flights, nil
}
