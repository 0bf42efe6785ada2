package services

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sabbir-hossain/flight-scraper/config"
	"github.com/sabbir-hossain/flight-scraper/models"
)

// Searcher drives the browser session for one route at a time.
type Searcher interface {
	Open(ctx context.Context) error
	FillSearch(ctx context.Context, route models.Route) error
	ScrapeResults(ctx context.Context, route models.Route) ([]models.Flight, error)
	ResetForm(ctx context.Context) error
}

// FailureRecorder captures diagnostics when a route exhausts its retries.
type FailureRecorder interface {
	CaptureFailure(ctx context.Context, route models.Route)
}

// Pipeline runs every configured route through the per-route state
// machine, isolating failures so one bad route never aborts the batch.
type Pipeline struct {
	cfg      *config.Config
	searcher Searcher
	reporter Reporter
	recorder FailureRecorder
	log      *zap.Logger
	limiter  *rate.Limiter
	sleep    func(time.Duration)
	now      func() time.Time
}

func NewPipeline(cfg *config.Config, searcher Searcher, reporter Reporter, recorder FailureRecorder, log *zap.Logger) *Pipeline {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RouteDelaySec > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Duration(cfg.RouteDelaySec)*time.Second), 1)
	}

	return &Pipeline{
		cfg:      cfg,
		searcher: searcher,
		reporter: reporter,
		recorder: recorder,
		log:      log,
		limiter:  limiter,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Run processes the whole batch. It returns nil when the batch completes
// even if some routes failed; only context cancellation or an initial
// page-load failure abort it.
func (p *Pipeline) Run(ctx context.Context) error {
	routes := p.cfg.Routes(p.now())

	if err := p.searcher.Open(ctx); err != nil {
		return eris.Wrap(err, "opening search page")
	}

	for i, rt := range routes {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}

		p.log.Info("route start",
			zap.String("route", rt.String()),
			zap.String("departure", rt.Departure.Format("2006-01-02")))

		if err := p.runRoute(ctx, rt); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			p.log.Error("route failed, moving on",
				zap.String("route", rt.String()),
				zap.Error(err))
		} else {
			p.log.Info("route done", zap.String("route", rt.String()))
		}

		if i < len(routes)-1 {
			p.prepareNext(ctx)
		}
	}

	return nil
}

func (p *Pipeline) runRoute(ctx context.Context, rt models.Route) error {
	m := NewMachine(p.cfg.Retry.MaxAttempts)
	m.Begin()

	var flights []models.Flight
	var lastErr error

	for !m.Terminal() {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch m.Current() {
		case StateSearching:
			if err := p.searcher.FillSearch(ctx, rt); err != nil {
				lastErr = err
				p.retry(ctx, m, rt, err)

				continue
			}
			m.SearchOK()

		case StateScraping:
			rows, err := p.searcher.ScrapeResults(ctx, rt)
			if err != nil {
				lastErr = err
				p.retry(ctx, m, rt, err)

				continue
			}
			flights = rows
			m.ScrapeOK()

		case StateReporting:
			p.reporter.Report(rt, Rank(flights, p.cfg.Report.TopN))
			m.Reported()
		}
	}

	if m.Current() == StateFailed {
		if p.recorder != nil {
			p.recorder.CaptureFailure(ctx, rt)
		}

		return eris.Wrapf(lastErr, "retries exhausted after %d attempts", m.Attempts())
	}

	return nil
}

// retry advances the machine past a failed attempt: back off and reload
// the page so the next attempt starts from a clean form. No-op when the
// bound is spent.
func (p *Pipeline) retry(ctx context.Context, m *Machine, rt models.Route, cause error) {
	attempt := m.Attempts()
	if !m.Fail() {
		return
	}

	p.log.Warn("attempt failed, retrying",
		zap.String("route", rt.String()),
		zap.Int("attempt", attempt),
		zap.Int("max_attempts", p.cfg.Retry.MaxAttempts),
		zap.Error(cause))

	p.sleep(p.cfg.Retry.Delay(attempt))

	if err := p.searcher.Open(ctx); err != nil {
		p.log.Warn("page reload failed", zap.Error(err))
	}
}

// prepareNext clears the form for the following route, falling back to a
// full page reload when the reset itself fails.
func (p *Pipeline) prepareNext(ctx context.Context) {
	if err := p.searcher.ResetForm(ctx); err != nil {
		p.log.Warn("form reset failed, reloading page", zap.Error(err))

		if err := p.searcher.Open(ctx); err != nil {
			p.log.Warn("page reload failed", zap.Error(err))
		}
	}
}
