package scraper

import "github.com/rotisserie/eris"

// Root errors for the failure taxonomy. Everything the scraper returns
// wraps one of these so the pipeline can classify with errors.Is.
var (
	// ErrBrowserUnavailable means no Chrome session could be started.
	// Fatal for the whole run.
	ErrBrowserUnavailable = eris.New("browser unavailable")

	// ErrNavigation means the page failed to load or render its form.
	ErrNavigation = eris.New("page navigation failed")

	// ErrElementNotFound means an expected UI element is missing, the
	// usual symptom of a site redesign.
	ErrElementNotFound = eris.New("element not found")

	// ErrWaitTimeout means an element wait ran out before the page
	// produced the element.
	ErrWaitTimeout = eris.New("wait timed out")
)
