package scraper

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
)

// Candidate is one way of addressing an element, either a CSS selector
// or an XPath expression.
type Candidate struct {
	Sel   string
	XPath bool
}

func css(sel string) Candidate   { return Candidate{Sel: sel} }
func xpath(sel string) Candidate { return Candidate{Sel: sel, XPath: true} }

func (c Candidate) by() chromedp.QueryOption {
	if c.XPath {
		return chromedp.BySearch
	}

	return chromedp.ByQuery
}

// Locator identifies one page element through an ordered list of
// candidates. Candidates are tried in order, so whichever markup the site
// currently serves wins and a redesign means editing one candidate list
// instead of the flow that uses it.
type Locator struct {
	Name       string
	Candidates []Candidate
}

// find returns the first candidate that becomes visible, giving each one
// up to wait.
func (l Locator) find(ctx context.Context, wait time.Duration) (Candidate, error) {
	var lastErr error

	for _, cand := range l.Candidates {
		if err := ctx.Err(); err != nil {
			return Candidate{}, eris.Wrapf(ErrWaitTimeout, "locating %s: %v", l.Name, err)
		}

		cctx, cancel := context.WithTimeout(ctx, wait)
		err := chromedp.Run(cctx, chromedp.WaitVisible(cand.Sel, cand.by()))
		cancel()

		if err == nil {
			return cand, nil
		}
		lastErr = err
	}

	return Candidate{}, eris.Wrapf(ErrElementNotFound, "%s: no candidate matched: %v", l.Name, lastErr)
}

// WaitVisible blocks until some candidate for the element is visible.
func (l Locator) WaitVisible(ctx context.Context, wait time.Duration) error {
	_, err := l.find(ctx, wait)

	return err
}

// Click locates the element and clicks it.
func (l Locator) Click(ctx context.Context, wait time.Duration) error {
	cand, err := l.find(ctx, wait)
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	err = chromedp.Run(cctx,
		chromedp.ScrollIntoView(cand.Sel, cand.by()),
		chromedp.Click(cand.Sel, cand.by()),
	)
	if err != nil {
		return eris.Wrapf(ErrElementNotFound, "clicking %s: %v", l.Name, err)
	}

	return nil
}

// Type clears the element and types text into it.
func (l Locator) Type(ctx context.Context, wait time.Duration, text string) error {
	cand, err := l.find(ctx, wait)
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	err = chromedp.Run(cctx,
		chromedp.Click(cand.Sel, cand.by()),
		chromedp.SetValue(cand.Sel, "", cand.by()),
		chromedp.SendKeys(cand.Sel, text, cand.by()),
	)
	if err != nil {
		return eris.Wrapf(ErrElementNotFound, "typing into %s: %v", l.Name, err)
	}

	return nil
}

// Clear empties the element's value.
func (l Locator) Clear(ctx context.Context, wait time.Duration) error {
	cand, err := l.find(ctx, wait)
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	if err := chromedp.Run(cctx, chromedp.SetValue(cand.Sel, "", cand.by())); err != nil {
		return eris.Wrapf(ErrElementNotFound, "clearing %s: %v", l.Name, err)
	}

	return nil
}
