package scraper

import (
	"context"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"

	"github.com/sabbir-hossain/flight-scraper/config"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"

// Browser owns the Chrome session for the lifetime of the run.
type Browser struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// Launch starts Chrome and verifies it actually came up. A failure here
// is fatal for the run: there is nothing to retry against.
func Launch(cfg config.BrowserConfig) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("start-maximized", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)

	// An empty task forces the browser process to start now rather than
	// on the first navigation.
	probe, cancel := context.WithTimeout(ctx, cfg.PageTimeout())
	defer cancel()

	if err := chromedp.Run(probe); err != nil {
		cancelCtx()
		cancelAlloc()

		return nil, eris.Wrapf(ErrBrowserUnavailable, "starting chrome: %v", err)
	}

	return &Browser{ctx: ctx, cancelCtx: cancelCtx, cancelAlloc: cancelAlloc}, nil
}

// Context returns the session context all page interactions run against.
func (b *Browser) Context() context.Context {
	return b.ctx
}

// Close shuts the browser down.
func (b *Browser) Close() {
	b.cancelCtx()
	b.cancelAlloc()
}
