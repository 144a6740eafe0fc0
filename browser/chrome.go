package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// webdriverMask hides the automation marker most listing sites probe for.
// Injected into every new document before any site script runs.
const webdriverMask = `Object.defineProperty(navigator, 'webdriver', { get: () => undefined });`

// ChromeOptions configures a headless Chrome session.
type ChromeOptions struct {
	Headless  bool
	UserAgent string
}

// Chrome drives a Chrome process over the DevTools protocol.
type Chrome struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChrome allocates a Chrome session. The process starts lazily with the
// first page.
func NewChrome(opts ChromeOptions) *Chrome {
	flags := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
	)
	if opts.UserAgent != "" {
		flags = append(flags, chromedp.UserAgent(opts.UserAgent))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), flags...)
	return &Chrome{allocCtx: allocCtx, allocCancel: allocCancel}
}

// NewPage opens a fresh tab with the fixed viewport and the webdriver mask
// installed.
func (c *Chrome) NewPage(ctx context.Context) (Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(c.allocCtx)
	p := &chromePage{ctx: tabCtx, cancel: tabCancel}

	err := p.run(ctx,
		chromedp.EmulateViewport(1920, 1080),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(webdriverMask).Do(ctx)
			return err
		}),
	)
	if err != nil {
		tabCancel()
		return nil, fmt.Errorf("open page: %w", err)
	}
	return p, nil
}

// Close tears down the Chrome process.
func (c *Chrome) Close(context.Context) error {
	c.allocCancel()
	return nil
}

type chromePage struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func (p *chromePage) Navigate(ctx context.Context, url string) error {
	return p.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (p *chromePage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.run(wctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (p *chromePage) HTML(ctx context.Context) (string, error) {
	var html string
	if err := p.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

func (p *chromePage) Close(context.Context) error {
	p.cancel()
	return nil
}

// run executes actions on the tab while honoring cancellation of the
// caller's context, which chromedp.Run alone would ignore.
func (p *chromePage) run(ctx context.Context, actions ...chromedp.Action) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- chromedp.Run(p.ctx, actions...)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
