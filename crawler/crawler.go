// Package crawler implements the listing-page crawl engine.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/polwatch/nec-crawler/browser"
	"github.com/polwatch/nec-crawler/cache"
	"github.com/polwatch/nec-crawler/config"
	"github.com/polwatch/nec-crawler/models"
	"github.com/polwatch/nec-crawler/parser"
)

// BrowserFactory produces the browser owned by one crawl invocation.
type BrowserFactory func() (browser.Browser, error)

// Engine crawls one listing site. Safe for sequential reuse; concurrent
// Crawl calls on separate engines never share a browser.
type Engine struct {
	cfg        *config.Config
	selectors  config.Selectors
	newBrowser BrowserFactory
	logger     *slog.Logger
	metrics    *Metrics
	weights    parser.ConfidenceWeights
	detail     *cache.TTL[string, string]

	// sleep and jitter are injectable so tests run without wall-clock
	// delays.
	sleep  func(time.Duration)
	jitter func(min, max time.Duration) time.Duration
}

// Option customizes an Engine.
type Option func(*Engine)

// WithSelectors overrides the selector table.
func WithSelectors(s config.Selectors) Option {
	return func(e *Engine) { e.selectors = s }
}

// WithBrowserFactory overrides how the engine obtains its browser.
func WithBrowserFactory(f BrowserFactory) Option {
	return func(e *Engine) { e.newBrowser = f }
}

// WithLogger installs a logger; the default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics installs a shared metrics bundle.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithConfidenceWeights overrides the confidence scoring weights.
func WithConfidenceWeights(w parser.ConfidenceWeights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithSleep overrides the sleep function. Test hook.
func WithSleep(fn func(time.Duration)) Option {
	return func(e *Engine) { e.sleep = fn }
}

// New builds an engine for cfg. The default browser is headless Chrome and
// the default selector table targets the NEC listing page.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		cfg:       cfg,
		selectors: config.DefaultSelectors(),
		newBrowser: func() (browser.Browser, error) {
			return browser.NewChrome(browser.ChromeOptions{
				Headless:  cfg.Headless,
				UserAgent: cfg.UserAgent,
			}), nil
		},
		logger:  slog.Default(),
		metrics: NewMetrics(),
		weights: parser.DefaultConfidenceWeights(),
		sleep:   time.Sleep,
		jitter: func(min, max time.Duration) time.Duration {
			if max <= min {
				return min
			}
			return min + time.Duration(rand.Int63n(int64(max-min) + 1))
		},
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.selectors.Validate(); err != nil {
		return nil, fmt.Errorf("invalid selectors: %w", err)
	}
	if e.cfg.FollowDetail {
		e.detail = cache.NewTTL[string, string](128, e.cfg.DetailCacheTTL)
	}
	return e, nil
}

// Metrics exposes the engine's metrics bundle, e.g. for a promhttp handler.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Crawl runs one full crawl. It never returns an error; failures surface as
// a Success=false result carrying a coded CrawlError. The browser and any
// open page are released on every exit path.
func (e *Engine) Crawl(ctx context.Context) *models.CrawlResult {
	if ctx == nil {
		ctx = context.Background()
	}

	stats := models.CrawlStats{StartTime: time.Now()}
	data, err := e.run(ctx, &stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime).Milliseconds()

	if err != nil {
		cerr := Classify(err, "crawl failed")
		e.metrics.IncError(string(cerr.Code))
		e.logger.Error("crawl failed",
			slog.String("code", string(cerr.Code)),
			slog.Any("error", err),
		)
		return &models.CrawlResult{
			Success: false,
			Data:    []*models.Politician{},
			Err:     cerr,
			Stats:   stats,
		}
	}

	e.logger.Info("crawl finished",
		slog.Int("collected", stats.ItemsCollected),
		slog.Int("failed", stats.ItemsFailed),
		slog.Int("retries", stats.RetryCount),
		slog.Int64("duration_ms", stats.Duration),
	)
	return &models.CrawlResult{Success: true, Data: data, Stats: stats}
}

func (e *Engine) run(ctx context.Context, stats *models.CrawlStats) ([]*models.Politician, error) {
	b, err := e.newBrowser()
	if err != nil {
		return nil, models.NewCrawlError(models.ErrCodeUnknown, "launch browser", err)
	}

	var pg browser.Page
	defer func() {
		// Unconditional resource release. Background context so cleanup
		// still runs after caller cancellation.
		if pg != nil {
			if cerr := pg.Close(context.Background()); cerr != nil {
				e.logger.Debug("close page", slog.Any("error", cerr))
			}
		}
		if cerr := b.Close(context.Background()); cerr != nil {
			e.logger.Debug("close browser", slog.Any("error", cerr))
		}
	}()

	pg, err = b.NewPage(ctx)
	if err != nil {
		return nil, Classify(err, "open listing page")
	}

	if err := e.navigate(ctx, pg, stats); err != nil {
		return nil, Classify(err, fmt.Sprintf("navigate %s", e.cfg.ListURL))
	}

	if err := pg.WaitVisible(ctx, e.selectors.ListContainer, e.cfg.Timeout); err != nil {
		return nil, Classify(err, fmt.Sprintf("list container %q", e.selectors.ListContainer))
	}

	html, err := pg.HTML(ctx)
	if err != nil {
		return nil, Classify(err, "read listing page")
	}
	root, err := browser.Parse(html)
	if err != nil {
		return nil, models.NewCrawlError(models.ErrCodeParsing, "parse listing page", err)
	}

	items := root.SelectAll(e.selectors.Item)
	e.logger.Debug("listing parsed", slog.Int("items", len(items)))

	return e.crawlItems(ctx, b, items, stats), nil
}

// navigate loads the listing URL through the retry primitive. Every retry
// is counted into stats and reported at debug level.
func (e *Engine) navigate(ctx context.Context, pg browser.Page, stats *models.CrawlStats) error {
	return Retry(ctx, e.cfg.MaxRetries, e.cfg.RetryDelay, func() error {
		nctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()

		start := time.Now()
		if err := pg.Navigate(nctx, e.cfg.ListURL); err != nil {
			return err
		}
		e.metrics.ObserveNavigation(time.Since(start))
		e.metrics.IncPage("listing")

		// Let client-side rendering settle before querying the DOM.
		e.sleep(e.cfg.WaitTime)
		return nil
	}, func(err error, attempt int) {
		stats.RetryCount++
		e.metrics.IncRetries()
		e.logger.Debug("navigation retry",
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
	})
}

// crawlItems walks the item handles strictly in DOM order. Per-item
// failures are isolated: one malformed row is counted and the loop moves
// on. Items are never retried; only navigation is (transient transport
// faults justify retry, broken markup on one row does not).
func (e *Engine) crawlItems(ctx context.Context, b browser.Browser, items []browser.Element, stats *models.CrawlStats) []*models.Politician {
	data := make([]*models.Politician, 0, len(items))

	for i, item := range items {
		rec, err := e.extractItem(ctx, b, item)
		switch {
		case err != nil:
			stats.ItemsFailed++
			e.metrics.IncItem("failed")
			e.logger.Error("item extraction failed",
				slog.Int("index", i),
				slog.Any("error", err),
			)
		case rec == nil:
			// No name on the node: silently skipped, not a failure.
			e.metrics.IncItem("skipped")
		default:
			if verr := parser.Validate(rec); verr != nil {
				stats.ItemsFailed++
				e.metrics.IncItem("failed")
				e.logger.Debug("record rejected", slog.Any("error", verr))
			} else {
				stats.ItemsCollected++
				e.metrics.IncItem("collected")
				data = append(data, rec)
			}
		}

		if i < len(items)-1 {
			// Jitter between items keeps the access pattern human-shaped.
			e.sleep(e.jitter(e.cfg.JitterMin, e.cfg.JitterMax))
		}
	}
	return data
}
