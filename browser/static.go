package browser

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/polwatch/nec-crawler/models"
)

// Static fetches pages over plain HTTP without script execution. It serves
// listing sites that render server-side, and it is the implementation tests
// exercise through a mock transport.
type Static struct {
	userAgent string
	timeout   time.Duration
	transport http.RoundTripper
}

// NewStatic builds a static fetcher.
func NewStatic(userAgent string, timeout time.Duration) *Static {
	return &Static{userAgent: userAgent, timeout: timeout}
}

// SetTransport overrides the HTTP transport. Tests install httpmock here.
func (s *Static) SetTransport(rt http.RoundTripper) {
	s.transport = rt
}

// NewPage opens a page backed by its own collector.
func (s *Static) NewPage(context.Context) (Page, error) {
	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(s.timeout)
	c.IgnoreRobotsTxt = true
	if s.transport != nil {
		c.WithTransport(s.transport)
	}

	p := &staticPage{collector: c}
	c.OnResponse(func(r *colly.Response) {
		p.body = r.Body
		p.status = r.StatusCode
	})
	c.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			p.status = r.StatusCode
		}
	})
	return p, nil
}

// Close is a no-op; collectors hold no process-level resources.
func (s *Static) Close(context.Context) error {
	return nil
}

type staticPage struct {
	collector *colly.Collector
	body      []byte
	status    int
}

func (p *staticPage) Navigate(ctx context.Context, url string) error {
	p.body = nil
	p.status = 0

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.collector.Visit(url); err != nil {
		return classifyFetchError(err, p.status, url)
	}
	return nil
}

func (p *staticPage) WaitVisible(_ context.Context, selector string, _ time.Duration) error {
	// The document is fully fetched already; visibility reduces to presence.
	root, err := Parse(string(p.body))
	if err != nil {
		return models.NewCrawlError(models.ErrCodeParsing, "parse fetched page", err)
	}
	if _, ok := root.Select(selector); !ok {
		return models.NewCrawlError(models.ErrCodeSelectorNotFound,
			fmt.Sprintf("selector %q matched nothing", selector), nil)
	}
	return nil
}

func (p *staticPage) HTML(context.Context) (string, error) {
	return string(p.body), nil
}

func (p *staticPage) Close(context.Context) error {
	return nil
}

func classifyFetchError(err error, statusCode int, url string) *models.CrawlError {
	msg := fmt.Sprintf("fetch %s", url)

	if statusCode == http.StatusTooManyRequests {
		return models.NewCrawlError(models.ErrCodeRateLimit, msg, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewCrawlError(models.ErrCodeTimeout, msg, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.NewCrawlError(models.ErrCodeTimeout, msg, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return models.NewCrawlError(models.ErrCodeNetwork, msg, err)
	}
	return models.NewCrawlError(models.ErrCodeNetwork, msg, err)
}
