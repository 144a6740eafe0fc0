package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/polwatch/nec-crawler/browser"
	"github.com/polwatch/nec-crawler/models"
	"github.com/polwatch/nec-crawler/parser"
)

// fieldResult makes the lossy per-field policy explicit: a failed selector
// lookup collapses to a default value, never to an item failure.
type fieldResult struct {
	value string
	err   error
}

func (r fieldResult) orEmpty() string {
	if r.err != nil {
		return ""
	}
	return r.value
}

func extractField(item browser.Element, selector string) fieldResult {
	if selector == "" {
		return fieldResult{err: fmt.Errorf("no selector configured")}
	}
	el, ok := item.Select(selector)
	if !ok {
		return fieldResult{err: fmt.Errorf("selector %q matched nothing", selector)}
	}
	return fieldResult{value: parser.CleanText(el.Text())}
}

// careerBlock joins the text of every career node with newlines so
// ParseCareer sees one entry per line whether the source uses a single
// block or a list.
func careerBlock(item browser.Element, selector string) string {
	if selector == "" {
		return ""
	}
	els := item.SelectAll(selector)
	if len(els) == 0 {
		return ""
	}
	if len(els) == 1 {
		return els[0].Text()
	}
	lines := make([]string, 0, len(els))
	for _, el := range els {
		lines = append(lines, el.Text())
	}
	return strings.Join(lines, "\n")
}

// extractItem assembles one record from an item handle. A nil record with a
// nil error means the node had no name and is skipped. A returned error is
// a structural failure of this item only.
func (e *Engine) extractItem(ctx context.Context, b browser.Browser, item browser.Element) (rec *models.Politician, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = fmt.Errorf("item extraction panic: %v", r)
		}
	}()

	name := extractField(item, e.selectors.Name).orEmpty()
	if name == "" {
		return nil, nil
	}

	party := extractField(item, e.selectors.Party).orEmpty()
	district := extractField(item, e.selectors.District).orEmpty()

	phone := extractField(item, e.selectors.Phone).orEmpty()
	if phone != "" {
		phone = parser.FormatPhoneNumber(phone)
	}
	email := extractField(item, e.selectors.Email).orEmpty()
	if !parser.IsValidEmail(email) {
		email = ""
	}
	office := extractField(item, e.selectors.Office).orEmpty()

	career := parser.ParseCareer(careerBlock(item, e.selectors.Career))

	if extra := e.followDetail(ctx, b, item); len(extra) > 0 {
		career = append(career, extra...)
	}

	rec = &models.Politician{
		Name:     name,
		Party:    party,
		District: district,
		Contact: models.Contact{
			Phone:  phone,
			Email:  email,
			Office: office,
		},
		Career: career,
		Metadata: models.Metadata{
			CrawledAt: time.Now(),
			SourceURL: e.cfg.ListURL,
		},
	}
	rec.Metadata.Confidence = parser.Confidence(rec, e.weights)
	return rec, nil
}

// followDetail opportunistically loads the item's detail page on a second
// page and extracts supplementary career entries. Any failure here means
// "no additional data"; it is never surfaced to the item loop.
func (e *Engine) followDetail(ctx context.Context, b browser.Browser, item browser.Element) []models.CareerItem {
	if !e.cfg.FollowDetail || e.selectors.DetailLink == "" {
		return nil
	}
	link, ok := item.Select(e.selectors.DetailLink)
	if !ok {
		return nil
	}
	href, ok := link.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return nil
	}

	detailURL, err := e.resolveURL(href)
	if err != nil {
		e.logger.Debug("detail link unresolvable", slog.String("href", href), slog.Any("error", err))
		return nil
	}

	html, ok := e.detailHTML(ctx, b, detailURL)
	if !ok {
		return nil
	}

	root, err := browser.Parse(html)
	if err != nil {
		e.logger.Debug("detail page unparsable", slog.String("url", detailURL), slog.Any("error", err))
		return nil
	}
	return parser.ParseCareer(careerBlock(root, e.selectors.Career))
}

// detailHTML fetches a detail page through the TTL cache. The secondary
// page is awaited and closed before the item loop proceeds.
func (e *Engine) detailHTML(ctx context.Context, b browser.Browser, detailURL string) (string, bool) {
	if e.detail != nil {
		if cached, ok := e.detail.Get(detailURL); ok {
			return cached, true
		}
	}

	pg, err := b.NewPage(ctx)
	if err != nil {
		e.logger.Debug("detail page open failed", slog.String("url", detailURL), slog.Any("error", err))
		return "", false
	}
	defer func() {
		if cerr := pg.Close(context.Background()); cerr != nil {
			e.logger.Debug("close detail page", slog.Any("error", cerr))
		}
	}()

	nctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()
	if err := pg.Navigate(nctx, detailURL); err != nil {
		e.logger.Debug("detail navigation failed", slog.String("url", detailURL), slog.Any("error", err))
		return "", false
	}
	e.metrics.IncPage("detail")
	e.sleep(e.cfg.WaitTime)

	html, err := pg.HTML(ctx)
	if err != nil {
		e.logger.Debug("detail read failed", slog.String("url", detailURL), slog.Any("error", err))
		return "", false
	}

	if e.detail != nil {
		e.detail.Add(detailURL, html)
	}
	return html, true
}

// resolveURL resolves a relative or absolute href against the listing URL.
func (e *Engine) resolveURL(href string) (string, error) {
	base, err := url.Parse(e.cfg.ListURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
