// Package browser abstracts the page-fetching layer behind narrow
// interfaces so the extraction engine is testable without a real browser.
package browser

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Browser owns a fetching session. One crawl invocation owns exactly one
// Browser; it is never shared across concurrent crawls.
type Browser interface {
	// NewPage opens a page within the session.
	NewPage(ctx context.Context) (Page, error)
	// Close releases the session and every resource behind it.
	Close(ctx context.Context) error
}

// Page is one navigable tab.
type Page interface {
	// Navigate loads url and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error
	// WaitVisible blocks until selector matches something on the current
	// document, bounded by timeout.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	// HTML returns the current document markup.
	HTML(ctx context.Context) (string, error)
	// Close releases the page.
	Close(ctx context.Context) error
}

// Element scopes selector queries to one DOM node.
type Element interface {
	// Select returns the first descendant matching selector, if any.
	Select(selector string) (Element, bool)
	// SelectAll returns every descendant matching selector, in DOM order.
	SelectAll(selector string) []Element
	// Text returns the node's text content.
	Text() string
	// Attr returns the named attribute, if present.
	Attr(name string) (string, bool)
}

// Parse builds the root Element for an HTML document.
func Parse(html string) (Element, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return &goqueryElement{sel: doc.Selection}, nil
}

type goqueryElement struct {
	sel *goquery.Selection
}

func (e *goqueryElement) Select(selector string) (Element, bool) {
	found := e.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, false
	}
	return &goqueryElement{sel: found}, true
}

func (e *goqueryElement) SelectAll(selector string) []Element {
	var out []Element
	e.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &goqueryElement{sel: s})
	})
	return out
}

func (e *goqueryElement) Text() string {
	return e.sel.Text()
}

func (e *goqueryElement) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}
