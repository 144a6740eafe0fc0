// Package models defines data structures shared across the crawler.
package models

import "time"

// Contact holds the contact details extracted for one politician.
type Contact struct {
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	Office string `json:"office,omitempty"`
}

// CareerItem is one entry from a politician's career history. Period is
// empty when no date token could be parsed from the source line.
type CareerItem struct {
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Metadata records provenance and quality for one crawled record.
type Metadata struct {
	CrawledAt  time.Time `json:"crawled_at"`
	SourceURL  string    `json:"source_url"`
	Confidence float64   `json:"confidence"`
}

// Politician represents one record extracted from the listing page.
type Politician struct {
	Name     string       `json:"name"`
	Party    string       `json:"party"`
	District string       `json:"district"`
	Contact  Contact      `json:"contact"`
	Career   []CareerItem `json:"career"`
	Metadata Metadata     `json:"metadata"`
}
