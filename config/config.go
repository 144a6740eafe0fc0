// Package config holds crawler configuration.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultListURL is the NEC candidate listing page the crawler targets.
const DefaultListURL = "https://info.nec.go.kr/main/showDocument.xhtml?electionId=0020240410&topMenuId=CP"

// Config holds crawler configuration.
type Config struct {
	ListURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration // base for linear backoff between navigation retries
	Headless       bool
	UserAgent      string
	WaitTime       time.Duration // post-navigation settle delay
	JitterMin      time.Duration
	JitterMax      time.Duration
	FollowDetail   bool
	DetailCacheTTL time.Duration
	OutputFile     string
	MetricsAddr    string
	Verbose        bool
}

// DefaultConfig returns conservative defaults for the NEC listing site.
func DefaultConfig() *Config {
	return &Config{
		ListURL:        DefaultListURL,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
		Headless:       true,
		UserAgent:      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		WaitTime:       2 * time.Second,
		JitterMin:      500 * time.Millisecond,
		JitterMax:      1500 * time.Millisecond,
		FollowDetail:   true,
		DetailCacheTTL: 10 * time.Minute,
		OutputFile:     "output/politicians.json",
		MetricsAddr:    "",
		Verbose:        false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.ListURL == "" {
		return fmt.Errorf("list URL cannot be empty")
	}

	parsedURL, err := url.Parse(c.ListURL)
	if err != nil {
		return fmt.Errorf("invalid list URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("list URL must include a host")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay cannot be negative")
	}
	if c.WaitTime < 0 {
		return fmt.Errorf("wait time cannot be negative")
	}
	if c.JitterMin < 0 {
		return fmt.Errorf("jitter min cannot be negative")
	}
	if c.JitterMax < c.JitterMin {
		return fmt.Errorf("jitter max (%s) cannot be below jitter min (%s)", c.JitterMax, c.JitterMin)
	}
	if c.DetailCacheTTL < 0 {
		return fmt.Errorf("detail cache TTL cannot be negative")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}

	return nil
}
