package models

import (
	"fmt"
	"time"
)

// ErrorCode classifies a crawl failure.
type ErrorCode string

const (
	ErrCodeNetwork          ErrorCode = "NETWORK_ERROR"
	ErrCodeTimeout          ErrorCode = "TIMEOUT"
	ErrCodeParsing          ErrorCode = "PARSING_ERROR"
	ErrCodeSelectorNotFound ErrorCode = "SELECTOR_NOT_FOUND"
	ErrCodeInvalidData      ErrorCode = "INVALID_DATA"
	ErrCodeRateLimit        ErrorCode = "RATE_LIMIT"
	ErrCodeUnknown          ErrorCode = "UNKNOWN"
)

// Retryable reports whether failures with this code are worth retrying.
// Only transient transport-level conditions qualify.
func (c ErrorCode) Retryable() bool {
	switch c {
	case ErrCodeNetwork, ErrCodeTimeout, ErrCodeRateLimit:
		return true
	}
	return false
}

// CrawlError is a classified crawl failure. Retryable is derived from Code
// at construction and is advisory for callers; the engine does not re-run
// a failed crawl on its own.
type CrawlError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	Cause     error     `json:"-"`
}

// NewCrawlError builds a CrawlError wrapping cause (which may be nil).
func NewCrawlError(code ErrorCode, message string, cause error) *CrawlError {
	return &CrawlError{
		Code:      code,
		Message:   message,
		Retryable: code.Retryable(),
		Cause:     cause,
	}
}

func (e *CrawlError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CrawlError) Unwrap() error {
	return e.Cause
}

// CrawlStats holds the counters for one crawl run. The engine mutates it in
// place during the run and freezes it into the result at the end.
type CrawlStats struct {
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Duration       int64     `json:"duration_ms"`
	ItemsCollected int       `json:"items_collected"`
	ItemsFailed    int       `json:"items_failed"`
	RetryCount     int       `json:"retry_count"`
}

// CrawlResult is the return value of one Crawl invocation. It is built once
// per run and not mutated after return.
type CrawlResult struct {
	Success bool          `json:"success"`
	Data    []*Politician `json:"data"`
	Err     *CrawlError   `json:"error,omitempty"`
	Stats   CrawlStats    `json:"stats"`
}
