package crawler

import (
	"context"
	"errors"
	"net"

	"github.com/polwatch/nec-crawler/models"
)

// Classify maps err to a coded CrawlError. Errors that already carry a code
// pass through unchanged; transport-level causes get NETWORK_ERROR or
// TIMEOUT; everything else stays UNKNOWN.
func Classify(err error, message string) *models.CrawlError {
	if err == nil {
		return nil
	}

	var cerr *models.CrawlError
	if errors.As(err, &cerr) {
		return cerr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewCrawlError(models.ErrCodeTimeout, message, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.NewCrawlError(models.ErrCodeTimeout, message, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return models.NewCrawlError(models.ErrCodeNetwork, message, err)
	}

	return models.NewCrawlError(models.ErrCodeUnknown, message, err)
}
