package crawler

import (
	"context"
	"time"
)

// OnRetry is invoked after a failed attempt, before the backoff sleep.
// attempt is 1-based.
type OnRetry func(err error, attempt int)

// Retry invokes fn up to maxRetries+1 times. The backoff between attempts
// grows linearly (delay * attempt), not exponentially; navigation retries
// are rare enough that a gentle ramp suffices. The last error is returned
// once attempts are exhausted or ctx is done.
func Retry(ctx context.Context, maxRetries int, delay time.Duration, fn func() error, onRetry OnRetry) error {
	var lastErr error
	for attempt := 1; attempt <= maxRetries+1; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt > maxRetries {
			break
		}

		if onRetry != nil {
			onRetry(lastErr, attempt)
		}

		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(delay * time.Duration(attempt)):
		}
	}
	return lastErr
}
