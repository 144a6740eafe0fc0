package crawler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	failures := 2
	calls := 0
	var retries []int

	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls <= failures {
			return fmt.Errorf("attempt %d failed", calls)
		}
		return nil
	}, func(_ error, attempt int) {
		retries = append(retries, attempt)
	})

	if err != nil {
		t.Fatalf("Retry() = %v, want nil", err)
	}
	if calls != failures+1 {
		t.Errorf("fn called %d times, want %d", calls, failures+1)
	}
	if len(retries) != failures {
		t.Errorf("onRetry called %d times, want %d", len(retries), failures)
	}
	for i, attempt := range retries {
		if attempt != i+1 {
			t.Errorf("retries[%d] attempt = %d, want %d", i, attempt, i+1)
		}
	}
}

func TestRetryExhaustsAndReturnsLastError(t *testing.T) {
	calls := 0
	lastErr := errors.New("always failing")

	err := Retry(context.Background(), 2, time.Millisecond, func() error {
		calls++
		return lastErr
	}, nil)

	if !errors.Is(err, lastErr) {
		t.Fatalf("Retry() = %v, want %v", err, lastErr)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3 (maxRetries+1)", calls)
	}
}

func TestRetryZeroRetriesSingleAttempt(t *testing.T) {
	calls := 0
	onRetryCalls := 0

	err := Retry(context.Background(), 0, time.Millisecond, func() error {
		calls++
		return errors.New("nope")
	}, func(error, int) {
		onRetryCalls++
	})

	if err == nil {
		t.Fatalf("Retry() = nil, want error")
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
	if onRetryCalls != 0 {
		t.Errorf("onRetry called %d times, want 0", onRetryCalls)
	}
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := Retry(ctx, 5, 50*time.Millisecond, func() error {
		calls++
		cancel()
		return errors.New("failing")
	}, nil)

	if err == nil {
		t.Fatalf("Retry() = nil, want error")
	}
	if calls != 1 {
		t.Errorf("fn called %d times after cancellation, want 1", calls)
	}
}
