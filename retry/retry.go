// Package retry provides the bounded, fixed-delay retry loop shared by the
// transcript and generation clients.
package retry

import (
	"context"
	"time"
)

// Do runs op up to attempts times, sleeping delay between attempts. A nil
// return from op stops the loop. When retryable is non-nil and reports an
// error as not retryable, that error is returned immediately; otherwise
// the last error is returned after the final attempt. Context cancellation
// during a backoff sleep aborts the loop with the context error.
func Do(ctx context.Context, attempts int, delay time.Duration, op func() error, retryable func(error) bool) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		if err = op(); err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
	}
	return err
}
