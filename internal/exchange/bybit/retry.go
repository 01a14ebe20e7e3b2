package bybit

import (
	"context"
	"time"
)

// Retry policy for transient API failures.
const (
	maxRetries    = 3
	initialDelay  = time.Second
	backoffFactor = 2
)

// retry runs fn up to maxRetries+1 times with exponential backoff, stopping
// early on context cancellation.
func (c *Client) retry(ctx context.Context, fn func() error) error {
	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= backoffFactor
	}
	return lastErr
}
