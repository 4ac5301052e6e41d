// Package delay provides a context-aware timer suspension.
package delay

import (
	"context"
	"time"
)

// Sleep blocks until d has elapsed or ctx is done, whichever comes first.
// It returns nil after a full wait and ctx.Err() if the wait was cut short.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
