package common

import (
	"context"
	"time"
)

const retryBackoff = 100 * time.Millisecond

// RetryTransient runs fn and retries it exactly once, after a short backoff,
// when it fails with a transient backing-store error. Terminal outcomes
// (not-found, validation) are returned immediately.
func RetryTransient(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil || !IsTransient(err) {
		return err
	}
	select {
	case <-ctx.Done():
		return err
	case <-time.After(retryBackoff):
	}
	return fn()
}
