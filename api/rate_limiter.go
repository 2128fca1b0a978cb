package api

import (
	"context"
	"time"
)

// Decision is the outcome of an admission check for one client key.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter is the admission gate consulted before any store operation.
// Implementations must be safe for concurrent use; two concurrent checks for
// the same key must never both be admitted past the limit.
type RateLimiter interface {
	Check(ctx context.Context, key string) (Decision, error)
}
