package api

import (
	"context"
	"sync"
	"time"
)

// SlidingWindowLimiter is a single-process sliding window rate limiter. It
// keeps, per client key, the instants of requests admitted within the current
// window, pruning aged-out entries on every check so memory is bounded by
// admitted traffic within one window per key rather than by wall-clock
// history.
type SlidingWindowLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	entries map[string][]time.Time
}

// NewSlidingWindowLimiter creates a limiter admitting at most limit requests
// per key within any window-sized interval ending at the evaluation instant.
func NewSlidingWindowLimiter(window time.Duration, limit int) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		window:  window,
		limit:   limit,
		entries: make(map[string][]time.Time),
	}
}

// Admit evaluates one request for key at instant now. An entry at exactly
// now-window has aged out (boundary-inclusive expiry). The pruned window is
// persisted even when the request is rejected.
func (l *SlidingWindowLimiter) Admit(key string, now time.Time) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)
	kept := l.entries[key][:0]
	for _, ts := range l.entries[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.entries[key] = kept
		return Decision{
			Allowed:    false,
			Limit:      l.limit,
			RetryAfter: retryAfter(kept, l.window, now),
		}
	}

	kept = append(kept, now)
	l.entries[key] = kept
	return Decision{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - len(kept),
	}
}

// Check implements RateLimiter against the wall clock.
func (l *SlidingWindowLimiter) Check(_ context.Context, key string) (Decision, error) {
	return l.Admit(key, time.Now()), nil
}

// Sweep drops keys whose windows have fully expired, so long-lived processes
// do not accumulate one entry per client forever.
func (l *SlidingWindowLimiter) Sweep(now time.Time) {
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, stamps := range l.entries {
		// Entries are appended in admission order, so the newest is last.
		if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
			delete(l.entries, key)
		}
	}
}

// StartJanitor starts a goroutine that sweeps idle keys periodically until
// the context is cancelled.
func (l *SlidingWindowLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Sweep(time.Now())
			}
		}
	}()
}

// keyCount returns the number of tracked client keys.
func (l *SlidingWindowLimiter) keyCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// retryAfter derives the wait until the oldest in-window entry ages out.
func retryAfter(stamps []time.Time, window time.Duration, now time.Time) time.Duration {
	if len(stamps) == 0 {
		return time.Second
	}
	d := stamps[0].Add(window).Sub(now)
	if d <= 0 {
		return time.Second
	}
	return d
}
