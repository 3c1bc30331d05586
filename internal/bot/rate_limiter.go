package bot

import (
	"sync"
	"time"
)

const (
	rateLimitMaxCommands = 5
	rateLimitWindow      = 60 * time.Second
)

// RateLimiter is a sliding window limiter keyed by Discord user ID.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	max      int
	window   time.Duration
	now      func() time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

// Allow records an attempt for userID and reports whether it fits the window.
// Users with no attempts left in the window are forgotten.
func (r *RateLimiter) Allow(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-r.window)

	var kept []time.Time
	for _, t := range r.requests[userID] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= r.max {
		r.requests[userID] = kept
		return false
	}

	r.requests[userID] = append(kept, now)
	return true
}

// Retry reports how long userID must wait for the oldest attempt to leave the
// window. It is zero when the user is not limited.
func (r *RateLimiter) Retry(userID string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempts := r.requests[userID]
	if len(attempts) < r.max {
		return 0
	}
	wait := attempts[0].Add(r.window).Sub(r.now())
	return max(wait, 0)
}
