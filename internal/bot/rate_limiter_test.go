package bot

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter() (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(rateLimitMaxCommands, rateLimitWindow)
	rl.now = clock.Now
	return rl, clock
}

func TestRateLimiter(t *testing.T) {
	tests := []struct {
		name    string
		run     func(rl *RateLimiter, clock *fakeClock)
		user    string
		allowed bool
	}{
		{
			name:    "first command",
			run:     func(*RateLimiter, *fakeClock) {},
			user:    "alice",
			allowed: true,
		},
		{
			name: "over the limit",
			run: func(rl *RateLimiter, _ *fakeClock) {
				for range rateLimitMaxCommands {
					rl.Allow("alice")
				}
			},
			user:    "alice",
			allowed: false,
		},
		{
			name: "other users unaffected",
			run: func(rl *RateLimiter, _ *fakeClock) {
				for range rateLimitMaxCommands {
					rl.Allow("alice")
				}
			},
			user:    "bob",
			allowed: true,
		},
		{
			name: "window slides",
			run: func(rl *RateLimiter, clock *fakeClock) {
				for range rateLimitMaxCommands {
					rl.Allow("alice")
				}
				clock.Advance(rateLimitWindow)
			},
			user:    "alice",
			allowed: true,
		},
		{
			name: "refused attempts do not extend the window",
			run: func(rl *RateLimiter, clock *fakeClock) {
				for range rateLimitMaxCommands {
					rl.Allow("alice")
				}
				clock.Advance(30 * time.Second)
				rl.Allow("alice")
				clock.Advance(30 * time.Second)
			},
			user:    "alice",
			allowed: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl, clock := newTestLimiter()
			tt.run(rl, clock)
			assert.Equal(t, tt.allowed, rl.Allow(tt.user))
		})
	}
}

func TestRateLimiterRetry(t *testing.T) {
	rl, clock := newTestLimiter()
	assert.Zero(t, rl.Retry("alice"))

	for range rateLimitMaxCommands {
		require.True(t, rl.Allow("alice"))
		clock.Advance(time.Second)
	}
	require.False(t, rl.Allow("alice"))

	assert.Equal(t, rateLimitWindow-rateLimitMaxCommands*time.Second, rl.Retry("alice"))
}

func TestRateLimiterConcurrentAccess(t *testing.T) {
	rl, _ := newTestLimiter()
	var wg sync.WaitGroup
	allowed := make([]int, 10)

	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rateLimitMaxCommands + 2 {
				if rl.Allow(fmt.Sprintf("user-%d", i)) {
					allowed[i]++
				}
			}
		}()
	}
	wg.Wait()

	for i, count := range allowed {
		assert.Equal(t, rateLimitMaxCommands, count, "user-%d", i)
	}
}
