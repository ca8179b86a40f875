package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)}
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

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	l := NewLimiter(cfg)
	l.now = clock.Now
	t.Cleanup(l.Stop)
	return l, clock
}

func TestTokenBucket(t *testing.T) {
	clock := newFakeClock()
	bucket := newTokenBucket(10, 1.0, clock.Now)

	for i := 0; i < 10; i++ {
		allowed, remaining, _, _ := bucket.take()
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 9-i, remaining)
	}

	allowed, _, reset, wait := bucket.take()
	assert.False(t, allowed)
	assert.Equal(t, clock.Now().Add(10*time.Second), reset)
	assert.Equal(t, time.Second, wait)

	clock.Advance(1100 * time.Millisecond)
	allowed, _, _, _ = bucket.take()
	assert.True(t, allowed, "one token refilled")
	allowed, _, _, _ = bucket.take()
	assert.False(t, allowed)

	clock.Advance(time.Hour)
	_, remaining, reset, _ := bucket.take()
	assert.Equal(t, 9, remaining, "refill is capped at capacity")
	assert.True(t, reset.After(clock.Now()))
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/insights", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/insights", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, float64(6*time.Second), float64(info.RetryAfter), float64(time.Millisecond))

	allowed, _ = l.Allow("10.0.0.2", "/insights", "GET")
	assert.True(t, allowed, "clients have separate buckets")
}

func TestLimiter_Lists(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *Config
		client string
		want   bool
	}{
		{name: "whitelisted", cfg: &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, Whitelist: map[string]bool{"127.0.0.1": true}}, client: "127.0.0.1", want: true},
		{name: "blacklisted", cfg: &Config{Enabled: true, DefaultLimit: 1000, DefaultWindow: time.Minute, Blacklist: map[string]bool{"192.168.1.1": true}}, client: "192.168.1.1", want: false},
		{name: "disabled", cfg: &Config{Enabled: false}, client: "127.0.0.1", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLimiter(t, tt.cfg)
			for i := 0; i < 5; i++ {
				allowed, info := l.Allow(tt.client, "/insights", "GET")
				require.Equal(t, tt.want, allowed)
				assert.Equal(t, 0, info.Limit)
			}
		})
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: []EndpointConfig{{Path: "/analyze", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5}},
	})

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("127.0.0.1", "/analyze", "POST")
		require.True(t, allowed)
		assert.Equal(t, 5, info.Limit)
	}
	allowed, _ := l.Allow("127.0.0.1", "/analyze", "POST")
	assert.False(t, allowed)

	allowed, info := l.Allow("127.0.0.1", "/analyze", "GET")
	assert.True(t, allowed, "other methods use the default")
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_PrefixRuleSharesBucket(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: []EndpointConfig{{Path: "/watchlist/", Method: "DELETE", Limit: 2, Window: time.Minute}},
	})

	for i, name := range []string{"Acme", "Globex"} {
		allowed, _ := l.Allow("127.0.0.1", "/watchlist/"+name, "DELETE")
		require.True(t, allowed, "delete %d", i+1)
	}
	allowed, _ := l.Allow("127.0.0.1", "/watchlist/Initech", "DELETE")
	assert.False(t, allowed)
}

func TestLimiter_Burst(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    10,
		DefaultWindow:   time.Minute,
		EndpointConfigs: []EndpointConfig{{Path: "/brief", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5}},
	})

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/brief", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("127.0.0.1", "/brief", "POST")
	assert.False(t, allowed)

	clock.Advance(7 * time.Second)
	allowed, _ = l.Allow("127.0.0.1", "/brief", "POST")
	assert.True(t, allowed, "10 per minute refills one token every 6s")
}

func TestLimiter_HealthIsExempt(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})

	var wg sync.WaitGroup
	var allowedCount atomic.Int32
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow("127.0.0.1", "/insights", "GET"); allowed {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(100), allowedCount.Load())
}

func TestLimiter_EvictIdle(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})

	for i := 0; i < 10; i++ {
		l.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/insights", "GET")
	}
	clock.Advance(50 * time.Minute)
	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/insights", "GET")
	}
	clock.Advance(20 * time.Minute)

	assert.Equal(t, 5, l.evictIdle())
	assert.Len(t, l.buckets, 5)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l, _ := newTestLimiter(t, nil)
	allowed, info := l.Allow("127.0.0.1", "/insights", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
	l.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs(60)
	tests := []struct {
		path, method string
		wantPath     string
		wantLimit    int
	}{
		{"/analyze", "POST", "/analyze", 60},
		{"/analyze/stream", "POST", "/analyze/stream", 60},
		{"/watchlist/Acme", "DELETE", "/watchlist/", 100},
		{"/health", "GET", "/health", 0},
		{"/insights", "GET", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantPath == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "50")
	t.Setenv("RATE_LIMIT_WHITELIST", " 10.0.0.1, ,10.0.0.2")
	t.Setenv("RATE_LIMIT_ANALYZE_PER_HOUR", "7")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.Equal(t, 7, MatchEndpoint("/analyze", "POST", cfg.EndpointConfigs).Limit)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
