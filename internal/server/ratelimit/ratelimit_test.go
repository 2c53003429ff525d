package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/rank", Method: "POST", Limit: 60, Window: time.Minute, Burst: 2},
			{Path: "/jobs/", Method: "GET", Limit: 5, Window: time.Minute},
			{Path: "/health", Method: "GET", Limit: 0},
		},
	}
}

func TestBucket_TakeAndRefill(t *testing.T) {
	clock := newFakeClock()
	b := newBucket(2, 1, clock.Now())

	ok, remaining, _ := b.take(clock.Now())
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	ok, _, reset := b.take(clock.Now())
	assert.True(t, ok)
	assert.Equal(t, clock.Now().Add(2*time.Second), reset)

	ok, _, _ = b.take(clock.Now())
	assert.False(t, ok)

	clock.Advance(time.Second)
	ok, _, _ = b.take(clock.Now())
	assert.True(t, ok)
}

func TestBucket_NeverExceedsCapacity(t *testing.T) {
	clock := newFakeClock()
	b := newBucket(3, 10, clock.Now())

	clock.Advance(time.Hour)
	_, remaining, _ := b.take(clock.Now())
	assert.Equal(t, 2, remaining)
}

func TestLimiter_DefaultLimit(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(testConfig(), clock.Now)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/assess", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
	}

	allowed, info := l.Allow("127.0.0.1", "/assess", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, 6*time.Second, info.RetryAfter)

	other, _ := l.Allow("10.0.0.1", "/assess", "POST")
	assert.True(t, other, "buckets are per client")
}

func TestLimiter_EndpointBurst(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(testConfig(), clock.Now)
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("c", "/rank", "POST")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("c", "/rank", "POST")
	assert.False(t, allowed)

	clock.Advance(time.Second)
	allowed, _ = l.Allow("c", "/rank", "POST")
	assert.True(t, allowed)
}

func TestLimiter_PrefixSharesBucket(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(testConfig(), clock.Now)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("c", "/jobs/job-"+string(rune('a'+i))+"/assessments", "GET")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("c", "/jobs/other/assessments", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l := newLimiter(testConfig(), newFakeClock().Now)
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("c", "/health", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
	assert.Zero(t, l.Len())
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 1
	cfg.Whitelist = map[string]bool{"good": true}
	cfg.Blacklist = map[string]bool{"bad": true}
	l := newLimiter(cfg, newFakeClock().Now)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("good", "/assess", "POST")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("bad", "/assess", "POST")
	assert.False(t, allowed)

	disabled := newLimiter(&Config{Enabled: false}, time.Now)
	defer disabled.Stop()
	allowed, _ = disabled.Allow("bad", "/assess", "POST")
	assert.True(t, allowed)
}

func TestLimiter_EvictIdle(t *testing.T) {
	clock := newFakeClock()
	cfg := testConfig()
	cfg.IdleTimeout = time.Minute
	l := newLimiter(cfg, clock.Now)
	defer l.Stop()

	l.Allow("old", "/assess", "POST")
	clock.Advance(2 * time.Minute)
	l.Allow("new", "/assess", "POST")
	require.Equal(t, 2, l.Len())

	l.evictIdle()
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Concurrent(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 50
	l := newLimiter(cfg, newFakeClock().Now)
	defer l.Stop()

	var mu sync.Mutex
	granted := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/assess", "POST"); ok {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, granted)
}

func TestLimiter_StopIdempotent(t *testing.T) {
	cfg := testConfig()
	cfg.CleanupInterval = time.Millisecond
	l := NewLimiter(cfg)

	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, info := l.Allow("c", "/assess", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 300, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/jobs/", Method: "GET", Limit: 1},
		{Path: "/jobs/special/", Method: "GET", Limit: 2},
		{Path: "/assess", Method: "POST", Limit: 3},
	}

	tests := []struct {
		name   string
		path   string
		method string
		want   int
	}{
		{"exact", "/assess", "POST", 3},
		{"wrong method", "/assess", "GET", -1},
		{"prefix", "/jobs/a/assessments", "GET", 1},
		{"longest prefix", "/jobs/special/x", "GET", 2},
		{"no match", "/other", "GET", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.want < 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Limit)
		})
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", " 10.0.0.1 , ,10.0.0.2")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.Equal(t, DefaultEndpointConfigs(), cfg.EndpointConfigs)
}
