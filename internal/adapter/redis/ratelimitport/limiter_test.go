package ratelimitport

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap/zaptest"

	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/config"
)

func newLimiter(t *testing.T, max int, window time.Duration) (*FixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cfg := &config.RateLimitConfig{Max: max, Window: window}
	return NewFixedWindowLimiter(client, cfg, logging.NewZapLoggerFrom(zaptest.NewLogger(t))), mr
}

func TestAllowWithinWindow(t *testing.T) {
	t.Parallel()
	limiter, mr := newLimiter(t, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "evaluate:u1")
		if err != nil || !ok {
			t.Fatalf("hit %d: expected allowed, got %v, %v", i+1, ok, err)
		}
	}
	ok, err := limiter.Allow(ctx, "evaluate:u1")
	if err != nil || ok {
		t.Fatalf("expected third hit to be rejected, got %v, %v", ok, err)
	}

	if ttl := mr.TTL(keyPrefix + "evaluate:u1"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected window ttl to be armed, got %v", ttl)
	}

	ok, err = limiter.Allow(ctx, "evaluate:u2")
	if err != nil || !ok {
		t.Fatalf("expected other keys to be unaffected, got %v, %v", ok, err)
	}
}

func TestWindowResets(t *testing.T) {
	t.Parallel()
	limiter, mr := newLimiter(t, 1, 10*time.Second)
	ctx := context.Background()

	if ok, _ := limiter.Allow(ctx, "k"); !ok {
		t.Fatalf("expected first hit to be allowed")
	}
	if ok, _ := limiter.Allow(ctx, "k"); ok {
		t.Fatalf("expected second hit to be rejected")
	}

	mr.FastForward(11 * time.Second)
	if ok, err := limiter.Allow(ctx, "k"); err != nil || !ok {
		t.Fatalf("expected hit after window to be allowed, got %v, %v", ok, err)
	}
}

func TestRearmsLostExpiry(t *testing.T) {
	t.Parallel()
	limiter, mr := newLimiter(t, 5, time.Minute)
	if err := mr.Set(keyPrefix+"k", "3"); err != nil {
		t.Fatalf("failed to seed key: %v", err)
	}

	if ok, err := limiter.Allow(context.Background(), "k"); err != nil || !ok {
		t.Fatalf("expected allowed, got %v, %v", ok, err)
	}
	if mr.TTL(keyPrefix+"k") <= 0 {
		t.Fatalf("expected expiry to be re-armed")
	}
}

func TestDisabledLimiter(t *testing.T) {
	t.Parallel()
	limiter, mr := newLimiter(t, 0, time.Minute)
	for i := 0; i < 10; i++ {
		if ok, err := limiter.Allow(context.Background(), "k"); err != nil || !ok {
			t.Fatalf("expected disabled limiter to allow, got %v, %v", ok, err)
		}
	}
	if mr.Exists(keyPrefix + "k") {
		t.Fatalf("disabled limiter must not touch redis")
	}
}

func TestRedisDown(t *testing.T) {
	t.Parallel()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })
	limiter := NewFixedWindowLimiter(client, &config.RateLimitConfig{Max: 1, Window: time.Minute}, logging.NewZapLoggerFrom(zaptest.NewLogger(t)))

	if _, err := limiter.Allow(context.Background(), "k"); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
}
