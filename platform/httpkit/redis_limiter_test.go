package httpkit

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"railspace_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisLimiter(t *testing.T, limit int) (*RedisRateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRateLimiter(client, "test", limit, time.Minute, logger.Discard()), mr
}

func TestRedisRateLimiterWindow(t *testing.T) {
	limiter, mr := newRedisLimiter(t, 2)
	now := time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i, want := range []bool{true, true, false} {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if allowed != want {
			t.Fatalf("hit %d: expected allowed=%v", i+1, want)
		}
	}

	other, err := limiter.Allow(ctx, "10.0.0.2")
	if err != nil || !other {
		t.Fatalf("expected a separate budget per key, got %v %v", other, err)
	}

	if ttl := mr.TTL("test:10.0.0.1:" + strconv.FormatInt(now.Unix()/60, 10)); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected counter to expire within the window, got ttl %s", ttl)
	}

	now = now.Add(time.Minute)
	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	if err != nil || !allowed {
		t.Fatalf("expected a fresh budget in the next window, got %v %v", allowed, err)
	}
}

func TestRedisRateLimiterMiddleware(t *testing.T) {
	limiter, _ := newRedisLimiter(t, 1)

	if rec := serve(t, limiter.RateLimit(), ""); rec.Code != http.StatusOK {
		t.Fatalf("expected first request through, got %d", rec.Code)
	}
	if rec := serve(t, limiter.RateLimit(), ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRedisRateLimiterFailsOpen(t *testing.T) {
	limiter, mr := newRedisLimiter(t, 1)
	mr.Close()

	if rec := serve(t, limiter.RateLimit(), ""); rec.Code != http.StatusOK {
		t.Fatalf("expected request through when redis is down, got %d", rec.Code)
	}
}
