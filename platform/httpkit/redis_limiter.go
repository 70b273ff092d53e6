package httpkit

import (
	"context"
	"fmt"
	"time"

	"railspace_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window limiter shared by every API replica.
// Each (key, window) pair is one Redis counter that expires with the window.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	log    *logger.Logger
	now    func() time.Time
}

// NewRedisRateLimiter allows limit requests per key in every window.
func NewRedisRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration, log *logger.Logger) *RedisRateLimiter {
	if limit < 1 {
		limit = 1
	}
	if window < time.Second {
		window = time.Second
	}
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
		log:    log,
		now:    time.Now,
	}
}

// Allow records one hit for key and reports whether it is within budget.
func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := r.now().Unix() / int64(r.window/time.Second)
	counterKey := fmt.Sprintf("%s:%s:%d", r.prefix, key, bucket)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, counterKey)
	pipe.Expire(ctx, counterKey, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}

	return incr.Val() <= int64(r.limit), nil
}

// RateLimit returns a middleware keyed by client IP. Redis failures let the
// request through and are logged.
func (r *RedisRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		allowed, err := r.Allow(c.Request.Context(), ip)
		if err != nil {
			if r.log != nil {
				r.log.UpstreamFailure("redis", "rate_limit", err)
			}
			c.Next()
			return
		}
		if !allowed {
			if r.log != nil {
				r.log.RateLimitExceeded(ip, c.Request.URL.Path)
			}
			abortTooManyRequests(c)
			return
		}
		c.Next()
	}
}
