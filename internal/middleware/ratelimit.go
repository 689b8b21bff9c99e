package middleware

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/aplaceintime/api/internal/logger"
	"github.com/aplaceintime/api/pkg/response"
)

// sweepThreshold bounds the in-process limiter table before idle entries
// are dropped.
const sweepThreshold = 10000

// RateLimiter limits requests per client IP. With a Redis client it keeps
// fixed-window counters there, otherwise token buckets in memory.
type RateLimiter struct {
	redis *redis.Client

	mu    sync.Mutex
	local map[string]*localBucket
	now   func() time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter. redisClient may be nil.
func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{
		redis: redisClient,
		local: make(map[string]*localBucket),
		now:   time.Now,
	}
}

// Limit creates a rate limiting middleware. maxRequests <= 0 disables it.
func (rl *RateLimiter) Limit(keyPrefix string, maxRequests int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if maxRequests <= 0 {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", keyPrefix, c.IP())
		if rl.redis != nil {
			return rl.redisLimit(c, key, maxRequests, window)
		}
		return rl.localLimit(c, key, maxRequests, window)
	}
}

func (rl *RateLimiter) redisLimit(c *fiber.Ctx, key string, maxRequests int, window time.Duration) error {
	ctx := context.Background()

	count, err := rl.redis.Incr(ctx, key).Result()
	if err != nil {
		// Redis down: let the request through
		logger.Warn("Rate limit counter unavailable", logger.Fields{"key": key, "error": err.Error()})
		return c.Next()
	}

	if count == 1 {
		rl.redis.Expire(ctx, key, window)
	}

	if count > int64(maxRequests) {
		ttl, _ := rl.redis.TTL(ctx, key).Result()
		c.Set("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
		return response.RateLimited(c)
	}

	c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequests))
	c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", maxRequests-int(count)))

	return c.Next()
}

func (rl *RateLimiter) localLimit(c *fiber.Ctx, key string, maxRequests int, window time.Duration) error {
	now := rl.now()
	lim := rl.bucket(key, maxRequests, window, now)

	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		c.Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(delay.Seconds()))))
		return response.RateLimited(c)
	}

	remaining := int(lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequests))
	c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

	return c.Next()
}

func (rl *RateLimiter) bucket(key string, maxRequests int, window time.Duration, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if b, ok := rl.local[key]; ok {
		b.lastSeen = now
		return b.limiter
	}

	if len(rl.local) >= sweepThreshold {
		for k, b := range rl.local {
			if now.Sub(b.lastSeen) > window {
				delete(rl.local, k)
			}
		}
	}

	b := &localBucket{
		limiter:  rate.NewLimiter(rate.Every(window/time.Duration(maxRequests)), maxRequests),
		lastSeen: now,
	}
	rl.local[key] = b
	return b.limiter
}

// AILimit returns a rate limiter for the generate, analyze and chat endpoints
func (rl *RateLimiter) AILimit(maxPerMin int) fiber.Handler {
	return rl.Limit("ai", maxPerMin, time.Minute)
}

// LookupLimit returns a rate limiter for the Spotify, Genius and Musixmatch
// endpoints
func (rl *RateLimiter) LookupLimit(maxPerMin int) fiber.Handler {
	return rl.Limit("lookup", maxPerMin, time.Minute)
}
