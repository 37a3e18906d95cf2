package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/field-service-api/internal/httperr"
)

// RateLimiter keeps one token bucket per client IP. Idle buckets expire.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows perMinute requests per client, bursting to the same amount.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	return &RateLimiter{
		limiters: cache.New(10*time.Minute, 20*time.Minute),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.limiters.Get(key); ok {
		l := v.(*rate.Limiter)
		rl.limiters.SetDefault(key, l)
		return l
	}
	l := rate.NewLimiter(rl.limit, rl.burst)
	rl.limiters.SetDefault(key, l)
	return l
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			httperr.TooManyRequests(c, "rate_limited", "Too many requests, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
