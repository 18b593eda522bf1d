package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	pkgredis "github.com/Torqix/aarohan-backend/pkg/redis"
	"github.com/Torqix/aarohan-backend/pkg/response"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Requests allowed per second per client
	RequestsPerSecond int
	// Token bucket capacity
	BurstSize int
	// Use Redis for distributed limiting across instances
	UseRedis bool
	// Redis client (required if UseRedis is true)
	RedisClient *pkgredis.Client
	// Key prefix for Redis
	KeyPrefix string
	// Cleanup interval for local entries
	CleanupInterval time.Duration
	// Local entry TTL
	EntryTTL time.Duration
}

// DefaultRateLimitConfig returns sensible defaults
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 20,
		BurstSize:         40,
		UseRedis:          false,
		KeyPrefix:         "ratelimit:",
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	}
}

type rateLimitEntry struct {
	mu         sync.Mutex
	tokens     float64
	lastUpdate time.Time
}

// RateLimiter implements token-bucket rate limiting keyed by client IP,
// either in-process or backed by Redis counters.
type RateLimiter struct {
	config  RateLimitConfig
	entries sync.Map
	stop    chan struct{}
}

// NewRateLimiter creates a rate limiter and starts the local cleanup loop
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		config: cfg,
		stop:   make(chan struct{}),
	}
	if !cfg.UseRedis {
		go rl.cleanupLoop()
	}
	return rl
}

// Stop terminates the cleanup loop
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.config.EntryTTL)
			rl.entries.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				stale := entry.lastUpdate.Before(cutoff)
				entry.mu.Unlock()
				if stale {
					rl.entries.Delete(key)
				}
				return true
			})
		}
	}
}

// allowLocal applies the token bucket algorithm in-process
func (rl *RateLimiter) allowLocal(key string) bool {
	value, _ := rl.entries.LoadOrStore(key, &rateLimitEntry{
		tokens:     float64(rl.config.BurstSize),
		lastUpdate: time.Now(),
	})
	entry := value.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastUpdate).Seconds()
	entry.tokens += elapsed * float64(rl.config.RequestsPerSecond)
	if entry.tokens > float64(rl.config.BurstSize) {
		entry.tokens = float64(rl.config.BurstSize)
	}
	entry.lastUpdate = now

	if entry.tokens < 1 {
		return false
	}
	entry.tokens--
	return true
}

// allowRedis applies a fixed-window counter in Redis so all instances share
// one budget per client
func (rl *RateLimiter) allowRedis(c *gin.Context, key string) bool {
	ctx := c.Request.Context()
	windowKey := fmt.Sprintf("%s%s:%d", rl.config.KeyPrefix, key, time.Now().Unix())

	count, err := rl.config.RedisClient.Incr(ctx, windowKey).Result()
	if err != nil {
		// Redis unavailable: fail open rather than blocking all traffic
		return true
	}
	if count == 1 {
		rl.config.RedisClient.Expire(ctx, windowKey, 2*time.Second)
	}
	return count <= int64(rl.config.RequestsPerSecond)
}

// Middleware returns the gin middleware applying the rate limit
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		var allowed bool
		if rl.config.UseRedis && rl.config.RedisClient != nil {
			allowed = rl.allowRedis(c, key)
		} else {
			allowed = rl.allowLocal(key)
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.TooManyRequests(""))
			return
		}

		c.Next()
	}
}
