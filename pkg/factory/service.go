package factory

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/langpal/langpal-api/pkg/ratelimit"
)

type RateLimiterFactory interface {
	// CreateRateLimiter builds a limiter whose Redis keys (if any) are scoped by name.
	CreateRateLimiter(name string, requests int, window time.Duration) ratelimit.RateLimiter
}

type DefaultRateLimiterFactory struct {
	redisClient *redis.Client
	logger      ratelimit.Logger
}

// NewRateLimiterFactory produces Redis-backed limiters when client is non-nil and in-memory
// limiters otherwise.
func NewRateLimiterFactory(client *redis.Client, logger ratelimit.Logger) *DefaultRateLimiterFactory {
	return &DefaultRateLimiterFactory{redisClient: client, logger: logger}
}

func (f *DefaultRateLimiterFactory) CreateRateLimiter(name string, requests int, window time.Duration) ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests:  requests,
		Window:    window,
		Redis:     f.redisClient,
		KeyPrefix: "ratelimit:" + name + ":",
		Logger:    f.logger,
	})
}

func (f *DefaultRateLimiterFactory) UsesRedis() bool {
	return f.redisClient != nil
}
