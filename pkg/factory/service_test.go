package factory

import (
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/langpal/langpal-api/pkg/ratelimit"
)

func TestRateLimiterFactory_InMemoryWithoutClient(t *testing.T) {
	f := NewRateLimiterFactory(nil, nil)

	if f.UsesRedis() {
		t.Fatalf("expected no redis without a client")
	}

	limiter := f.CreateRateLimiter("forms", 10, time.Minute)
	if _, ok := limiter.(*ratelimit.InMemoryRateLimiter); !ok {
		t.Fatalf("expected in-memory limiter, got %T", limiter)
	}

	requests, window := limiter.GetLimitDetails()
	if requests != 10 || window != time.Minute {
		t.Fatalf("unexpected limit details %d/%s", requests, window)
	}
}

func TestRateLimiterFactory_RedisWithClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	f := NewRateLimiterFactory(client, nil)
	if !f.UsesRedis() {
		t.Fatalf("expected redis when a client is given")
	}

	limiter := f.CreateRateLimiter("export", 5, time.Minute)
	if _, ok := limiter.(*ratelimit.RedisRateLimiter); !ok {
		t.Fatalf("expected a redis-backed limiter, got %T", limiter)
	}
}
