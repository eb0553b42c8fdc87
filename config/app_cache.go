package config

import (
	"context"
	"errors"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/langpal/langpal-api/internal/log"
	pkgredis "github.com/langpal/langpal-api/pkg/redis"
	"github.com/langpal/langpal-api/pkg/utils"
)

var ErrCacheNotConfigured = errors.New("cache: REDIS_HOST is not set")

// Cache is the shared Redis connection: rate limiting and, with KV_STORE_DRIVER=redis,
// the submission store both run on its client.
type Cache interface {
	Ping(ctx context.Context) error
	Close() error
	GetClient() *redis.Client
}

// CacheConfig is pkgredis.Config read from REDIS_* variables.
type CacheConfig struct {
	pkgredis.Config
}

func NewCacheConfig() *CacheConfig {
	return &CacheConfig{pkgredis.Config{
		Host:        utils.GetEnvTrimmed("REDIS_HOST"),
		Port:        utils.GetEnvTrimmedOrDefault("REDIS_PORT", "6379"),
		Password:    os.Getenv("REDIS_PASSWORD"),
		DB:          utils.GetEnvPositiveInt("REDIS_DB", 0),
		DialTimeout: utils.GetEnvPositiveDuration("REDIS_DIAL_TIMEOUT", 0),
	}}
}

func (cc *CacheConfig) IsConfigured() bool {
	return cc.Host != ""
}

func (cc *CacheConfig) NewCache(logger *log.Logger) (Cache, error) {
	if !cc.IsConfigured() {
		return nil, ErrCacheNotConfigured
	}

	cache, err := pkgredis.NewRedisCache(&cc.Config)
	if err != nil {
		return nil, err
	}

	logger.Info("Redis connected", "addr", cc.Addr(), "db", cc.DB)
	return cache, nil
}

// NewCacheOrNil returns nil when Redis is absent or unreachable. Rate limits then stay
// per process and the redis KV driver cannot be used.
func (cc *CacheConfig) NewCacheOrNil(logger *log.Logger) Cache {
	cache, err := cc.NewCache(logger)
	switch {
	case errors.Is(err, ErrCacheNotConfigured):
		logger.Info("Redis not configured; rate limits are per process")
		return nil
	case err != nil:
		logger.Error("Redis unreachable; rate limits are per process", "addr", cc.Addr(), "error", err)
		return nil
	}
	return cache
}

func CloseCache(cache Cache, logger *log.Logger) error {
	if cache == nil {
		return nil
	}

	if err := cache.Close(); err != nil {
		logger.Error("Failed to close Redis connection", "error", err)
		return err
	}

	logger.Info("Redis connection closed")
	return nil
}
