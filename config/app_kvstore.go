package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/langpal/langpal-api/internal/kvstore"
	"github.com/langpal/langpal-api/internal/log"
	"github.com/langpal/langpal-api/internal/models"
	"github.com/langpal/langpal-api/pkg/utils"
)

type KVStoreConfig struct {
	Driver       string
	SQLitePath   string
	WriteTimeout time.Duration
}

func NewKVStoreConfig() *KVStoreConfig {
	return &KVStoreConfig{
		Driver:       strings.ToLower(utils.GetEnvTrimmedOrDefault("KV_STORE_DRIVER", kvstore.DriverPostgres)),
		SQLitePath:   utils.GetEnvTrimmedOrDefault("KV_SQLITE_PATH", "data/langpal.db"),
		WriteTimeout: utils.GetEnvPositiveDuration("KV_WRITE_TIMEOUT", 10*time.Second),
	}
}

// NewKVStore opens the store named by cfg.Driver. The redis driver reuses the cache client,
// so cache must be configured for it. autoMigrate applies to postgres; sqlite is always
// migrated because it only backs local runs.
func NewKVStore(logger *log.Logger, cfg *KVStoreConfig, cache Cache, autoMigrate bool) (kvstore.Store, error) {
	switch cfg.Driver {
	case kvstore.DriverPostgres:
		db, err := NewDatabase(logger, nil)
		if err != nil {
			return nil, err
		}
		if autoMigrate {
			if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
				CloseDatabase(db, logger)
				return nil, err
			}
		}
		return kvstore.NewGormStore(db), nil

	case kvstore.DriverSQLite:
		db, err := NewSQLiteDatabase(logger, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
			CloseDatabase(db, logger)
			return nil, err
		}
		return kvstore.NewGormStore(db), nil

	case kvstore.DriverRedis:
		if cache == nil {
			return nil, fmt.Errorf("KV_STORE_DRIVER=redis requires a reachable Redis (REDIS_HOST)")
		}
		store := kvstore.NewRedisStore(cache.GetClient(), false)
		if err := pingWithRetry(logger, "redis", store.Ping); err != nil {
			return nil, fmt.Errorf("kv store ping failed: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported KV_STORE_DRIVER %q (expected postgres, sqlite or redis)", cfg.Driver)
	}
}

func CloseKVStore(store kvstore.Store, logger *log.Logger) {
	if store == nil {
		return
	}

	if err := store.Close(); err != nil {
		logger.Error("Failed to close kv store", "driver", store.Driver(), "error", err)
		return
	}

	logger.Info("KV store closed", "driver", store.Driver())
}
