package config

import (
	"context"
	"time"

	"github.com/langpal/langpal-api/config/router"
	"github.com/langpal/langpal-api/domain/export"
	"github.com/langpal/langpal-api/internal/kvstore"
	"github.com/langpal/langpal-api/internal/log"
	"github.com/langpal/langpal-api/internal/notify"
	"github.com/langpal/langpal-api/pkg/constants"
	"github.com/langpal/langpal-api/pkg/utils"
)

type ApplicationConfig struct {
	KVStore         kvstore.Store
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Notifier        *notify.Notifier
	Export          *export.ExportConfig
	Config          *AppConfig
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
	KVStore           *KVStoreConfig
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		RateLimitRequests: utils.GetEnvPositiveInt("RATE_LIMIT_REQUESTS", constants.DefaultRateLimitRequests),
		RateLimitWindow:   utils.GetEnvPositiveDuration("RATE_LIMIT_WINDOW", constants.DefaultRateLimitWindow()),
		RequestTimeout:    utils.GetEnvPositiveDuration("REQUEST_TIMEOUT", 30*time.Second),
		KVStore:           NewKVStoreConfig(),
	}
}

// Cleanup releases resources in reverse construction order. It is safe on a partially
// built config.
func (ac *ApplicationConfig) Cleanup() {
	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.KVStore != nil {
		CloseKVStore(ac.KVStore, ac.Logger)
	}

	if ac.Cache != nil {
		_ = CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	env := CurrentEnvironment()
	if autoMigrate {
		if err := ValidateAutoMigrateAllowed(env); err != nil {
			return nil, err
		}
		if env == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	exportCfg, err := export.LoadExportConfig()
	if err != nil {
		return nil, err
	}

	tracingCfg, err := LoadTracingConfig()
	if err != nil {
		return nil, err
	}

	appConfig := &ApplicationConfig{
		Logger: logger,
		Export: exportCfg,
		Config: NewAppConfig(),
	}
	fail := func(err error) (*ApplicationConfig, error) {
		appConfig.Cleanup()
		return nil, err
	}

	if err := ValidateStoreDriverAllowed(env, appConfig.Config.KVStore.Driver); err != nil {
		return nil, err
	}

	appConfig.Cache = NewCacheConfig().NewCacheOrNil(logger)

	store, err := NewKVStore(logger, appConfig.Config.KVStore, appConfig.Cache, autoMigrate)
	if err != nil {
		return fail(err)
	}
	appConfig.KVStore = store
	logger.Info("KV store ready", "driver", store.Driver())

	appConfig.TracingShutdown, err = SetupTracing(logger, tracingCfg, store.Driver())
	if err != nil {
		return fail(err)
	}

	appConfig.RouterService = router.CreateRouterService(logger, appConfig.Cache, &router.RouterConfig{
		RateLimitRequests:  appConfig.Config.RateLimitRequests,
		RateLimitWindow:    appConfig.Config.RateLimitWindow,
		RequestTimeout:     appConfig.Config.RequestTimeout,
		TracingServiceName: tracingCfg.RouterServiceName(),
	})

	appConfig.Notifier, err = NewNotifier(logger, appConfig.RouterService.MetricsRegistry())
	if err != nil {
		return fail(err)
	}

	logger.Info("Application configuration loaded successfully", "env", string(env))
	return appConfig, nil
}
