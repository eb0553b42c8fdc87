package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/langpal/langpal-api/internal/log"
	apperrors "github.com/langpal/langpal-api/pkg/errors"
	"github.com/langpal/langpal-api/pkg/factory"
	"github.com/langpal/langpal-api/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Cache interface {
	Ping(ctx context.Context) error
}

type RedisClientProvider interface {
	GetClient() *redis.Client
}

type RouterService struct {
	engine         *gin.Engine
	server         *http.Server
	logger         *log.Logger
	httpConfig     *HTTPConfig
	requestTimeout time.Duration

	defaultLimiter  ratelimit.RateLimiter
	limiterFactory  *factory.DefaultRateLimiterFactory
	metricsRegistry *prometheus.Registry
	metrics         *metrics

	// Keyed by "METHOD-/path"; rate limit overrides are also keyed by controller mount point.
	handlerToControllerMap map[string]*RESTController
	rateLimitOverrides     map[string]ratelimit.RateLimiter
}

type RouterConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration

	// TracingServiceName turns on otelgin spans when non-empty.
	TracingServiceName string

	// HTTP defaults to HTTPConfigFromEnv.
	HTTP *HTTPConfig
}

func CreateRouterService(logger *log.Logger, cache Cache, routerConfig *RouterConfig) *RouterService {
	httpConfig := routerConfig.HTTP
	if httpConfig == nil {
		httpConfig = HTTPConfigFromEnv()
	}

	if httpConfig.GinMode != "" {
		logger.Info("Setting Gin mode", "mode", httpConfig.GinMode)
		gin.SetMode(httpConfig.GinMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.RedirectTrailingSlash = true
	engine.Use(gin.Recovery())

	if routerConfig.TracingServiceName != "" {
		engine.Use(otelgin.Middleware(routerConfig.TracingServiceName))
		logger.Info("Tracing middleware enabled", "service", routerConfig.TracingServiceName)
	}

	rs := &RouterService{
		engine:          engine,
		logger:          logger,
		httpConfig:      httpConfig,
		requestTimeout:  routerConfig.RequestTimeout,
		metricsRegistry: prometheus.NewRegistry(),

		handlerToControllerMap: make(map[string]*RESTController),
		rateLimitOverrides:     make(map[string]ratelimit.RateLimiter),
	}

	rs.applyTrustedProxies()
	rs.initRateLimiting(redisClientOf(cache), routerConfig.RateLimitRequests, routerConfig.RateLimitWindow)

	if len(httpConfig.AllowedOrigins) == 0 {
		logger.Warn("CORS_ALLOWED_ORIGIN not set; cross-origin requests will not get CORS headers")
	}

	engine.Use(rs.requestContextMiddleware(), rs.accessLogMiddleware())

	// /metrics is registered here, before the limiter and CORS middleware below.
	rs.mountMetrics()

	engine.Use(
		rs.securityHeadersMiddleware(),
		rs.bodyLimitMiddleware(),
		rs.corsMiddleware(),
		rs.rateLimitMiddleware(),
		rs.timeoutMiddleware(),
	)

	engine.NoRoute(func(c *gin.Context) {
		GetLogger(c).Warn("Route not found", "path", c.Request.URL.Path)
		c.JSON(http.StatusNotFound, NotFoundResult("Route not found").ToJSON())
	})

	engine.NoMethod(func(c *gin.Context) {
		GetLogger(c).Warn("Method not allowed", "method", c.Request.Method, "path", c.Request.URL.Path)
		c.JSON(http.StatusMethodNotAllowed, ErrorResult(apperrors.StatusMethodNotAllowed, "Method not allowed", nil).ToJSON())
	})

	// Gin's Context is not goroutine-safe, so request time limits are enforced by the server
	// rather than by running handlers in a separate goroutine.
	rs.server = &http.Server{
		Addr:              httpConfig.addr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       routerConfig.RequestTimeout,
		WriteTimeout:      routerConfig.RequestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Router service initialized", "addr", rs.server.Addr)
	return rs
}

func redisClientOf(cache Cache) *redis.Client {
	if provider, ok := cache.(RedisClientProvider); ok && provider != nil {
		return provider.GetClient()
	}
	return nil
}

func (routerService *RouterService) applyTrustedProxies() {
	proxies := routerService.httpConfig.TrustedProxies

	if err := routerService.engine.SetTrustedProxies(proxies); err != nil {
		routerService.logger.Error("Invalid TRUSTED_PROXIES; ignoring forwarded headers", "error", err)
		_ = routerService.engine.SetTrustedProxies(nil)
		return
	}

	if proxies == nil {
		routerService.logger.Info("Trusted proxies disabled (TRUSTED_PROXIES not set)")
	}
}

// initRateLimiting falls back to in-memory limiters when Redis does not answer a ping.
func (routerService *RouterService) initRateLimiting(client *redis.Client, requests int, window time.Duration) {
	if client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			routerService.logger.Warn("Redis unreachable for rate limiting, using in-memory limiters", "error", err)
			client = nil
		}
	}

	routerService.limiterFactory = factory.NewRateLimiterFactory(client, routerService.logger)
	routerService.defaultLimiter = routerService.limiterFactory.CreateRateLimiter("default", requests, window)

	backend := "in-memory"
	if routerService.limiterFactory.UsesRedis() {
		backend = "redis"
	}
	routerService.logger.Info("Rate limiting initialized", "backend", backend, "requests", requests, "window", window)
}

// RateLimiterFactory builds per-route limiters on the same backend as the default limiter.
func (routerService *RouterService) RateLimiterFactory() factory.RateLimiterFactory {
	return routerService.limiterFactory
}

// MetricsRegistry is where domain packages register their collectors. It is served on
// /metrics unless METRICS_ENABLED=false.
func (routerService *RouterService) MetricsRegistry() prometheus.Registerer {
	return routerService.metricsRegistry
}

func (routerService *RouterService) GetEngine() *gin.Engine {
	return routerService.engine
}

func (routerService *RouterService) GetLogger(c *RequestContext) *log.Logger {
	return routerService.logger.WithCorrelationID(c.Request.Context())
}

func (routerService *RouterService) Cleanup() {
	if routerService.defaultLimiter != nil {
		if err := routerService.defaultLimiter.Close(); err != nil {
			routerService.logger.Error("Failed to close rate limiter", "error", err)
		}
	}
	routerService.logger.Info("Router service cleanup completed")
}

func (routerService *RouterService) MountController(controller *RESTController) {
	controller.prepare(routerService, controller)

	routerService.logger.Info("Controller mounted",
		"name", controller.name,
		"path", controller.mountPoint,
		"handlers", controller.handlerCount,
	)
}

// controllerFor returns the controller that registered the matched route, or nil.
func (routerService *RouterService) controllerFor(c *gin.Context) *RESTController {
	return routerService.handlerToControllerMap[routerService.keyForPathAndMethod(c.FullPath(), c.Request.Method)]
}

func (routerService *RouterService) RunHTTPServer() error {
	routerService.logger.Info("Starting HTTP server", "addr", routerService.server.Addr)

	if err := routerService.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		routerService.logger.Error("HTTP server stopped", "error", err)
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

func (routerService *RouterService) Shutdown(ctx context.Context) error {
	routerService.logger.Info("Shutting down HTTP server gracefully...")
	return routerService.server.Shutdown(ctx)
}
