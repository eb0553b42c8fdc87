package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/langpal/langpal-api/config/router"
	"github.com/langpal/langpal-api/internal/log"
	"github.com/langpal/langpal-api/pkg/ratelimit"
)

const healthCheckTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// MailStatus reports whether outgoing notifications have a provider.
type MailStatus interface {
	Configured() bool
}

type HealthStatus struct {
	Store       int    `json:"store"`        // 1 = healthy, 0 = unhealthy
	StoreDriver string `json:"store_driver"` // postgres | sqlite | redis
	Cache       int    `json:"cache"`        // 1 = healthy, 0 = unhealthy/not configured
	Email       int    `json:"email"`        // 1 = provider configured, 0 = not configured
	Uptime      int    `json:"uptime"`       // uptime in seconds
}

type MonitoringController struct {
	store       Pinger
	storeDriver string
	cache       Pinger
	mail        MailStatus
	logger      *log.Logger
	startTime   time.Time
}

func NewMonitoringController(store Pinger, storeDriver string, cache Pinger, mail MailStatus, logger *log.Logger) *router.RESTController {
	ctrl := &MonitoringController{
		store:       store,
		storeDriver: storeDriver,
		cache:       cache,
		mail:        mail,
		logger:      logger,
		startTime:   time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {

			monitoringRateLimiter := createMonitoringRateLimiter(routerService)

			routerService.AddGetHandler(controller, monitoringRateLimiter, "", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.monitor(c)
			})

			routerService.AddGetHandler(controller, monitoringRateLimiter, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})
		},
	)
}

func createMonitoringRateLimiter(routerService *router.RouterService) ratelimit.RateLimiter {
	const monitoringRequestsPerMinute = 10 // More restrictive than default 100

	return routerService.RateLimiterFactory().CreateRateLimiter("monitoring", monitoringRequestsPerMinute, time.Minute)
}

func (ctrl *MonitoringController) healthCheck(
	routerService *router.RouterService,
	c *router.RequestContext,
) *router.ServiceResult {
	logger := routerService.GetLogger(c)
	logger.Info("Health check endpoint called")

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	healthStatus := ctrl.performHealthChecks(ctx, logger)

	if healthStatus.Store == 0 {
		return router.ErrorResult(http.StatusServiceUnavailable, "Store unavailable", healthStatus)
	}

	return router.OKResult(healthStatus, "langpal-api health check completed")
}

func (ctrl *MonitoringController) monitor(
	c *router.RequestContext,
) *router.ServiceResult {
	return router.OKResult("Monitoring endpoint is operational.", "Monitoring successful")
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		StoreDriver: ctrl.storeDriver,
		Uptime:      int(time.Since(ctrl.startTime).Seconds()),
	}

	status.Store = checkConnectivity(ctx, "Store", ctrl.store, logger)
	status.Cache = checkConnectivity(ctx, "Cache", ctrl.cache, logger)

	if ctrl.mail != nil && ctrl.mail.Configured() {
		status.Email = 1
	}

	return status
}

func checkConnectivity(ctx context.Context, name string, target Pinger, logger *log.Logger) int {
	if target == nil {
		logger.Info(name + " not configured, health check skipped")
		return 0
	}

	if err := target.Ping(ctx); err != nil {
		logger.Error(name+" health check failed", "error", err)
		return 0
	}

	logger.Info(name + " health check passed")
	return 1
}
