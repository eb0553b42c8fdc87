package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// noController labels requests that matched no controller route (404s, /metrics itself).
const noController = "none"

type metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	rateLimited *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "langpal_http_requests_total",
				Help: "HTTP requests by controller, route and status.",
			},
			[]string{"controller", "method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "langpal_http_request_duration_seconds",
				Help:    "HTTP request latency by controller and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"controller", "method", "route"},
		),
		rateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "langpal_http_rate_limited_total",
				Help: "Requests rejected with 429, by controller.",
			},
			[]string{"controller"},
		),
	}

	reg.MustRegister(m.requests, m.duration, m.rateLimited)
	return m
}

func (m *metrics) observeRequest(controller, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(controller, method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(controller, method, route).Observe(elapsed.Seconds())
}

func (m *metrics) observeRateLimited(controller string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(controller).Inc()
}

func (routerService *RouterService) mountMetrics() {
	if !routerService.httpConfig.MetricsEnabled {
		routerService.logger.Info("Metrics disabled (METRICS_ENABLED=false)")
		return
	}

	reg := routerService.metricsRegistry
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	routerService.metrics = newMetrics(reg)

	routerService.engine.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()

		controller, route := noController, c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if ctrl := routerService.controllerFor(c); ctrl != nil {
			controller = ctrl.name
		}

		routerService.metrics.observeRequest(controller, c.Request.Method, route, c.Writer.Status(), time.Since(start))
	})

	routerService.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Not for cross-origin browser clients.
	routerService.engine.OPTIONS("/metrics", func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNoContent)
	})

	routerService.logger.Info("Metrics endpoint mounted", "path", "/metrics")
}
