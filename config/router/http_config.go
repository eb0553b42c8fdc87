package router

import (
	"fmt"
	"strings"

	"github.com/langpal/langpal-api/pkg/utils"
)

const (
	defaultPort         = "8080"
	defaultMaxBodyBytes = 1 << 20
	defaultHSTSMaxAge   = 31536000
)

// HTTPConfig holds the listener and middleware settings of a RouterService.
type HTTPConfig struct {
	Port    string
	GinMode string

	// TrustedProxies is nil when forwarded headers must be ignored.
	TrustedProxies []string
	// AllowedOrigins may contain "*" to reflect any origin.
	AllowedOrigins []string

	MaxBodyBytes int64

	HSTSEnabled           bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool

	MetricsEnabled bool
}

// HTTPConfigFromEnv reads HTTPConfig from the environment. Malformed values fall back to
// their defaults.
func HTTPConfigFromEnv() *HTTPConfig {
	appEnv := strings.ToLower(utils.GetEnvTrimmed("APP_ENV"))

	return &HTTPConfig{
		Port:                  utils.GetEnvTrimmedOrDefault("APP_PORT", defaultPort),
		GinMode:               utils.GetEnvTrimmed("GIN_MODE"),
		TrustedProxies:        parseTrustedProxies(utils.GetEnvTrimmed("TRUSTED_PROXIES")),
		AllowedOrigins:        splitList(utils.GetEnvTrimmed("CORS_ALLOWED_ORIGIN")),
		MaxBodyBytes:          int64(utils.GetEnvPositiveInt("MAX_REQUEST_BODY_BYTES", defaultMaxBodyBytes)),
		HSTSEnabled:           utils.GetEnvBool("HSTS_ENABLED", appEnv == "production" || appEnv == "prod"),
		HSTSMaxAge:            utils.GetEnvPositiveInt("HSTS_MAX_AGE", defaultHSTSMaxAge),
		HSTSIncludeSubdomains: utils.GetEnvBool("HSTS_INCLUDE_SUBDOMAINS", true),
		MetricsEnabled:        utils.GetEnvBool("METRICS_ENABLED", true),
	}
}

func (c *HTTPConfig) addr() string {
	if c.Port == "" {
		return ":" + defaultPort
	}
	return ":" + c.Port
}

func (c *HTTPConfig) maxBodyBytes() int64 {
	if c.MaxBodyBytes <= 0 {
		return defaultMaxBodyBytes
	}
	return c.MaxBodyBytes
}

// hstsHeader is empty when HSTS is off.
func (c *HTTPConfig) hstsHeader() string {
	if !c.HSTSEnabled {
		return ""
	}

	maxAge := c.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}

	value := fmt.Sprintf("max-age=%d", maxAge)
	if c.HSTSIncludeSubdomains {
		value += "; includeSubDomains"
	}
	return value
}

// parseTrustedProxies maps "" to nil (ClientIP uses RemoteAddr) and "*" to every address.
func parseTrustedProxies(raw string) []string {
	if raw == "*" {
		return []string{"0.0.0.0/0", "::/0"}
	}
	return splitList(raw)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
