package export

import (
	"net/http"

	"github.com/langpal/langpal-api/config/router"
	"github.com/langpal/langpal-api/internal/log"
	"golang.org/x/crypto/bcrypt"
)

const APIKeyHeader = "X-API-Key"

// RequireAPIKey rejects requests whose X-API-Key does not match hash. An empty hash leaves
// the route open.
func RequireAPIKey(hash string, logger *log.Logger) router.MiddlewareFunc {
	return func(c *router.RequestContext) {
		if hash == "" {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
			logger.WithCorrelationID(c.Request.Context()).Warn("Rejected export request", "path", c.Request.URL.Path, "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, router.UnauthorizedResult("Unauthorized").ToJSON())
			return
		}

		c.Next()
	}
}

// HashAPIKey returns the bcrypt hash to put in EXPORT_API_KEY_HASH.
func HashAPIKey(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
