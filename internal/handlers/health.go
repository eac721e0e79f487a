package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HealthCheck func(ctx context.Context) error

// Health pings every backing store. Any failure answers 503 with the failing
// names.
func Health(checks map[string]HealthCheck, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		failed := gin.H{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.WithError(err).WithField("check", name).Warn("health check failed")
				failed[name] = err.Error()
			}
		}

		if len(failed) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "unavailable", "failed": failed})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
