package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/petkovm/ridehail/internal/observability"
	"github.com/petkovm/ridehail/pkg/logger"
)

// ObservabilityMiddleware records prometheus request metrics and writes
// one structured log line per request.
func ObservabilityMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start)

		observability.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		observability.HTTPRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(elapsed.Seconds())

		log.Info("http_request",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("duration_ms", elapsed.Milliseconds()),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
