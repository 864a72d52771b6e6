package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"snipurl-platform/pkg/metrics"
)

// Metrics records request counts and durations per method and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		metrics.RequestTotal.WithLabelValues(c.Request.Method, status).Inc()
		metrics.RequestDuration.WithLabelValues(c.Request.Method, status).Observe(time.Since(start).Seconds())
	}
}
