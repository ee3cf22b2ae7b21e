package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-gin-jobboard/internal/core/metrics"
)

// Metrics 按路由模板（/api/v1/jobs/:id）统计，不用原始 path
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.HTTPInFlight.Inc()
		start := time.Now()
		defer metrics.HTTPInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = metrics.UnmatchedRoute
		}
		metrics.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPLatency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
