package middleware

import (
	"strconv"
	"time"

	"github.com/BerniceZTT/crm_interactions/metrics"

	"github.com/gin-gonic/gin"
)

// unmatchedRoute 未命中任何路由时的标签值，避免路径参数撑爆基数
const unmatchedRoute = "unmatched"

// Metrics 按路由模板统计请求数与耗时
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method

		metrics.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
