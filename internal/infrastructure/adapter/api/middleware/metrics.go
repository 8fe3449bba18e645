package middleware

import (
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/gin-gonic/gin"
)

const unmatchedRoute = "unmatched"

// Metrics observes every request by method, route template and status
func Metrics(recorder coreport.MetricsRecorder, timeProvider coreport.TimeProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := timeProvider.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		recorder.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), timeProvider.Since(start).Std())
	}
}
