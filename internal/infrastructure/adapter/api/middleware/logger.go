package middleware

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/gin-gonic/gin"
)

// probePaths are polled by infrastructure and only logged at debug level
var probePaths = map[string]bool{
	"/healthz": true,
	"/metrics": true,
}

// Logger logs every request once it has been handled. Server errors are
// logged at warn level; the error handler logs their cause.
func Logger(logger coreport.Logger, timeProvider coreport.TimeProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := timeProvider.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := map[string]any{
			"method":       c.Request.Method,
			"path":         path,
			"route":        c.FullPath(),
			"status":       status,
			"status_class": statusClass(status),
			"latency_ms":   timeProvider.Since(start).Milliseconds(),
			"ip":           c.ClientIP(),
			"request_id":   RequestIDFrom(c),
			"user_agent":   c.Request.UserAgent(),
		}
		if principal := PrincipalFrom(c); principal != nil {
			fields["user_id"] = principal.UserID
			fields["guest"] = principal.Guest
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.Errors()
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Warn("Request processed", fields)
		case probePaths[path] && status < http.StatusBadRequest:
			logger.Debug("Request processed", fields)
		default:
			logger.Info("Request processed", fields)
		}
	}
}

func statusClass(code int) string {
	switch {
	case code < 200:
		return "Informational"
	case code < 300:
		return "Success"
	case code < 400:
		return "Redirect"
	case code < 500:
		return "Client Error"
	default:
		return "Server Error"
	}
}
