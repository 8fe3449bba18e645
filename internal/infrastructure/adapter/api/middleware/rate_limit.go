package middleware

import (
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
	"github.com/gin-gonic/gin"
)

// RateLimit applies the rule per caller: the user id when authenticated,
// the client address otherwise. Limiter failures let the request through.
func RateLimit(limiter gateway.RateLimiter, rule entity.RateLimit, recorder coreport.MetricsRecorder, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := c.ClientIP()
		if principal := PrincipalFrom(c); principal != nil {
			identity = principal.UserID
		}
		key := rule.Key(identity)

		allowed, err := limiter.Allow(c.Request.Context(), key, rule)
		if err != nil {
			logger.Warn("Rate limiter unavailable, allowing request", map[string]any{
				"rule":       rule.Name,
				"key":        key,
				"error":      err.Error(),
				"request_id": RequestIDFrom(c),
			})
			c.Next()
			return
		}

		if !allowed {
			recorder.RecordRateLimitDenied(rule.Name)
			logger.Debug("Rate limit exceeded", map[string]any{
				"rule": rule.Name,
				"key":  key,
			})
			AbortWithError(c, errs.ErrRateLimited)
			return
		}

		c.Next()
	}
}
