package middleware

import (
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	"github.com/gin-gonic/gin"
)

// RequireOwner limits a route to site owners outside production
func RequireOwner(production, mvpMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)
		if principal == nil {
			AbortWithError(c, errs.ErrAuthRequired)
			return
		}
		if !principal.CanUseOwnerEndpoints(production, mvpMode) {
			AbortWithError(c, errs.ErrNoPermission)
			return
		}
		c.Next()
	}
}
