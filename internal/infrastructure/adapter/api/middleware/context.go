package middleware

import (
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	requestIDKey = "request_id"

	// HeaderRequestID carries the request id in both directions
	HeaderRequestID = "X-Request-ID"
	// HeaderGuestID carries the guest identity in both directions
	HeaderGuestID = "X-Guest-Id"
)

// SetPrincipal stores the authenticated caller on the request
func SetPrincipal(c *gin.Context, principal *entity.Principal) {
	c.Set(principalKey, principal)
}

// PrincipalFrom returns the authenticated caller, nil for anonymous requests
func PrincipalFrom(c *gin.Context) *entity.Principal {
	value, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	principal, _ := value.(*entity.Principal)
	return principal
}

// RequestIDFrom returns the id assigned by RequestID
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// AbortWithError records err for ErrorHandler and stops the chain
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
