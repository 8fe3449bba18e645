package middleware

import (
	"strings"

	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
	"github.com/gin-gonic/gin"
)

// Authenticate resolves the caller through the authenticator. When required is
// false a request without credentials passes through anonymously.
func Authenticate(authenticator gateway.Authenticator, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		credentials := gateway.Credentials{
			BearerToken: bearerToken(c.GetHeader("Authorization")),
			GuestID:     strings.TrimSpace(c.GetHeader(HeaderGuestID)),
		}

		if !required && credentials.BearerToken == "" && credentials.GuestID == "" {
			c.Next()
			return
		}

		principal, err := authenticator.Authenticate(c.Request.Context(), credentials)
		if err != nil {
			if required {
				AbortWithError(c, err)
				return
			}
			c.Next()
			return
		}
		if principal == nil {
			AbortWithError(c, errs.ErrAuthRequired)
			return
		}

		if principal.Guest && principal.UserID != credentials.GuestID {
			c.Header(HeaderGuestID, principal.UserID)
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
