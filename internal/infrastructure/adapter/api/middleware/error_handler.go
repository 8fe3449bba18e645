package middleware

import (
	"errors"
	"net/http"

	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// ErrorHandler recovers from panics and renders the last error recorded by a
// handler. Internal error messages are hidden in production.
func ErrorHandler(logger coreport.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      recovered,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": RequestIDFrom(c),
					"user_agent": c.Request.UserAgent(),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error: internalErrorMessage,
					Code:  errs.CodeInternal,
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		renderError(c, c.Errors.Last().Err, logger, production)
	}
}

func renderError(c *gin.Context, err error, logger coreport.Logger, production bool) {
	status := errs.HTTPStatus(err)
	response := dto.ErrorResponse{
		Error: errs.PublicMessage(err),
		Code:  errs.ErrorCode(err),
	}

	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Details) > 0 {
		response.Details = validationErr.Details
	}

	if status >= http.StatusInternalServerError {
		fields := errs.LogFieldsOf(err)
		fields["path"] = c.Request.URL.Path
		fields["method"] = c.Request.Method
		fields["request_id"] = RequestIDFrom(c)
		logger.Error("Request failed", fields)

		if production {
			response.Error = internalErrorMessage
		}
	}

	c.AbortWithStatusJSON(status, response)
}
