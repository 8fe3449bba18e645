package middleware

import (
	"errors"
	"reflect"
	"strings"

	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	invalidBodyMessage  = "Invalid request body"
	invalidQueryMessage = "Invalid query parameters"
)

func init() {
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		engine.RegisterTagNameFunc(wireFieldName)
	}
}

// wireFieldName reports fields by their json or form name
func wireFieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// BindJSON decodes and validates the JSON body into obj
func BindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindWith(obj, binding.JSON); err != nil {
		return bindingError(invalidBodyMessage, err)
	}
	return nil
}

// BindForm decodes and validates a multipart or urlencoded form into obj
func BindForm(c *gin.Context, obj any) error {
	if err := c.ShouldBind(obj); err != nil {
		return bindingError(invalidBodyMessage, err)
	}
	return nil
}

// BindQuery decodes and validates the query string into obj
func BindQuery(c *gin.Context, obj any) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		return bindingError(invalidQueryMessage, err)
	}
	return nil
}

// bindingError turns decoder and validator failures into a ValidationError
func bindingError(message string, err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errs.NewValidationError(message, errs.FieldViolation{
			Field:   "body",
			Rule:    "format",
			Message: err.Error(),
		})
	}

	details := make([]errs.FieldViolation, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details = append(details, errs.FieldViolation{
			Field:   fieldName(fieldErr),
			Rule:    fieldErr.Tag(),
			Message: violationMessage(fieldErr),
		})
	}
	return errs.NewValidationError(message, details...)
}

func fieldName(fieldErr validator.FieldError) string {
	namespace := fieldErr.Namespace()
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return fieldErr.Field()
}

func violationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fieldErr.Param()
	case "max":
		return "must be at most " + fieldErr.Param()
	case "min":
		return "must be at least " + fieldErr.Param()
	case "url":
		return "must be a valid url"
	default:
		return "failed on " + fieldErr.Tag()
	}
}
