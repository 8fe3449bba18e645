package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Wire codes for standardized API responses
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeAuthRequired       = "AUTH_REQUIRED"
	CodeNoPermission       = "NO_PERMISSION"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeInsufficientCredit = "1000402"
	CodeNotFound           = "NOT_FOUND"
	CodeFeatureDisabled    = "FEATURE_DISABLED"
	CodeGiftCodeInvalid    = "GIFT_CODE_INVALID"
	CodeGenerationFailed   = "GENERATION_FAILED"
	CodeDuplicateRequest   = "DUPLICATE_REQUEST"
	CodeInternal           = "INTERNAL_ERROR"
)

// Category groups errors by how they are reported to clients
type Category string

// Error categories
const (
	CategoryValidation     Category = "validation"
	CategoryAuthentication Category = "authentication"
	CategoryAuthorization  Category = "authorization"
	CategoryRateLimit      Category = "rate_limit"
	CategoryBusiness       Category = "business"
	CategoryNotFound       Category = "not_found"
	CategoryInternal       Category = "internal"
)

// Base error types
var (
	// ErrAuthRequired is returned when a request carries no usable identity
	ErrAuthRequired = errors.New("not authenticated")

	// ErrNoPermission is returned when the identity is not allowed to use an endpoint
	ErrNoPermission = errors.New("no permission")

	// ErrRateLimited is returned when the caller exceeded its sliding window
	ErrRateLimited = errors.New("too many requests")

	// ErrValidation is returned when a request body or query fails validation
	ErrValidation = errors.New("validation failed")

	// ErrTextContentRequired is returned for text generations without content
	ErrTextContentRequired = errors.New("text content is required for text generation")

	// ErrImageURLRequired is returned for image generations without a source url
	ErrImageURLRequired = errors.New("image url is required for image conversion")

	// ErrInsufficientCredit is returned when the balance does not cover a charge
	ErrInsufficientCredit = errors.New("insufficient credit")

	// ErrGenerationFailed is returned when the image vendor could not produce a result
	ErrGenerationFailed = errors.New("generation failed")

	// ErrGenerationSettled is returned when a generation already left the processing state
	ErrGenerationSettled = errors.New("generation already settled")

	// ErrNoValidIDs is returned when none of the supplied public ids decode
	ErrNoValidIDs = errors.New("no valid ids provided")

	// ErrInvalidID is returned when a public id cannot be decoded
	ErrInvalidID = errors.New("invalid id")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("not found")

	// ErrGenerationNotFound is returned when a generation record does not exist
	ErrGenerationNotFound = errors.New("generation not found")

	// ErrAccountNotFound is returned when a credit account does not exist
	ErrAccountNotFound = errors.New("credit account not found")

	// ErrGiftCodeNotFound is returned when a gift code does not exist
	ErrGiftCodeNotFound = errors.New("gift code not found")

	// ErrGiftCodeUsed is returned when a gift code was already redeemed
	ErrGiftCodeUsed = errors.New("gift code already used")

	// ErrGiftCodeExpired is returned when a gift code is past its expiry
	ErrGiftCodeExpired = errors.New("gift code expired")

	// ErrFeatureDisabled is returned when an endpoint is switched off by configuration
	ErrFeatureDisabled = errors.New("feature disabled")

	// ErrDuplicateRequest is returned when a request id is reused by another user
	ErrDuplicateRequest = errors.New("request id already used")

	// ErrVendorUnavailable is returned when the image vendor cannot be reached
	ErrVendorUnavailable = errors.New("image vendor unavailable")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// Kind returns the reporting category of an error
func Kind(err error) Category {
	var validationErr *ValidationError
	var businessErr *BusinessError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr), errors.Is(err, ErrValidation):
		return CategoryValidation
	case errors.Is(err, ErrAuthRequired):
		return CategoryAuthentication
	case errors.Is(err, ErrNoPermission), errors.Is(err, ErrFeatureDisabled):
		return CategoryAuthorization
	case errors.Is(err, ErrRateLimited):
		return CategoryRateLimit
	case IsNotFoundError(err), errors.Is(err, ErrInvalidID):
		return CategoryNotFound
	case errors.As(err, &businessErr),
		errors.Is(err, ErrInsufficientCredit),
		errors.Is(err, ErrTextContentRequired),
		errors.Is(err, ErrImageURLRequired),
		errors.Is(err, ErrGenerationFailed),
		errors.Is(err, ErrNoValidIDs),
		errors.Is(err, ErrGiftCodeUsed),
		errors.Is(err, ErrGiftCodeExpired),
		errors.Is(err, ErrDuplicateRequest):
		return CategoryBusiness
	default:
		return CategoryInternal
	}
}

// HTTPStatus maps an error to the status code returned to clients
func HTTPStatus(err error) int {
	switch Kind(err) {
	case CategoryValidation, CategoryBusiness:
		return http.StatusBadRequest
	case CategoryAuthentication:
		return http.StatusUnauthorized
	case CategoryAuthorization:
		return http.StatusForbidden
	case CategoryRateLimit:
		return http.StatusTooManyRequests
	case CategoryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns standardized wire codes for known errors
func ErrorCode(err error) string {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) && businessErr.Code != "" {
		return businessErr.Code
	}

	switch {
	case errors.Is(err, ErrInsufficientCredit):
		return CodeInsufficientCredit
	case errors.Is(err, ErrGiftCodeUsed), errors.Is(err, ErrGiftCodeExpired), errors.Is(err, ErrGiftCodeNotFound):
		return CodeGiftCodeInvalid
	case errors.Is(err, ErrGenerationFailed):
		return CodeGenerationFailed
	case errors.Is(err, ErrDuplicateRequest):
		return CodeDuplicateRequest
	case errors.Is(err, ErrFeatureDisabled):
		return CodeFeatureDisabled
	}

	switch Kind(err) {
	case CategoryValidation:
		return CodeValidation
	case CategoryAuthentication:
		return CodeAuthRequired
	case CategoryAuthorization:
		return CodeNoPermission
	case CategoryRateLimit:
		return CodeRateLimitExceeded
	case CategoryNotFound:
		return CodeNotFound
	case CategoryBusiness:
		return ""
	default:
		return CodeInternal
	}
}

// FieldViolation describes a single invalid input field
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message,omitempty"`
}

// ValidationError reports a request that failed input validation
type ValidationError struct {
	Message string
	Details []FieldViolation
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Is checks if the target error is ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"message":    e.Message,
		"details":    e.Details,
		"error_code": CodeValidation,
	}
}

// NewValidationError creates a validation error with optional field details
func NewValidationError(message string, details ...FieldViolation) error {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

// BusinessError is a rule violation that is safe to show to the client
type BusinessError struct {
	Message string
	Code    string
	Err     error
}

// Error implements the error interface
func (e *BusinessError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error
func (e *BusinessError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *BusinessError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "business_error",
		"message":    e.Message,
		"error_code": e.Code,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewBusinessError creates a business error with an optional wire code
func NewBusinessError(message, code string) error {
	return &BusinessError{Message: message, Code: code}
}

// InsufficientCreditError provides detailed information about a failed charge
type InsufficientCreditError struct {
	UserID    string
	Required  int64
	Available int64
}

// Error implements the error interface
func (e *InsufficientCreditError) Error() string {
	return ErrInsufficientCredit.Error()
}

// Is checks if the target error is an ErrInsufficientCredit
func (e *InsufficientCreditError) Is(target error) bool {
	return target == ErrInsufficientCredit
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientCreditError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_credit",
		"user_id":    e.UserID,
		"required":   e.Required,
		"available":  e.Available,
		"error_code": CodeInsufficientCredit,
	}
}

// NewInsufficientCreditError creates a new detailed insufficient credit error
func NewInsufficientCreditError(userID string, required, available int64) error {
	return &InsufficientCreditError{
		UserID:    userID,
		Required:  required,
		Available: available,
	}
}

// GenerationError wraps a vendor or pipeline failure for one generation record
type GenerationError struct {
	GenerationID uint64
	Reason       string
	Err          error
}

// Error implements the error interface
func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %d failed: %s", e.GenerationID, e.Reason)
}

// Unwrap returns the underlying error
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *GenerationError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":    "generation_error",
		"generation_id": e.GenerationID,
		"reason":        e.Reason,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewGenerationError creates a generation error that unwraps to ErrGenerationFailed
func NewGenerationError(generationID uint64, reason string) error {
	return &GenerationError{
		GenerationID: generationID,
		Reason:       reason,
		Err:          ErrGenerationFailed,
	}
}

// publicMessages holds the client-facing text of known sentinels, most specific first
var publicMessages = []struct {
	err     error
	message string
}{
	{ErrAuthRequired, "Not authenticated"},
	{ErrNoPermission, "No permission"},
	{ErrRateLimited, "Too Many Requests"},
	{ErrTextContentRequired, "Text content is required for text generation"},
	{ErrImageURLRequired, "Image URL is required for image conversion"},
	{ErrInsufficientCredit, "Insufficient credit"},
	{ErrGenerationFailed, "Generation failed, please try again"},
	{ErrNoValidIDs, "No valid ids provided"},
	{ErrGenerationNotFound, "not found"},
	{ErrGiftCodeNotFound, "Gift code not found"},
	{ErrGiftCodeUsed, "Gift code has already been used"},
	{ErrGiftCodeExpired, "Gift code has expired"},
	{ErrFeatureDisabled, "This feature is disabled"},
	{ErrDuplicateRequest, "Request id already used"},
	{ErrInvalidID, "not found"},
	{ErrNotFound, "not found"},
}

// PublicMessage returns the message that is safe to show to API clients
func PublicMessage(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		return businessErr.Message
	}
	for _, candidate := range publicMessages {
		if errors.Is(err, candidate.err) {
			return candidate.message
		}
	}
	return err.Error()
}

// LogFieldsOf returns the structured fields of an error when it provides them
func LogFieldsOf(err error) map[string]any {
	var withFields interface{ LogFields() map[string]any }
	if errors.As(err, &withFields) {
		return withFields.LogFields()
	}
	if err == nil {
		return map[string]any{}
	}
	return map[string]any{"error": err.Error()}
}

// IsInsufficientCreditError checks if the error is related to insufficient credit
func IsInsufficientCreditError(err error) bool {
	return errors.Is(err, ErrInsufficientCredit)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrGenerationNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrGiftCodeNotFound)
}

// IsValidationError checks if the error came from input validation
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
