package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// ErrorClassifier classifies driver errors from postgres and sqlite
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsLockError(err):
		return LockError
	case c.IsTransientError(err):
		return TransientError
	case c.IsConnectionError(err):
		return ConnectionError
	case c.IsConstraintError(err):
		return ConstraintError
	}
	return ""
}

// IsDuplicateKeyError checks if the error is a unique violation
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "SQLSTATE 23505")
}

// IsTransientError checks if an error is transient and can be retried
func (c *ErrorClassifier) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "server closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "database is locked")
}

// IsLockError checks if the error is due to row or table locking
func (c *ErrorClassifier) IsLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "lock wait timeout") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "SQLITE_BUSY")
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection") ||
		strings.Contains(msg, "dial") ||
		strings.Contains(msg, "network") ||
		c.IsTransientError(err)
}

// IsConstraintError checks if the error is related to constraint violations
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "constraint") ||
		strings.Contains(msg, "violates") ||
		strings.Contains(msg, "foreign key") ||
		strings.Contains(msg, "NOT NULL") ||
		c.IsDuplicateKeyError(err)
}

// dbErrors is embedded by every repository to translate gorm errors into the
// domain error set with a consistent log line
type dbErrors struct {
	logger     coreport.Logger
	classifier *ErrorClassifier
	entity     string
	notFound   error
}

func newDBErrors(logger coreport.Logger, entity string, notFound error) dbErrors {
	return dbErrors{
		logger:     logger,
		classifier: NewErrorClassifier(),
		entity:     entity,
		notFound:   notFound,
	}
}

// handleDatabaseError standardizes database error handling
func (d dbErrors) handleDatabaseError(operation string, err error, fields map[string]any) error {
	if fields == nil {
		fields = map[string]any{}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		d.logger.Warn(fmt.Sprintf("%s not found", d.entity), fields)
		return d.notFound
	}

	fields["error"] = err.Error()
	fields["error_type"] = string(d.classifier.Classify(err))

	if d.classifier.IsConstraintError(err) {
		d.logger.Warn(fmt.Sprintf("Constraint violation when %s", operation), fields)
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}

	d.logger.Error(fmt.Sprintf("Database error when %s", operation), fields)
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// optionalID converts a zero id into a NULL column value
func optionalID(id uint64) *uint64 {
	if id == 0 {
		return nil
	}
	return &id
}

// idOrZero converts a nullable id column into the entity's zero-means-absent form
func idOrZero(id *uint64) uint64 {
	if id == nil {
		return 0
	}
	return *id
}

// optionalString converts an empty string into a NULL column value so unique
// indexes ignore it
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// paginate applies limit and offset of a normalized page request
func paginate(db *gorm.DB, limit, offset int) *gorm.DB {
	return db.Limit(limit).Offset(offset)
}

// plainJSONMap converts a JSON column into a map whose numbers are float64,
// the way encoding/json decodes into map[string]any
func plainJSONMap(m datatypes.JSONMap) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return plainJSONObject(m)
}

func plainJSONObject(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plainJSONValue(v)
	}
	return out
}

func plainJSONValue(v any) any {
	switch value := v.(type) {
	case json.Number:
		if f, err := value.Float64(); err == nil {
			return f
		}
		return value.String()
	case map[string]any:
		return plainJSONObject(value)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = plainJSONValue(item)
		}
		return out
	default:
		return v
	}
}
