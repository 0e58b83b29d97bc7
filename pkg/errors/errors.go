package errors

import "fmt"

// Error codes
const (
	CodeAPIError           = "API_ERROR"
	CodeCache              = "CACHE_ERROR"
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnsupportedRequest = "UNSUPPORTED_REQUEST"
	CodePositionOutOfRange = "POSITION_OUT_OF_RANGE"
)

type ServiceError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func (e *ServiceError) WithCause(cause error) *ServiceError {
	e.Cause = cause
	return e
}

// APIError signals an upstream query execution failure (network error,
// non-2xx status, GraphQL-level errors). Never retried and never cached.
type APIError struct {
	*ServiceError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		ServiceError: &ServiceError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

func (e *APIError) WithCause(cause error) *APIError {
	e.ServiceError.Cause = cause
	return e
}

type CacheError struct {
	*ServiceError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		ServiceError: &ServiceError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ValidationError struct {
	*ServiceError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		ServiceError: &ServiceError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// UnsupportedRequestError signals that no query variant matches the
// request discriminator. The HTTP layer maps it to a 404.
type UnsupportedRequestError struct {
	*ServiceError
}

func NewUnsupportedRequestError(collectiveSlug string) *UnsupportedRequestError {
	return &UnsupportedRequestError{
		ServiceError: &ServiceError{
			Message:    "no query variant matches the request",
			Code:       CodeUnsupportedRequest,
			StatusCode: 404,
			Context: map[string]any{
				"collectiveSlug": collectiveSlug,
			},
		},
	}
}

// PositionOutOfRangeError signals a ranked position past the sentinel
// (list length) of a resolved member list.
type PositionOutOfRangeError struct {
	*ServiceError
	Position int
	Length   int
}

func NewPositionOutOfRangeError(position, length int) *PositionOutOfRangeError {
	return &PositionOutOfRangeError{
		ServiceError: &ServiceError{
			Message:    fmt.Sprintf("position %d is beyond the resolved list of %d members", position, length),
			Code:       CodePositionOutOfRange,
			StatusCode: 404,
			Context: map[string]any{
				"position": position,
				"length":   length,
			},
		},
		Position: position,
		Length:   length,
	}
}
