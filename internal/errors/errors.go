package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserAlreadyExists is returned when registering with an email that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned for unknown email or wrong password.
	// Both cases share one message so error text never reveals which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoToken is returned when a private route is called without an Authorization header.
	ErrNoToken = errors.New("no token provided, please login")
	// ErrInvalidToken covers tampered, expired and deleted-user tokens alike.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTaskNotFound is returned when a task is absent or owned by another user.
	ErrTaskNotFound = errors.New("task not found")
	// ErrCategoryNotFound is returned when a category has no tasks for the caller.
	ErrCategoryNotFound = errors.New("category not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything outside the
// taxonomy (store unreachable, etc.) is a generic 500, never a 401 or 404.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserAlreadyExists:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_ALREADY_EXISTS")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrNoToken:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "NO_TOKEN")
	case ErrInvalidToken:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case ErrTaskNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case ErrCategoryNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
