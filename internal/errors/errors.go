package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("User already exists")
	// ErrEmailInUse is the admin user-creation variant of ErrEmailTaken.
	ErrEmailInUse = errors.New("Email already in use")
	// ErrTaskNotFound is returned when a task does not exist.
	ErrTaskNotFound = errors.New("Task not found")
	// ErrDocumentNotFound is returned when a document does not exist.
	ErrDocumentNotFound = errors.New("Document not found")
	// ErrUserNotFound is returned when a user record does not exist.
	ErrUserNotFound = errors.New("User not found")
	// ErrAccessDenied is returned when the ownership policy rejects a request.
	ErrAccessDenied = errors.New("Access denied")
	// ErrTooManyFiles is returned when an upload exceeds the attachment limit.
	ErrTooManyFiles = errors.New("Too many files")
)

// ErrorResponse is the JSON body for every error the API returns.
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

// HTTPError pairs a domain error with an HTTP status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// 500; the handler decides how much of the underlying message to surface.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrEmailInUse):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrDocumentNotFound), errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAccessDenied):
		return NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrTooManyFiles):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
