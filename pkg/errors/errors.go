// Package errors defines the sentinel errors and HTTP status mapping shared
// across the retrieval engine.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrIndexNotBuilt          = errors.New("index not built")
	ErrInvalidTopK            = errors.New("top_k must be positive")
	ErrUnknownMethod          = errors.New("unknown retrieval method")
	ErrInvalidInput           = errors.New("invalid input")
	ErrTranslationUnavailable = errors.New("translation capability unavailable")
	ErrEmbeddingUnavailable   = errors.New("embedding capability unavailable")
	ErrCorpusEmpty            = errors.New("corpus source yielded no documents")
	ErrInternal               = errors.New("internal error")
	ErrTimeout                = errors.New("operation timed out")
)

// AppError pairs a sentinel error with a human-readable message and an HTTP
// status code for the service surface.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New wraps a sentinel in an AppError.
func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Newf is New with printf-style message formatting.
func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

// HTTPStatusCode maps an error to the HTTP status the service should return.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrInvalidTopK),
		errors.Is(err, ErrUnknownMethod),
		errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrIndexNotBuilt):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
