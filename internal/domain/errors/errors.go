package errors

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// User-facing messages shown by the presentation layer.
const (
	MsgFindPathFailed   = "Error finding path"
	MsgFindPathRetry    = "Error finding path. Please try again."
	MsgSelectLocations  = "Please select both starting and goal locations"
	MsgGraphUnavailable = "Failed to load locations"
	MsgNoPathsReturned  = "No path returned by the server"
)

// Predefined error types
var (
	ErrGraphNotLoaded = NewBaseError(
		http.StatusServiceUnavailable,
		"GRAPH_NOT_LOADED",
		"Location graph has not been loaded",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		MsgSelectLocations,
		"",
	)

	ErrTileNotFound = NewBaseError(
		http.StatusNotFound,
		"TILE_NOT_FOUND",
		"Tile not found",
		"",
	)

	ErrTilesDisabled = NewBaseError(
		http.StatusNotFound,
		"TILES_DISABLED",
		"Local tile archive is not configured",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal error",
		"",
	)
)

// LoadError reports a failure to fetch or parse the location graph.
// Overlays cannot be drawn, but the tile map keeps working.
type LoadError struct {
	err error
}

// NewLoadError creates a graph load error wrapping the underlying cause
func NewLoadError(err error) *LoadError {
	return &LoadError{err: err}
}

// Error implements the error interface
func (e *LoadError) Error() string {
	if e.err == nil {
		return "graph load failed"
	}

	return errors.Wrap(e.err, "graph load failed").Error()
}

// Unwrap exposes the underlying cause
func (e *LoadError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *LoadError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *LoadError) ErrorCode() string {
	return "GRAPH_LOAD_FAILED"
}

// Message returns the user-facing message
func (e *LoadError) Message() string {
	return MsgGraphUnavailable
}

// Details returns detailed error information
func (e *LoadError) Details() string {
	if e.err == nil {
		return ""
	}

	return e.err.Error()
}

// QueryError reports a failed find-path request. It is recoverable: the user may resubmit.
type QueryError struct {
	status  int
	message string
	err     error
}

// NewQueryError creates a query error carrying the message to show the user.
// status is the backend status code, or 0 when the request never got an answer.
func NewQueryError(status int, message string, cause error) *QueryError {
	return &QueryError{status: status, message: message, err: cause}
}

// Error implements the error interface
func (e *QueryError) Error() string {
	if e.err == nil {
		return e.message
	}

	return fmt.Sprintf("%s: %v", e.message, e.err)
}

// Unwrap exposes the underlying cause
func (e *QueryError) Unwrap() error {
	return e.err
}

// Status returns the backend status code, 0 for transport failures
func (e *QueryError) Status() int {
	return e.status
}

// HTTPCode returns the HTTP status code
func (e *QueryError) HTTPCode() int {
	switch {
	case e.status >= 400 && e.status < 600:
		return e.status
	case e.status == 0:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// ErrorCode returns the business error code
func (e *QueryError) ErrorCode() string {
	return "PATH_QUERY_FAILED"
}

// Message returns the user-facing message
func (e *QueryError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *QueryError) Details() string {
	if e.err == nil {
		return ""
	}

	return e.err.Error()
}

// IntegrityKind classifies a data integrity warning
type IntegrityKind string

const (
	IntegrityUnknownEndpoint IntegrityKind = "unknown_endpoint"
	IntegrityPathCount       IntegrityKind = "path_count_mismatch"
	IntegrityDegeneratePath  IntegrityKind = "degenerate_path"
)

// DataIntegrityWarning describes inconsistent data that was skipped rather than rendered.
// It is never returned as an error from a rendering operation.
type DataIntegrityWarning struct {
	Kind   IntegrityKind
	Detail string
}

// Error implements the error interface so warnings can be logged uniformly
func (w DataIntegrityWarning) Error() string {
	return fmt.Sprintf("data integrity warning (%s): %s", w.Kind, w.Detail)
}
