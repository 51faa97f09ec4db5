// Package errors defines the typed failure kinds surfaced by pairxl.
// Every terminal failure carries a machine-readable code so the CLI can
// pick an exit status and the HTTP layer can pick a response status.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Code identifies a failure kind.
type Code string

const (
	// CodeInvalidInputFile means the source workbook is missing or unreadable.
	CodeInvalidInputFile Code = "INVALID_INPUT_FILE"
	// CodeSheetNotFound means none of the requested sheets exist in the workbook.
	CodeSheetNotFound Code = "SHEET_NOT_FOUND"
	// CodeColumnNotFound means the amount column could not be located.
	CodeColumnNotFound Code = "COLUMN_NOT_FOUND"
	// CodeInvalidOptions means the run options failed validation.
	CodeInvalidOptions Code = "INVALID_OPTIONS"
	// CodeWriteFailed means the reconciled workbook could not be written.
	CodeWriteFailed Code = "WRITE_FAILED"
	// CodeInternal covers unexpected failures.
	CodeInternal Code = "INTERNAL"
)

// Error is an operational error with a code and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the failure code from an error chain.
// Errors without a typed kind report CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsCode reports whether the error chain carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// httpStatus maps failure codes to HTTP response statuses.
func httpStatus(code Code) int {
	switch code {
	case CodeInvalidInputFile, CodeInvalidOptions:
		return http.StatusBadRequest
	case CodeSheetNotFound, CodeColumnNotFound:
		return http.StatusNotFound
	case CodeWriteFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the structured error body returned by the HTTP service.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// FromError converts any error into an APIError for rendering. Typed
// errors keep their code and mapped status; everything else becomes a
// generic internal error without leaking the cause.
func FromError(err error) *APIError {
	var e *Error
	if errors.As(err, &e) {
		return &APIError{
			StatusCode: httpStatus(e.Code),
			ErrorCode:  string(e.Code),
			Message:    e.Message,
		}
	}
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  string(CodeInternal),
		Message:    "internal error",
	}
}

// ValidationError describes one failed field in a request.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationErrors builds an APIError from failed request fields.
func NewValidationErrors(fields []ValidationError) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  string(CodeInvalidOptions),
		Message:    "request validation failed",
		Details:    fields,
	}
}
