package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// AppError is the normalized error every API call surfaces to its caller.
// Message and StatusCode are always populated; Errors carries per-field
// validation messages when the backend returned them.
type AppError struct {
	Code       string              `json:"code,omitempty"`
	Message    string              `json:"message"`
	StatusCode int                 `json:"statusCode"`
	Errors     map[string][]string `json:"errors,omitempty"`
	Internal   error               `json:"-"`
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}

	return e.Message
}

// Unwrap exposes the internal error for errors.Is / errors.As compatibility.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// Is matches on Code so that copies produced by WithInternal still compare equal
// to the exported sentinels.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithInternal returns a copy of the AppError with an attached internal error.
func (e *AppError) WithInternal(err error) *AppError {
	if e == nil {
		return nil
	}

	cpy := *e
	cpy.Internal = err
	return &cpy
}

// WithMessage returns a copy of the AppError carrying a different message.
func (e *AppError) WithMessage(message string) *AppError {
	if e == nil {
		return nil
	}

	cpy := *e
	cpy.Message = message
	return &cpy
}

// WithErrors returns a copy of the AppError carrying per-field messages.
func (e *AppError) WithErrors(fields map[string][]string) *AppError {
	if e == nil {
		return nil
	}

	cpy := *e
	cpy.Errors = fields
	return &cpy
}

// HasFieldErrors reports whether the error carries per-field validation messages.
func (e *AppError) HasFieldErrors() bool {
	return e != nil && len(e.Errors) > 0
}

// FieldMessages flattens Errors into "field: message" lines sorted by field name.
// Messages without a field are emitted as-is.
func (e *AppError) FieldMessages() []string {
	if !e.HasFieldErrors() {
		return nil
	}

	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]string, 0, len(fields))
	for _, field := range fields {
		for _, msg := range e.Errors[field] {
			msg = strings.TrimSpace(msg)
			if msg == "" {
				continue
			}
			if field == "" {
				out = append(out, msg)
				continue
			}
			out = append(out, field+": "+msg)
		}
	}
	return out
}

// Common errors exposed to the rest of the application.
var (
	ErrNetwork = &AppError{
		Code:       "NETWORK_ERROR",
		Message:    "Network error: unable to reach the server",
		StatusCode: 0,
	}

	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "Authentication required",
		StatusCode: http.StatusUnauthorized,
	}

	ErrSessionExpired = &AppError{
		Code:       "SESSION_EXPIRED",
		Message:    "Session expired, please sign in again",
		StatusCode: http.StatusUnauthorized,
	}

	ErrForbidden = &AppError{
		Code:       "FORBIDDEN",
		Message:    "Permission denied",
		StatusCode: http.StatusForbidden,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: http.StatusNotFound,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: http.StatusBadRequest,
	}

	ErrValidation = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "One or more validation errors occurred",
		StatusCode: http.StatusUnprocessableEntity,
	}

	ErrConflict = &AppError{
		Code:       "CONFLICT",
		Message:    "Resource conflict",
		StatusCode: http.StatusConflict,
	}

	ErrInternalServer = &AppError{
		Code:       "INTERNAL_SERVER_ERROR",
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
	}
)

// New builds a new application error with the provided metadata.
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap turns any error into an AppError while keeping the original error for logging.
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Internal:   err,
	}
}

// FromError converts a generic error into an AppError, defaulting to ErrInternalServer.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return ErrInternalServer.WithInternal(err)
}

// FromStatus builds an AppError for an HTTP status, using message when non-empty.
func FromStatus(status int, message string) *AppError {
	base := sentinelForStatus(status)
	cpy := *base
	cpy.StatusCode = status
	if strings.TrimSpace(message) != "" {
		cpy.Message = message
	} else if text := http.StatusText(status); text != "" && base == ErrInternalServer {
		cpy.Message = text
	}
	return &cpy
}

func sentinelForStatus(status int) *AppError {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return ErrInternalServer
	}
}

// NewBadRequest wraps validation errors with a helpful message.
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:       ErrBadRequest.Code,
		Message:    message,
		StatusCode: ErrBadRequest.StatusCode,
	}
}

// StatusCode extracts the HTTP status of err, or 0 when it is not an AppError.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 0
}
