package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limited")
)

// Machine-readable codes returned in the "code" field of every error body.
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
	CodeInvalidName        = "INVALID_NAME"
	CodeInvalidURL         = "INVALID_URL"
	CodeNoFieldsProvided   = "NO_FIELDS_PROVIDED"
	CodeInvalidJSON        = "INVALID_JSON"
	CodeInvalidFieldType   = "INVALID_FIELD_TYPE"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeInvalidContent     = "INVALID_CONTENT"
	CodePostNotFound       = "POST_NOT_FOUND"
	CodeResourceNotFound   = "RESOURCE_NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
)

type AppError struct {
	BaseError error
	Code      string
	Message   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (code: %s, cause: %v)", e.BaseError.Error(), e.Message, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s (code: %s)", e.BaseError.Error(), e.Message, e.Code)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

// Cause returns the wrapped infrastructure error, if any.
func (e *AppError) Cause() error {
	return e.Err
}

func NewAppError(base error, code, msg string, err error) *AppError {
	return &AppError{BaseError: base, Code: code, Message: msg, Err: err}
}

func NewUnauthorized(msg string) *AppError {
	return NewAppError(ErrUnauthorized, CodeUnauthorized, msg, nil)
}

func NewNotFound(code, msg string) *AppError {
	return NewAppError(ErrNotFound, code, msg, nil)
}

func NewInvalidInput(code, msg string, err error) *AppError {
	return NewAppError(ErrInvalidInput, code, msg, err)
}

func NewConflict(code, msg string) *AppError {
	return NewAppError(ErrConflict, code, msg, nil)
}

func NewRateLimited(msg string) *AppError {
	return NewAppError(ErrRateLimited, CodeRateLimited, msg, nil)
}

// NewInternal wraps an unexpected failure. The cause's message is surfaced to the
// client as a diagnostic; nothing else about it is.
func NewInternal(err error) *AppError {
	msg := "Internal server error: Unknown error"
	if err != nil {
		msg = "Internal server error: " + err.Error()
	}
	return NewAppError(ErrInternal, CodeInternal, msg, err)
}

// From converts any error into an *AppError, treating unknown errors as internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal(err)
}

// HasCode reports whether err is an *AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func ToHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrRateLimited) {
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func (e *AppError) ToJSON() gin.H {
	return gin.H{
		"error": e.Message,
		"code":  e.Code,
	}
}
