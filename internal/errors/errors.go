// Package errors provides custom error types for the stockqr API.
// Service-layer failures are reported as *AppError so handlers can render a
// stable code and message without leaking storage internals.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target carries the same code, so copies produced by
// Wrap and WithMessage still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput         = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound             = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer       = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrStorageFailure       = &AppError{Code: "STORAGE_FAILURE", Message: "Changes could not be saved", StatusCode: http.StatusInternalServerError}
	ErrConfirmationRequired = &AppError{Code: "CONFIRMATION_REQUIRED", Message: "This operation replaces stored data and must be confirmed", StatusCode: http.StatusPreconditionRequired}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryInUse    = &AppError{Code: "CATEGORY_IN_USE", Message: "Category has products assigned to it", StatusCode: http.StatusConflict}
)

// Product and stock errors.
var (
	ErrProductNotFound     = &AppError{Code: "PRODUCT_NOT_FOUND", Message: "Product not found", StatusCode: http.StatusNotFound}
	ErrInsufficientStock   = &AppError{Code: "INSUFFICIENT_STOCK", Message: "Requested quantity exceeds available stock", StatusCode: http.StatusConflict}
	ErrInvalidMovementType = &AppError{Code: "INVALID_MOVEMENT_TYPE", Message: "Movement type must be in or out", StatusCode: http.StatusBadRequest}
)

// Snapshot and QR errors.
var (
	ErrUnsupportedSnapshotVersion = &AppError{Code: "UNSUPPORTED_SNAPSHOT_VERSION", Message: "Backup version is not supported", StatusCode: http.StatusUnprocessableEntity}
	ErrQRRenderFailed             = &AppError{Code: "QR_RENDER_FAILED", Message: "QR code could not be generated", StatusCode: http.StatusInternalServerError}
)
